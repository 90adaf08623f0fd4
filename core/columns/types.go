/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package columns recognises the free-form column type tags produced by the
// query layer and holds the parsing helpers shared by compare values and
// table builders.
package columns

import "strings"

// Canonical type tags emitted by the builders and operators.
const (
	TypeNumber   = "number"
	TypeText     = "text"
	TypeDatetime = "datetime"
	TypeBoolean  = "boolean"
)

var numberTypes = map[string]bool{
	"number":   true,
	"numeric":  true,
	"integer":  true,
	"int":      true,
	"long":     true,
	"float":    true,
	"double":   true,
	"decimal":  true,
	"real":     true,
	"bigint":   true,
	"smallint": true,
}

var datetimeTypes = map[string]bool{
	"datetime":  true,
	"date":      true,
	"date-time": true,
	"timestamp": true,
	"time":      true,
}

var textTypes = map[string]bool{
	"text":     true,
	"string":   true,
	"varchar":  true,
	"char":     true,
	"nvarchar": true,
	"nchar":    true,
}

func normalize(columnType string) string {
	return strings.ToLower(strings.TrimSpace(columnType))
}

// IsNumber reports whether the tag denotes a numeric column.
func IsNumber(columnType string) bool {
	return numberTypes[normalize(columnType)]
}

// IsDatetime reports whether the tag denotes a date or datetime column.
func IsDatetime(columnType string) bool {
	return datetimeTypes[normalize(columnType)]
}

// IsText reports whether the tag denotes a text column.
func IsText(columnType string) bool {
	return textTypes[normalize(columnType)]
}

// IsBoolean reports whether the tag denotes a boolean column.
func IsBoolean(columnType string) bool {
	switch normalize(columnType) {
	case "boolean", "bool":
		return true
	}
	return false
}

// IsCategorical reports whether values of the column are handled as plain
// strings. Unknown tags are categorical.
func IsCategorical(columnType string) bool {
	return !IsNumber(columnType) && !IsDatetime(columnType)
}
