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

// Package compare derives order-comparable values from display strings and
// compares them with the sentinel rules shared by sorting, grouping and
// filtering.
package compare

import (
	"math"

	"golang.org/x/text/cases"

	"github.com/google/chartdata/core/columns"
)

// Kind tells which field of a Value carries the comparable payload.
type Kind uint8

const (
	// KindText values compare by their case-folded text.
	KindText Kind = iota
	// KindNumber values compare numerically. Datetimes are numbers of epoch milliseconds.
	KindNumber
)

// Value is the typed, order-comparable form of a cell.
type Value struct {
	Kind      Kind
	Number    float64
	Text      string
	Lowercase string

	// Undefined is set for empty display values.
	Undefined bool
	// IsNaN is set when a numeric or datetime display value failed to parse.
	IsNaN bool
}

// Value returns the payload as float64 for numbers and datetimes, string otherwise.
func (v Value) Value() any {
	if v.Kind == KindNumber {
		return v.Number
	}
	return v.Text
}

// IsSentinel reports whether the value sorts last and never matches filters.
func (v Value) IsSentinel() bool {
	return v.Undefined || v.IsNaN
}

// NewValue converts a display string into a comparable value according to
// the declared column type. It never fails: unparseable input is reported
// through the IsNaN and Undefined flags.
func NewValue(displayValue, columnType string) Value {
	switch {
	case columns.IsDatetime(columnType):
		return NewDatetimeValue(displayValue)
	case columns.IsNumber(columnType):
		return NewNumberValue(displayValue)
	default:
		return NewTextValue(displayValue)
	}
}

// NewNumberValue parses displayValue with leading-prefix float semantics.
func NewNumberValue(displayValue string) Value {
	if displayValue == "" {
		return Value{Kind: KindNumber, Number: math.NaN(), Undefined: true}
	}
	n := columns.ParseLeadingFloat(displayValue)
	return Value{Kind: KindNumber, Number: n, IsNaN: math.IsNaN(n)}
}

// NewDatetimeValue parses displayValue as an ISO-ish date, assuming UTC when
// the string carries no zone, and stores epoch milliseconds.
func NewDatetimeValue(displayValue string) Value {
	if displayValue == "" {
		return Value{Kind: KindNumber, Number: math.NaN(), Undefined: true}
	}
	t, err := columns.ParseDatetime(displayValue, nil)
	if err != nil || t.IsZero() {
		return Value{Kind: KindNumber, Number: math.NaN(), IsNaN: true}
	}
	return Value{Kind: KindNumber, Number: float64(t.UnixMilli())}
}

// NewTextValue keeps displayValue and its case-folded form.
func NewTextValue(displayValue string) Value {
	return Value{
		Kind:      KindText,
		Text:      displayValue,
		Lowercase: Fold(displayValue),
		Undefined: displayValue == "",
	}
}

// NewIndexValue wraps a precomputed ordinal, used for cyclical date parts.
func NewIndexValue(index int) Value {
	return Value{Kind: KindNumber, Number: float64(index)}
}

// Fold returns the Unicode case-folded form of s.
func Fold(s string) string {
	// A Caser keeps state, so each call gets its own.
	return cases.Fold().String(s)
}
