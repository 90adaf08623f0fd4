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

package csvimport

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// ParseTableSource parses a JSON table source into a Struct:
//
//	{"columns": [{"name": "id", "type": "text"}, {"name": "amt", "rename": "amount"}]}
func ParseTableSource(data []byte) (*structpb.Struct, error) {
	source := &structpb.Struct{}
	if err := protojson.Unmarshal(data, source); err != nil {
		return nil, fmt.Errorf("failed to parse table source: %w", err)
	}
	return source, nil
}

// TableSourceToColumnSources converts a table source to a map of CsvColumnSource
// suitable for use with ImportOptions. Entries are keyed by header name.
func TableSourceToColumnSources(source *structpb.Struct) (map[string]CsvColumnSource, error) {
	result := make(map[string]CsvColumnSource)
	for i, v := range source.GetFields()["columns"].GetListValue().GetValues() {
		fields := v.GetStructValue().GetFields()
		header := fields["name"].GetStringValue()
		if header == "" {
			return nil, fmt.Errorf("table source column %d has no name", i)
		}
		result[header] = CsvColumnSource{
			Name: fields["rename"].GetStringValue(),
			Type: ParseCsvColumnType(fields["type"].GetStringValue()),
		}
	}
	return result, nil
}

// OptionsFromTableSource parses a JSON table source and returns
// DefaultOptions with its column sources.
func OptionsFromTableSource(data []byte) (ImportOptions, error) {
	source, err := ParseTableSource(data)
	if err != nil {
		return ImportOptions{}, err
	}
	sources, err := TableSourceToColumnSources(source)
	if err != nil {
		return ImportOptions{}, err
	}
	options := DefaultOptions()
	options.ColumnSources = sources
	return options, nil
}
