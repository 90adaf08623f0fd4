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

package datasources

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/google/chartdata/core/csvimport"
	"github.com/google/chartdata/core/tables"
)

// CsvLoader implements DataSourceLoader for CSV files.
// Column types are detected from the data unless a table source overrides them.
//
// Required config keys:
//   - file_path: Path to the CSV file
//
// Optional config keys:
//   - has_header: "true" or "false" (default: "true")
//   - delimiter: Field delimiter (default: ",")
//   - table_source: Path to a JSON table source with per column overrides
type CsvLoader struct {
	// Logf receives warnings about skipped rows. Defaults to log.Printf.
	Logf func(format string, args ...any)
}

// NewCsvLoader creates a new CSV loader.
func NewCsvLoader() *CsvLoader {
	return &CsvLoader{}
}

// SourceType returns "csv".
func (l *CsvLoader) SourceType() string {
	return "csv"
}

// Load loads a CSV file and returns a DataTable.
func (l *CsvLoader) Load(config map[string]string) (tables.DataTable, error) {
	filePath, err := requiredKey(config, "file_path")
	if err != nil {
		return tables.Empty(), err
	}

	options := csvimport.DefaultOptions()
	if path := config["table_source"]; path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return tables.Empty(), fmt.Errorf("failed to read table source: %w", err)
		}
		if options, err = csvimport.OptionsFromTableSource(data); err != nil {
			return tables.Empty(), err
		}
	}

	if options.HasHeader, err = boolKey(config, "has_header", true); err != nil {
		return tables.Empty(), err
	}
	if d := config["delimiter"]; d != "" {
		r, _ := utf8.DecodeRuneInString(d)
		options.Delimiter = r
	}
	if l.Logf != nil {
		options.Logf = l.Logf
	}

	return csvimport.ImportFromFile(filePath, options)
}
