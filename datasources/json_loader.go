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

	"github.com/google/chartdata/core/structimport"
	"github.com/google/chartdata/core/tables"
)

// JsonLoader implements DataSourceLoader for JSON query results in the
// structimport payload shape.
//
// Required config keys:
//   - file_path: Path to the JSON file
type JsonLoader struct{}

// NewJsonLoader creates a new JSON loader.
func NewJsonLoader() *JsonLoader {
	return &JsonLoader{}
}

// SourceType returns "json".
func (l *JsonLoader) SourceType() string {
	return "json"
}

// Load decodes the file and builds the table with tables.CreateDataTableFromData.
func (l *JsonLoader) Load(config map[string]string) (tables.DataTable, error) {
	filePath, err := requiredKey(config, "file_path")
	if err != nil {
		return tables.Empty(), err
	}
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return tables.Empty(), fmt.Errorf("failed to open JSON file: %w", err)
	}
	data, err := structimport.DecodeData(raw)
	if err != nil {
		return tables.Empty(), err
	}
	return tables.CreateDataTableFromData(data), nil
}
