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

// Package datasources provides a unified interface for loading tables from
// various sources (CSV files, JSON query results, ...) by name, with lazy
// loading and caching.
package datasources

import (
	"fmt"
	"strconv"

	"github.com/google/chartdata/core/tables"
)

// DataSourceLoader is the interface that all data source loaders must implement.
// Built-in loaders handle "csv" and "json".
// Users can register additional loaders for databases, APIs, or custom formats.
type DataSourceLoader interface {
	// SourceType returns the type identifier used in config (e.g., "csv", "json").
	SourceType() string

	// Load retrieves data and returns a DataTable.
	Load(config map[string]string) (tables.DataTable, error)
}

// DataSource describes a named table and how to load it.
type DataSource struct {
	Name       string
	SourceType string
	// Config holds loader specific keys such as file_path.
	Config map[string]string
}

func requiredKey(config map[string]string, key string) (string, error) {
	v := config[key]
	if v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}

func boolKey(config map[string]string, key string, def bool) (bool, error) {
	v, ok := config[key]
	if !ok || v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
