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

// Package csvimport loads CSV files into tables.DataTable, detecting the type
// tag of every column from a sample of its values.
package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/google/chartdata/core/columns"
	"github.com/google/chartdata/core/tables"
)

// ErrEmptyInput is returned when the CSV has no header or no data rows.
var ErrEmptyInput = errors.New("CSV input is empty")

// CsvColumnType specifies the data type for a column
type CsvColumnType int

const (
	// CsvColumnTypeAuto auto-detects type from data (default)
	CsvColumnTypeAuto CsvColumnType = iota
	// CsvColumnTypeText forces the text type
	CsvColumnTypeText
	// CsvColumnTypeNumber forces the number type
	CsvColumnTypeNumber
	// CsvColumnTypeDatetime forces the datetime type
	CsvColumnTypeDatetime
	// CsvColumnTypeBoolean forces the boolean type
	CsvColumnTypeBoolean
)

var csvColumnTypeTags = map[CsvColumnType]string{
	CsvColumnTypeText:     columns.TypeText,
	CsvColumnTypeNumber:   columns.TypeNumber,
	CsvColumnTypeDatetime: columns.TypeDatetime,
	CsvColumnTypeBoolean:  columns.TypeBoolean,
}

// ParseCsvColumnType maps a type tag such as "number" or "string" to a
// CsvColumnType. Unknown tags and "auto" yield CsvColumnTypeAuto.
func ParseCsvColumnType(tag string) CsvColumnType {
	switch {
	case columns.IsNumber(tag):
		return CsvColumnTypeNumber
	case columns.IsDatetime(tag):
		return CsvColumnTypeDatetime
	case columns.IsBoolean(tag):
		return CsvColumnTypeBoolean
	case columns.IsText(tag):
		return CsvColumnTypeText
	}
	return CsvColumnTypeAuto
}

// CsvColumnSource defines source metadata for how a column is imported
type CsvColumnSource struct {
	// Name is the column name (defaults to header name if not specified)
	Name string
	// Type specifies the data type for this column (default: auto-detect)
	Type CsvColumnType
}

// ImportOptions configures CSV import behavior
type ImportOptions struct {
	// HasHeader indicates whether the first row contains column headers
	HasHeader bool
	// Delimiter is the field delimiter (defaults to comma)
	Delimiter rune
	// ColumnSources provides configuration for specific columns by header name
	ColumnSources map[string]CsvColumnSource
	// SampleSize is the number of rows to sample for type detection (default: 100)
	SampleSize int
	// RowNumbers appends tables.RowNumberColumnName to the table
	RowNumbers bool
	// Logf reports rows that were skipped (default: log.Printf)
	Logf func(format string, args ...any)
}

// DefaultOptions returns default import options
func DefaultOptions() ImportOptions {
	return ImportOptions{
		HasHeader:     true,
		Delimiter:     ',',
		ColumnSources: make(map[string]CsvColumnSource),
		SampleSize:    100,
		RowNumbers:    true,
		Logf:          log.Printf,
	}
}

// ImportFromFile imports a CSV file and returns a DataTable
func ImportFromFile(filepath string, options ImportOptions) (tables.DataTable, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return tables.Empty(), fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ImportFromReader(file, options)
}

// ImportFromReader imports CSV data from an io.Reader and returns a DataTable.
// Rows with more fields than the header are skipped and reported through
// options.Logf; shorter rows are padded with empty cells.
func ImportFromReader(reader io.Reader, options ImportOptions) (tables.DataTable, error) {
	csvReader := csv.NewReader(reader)
	if options.Delimiter != 0 {
		csvReader.Comma = options.Delimiter
	}
	csvReader.FieldsPerRecord = -1
	logf := options.Logf
	if logf == nil {
		logf = log.Printf
	}

	records, err := csvReader.ReadAll()
	if err != nil {
		return tables.Empty(), fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return tables.Empty(), ErrEmptyInput
	}

	// Extract headers
	var headers []string
	var body [][]string
	firstLine := 1
	if options.HasHeader {
		headers = records[0]
		body = records[1:]
		firstLine = 2
	} else {
		// Generate column names if no header
		headers = make([]string, len(records[0]))
		for i := range headers {
			headers[i] = fmt.Sprintf("column_%d", i+1)
		}
		body = records
	}

	dataRows := make([][]string, 0, len(body))
	for i, row := range body {
		if len(row) > len(headers) {
			logf("csvimport: skipping line %d: %d fields, want at most %d", firstLine+i, len(row), len(headers))
			continue
		}
		values := make([]string, len(row))
		for j, v := range row {
			values[j] = strings.TrimSpace(v)
		}
		dataRows = append(dataRows, values)
	}
	if len(dataRows) == 0 {
		return tables.Empty(), fmt.Errorf("%w: no data rows", ErrEmptyInput)
	}

	sampleSize := options.SampleSize
	if sampleSize <= 0 {
		sampleSize = 100
	}
	columnTypes := detectColumnTypes(headers, dataRows, sampleSize, options.ColumnSources)

	specs := make([]tables.ColumnSpec, len(headers))
	for i, header := range headers {
		name := header
		if config := getColumnSource(header, options.ColumnSources); config.Name != "" {
			name = config.Name
		}
		specs[i] = tables.ColumnSpec{Name: name, Type: columnTypes[i]}
	}

	var buildOptions []tables.BuildOption
	if options.RowNumbers {
		buildOptions = append(buildOptions, tables.WithRowNumbers())
	}
	return tables.CreateSortableFromColumnsRows(specs, dataRows, buildOptions...), nil
}

// detectColumnTypes samples data to determine the type tag of every column.
// A column is a number when every sampled value parses as a float, a boolean
// when every value is a boolean word, a datetime when every value parses as
// a date, and text otherwise. Columns without sampled values are text.
func detectColumnTypes(headers []string, dataRows [][]string, sampleSize int, configs map[string]CsvColumnSource) []string {
	types := make([]string, len(headers))

	// Sample rows for type detection
	rowsToSample := sampleSize
	if rowsToSample > len(dataRows) {
		rowsToSample = len(dataRows)
	}

	for i, header := range headers {
		// Check if type is explicitly set
		if tag, ok := csvColumnTypeTags[getColumnSource(header, configs).Type]; ok {
			types[i] = tag
			continue
		}

		isNumber, isBool, isDatetime := true, true, true
		hasNonEmpty := false
		for j := 0; j < rowsToSample; j++ {
			if i >= len(dataRows[j]) || dataRows[j][i] == "" {
				continue
			}
			value := dataRows[j][i]
			hasNonEmpty = true

			if isNumber && !isNumeric(value) {
				isNumber = false
			}
			if isBool {
				if _, err := columns.ParseBool(value); err != nil || isNumeric(value) {
					isBool = false
				}
			}
			if isDatetime {
				if _, err := columns.ParseDatetime(value, nil); err != nil {
					isDatetime = false
				}
			}
			if !isNumber && !isBool && !isDatetime {
				break
			}
		}

		switch {
		case !hasNonEmpty:
			types[i] = columns.TypeText
		case isNumber:
			types[i] = columns.TypeNumber
		case isBool:
			types[i] = columns.TypeBoolean
		case isDatetime:
			types[i] = columns.TypeDatetime
		default:
			types[i] = columns.TypeText
		}
	}

	return types
}

// isNumeric reports whether the whole value parses as a number that
// columns.ParseLeadingFloat reads back unchanged. Inf, NaN and hex floats
// do not qualify.
func isNumeric(value string) bool {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return false
	}
	lead := columns.ParseLeadingFloat(value)
	return !math.IsNaN(lead) && lead == f
}

// getColumnSource returns the config for a column, or an empty config if not specified
func getColumnSource(header string, configs map[string]CsvColumnSource) CsvColumnSource {
	if configs == nil {
		return CsvColumnSource{}
	}
	if config, ok := configs[header]; ok {
		return config
	}
	return CsvColumnSource{}
}
