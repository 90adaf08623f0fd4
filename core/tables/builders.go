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

package tables

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/chartdata/core/columns"
	"github.com/google/chartdata/core/compare"
)

const (
	// NotAvailable marks a missing datetime member in query results. It is
	// kept verbatim by CreateDataTableFromData.
	NotAvailable = `N\A`

	// AggregateDatePrefix is the placeholder date the query layer uses for
	// time-of-day buckets that are not tied to a calendar day.
	AggregateDatePrefix = "1111-11-11"

	epochDate = "1970-01-01"
)

// ColumnSpec is a column as delivered by the query layer.
type ColumnSpec struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// QueryResult is the plain shape of a query result: string cells only.
type QueryResult struct {
	Columns []ColumnSpec
	Rows    [][]string
}

// StructuredCell is a cell of the rich Data shape. Text, Color and Blur are
// nil when absent.
type StructuredCell struct {
	Data  any
	Text  *string
	Color *string
	Blur  *bool
}

// Data is the rich result shape. Each entry of Rows is either a bare value
// (string, number, bool, time.Time or nil) or a StructuredCell.
type Data struct {
	Columns []ColumnSpec
	Rows    [][]any
}

type buildOptions struct {
	rowNumbers bool
}

// BuildOption configures CreateSortableTable and CreateSortableFromColumnsRows.
type BuildOption func(*buildOptions)

// WithRowNumbers appends RowNumberColumnName holding the 0-based position of every row.
func WithRowNumbers() BuildOption {
	return func(o *buildOptions) {
		o.rowNumbers = true
	}
}

// CreateSortableTable builds a DataTable from a plain query result.
func CreateSortableTable(result QueryResult, opts ...BuildOption) DataTable {
	return CreateSortableFromColumnsRows(result.Columns, result.Rows, opts...)
}

// CreateSortableFromColumnsRows builds a DataTable from parallel string
// cells. Compare values are computed lazily on first use.
func CreateSortableFromColumnsRows(specs []ColumnSpec, rows [][]string, opts ...BuildOption) DataTable {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}
	if len(specs) == 0 {
		return Empty()
	}

	cols := columnsFromSpecs(specs)
	if o.rowNumbers {
		cols = append(cols, rowNumberColumn(len(specs)))
	}

	out := make([]Row, 0, len(rows))
	for r, raw := range rows {
		row := make(Row, 0, len(cols))
		for i := range specs {
			value := ""
			if i < len(raw) {
				value = raw[i]
			}
			row = append(row, NewCell(value))
		}
		if o.rowNumbers {
			row = append(row, rowNumberCell(r))
		}
		out = append(out, row)
	}
	return DataTable{Columns: cols, Rows: out}
}

// CreateDataTableFromData builds a DataTable from the rich Data shape. Compare
// values are computed eagerly and a 1-based RowNumberColumnName column is
// always appended.
func CreateDataTableFromData(data Data) DataTable {
	if len(data.Columns) == 0 {
		return Empty()
	}

	cols := columnsFromSpecs(data.Columns)
	cols = append(cols, rowNumberColumn(len(data.Columns)))

	out := make([]Row, 0, len(data.Rows))
	for r, raw := range data.Rows {
		row := make(Row, 0, len(cols))
		for i, col := range cols[:len(data.Columns)] {
			var value any
			if i < len(raw) {
				value = raw[i]
			}
			row = append(row, dataCell(value, col))
		}
		row = append(row, rowNumberCell(r+1))
		out = append(out, row)
	}
	return DataTable{Columns: cols, Rows: out}
}

func columnsFromSpecs(specs []ColumnSpec) []Column {
	cols := make([]Column, len(specs))
	for i, s := range specs {
		cols[i] = Column{Name: s.Name, Type: s.Type, Index: i}
	}
	return cols
}

func rowNumberColumn(index int) Column {
	return Column{Name: RowNumberColumnName, Type: columns.TypeNumber, Index: index}
}

func rowNumberCell(n int) *Cell {
	c := NewCellWithValue(strconv.Itoa(n), compare.NewIndexValue(n))
	c.RawValue = float64(n)
	return c
}

func dataCell(value any, col Column) *Cell {
	switch v := value.(type) {
	case StructuredCell:
		return structuredCell(v, col)
	case *StructuredCell:
		if v != nil {
			return structuredCell(*v, col)
		}
		return bareCell(nil, col)
	}
	return bareCell(value, col)
}

func structuredCell(sc StructuredCell, col Column) *Cell {
	text := stringify(sc.Data)
	if columns.IsDatetime(col.Type) {
		if s, ok := sc.Data.(string); ok && strings.HasPrefix(s, AggregateDatePrefix) {
			text = epochDate + s[len(AggregateDatePrefix):]
		}
	}

	display := text
	if sc.Text != nil {
		display = *sc.Text
	}

	c := NewCellWithValue(display, compare.NewValue(text, col.Type))
	c.RawValue = rawValue(sc.Data)
	if sc.Color != nil {
		color := *sc.Color
		c.Color = &color
	}
	if sc.Blur != nil {
		blur := *sc.Blur
		c.Blur = &blur
	}
	return c
}

func bareCell(value any, col Column) *Cell {
	if !columns.IsDatetime(col.Type) {
		text := stringify(value)
		c := NewCellWithValue(text, compare.NewValue(text, col.Type))
		c.RawValue = rawValue(value)
		return c
	}

	if s, ok := value.(string); ok && s == NotAvailable {
		c := NewCellWithValue(s, compare.NewValue(s, col.Type))
		c.RawValue = s
		return c
	}

	var v compare.Value
	if ms, ok := toFloat(value); ok {
		// Numbers on datetime columns are epoch milliseconds.
		v = compare.Value{Kind: compare.KindNumber, Number: ms, IsNaN: math.IsNaN(ms) || math.IsInf(ms, 0)}
	} else {
		v = compare.NewValue(stringify(value), col.Type)
	}
	if v.IsSentinel() {
		text := stringify(value)
		c := NewCellWithValue(text, v)
		c.RawValue = rawValue(value)
		return c
	}

	iso := columns.FormatISO(time.UnixMilli(int64(v.Number)))
	c := NewCellWithValue(iso, v)
	c.RawValue = iso
	return c
}

// stringify renders a payload the way it is displayed.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return columns.FormatISO(v)
	case fmt.Stringer:
		return v.String()
	}
	if f, ok := toFloat(value); ok {
		return columns.FormatNumber(f)
	}
	return fmt.Sprint(value)
}

// rawValue narrows a payload to the string or float64 kept in Cell.RawValue.
func rawValue(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		return v
	}
	if f, ok := toFloat(value); ok {
		return f
	}
	return stringify(value)
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}
