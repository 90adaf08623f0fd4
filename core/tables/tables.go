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

// Package tables holds the canonical DataTable model, the builders that
// create it from query results and the relational operators over it.
//
// A DataTable is built once per query result and then passed through a
// pipeline of operators, each returning a new DataTable. Cells are shared
// between the input and output of an operator and must be treated as
// read-only; the only state a cell updates is its memoised compare value.
package tables

import (
	"strings"
	"sync"

	"github.com/google/safehtml"

	"github.com/google/chartdata/core/compare"
)

// RowNumberColumnName is the synthetic column the builders append to record
// the original position of every row.
const RowNumberColumnName = "$rownum"

// Column describes one column of a DataTable. Index is the position of the
// column's cell in every row.
type Column struct {
	Name      string
	Type      string
	Index     int
	Direction compare.Direction
	// Labels lists the display values of an ordinal column in order. Cells of
	// such a column compare by the position of their label.
	Labels []string
}

// WithDirection returns a copy of the column sorted in direction d.
func (c Column) WithDirection(d compare.Direction) Column {
	c.Direction = d
	return c
}

// WithIndex returns a copy of the column positioned at i.
func (c Column) WithIndex(i int) Column {
	c.Index = i
	return c
}

// Cell is one value of a row.
type Cell struct {
	// DisplayValue is the canonical text of the cell, always present.
	DisplayValue string
	// RawValue is the source payload, a string or a float64, or nil.
	RawValue any
	// Color and Blur are nil when the source carried no annotation.
	Color *string
	Blur  *bool

	memo *compareMemo
}

// compareMemo is the mutable cache behind a cell's compare value.
type compareMemo struct {
	once  sync.Once
	value compare.Value
}

// NewCell returns a cell whose compare value is computed on first use.
func NewCell(displayValue string) *Cell {
	return &Cell{DisplayValue: displayValue, memo: &compareMemo{}}
}

// NewCellWithValue returns a cell carrying a precomputed compare value.
func NewCellWithValue(displayValue string, v compare.Value) *Cell {
	c := NewCell(displayValue)
	c.memo.once.Do(func() { c.memo.value = v })
	return c
}

// CompareValue returns the comparable form of the cell for a column of the
// given type, computing and caching it on first use.
func (c *Cell) CompareValue(columnType string) compare.Value {
	if c.memo == nil {
		return compare.NewValue(c.DisplayValue, columnType)
	}
	c.memo.once.Do(func() {
		c.memo.value = compare.NewValue(c.DisplayValue, columnType)
	})
	return c.memo.value
}

// HasColor reports whether the source annotated the cell with a color.
func (c *Cell) HasColor() bool {
	return c.Color != nil
}

// IsBlurred reports whether the cell is dimmed.
func (c *Cell) IsBlurred() bool {
	return c.Blur != nil && *c.Blur
}

// Style returns the cell color as a sanitized inline style. Colors that are
// not plain CSS values are replaced by safehtml's innocuous placeholder.
func (c *Cell) Style() safehtml.Style {
	if c.Color == nil || *c.Color == "" {
		return safehtml.StyleFromProperties(safehtml.StyleProperties{})
	}
	return safehtml.StyleFromProperties(safehtml.StyleProperties{Color: *c.Color})
}

// SafeColor returns the cell color when Style keeps it unchanged.
func (c *Cell) SafeColor() (string, bool) {
	if c.Color == nil || *c.Color == "" {
		return "", false
	}
	if strings.Contains(c.Style().String(), safehtml.InnocuousPropertyValue) {
		return "", false
	}
	return *c.Color, true
}

// Row is a sequence of cells aligned with the table's columns.
type Row []*Cell

// DataTable is an ordered set of columns and the rows holding their values.
type DataTable struct {
	Columns []Column
	Rows    []Row
}

// Empty returns the table with neither columns nor rows.
func Empty() DataTable {
	return DataTable{Columns: []Column{}, Rows: []Row{}}
}

// IsEmpty reports whether the table has no columns or no rows.
func (t DataTable) IsEmpty() bool {
	return len(t.Columns) == 0 || len(t.Rows) == 0
}

// Length returns the number of rows.
func (t DataTable) Length() int {
	return len(t.Rows)
}

// GetColumnNames returns the column names in column order.
func (t DataTable) GetColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// ColumnByName returns the first column with the given name.
func (t DataTable) ColumnByName(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnsByName resolves names in order. Names without a column are
// returned in missing and skipped in found.
func (t DataTable) ColumnsByName(names ...string) (found []Column, missing []string) {
	for _, name := range names {
		if c, ok := t.ColumnByName(name); ok {
			found = append(found, c)
		} else {
			missing = append(missing, name)
		}
	}
	return found, missing
}

// GetValue returns the comparable payload of the row's cell for col: a
// float64 for numeric and datetime columns, a string otherwise. It returns
// nil when the row has no cell at the column's index.
func GetValue(row Row, col Column) any {
	cell := cellAt(row, col)
	if cell == nil {
		return nil
	}
	return cell.CompareValue(col.Type).Value()
}

// GetDisplayValue returns the display text of the row's cell for col.
func GetDisplayValue(row Row, col Column) string {
	cell := cellAt(row, col)
	if cell == nil {
		return ""
	}
	return cell.DisplayValue
}

// GetCompareValue returns the compare value of the row's cell for col.
func GetCompareValue(row Row, col Column) compare.Value {
	cell := cellAt(row, col)
	if cell == nil {
		return compare.Value{Undefined: true}
	}
	return cell.CompareValue(col.Type)
}

func cellAt(row Row, col Column) *Cell {
	if col.Index < 0 || col.Index >= len(row) {
		return nil
	}
	return row[col.Index]
}
