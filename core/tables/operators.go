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
	"sort"
	"strings"

	"github.com/google/chartdata/core/aggregates"
	"github.com/google/chartdata/core/columns"
	"github.com/google/chartdata/core/compare"
)

// AggregationColumn asks GroupBy for one aggregated output column.
type AggregationColumn struct {
	Column      Column
	Aggregation aggregates.Stat
	// Title names the output column. The source column name is used when empty.
	Title string
}

// RowComparator returns a comparator ordering rows by cols in priority order,
// each in its own direction. The first column that discriminates wins.
func RowComparator(cols []Column) func(a, b Row) int {
	return func(a, b Row) int {
		for _, c := range cols {
			if cmp := compare.Compare(GetCompareValue(a, c), GetCompareValue(b, c), c.Direction); cmp != 0 {
				return cmp
			}
		}
		return 0
	}
}

// sortRows returns a stably sorted copy of rows.
func sortRows(rows []Row, cols []Column) []Row {
	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	cmp := RowComparator(cols)
	sort.SliceStable(sorted, func(i, j int) bool {
		return cmp(sorted[i], sorted[j]) < 0
	})
	return sorted
}

// SelectColumns projects the table onto cols, renumbering their indices in
// the given order.
func (t DataTable) SelectColumns(cols []Column) DataTable {
	if t.IsEmpty() {
		return Empty()
	}
	out := make([]Column, len(cols))
	for i, c := range cols {
		out[i] = c.WithIndex(i)
	}
	rows := make([]Row, len(t.Rows))
	for r, row := range t.Rows {
		rows[r] = projectRow(row, cols)
	}
	return DataTable{Columns: out, Rows: rows}
}

func projectRow(row Row, cols []Column) Row {
	projected := make(Row, len(cols))
	for i, c := range cols {
		if cell := cellAt(row, c); cell != nil {
			projected[i] = cell
		} else {
			projected[i] = NewCell("")
		}
	}
	return projected
}

// OrderBy stably sorts the rows by cols. The column list is returned unchanged.
func (t DataTable) OrderBy(cols []Column) DataTable {
	if t.IsEmpty() {
		return Empty()
	}
	return DataTable{Columns: t.Columns, Rows: sortRows(t.Rows, cols)}
}

// SeparateBy sorts rows by cols and splits them into runs of rows that
// compare equal. Unsorted columns are sorted ascending so that every key
// column discriminates. Ties keep their input order.
func SeparateBy(rows []Row, cols []Column) [][]Row {
	if len(rows) == 0 {
		return nil
	}
	keys := make([]Column, len(cols))
	for i, c := range cols {
		if c.Direction == compare.Unsorted {
			c = c.WithDirection(compare.Ascending)
		}
		keys[i] = c
	}

	sorted := sortRows(rows, keys)
	cmp := RowComparator(keys)

	var groups [][]Row
	for i, row := range sorted {
		if i == 0 || cmp(sorted[i-1], row) != 0 {
			groups = append(groups, []Row{row})
			continue
		}
		last := len(groups) - 1
		groups[last] = append(groups[last], row)
	}
	return groups
}

// GroupBy emits one row per group of groupCols: the key cells of the
// group's first row followed by one aggregated cell per aggregation.
// Groups come out in SeparateBy order. Key and aggregation columns that the
// table does not have are dropped.
func (t DataTable) GroupBy(groupCols []Column, aggCols []AggregationColumn) DataTable {
	if t.IsEmpty() {
		return Empty()
	}

	keys := t.resolve(groupCols)
	type resolvedAgg struct {
		source Column
		stat   aggregates.Stat
	}
	aggs := make([]resolvedAgg, 0, len(aggCols))

	out := make([]Column, 0, len(keys)+len(aggCols))
	for i, k := range keys {
		out = append(out, k.WithIndex(i))
	}
	for _, ac := range aggCols {
		source, ok := t.ColumnByName(ac.Column.Name)
		if !ok {
			continue
		}
		title := ac.Title
		if title == "" {
			title = source.Name
		}
		colType := source.Type
		if ac.Aggregation.IsCounting() {
			colType = columns.TypeNumber
		}
		out = append(out, Column{Name: title, Type: colType, Index: len(out)})
		aggs = append(aggs, resolvedAgg{source: source, stat: ac.Aggregation})
	}

	groups := SeparateBy(t.Rows, keys)
	rows := make([]Row, 0, len(groups))
	for _, group := range groups {
		row := make(Row, 0, len(out))
		row = append(row, projectRow(group[0], keys)...)
		for _, a := range aggs {
			row = append(row, aggregateCell(group, a.source, a.stat))
		}
		rows = append(rows, row)
	}
	return DataTable{Columns: out, Rows: rows}
}

// resolve maps cols onto the table's own columns by name, dropping unknown names.
func (t DataTable) resolve(cols []Column) []Column {
	resolved := make([]Column, 0, len(cols))
	for _, c := range cols {
		own, ok := t.ColumnByName(c.Name)
		if !ok {
			continue
		}
		resolved = append(resolved, own.WithDirection(c.Direction))
	}
	return resolved
}

// aggregateCell aggregates the non-empty values of col across group. The
// color is the first member color, blur is set when any member is blurred.
func aggregateCell(group []Row, col Column, stat aggregates.Stat) *Cell {
	var (
		agg     aggregates.Aggregator
		color   *string
		hasBlur bool
		blurred bool
	)

	numeric := columns.IsNumber(col.Type) || columns.IsDatetime(col.Type)
	var numbers []float64
	var texts []string
	for _, row := range group {
		cell := cellAt(row, col)
		if cell == nil {
			continue
		}
		if color == nil && cell.Color != nil {
			c := *cell.Color
			color = &c
		}
		if cell.Blur != nil {
			hasBlur = true
			blurred = blurred || *cell.Blur
		}
		if cell.DisplayValue == "" {
			continue
		}
		if numeric {
			v := cell.CompareValue(col.Type)
			if v.IsSentinel() {
				continue
			}
			numbers = append(numbers, v.Number)
		} else {
			texts = append(texts, cell.DisplayValue)
		}
	}

	switch {
	case columns.IsDatetime(col.Type):
		agg = aggregates.NewDatetimeDistribution(numbers)
	case numeric:
		agg = aggregates.NewDistribution(numbers)
	default:
		agg = aggregates.NewCategoricalDistribution(texts)
	}

	cell := NewCell(agg.Format(stat))
	cell.Color = color
	if hasBlur {
		cell.Blur = &blurred
	}
	return cell
}

// Distinct keeps one row per distinct key of cols, the first occurrence in
// input order, projected onto cols. Rows come out in key order.
func (t DataTable) Distinct(cols []Column) DataTable {
	if t.IsEmpty() {
		return Empty()
	}
	out := make([]Column, len(cols))
	for i, c := range cols {
		out[i] = c.WithIndex(i)
	}
	groups := SeparateBy(t.Rows, cols)
	rows := make([]Row, 0, len(groups))
	for _, group := range groups {
		rows = append(rows, projectRow(group[0], cols))
	}
	return DataTable{Columns: out, Rows: rows}
}

// Limit keeps the first n rows.
func (t DataTable) Limit(n int) DataTable {
	if t.IsEmpty() {
		return Empty()
	}
	if n < 0 {
		n = 0
	}
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	cols := make([]Column, len(t.Columns))
	copy(cols, t.Columns)
	rows := make([]Row, n)
	copy(rows, t.Rows[:n])
	return DataTable{Columns: cols, Rows: rows}
}

// IndexRows groups rows by cols and maps each group's composite key to the
// group. The key is the comma-joined comparable values of the key columns.
func IndexRows(rows []Row, cols []Column) map[string][]Row {
	index := make(map[string][]Row)
	for _, group := range SeparateBy(rows, cols) {
		index[RowKey(group[0], cols)] = group
	}
	return index
}

// RowKey is the composite key IndexRows uses for row.
func RowKey(row Row, cols []Column) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = stringify(GetValue(row, c))
	}
	return strings.Join(parts, ",")
}
