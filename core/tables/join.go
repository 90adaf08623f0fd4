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
	"strings"
)

// InnerJoin pairs every row of t with the rows of join that share its values
// in the key columns, named by keys and resolved in both tables. Keys
// compare the raw value of a cell, or its display value when it has none.
//
// Output rows are the t row followed by the join columns whose names t does
// not already have; colliding join columns are skipped. Rows of t without a
// match are dropped. The result is empty when a key is missing from either table.
func (t DataTable) InnerJoin(join DataTable, keys []string) DataTable {
	if t.IsEmpty() || join.IsEmpty() {
		return Empty()
	}
	leftKeys, missing := t.ColumnsByName(keys...)
	if len(missing) > 0 {
		return Empty()
	}
	rightKeys, missing := join.ColumnsByName(keys...)
	if len(missing) > 0 {
		return Empty()
	}

	index := make(map[string][]Row, len(join.Rows))
	for _, row := range join.Rows {
		key := joinKey(row, rightKeys)
		index[key] = append(index[key], row)
	}

	cols := make([]Column, len(t.Columns), len(t.Columns)+len(join.Columns))
	copy(cols, t.Columns)
	var appended []Column
	for _, c := range join.Columns {
		if _, exists := t.ColumnByName(c.Name); exists {
			continue
		}
		appended = append(appended, c)
		cols = append(cols, c.WithIndex(len(cols)))
	}

	var rows []Row
	for _, left := range t.Rows {
		for _, right := range index[joinKey(left, leftKeys)] {
			row := make(Row, 0, len(cols))
			row = append(row, left...)
			for _, c := range appended {
				if cell := cellAt(right, c); cell != nil {
					row = append(row, cell)
				} else {
					row = append(row, NewCell(""))
				}
			}
			rows = append(rows, row)
		}
	}
	if rows == nil {
		rows = []Row{}
	}
	return DataTable{Columns: cols, Rows: rows}
}

func joinKey(row Row, keys []Column) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		cell := cellAt(row, k)
		switch {
		case cell == nil:
		case cell.RawValue != nil:
			parts[i] = stringify(cell.RawValue)
		default:
			parts[i] = cell.DisplayValue
		}
	}
	return strings.Join(parts, ",")
}
