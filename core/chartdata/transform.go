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

package chartdata

import (
	"time"

	"github.com/google/chartdata/core/columns"
	"github.com/google/chartdata/core/compare"
	"github.com/google/chartdata/core/dateperiod"
	"github.com/google/chartdata/core/tables"
)

// TransformDateColumn buckets the named datetime column by g.
//
// For a dateperiod.Period every cell becomes the ISO start of its period and
// compares by it. For a dateperiod.PseudoPeriod every cell becomes the
// localised label of its cyclical index, the column is retyped as text with
// the labels of the cycle and cells compare by the index, so months or
// weekdays keep calendar order in sorts and ordering filters.
// Empty and unparseable cells are kept with their sentinel compare value.
// The table is returned unchanged when it has no such column.
func TransformDateColumn(t tables.DataTable, column string, g dateperiod.Granularity, loc dateperiod.Locale) tables.DataTable {
	col, ok := t.ColumnByName(column)
	if !ok || g == nil {
		return t
	}

	var (
		bucket  func(time.Time) (string, compare.Value)
		newType string
		labels  []string
	)
	switch g := g.(type) {
	case dateperiod.Period:
		newType = columns.TypeDatetime
		bucket = func(ts time.Time) (string, compare.Value) {
			start := dateperiod.StartOfPeriod(ts, g, loc)
			return columns.FormatISO(start), compare.Value{Kind: compare.KindNumber, Number: float64(start.UnixMilli())}
		}
	case dateperiod.PseudoPeriod:
		newType = columns.TypeText
		labels = make([]string, g.Cardinality())
		for i := range labels {
			labels[i] = dateperiod.PseudoPeriodLabel(i, g, loc)
		}
		bucket = func(ts time.Time) (string, compare.Value) {
			i := dateperiod.PseudoPeriodIndex(ts, g, loc)
			return dateperiod.PseudoPeriodLabel(i, g, loc), compare.NewIndexValue(i)
		}
	default:
		return t
	}

	cols := make([]tables.Column, len(t.Columns))
	copy(cols, t.Columns)
	cols[col.Index].Type = newType
	cols[col.Index].Labels = labels

	rows := make([]tables.Row, len(t.Rows))
	for r, row := range t.Rows {
		out := make(tables.Row, len(row))
		copy(out, row)
		if col.Index < len(row) && row[col.Index] != nil {
			out[col.Index] = transformCell(row[col.Index], col.Type, bucket)
		}
		rows[r] = out
	}
	return tables.DataTable{Columns: cols, Rows: rows}
}

func transformCell(cell *tables.Cell, columnType string, bucket func(time.Time) (string, compare.Value)) *tables.Cell {
	v := cell.CompareValue(columnType)
	if !columns.IsDatetime(columnType) {
		v = compare.NewDatetimeValue(cell.DisplayValue)
	}

	var out *tables.Cell
	if v.IsSentinel() {
		out = tables.NewCellWithValue(cell.DisplayValue, v)
		out.RawValue = cell.RawValue
	} else {
		display, cv := bucket(time.UnixMilli(int64(v.Number)).UTC())
		out = tables.NewCellWithValue(display, cv)
		out.RawValue = display
	}
	out.Color = cell.Color
	out.Blur = cell.Blur
	return out
}
