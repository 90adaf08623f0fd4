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
	"testing"

	"github.com/google/chartdata/core/aggregates"
	"github.com/google/chartdata/core/compare"
)

func newTestTable(specs []ColumnSpec, rows ...[]string) DataTable {
	return CreateSortableFromColumnsRows(specs, rows, WithRowNumbers())
}

func column(t *testing.T, table DataTable, name string) Column {
	t.Helper()
	c, ok := table.ColumnByName(name)
	if !ok {
		t.Fatalf("column %q not found in %v", name, table.GetColumnNames())
	}
	return c
}

func displayColumn(table DataTable, name string) []string {
	c, ok := table.ColumnByName(name)
	if !ok {
		return nil
	}
	values := make([]string, len(table.Rows))
	for i, row := range table.Rows {
		values[i] = GetDisplayValue(row, c)
	}
	return values
}

func assertColumn(t *testing.T, table DataTable, name string, want ...string) {
	t.Helper()
	got := displayColumn(table, name)
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("column %s = %v, want %v\n%s", name, got, want, table)
	}
}

var attrValSpecs = []ColumnSpec{{Name: "attr", Type: "text"}, {Name: "val", Type: "number"}}

func TestSelectColumns(t *testing.T) {
	table := newTestTable(attrValSpecs, []string{"a", "1"}, []string{"b", "2"})
	val := column(t, table, "val")
	attr := column(t, table, "attr")

	selected := table.SelectColumns([]Column{val, attr})
	if got := strings.Join(selected.GetColumnNames(), ","); got != "val,attr" {
		t.Errorf("GetColumnNames() = %s, want val,attr", got)
	}
	for i, c := range selected.Columns {
		if c.Index != i {
			t.Errorf("column %s Index = %d, want %d", c.Name, c.Index, i)
		}
	}
	assertColumn(t, selected, "val", "1", "2")
	assertColumn(t, selected, "attr", "a", "b")

	again := selected.SelectColumns(selected.Columns)
	assertColumn(t, again, "val", "1", "2")
	assertColumn(t, again, "attr", "a", "b")

	if table.Columns[1].Index != 1 {
		t.Errorf("SelectColumns modified the input columns")
	}
}

func TestOrderBy_SentinelsLast(t *testing.T) {
	table := newTestTable(attrValSpecs,
		[]string{"a", "3"},
		[]string{"b", ""},
		[]string{"c", "1"},
		[]string{"d", "x"},
		[]string{"e", "2"},
	)
	val := column(t, table, "val")

	asc := table.OrderBy([]Column{val.WithDirection(compare.Ascending)})
	assertColumn(t, asc, "attr", "c", "e", "a", "b", "d")

	desc := table.OrderBy([]Column{val.WithDirection(compare.Descending)})
	assertColumn(t, desc, "attr", "a", "e", "c", "b", "d")

	unsorted := table.OrderBy([]Column{val})
	assertColumn(t, unsorted, "attr", "a", "b", "c", "d", "e")

	assertColumn(t, table, "attr", "a", "b", "c", "d", "e")
}

func TestOrderBy_MultipleColumns(t *testing.T) {
	table := newTestTable(attrValSpecs,
		[]string{"b", "1"},
		[]string{"a", "2"},
		[]string{"b", "3"},
		[]string{"A", "1"},
	)
	attr := column(t, table, "attr").WithDirection(compare.Ascending)
	val := column(t, table, "val").WithDirection(compare.Descending)

	sorted := table.OrderBy([]Column{attr, val})
	assertColumn(t, sorted, "attr", "a", "A", "b", "b")
	assertColumn(t, sorted, "val", "2", "1", "3", "1")
}

func TestSeparateBy(t *testing.T) {
	table := newTestTable(attrValSpecs,
		[]string{"b", "1"},
		[]string{"a", "2"},
		[]string{"b", "3"},
	)
	groups := SeparateBy(table.Rows, []Column{column(t, table, "attr")})
	if len(groups) != 2 {
		t.Fatalf("len(groups) = %d, want 2", len(groups))
	}
	val := column(t, table, "val")
	if got := GetDisplayValue(groups[0][0], val); got != "2" {
		t.Errorf("first group = %s, want the a row", got)
	}
	if len(groups[1]) != 2 || GetDisplayValue(groups[1][0], val) != "1" || GetDisplayValue(groups[1][1], val) != "3" {
		t.Errorf("second group should keep input order of the b rows")
	}
	if SeparateBy(nil, table.Columns) != nil {
		t.Errorf("SeparateBy(nil) should be nil")
	}
}

func TestGroupBy_Sum(t *testing.T) {
	table := newTestTable(attrValSpecs,
		[]string{"z", "40"},
		[]string{"a", "3.14"},
		[]string{"z", "3.618"},
		[]string{"a", "3.45"},
		[]string{"a", ""},
	)
	attr := column(t, table, "attr").WithDirection(compare.Descending)
	val := column(t, table, "val")

	grouped := table.GroupBy([]Column{attr}, []AggregationColumn{{Column: val, Aggregation: aggregates.StatSum}})
	if got := strings.Join(grouped.GetColumnNames(), ","); got != "attr,val" {
		t.Errorf("GetColumnNames() = %s, want attr,val", got)
	}
	assertColumn(t, grouped, "attr", "z", "a")
	assertColumn(t, grouped, "val", "43.618", "6.59")
}

func TestGroupBy_AllEmptyGroup(t *testing.T) {
	table := newTestTable(attrValSpecs,
		[]string{"a", "2"},
		[]string{"b", ""},
		[]string{"b", "n/a"},
	)
	attr := column(t, table, "attr")
	val := column(t, table, "val")

	grouped := table.GroupBy([]Column{attr}, []AggregationColumn{
		{Column: val, Aggregation: aggregates.StatSum},
		{Column: val, Aggregation: aggregates.StatAverage, Title: "avg"},
		{Column: val, Aggregation: aggregates.StatCount, Title: "count"},
	})
	assertColumn(t, grouped, "attr", "a", "b")
	assertColumn(t, grouped, "val", "2", "")
	assertColumn(t, grouped, "avg", "2", "")
	assertColumn(t, grouped, "count", "1", "0")
}

func TestGroupBy_ColumnTypesAndTitles(t *testing.T) {
	table := newTestTable(attrValSpecs,
		[]string{"a", "1"},
		[]string{"a", "1"},
		[]string{"b", "2"},
	)
	attr := column(t, table, "attr")
	val := column(t, table, "val")

	grouped := table.GroupBy([]Column{attr}, []AggregationColumn{
		{Column: attr, Aggregation: aggregates.StatCount, Title: "rows"},
		{Column: attr, Aggregation: aggregates.StatMax, Title: "last attr"},
		{Column: Column{Name: "missing"}, Aggregation: aggregates.StatSum},
		{Column: val, Aggregation: aggregates.StatCountDistinct, Title: "distinct"},
	})

	if got := strings.Join(grouped.GetColumnNames(), ","); got != "attr,rows,last attr,distinct" {
		t.Fatalf("GetColumnNames() = %s", got)
	}
	wantTypes := []string{"text", "number", "text", "number"}
	for i, c := range grouped.Columns {
		if c.Type != wantTypes[i] {
			t.Errorf("column %s Type = %s, want %s", c.Name, c.Type, wantTypes[i])
		}
		if c.Index != i {
			t.Errorf("column %s Index = %d, want %d", c.Name, c.Index, i)
		}
	}
	assertColumn(t, grouped, "rows", "2", "1")
	assertColumn(t, grouped, "last attr", "a", "b")
	assertColumn(t, grouped, "distinct", "1", "1")
}

func TestGroupBy_ColorAndBlur(t *testing.T) {
	table := CreateDataTableFromData(Data{
		Columns: []ColumnSpec{{Name: "attr", Type: "text"}, {Name: "v", Type: "number"}},
		Rows: [][]any{
			{"a", StructuredCell{Data: 1.0, Blur: boolPtr(false)}},
			{"a", StructuredCell{Data: 2.0, Color: strPtr("blue"), Blur: boolPtr(true)}},
			{"a", StructuredCell{Data: 3.0, Color: strPtr("green")}},
			{"b", 5.0},
		},
	})
	attr := column(t, table, "attr")
	v := column(t, table, "v")

	grouped := table.GroupBy([]Column{attr}, []AggregationColumn{{Column: v, Aggregation: aggregates.StatAverage}})
	assertColumn(t, grouped, "v", "2", "5")

	out := column(t, grouped, "v")
	a := grouped.Rows[0][out.Index]
	if a.Color == nil || *a.Color != "blue" {
		t.Errorf("group a color = %v, want blue", a.Color)
	}
	if !a.IsBlurred() {
		t.Errorf("group a should be blurred")
	}
	b := grouped.Rows[1][out.Index]
	if b.Color != nil || b.Blur != nil {
		t.Errorf("group b should carry no annotations, got %v/%v", b.Color, b.Blur)
	}
}

func TestGroupBy_RestoresRowOrder(t *testing.T) {
	table := newTestTable(attrValSpecs,
		[]string{"c", "1"},
		[]string{"a", "2"},
		[]string{"c", "3"},
		[]string{"b", "4"},
	)
	attr := column(t, table, "attr")
	rownum := column(t, table, RowNumberColumnName)

	grouped := table.GroupBy([]Column{attr}, []AggregationColumn{{Column: rownum, Aggregation: aggregates.StatMin}})
	assertColumn(t, grouped, "attr", "a", "b", "c")

	restored := grouped.OrderBy([]Column{column(t, grouped, RowNumberColumnName).WithDirection(compare.Ascending)})
	assertColumn(t, restored, "attr", "c", "a", "b")
	assertColumn(t, restored, RowNumberColumnName, "0", "1", "3")
}

func TestDistinct(t *testing.T) {
	table := newTestTable(attrValSpecs,
		[]string{"z", "1"},
		[]string{"a", "2"},
		[]string{"z", "3"},
	)
	distinct := table.Distinct([]Column{column(t, table, "attr")})
	if got := len(distinct.Columns); got != 1 {
		t.Fatalf("len(Columns) = %d, want 1", got)
	}
	assertColumn(t, distinct, "attr", "a", "z")
}

func TestLimit(t *testing.T) {
	table := newTestTable(attrValSpecs, []string{"a", "1"}, []string{"b", "2"}, []string{"c", "3"})
	tests := []struct {
		n    int
		want int
	}{
		{2, 2},
		{0, 0},
		{-1, 0},
		{10, 3},
	}
	for _, tt := range tests {
		if got := table.Limit(tt.n).Length(); got != tt.want {
			t.Errorf("Limit(%d).Length() = %d, want %d", tt.n, got, tt.want)
		}
	}
	assertColumn(t, table.Limit(2), "attr", "a", "b")
}

func TestIndexRows(t *testing.T) {
	table := newTestTable(attrValSpecs,
		[]string{"z", "1"},
		[]string{"a", "2"},
		[]string{"z", "1"},
	)
	attr := column(t, table, "attr")
	val := column(t, table, "val")

	index := IndexRows(table.Rows, []Column{attr, val})
	if len(index) != 2 {
		t.Fatalf("len(index) = %d, want 2", len(index))
	}
	if got := len(index["z,1"]); got != 2 {
		t.Errorf("len(index[z,1]) = %d, want 2", got)
	}
	if got := len(index["a,2"]); got != 1 {
		t.Errorf("len(index[a,2]) = %d, want 1", got)
	}
}

func TestOperators_EmptyTable(t *testing.T) {
	empty := Empty()
	if !empty.SelectColumns(nil).IsEmpty() {
		t.Errorf("SelectColumns on empty table should be empty")
	}
	if !empty.OrderBy(nil).IsEmpty() {
		t.Errorf("OrderBy on empty table should be empty")
	}
	if !empty.GroupBy(nil, nil).IsEmpty() {
		t.Errorf("GroupBy on empty table should be empty")
	}
	if !empty.Distinct(nil).IsEmpty() {
		t.Errorf("Distinct on empty table should be empty")
	}
	if !empty.Limit(1).IsEmpty() {
		t.Errorf("Limit on empty table should be empty")
	}
	if !empty.FilterBy(nil, FilterOptions{}).IsEmpty() {
		t.Errorf("FilterBy on empty table should be empty")
	}
}

func TestString(t *testing.T) {
	table := newTestTable(attrValSpecs, []string{"alpha", "1"})
	out := table.String()
	for _, want := range []string{"| attr  | val | $rownum |", "| alpha | 1   | 0       |", "1 rows"} {
		if !strings.Contains(out, want) {
			t.Errorf("String() missing %q:\n%s", want, out)
		}
	}
	if Empty().String() != "(empty table)\n" {
		t.Errorf("Empty().String() = %q", Empty().String())
	}
}

func TestTopK(t *testing.T) {
	table := newTestTable(attrValSpecs,
		[]string{"a", "5"},
		[]string{"b", "1"},
		[]string{"c", "5"},
		[]string{"d", ""},
		[]string{"e", "9"},
		[]string{"f", "5"},
	)
	val := column(t, table, "val")

	for _, dir := range []compare.Direction{compare.Ascending, compare.Descending} {
		cols := []Column{val.WithDirection(dir)}
		for k := 0; k <= table.Length()+1; k++ {
			got := displayColumn(table.TopK(cols, k), "attr")
			want := displayColumn(table.OrderBy(cols).Limit(k), "attr")
			if strings.Join(got, "|") != strings.Join(want, "|") {
				t.Errorf("TopK(%v, %d) = %v, want %v", dir, k, got, want)
			}
		}
	}
}
