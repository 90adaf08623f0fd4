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
	"errors"
	"testing"
)

func newStringFilterTable() DataTable {
	rows := [][]string{}
	for _, v := range []string{"a", "z", "z", "z", "c", "b", "c", "a", "testing123"} {
		rows = append(rows, []string{v})
	}
	return CreateSortableFromColumnsRows([]ColumnSpec{{Name: "col_string", Type: "string"}}, rows, WithRowNumbers())
}

func TestParseFilterType(t *testing.T) {
	tests := []struct {
		name string
		want FilterType
	}{
		{"contains", FilterContains},
		{"DOESNT_CONTAIN", FilterDoesntContain},
		{"not equal", FilterNotEqual},
		{"lesserOrEqual", FilterLesserOrEqual},
		{"greater-or-equal", FilterGreaterOrEqual},
		{"in", FilterIn},
		{"NOT_IN", FilterNotIn},
		{"STARTS_WITH", FilterStartsWith},
		{"endsWith", FilterEndsWith},
	}
	for _, tt := range tests {
		got, err := ParseFilterType(tt.name)
		if err != nil {
			t.Errorf("ParseFilterType(%q) error: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFilterType(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
	if _, err := ParseFilterType("between"); !errors.Is(err, ErrUnknownFilterType) {
		t.Errorf("ParseFilterType(between) error = %v, want ErrUnknownFilterType", err)
	}
}

func TestFilterBy_Strings(t *testing.T) {
	table := newStringFilterTable()
	col := column(t, table, "col_string")

	tests := []struct {
		name    string
		filter  ColumnFilter
		opts    FilterOptions
		rownums []string
	}{
		{"in", ColumnFilter{Column: col, Type: FilterIn, Value: []string{"c"}}, FilterOptions{}, []string{"4", "6"}},
		{"starts with", ColumnFilter{Column: col, Type: FilterStartsWith, Value: []string{"test"}}, FilterOptions{}, []string{"8"}},
		{"ends with", ColumnFilter{Column: col, Type: FilterEndsWith, Value: "123"}, FilterOptions{}, []string{"8"}},
		{"contains case-insensitive", ColumnFilter{Column: col, Type: FilterContains, Value: "Z"}, FilterOptions{}, []string{"1", "2", "3"}},
		{"contains case-sensitive", ColumnFilter{Column: col, Type: FilterContains, Value: "Z"}, FilterOptions{CaseSensitive: true}, nil},
		{"doesnt contain", ColumnFilter{Column: col, Type: FilterDoesntContain, Value: "a"}, FilterOptions{}, []string{"1", "2", "3", "4", "5", "6", "8"}},
		{"not in", ColumnFilter{Column: col, Type: FilterNotIn, Value: []any{"a", "z"}}, FilterOptions{}, []string{"4", "5", "6", "8"}},
		{"equal", ColumnFilter{Column: col, Type: FilterEqual, Value: "B"}, FilterOptions{}, []string{"5"}},
		{"lesser", ColumnFilter{Column: col, Type: FilterLesser, Value: "c"}, FilterOptions{}, []string{"0", "5", "7"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := table.FilterBy([]ColumnFilter{tt.filter}, tt.opts)
			assertColumn(t, filtered, RowNumberColumnName, tt.rownums...)
		})
	}
}

func TestFilterBy_Numbers(t *testing.T) {
	table := newTestTable(attrValSpecs,
		[]string{"a", "1"},
		[]string{"b", "5"},
		[]string{"c", "10"},
		[]string{"d", ""},
		[]string{"e", "x"},
	)
	val := column(t, table, "val")

	tests := []struct {
		name   string
		filter ColumnFilter
		want   []string
	}{
		{"greater", ColumnFilter{Column: val, Type: FilterGreater, Value: 4}, []string{"b", "c"}},
		{"greater or equal string", ColumnFilter{Column: val, Type: FilterGreaterOrEqual, Value: "5"}, []string{"b", "c"}},
		{"lesser or equal", ColumnFilter{Column: val, Type: FilterLesserOrEqual, Value: 5.0}, []string{"a", "b"}},
		{"equal number", ColumnFilter{Column: val, Type: FilterEqual, Value: 10}, []string{"c"}},
		{"equal text", ColumnFilter{Column: val, Type: FilterEqual, Value: "10"}, []string{"c"}},
		{"not equal", ColumnFilter{Column: val, Type: FilterNotEqual, Value: 5}, []string{"a", "c", "d", "e"}},
		{"in numbers", ColumnFilter{Column: val, Type: FilterIn, Value: []float64{1, 10}}, []string{"a", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := table.FilterBy([]ColumnFilter{tt.filter}, FilterOptions{})
			assertColumn(t, filtered, "attr", tt.want...)
		})
	}
}

func TestFilterBy_Datetime(t *testing.T) {
	table := newTestTable([]ColumnSpec{{Name: "day", Type: "date"}},
		[]string{"2023-12-31"},
		[]string{"2024-01-01"},
		[]string{"2024-02-15"},
		[]string{"not a date"},
	)
	day := column(t, table, "day")
	filtered := table.FilterBy([]ColumnFilter{{Column: day, Type: FilterGreaterOrEqual, Value: "2024-01-01"}}, FilterOptions{})
	assertColumn(t, filtered, "day", "2024-01-01", "2024-02-15")
}

func TestFilterBy_Operators(t *testing.T) {
	table := newTestTable(attrValSpecs,
		[]string{"a", "1"},
		[]string{"a", "7"},
		[]string{"b", "9"},
		[]string{"c", "2"},
	)
	attr := column(t, table, "attr")
	val := column(t, table, "val")
	filters := []ColumnFilter{
		{Column: attr, Type: FilterEqual, Value: "a"},
		{Column: val, Type: FilterGreater, Value: 5},
	}

	assertColumn(t, table.FilterBy(filters, FilterOptions{}), RowNumberColumnName, "1")
	assertColumn(t, table.FilterBy(filters, FilterOptions{Operator: Or}), RowNumberColumnName, "0", "1", "2")

	all := table.FilterBy(nil, FilterOptions{})
	if all.Length() != table.Length() {
		t.Errorf("FilterBy(nil).Length() = %d, want %d", all.Length(), table.Length())
	}
}
