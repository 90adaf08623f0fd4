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

// Package chartdata implements the table transformations charts run on query
// results before rendering: deduplicating user supplied rows, ranking the
// top or bottom values of an attribute and bucketing date columns.
package chartdata

import (
	"errors"

	"github.com/google/chartdata/core/aggregates"
	"github.com/google/chartdata/core/compare"
	"github.com/google/chartdata/core/tables"
)

// ErrRowNumberColumnMissing is returned when aggregation lost the row number
// column used to restore the input order.
var ErrRowNumberColumnMissing = errors.New("row number column missing after aggregation")

// Measure is an aggregated column. The zero Aggregation is a sum.
type Measure struct {
	Name        string
	Aggregation aggregates.Stat
}

// Filter selects rows by the value of a named column.
type Filter struct {
	Column string
	Type   tables.FilterType
	Value  any
}

// AggregateRequest configures FilterAndAggregateChartData.
type AggregateRequest struct {
	Attributes    []string
	Measures      []Measure
	Filters       []Filter
	FilterOptions tables.FilterOptions
}

// FilterAndAggregateChartData builds a table from data, applies the filters
// and reduces it to one row per distinct combination of attributes, each
// measure aggregated. Rows keep the order in which their attribute
// combination first appears in data. Attributes, measures and filters naming
// columns that data lacks are ignored.
func FilterAndAggregateChartData(data tables.Data, req AggregateRequest) (tables.DataTable, error) {
	return FilterAndAggregateTable(tables.CreateDataTableFromData(data), req)
}

// FilterAndAggregateTable is FilterAndAggregateChartData over a table that
// was already built. The table must carry tables.RowNumberColumnName.
func FilterAndAggregateTable(table tables.DataTable, req AggregateRequest) (tables.DataTable, error) {
	table = table.FilterBy(resolveFilters(table, req.Filters), req.FilterOptions)
	if table.IsEmpty() {
		return tables.Empty(), nil
	}

	attributes, _ := table.ColumnsByName(req.Attributes...)
	aggs := make([]tables.AggregationColumn, 0, len(req.Measures)+1)
	for _, m := range req.Measures {
		col, ok := table.ColumnByName(m.Name)
		if !ok {
			continue
		}
		aggs = append(aggs, tables.AggregationColumn{Column: col, Aggregation: m.Aggregation})
	}
	if rownum, ok := table.ColumnByName(tables.RowNumberColumnName); ok {
		aggs = append(aggs, tables.AggregationColumn{Column: rownum, Aggregation: aggregates.StatMin})
	}

	grouped := table.GroupBy(attributes, aggs)
	rownum, ok := grouped.ColumnByName(tables.RowNumberColumnName)
	if !ok {
		return tables.Empty(), ErrRowNumberColumnMissing
	}
	ordered := grouped.OrderBy([]tables.Column{rownum.WithDirection(compare.Ascending)})

	keep := make([]tables.Column, 0, len(ordered.Columns)-1)
	for _, c := range ordered.Columns {
		if c.Name != tables.RowNumberColumnName {
			keep = append(keep, c)
		}
	}
	return ordered.SelectColumns(keep), nil
}

func resolveFilters(table tables.DataTable, filters []Filter) []tables.ColumnFilter {
	resolved := make([]tables.ColumnFilter, 0, len(filters))
	for _, f := range filters {
		col, ok := table.ColumnByName(f.Column)
		if !ok {
			continue
		}
		resolved = append(resolved, tables.ColumnFilter{Column: col, Type: f.Type, Value: f.Value})
	}
	return resolved
}
