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
	"fmt"
	"strings"

	"github.com/google/chartdata/core/aggregates"
	"github.com/google/chartdata/core/compare"
	"github.com/google/chartdata/core/tables"
)

// Rank selects the highest or the lowest aggregated values.
type Rank int

const (
	Top Rank = iota
	Bottom
)

// ParseRank resolves "top" or "bottom", ignoring case.
func ParseRank(name string) (Rank, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "top":
		return Top, nil
	case "bottom":
		return Bottom, nil
	}
	return 0, fmt.Errorf("unknown rank %q", name)
}

func (r Rank) String() string {
	if r == Bottom {
		return "bottom"
	}
	return "top"
}

// FiltersTopBottomValues groups t by attribute, aggregates measure with stat
// and keeps the n groups with the highest (Top) or lowest (Bottom) result.
// The result has the attribute column and the measure column. It is empty
// when either column is missing or n <= 0.
func FiltersTopBottomValues(t tables.DataTable, attribute, measure string, stat aggregates.Stat, n int, rank Rank) tables.DataTable {
	attr, ok := t.ColumnByName(attribute)
	if !ok || n <= 0 {
		return tables.Empty()
	}
	value, ok := t.ColumnByName(measure)
	if !ok {
		return tables.Empty()
	}

	grouped := t.GroupBy([]tables.Column{attr}, []tables.AggregationColumn{{Column: value, Aggregation: stat}})
	if grouped.IsEmpty() {
		return tables.Empty()
	}
	direction := compare.Descending
	if rank == Bottom {
		direction = compare.Ascending
	}
	ranked := grouped.Columns[len(grouped.Columns)-1].WithDirection(direction)
	return grouped.TopK([]tables.Column{ranked}, n)
}

// TopBottomFilter returns an IN filter on attribute selecting the values
// FiltersTopBottomValues ranks. ok is false when the ranking is empty.
func TopBottomFilter(t tables.DataTable, attribute, measure string, stat aggregates.Stat, n int, rank Rank) (filter tables.ColumnFilter, ok bool) {
	ranked := FiltersTopBottomValues(t, attribute, measure, stat, n, rank)
	if ranked.Length() == 0 {
		return tables.ColumnFilter{}, false
	}
	attr, _ := t.ColumnByName(attribute)
	key := ranked.Columns[0]
	values := make([]string, 0, ranked.Length())
	for _, row := range ranked.Rows {
		values = append(values, tables.GetDisplayValue(row, key))
	}
	return tables.ColumnFilter{Column: attr, Type: tables.FilterIn, Value: values}, true
}
