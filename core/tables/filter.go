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
	"fmt"
	"math"
	"strings"

	"github.com/google/chartdata/core/compare"
)

// ErrUnknownFilterType is returned by ParseFilterType.
var ErrUnknownFilterType = errors.New("unknown filter type")

// FilterType selects the predicate of a ColumnFilter.
type FilterType int

const (
	FilterContains FilterType = iota
	FilterDoesntContain
	FilterEqual
	FilterNotEqual
	FilterLesser
	FilterLesserOrEqual
	FilterGreater
	FilterGreaterOrEqual
	FilterIn
	FilterNotIn
	FilterStartsWith
	FilterEndsWith
)

var filterTypeNames = map[string]FilterType{
	"contains":           FilterContains,
	"doesntcontain":      FilterDoesntContain,
	"notcontains":        FilterDoesntContain,
	"equal":              FilterEqual,
	"equals":             FilterEqual,
	"notequal":           FilterNotEqual,
	"doesntequal":        FilterNotEqual,
	"lesser":             FilterLesser,
	"lessthan":           FilterLesser,
	"lesserorequal":      FilterLesserOrEqual,
	"lessthanorequal":    FilterLesserOrEqual,
	"greater":            FilterGreater,
	"greaterthan":        FilterGreater,
	"greaterorequal":     FilterGreaterOrEqual,
	"greaterthanorequal": FilterGreaterOrEqual,
	"in":                 FilterIn,
	"notin":              FilterNotIn,
	"startswith":         FilterStartsWith,
	"endswith":           FilterEndsWith,
}

// ParseFilterType resolves names such as "not equal", "STARTS_WITH" or
// "lesserOrEqual". Case, spaces, underscores and hyphens are ignored.
func ParseFilterType(name string) (FilterType, error) {
	key := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-':
			return -1
		}
		return r
	}, strings.ToLower(name))
	if ft, ok := filterTypeNames[key]; ok {
		return ft, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFilterType, name)
}

// BooleanOperator combines the per-column predicates of FilterBy.
type BooleanOperator int

const (
	And BooleanOperator = iota
	Or
)

// ColumnFilter is one predicate of FilterBy. Value is a string or a number,
// or a slice of them; a row matches a slice when it matches any element
// (for negated types: when it matches none).
type ColumnFilter struct {
	Column Column
	Type   FilterType
	Value  any
}

// FilterOptions configures FilterBy. The zero value compares strings
// case-insensitively and requires every predicate to match.
type FilterOptions struct {
	CaseSensitive bool
	Operator      BooleanOperator
}

// FilterBy keeps the rows satisfying the filters, combined with opts.Operator.
// Undefined and unparseable cells never satisfy ordering predicates.
func (t DataTable) FilterBy(filters []ColumnFilter, opts FilterOptions) DataTable {
	if t.IsEmpty() {
		return Empty()
	}
	if len(filters) == 0 {
		return DataTable{Columns: t.Columns, Rows: t.Rows}
	}

	rows := make([]Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		if matchRow(row, filters, opts) {
			rows = append(rows, row)
		}
	}
	return DataTable{Columns: t.Columns, Rows: rows}
}

func matchRow(row Row, filters []ColumnFilter, opts FilterOptions) bool {
	for _, f := range filters {
		ok := matchFilter(row, f, opts.CaseSensitive)
		if opts.Operator == Or && ok {
			return true
		}
		if opts.Operator == And && !ok {
			return false
		}
	}
	return opts.Operator == And
}

// positive maps negated filter types onto the predicate they negate.
func positive(ft FilterType) (FilterType, bool) {
	switch ft {
	case FilterDoesntContain:
		return FilterContains, true
	case FilterNotEqual:
		return FilterEqual, true
	case FilterIn:
		return FilterEqual, false
	case FilterNotIn:
		return FilterEqual, true
	}
	return ft, false
}

func matchFilter(row Row, f ColumnFilter, caseSensitive bool) bool {
	cell := cellAt(row, f.Column)
	if cell == nil {
		return false
	}
	base, negate := positive(f.Type)

	matched := false
	for _, value := range filterValues(f.Value) {
		if matchValue(cell, f.Column, base, value, caseSensitive) {
			matched = true
			break
		}
	}
	if negate {
		return !matched
	}
	return matched
}

func matchValue(cell *Cell, col Column, ft FilterType, value any, caseSensitive bool) bool {
	cv := cell.CompareValue(col.Type)

	switch ft {
	case FilterContains, FilterStartsWith, FilterEndsWith:
		text, pattern := foldPair(cell.DisplayValue, value, caseSensitive)
		switch ft {
		case FilterStartsWith:
			return strings.HasPrefix(text, pattern)
		case FilterEndsWith:
			return strings.HasSuffix(text, pattern)
		}
		return strings.Contains(text, pattern)

	case FilterEqual:
		if f, ok := toFloat(value); ok && cv.Kind == compare.KindNumber {
			return !cv.IsSentinel() && cv.Number == f
		}
		text, other := foldPair(cell.DisplayValue, value, caseSensitive)
		return text == other
	}

	// Ordering predicates.
	if cv.IsSentinel() {
		return false
	}
	fv := filterCompareValue(value, col)
	if fv.IsSentinel() {
		return false
	}
	cmp := compare.Natural(cv, fv)
	if caseSensitive && cv.Kind == compare.KindText && fv.Kind == compare.KindText {
		cmp = strings.Compare(cv.Text, fv.Text)
	}
	switch ft {
	case FilterLesser:
		return cmp < 0
	case FilterLesserOrEqual:
		return cmp <= 0
	case FilterGreater:
		return cmp > 0
	case FilterGreaterOrEqual:
		return cmp >= 0
	}
	return false
}

// foldPair case-folds the cell text and the filter value when matching is
// case-insensitive and the filter value is a string.
func foldPair(text string, value any, caseSensitive bool) (string, string) {
	s, isString := value.(string)
	if !isString {
		return text, stringify(value)
	}
	if caseSensitive {
		return text, s
	}
	return compare.Fold(text), compare.Fold(s)
}

func filterCompareValue(value any, col Column) compare.Value {
	if f, ok := toFloat(value); ok {
		return compare.Value{Kind: compare.KindNumber, Number: f}
	}
	if col.Labels != nil {
		return labelCompareValue(stringify(value), col.Labels)
	}
	return compare.NewValue(stringify(value), col.Type)
}

// labelCompareValue resolves a label of an ordinal column to its position.
// Unknown labels are NaN.
func labelCompareValue(label string, labels []string) compare.Value {
	folded := compare.Fold(strings.TrimSpace(label))
	for i, l := range labels {
		if compare.Fold(l) == folded {
			return compare.NewIndexValue(i)
		}
	}
	return compare.Value{Kind: compare.KindNumber, Number: math.NaN(), IsNaN: true}
}

func filterValues(value any) []any {
	switch v := value.(type) {
	case nil:
		return nil
	case []any:
		return v
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	case []float64:
		out := make([]any, len(v))
		for i, f := range v {
			out[i] = f
		}
		return out
	case []int:
		out := make([]any, len(v))
		for i, n := range v {
			out[i] = n
		}
		return out
	}
	return []any{value}
}
