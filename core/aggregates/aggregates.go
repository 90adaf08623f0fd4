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

// Package aggregates provides the statistics computed over the values of one
// column within a group: Distribution for numbers and datetimes,
// CategoricalDistribution for everything else.
package aggregates

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStat is returned by ParseStat for names outside the alias table.
var ErrUnknownStat = errors.New("unknown aggregation")

// Stat identifies one statistic.
type Stat int

const (
	StatSum Stat = iota
	StatMin
	StatMax
	StatAverage
	StatVariance
	StatStdDev
	StatCount
	StatCountDistinct
	StatMedian
	StatFirst
	StatLast
)

var statNames = map[Stat]string{
	StatSum:           "sum",
	StatMin:           "min",
	StatMax:           "max",
	StatAverage:       "avg",
	StatVariance:      "variance",
	StatStdDev:        "stddev",
	StatCount:         "count",
	StatCountDistinct: "countdistinct",
	StatMedian:        "median",
	StatFirst:         "first",
	StatLast:          "last",
}

// statAliases is the accepted spelling of every statistic. Keys are lower case.
var statAliases = map[string]Stat{
	"sum":           StatSum,
	"min":           StatMin,
	"max":           StatMax,
	"avg":           StatAverage,
	"average":       StatAverage,
	"mean":          StatAverage,
	"var":           StatVariance,
	"variance":      StatVariance,
	"stdev":         StatStdDev,
	"stddev":        StatStdDev,
	"count":         StatCount,
	"countdistinct": StatCountDistinct,
	"dcount":        StatCountDistinct,
	"distinct":      StatCountDistinct,
	"median":        StatMedian,
	"med":           StatMedian,
	"first":         StatFirst,
	"last":          StatLast,
}

// ParseStat resolves an aggregation name or one of its aliases, ignoring case.
func ParseStat(name string) (Stat, error) {
	if s, ok := statAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return s, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStat, name)
}

// String returns the canonical name.
func (s Stat) String() string {
	if name, ok := statNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Stat(%d)", int(s))
}

// IsCounting reports whether the statistic yields a count regardless of the
// column type.
func (s Stat) IsCounting() bool {
	return s == StatCount || s == StatCountDistinct
}

// Aggregator is implemented by both distributions. Format renders a
// statistic for display; an empty string means the statistic is undefined
// for the data.
type Aggregator interface {
	Format(s Stat) string
	Count() int
}
