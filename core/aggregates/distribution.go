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

package aggregates

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"github.com/google/chartdata/core/columns"
)

// Distribution computes statistics over numeric data. Datetime columns are
// aggregated as epoch milliseconds and formatted back to ISO strings.
//
// Every statistic is computed on first use and memoised. Memoisation is
// tracked with explicit flags so a statistic whose value is 0 is not
// recomputed. On empty data all statistics are NaN except Count and
// CountDistinct, which are 0.
//
// CountDistinct uses a hash set; it yields the same count as a first-index
// scan, including ignoring NaN values.
type Distribution struct {
	data     []float64
	datetime bool

	computed map[Stat]bool
	values   map[Stat]float64
}

// NewDistribution wraps data without copying it.
func NewDistribution(data []float64) *Distribution {
	return &Distribution{
		data:     data,
		computed: make(map[Stat]bool),
		values:   make(map[Stat]float64),
	}
}

// NewDatetimeDistribution wraps epoch milliseconds; value statistics are
// formatted as ISO timestamps.
func NewDatetimeDistribution(millis []float64) *Distribution {
	d := NewDistribution(millis)
	d.datetime = true
	return d
}

// Stat returns the named statistic.
func (d *Distribution) Stat(s Stat) float64 {
	if d.computed[s] {
		return d.values[s]
	}
	v := d.compute(s)
	d.computed[s] = true
	d.values[s] = v
	return v
}

// GetStat resolves name through ParseStat. Unknown names yield NaN.
func (d *Distribution) GetStat(name string) float64 {
	s, err := ParseStat(name)
	if err != nil {
		return math.NaN()
	}
	return d.Stat(s)
}

func (d *Distribution) compute(s Stat) float64 {
	n := len(d.data)
	if s == StatCount {
		return float64(n)
	}
	if s == StatCountDistinct {
		return float64(d.countDistinct())
	}
	if n == 0 {
		return math.NaN()
	}

	switch s {
	case StatSum:
		return d.sum()
	case StatMin:
		m := d.data[0]
		for _, v := range d.data[1:] {
			m = math.Min(m, v)
		}
		return m
	case StatMax:
		m := d.data[0]
		for _, v := range d.data[1:] {
			m = math.Max(m, v)
		}
		return m
	case StatAverage:
		return stat.Mean(d.data, nil)
	case StatVariance:
		if n == 1 {
			return 0
		}
		return stat.Variance(d.data, nil)
	case StatStdDev:
		return math.Sqrt(d.Stat(StatVariance))
	case StatMedian:
		return d.median()
	case StatFirst:
		return d.data[0]
	case StatLast:
		return d.data[n-1]
	}
	return math.NaN()
}

// sum adds in decimal so decimal inputs such as 3.14 + 3.45 add up exactly.
func (d *Distribution) sum() float64 {
	total := decimal.Zero
	for _, v := range d.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return floatSum(d.data)
		}
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.InexactFloat64()
}

func floatSum(data []float64) float64 {
	var s float64
	for _, v := range data {
		s += v
	}
	return s
}

func (d *Distribution) median() float64 {
	sorted := make([]float64, len(d.data))
	copy(sorted, d.data)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return stat.Mean(sorted[mid-1:mid+1], nil)
}

func (d *Distribution) countDistinct() int {
	seen := make(map[float64]struct{}, len(d.data))
	for _, v := range d.data {
		if math.IsNaN(v) {
			continue
		}
		seen[v] = struct{}{}
	}
	return len(seen)
}

// Sum is a shorthand for Stat(StatSum).
func (d *Distribution) Sum() float64 {
	return d.Stat(StatSum)
}

func (d *Distribution) Min() float64 {
	return d.Stat(StatMin)
}

func (d *Distribution) Max() float64 {
	return d.Stat(StatMax)
}

// Average is the arithmetic mean.
func (d *Distribution) Average() float64 {
	return d.Stat(StatAverage)
}

// Variance is the sample variance (n-1 denominator).
func (d *Distribution) Variance() float64 {
	return d.Stat(StatVariance)
}

func (d *Distribution) StdDev() float64 {
	return d.Stat(StatStdDev)
}

// Count returns the number of values.
func (d *Distribution) Count() int {
	return len(d.data)
}

// CountDistinct returns the number of distinct non-NaN values.
func (d *Distribution) CountDistinct() int {
	return int(d.Stat(StatCountDistinct))
}

// Format renders s for display. Undefined results render as "".
func (d *Distribution) Format(s Stat) string {
	v := d.Stat(s)
	if math.IsNaN(v) {
		return ""
	}
	if d.datetime && isTimeValued(s) {
		return columns.FormatISO(time.UnixMilli(int64(math.Round(v))))
	}
	return columns.FormatNumber(v)
}

// isTimeValued reports whether the statistic of a datetime column is itself a point in time.
func isTimeValued(s Stat) bool {
	switch s {
	case StatMin, StatMax, StatAverage, StatMedian, StatFirst, StatLast:
		return true
	}
	return false
}
