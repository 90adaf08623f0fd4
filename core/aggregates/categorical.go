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
	"strconv"
)

// CategoricalDistribution offers the Distribution contract for string data.
// Only order-free statistics are defined: Count, CountDistinct, Min and Max
// (byte-wise lexicographic), First and Last. The rest are undefined.
type CategoricalDistribution struct {
	data []string

	distinct   int
	distinctOK bool
}

// NewCategoricalDistribution wraps data without copying it.
func NewCategoricalDistribution(data []string) *CategoricalDistribution {
	return &CategoricalDistribution{data: data}
}

// Count returns the number of values.
func (c *CategoricalDistribution) Count() int {
	return len(c.data)
}

// CountDistinct returns the number of distinct values.
func (c *CategoricalDistribution) CountDistinct() int {
	if c.distinctOK {
		return c.distinct
	}
	seen := make(map[string]struct{}, len(c.data))
	for _, v := range c.data {
		seen[v] = struct{}{}
	}
	c.distinct = len(seen)
	c.distinctOK = true
	return c.distinct
}

// Stat returns the statistic and whether it is defined for this data.
func (c *CategoricalDistribution) Stat(s Stat) (string, bool) {
	switch s {
	case StatCount:
		return strconv.Itoa(c.Count()), true
	case StatCountDistinct:
		return strconv.Itoa(c.CountDistinct()), true
	}
	if len(c.data) == 0 {
		return "", false
	}
	switch s {
	case StatMin:
		m := c.data[0]
		for _, v := range c.data[1:] {
			if v < m {
				m = v
			}
		}
		return m, true
	case StatMax:
		m := c.data[0]
		for _, v := range c.data[1:] {
			if v > m {
				m = v
			}
		}
		return m, true
	case StatFirst:
		return c.data[0], true
	case StatLast:
		return c.data[len(c.data)-1], true
	}
	return "", false
}

// GetStat resolves name through ParseStat.
func (c *CategoricalDistribution) GetStat(name string) (string, bool) {
	s, err := ParseStat(name)
	if err != nil {
		return "", false
	}
	return c.Stat(s)
}

// Format renders s for display; undefined statistics render as "".
func (c *CategoricalDistribution) Format(s Stat) string {
	v, _ := c.Stat(s)
	return v
}
