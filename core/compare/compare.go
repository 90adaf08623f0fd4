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

package compare

import (
	"strings"
)

// Direction is the sort direction attached to a column.
type Direction int

const (
	Descending Direction = -1
	Unsorted   Direction = 0
	Ascending  Direction = 1
)

// Reverse returns the opposite direction. Unsorted stays unsorted.
func (d Direction) Reverse() Direction {
	return -d
}

// Natural compares two values without direction.
// Returns -1 if a < b, 0 if equal, 1 if a > b.
// Sentinels are greater than every defined value and equal to each other.
func Natural(a, b Value) int {
	aSentinel := a.IsSentinel()
	bSentinel := b.IsSentinel()

	if aSentinel && bSentinel {
		return 0
	}
	if aSentinel {
		return 1
	}
	if bSentinel {
		return -1
	}

	if a.Kind != b.Kind {
		// Numbers before text; only reachable when cells of one column were
		// built with different types.
		if a.Kind == KindNumber {
			return -1
		}
		return 1
	}

	if a.Kind == KindText {
		return strings.Compare(a.Lowercase, b.Lowercase)
	}
	return compareFloat64s(a.Number, b.Number)
}

// Compare applies dir to the natural order. Sentinels sort last in both
// directions; Unsorted never discriminates.
func Compare(a, b Value, dir Direction) int {
	if dir == Unsorted {
		return 0
	}
	aSentinel := a.IsSentinel()
	bSentinel := b.IsSentinel()
	if aSentinel || bSentinel {
		return Natural(a, b)
	}
	return Natural(a, b) * int(dir)
}

// compareFloat64s compares two non-NaN float64 values.
func compareFloat64s(a, b float64) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
