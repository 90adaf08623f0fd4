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
	"container/heap"
	"sort"
)

// topKHeap implements a max-heap for top-K selection
// When we want the first K rows, we use a max-heap:
// - If a new row sorts before the max, pop max and push the new row
// - At the end, heap contains the K first rows
type topKHeap struct {
	positions []int
	rows      []Row
	cmp       func(a, b Row) int
}

func (h *topKHeap) Len() int { return len(h.positions) }

// Less puts the row that sorts last at the top of the heap.
func (h *topKHeap) Less(i, j int) bool {
	return h.compare(h.positions[i], h.positions[j]) > 0
}

func (h *topKHeap) Swap(i, j int) {
	h.positions[i], h.positions[j] = h.positions[j], h.positions[i]
}

func (h *topKHeap) Push(x any) {
	h.positions = append(h.positions, x.(int))
}

func (h *topKHeap) Pop() any {
	old := h.positions
	n := len(old)
	x := old[n-1]
	h.positions = old[0 : n-1]
	return x
}

// compare orders two row positions by the columns, then by position so the
// selection agrees with a stable sort.
func (h *topKHeap) compare(i, j int) int {
	if cmp := h.cmp(h.rows[i], h.rows[j]); cmp != 0 {
		return cmp
	}
	return i - j
}

// TopK returns the first k rows of OrderBy(cols), without sorting the whole table.
// Uses heap-based selection: O(n log k) instead of O(n log n) for full sort.
func (t DataTable) TopK(cols []Column, k int) DataTable {
	if t.IsEmpty() {
		return Empty()
	}
	if k <= 0 {
		return DataTable{Columns: t.Columns, Rows: []Row{}}
	}
	if k >= len(t.Rows) {
		return t.OrderBy(cols)
	}

	h := &topKHeap{
		positions: make([]int, 0, k),
		rows:      t.Rows,
		cmp:       RowComparator(cols),
	}
	for i := 0; i < k; i++ {
		h.positions = append(h.positions, i)
	}
	heap.Init(h)

	for i := k; i < len(t.Rows); i++ {
		if h.compare(i, h.positions[0]) < 0 {
			heap.Pop(h)
			heap.Push(h, i)
		}
	}

	positions := h.positions
	sort.Slice(positions, func(a, b int) bool {
		return h.compare(positions[a], positions[b]) < 0
	})
	rows := make([]Row, len(positions))
	for i, p := range positions {
		rows[i] = t.Rows[p]
	}
	return DataTable{Columns: t.Columns, Rows: rows}
}
