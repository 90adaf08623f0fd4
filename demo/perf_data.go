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

package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/chartdata/core/aggregates"
	"github.com/google/chartdata/core/chartdata"
	"github.com/google/chartdata/core/compare"
	"github.com/google/chartdata/core/dateperiod"
	"github.com/google/chartdata/core/tables"
)

// Performance test configuration - easily modifiable cardinality
const (
	PERF_NUM_CATEGORIES = 200 // Low cardinality: join and group target
	PERF_NUM_PRODUCTS   = 50_000
)

// CreatePerfTransactionsTable creates a transaction table with n rows for
// performance testing.
func CreatePerfTransactionsTable(n int) tables.DataTable {
	fmt.Printf("Creating performance transactions table with %d rows...\n", n)

	specs := []tables.ColumnSpec{
		{Name: "txn_id", Type: "number"},
		{Name: "product_id", Type: "number"},
		{Name: "category_id", Type: "text"},
		{Name: "amount", Type: "number"},
		{Name: "status", Type: "text"},
		{Name: "day", Type: "datetime"},
	}

	// Status values for cycling
	statuses := []string{"pending", "completed", "cancelled", "processing"}
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	rows := make([][]string, n)
	for i := range rows {
		// Category ID: heavy reuse, category 0 more common
		categoryID := i % PERF_NUM_CATEGORIES
		if i%7 == 0 {
			categoryID = 0
		}
		rows[i] = []string{
			strconv.Itoa(i),
			strconv.Itoa(i % PERF_NUM_PRODUCTS),
			"cat_" + strconv.Itoa(categoryID),
			strconv.Itoa(10 + i%1000),
			statuses[i%len(statuses)],
			start.Add(time.Duration(i%(366*24)) * time.Hour).Format(time.RFC3339),
		}
	}

	t := tables.CreateSortableFromColumnsRows(specs, rows, tables.WithRowNumbers())
	fmt.Printf("  Created %d transactions\n", t.Length())
	return t
}

// CreatePerfCategoriesTable creates a category table for low-cardinality joins
func CreatePerfCategoriesTable() tables.DataTable {
	// Departments for categories
	departments := []string{"Electronics", "Home & Garden", "Sports", "Books", "Clothing"}

	rows := make([][]string, PERF_NUM_CATEGORIES)
	for i := range rows {
		rows[i] = []string{"cat_" + strconv.Itoa(i), departments[i%len(departments)]}
	}
	return tables.CreateSortableFromColumnsRows(
		[]tables.ColumnSpec{{Name: "category_id", Type: "text"}, {Name: "department", Type: "text"}},
		rows,
	)
}

// RunPerf times the operators over the synthetic transactions.
func RunPerf(n int) {
	txns := CreatePerfTransactionsTable(n)
	categories := CreatePerfCategoriesTable()

	amount, _ := txns.ColumnByName("amount")
	category, _ := txns.ColumnByName("category_id")
	status, _ := txns.ColumnByName("status")

	timed("OrderBy amount desc", func() tables.DataTable {
		return txns.OrderBy([]tables.Column{amount.WithDirection(compare.Descending)})
	})
	timed("FilterBy status IN", func() tables.DataTable {
		return txns.FilterBy([]tables.ColumnFilter{
			{Column: status, Type: tables.FilterIn, Value: []string{"pending", "completed"}},
		}, tables.FilterOptions{})
	})
	timed("GroupBy category_id", func() tables.DataTable {
		return txns.GroupBy([]tables.Column{category}, []tables.AggregationColumn{
			{Column: amount, Aggregation: aggregates.StatSum},
			{Column: amount, Aggregation: aggregates.StatAverage, Title: "avg_amount"},
		})
	})
	timed("InnerJoin categories", func() tables.DataTable {
		return txns.InnerJoin(categories, []string{"category_id"})
	})
	timed("Top 10 categories", func() tables.DataTable {
		return chartdata.FiltersTopBottomValues(txns, "category_id", "amount", aggregates.StatSum, 10, chartdata.Top)
	})
	timed("Transform day to weeks", func() tables.DataTable {
		return chartdata.TransformDateColumn(txns, "day", dateperiod.Weeks, dateperiod.DefaultLocale)
	})
}

func timed(name string, op func() tables.DataTable) {
	start := time.Now()
	result := op()
	fmt.Printf("  %-28s %8d rows in %v\n", name, result.Length(), time.Since(start))
}
