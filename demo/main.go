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
	"flag"
	"fmt"
	"log"

	"github.com/google/chartdata/core/aggregates"
	"github.com/google/chartdata/core/chartdata"
	"github.com/google/chartdata/core/compare"
	"github.com/google/chartdata/core/dateperiod"
	"github.com/google/chartdata/core/tables"
)

func main() {
	perf := flag.Int("perf", 0, "also time the operators over this many synthetic rows")
	locale := flag.String("locale", "en-US", "locale for period labels")
	flag.Parse()

	loc, err := dateperiod.ParseLocale(*locale)
	if err != nil {
		log.Fatalf("Invalid locale: %v", err)
	}

	fmt.Println("Starting chartdata demo...")

	// Create demo tables with sample data
	sales := CreateSalesTable()
	regions := CreateRegionsTable()

	show("Sales", sales)
	show("Regions", regions)

	revenue, _ := sales.ColumnByName("revenue")
	show("Sales by revenue, descending", sales.OrderBy([]tables.Column{revenue.WithDirection(compare.Descending)}))

	product, _ := sales.ColumnByName("product")
	units, _ := sales.ColumnByName("units")
	show("Units per product", sales.GroupBy([]tables.Column{product}, []tables.AggregationColumn{
		{Column: units, Aggregation: aggregates.StatSum},
		{Column: revenue, Aggregation: aggregates.StatAverage, Title: "avg_revenue"},
	}))

	show("Sales joined with regions", sales.InnerJoin(regions, []string{"region"}))

	aggregated, err := chartdata.FilterAndAggregateTable(sales, chartdata.AggregateRequest{
		Attributes: []string{"region"},
		Measures:   []chartdata.Measure{{Name: "revenue"}, {Name: "units", Aggregation: aggregates.StatCount}},
		Filters:    []chartdata.Filter{{Column: "returned", Type: tables.FilterEqual, Value: false}},
	})
	if err != nil {
		log.Fatalf("Failed to aggregate sales: %v", err)
	}
	show("Revenue per region, returns excluded", aggregated)

	show("Top 2 regions by revenue", chartdata.FiltersTopBottomValues(sales, "region", "revenue", aggregates.StatSum, 2, chartdata.Top))
	show("Bottom 2 products by units", chartdata.FiltersTopBottomValues(sales, "product", "units", aggregates.StatSum, 2, chartdata.Bottom))

	months := chartdata.TransformDateColumn(sales, "date", dateperiod.Months, loc)
	monthCol, _ := months.ColumnByName("date")
	monthRevenue, _ := months.ColumnByName("revenue")
	show("Revenue per month", months.GroupBy([]tables.Column{monthCol}, []tables.AggregationColumn{
		{Column: monthRevenue, Aggregation: aggregates.StatSum},
	}))

	weekdays := chartdata.TransformDateColumn(sales, "date", dateperiod.DayOfWeek, loc)
	weekdayCol, _ := weekdays.ColumnByName("date")
	weekdayUnits, _ := weekdays.ColumnByName("units")
	show("Units per day of week", weekdays.GroupBy([]tables.Column{weekdayCol}, []tables.AggregationColumn{
		{Column: weekdayUnits, Aggregation: aggregates.StatSum},
	}))

	if *perf > 0 {
		fmt.Println()
		RunPerf(*perf)
	}
}

func show(title string, t tables.DataTable) {
	fmt.Printf("\n%s\n%s", title, t)
}
