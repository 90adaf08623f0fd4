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
	"os"
	"strings"

	"github.com/google/chartdata/core/aggregates"
	"github.com/google/chartdata/core/chartdata"
	"github.com/google/chartdata/core/dateperiod"
	"github.com/google/chartdata/core/structimport"
	"github.com/google/chartdata/core/tables"
	"github.com/google/chartdata/datasources"
)

// periodNames are the -period values, as dateperiod.ParseGranularity spells them.
var periodNames = []string{
	"years", "quarters", "months", "weeks", "days",
	"quarterNumber", "monthName", "dayOfWeek", "timeOfDay",
}

type options struct {
	config     string
	source     string
	attributes string
	measures   string
	filters    string
	anyFilter  bool
	dateColumn string
	period     string
	locale     string
	top        int
	rank       string
	format     string
}

func main() {
	var o options
	flag.StringVar(&o.config, "config", "demo/data/data_sources.json", "JSON data sources config")
	flag.StringVar(&o.source, "source", "sales", "name of the source to chart")
	flag.StringVar(&o.attributes, "attributes", "", "comma separated attributes to group by")
	flag.StringVar(&o.measures, "measures", "", "comma separated measures as name[:aggregation]")
	flag.StringVar(&o.filters, "filters", "", "comma separated filters as column:type:value")
	flag.BoolVar(&o.anyFilter, "any", false, "keep rows matching any filter instead of all")
	flag.StringVar(&o.dateColumn, "date-column", "", "datetime column to bucket with -period")
	flag.StringVar(&o.period, "period", "", strings.Join(periodNames, ", "))
	flag.StringVar(&o.locale, "locale", "en-US", "locale for week starts and period labels")
	flag.IntVar(&o.top, "top", 0, "keep only the n best ranked values of the first attribute")
	flag.StringVar(&o.rank, "rank", "top", "top or bottom")
	flag.StringVar(&o.format, "format", "ascii", "output format: ascii or json")
	flag.Parse()

	manager := datasources.NewManager()
	if err := manager.LoadConfig(o.config); err != nil {
		log.Fatalf("Failed to load data sources: %v", err)
	}
	table, err := manager.LoadData(o.source)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", o.source, err)
	}

	result, err := run(table, o)
	if err != nil {
		log.Fatalf("Failed to chart %s: %v", o.source, err)
	}

	switch o.format {
	case "json":
		out, err := structimport.EncodeTable(result)
		if err != nil {
			log.Fatalf("Failed to encode result: %v", err)
		}
		fmt.Println(string(out))
	case "ascii":
		fmt.Print(result)
	default:
		fmt.Fprintf(os.Stderr, "unknown format %q\n", o.format)
		os.Exit(2)
	}
}

// run applies the date bucketing, the top/bottom ranking and the
// aggregation asked for by o, in that order.
func run(table tables.DataTable, o options) (tables.DataTable, error) {
	if o.period != "" {
		g, err := dateperiod.ParseGranularity(o.period)
		if err != nil {
			return tables.Empty(), err
		}
		loc, err := dateperiod.ParseLocale(o.locale)
		if err != nil {
			return tables.Empty(), err
		}
		if o.dateColumn == "" {
			return tables.Empty(), fmt.Errorf("-period needs -date-column")
		}
		table = chartdata.TransformDateColumn(table, o.dateColumn, g, loc)
	}

	attributes := splitList(o.attributes)
	measures, err := parseMeasures(o.measures)
	if err != nil {
		return tables.Empty(), err
	}
	filters, err := parseFilters(o.filters)
	if err != nil {
		return tables.Empty(), err
	}
	filterOptions := tables.FilterOptions{}
	if o.anyFilter {
		filterOptions.Operator = tables.Or
	}

	if o.top > 0 {
		if len(attributes) == 0 || len(measures) == 0 {
			return tables.Empty(), fmt.Errorf("-top needs an attribute and a measure")
		}
		rank, err := chartdata.ParseRank(o.rank)
		if err != nil {
			return tables.Empty(), err
		}
		filter, ok := chartdata.TopBottomFilter(table, attributes[0], measures[0].Name, measures[0].Aggregation, o.top, rank)
		if !ok {
			return tables.Empty(), nil
		}
		table = table.FilterBy([]tables.ColumnFilter{filter}, tables.FilterOptions{})
	}

	if len(attributes) == 0 {
		return table.FilterBy(resolveFilters(table, filters), filterOptions), nil
	}
	return chartdata.FilterAndAggregateTable(table, chartdata.AggregateRequest{
		Attributes:    attributes,
		Measures:      measures,
		Filters:       filters,
		FilterOptions: filterOptions,
	})
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseMeasures parses "revenue:sum,units:count". A bare name is summed.
func parseMeasures(s string) ([]chartdata.Measure, error) {
	var measures []chartdata.Measure
	for _, part := range splitList(s) {
		name, stat, found := strings.Cut(part, ":")
		m := chartdata.Measure{Name: name}
		if found {
			agg, err := aggregates.ParseStat(stat)
			if err != nil {
				return nil, err
			}
			m.Aggregation = agg
		}
		measures = append(measures, m)
	}
	return measures, nil
}

// parseFilters parses "region:in:west|east,units:greater:3". Values of in
// and notin filters are separated by '|'.
func parseFilters(s string) ([]chartdata.Filter, error) {
	var filters []chartdata.Filter
	for _, part := range splitList(s) {
		fields := strings.SplitN(part, ":", 3)
		if len(fields) != 3 {
			return nil, fmt.Errorf("filter %q is not column:type:value", part)
		}
		ft, err := tables.ParseFilterType(fields[1])
		if err != nil {
			return nil, err
		}
		var value any = fields[2]
		if ft == tables.FilterIn || ft == tables.FilterNotIn {
			value = strings.Split(fields[2], "|")
		}
		filters = append(filters, chartdata.Filter{Column: fields[0], Type: ft, Value: value})
	}
	return filters, nil
}

func resolveFilters(table tables.DataTable, filters []chartdata.Filter) []tables.ColumnFilter {
	resolved := make([]tables.ColumnFilter, 0, len(filters))
	for _, f := range filters {
		if col, ok := table.ColumnByName(f.Column); ok {
			resolved = append(resolved, tables.ColumnFilter{Column: col, Type: f.Type, Value: f.Value})
		}
	}
	return resolved
}
