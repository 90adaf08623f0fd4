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
	_ "embed"
	"fmt"
	"log"
	"strings"

	"github.com/google/chartdata/core/csvimport"
	"github.com/google/chartdata/core/structimport"
	"github.com/google/chartdata/core/tables"
)

//go:embed data/sales.csv
var salesCSV string

//go:embed data/sales_source.json
var salesSource []byte

//go:embed data/regions.json
var regionsJSON []byte

// CreateSalesTable imports the embedded sales CSV with its table source.
func CreateSalesTable() tables.DataTable {
	options, err := csvimport.OptionsFromTableSource(salesSource)
	if err != nil {
		log.Fatalf("failed to parse sales table source: %v", err)
	}
	table, err := csvimport.ImportFromReader(strings.NewReader(salesCSV), options)
	if err != nil {
		log.Fatalf("failed to import sales CSV: %v", err)
	}
	fmt.Printf("\nsales Data: %d rows imported from CSV\n", table.Length())
	return table
}

// RegionsData decodes the embedded regions query result.
func RegionsData() tables.Data {
	data, err := structimport.DecodeData(regionsJSON)
	if err != nil {
		log.Fatalf("failed to decode regions: %v", err)
	}
	return data
}

// CreateRegionsTable builds the regions table, annotations included.
func CreateRegionsTable() tables.DataTable {
	table := tables.CreateDataTableFromData(RegionsData())
	fmt.Printf("\nregions Data: %d rows decoded from JSON\n", table.Length())
	return table
}
