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
	"fmt"
	"strings"
	"unicode/utf8"
)

// String renders the table as an ASCII grid, for debugging and test failures.
func (t DataTable) String() string {
	if len(t.Columns) == 0 {
		return "(empty table)\n"
	}
	var sb strings.Builder

	colWidths := t.calculateColumnWidths()

	writeBorder := func() {
		for _, w := range colWidths {
			sb.WriteString("+")
			sb.WriteString(strings.Repeat("-", w+2))
		}
		sb.WriteString("+\n")
	}
	writeCells := func(values []string) {
		for i, v := range values {
			sb.WriteString("| ")
			sb.WriteString(v)
			sb.WriteString(strings.Repeat(" ", colWidths[i]-utf8.RuneCountInString(v)+1))
		}
		sb.WriteString("|\n")
	}

	writeBorder()
	writeCells(t.GetColumnNames())
	writeBorder()
	for _, row := range t.Rows {
		writeCells(t.rowStrings(row))
	}
	writeBorder()
	fmt.Fprintf(&sb, "%d rows\n", len(t.Rows))
	return sb.String()
}

func (t DataTable) rowStrings(row Row) []string {
	values := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		values[i] = GetDisplayValue(row, c)
	}
	return values
}

// calculateColumnWidths calculates the width needed for each column
func (t DataTable) calculateColumnWidths() []int {
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = utf8.RuneCountInString(c.Name)
	}
	for _, row := range t.Rows {
		for i, v := range t.rowStrings(row) {
			if n := utf8.RuneCountInString(v); n > widths[i] {
				widths[i] = n
			}
		}
	}
	return widths
}
