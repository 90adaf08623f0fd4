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

package structimport

import (
	"errors"
	"testing"

	"github.com/google/chartdata/core/tables"
)

const payload = `{
  "columns": [
    {"name": "region", "type": "text"},
    {"name": "sales", "type": "number"},
    {"name": "day", "type": "datetime"}
  ],
  "rows": [
    ["west", 12.5, "2024-05-15"],
    ["east", {"data": 7, "text": "7 units", "color": "#c00", "blur": true}, null],
    [{"data": "north"}, null, 0]
  ]
}`

func TestDecodeData(t *testing.T) {
	data, err := DecodeData([]byte(payload))
	if err != nil {
		t.Fatalf("DecodeData: %v", err)
	}
	if len(data.Columns) != 3 || data.Columns[1].Name != "sales" || data.Columns[1].Type != "number" {
		t.Errorf("Columns = %+v", data.Columns)
	}
	if len(data.Rows) != 3 {
		t.Fatalf("len(Rows) = %d, want 3", len(data.Rows))
	}

	if got := data.Rows[0][1]; got != 12.5 {
		t.Errorf("Rows[0][1] = %v, want 12.5", got)
	}
	if got := data.Rows[1][2]; got != nil {
		t.Errorf("Rows[1][2] = %v, want nil", got)
	}

	sc, ok := data.Rows[1][1].(tables.StructuredCell)
	if !ok {
		t.Fatalf("Rows[1][1] = %T, want StructuredCell", data.Rows[1][1])
	}
	if sc.Data != 7.0 || sc.Text == nil || *sc.Text != "7 units" {
		t.Errorf("structured cell = %+v", sc)
	}
	if sc.Color == nil || *sc.Color != "#c00" || sc.Blur == nil || !*sc.Blur {
		t.Errorf("annotations not decoded: %+v", sc)
	}

	plain, ok := data.Rows[2][0].(tables.StructuredCell)
	if !ok || plain.Text != nil || plain.Color != nil || plain.Blur != nil {
		t.Errorf("Rows[2][0] = %+v, want a structured cell without annotations", data.Rows[2][0])
	}
}

func TestDecodeData_BuildsTable(t *testing.T) {
	data, err := DecodeData([]byte(payload))
	if err != nil {
		t.Fatalf("DecodeData: %v", err)
	}
	table := tables.CreateDataTableFromData(data)

	sales, _ := table.ColumnByName("sales")
	cell := table.Rows[1][sales.Index]
	if cell.DisplayValue != "7 units" || tables.GetValue(table.Rows[1], sales) != 7.0 {
		t.Errorf("sales cell = %q/%v", cell.DisplayValue, tables.GetValue(table.Rows[1], sales))
	}
	if cell.Style().String() != "color:#c00;" {
		t.Errorf("Style() = %q", cell.Style().String())
	}

	day, _ := table.ColumnByName("day")
	if got := tables.GetDisplayValue(table.Rows[2], day); got != "1970-01-01T00:00:00.000Z" {
		t.Errorf("epoch day = %q", got)
	}
}

func TestDecodeData_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"no columns", `{"rows": []}`},
		{"column not an object", `{"columns": ["region"]}`},
		{"column without name", `{"columns": [{"type": "text"}]}`},
		{"row not a list", `{"columns": [{"name": "a"}], "rows": [{"a": 1}]}`},
		{"nested list", `{"columns": [{"name": "a"}], "rows": [[[1, 2]]]}`},
	}
	for _, tt := range tests {
		if _, err := DecodeData([]byte(tt.payload)); !errors.Is(err, ErrInvalidData) {
			t.Errorf("%s: error = %v, want ErrInvalidData", tt.name, err)
		}
	}
	if _, err := DecodeData([]byte(`{`)); err == nil {
		t.Errorf("expected error for malformed JSON")
	}
}

func TestEncodeTable_RoundTrip(t *testing.T) {
	data, err := DecodeData([]byte(payload))
	if err != nil {
		t.Fatalf("DecodeData: %v", err)
	}
	table := tables.CreateDataTableFromData(data)

	encoded, err := EncodeTable(table)
	if err != nil {
		t.Fatalf("EncodeTable: %v", err)
	}
	decoded, err := DecodeData(encoded)
	if err != nil {
		t.Fatalf("DecodeData(EncodeTable): %v\n%s", err, encoded)
	}
	again := tables.CreateDataTableFromData(decoded)

	// The encoded row numbers come back as a regular column next to the new ones.
	for _, c := range table.Columns {
		got, ok := again.ColumnByName(c.Name)
		if !ok {
			t.Errorf("column %s lost", c.Name)
			continue
		}
		for r := range table.Rows {
			want := tables.GetDisplayValue(table.Rows[r], c)
			if v := tables.GetDisplayValue(again.Rows[r], got); v != want {
				t.Errorf("row %d %s = %q, want %q", r, c.Name, v, want)
			}
		}
	}
	sales, _ := again.ColumnByName("sales")
	if cell := again.Rows[1][sales.Index]; !cell.IsBlurred() || cell.Color == nil {
		t.Errorf("annotations lost in round trip")
	}
}

func TestEncodeTable_DropsUnsafeColors(t *testing.T) {
	table := tables.CreateDataTableFromData(tables.Data{
		Columns: []tables.ColumnSpec{{Name: "region", Type: "text"}},
		Rows: [][]any{
			{tables.StructuredCell{Data: "west", Color: strPtr("red;background:url(x)")}},
			{tables.StructuredCell{Data: "east", Color: strPtr("green")}},
		},
	})
	s := ToStruct(table)
	rows := s.GetFields()["rows"].GetListValue().GetValues()
	if v := rows[0].GetListValue().GetValues()[0]; v.GetStringValue() != "west" {
		t.Errorf("row 0 region = %v, want bare west", v)
	}
	east := rows[1].GetListValue().GetValues()[0].GetStructValue().GetFields()
	if got := east["color"].GetStringValue(); got != "green" {
		t.Errorf("row 1 color = %q, want green", got)
	}
}

func strPtr(s string) *string { return &s }
