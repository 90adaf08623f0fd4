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

// Package structimport converts JSON query results, decoded as protobuf
// Struct values, to and from the tables package shapes.
//
// The payload is an object with a "columns" list of {"name", "type"} objects
// and a "rows" list of cell lists. A cell is a bare value or an object with a
// "data" value and optional "text", "color" and "blur" annotations:
//
//	{"columns": [{"name": "region", "type": "text"}, {"name": "sales", "type": "number"}],
//	 "rows": [["west", 12.5], ["east", {"data": 7, "text": "7 units", "color": "#c00"}]]}
package structimport

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/google/chartdata/core/columns"
	"github.com/google/chartdata/core/tables"
)

// ErrInvalidData is returned for payloads that do not have the expected shape.
var ErrInvalidData = errors.New("invalid table data")

// DecodeData parses a JSON payload into tables.Data.
func DecodeData(data []byte) (tables.Data, error) {
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(data, s); err != nil {
		return tables.Data{}, fmt.Errorf("failed to decode table data: %w", err)
	}
	return FromStruct(s)
}

// FromStruct converts a decoded payload into tables.Data.
func FromStruct(s *structpb.Struct) (tables.Data, error) {
	fields := s.GetFields()
	columnList, ok := fields["columns"].GetKind().(*structpb.Value_ListValue)
	if !ok {
		return tables.Data{}, fmt.Errorf("%w: missing columns list", ErrInvalidData)
	}

	var result tables.Data
	for i, v := range columnList.ListValue.GetValues() {
		column := v.GetStructValue()
		if column == nil {
			return tables.Data{}, fmt.Errorf("%w: column %d is not an object", ErrInvalidData, i)
		}
		name := column.GetFields()["name"].GetStringValue()
		if name == "" {
			return tables.Data{}, fmt.Errorf("%w: column %d has no name", ErrInvalidData, i)
		}
		result.Columns = append(result.Columns, tables.ColumnSpec{
			Name: name,
			Type: column.GetFields()["type"].GetStringValue(),
		})
	}

	for r, v := range fields["rows"].GetListValue().GetValues() {
		list, ok := v.GetKind().(*structpb.Value_ListValue)
		if !ok {
			return tables.Data{}, fmt.Errorf("%w: row %d is not a list", ErrInvalidData, r)
		}
		row := make([]any, 0, len(list.ListValue.GetValues()))
		for c, cv := range list.ListValue.GetValues() {
			cell, err := cellFromValue(cv)
			if err != nil {
				return tables.Data{}, fmt.Errorf("row %d, cell %d: %w", r, c, err)
			}
			row = append(row, cell)
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}

func cellFromValue(v *structpb.Value) (any, error) {
	obj, ok := v.GetKind().(*structpb.Value_StructValue)
	if !ok {
		return bareValue(v)
	}

	fields := obj.StructValue.GetFields()
	data, err := bareValue(fields["data"])
	if err != nil {
		return nil, err
	}
	cell := tables.StructuredCell{Data: data}
	if text, ok := fields["text"].GetKind().(*structpb.Value_StringValue); ok {
		cell.Text = &text.StringValue
	}
	if color, ok := fields["color"].GetKind().(*structpb.Value_StringValue); ok {
		cell.Color = &color.StringValue
	}
	if blur, ok := fields["blur"].GetKind().(*structpb.Value_BoolValue); ok {
		cell.Blur = &blur.BoolValue
	}
	return cell, nil
}

// bareValue converts a scalar; a missing value is nil.
func bareValue(v *structpb.Value) (any, error) {
	switch k := v.GetKind().(type) {
	case nil, *structpb.Value_NullValue:
		return nil, nil
	case *structpb.Value_NumberValue:
		return k.NumberValue, nil
	case *structpb.Value_StringValue:
		return k.StringValue, nil
	case *structpb.Value_BoolValue:
		return k.BoolValue, nil
	}
	return nil, fmt.Errorf("%w: nested value %v", ErrInvalidData, v)
}

// ToStruct converts a table into the payload shape. Cells whose display
// value differs from their raw value, or that carry annotations, are written
// as objects. Colors that Cell.Style would not render are dropped.
func ToStruct(t tables.DataTable) *structpb.Struct {
	cols := make([]*structpb.Value, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			"name": structpb.NewStringValue(c.Name),
			"type": structpb.NewStringValue(c.Type),
		}})
	}

	rows := make([]*structpb.Value, len(t.Rows))
	for r, row := range t.Rows {
		cells := make([]*structpb.Value, len(t.Columns))
		for i, c := range t.Columns {
			cells[i] = cellToValue(row, c)
		}
		rows[r] = structpb.NewListValue(&structpb.ListValue{Values: cells})
	}

	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"columns": structpb.NewListValue(&structpb.ListValue{Values: cols}),
		"rows":    structpb.NewListValue(&structpb.ListValue{Values: rows}),
	}}
}

// EncodeTable renders a table as a JSON payload DecodeData accepts.
func EncodeTable(t tables.DataTable) ([]byte, error) {
	b, err := protojson.Marshal(ToStruct(t))
	if err != nil {
		return nil, fmt.Errorf("failed to encode table: %w", err)
	}
	return b, nil
}

func cellToValue(row tables.Row, col tables.Column) *structpb.Value {
	if col.Index >= len(row) || row[col.Index] == nil {
		return structpb.NewNullValue()
	}
	cell := row[col.Index]

	var data *structpb.Value
	text := cell.DisplayValue
	switch raw := cell.RawValue.(type) {
	case float64:
		data = structpb.NewNumberValue(raw)
		text = columns.FormatNumber(raw)
	case string:
		data = structpb.NewStringValue(raw)
		text = raw
	default:
		data = structpb.NewStringValue(cell.DisplayValue)
	}

	color, hasColor := cell.SafeColor()
	if !hasColor && cell.Blur == nil && text == cell.DisplayValue {
		return data
	}
	fields := map[string]*structpb.Value{"data": data}
	if text != cell.DisplayValue {
		fields["text"] = structpb.NewStringValue(cell.DisplayValue)
	}
	if hasColor {
		fields["color"] = structpb.NewStringValue(color)
	}
	if cell.Blur != nil {
		fields["blur"] = structpb.NewBoolValue(*cell.Blur)
	}
	return structpb.NewStructValue(&structpb.Struct{Fields: fields})
}
