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

// Package builder turns column definitions and raw rows into the column
// model and row set a grid displays.
//
// Outside pivot mode definitions convert one to one and rows pass through.
// In pivot mode the definitions are read as a flat list of roles: row-group
// columns come first, then one column (or one group of value columns) per
// distinct pivot label, and every other column is dropped. The rows are the
// matching pivot.Transform output.
package builder

import (
	"github.com/google/pivotgrid/core/aggregates"
	"github.com/google/pivotgrid/core/columns"
	"github.com/google/pivotgrid/core/definitions"
	"github.com/google/pivotgrid/core/logging"
	"github.com/google/pivotgrid/core/pivot"
	"github.com/google/pivotgrid/core/rows"
)

// DefaultWidth is the width of a column defined without one.
const DefaultWidth = 120

// Class names given to synthesized pivot headers and cells.
const (
	PivotGroupClass = "pivot-group"
	PivotValueClass = "pivot-value"
)

// Options controls Build.
type Options struct {
	PivotMode bool
	// Logger receives transform diagnostics. nil uses the package logger.
	Logger logging.Logger
}

// Result is the column model and rows for one build.
type Result struct {
	Columns []columns.Column
	Rows    []rows.Row
	// Transform holds the field roles used in pivot mode; empty otherwise.
	Transform pivot.Options
}

// Build converts defs and data for display.
func Build(defs []definitions.Definition, data []rows.Row, opts Options) Result {
	if !opts.PivotMode {
		return Result{
			Columns: Convert(defs),
			Rows:    data,
		}
	}

	transform := TransformOptions(defs)
	transform.Logger = opts.Logger
	return Result{
		Columns:   PivotColumns(defs, data),
		Rows:      pivot.Transform(data, transform),
		Transform: transform,
	}
}

// Convert maps definitions to columns one to one, preserving group nesting
// and dropping hidden definitions. A group whose children are all hidden
// is dropped too.
func Convert(defs []definitions.Definition) []columns.Column {
	result := make([]columns.Column, 0, len(defs))
	for _, d := range defs {
		if d.Hidden() {
			continue
		}
		switch {
		case d.Group != nil:
			children := Convert(d.Group.Children)
			if len(children) == 0 {
				continue
			}
			result = append(result, columns.NewGroup(columns.Group{
				GroupID:         d.Group.GroupID,
				HeaderName:      firstNonEmpty(d.Group.HeaderName, d.Group.GroupID),
				HeaderClassName: d.Group.HeaderClassName,
				Children:        children,
			}))
		case d.Col != nil:
			result = append(result, columns.NewLeaf(ConvertColDef(*d.Col)))
		}
	}
	return result
}

// ConvertColDef fills the defaults of a leaf: field and colId default to
// each other, the header to the field, the type to string and the width to
// DefaultWidth.
func ConvertColDef(c definitions.ColDef) columns.Leaf {
	dataType := columns.TypeString
	if c.DataType != "" {
		dataType = columns.ParseDataType(string(c.DataType))
	}
	return columns.Leaf{
		Field:           c.FieldName(),
		ColID:           c.ID(),
		HeaderName:      firstNonEmpty(c.HeaderName, c.Field, c.ColID),
		HeaderClassName: c.HeaderClassName,
		CellClassName:   c.CellClassName,
		DataType:        dataType,
		DataFormat:      c.DataFormat,
		Formatter:       c.Formatter,
		Width:           widthOrDefault(c.Width),
		Sorted:          columns.ParseSortState(c.Sort),
	}
}

// TransformOptions extracts the row-group, pivot and value fields from the
// flattened definitions, in declaration order.
func TransformOptions(defs []definitions.Definition) pivot.Options {
	var opts pivot.Options
	for _, c := range definitions.Flatten(defs) {
		if c.RowGroup {
			opts.Grouped = append(opts.Grouped, c.FieldName())
		}
		if c.Pivot {
			opts.Pivot = append(opts.Pivot, c.FieldName())
		}
		if c.AggFunc != "" {
			opts.Values = append(opts.Values, aggregates.Descriptor{Field: c.FieldName(), Func: c.AggFunc})
		}
	}
	return opts
}

// PivotColumns synthesizes the pivot-mode column model. Pivot columns
// depend on the labels present in data.
func PivotColumns(defs []definitions.Definition, data []rows.Row) []columns.Column {
	var rowGroup, pivotCols, valueCols []definitions.ColDef
	for _, c := range definitions.Flatten(defs) {
		if c.RowGroup {
			rowGroup = append(rowGroup, c)
		}
		if c.Pivot {
			pivotCols = append(pivotCols, c)
		}
		if c.AggFunc != "" {
			valueCols = append(valueCols, c)
		}
	}

	result := make([]columns.Column, 0, len(rowGroup))
	for _, c := range rowGroup {
		result = append(result, columns.NewLeaf(ConvertColDef(c)))
	}

	if len(pivotCols) == 0 {
		for _, c := range valueCols {
			result = append(result, columns.NewLeaf(ConvertColDef(c)))
		}
		return result
	}
	if len(valueCols) == 0 {
		return result
	}

	pivotFields := make([]string, len(pivotCols))
	for i, c := range pivotCols {
		pivotFields[i] = c.FieldName()
	}

	for _, label := range pivot.Labels(data, pivotFields) {
		if len(valueCols) == 1 {
			result = append(result, columns.NewLeaf(pivotValueLeaf(valueCols[0], label, 1)))
			continue
		}
		children := make([]columns.Column, len(valueCols))
		for i, c := range valueCols {
			children[i] = columns.NewLeaf(pivotValueLeaf(c, label, len(valueCols)))
		}
		result = append(result, columns.NewGroup(columns.Group{
			GroupID:         "pivot-" + label,
			HeaderName:      label,
			HeaderClassName: PivotGroupClass,
			Children:        children,
		}))
	}
	return result
}

// pivotValueLeaf builds the leaf for value column c under label. Its field
// is the key pivot.Transform writes the aggregate to. A lone value column is
// headed by the label itself.
func pivotValueLeaf(c definitions.ColDef, label string, valueCount int) columns.Leaf {
	header := label
	if valueCount > 1 {
		header = firstNonEmpty(c.HeaderName, c.Field, c.ColID)
	}
	dataType := columns.TypeNumber
	if c.DataType != "" {
		dataType = columns.ParseDataType(string(c.DataType))
	}
	return columns.Leaf{
		Field:           pivot.ColumnKey(c.FieldName(), label, valueCount),
		ColID:           pivot.ColumnKey(c.ID(), label, valueCount),
		HeaderName:      header,
		HeaderClassName: firstNonEmpty(c.HeaderClassName, PivotValueClass),
		CellClassName:   firstNonEmpty(c.CellClassName, PivotValueClass),
		DataType:        dataType,
		DataFormat:      c.DataFormat,
		Formatter:       c.Formatter,
		Width:           widthOrDefault(c.Width),
		Sorted:          columns.ParseSortState(c.Sort),
	}
}

func widthOrDefault(w int) int {
	if w > 0 {
		return w
	}
	return DefaultWidth
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
