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

package builder

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/google/pivotgrid/core/columns"
	"github.com/google/pivotgrid/core/definitions"
	"github.com/google/pivotgrid/core/rows"
)

var ignoreFormatter = cmpopts.IgnoreFields(columns.Leaf{}, "Formatter")

func medalDefs(values ...definitions.ColDef) []definitions.Definition {
	defs := []definitions.Definition{
		definitions.Col(definitions.ColDef{Field: "country", HeaderName: "Country", RowGroup: true}),
		definitions.Col(definitions.ColDef{Field: "year", DataType: columns.TypeNumber, Pivot: true}),
		definitions.Col(definitions.ColDef{Field: "sport", Pivot: true}),
		definitions.Col(definitions.ColDef{Field: "athlete"}),
	}
	children := make([]definitions.Definition, len(values))
	for i, v := range values {
		children[i] = definitions.Col(v)
	}
	return append(defs, definitions.Group(definitions.GroupDef{GroupID: "medals", Children: children}))
}

func medalRows() []rows.Row {
	return []rows.Row{
		{"country": "USA", "year": 2020, "sport": "Swim", "gold": 5, "silver": 1, "athlete": "A"},
		{"country": "USA", "year": 2020, "sport": "Swim", "gold": 3, "silver": 0, "athlete": "B"},
		{"country": "China", "year": 2016, "sport": "Dive", "gold": 2, "silver": 4, "athlete": "C"},
	}
}

func TestConvertDefaults(t *testing.T) {
	testCases := []struct {
		def  definitions.ColDef
		want columns.Leaf
	}{
		{
			definitions.ColDef{Field: "name"},
			columns.Leaf{Field: "name", ColID: "name", HeaderName: "name", DataType: columns.TypeString, Width: 120},
		},
		{
			definitions.ColDef{ColID: "id"},
			columns.Leaf{Field: "id", ColID: "id", HeaderName: "id", DataType: columns.TypeString, Width: 120},
		},
		{
			definitions.ColDef{
				Field: "salary", ColID: "pay", HeaderName: "Salary", DataType: columns.TypeNumber,
				DataFormat: "currency", Width: 90, Sort: "desc", CellClassName: "money",
			},
			columns.Leaf{
				Field: "salary", ColID: "pay", HeaderName: "Salary", CellClassName: "money",
				DataType: columns.TypeNumber, DataFormat: "currency", Width: 90, Sorted: columns.SortDesc,
			},
		},
		{
			definitions.ColDef{Field: "x", DataType: "weird", Sort: "sideways"},
			columns.Leaf{Field: "x", ColID: "x", HeaderName: "x", DataType: columns.TypeString, Width: 120},
		},
	}
	for _, tc := range testCases {
		got := ConvertColDef(tc.def)
		if diff := cmp.Diff(tc.want, got, ignoreFormatter); diff != "" {
			t.Errorf("ConvertColDef(%+v) mismatch (-want +got):\n%s", tc.def, diff)
		}
	}
}

func TestConvertKeepsNestingAndDropsHidden(t *testing.T) {
	defs := []definitions.Definition{
		definitions.Col(definitions.ColDef{Field: "id"}),
		definitions.Col(definitions.ColDef{Field: "secret", Hide: true}),
		definitions.Group(definitions.GroupDef{
			GroupID: "personal",
			Children: []definitions.Definition{
				definitions.Col(definitions.ColDef{Field: "name"}),
				definitions.Group(definitions.GroupDef{
					GroupID:    "contact",
					HeaderName: "Contact",
					Children: []definitions.Definition{
						definitions.Col(definitions.ColDef{Field: "email"}),
						definitions.Col(definitions.ColDef{Field: "phone", Hide: true}),
					},
				}),
			},
		}),
		definitions.Group(definitions.GroupDef{GroupID: "hidden", Hide: true, Children: []definitions.Definition{
			definitions.Col(definitions.ColDef{Field: "a"}),
		}}),
		definitions.Group(definitions.GroupDef{GroupID: "allHidden", Children: []definitions.Definition{
			definitions.Col(definitions.ColDef{Field: "b", Hide: true}),
		}}),
	}

	got := Build(defs, nil, Options{}).Columns

	if len(got) != 2 {
		t.Fatalf("got %d top-level columns, want 2", len(got))
	}
	personal := got[1]
	if !personal.IsGroup() || personal.Group.HeaderName != "personal" {
		t.Errorf("group header = %q, want it to default to the group id", personal.HeaderName())
	}
	var ids []string
	for _, l := range columns.Flatten(got) {
		ids = append(ids, l.ColID)
	}
	if diff := cmp.Diff([]string{"id", "name", "email"}, ids); diff != "" {
		t.Errorf("leaf ids mismatch (-want +got):\n%s", diff)
	}
	if columns.Depth(got) != 3 {
		t.Errorf("Depth = %d, want 3", columns.Depth(got))
	}
}

func TestBuildNonPivotPassesRowsThrough(t *testing.T) {
	data := medalRows()
	res := Build(medalDefs(definitions.ColDef{Field: "gold", AggFunc: "sum"}), data, Options{})
	if len(res.Rows) != len(data) || &res.Rows[0] != &data[0] {
		t.Errorf("non-pivot build did not pass the rows through")
	}
}

func TestBuildPivotSingleValue(t *testing.T) {
	defs := medalDefs(definitions.ColDef{Field: "gold", DataType: columns.TypeNumber, AggFunc: "sum"})

	res := Build(defs, medalRows(), Options{PivotMode: true})

	want := []columns.Column{
		columns.NewLeaf(columns.Leaf{Field: "country", ColID: "country", HeaderName: "Country", DataType: columns.TypeString, Width: 120}),
		columns.NewLeaf(columns.Leaf{
			Field: "2016 - Dive", ColID: "2016 - Dive", HeaderName: "2016 - Dive",
			HeaderClassName: PivotValueClass, CellClassName: PivotValueClass,
			DataType: columns.TypeNumber, Width: 120,
		}),
		columns.NewLeaf(columns.Leaf{
			Field: "2020 - Swim", ColID: "2020 - Swim", HeaderName: "2020 - Swim",
			HeaderClassName: PivotValueClass, CellClassName: PivotValueClass,
			DataType: columns.TypeNumber, Width: 120,
		}),
	}
	if diff := cmp.Diff(want, res.Columns, ignoreFormatter); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}

	wantRows := []rows.Row{
		{"country": "USA", "2020 - Swim": 8.0},
		{"country": "China", "2016 - Dive": 2.0},
	}
	if diff := cmp.Diff(wantRows, res.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildPivotMultipleValues(t *testing.T) {
	defs := medalDefs(
		definitions.ColDef{Field: "gold", HeaderName: "Gold", AggFunc: "sum"},
		definitions.ColDef{Field: "silver", AggFunc: "sum", Hide: true},
	)

	res := Build(defs, medalRows(), Options{PivotMode: true})

	if len(res.Columns) != 3 {
		t.Fatalf("got %d columns, want 3", len(res.Columns))
	}
	g := res.Columns[2]
	if !g.IsGroup() || g.Group.GroupID != "pivot-2020 - Swim" || g.Group.HeaderName != "2020 - Swim" || g.Group.HeaderClassName != PivotGroupClass {
		t.Errorf("pivot group = %+v", g.Group)
	}
	var fields, headers []string
	for _, l := range columns.Flatten(g.Group.Children) {
		fields = append(fields, l.Field)
		headers = append(headers, l.HeaderName)
	}
	if diff := cmp.Diff([]string{"gold_2020 - Swim", "silver_2020 - Swim"}, fields); diff != "" {
		t.Errorf("value fields mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Gold", "silver"}, headers); diff != "" {
		t.Errorf("value headers mismatch (-want +got):\n%s", diff)
	}

	// every synthesized leaf reads a key the transform produced
	produced := map[string]bool{}
	for _, r := range res.Rows {
		for k := range r {
			produced[k] = true
		}
	}
	for _, l := range columns.Flatten(res.Columns) {
		if !produced[l.Field] {
			t.Errorf("leaf field %q is not produced by the transform", l.Field)
		}
	}
}

func TestBuildPivotWithoutPivotFields(t *testing.T) {
	defs := []definitions.Definition{
		definitions.Col(definitions.ColDef{Field: "country", RowGroup: true}),
		definitions.Col(definitions.ColDef{Field: "athlete"}),
		definitions.Col(definitions.ColDef{Field: "gold", AggFunc: "sum"}),
	}
	res := Build(defs, medalRows(), Options{PivotMode: true})

	var ids []string
	for _, l := range columns.Flatten(res.Columns) {
		ids = append(ids, l.ColID)
	}
	if diff := cmp.Diff([]string{"country", "gold"}, ids); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
	if len(res.Rows) != 2 || res.Rows[0]["gold"] != 8.0 {
		t.Errorf("rows = %v, want grouped sums", res.Rows)
	}
}

func TestBuildPivotWithoutValues(t *testing.T) {
	defs := []definitions.Definition{
		definitions.Col(definitions.ColDef{Field: "country", RowGroup: true}),
		definitions.Col(definitions.ColDef{Field: "year", Pivot: true}),
	}
	res := Build(defs, medalRows(), Options{PivotMode: true})
	if len(res.Columns) != 1 || res.Columns[0].ID() != "country" {
		t.Errorf("columns = %+v, want only the row group column", res.Columns)
	}
}

func TestBuildPivotEmptyRows(t *testing.T) {
	defs := medalDefs(definitions.ColDef{Field: "gold", AggFunc: "sum"})
	res := Build(defs, nil, Options{PivotMode: true})
	if len(res.Columns) != 1 {
		t.Errorf("got %d columns for empty data, want only the row group column", len(res.Columns))
	}
	if len(res.Rows) != 0 {
		t.Errorf("got %d rows for empty data, want 0", len(res.Rows))
	}
}

func TestTransformOptions(t *testing.T) {
	opts := TransformOptions(medalDefs(
		definitions.ColDef{Field: "gold", AggFunc: "sum"},
		definitions.ColDef{ColID: "silver", AggFunc: "max"},
	))
	if diff := cmp.Diff([]string{"country"}, opts.Grouped); diff != "" {
		t.Errorf("grouped mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"year", "sport"}, opts.Pivot); diff != "" {
		t.Errorf("pivot mismatch (-want +got):\n%s", diff)
	}
	if len(opts.Values) != 2 || opts.Values[1].Field != "silver" || opts.Values[1].Func != "max" {
		t.Errorf("values = %+v", opts.Values)
	}
}
