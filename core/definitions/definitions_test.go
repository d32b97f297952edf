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

package definitions

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gopkg.in/yaml.v3"

	"github.com/google/pivotgrid/core/columns"
)

const medalsYAML = `
- field: country
  headerName: Country
  rowGroup: true
- field: year
  dataType: number
  pivot: true
- groupId: medals
  headerName: Medals
  headerClassName: medal-header
  children:
    - field: gold
      dataType: number
      aggFunc: sum
    - field: silver
      dataType: number
      aggFunc: sum
      hide: true
- colId: athleteName
  field: athlete
  sort: asc
  allowUserSort: true
`

func TestParse(t *testing.T) {
	defs, err := Parse([]byte(medalsYAML))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	want := []Definition{
		Col(ColDef{Field: "country", HeaderName: "Country", RowGroup: true}),
		Col(ColDef{Field: "year", DataType: columns.TypeNumber, Pivot: true}),
		Group(GroupDef{
			GroupID:         "medals",
			HeaderName:      "Medals",
			HeaderClassName: "medal-header",
			Children: []Definition{
				Col(ColDef{Field: "gold", DataType: columns.TypeNumber, AggFunc: "sum"}),
				Col(ColDef{Field: "silver", DataType: columns.TypeNumber, AggFunc: "sum", Hide: true}),
			},
		}),
		Col(ColDef{ColID: "athleteName", Field: "athlete", Sort: "asc", AllowUserSort: true}),
	}
	if diff := cmp.Diff(want, defs, cmpopts.IgnoreFields(ColDef{}, "Formatter")); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
	if !defs[2].IsGroup() || defs[0].IsGroup() {
		t.Errorf("IsGroup mismatch")
	}
	if !defs[2].Group.Children[1].Hidden() || defs[2].Hidden() {
		t.Errorf("Hidden mismatch")
	}
}

func TestParseErrors(t *testing.T) {
	testCases := []string{
		"- just a string",
		"- field: [1, 2",
		"field: not-a-list",
	}
	for _, tc := range testCases {
		if _, err := Parse([]byte(tc)); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", tc)
		}
	}
}

func TestRoundTripYAML(t *testing.T) {
	defs, err := Parse([]byte(medalsYAML))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	out, err := yaml.Marshal(defs)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	again, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse(marshalled) error: %v\n%s", err, out)
	}
	if diff := cmp.Diff(defs, again, cmpopts.IgnoreFields(ColDef{}, "Formatter")); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFlatten(t *testing.T) {
	defs, _ := Parse([]byte(medalsYAML))
	var ids []string
	for _, c := range Flatten(defs) {
		ids = append(ids, c.ID())
	}
	if diff := cmp.Diff([]string{"country", "year", "gold", "silver", "athleteName"}, ids); diff != "" {
		t.Errorf("Flatten mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldNameAndID(t *testing.T) {
	testCases := []struct {
		def       ColDef
		fieldName string
		id        string
	}{
		{ColDef{Field: "a"}, "a", "a"},
		{ColDef{ColID: "b"}, "b", "b"},
		{ColDef{Field: "a", ColID: "b"}, "a", "b"},
	}
	for _, tc := range testCases {
		if got := tc.def.FieldName(); got != tc.fieldName {
			t.Errorf("FieldName(%+v) = %q, want %q", tc.def, got, tc.fieldName)
		}
		if got := tc.def.ID(); got != tc.id {
			t.Errorf("ID(%+v) = %q, want %q", tc.def, got, tc.id)
		}
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name string
		defs []Definition
		err  string
	}{
		{"ok", []Definition{Col(ColDef{Field: "a"}), Col(ColDef{Field: "b"})}, ""},
		{"duplicate", []Definition{
			Col(ColDef{Field: "a"}),
			Group(GroupDef{GroupID: "g", Children: []Definition{Col(ColDef{ColID: "a"})}}),
		}, `in group "g": duplicate column id "a"`},
		{"empty group", []Definition{Group(GroupDef{GroupID: "g"})}, `group "g" has no columns`},
		{"nested empty group", []Definition{
			Group(GroupDef{GroupID: "g", Children: []Definition{Group(GroupDef{GroupID: "inner"})}}),
		}, `group "g" has no columns`},
		{"anonymous", []Definition{Col(ColDef{HeaderName: "x"})}, "neither field nor colId"},
		{"empty", []Definition{{}}, "empty column definition"},
	}
	for _, tc := range testCases {
		err := Validate(tc.defs)
		switch {
		case tc.err == "" && err != nil:
			t.Errorf("%s: Validate() error: %v", tc.name, err)
		case tc.err != "" && (err == nil || !strings.Contains(err.Error(), tc.err)):
			t.Errorf("%s: Validate() = %v, want error containing %q", tc.name, err, tc.err)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "columns.yaml")
	if err := os.WriteFile(path, []byte(medalsYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	defs, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(defs) != 4 {
		t.Errorf("Load() returned %d definitions, want 4", len(defs))
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load(missing) succeeded, want error")
	}
}
