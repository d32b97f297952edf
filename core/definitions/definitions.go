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

// Package definitions holds the authoring form of the column model.
//
// A definition is either a ColDef or a GroupDef. Besides what the column
// state needs, a ColDef carries the roles it plays in pivot mode (rowGroup,
// pivot, aggFunc) and the user permission flags.
//
// Definitions can be written in YAML; a node with a children key is a group:
//
//	- field: country
//	  rowGroup: true
//	- groupId: medals
//	  headerName: Medals
//	  children:
//	    - field: gold
//	      dataType: number
//	      aggFunc: sum
package definitions

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/google/pivotgrid/core/columns"
)

// ColDef defines a leaf column.
type ColDef struct {
	Field           string           `yaml:"field,omitempty"`
	ColID           string           `yaml:"colId,omitempty"`
	HeaderName      string           `yaml:"headerName,omitempty"`
	HeaderClassName string           `yaml:"headerClassName,omitempty"`
	CellClassName   string           `yaml:"cellClassName,omitempty"`
	DataType        columns.DataType `yaml:"dataType,omitempty"`
	DataFormat      string           `yaml:"dataFormat,omitempty"`
	Width           int              `yaml:"width,omitempty"`
	Sort            string           `yaml:"sort,omitempty"`
	Hide            bool             `yaml:"hide,omitempty"`

	RowGroup bool   `yaml:"rowGroup,omitempty"`
	Pivot    bool   `yaml:"pivot,omitempty"`
	AggFunc  string `yaml:"aggFunc,omitempty"`

	AllowUserSort    bool `yaml:"allowUserSort,omitempty"`
	AllowUserFilter  bool `yaml:"allowUserFilter,omitempty"`
	AllowUserResize  bool `yaml:"allowUserResize,omitempty"`
	AllowUserReorder bool `yaml:"allowUserReorder,omitempty"`
	AllowUserHide    bool `yaml:"allowUserHide,omitempty"`
	AllowUserPin     bool `yaml:"allowUserPin,omitempty"`

	// Formatter overrides the built-in formatting for this column.
	Formatter columns.ValueFormatter `yaml:"-"`
}

// FieldName returns the row key the definition reads: Field, else ColID.
func (c ColDef) FieldName() string {
	if c.Field != "" {
		return c.Field
	}
	return c.ColID
}

// ID returns the column identity: ColID, else Field.
func (c ColDef) ID() string {
	if c.ColID != "" {
		return c.ColID
	}
	return c.Field
}

// GroupDef defines a header group.
type GroupDef struct {
	GroupID         string       `yaml:"groupId"`
	HeaderName      string       `yaml:"headerName,omitempty"`
	HeaderClassName string       `yaml:"headerClassName,omitempty"`
	Hide            bool         `yaml:"hide,omitempty"`
	Children        []Definition `yaml:"children"`
}

// Definition is a ColDef or a GroupDef. Exactly one of the two is set.
type Definition struct {
	Col   *ColDef
	Group *GroupDef
}

// Col wraps a ColDef.
func Col(c ColDef) Definition {
	return Definition{Col: &c}
}

// Group wraps a GroupDef.
func Group(g GroupDef) Definition {
	return Definition{Group: &g}
}

// IsGroup reports whether d is a group definition.
func (d Definition) IsGroup() bool {
	return d.Group != nil
}

// Hidden reports whether d is flagged hidden.
func (d Definition) Hidden() bool {
	if d.Group != nil {
		return d.Group.Hide
	}
	return d.Col != nil && d.Col.Hide
}

// UnmarshalYAML decodes a mapping node into a ColDef, or into a GroupDef
// when the mapping has a children key.
func (d *Definition) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return errors.Errorf("line %d: column definition must be a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == "children" {
			var g GroupDef
			if err := node.Decode(&g); err != nil {
				return errors.Wrapf(err, "line %d: decoding group definition", node.Line)
			}
			*d = Definition{Group: &g}
			return nil
		}
	}
	var c ColDef
	if err := node.Decode(&c); err != nil {
		return errors.Wrapf(err, "line %d: decoding column definition", node.Line)
	}
	*d = Definition{Col: &c}
	return nil
}

// MarshalYAML encodes the wrapped definition.
func (d Definition) MarshalYAML() (any, error) {
	if d.Group != nil {
		return d.Group, nil
	}
	return d.Col, nil
}

// Parse decodes a YAML sequence of definitions.
func Parse(data []byte) ([]Definition, error) {
	var defs []Definition
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, errors.Wrap(err, "parsing column definitions")
	}
	return defs, nil
}

// Load reads and parses a YAML definitions file.
func Load(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading column definitions %s", path)
	}
	defs, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "in %s", path)
	}
	return defs, Validate(defs)
}

// Flatten returns the column definitions depth first, ignoring group
// nesting. Hidden definitions are included.
func Flatten(defs []Definition) []ColDef {
	var out []ColDef
	for _, d := range defs {
		switch {
		case d.Group != nil:
			out = append(out, Flatten(d.Group.Children)...)
		case d.Col != nil:
			out = append(out, *d.Col)
		}
	}
	return out
}

// Validate checks that column ids are unique and that every group
// contains at least one column.
func Validate(defs []Definition) error {
	seen := make(map[string]bool)
	return validate(defs, seen)
}

func validate(defs []Definition, seen map[string]bool) error {
	for _, d := range defs {
		switch {
		case d.Group != nil:
			if len(Flatten(d.Group.Children)) == 0 {
				return errors.Errorf("group %q has no columns", d.Group.GroupID)
			}
			if err := validate(d.Group.Children, seen); err != nil {
				return errors.Wrapf(err, "in group %q", d.Group.GroupID)
			}
		case d.Col != nil:
			id := d.Col.ID()
			if id == "" {
				return errors.New("column definition has neither field nor colId")
			}
			if seen[id] {
				return errors.Errorf("duplicate column id %q", id)
			}
			seen[id] = true
		default:
			return errors.New("empty column definition")
		}
	}
	return nil
}
