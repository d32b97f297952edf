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

// Package columns holds the layout-time column model: a tree of leaf and
// group columns, and the flattening that turns it into the ordered list of
// leaves a grid actually renders.
package columns

import (
	"github.com/google/pivotgrid/core/rows"
)

// DataType is the semantic type of the values held by a leaf column.
type DataType string

const (
	TypeString  DataType = "string"
	TypeNumber  DataType = "number"
	TypeDate    DataType = "date"
	TypeBoolean DataType = "boolean"
)

// ParseDataType maps a name to a DataType; unknown names become TypeString.
func ParseDataType(s string) DataType {
	switch DataType(s) {
	case TypeNumber, TypeDate, TypeBoolean:
		return DataType(s)
	}
	return TypeString
}

// FormatCurrency is the DataFormat value that selects currency display for numbers.
const FormatCurrency = "currency"

// SortState is the sort direction shown on a leaf header.
type SortState int

const (
	SortNone SortState = iota
	SortAsc
	SortDesc
)

// ParseSortState accepts "asc" and "desc"; anything else is SortNone.
func ParseSortState(s string) SortState {
	switch s {
	case "asc":
		return SortAsc
	case "desc":
		return SortDesc
	}
	return SortNone
}

func (s SortState) String() string {
	switch s {
	case SortAsc:
		return "asc"
	case SortDesc:
		return "desc"
	}
	return ""
}

// ValueFormatter converts a cell value to display text for a leaf.
// A nil formatter on a Leaf means the built-in formatting rules apply.
type ValueFormatter func(value any, row rows.Row, leaf Leaf) string

// Leaf is a renderable column bound to one row field.
type Leaf struct {
	Field           string
	ColID           string // unique across the leaves of one column model
	HeaderName      string
	HeaderClassName string
	CellClassName   string
	DataType        DataType
	DataFormat      string
	Formatter       ValueFormatter
	Width           int // pixels; overwritten by the sizer
	Sorted          SortState
	Filtered        bool
}

// Group is a header spanning its children.
type Group struct {
	GroupID         string
	HeaderName      string
	HeaderClassName string
	Children        []Column
}

// Kind tags the variant held by a Column.
type Kind int

const (
	KindLeaf Kind = iota
	KindGroup
)

// Column is a tagged variant: when Kind is KindLeaf only Leaf is meaningful,
// when Kind is KindGroup only Group is.
type Column struct {
	Kind  Kind
	Leaf  Leaf
	Group Group
}

// NewLeaf wraps a leaf into a Column. An empty ColID defaults to the field.
func NewLeaf(l Leaf) Column {
	if l.ColID == "" {
		l.ColID = l.Field
	}
	return Column{Kind: KindLeaf, Leaf: l}
}

// NewGroup wraps a group into a Column.
func NewGroup(g Group) Column {
	return Column{Kind: KindGroup, Group: g}
}

// IsGroup reports whether the column is a group.
func (c Column) IsGroup() bool {
	return c.Kind == KindGroup
}

// ID returns the ColID of a leaf or the GroupID of a group.
func (c Column) ID() string {
	if c.Kind == KindGroup {
		return c.Group.GroupID
	}
	return c.Leaf.ColID
}

// HeaderName returns the header label of either variant.
func (c Column) HeaderName() string {
	if c.Kind == KindGroup {
		return c.Group.HeaderName
	}
	return c.Leaf.HeaderName
}

// Flatten expands groups depth-first, left to right, and returns the leaves
// in encounter order. Leaves are copied unchanged and never deduplicated.
func Flatten(cols []Column) []Leaf {
	result := make([]Leaf, 0, len(cols))
	return appendLeaves(result, cols)
}

func appendLeaves(dst []Leaf, cols []Column) []Leaf {
	for _, c := range cols {
		switch c.Kind {
		case KindGroup:
			dst = appendLeaves(dst, c.Group.Children)
		default:
			dst = append(dst, c.Leaf)
		}
	}
	return dst
}

// LeafCount returns the number of leaves reachable from c.
func LeafCount(c Column) int {
	if c.Kind != KindGroup {
		return 1
	}
	n := 0
	for _, child := range c.Group.Children {
		n += LeafCount(child)
	}
	return n
}

// HasGroups reports whether any top-level column is a group; grids use it to
// decide whether a group header band is shown.
func HasGroups(cols []Column) bool {
	for _, c := range cols {
		if c.Kind == KindGroup {
			return true
		}
	}
	return false
}

// Depth returns the number of header bands the tree needs.
func Depth(cols []Column) int {
	depth := 0
	for _, c := range cols {
		d := 1
		if c.Kind == KindGroup {
			d = 1 + Depth(c.Group.Children)
		}
		if d > depth {
			depth = d
		}
	}
	return depth
}
