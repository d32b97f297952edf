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

// Package grouping partitions rows by the string form of a list of fields.
//
// Terminology:
// * the fields a partition is keyed on are the grouped fields
// * a group's key is its grouped values joined by KeySeparator
// * groups are returned in the order their key was first seen
//
// A value that itself contains KeySeparator can make two distinct tuples
// share a key; such rows land in the same group.
package grouping

import (
	"strings"

	"github.com/google/pivotgrid/core/rows"
)

// KeySeparator joins the parts of a group key.
const KeySeparator = "|"

// Group is one partition of the input rows.
type Group struct {
	Key string
	// Parts holds the grouped values, one per field, as used in Key.
	Parts []string
	Rows  []rows.Row
}

// First returns the first row of the group in input order.
func (g *Group) First() rows.Row {
	if len(g.Rows) == 0 {
		return nil
	}
	return g.Rows[0]
}

// KeyPart returns the key form of a single value. Missing and nil values map
// to the empty string, so they group together with empty strings.
func KeyPart(v any) string {
	if rows.IsNull(v) {
		return ""
	}
	return rows.String(v)
}

// Parts returns the key parts of row for fields.
func Parts(row rows.Row, fields []string) []string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = KeyPart(row.Get(f))
	}
	return parts
}

// Key returns the group key of row for fields.
func Key(row rows.Row, fields []string) string {
	return strings.Join(Parts(row, fields), KeySeparator)
}

// Partition splits data into groups keyed on fields. Every group holds at
// least one row; rows keep their input order within a group. With no
// fields, all rows form a single group with an empty key.
func Partition(data []rows.Row, fields []string) []*Group {
	groups := NewOrderedMap[string, *Group]()
	for _, row := range data {
		parts := Parts(row, fields)
		key := strings.Join(parts, KeySeparator)
		g, ok := groups.Get(key)
		if !ok {
			g = &Group{Key: key, Parts: parts}
			groups.Set(key, g)
		}
		g.Rows = append(g.Rows, row)
	}
	return groups.Values()
}
