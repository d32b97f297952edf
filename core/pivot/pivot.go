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

// Package pivot reshapes raw rows into grouped, pivoted or aggregated rows.
//
// The mode is chosen from which field lists are set:
//
//	pivot fields set           -> ModePivot (grouped fields optional)
//	grouped fields set         -> ModeGroup
//	value fields only          -> ModeAggregateOnly
//	nothing set                -> ModeIdentity
//
// Input rows are never modified. Every non-identity mode returns an empty
// result for empty input.
package pivot

import (
	"sort"
	"strings"

	"github.com/google/pivotgrid/core/aggregates"
	"github.com/google/pivotgrid/core/grouping"
	"github.com/google/pivotgrid/core/logging"
	"github.com/google/pivotgrid/core/rows"
)

// LabelSeparator joins the pivot values that make up a pivot label.
const LabelSeparator = " - "

// Mode is the transform applied to the rows.
type Mode int

const (
	ModeIdentity Mode = iota
	ModeAggregateOnly
	ModeGroup
	ModePivot
)

func (m Mode) String() string {
	switch m {
	case ModeAggregateOnly:
		return "aggregate"
	case ModeGroup:
		return "group"
	case ModePivot:
		return "pivot"
	}
	return "identity"
}

// Options lists the fields that take part in the transform.
type Options struct {
	Grouped []string                `yaml:"grouped" mapstructure:"grouped"`
	Pivot   []string                `yaml:"pivot" mapstructure:"pivot"`
	Values  []aggregates.Descriptor `yaml:"values" mapstructure:"values"`
	// Logger receives unknown aggregation warnings. nil uses the package logger.
	Logger logging.Logger `yaml:"-" mapstructure:"-"`
}

// ModeFor returns the mode selected by opts.
func ModeFor(opts Options) Mode {
	switch {
	case len(opts.Pivot) > 0:
		return ModePivot
	case len(opts.Grouped) > 0:
		return ModeGroup
	case len(opts.Values) > 0:
		return ModeAggregateOnly
	}
	return ModeIdentity
}

type valueSpec struct {
	field string
	fn    aggregates.Func
}

func resolveValues(descs []aggregates.Descriptor, logger logging.Logger) []valueSpec {
	specs := make([]valueSpec, len(descs))
	for i, d := range descs {
		specs[i] = valueSpec{field: d.Field, fn: d.Resolve(logger)}
	}
	return specs
}

// Transform applies the mode selected by opts to data.
func Transform(data []rows.Row, opts Options) []rows.Row {
	mode := ModeFor(opts)
	if mode == ModeIdentity {
		return data
	}
	if len(data) == 0 {
		return []rows.Row{}
	}

	logger := logging.OrDefault(opts.Logger)
	values := resolveValues(opts.Values, logger)
	logger.Debug("Transforming %d rows in %s mode", len(data), mode)

	switch mode {
	case ModeAggregateOnly:
		return []rows.Row{aggregateRow(data, values)}
	case ModeGroup:
		return groupRows(data, opts.Grouped, values)
	default:
		return pivotRows(data, opts.Grouped, opts.Pivot, values)
	}
}

func aggregateRow(data []rows.Row, values []valueSpec) rows.Row {
	out := make(rows.Row, len(values))
	for _, v := range values {
		out[v.field] = aggregates.Apply(data, v.fn, v.field)
	}
	return out
}

func groupRows(data []rows.Row, grouped []string, values []valueSpec) []rows.Row {
	isValue := make(map[string]bool, len(values))
	for _, v := range values {
		isValue[v.field] = true
	}
	isGrouped := make(map[string]bool, len(grouped))
	for _, f := range grouped {
		isGrouped[f] = true
	}

	groups := grouping.Partition(data, grouped)
	result := make([]rows.Row, 0, len(groups))
	for _, g := range groups {
		first := g.First()
		out := make(rows.Row, len(first)+len(values))
		for k, v := range first {
			if !isGrouped[k] && !isValue[k] {
				out[k] = v
			}
		}
		copyGroupValues(out, first, grouped)
		for _, v := range values {
			out[v.field] = aggregates.Apply(g.Rows, v.fn, v.field)
		}
		result = append(result, out)
	}
	return result
}

func pivotRows(data []rows.Row, grouped, pivotFields []string, values []valueSpec) []rows.Row {
	groups := grouping.Partition(data, grouped)
	result := make([]rows.Row, 0, len(groups))
	for _, g := range groups {
		out := make(rows.Row)
		copyGroupValues(out, g.First(), grouped)
		for _, sub := range grouping.Partition(g.Rows, pivotFields) {
			label := strings.Join(sub.Parts, LabelSeparator)
			if label == "" {
				continue
			}
			for _, v := range values {
				out[ColumnKey(v.field, label, len(values))] = aggregates.Apply(sub.Rows, v.fn, v.field)
			}
		}
		result = append(result, out)
	}
	return result
}

// copyGroupValues copies the grouped fields from the group's first row.
// Missing values become "" so every output row carries every grouped field.
func copyGroupValues(dst, first rows.Row, grouped []string) {
	for _, f := range grouped {
		if v := first.Get(f); !rows.IsNull(v) {
			dst[f] = v
		} else {
			dst[f] = ""
		}
	}
}

// ColumnKey returns the output field for a value field under a pivot label.
// With a single value field the label is the key.
func ColumnKey(field, label string, valueCount int) string {
	if valueCount == 1 {
		return label
	}
	return field + "_" + label
}

// Label returns the pivot label of row for fields.
func Label(row rows.Row, fields []string) string {
	return strings.Join(grouping.Parts(row, fields), LabelSeparator)
}

// Labels returns the distinct non-empty pivot labels in data, sorted.
func Labels(data []rows.Row, fields []string) []string {
	if len(fields) == 0 {
		return nil
	}
	seen := make(map[string]bool)
	var labels []string
	for _, row := range data {
		label := Label(row, fields)
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Summary builds a pinned total row by aggregating values over all of data.
// It is the aggregate-only transform without the list wrapper; nil when
// there is nothing to summarise.
func Summary(data []rows.Row, values []aggregates.Descriptor, logger logging.Logger) rows.Row {
	if len(values) == 0 {
		return nil
	}
	return aggregateRow(data, resolveValues(values, logging.OrDefault(logger)))
}
