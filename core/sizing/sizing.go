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

// Package sizing computes pixel widths for leaf columns from a bounded
// sample of their content.
//
// Measuring every row is O(rows) per column, so only the first
// MaxSampleSize rows are measured, and sampling stops as soon as the widest
// value seen already saturates MaxWidth. A pinned total row is measured
// before the body because aggregates tend to be the widest values.
package sizing

import (
	"math"

	"github.com/google/pivotgrid/core/columns"
	"github.com/google/pivotgrid/core/formatting"
	"github.com/google/pivotgrid/core/measure"
	"github.com/google/pivotgrid/core/rows"
)

// Options bounds the sampling and the resulting widths, in pixels.
type Options struct {
	MaxSampleSize int `mapstructure:"max_sample_size" yaml:"max_sample_size"`
	MinWidth      int `mapstructure:"min_width" yaml:"min_width"`
	MaxWidth      int `mapstructure:"max_width" yaml:"max_width"`
	Padding       int `mapstructure:"padding" yaml:"padding"`
}

// DefaultOptions returns {100, 60, 300, 24}.
func DefaultOptions() Options {
	return Options{
		MaxSampleSize: 100,
		MinWidth:      60,
		MaxWidth:      300,
		Padding:       24,
	}
}

// withDefaults fills unset (zero) fields from DefaultOptions.
// Padding of zero is legitimate, so only negative padding is replaced.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MaxSampleSize <= 0 {
		o.MaxSampleSize = d.MaxSampleSize
	}
	if o.MinWidth <= 0 {
		o.MinWidth = d.MinWidth
	}
	if o.MaxWidth <= 0 {
		o.MaxWidth = d.MaxWidth
	}
	if o.Padding < 0 {
		o.Padding = d.Padding
	}
	return o
}

const (
	// SortIndicatorAllowance is reserved next to a header label for the sort glyph.
	SortIndicatorAllowance = 20
	// FallbackWidth is used when the measurer is unavailable and the leaf has no width.
	FallbackWidth = 120
)

// Type floors applied before padding.
const (
	currencyMinWidth = 100
	numberMinWidth   = 80
	dateMinWidth     = 100
	booleanMinWidth  = 70
)

// MaxTypeMinWidth is the widest type floor. A MaxWidth below it cannot hold
// currency and date columns.
const MaxTypeMinWidth = currencyMinWidth

// SizeColumns returns copies of leaves with Width set from measured content.
// totalRow may be nil. The input leaves are not modified and the result is
// deterministic for identical inputs.
func SizeColumns(leaves []columns.Leaf, data []rows.Row, totalRow rows.Row, opts Options, m measure.Measurer) []columns.Leaf {
	opts = opts.withDefaults()
	available := m != nil && m.Available()

	result := make([]columns.Leaf, len(leaves))
	for i, leaf := range leaves {
		if available {
			leaf.Width = ColumnWidth(leaf, data, totalRow, opts, m)
		} else if leaf.Width <= 0 {
			leaf.Width = FallbackWidth
		}
		result[i] = leaf
	}
	return result
}

// ColumnWidth measures a single leaf. m must be available.
// The type floor wins over MaxWidth when the two disagree.
func ColumnWidth(leaf columns.Leaf, data []rows.Row, totalRow rows.Row, opts Options, m measure.Measurer) int {
	opts = opts.withDefaults()
	limit := float64(opts.MaxWidth - opts.Padding)

	measured := m.MeasureWidth(leaf.HeaderName, measure.HeaderFont) + SortIndicatorAllowance

	skipBody := false
	if totalRow.Has(leaf.Field) {
		value := totalRow.Get(leaf.Field)
		w := m.MeasureWidth(formatting.Display(value, totalRow, leaf), measure.BodyFont)
		measured = math.Max(measured, w)
		skipBody = w >= limit
	}

	if !skipBody {
		sample := data
		if len(sample) > opts.MaxSampleSize {
			sample = sample[:opts.MaxSampleSize]
		}
		for _, row := range sample {
			if measured >= limit {
				break
			}
			text := formatting.Display(row.Get(leaf.Field), row, leaf)
			measured = math.Max(measured, m.MeasureWidth(text, measure.BodyFont))
		}
	}

	floor := float64(TypeMinWidth(leaf, opts.MinWidth))
	width := math.Max(floor, math.Min(float64(opts.MaxWidth), measured+float64(opts.Padding)))
	return int(math.Ceil(width))
}

// TypeMinWidth returns the minimum width for the leaf's data type, never
// below minWidth.
func TypeMinWidth(leaf columns.Leaf, minWidth int) int {
	floor := minWidth
	switch leaf.DataType {
	case columns.TypeNumber:
		if leaf.DataFormat == columns.FormatCurrency {
			floor = max(minWidth, currencyMinWidth)
		} else {
			floor = max(minWidth, numberMinWidth)
		}
	case columns.TypeDate:
		floor = max(minWidth, dateMinWidth)
	case columns.TypeBoolean:
		floor = max(minWidth, booleanMinWidth)
	}
	return floor
}

// TotalWidth returns the sum of the leaf widths.
func TotalWidth(leaves []columns.Leaf) int {
	total := 0
	for _, l := range leaves {
		total += l.Width
	}
	return total
}
