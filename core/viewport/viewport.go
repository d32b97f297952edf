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

// Package viewport computes which rows of a virtualised grid are relevant
// for the current scroll position and container size.
package viewport

import (
	"math"

	"github.com/google/pivotgrid/core/rows"
)

// Metrics are the fixed pixel heights of the grid bands and the number of
// extra rows kept on each side of the visible area.
type Metrics struct {
	RowHeight         float64 `mapstructure:"row_height" yaml:"row_height"`
	HeaderHeight      float64 `mapstructure:"header_height" yaml:"header_height"`
	GroupHeaderHeight float64 `mapstructure:"group_header_height" yaml:"group_header_height"`
	BufferSize        int     `mapstructure:"buffer_size" yaml:"buffer_size"`
}

// DefaultMetrics returns 40px rows, a 44px header, a 36px group header and
// five buffer rows.
func DefaultMetrics() Metrics {
	return Metrics{
		RowHeight:         40,
		HeaderHeight:      44,
		GroupHeaderHeight: 36,
		BufferSize:        5,
	}
}

// Range is the half-open row interval [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns End - Start.
func (r Range) Len() int {
	return r.End - r.Start
}

// Contains reports whether index falls inside the range.
func (r Range) Contains(index int) bool {
	return index >= r.Start && index < r.End
}

// headerBand returns the height taken by the header bands.
func (m Metrics) headerBand(hasGroups bool) float64 {
	h := m.HeaderHeight
	if hasGroups {
		h += m.GroupHeaderHeight
	}
	return h
}

// ComputeVisibleRange returns the rows to present for the given container
// state. When virtualization is disabled or the container has no height yet,
// every row is returned. The result always satisfies
// 0 <= Start <= End <= rowCount.
func ComputeVisibleRange(rowCount int, m Metrics, hasGroups bool, containerHeight, scrollOffset float64, enabled bool) Range {
	if rowCount <= 0 {
		return Range{}
	}
	if !enabled || containerHeight <= 0 || m.RowHeight <= 0 {
		return Range{Start: 0, End: rowCount}
	}

	scrollOffset = math.Max(0, scrollOffset)
	buffer := max(0, m.BufferSize)

	available := containerHeight - m.headerBand(hasGroups)
	visibleCount := max(0, int(math.Ceil(available/m.RowHeight)))

	start := max(0, int(math.Floor(scrollOffset/m.RowHeight))-buffer)
	start = min(start, rowCount)
	end := min(rowCount, start+visibleCount+2*buffer)

	return Range{Start: start, End: end}
}

// ContentHeight is the total scrollable height. A pinned total row is not
// part of it.
func ContentHeight(rowCount int, m Metrics, hasGroups bool) float64 {
	return m.headerBand(hasGroups) + float64(max(0, rowCount))*m.RowHeight
}

// BodyHeight is the height of the scrolled row area alone.
func BodyHeight(rowCount int, m Metrics) float64 {
	return float64(max(0, rowCount)) * m.RowHeight
}

// Positioned is a row together with its absolute index and its top offset
// within the body.
type Positioned struct {
	Index int
	Top   float64
	Row   rows.Row
}

// Slice returns the rows inside r with their absolute positions.
func Slice(data []rows.Row, r Range, m Metrics) []Positioned {
	start := min(max(0, r.Start), len(data))
	end := min(max(start, r.End), len(data))
	out := make([]Positioned, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, Positioned{
			Index: i,
			Top:   float64(i) * m.RowHeight,
			Row:   data[i],
		})
	}
	return out
}
