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

// Package grid computes everything a renderer needs to draw one frame of a
// data grid: sized leaf columns, header bands, the window of formatted rows
// for the current scroll position and the pinned total row.
//
// Compute is a pure function of its inputs. Hosts call it again whenever
// the data, the columns, the options or the viewport change.
package grid

import (
	"fmt"
	"strings"

	"github.com/google/pivotgrid/core/columns"
	"github.com/google/pivotgrid/core/formatting"
	"github.com/google/pivotgrid/core/logging"
	"github.com/google/pivotgrid/core/measure"
	"github.com/google/pivotgrid/core/rows"
	"github.com/google/pivotgrid/core/sizing"
	"github.com/google/pivotgrid/core/viewport"
)

// NoDataText is shown in place of the body when there are no rows.
const NoDataText = "No data to display"

// Options are the grid behaviour switches.
type Options struct {
	EnableRowVirtualization bool             `mapstructure:"enable_row_virtualization" yaml:"enable_row_virtualization"`
	EnableAutoColumnSizing  bool             `mapstructure:"enable_auto_column_sizing" yaml:"enable_auto_column_sizing"`
	KeyField                string           `mapstructure:"key_field" yaml:"key_field"`
	Sizing                  sizing.Options   `mapstructure:"sizing" yaml:"sizing"`
	Metrics                 viewport.Metrics `mapstructure:"metrics" yaml:"metrics"`
}

// DefaultOptions enables row virtualization, disables auto-sizing and keys
// rows on "id".
func DefaultOptions() Options {
	return Options{
		EnableRowVirtualization: true,
		EnableAutoColumnSizing:  false,
		KeyField:                "id",
		Sizing:                  sizing.DefaultOptions(),
		Metrics:                 viewport.DefaultMetrics(),
	}
}

// State is the input of a frame.
type State struct {
	Columns  []columns.Column
	Data     []rows.Row
	TotalRow rows.Row
	Options  Options
	// Measurer sizes columns when auto-sizing is on. nil falls back to the
	// declared widths.
	Measurer measure.Measurer
	Logger   logging.Logger
}

// Viewport is the scroll container as last observed by the host.
type Viewport struct {
	ContainerHeight float64
	ScrollOffset    float64
}

// HeaderCell is one cell of the column header band.
type HeaderCell struct {
	ColID     string
	Label     string
	ClassName string
	Sorted    columns.SortState
	Width     int
	Hint      string
}

// GroupHeader is one cell of the group header band. Leaves outside any
// group get a placeholder spanning their own column.
type GroupHeader struct {
	ID          string
	Label       string
	ClassName   string
	Placeholder bool
	// Start is the 1-based first leaf column covered; Span the leaf count.
	Start int
	Span  int
	Width int
	Hint  string
}

// Cell is a formatted value.
type Cell struct {
	ColID     string
	Text      string
	ClassName string
	DataType  columns.DataType
	Width     int
}

// Row is a formatted row positioned in the body.
type Row struct {
	Key   string
	Index int
	Top   float64
	Cells []Cell
}

// Frame is the render hand-off.
type Frame struct {
	Leaves        []columns.Leaf
	AutoSized     bool
	Virtualized   bool
	HasGroups     bool
	GroupHeaders  []GroupHeader
	Headers       []HeaderCell
	Template      string
	GroupTemplate string
	Range         viewport.Range
	RowCount      int
	Rows          []Row
	Total         *Row
	NoData        bool
	ContentHeight float64
	TotalWidth    int
	Metrics       viewport.Metrics
}

// Compute builds the frame for state seen through vp.
func Compute(state State, vp Viewport) Frame {
	opts := state.Options
	logger := logging.OrDefault(state.Logger)

	leaves := Leaves(state)
	hasGroups := columns.HasGroups(state.Columns)
	rowCount := len(state.Data)

	r := viewport.ComputeVisibleRange(rowCount, opts.Metrics, hasGroups,
		vp.ContainerHeight, vp.ScrollOffset, opts.EnableRowVirtualization)

	f := Frame{
		Leaves:        leaves,
		AutoSized:     opts.EnableAutoColumnSizing,
		Virtualized:   opts.EnableRowVirtualization,
		HasGroups:     hasGroups,
		Headers:       headerCells(leaves, opts.EnableAutoColumnSizing),
		Template:      Template(leaves, opts.EnableAutoColumnSizing),
		Range:         r,
		RowCount:      rowCount,
		NoData:        rowCount == 0,
		ContentHeight: viewport.ContentHeight(rowCount, opts.Metrics, hasGroups),
		TotalWidth:    sizing.TotalWidth(leaves),
		Metrics:       opts.Metrics,
	}
	if hasGroups {
		f.GroupHeaders = groupHeaders(state.Columns, leaves, opts.EnableAutoColumnSizing)
		f.GroupTemplate = groupTemplate(f.GroupHeaders, opts.EnableAutoColumnSizing)
	}

	for _, p := range viewport.Slice(state.Data, r, opts.Metrics) {
		f.Rows = append(f.Rows, Row{
			Key:   RowKey(p.Row, opts.KeyField, p.Index),
			Index: p.Index,
			Top:   p.Top,
			Cells: FormatRow(p.Row, leaves),
		})
	}
	if state.TotalRow != nil {
		f.Total = &Row{
			Key:   "total",
			Index: -1,
			Cells: FormatRow(state.TotalRow, leaves),
		}
	}

	logger.Debug("Computed frame rows [%d, %d) of %d, %d columns", r.Start, r.End, rowCount, len(leaves))
	return f
}

// Leaves flattens the column model and, when auto-sizing is on and there
// is data, sizes the leaves from it.
func Leaves(state State) []columns.Leaf {
	leaves := columns.Flatten(state.Columns)
	if state.Options.EnableAutoColumnSizing && len(state.Data) > 0 {
		return sizing.SizeColumns(leaves, state.Data, state.TotalRow, state.Options.Sizing, state.Measurer)
	}
	return leaves
}

// FormatRow formats each leaf's value of row.
func FormatRow(row rows.Row, leaves []columns.Leaf) []Cell {
	cells := make([]Cell, len(leaves))
	for i, l := range leaves {
		cells[i] = Cell{
			ColID:     l.ColID,
			Text:      formatting.Display(row.Get(l.Field), row, l),
			ClassName: l.CellClassName,
			DataType:  l.DataType,
			Width:     l.Width,
		}
	}
	return cells
}

// RowKey returns the string form of the row's key field, or the row index
// when the key is missing or empty.
func RowKey(row rows.Row, keyField string, index int) string {
	if keyField != "" {
		if v := row.Get(keyField); rows.Truthy(v) {
			return rows.String(v)
		}
	}
	return fmt.Sprint(index)
}

// SizingHint is the track size of a leaf: its pixel width when auto-sized,
// an equal share otherwise.
func SizingHint(leaf columns.Leaf, autoSized bool) string {
	if autoSized {
		return fmt.Sprintf("%dpx", leaf.Width)
	}
	return "1fr"
}

// Template returns the column track list of the header and body bands.
func Template(leaves []columns.Leaf, autoSized bool) string {
	if !autoSized {
		return fmt.Sprintf("repeat(%d, 1fr)", len(leaves))
	}
	tracks := make([]string, len(leaves))
	for i, l := range leaves {
		tracks[i] = SizingHint(l, true)
	}
	return strings.Join(tracks, " ")
}

func headerCells(leaves []columns.Leaf, autoSized bool) []HeaderCell {
	cells := make([]HeaderCell, len(leaves))
	for i, l := range leaves {
		cells[i] = HeaderCell{
			ColID:     l.ColID,
			Label:     l.HeaderName,
			ClassName: l.HeaderClassName,
			Sorted:    l.Sorted,
			Width:     l.Width,
			Hint:      SizingHint(l, autoSized),
		}
	}
	return cells
}

// groupHeaders lays out the top-level columns over the leaf tracks. Widths
// come from the sized leaves, matched by column id.
func groupHeaders(cols []columns.Column, leaves []columns.Leaf, autoSized bool) []GroupHeader {
	width := make(map[string]int, len(leaves))
	for _, l := range leaves {
		width[l.ColID] = l.Width
	}

	out := make([]GroupHeader, 0, len(cols))
	start := 1
	for _, c := range cols {
		h := GroupHeader{ID: c.ID(), Start: start}
		if c.IsGroup() {
			h.Label = c.Group.HeaderName
			h.ClassName = c.Group.HeaderClassName
		} else {
			h.Placeholder = true
		}
		for _, l := range columns.Flatten([]columns.Column{c}) {
			h.Span++
			if w, ok := width[l.ColID]; ok && w > 0 {
				h.Width += w
			} else {
				h.Width += l.Width
			}
		}
		if autoSized {
			h.Hint = fmt.Sprintf("%dpx", h.Width)
		} else {
			h.Hint = fmt.Sprintf("span %d", h.Span)
		}
		start += h.Span
		out = append(out, h)
	}
	return out
}

func groupTemplate(headers []GroupHeader, autoSized bool) string {
	tracks := make([]string, len(headers))
	for i, h := range headers {
		if autoSized {
			tracks[i] = h.Hint
		} else {
			tracks[i] = fmt.Sprintf("repeat(%d, 1fr)", h.Span)
		}
	}
	return strings.Join(tracks, " ")
}
