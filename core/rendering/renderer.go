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

// Package rendering draws grid frames as HTML or as ASCII tables.
package rendering

import (
	"embed"
	"fmt"
	"io"
	"strconv"

	"github.com/google/safehtml"
	"github.com/google/safehtml/template"

	"github.com/google/pivotgrid/core/columns"
	"github.com/google/pivotgrid/core/grid"
)

//go:embed templates/*
var templateFS embed.FS

// GridRenderer renders grid frames to HTML.
type GridRenderer struct {
	gridTemplate *template.Template
}

// NewGridRenderer parses the embedded templates.
func NewGridRenderer() (*GridRenderer, error) {
	trustedFS := template.TrustedFSFromEmbed(templateFS)

	gridTemplate, err := template.New("grid.html").ParseFS(trustedFS, "templates/grid.html")
	if err != nil {
		return nil, fmt.Errorf("parsing grid template: %w", err)
	}

	return &GridRenderer{
		gridTemplate: gridTemplate,
	}, nil
}

// Render writes frame as an HTML page titled title.
func (r *GridRenderer) Render(w io.Writer, title string, frame grid.Frame) error {
	return r.gridTemplate.Execute(w, NewGridViewModel(title, frame))
}

// GridViewModel is the template data of one frame.
type GridViewModel struct {
	Title        string
	AutoSized    bool
	Virtualized  bool
	GroupHeaders []GroupHeaderViewModel
	Headers      []HeaderViewModel
	BodyStyle    safehtml.Style
	Rows         []RowViewModel
	Total        *RowViewModel
	NoData       bool
	NoDataText   string
	Status       string
}

// GroupHeaderViewModel is a cell of the group header band.
type GroupHeaderViewModel struct {
	Label       string
	Placeholder bool
	Style       safehtml.Style
}

// HeaderViewModel is a cell of the column header band.
type HeaderViewModel struct {
	Label     string
	SortGlyph string
	Style     safehtml.Style
}

// RowViewModel is a positioned row.
type RowViewModel struct {
	Style safehtml.Style
	Cells []CellViewModel
}

// CellViewModel is a formatted cell.
type CellViewModel struct {
	Text  string
	Style safehtml.Style
}

// NewGridViewModel converts a frame to template data. Pixel widths are only
// emitted when the frame is auto-sized; otherwise the stylesheet shares the
// width equally.
func NewGridViewModel(title string, f grid.Frame) GridViewModel {
	vm := GridViewModel{
		Title:       title,
		AutoSized:   f.AutoSized,
		Virtualized: f.Virtualized,
		NoData:      f.NoData,
		NoDataText:  grid.NoDataText,
		Status:      Status(f),
	}
	if f.Virtualized {
		vm.BodyStyle = safehtml.StyleFromProperties(safehtml.StyleProperties{
			Height: px(f.Metrics.RowHeight * float64(f.RowCount)),
		})
	}

	for _, g := range f.GroupHeaders {
		vm.GroupHeaders = append(vm.GroupHeaders, GroupHeaderViewModel{
			Label:       g.Label,
			Placeholder: g.Placeholder,
			Style:       widthStyle(g.Width, f.AutoSized),
		})
	}
	for _, h := range f.Headers {
		vm.Headers = append(vm.Headers, HeaderViewModel{
			Label:     h.Label,
			SortGlyph: SortGlyph(h.Sorted),
			Style:     widthStyle(h.Width, f.AutoSized),
		})
	}
	for _, row := range f.Rows {
		rvm := RowViewModel{Cells: cellViewModels(row.Cells, f.AutoSized)}
		if f.Virtualized {
			rvm.Style = safehtml.StyleFromProperties(safehtml.StyleProperties{
				Top:    px(row.Top),
				Height: px(f.Metrics.RowHeight),
			})
		}
		vm.Rows = append(vm.Rows, rvm)
	}
	if f.Total != nil {
		vm.Total = &RowViewModel{Cells: cellViewModels(f.Total.Cells, f.AutoSized)}
	}
	return vm
}

func cellViewModels(cells []grid.Cell, autoSized bool) []CellViewModel {
	out := make([]CellViewModel, len(cells))
	for i, c := range cells {
		out[i] = CellViewModel{
			Text:  c.Text,
			Style: widthStyle(c.Width, autoSized),
		}
	}
	return out
}

func widthStyle(width int, autoSized bool) safehtml.Style {
	if !autoSized || width <= 0 {
		return safehtml.Style{}
	}
	return safehtml.StyleFromProperties(safehtml.StyleProperties{
		Width: strconv.Itoa(width) + "px",
	})
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// SortGlyph returns the arrow shown next to a sorted header.
func SortGlyph(s columns.SortState) string {
	switch s {
	case columns.SortAsc:
		return "↑"
	case columns.SortDesc:
		return "↓"
	}
	return ""
}

// Status summarises the window shown by a frame.
func Status(f grid.Frame) string {
	if f.NoData {
		return grid.NoDataText
	}
	return fmt.Sprintf("Rows %d-%d of %d", f.Range.Start+1, f.Range.End, f.RowCount)
}
