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

package rendering

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/google/pivotgrid/core/columns"
	"github.com/google/pivotgrid/core/grid"
)

// RenderASCII writes the visible window of frame as a bordered text table.
// Group headers are stacked above the leaf headers they span, and the total
// row becomes the table footer.
func RenderASCII(w io.Writer, frame grid.Frame) error {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader(ASCIIHeaders(frame))
	table.SetColumnAlignment(columnAlignment(frame.Leaves))

	if frame.NoData {
		row := make([]string, len(frame.Leaves))
		if len(row) > 0 {
			row[0] = grid.NoDataText
		}
		table.Append(row)
	}
	for _, r := range frame.Rows {
		table.Append(cellTexts(r.Cells))
	}
	if frame.Total != nil {
		table.SetFooter(cellTexts(frame.Total.Cells))
	}

	table.Render()
	_, err := fmt.Fprintln(w, Status(frame))
	return err
}

// ASCIIHeaders returns one label per leaf. When the frame has a group band,
// the group label is stacked on the first leaf of each group.
func ASCIIHeaders(frame grid.Frame) []string {
	headers := make([]string, len(frame.Headers))
	for i, h := range frame.Headers {
		headers[i] = h.Label
		if g := SortGlyph(h.Sorted); g != "" {
			headers[i] += " " + g
		}
	}
	if !frame.HasGroups {
		return headers
	}
	for _, g := range frame.GroupHeaders {
		for i := g.Start - 1; i < g.Start-1+g.Span && i < len(headers); i++ {
			label := ""
			if i == g.Start-1 && !g.Placeholder {
				label = g.Label
			}
			headers[i] = label + "\n" + headers[i]
		}
	}
	return headers
}

func columnAlignment(leaves []columns.Leaf) []int {
	aligns := make([]int, len(leaves))
	for i, l := range leaves {
		if l.DataType == columns.TypeNumber {
			aligns[i] = tablewriter.ALIGN_RIGHT
		} else {
			aligns[i] = tablewriter.ALIGN_LEFT
		}
	}
	return aligns
}

func cellTexts(cells []grid.Cell) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.Text
	}
	return out
}
