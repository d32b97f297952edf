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

package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/google/pivotgrid/core/builder"
	"github.com/google/pivotgrid/core/grid"
	"github.com/google/pivotgrid/core/measure"
	"github.com/google/pivotgrid/core/rendering"
	"github.com/google/pivotgrid/core/rows"
)

type renderOptions struct {
	source sourceOptions
	format string
	output string
	title  string
	height float64
	scroll float64
	totals bool
}

func newRenderCommand(root *rootOptions) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the visible window of a dataset",
		Long: `Render the rows of a dataset visible in a scroll container of the given
height and scroll offset, as an ASCII table or an HTML page.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, root)
		},
	}
	opts.source.addFlags(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", "ascii", "output format: ascii or html")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write to this file instead of stdout")
	cmd.Flags().StringVar(&opts.title, "title", "", "page title of HTML output (default: dataset name)")
	cmd.Flags().Float64Var(&opts.height, "height", 600, "scroll container height in pixels")
	cmd.Flags().Float64Var(&opts.scroll, "scroll", 0, "vertical scroll offset in pixels")
	cmd.Flags().BoolVar(&opts.totals, "totals", true, "pin a total row aggregating every column with an aggFunc")
	cmd.Flags().Bool("pivot", false, "group, pivot and aggregate by the column definitions")
	cmd.Flags().Bool("autosize", false, "size columns to their content")
	cmd.Flags().Bool("virtualize", true, "render only the rows in view")
	cmd.Flags().String("key-field", "id", "row field used as the row key")
	return cmd
}

func (o *renderOptions) run(cmd *cobra.Command, root *rootOptions) error {
	if o.format != "ascii" && o.format != "html" {
		return errors.Errorf("unknown format %q: want ascii or html", o.format)
	}

	ds, err := o.source.load()
	if err != nil {
		return err
	}

	cfg := root.cfg
	res := builder.Build(ds.Definitions, ds.Rows, builder.Options{
		PivotMode: cfg.PivotMode,
		Logger:    root.logger,
	})

	var total rows.Row
	if o.totals && !cfg.PivotMode {
		total = ds.Totals(root.logger)
	}

	surface := measure.NewSurface()
	defer surface.Release()

	frame := grid.Compute(grid.State{
		Columns:  res.Columns,
		Data:     res.Rows,
		TotalRow: total,
		Options:  cfg.Grid,
		Measurer: surface,
		Logger:   root.logger,
	}, grid.Viewport{ContainerHeight: o.height, ScrollOffset: o.scroll})

	w := cmd.OutOrStdout()
	if o.output != "" {
		f, err := os.Create(o.output)
		if err != nil {
			return errors.Wrap(err, "creating output file")
		}
		defer f.Close()
		w = f
	}

	if err := o.write(w, ds.Name, frame); err != nil {
		return errors.Wrapf(err, "rendering %s", ds.Name)
	}
	return nil
}

func (o *renderOptions) write(w io.Writer, name string, frame grid.Frame) error {
	if o.format == "ascii" {
		return rendering.RenderASCII(w, frame)
	}

	renderer, err := rendering.NewGridRenderer()
	if err != nil {
		return err
	}
	title := o.title
	if title == "" {
		title = name
	}
	return renderer.Render(w, title, frame)
}
