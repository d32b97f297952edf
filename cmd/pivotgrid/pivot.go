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

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/google/pivotgrid/core/builder"
	"github.com/google/pivotgrid/core/columns"
	"github.com/google/pivotgrid/core/grid"
	"github.com/google/pivotgrid/core/pivot"
	"github.com/google/pivotgrid/core/rendering"
	"github.com/google/pivotgrid/core/rows"
)

type pivotOptions struct {
	source sourceOptions
	format string
}

func newPivotCommand(root *rootOptions) *cobra.Command {
	opts := &pivotOptions{}

	cmd := &cobra.Command{
		Use:   "pivot",
		Short: "Print the rows produced by the pivot transform",
		Long: `Group, pivot and aggregate a dataset according to the rowGroup, pivot and
aggFunc settings of its column definitions and print every resulting row.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, root)
		},
	}
	opts.source.addFlags(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", "yaml", "output format: yaml or ascii")
	return cmd
}

func (o *pivotOptions) run(cmd *cobra.Command, root *rootOptions) error {
	ds, err := o.source.load()
	if err != nil {
		return err
	}

	res := builder.Build(ds.Definitions, ds.Rows, builder.Options{PivotMode: true, Logger: root.logger})
	root.logger.WithFields(map[string]any{
		"dataset": ds.Name,
		"mode":    pivot.ModeFor(res.Transform).String(),
	}).Info("Transformed %d rows into %d", len(ds.Rows), len(res.Rows))

	leaves := columns.Flatten(res.Columns)
	switch o.format {
	case "yaml":
		return writeYAML(cmd.OutOrStdout(), res.Rows, leaves)
	case "ascii":
		opts := root.cfg.Grid
		opts.EnableRowVirtualization = false
		frame := grid.Compute(grid.State{
			Columns: res.Columns,
			Data:    res.Rows,
			Options: opts,
			Logger:  root.logger,
		}, grid.Viewport{})
		return rendering.RenderASCII(cmd.OutOrStdout(), frame)
	}
	return errors.Errorf("unknown format %q: want yaml or ascii", o.format)
}

// writeYAML writes data as a sequence of mappings whose keys follow the leaf
// order. Fields a row lacks are omitted.
func writeYAML(w io.Writer, data []rows.Row, leaves []columns.Leaf) error {
	doc := &yaml.Node{Kind: yaml.SequenceNode}
	for _, row := range data {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for _, leaf := range leaves {
			v, ok := row[leaf.Field]
			if !ok {
				continue
			}
			var value yaml.Node
			if err := value.Encode(v); err != nil {
				return errors.Wrapf(err, "encoding %s", leaf.Field)
			}
			m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: leaf.Field}, &value)
		}
		doc.Content = append(doc.Content, m)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, "writing rows")
	}
	return enc.Close()
}
