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
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/google/pivotgrid/core/definitions"
	"github.com/google/pivotgrid/demo"
)

func newDatasetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "List the built-in datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Name", "Rows", "Columns", "Description"})
			table.SetAutoWrapText(false)
			for _, name := range demo.Names() {
				ds, err := demo.Load(name, demo.Options{})
				if err != nil {
					return err
				}
				table.Append([]string{
					ds.Name,
					strconv.Itoa(len(ds.Rows)),
					strconv.Itoa(len(definitions.Flatten(ds.Definitions))),
					ds.Description,
				})
			}
			table.Render()
			return nil
		},
	}
}
