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
	"github.com/spf13/cobra"

	"github.com/google/pivotgrid/core/definitions"
	"github.com/google/pivotgrid/demo"
)

type sourceOptions struct {
	dataset string
	columns string
	rows    int
	seed    int64
}

func (s *sourceOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.dataset, "dataset", "employees", "built-in dataset to show")
	cmd.Flags().StringVar(&s.columns, "columns", "", "YAML column definitions file")
	cmd.Flags().IntVar(&s.rows, "rows", 0, "row count of generated datasets")
	cmd.Flags().Int64Var(&s.seed, "seed", 0, "random seed of generated datasets")
}

// load returns the selected dataset. --columns replaces the definitions of
// a built-in dataset.
func (s *sourceOptions) load() (demo.Dataset, error) {
	var defs []definitions.Definition
	if s.columns != "" {
		var err error
		if defs, err = definitions.Load(s.columns); err != nil {
			return demo.Dataset{}, err
		}
	}

	ds, err := demo.Load(s.dataset, demo.Options{Size: s.rows, Seed: s.seed})
	if err != nil {
		return demo.Dataset{}, err
	}
	if defs != nil {
		ds.Definitions = defs
	}
	return ds, nil
}
