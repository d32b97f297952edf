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

package demo

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/google/pivotgrid/core/builder"
	"github.com/google/pivotgrid/core/definitions"
	"github.com/google/pivotgrid/core/logging"
	"github.com/google/pivotgrid/core/pivot"
	"github.com/google/pivotgrid/core/rows"
)

// Dataset is a named set of rows with the definitions that display them.
type Dataset struct {
	Name        string
	Description string
	Definitions []definitions.Definition
	Rows        []rows.Row
}

// Totals aggregates every definition that declares an aggFunc over the
// whole dataset. It returns nil when no definition does.
func (d Dataset) Totals(logger logging.Logger) rows.Row {
	return pivot.Summary(d.Rows, builder.TransformOptions(d.Definitions).Values, logger)
}

// Options parameterize generated datasets.
type Options struct {
	// Size is the row count of generated datasets. Zero uses PerfMediumRows.
	Size int
	// Seed seeds generated datasets. Zero uses PerfDefaultSeed.
	Seed int64
}

type loader func(Options) Dataset

var registry = map[string]loader{
	"employees": func(Options) Dataset {
		return Dataset{
			Name:        "employees",
			Description: "50 employees with grouped personal and employment columns",
			Definitions: EmployeeDefinitions(),
			Rows:        Employees(),
		}
	},
	"performance": func(opts Options) Dataset {
		size, seed := opts.Size, opts.Seed
		if size == 0 {
			size = PerfMediumRows
		}
		if seed == 0 {
			seed = PerfDefaultSeed
		}
		return Dataset{
			Name:        "performance",
			Description: "Generated employees for virtualization and sizing",
			Definitions: PerformanceDefinitions(),
			Rows:        GeneratePerformanceDataset(size, seed),
		}
	},
	"olympics": func(Options) Dataset {
		return Dataset{
			Name:        "olympics",
			Description: "Medal counts grouped by country and pivoted by year and sport",
			Definitions: OlympicDefinitions(),
			Rows:        OlympicMedals(),
		}
	},
}

// Names returns the registered dataset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load returns the named dataset.
func Load(name string, opts Options) (Dataset, error) {
	load, ok := registry[name]
	if !ok {
		return Dataset{}, errors.Errorf("unknown dataset %q (available: %v)", name, Names())
	}
	return load(opts), nil
}
