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
	"fmt"
	"math/rand"
	"time"

	"github.com/google/pivotgrid/core/definitions"
	"github.com/google/pivotgrid/core/logging"
	"github.com/google/pivotgrid/core/rows"
)

// Performance dataset sizes
const (
	PerfSmallRows  = 100
	PerfMediumRows = 1_000
	PerfLargeRows  = 10_000
)

// PerfDefaultSeed seeds GeneratePerformanceDataset when no seed is given.
const PerfDefaultSeed = 42

var (
	perfFirstNames  = []string{"John", "Jane", "Bob", "Alice", "Charlie", "Diana", "Edward", "Fiona", "George", "Helen"}
	perfLastNames   = []string{"Doe", "Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez"}
	perfDepartments = []string{"Engineering", "Marketing", "Sales", "HR", "Finance", "Operations"}
)

// PerformanceDefinitions returns the column definitions of the generated
// dataset.
func PerformanceDefinitions() []definitions.Definition {
	return mustParseDefinitions("performance", performanceYAML)
}

// GeneratePerformanceDataset creates count employee rows for exercising
// virtualization and auto-sizing. The same seed always yields the same rows.
func GeneratePerformanceDataset(count int, seed int64) []rows.Row {
	logging.Get().Debug("Generating performance dataset with %d rows (seed %d)", count, seed)

	if count < 0 {
		count = 0
	}
	r := rand.New(rand.NewSource(seed))
	data := make([]rows.Row, count)
	for i := range data {
		id := i + 1
		data[i] = rows.Row{
			"id":          id,
			"firstName":   perfFirstNames[r.Intn(len(perfFirstNames))],
			"lastName":    perfLastNames[r.Intn(len(perfLastNames))],
			"email":       fmt.Sprintf("user%d@example.com", id),
			"age":         r.Intn(40) + 22,
			"salary":      r.Intn(80000) + 40000,
			"department":  perfDepartments[r.Intn(len(perfDepartments))],
			"isActive":    r.Float64() > 0.2,
			"hireDate":    time.Date(2018+r.Intn(7), time.Month(r.Intn(12)+1), r.Intn(28)+1, 0, 0, 0, 0, time.UTC),
			"performance": r.Intn(5) + 1,
		}
	}
	return data
}
