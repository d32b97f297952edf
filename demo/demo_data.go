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

// Package demo provides the sample datasets shown by the pivotgrid CLI.
package demo

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/google/pivotgrid/core/csvimport"
	"github.com/google/pivotgrid/core/definitions"
	"github.com/google/pivotgrid/core/logging"
	"github.com/google/pivotgrid/core/rows"
)

//go:embed data/employees.csv
var employeesCSV []byte

//go:embed data/employees.yaml
var employeesYAML []byte

//go:embed data/olympics.csv
var olympicsCSV []byte

//go:embed data/olympics.yaml
var olympicsYAML []byte

//go:embed data/performance.yaml
var performanceYAML []byte

// mustParseDefinitions parses embedded column definitions.
func mustParseDefinitions(name string, data []byte) []definitions.Definition {
	defs, err := definitions.Parse(data)
	if err == nil {
		err = definitions.Validate(defs)
	}
	if err != nil {
		panic(fmt.Sprintf("invalid %s column definitions: %v", name, err))
	}
	return defs
}

// importRows is a helper function to import an embedded CSV dataset typed by
// its column definitions.
func importRows(name string, csv []byte, defs []definitions.Definition) []rows.Row {
	data, err := csvimport.ImportFromReader(bytes.NewReader(csv), csvimport.OptionsForDefinitions(defs))
	if err != nil {
		panic(fmt.Sprintf("failed to import %s CSV: %v", name, err))
	}

	logging.Get().WithFields(map[string]any{"dataset": name}).Debug("Imported %d rows from CSV", len(data))
	return data
}

// EmployeeDefinitions returns the column definitions of the employee sample:
// an id column, the Personal Information and Employment groups, and notes.
func EmployeeDefinitions() []definitions.Definition {
	return mustParseDefinitions("employees", employeesYAML)
}

// Employees returns the 50 row employee sample.
func Employees() []rows.Row {
	return importRows("employees", employeesCSV, EmployeeDefinitions())
}

// OlympicDefinitions returns definitions that group medal rows by country,
// pivot them on year and sport and sum the medal counts.
func OlympicDefinitions() []definitions.Definition {
	return mustParseDefinitions("olympics", olympicsYAML)
}

// OlympicMedals returns the medal rows used by the pivot examples.
func OlympicMedals() []rows.Row {
	return importRows("olympics", olympicsCSV, OlympicDefinitions())
}
