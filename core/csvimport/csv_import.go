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

// Package csvimport decodes the CSV fixtures of the sample datasets into grid
// rows.
package csvimport

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/google/pivotgrid/core/columns"
	"github.com/google/pivotgrid/core/definitions"
	"github.com/google/pivotgrid/core/rows"
)

// CsvColumnType specifies the data type for a column
type CsvColumnType int

const (
	// CsvColumnTypeAuto auto-detects type from data (default)
	CsvColumnTypeAuto CsvColumnType = iota
	// CsvColumnTypeString keeps values as strings
	CsvColumnTypeString
	// CsvColumnTypeNumber parses values as float64, or int when integral
	CsvColumnTypeNumber
	// CsvColumnTypeBool parses values as bool
	CsvColumnTypeBool
	// CsvColumnTypeDate parses values as time.Time
	CsvColumnTypeDate
)

// CsvColumnSource defines source metadata for how a column is imported
type CsvColumnSource struct {
	// Name is the row field (defaults to header name if not specified)
	Name string
	// Type specifies the data type for this column (default: auto-detect)
	Type CsvColumnType
}

// ImportOptions configures CSV import behavior
type ImportOptions struct {
	// HasHeader indicates whether the first row contains column headers
	HasHeader bool
	// Delimiter is the field delimiter (defaults to comma)
	Delimiter rune
	// ColumnSources provides configuration for specific columns by header name
	ColumnSources map[string]CsvColumnSource
	// SampleSize is the number of rows to sample for type detection (default: 100)
	SampleSize int
}

// DefaultOptions returns default import options
func DefaultOptions() ImportOptions {
	return ImportOptions{
		HasHeader:     true,
		Delimiter:     ',',
		ColumnSources: make(map[string]CsvColumnSource),
		SampleSize:    100,
	}
}

// TypeFor maps a column data type to the import type that produces it.
func TypeFor(dt columns.DataType) CsvColumnType {
	switch dt {
	case columns.TypeNumber:
		return CsvColumnTypeNumber
	case columns.TypeBoolean:
		return CsvColumnTypeBool
	case columns.TypeDate:
		return CsvColumnTypeDate
	case columns.TypeString:
		return CsvColumnTypeString
	}
	return CsvColumnTypeAuto
}

// OptionsForDefinitions returns default options with one column source per
// leaf definition that declares a data type.
func OptionsForDefinitions(defs []definitions.Definition) ImportOptions {
	options := DefaultOptions()
	for _, c := range definitions.Flatten(defs) {
		if c.DataType == "" {
			continue
		}
		options.ColumnSources[c.FieldName()] = CsvColumnSource{Type: TypeFor(c.DataType)}
	}
	return options
}

// ImportFromReader imports CSV data from an io.Reader. Empty cells are left
// out of the row so that they read as absent values.
func ImportFromReader(reader io.Reader, options ImportOptions) ([]rows.Row, error) {
	csvReader := csv.NewReader(reader)
	if options.Delimiter != 0 {
		csvReader.Comma = options.Delimiter
	}

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read CSV")
	}

	if len(records) == 0 {
		return nil, errors.New("CSV file is empty")
	}

	var headers []string
	var dataRows [][]string

	if options.HasHeader {
		headers = records[0]
		dataRows = records[1:]
	} else {
		numCols := len(records[0])
		headers = make([]string, numCols)
		for i := 0; i < numCols; i++ {
			headers[i] = "column_" + strconv.Itoa(i+1)
		}
		dataRows = records
	}

	sampleSize := options.SampleSize
	if sampleSize <= 0 {
		sampleSize = 100
	}
	columnTypes := detectColumnTypes(headers, dataRows, sampleSize, options.ColumnSources)

	names := make([]string, len(headers))
	for i, header := range headers {
		names[i] = strings.TrimSpace(header)
		if config := getColumnSource(header, options.ColumnSources); config.Name != "" {
			names[i] = config.Name
		}
	}

	out := make([]rows.Row, 0, len(dataRows))
	for line, record := range dataRows {
		row := make(rows.Row, len(headers))
		for i := range headers {
			if i >= len(record) {
				continue
			}
			value := strings.TrimSpace(record[i])
			if value == "" {
				continue
			}
			v, err := parseValue(value, columnTypes[i])
			if err != nil {
				return nil, errors.Wrapf(err, "row %d, column %q", line+1, headers[i])
			}
			row[names[i]] = v
		}
		out = append(out, row)
	}

	return out, nil
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// ParseDate parses the date layouts accepted in date columns.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("unrecognized date %q", s)
}

// ParseBool accepts strconv booleans plus yes/no.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "y":
		return true, nil
	case "no", "n":
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, errors.Errorf("invalid boolean %q", s)
	}
	return b, nil
}

func parseValue(value string, typ CsvColumnType) (any, error) {
	switch typ {
	case CsvColumnTypeNumber:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, errors.Errorf("invalid number %q", value)
		}
		if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return int(f), nil
		}
		return f, nil
	case CsvColumnTypeBool:
		return ParseBool(value)
	case CsvColumnTypeDate:
		return ParseDate(value)
	}
	return value, nil
}

// detectColumnTypes samples data to determine column types. A column is a
// number or bool column when every sampled non-empty value parses as one.
func detectColumnTypes(headers []string, dataRows [][]string, sampleSize int, configs map[string]CsvColumnSource) []CsvColumnType {
	types := make([]CsvColumnType, len(headers))

	rowsToSample := sampleSize
	if rowsToSample > len(dataRows) {
		rowsToSample = len(dataRows)
	}

	for i, header := range headers {
		if config, ok := configs[header]; ok && config.Type != CsvColumnTypeAuto {
			types[i] = config.Type
			continue
		}

		isNumber := true
		isBool := true
		hasNonEmpty := false

		for j := 0; j < rowsToSample; j++ {
			if i >= len(dataRows[j]) {
				continue
			}

			value := strings.TrimSpace(dataRows[j][i])
			if value == "" {
				continue
			}

			hasNonEmpty = true

			if _, err := strconv.ParseFloat(value, 64); err != nil {
				isNumber = false
			}
			if _, err := strconv.ParseBool(value); err != nil || isNumeral(value) {
				isBool = false
			}
			if !isNumber && !isBool {
				break
			}
		}

		switch {
		case !hasNonEmpty:
			types[i] = CsvColumnTypeString
		case isNumber:
			types[i] = CsvColumnTypeNumber
		case isBool:
			types[i] = CsvColumnTypeBool
		default:
			types[i] = CsvColumnTypeString
		}
	}

	return types
}

// isNumeral reports whether s is one of the digit spellings strconv.ParseBool
// accepts.
func isNumeral(s string) bool {
	return s == "0" || s == "1"
}

// getColumnSource returns the config for a column, or an empty config if not specified
func getColumnSource(header string, configs map[string]CsvColumnSource) CsvColumnSource {
	if configs == nil {
		return CsvColumnSource{}
	}
	if config, ok := configs[header]; ok {
		return config
	}
	return CsvColumnSource{}
}
