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

// Package aggregates reduces a partition of rows to a single value per field.
//
// Numeric functions (sum, avg, min, max) coerce each value with rows.Number
// and drop nulls and non-numeric values before reducing. count, countDistinct,
// first and last look at the rows themselves, so they are unaffected by
// coercion.
package aggregates

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/pivotgrid/core/logging"
	"github.com/google/pivotgrid/core/rows"
)

// Func identifies an aggregation function.
type Func int

const (
	FuncSum Func = iota
	FuncAvg
	FuncMin
	FuncMax
	FuncCount
	FuncCountDistinct
	FuncFirst
	FuncLast
)

var funcNames = map[Func]string{
	FuncSum:           "sum",
	FuncAvg:           "avg",
	FuncMin:           "min",
	FuncMax:           "max",
	FuncCount:         "count",
	FuncCountDistinct: "countDistinct",
	FuncFirst:         "first",
	FuncLast:          "last",
}

// String returns the canonical name of the function.
func (f Func) String() string {
	if name, ok := funcNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Func(%d)", int(f))
}

// ParseFunc resolves a function name case-insensitively. "average" is
// accepted for avg. ok is false for unknown names, in which case FuncSum is
// returned.
func ParseFunc(name string) (fn Func, ok bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sum":
		return FuncSum, true
	case "avg", "average":
		return FuncAvg, true
	case "min":
		return FuncMin, true
	case "max":
		return FuncMax, true
	case "count":
		return FuncCount, true
	case "countdistinct":
		return FuncCountDistinct, true
	case "first":
		return FuncFirst, true
	case "last":
		return FuncLast, true
	}
	return FuncSum, false
}

// Descriptor pairs a value field with the name of its aggregation function.
type Descriptor struct {
	Field string `json:"field" yaml:"field" mapstructure:"field"`
	Func  string `json:"aggFunc" yaml:"agg_func" mapstructure:"agg_func"`
}

// Resolve parses d.Func, warning on logger and falling back to sum when the
// name is unknown.
func (d Descriptor) Resolve(logger logging.Logger) Func {
	fn, ok := ParseFunc(d.Func)
	if !ok {
		logging.OrDefault(logger).WithFields(map[string]any{
			"field":   d.Field,
			"aggFunc": d.Func,
		}).Warn("Unknown aggregation function %q, using sum", d.Func)
	}
	return fn
}

// NumericAggState accumulates the numeric values of one field.
type NumericAggState struct {
	Count int64
	Sum   float64
	Min   float64
	Max   float64
}

// NewNumericAggState creates a new empty numeric aggregate state.
func NewNumericAggState() *NumericAggState {
	return &NumericAggState{
		Min: math.Inf(1),
		Max: math.Inf(-1),
	}
}

// Add adds a single value to the aggregate state.
func (s *NumericAggState) Add(value float64) {
	s.Count++
	s.Sum += value
	if value < s.Min {
		s.Min = value
	}
	if value > s.Max {
		s.Max = value
	}
}

// Avg returns the mean of the values, or 0 when there are none.
func (s *NumericAggState) Avg() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

// Collect builds the numeric state of field over data.
func Collect(data []rows.Row, field string) *NumericAggState {
	s := NewNumericAggState()
	for _, row := range data {
		if v, ok := rows.Number(row.Get(field)); ok {
			s.Add(v)
		}
	}
	return s
}

// Aggregate reduces field over data with the named function. Unknown names
// are reported on logger (the package logger when nil) and treated as sum.
func Aggregate(data []rows.Row, field, fn string, logger logging.Logger) any {
	return Apply(data, Descriptor{Field: field, Func: fn}.Resolve(logger), field)
}

// Apply reduces field over data with fn.
//
// count is always len(data). Every other function returns its default when
// no value of field coerces to a number: 0 for sum, avg and countDistinct,
// nil for min, max, first and last. Otherwise sum, avg, min and max are
// float64 over the numeric values, countDistinct is the number of distinct
// raw values and first and last are the raw values of the first and last row.
func Apply(data []rows.Row, fn Func, field string) any {
	if fn == FuncCount {
		return len(data)
	}

	s := Collect(data, field)
	if s.Count == 0 {
		return defaultValue(fn)
	}
	switch fn {
	case FuncCountDistinct:
		return countDistinct(data, field)
	case FuncFirst:
		return data[0].Get(field)
	case FuncLast:
		return data[len(data)-1].Get(field)
	case FuncAvg:
		return s.Avg()
	case FuncMin:
		return s.Min
	case FuncMax:
		return s.Max
	default:
		return s.Sum
	}
}

// defaultValue is the result of fn over a field with no numeric values.
func defaultValue(fn Func) any {
	switch fn {
	case FuncSum, FuncAvg:
		return 0.0
	case FuncCountDistinct:
		return 0
	}
	return nil
}

func countDistinct(data []rows.Row, field string) int {
	seen := make(map[any]struct{}, len(data))
	for _, row := range data {
		seen[distinctKey(row.Get(field))] = struct{}{}
	}
	return len(seen)
}

type timeKey struct{ nanos int64 }

type opaqueKey struct{ repr string }

// distinctKey maps a raw value to a comparable key. Numeric kinds collapse
// to float64 so 1 and 1.0 count once; 1 and "1" stay distinct.
func distinctKey(v any) any {
	switch x := v.(type) {
	case nil, string, bool:
		return x
	case time.Time:
		return timeKey{x.UnixNano()}
	}
	if rows.IsNumeric(v) {
		if f, ok := rows.Number(v); ok {
			return f
		}
	}
	return opaqueKey{fmt.Sprintf("%T:%v", v, v)}
}
