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

// Package rows defines the untyped row representation shared by the grid,
// the sizer and the transform pipeline, together with the value coercions
// used to display and aggregate row values.
package rows

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Row maps a field name to a scalar value: string, any integer or float kind,
// bool, time.Time or nil. A missing key is treated exactly like nil.
// Rows are inputs; code in this module builds new rows instead of mutating them.
type Row map[string]any

// Get returns the value stored under field, or nil when the field is absent.
func (r Row) Get(field string) any {
	if r == nil {
		return nil
	}
	return r[field]
}

// Has reports whether the row carries field, even if its value is nil.
func (r Row) Has(field string) bool {
	if r == nil {
		return false
	}
	_, ok := r[field]
	return ok
}

// IsNull reports whether v should be treated as an absent value.
func IsNull(v any) bool {
	return v == nil
}

// Number coerces v to a float64.
// Numbers convert directly, bools become 1 or 0, strings are parsed after
// trimming and time values become milliseconds since the Unix epoch.
// nil, blank strings, unparsable strings and NaN are reported as non-numeric.
func Number(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int8:
		f = float64(x)
	case int16:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint8:
		f = float64(x)
	case uint16:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case time.Time:
		return float64(x.UnixMilli()), true
	case time.Duration:
		f = float64(x)
	default:
		return 0, false
	}
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// IsNumeric reports whether v holds a Go numeric kind (not a numeric string).
func IsNumeric(v any) bool {
	switch v.(type) {
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

// Truthy reports the boolean interpretation of v used by boolean columns.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case time.Time:
		return !x.IsZero()
	}
	if f, ok := Number(v); ok {
		return f != 0
	}
	return true
}

// String returns the plain string form of v; nil becomes "".
func String(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return formatFloat(x)
	case float32:
		return formatFloat(float64(x))
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case time.Time:
		return x.Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
