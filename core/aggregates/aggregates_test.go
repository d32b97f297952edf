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

package aggregates

import (
	"strings"
	"testing"
	"time"

	"github.com/google/pivotgrid/core/logging"
	logtest "github.com/google/pivotgrid/core/logging/test"
	"github.com/google/pivotgrid/core/rows"
)

func salaries() []rows.Row {
	return []rows.Row{
		{"dept": "Eng", "salary": 100},
		{"dept": "Eng", "salary": "200"},
		{"dept": "HR", "salary": nil},
		{"dept": "HR", "salary": "n/a"},
		{"dept": "Ops"},
		{"dept": "Ops", "salary": 50.5},
	}
}

func TestAggregate(t *testing.T) {
	data := salaries()

	testCases := []struct {
		fn   string
		want any
	}{
		{"sum", 350.5},
		{"SUM", 350.5},
		{"avg", 350.5 / 3},
		{"Average", 350.5 / 3},
		{"min", 50.5},
		{"max", 200.0},
		{"count", 6},
		{"countDistinct", 5},
		{"countdistinct", 5},
		{"first", 100},
		{"last", 50.5},
	}

	for _, tc := range testCases {
		got := Aggregate(data, "salary", tc.fn, logging.NewNoOpLogger())
		if got != tc.want {
			t.Errorf("Aggregate(%q) = %v (%T), want %v (%T)", tc.fn, got, got, tc.want, tc.want)
		}
	}
}

func TestAggregateEmpty(t *testing.T) {
	testCases := []struct {
		fn   string
		want any
	}{
		{"sum", 0.0},
		{"avg", 0.0},
		{"min", nil},
		{"max", nil},
		{"count", 0},
		{"countDistinct", 0},
		{"first", nil},
		{"last", nil},
	}
	for _, tc := range testCases {
		if got := Aggregate(nil, "x", tc.fn, nil); got != tc.want {
			t.Errorf("Aggregate([], %q) = %v, want %v", tc.fn, got, tc.want)
		}
	}
}

func TestCountIgnoresValidity(t *testing.T) {
	data := []rows.Row{{"v": "bad"}, {"v": nil}, {}, {"v": 3}}
	if got := Aggregate(data, "v", "count", nil); got != len(data) {
		t.Errorf("count = %v, want %d", got, len(data))
	}
}

func TestAggregateWithoutNumericValues(t *testing.T) {
	data := []rows.Row{{"v": "USA"}, {"v": "UK"}, {"v": ""}}
	testCases := []struct {
		fn   string
		want any
	}{
		{"sum", 0.0},
		{"avg", 0.0},
		{"min", nil},
		{"max", nil},
		{"count", 3},
		{"countDistinct", 0},
		{"first", nil},
		{"last", nil},
	}
	for _, tc := range testCases {
		if got := Aggregate(data, "v", tc.fn, nil); got != tc.want {
			t.Errorf("Aggregate(%q) = %v (%T), want %v (%T)", tc.fn, got, got, tc.want, tc.want)
		}
	}
}

func TestCountDistinctKeys(t *testing.T) {
	when := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	data := []rows.Row{
		{"v": 1},
		{"v": 1.0},
		{"v": int64(1)},
		{"v": "1"},
		{"v": true},
		{"v": nil},
		{},
		{"v": when},
		{"v": when.In(time.FixedZone("X", 3600))},
		{"v": []string{"a"}},
		{"v": []string{"a"}},
	}
	// 1, "1", true, nil, when, []string{"a"}
	if got := Aggregate(data, "v", "countDistinct", nil); got != 6 {
		t.Errorf("countDistinct = %v, want 6", got)
	}
}

func TestUnknownFunctionWarnsAndSums(t *testing.T) {
	logger := logtest.New()
	data := []rows.Row{{"v": 1}, {"v": 2}}

	got := Aggregate(data, "v", "median", logger)
	if got != 3.0 {
		t.Errorf("Aggregate(median) = %v, want 3", got)
	}

	entries := logger.Entries()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	if entries[0].Level != logging.Warn {
		t.Errorf("entry level = %v, want Warn", entries[0].Level)
	}
	if !strings.Contains(entries[0].Message, "median") {
		t.Errorf("entry message = %q, want it to name the function", entries[0].Message)
	}
	if entries[0].Fields["field"] != "v" {
		t.Errorf("entry fields = %v, want field=v", entries[0].Fields)
	}
}

func TestParseFunc(t *testing.T) {
	for fn, name := range funcNames {
		got, ok := ParseFunc(strings.ToUpper(name))
		if !ok || got != fn {
			t.Errorf("ParseFunc(%q) = %v, %v, want %v, true", strings.ToUpper(name), got, ok, fn)
		}
		if fn.String() != name {
			t.Errorf("%d.String() = %q, want %q", fn, fn.String(), name)
		}
	}
	if got, ok := ParseFunc("nope"); ok || got != FuncSum {
		t.Errorf("ParseFunc(nope) = %v, %v, want sum, false", got, ok)
	}
}
