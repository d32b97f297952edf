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

package rows

import (
	"math"
	"testing"
	"time"
)

func TestNumber(t *testing.T) {
	testCases := []struct {
		name   string
		input  any
		want   float64
		wantOK bool
	}{
		{"nil", nil, 0, false},
		{"int", 42, 42, true},
		{"uint32", uint32(7), 7, true},
		{"float", 1.5, 1.5, true},
		{"numeric string", " 12.25 ", 12.25, true},
		{"blank string", "   ", 0, false},
		{"text", "abc", 0, false},
		{"true", true, 1, true},
		{"false", false, 0, true},
		{"nan", math.NaN(), 0, false},
		{"time", time.UnixMilli(1500).UTC(), 1500, true},
		{"slice", []int{1}, 0, false},
	}

	for _, tc := range testCases {
		got, ok := Number(tc.input)
		if ok != tc.wantOK || got != tc.want {
			t.Errorf("%s: Number(%v) = (%v, %v), want (%v, %v)", tc.name, tc.input, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestString(t *testing.T) {
	testCases := []struct {
		input any
		want  string
	}{
		{nil, ""},
		{"x", "x"},
		{2020, "2020"},
		{int64(-3), "-3"},
		{1.5, "1.5"},
		{100.0, "100"},
		{true, "true"},
		{math.Inf(1), "Infinity"},
		{time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), "2024-01-15T00:00:00Z"},
	}

	for _, tc := range testCases {
		if got := String(tc.input); got != tc.want {
			t.Errorf("String(%v) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestTruthy(t *testing.T) {
	if Truthy(nil) || Truthy(false) || Truthy(0) || Truthy("") {
		t.Error("expected nil, false, 0 and \"\" to be falsy")
	}
	if !Truthy(true) || !Truthy(1) || !Truthy("no") {
		t.Error("expected true, 1 and non-empty strings to be truthy")
	}
}

func TestRowAccessors(t *testing.T) {
	r := Row{"a": nil, "b": 1}
	if !r.Has("a") || r.Has("c") {
		t.Errorf("Has mismatch: a=%v c=%v", r.Has("a"), r.Has("c"))
	}
	if r.Get("c") != nil {
		t.Errorf("Get(missing) = %v, want nil", r.Get("c"))
	}
	var nilRow Row
	if nilRow.Has("a") || nilRow.Get("a") != nil {
		t.Error("nil row should behave as empty")
	}
}
