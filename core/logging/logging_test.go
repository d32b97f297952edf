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

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestStandardLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})

	logger.WithFields(map[string]any{"field": "gold"}).Warn("unknown aggregation function: %s", "median")

	out := buf.String()
	if !strings.Contains(out, "unknown aggregation function: median") {
		t.Errorf("missing message in %q", out)
	}
	if !strings.Contains(out, "field=gold") {
		t.Errorf("missing field in %q", out)
	}
}

func TestStandardLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New()
	logger.SetOutput(&buf)

	logger.SetLevel(Error)
	if logger.GetLevel() != Error {
		t.Errorf("GetLevel() = %v, want %v", logger.GetLevel(), Error)
	}
	logger.Warn("suppressed")
	if buf.Len() != 0 {
		t.Errorf("warn written at error level: %q", buf.String())
	}

	logger.SetLevel(Debug)
	logger.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("debug not written at debug level: %q", buf.String())
	}
}

func TestOrDefault(t *testing.T) {
	if OrDefault(nil) != Logger(Get()) {
		t.Error("OrDefault(nil) should return the package logger")
	}
	noop := NewNoOpLogger()
	if OrDefault(noop) != Logger(noop) {
		t.Error("OrDefault should return a non-nil logger unchanged")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{"error": Error, "warn": Warn, "warning": Warn, "info": Info, "debug": Debug, "": Info}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
