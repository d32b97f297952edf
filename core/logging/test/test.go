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

// Package test records the diagnostics of the grid packages so tests can
// assert on them. Records pass through a real logrus logger, so level
// filtering and fields behave exactly as in production.
package test

import (
	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"

	"github.com/google/pivotgrid/core/logging"
)

// LogEntry is one recorded message.
type LogEntry struct {
	Level   logging.Level
	Fields  map[string]any
	Message string
}

// Logger is a logging.StandardLogger that discards output and records every
// entry at or above its level (Info by default).
type Logger struct {
	*logging.StandardLogger
	hook *logrustest.Hook
}

// New returns a recording logger.
func New() *Logger {
	l, hook := logrustest.NewNullLogger()
	return &Logger{
		StandardLogger: logging.NewFromLogrus(l),
		hook:           hook,
	}
}

// Entries returns the recorded entries in order.
func (l *Logger) Entries() []LogEntry {
	all := l.hook.AllEntries()
	out := make([]LogEntry, len(all))
	for i, e := range all {
		out[i] = LogEntry{
			Level:   levelOf(e.Level),
			Fields:  map[string]any(e.Data),
			Message: e.Message,
		}
	}
	return out
}

// AtLevel returns the recorded entries of exactly level.
func (l *Logger) AtLevel(level logging.Level) []LogEntry {
	var out []LogEntry
	for _, e := range l.Entries() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// Reset drops the recorded entries.
func (l *Logger) Reset() {
	l.hook.Reset()
}

func levelOf(lvl logrus.Level) logging.Level {
	switch lvl {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		return logging.Error
	case logrus.WarnLevel:
		return logging.Warn
	case logrus.InfoLevel:
		return logging.Info
	}
	return logging.Debug
}
