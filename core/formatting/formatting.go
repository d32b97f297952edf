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

// Package formatting turns cell values into display strings.
// The same rules feed both the rendered cells and the auto-sizer, so a
// measured width always matches what is eventually drawn.
package formatting

import (
	"math"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/google/pivotgrid/core/columns"
	"github.com/google/pivotgrid/core/rows"
)

// maxFractionDigits matches the default of locale number formatting.
const maxFractionDigits = 3

// Date styles accepted in a date column's DataFormat.
const (
	DateShort  = "short"
	DateMedium = "medium"
	DateLong   = "long"
	DateFull   = "full"
)

// Only en-US layouts are provided; other locales fall back to them.
var dateLayouts = map[string]string{
	DateShort:  "1/2/06",
	DateMedium: "Jan 2, 2006",
	DateLong:   "January 2, 2006",
	DateFull:   "Monday, January 2, 2006",
}

const defaultDateLayout = "1/2/2006"

// Formatter applies the display rules for one locale.
type Formatter struct {
	printer *message.Printer
	// currency scale in fraction digits
	currencyScale int
}

// NewFormatter returns a Formatter for the given locale.
func NewFormatter(tag language.Tag) *Formatter {
	scale, _ := currency.Standard.Rounding(currency.USD)
	return &Formatter{
		printer:       message.NewPrinter(tag),
		currencyScale: scale,
	}
}

var defaultFormatter = NewFormatter(language.AmericanEnglish)

// Default returns the en-US formatter used by the package functions.
func Default() *Formatter {
	return defaultFormatter
}

// Format renders value for leaf with the default formatter.
func Format(value any, leaf columns.Leaf) string {
	return defaultFormatter.Format(value, leaf)
}

// Display renders a cell, honouring the leaf's own formatter when set.
func Display(value any, row rows.Row, leaf columns.Leaf) string {
	if leaf.Formatter != nil {
		return leaf.Formatter(value, row, leaf)
	}
	return defaultFormatter.Format(value, leaf)
}

// Format renders value according to the leaf's data type and format.
func (f *Formatter) Format(value any, leaf columns.Leaf) string {
	if rows.IsNull(value) {
		return ""
	}

	switch leaf.DataType {
	case columns.TypeNumber:
		n, ok := rows.Number(value)
		if !ok {
			return rows.String(value)
		}
		if leaf.DataFormat == columns.FormatCurrency {
			return f.Currency(n)
		}
		return f.Number(n)

	case columns.TypeDate:
		t, ok := value.(time.Time)
		if !ok {
			return rows.String(value)
		}
		return FormatDate(t, leaf.DataFormat)

	case columns.TypeBoolean:
		if rows.Truthy(value) {
			return "Yes"
		}
		return "No"
	}

	return rows.String(value)
}

// Number formats n with grouping separators and at most three fraction digits.
func (f *Formatter) Number(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return rows.String(n)
	}
	return f.printer.Sprint(number.Decimal(n, number.MaxFractionDigits(maxFractionDigits)))
}

// Currency formats n as US dollars, e.g. "$1,234.50" or "-$3.00".
func (f *Formatter) Currency(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return rows.String(n)
	}
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	return sign + "$" + f.printer.Sprint(number.Decimal(n, number.Scale(f.currencyScale)))
}

// FormatDate formats t with a named date style, or the default numeric style.
func FormatDate(t time.Time, style string) string {
	if layout, ok := dateLayouts[style]; ok {
		return t.Format(layout)
	}
	return t.Format(defaultDateLayout)
}
