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

// Package measure provides the text measurement capability consumed by the
// column auto-sizer: given a string and a font, return its rendered width in
// device-independent pixels.
package measure

import (
	"fmt"
	"sync"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mattn/go-runewidth"
)

// Font describes the face a string is measured in.
type Font struct {
	Family string
	SizePx float64
	Weight int // CSS weight, 400 regular, 600 semi-bold
}

func (f Font) String() string {
	return fmt.Sprintf("%d %gpx %s", f.Weight, f.SizePx, f.Family)
}

const defaultFamily = `-apple-system, BlinkMacSystemFont, "Segoe UI", "Roboto", sans-serif`

// Fonts used for body cells and header labels.
var (
	BodyFont   = Font{Family: defaultFamily, SizePx: 14, Weight: 400}
	HeaderFont = Font{Family: defaultFamily, SizePx: 14, Weight: 600}
)

// Measurer is the measurement capability.
// Available reports whether measurements can be taken at all; callers fall
// back to heuristics when it returns false rather than waiting or failing.
type Measurer interface {
	Available() bool
	MeasureWidth(text string, font Font) float64
}

const (
	// advance of one terminal cell relative to the font size
	cellAdvance = 0.5
	// extra advance applied to semi-bold and heavier faces
	boldFactor     = 1.05
	boldThreshold  = 600
	defaultEntries = 4096
)

type cacheKey struct {
	font Font
	text string
}

// Surface is a reusable measurement surface. It is created empty, lazily
// initialised on first use and may be released explicitly; a released
// surface re-initialises on the next measurement.
type Surface struct {
	mu          sync.Mutex
	entries     int
	cache       *lru.Cache[cacheKey, float64]
	initialized bool
	disabled    bool
	initErr     error
	condition   *runewidth.Condition
}

// SurfaceOption configures a Surface.
type SurfaceOption func(*Surface)

// WithCacheSize sets how many measured strings are remembered.
func WithCacheSize(n int) SurfaceOption {
	return func(s *Surface) { s.entries = n }
}

// Disabled makes the surface report itself unavailable, as on a headless
// host without fonts.
func Disabled() SurfaceOption {
	return func(s *Surface) { s.disabled = true }
}

// NewSurface returns an uninitialised surface.
func NewSurface(opts ...SurfaceOption) *Surface {
	s := &Surface{entries: defaultEntries}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init prepares the surface; calling it again is a no-op until Release.
func (s *Surface) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initLocked()
}

func (s *Surface) initLocked() error {
	if s.initialized || s.disabled {
		return s.initErr
	}
	cache, err := lru.New[cacheKey, float64](s.entries)
	if err != nil {
		s.initErr = fmt.Errorf("failed to initialize measurement cache: %w", err)
		return s.initErr
	}
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false
	s.cache = cache
	s.condition = cond
	s.initialized = true
	s.initErr = nil
	return nil
}

// Release drops the cached state.
func (s *Surface) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = nil
	s.condition = nil
	s.initialized = false
	s.initErr = nil
}

// Available reports whether the surface can measure, initialising it if needed.
func (s *Surface) Available() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disabled {
		return false
	}
	return s.initLocked() == nil
}

// Len returns the number of cached measurements.
func (s *Surface) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cache == nil {
		return 0
	}
	return s.cache.Len()
}

// MeasureWidth returns the width of text in font. Empty text is 0 wide.
// Falls back to the character estimate when the surface is unavailable.
func (s *Surface) MeasureWidth(text string, font Font) float64 {
	if text == "" {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disabled || s.initLocked() != nil {
		return estimate(text)
	}

	key := cacheKey{font: font, text: text}
	if w, ok := s.cache.Get(key); ok {
		return w
	}
	w := float64(s.condition.StringWidth(text)) * advance(font)
	s.cache.Add(key, w)
	return w
}

func advance(font Font) float64 {
	a := font.SizePx * cellAdvance
	if font.Weight >= boldThreshold {
		a *= boldFactor
	}
	return a
}

// CharWidthEstimate is the average glyph width assumed when no font metrics exist.
const CharWidthEstimate = 7

func estimate(text string) float64 {
	return float64(utf8.RuneCountInString(text) * CharWidthEstimate)
}

// Estimator measures by rune count alone. It is always available and ignores
// the font, which makes it useful on hosts with no font information.
type Estimator struct{}

// Available always returns true.
func (Estimator) Available() bool { return true }

// MeasureWidth returns CharWidthEstimate pixels per rune.
func (Estimator) MeasureWidth(text string, _ Font) float64 {
	return estimate(text)
}
