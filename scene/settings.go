// Copyright (c) 2025, The Weft Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/weft-ui/weft/math32"
	"github.com/weft-ui/weft/styles"
)

// Settings holds the engine tunables. Modify [CurrentSettings] or load
// a TOML file with [OpenSettings] to change them.
type Settings struct {
	// AlphaCutoff is the effective opacity at or below which an item
	// counts as invisible. The default is 1/510, half of the smallest
	// 8-bit alpha step.
	AlphaCutoff float32 `toml:"alpha-cutoff"`

	// DefaultStretchScale is the scale factor assigned to newly
	// created stretches.
	DefaultStretchScale float32 `toml:"default-stretch-scale"`

	// MaxRelayoutPasses caps the consolidate/relayout iterations of
	// one [LayoutPass].
	MaxRelayoutPasses int `toml:"max-relayout-passes"`
}

// DefaultSettings returns the default engine settings.
func DefaultSettings() Settings {
	return Settings{
		AlphaCutoff:         1.0 / 510,
		DefaultStretchScale: 1,
		MaxRelayoutPasses:   4,
	}
}

// current holds the active settings; invalid values are clamped on
// every update, so readers need no checks.
var current = DefaultSettings()

// CurrentSettings returns the active engine settings.
func CurrentSettings() Settings { return current }

// ApplySettings makes the given settings active, sanitizing invalid
// values with a warning.
func ApplySettings(s Settings) {
	s.sanitize()
	current = s
	styles.SetDefaultScale(s.DefaultStretchScale)
}

// AlphaCutoff returns the active alpha cutoff.
func AlphaCutoff() float32 { return current.AlphaCutoff }

// MaxRelayoutPasses returns the active relayout pass cap.
func MaxRelayoutPasses() int { return current.MaxRelayoutPasses }

// sanitize clamps invalid fields to the nearest valid value, warning
// about each one.
func (s *Settings) sanitize() {
	def := DefaultSettings()
	if math32.IsNaN(s.AlphaCutoff) || s.AlphaCutoff < 0 || s.AlphaCutoff >= 1 {
		slog.Warn("scene.Settings: invalid alpha cutoff", "value", s.AlphaCutoff, "using", def.AlphaCutoff)
		s.AlphaCutoff = def.AlphaCutoff
	}
	if math32.IsNaN(s.DefaultStretchScale) || s.DefaultStretchScale <= 0 {
		slog.Warn("scene.Settings: invalid default stretch scale", "value", s.DefaultStretchScale, "using", def.DefaultStretchScale)
		s.DefaultStretchScale = def.DefaultStretchScale
	}
	if s.MaxRelayoutPasses < 1 {
		slog.Warn("scene.Settings: invalid relayout pass cap", "value", s.MaxRelayoutPasses, "using", def.MaxRelayoutPasses)
		s.MaxRelayoutPasses = def.MaxRelayoutPasses
	}
}

// OpenSettings loads settings from the given TOML file and makes them
// active. Missing fields keep their defaults.
func OpenSettings(filename string) error {
	b, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	s := DefaultSettings()
	if err := toml.Unmarshal(b, &s); err != nil {
		return err
	}
	ApplySettings(s)
	return nil
}

// SaveSettings writes the active settings to the given TOML file.
func SaveSettings(filename string) error {
	b, err := toml.Marshal(current)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0666)
}
