package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/calebmills/inkwell/internal/engine/buffer"
	"github.com/calebmills/inkwell/internal/engine/history"
)

// Settings is the root of the configuration file.
type Settings struct {
	History HistorySettings `toml:"history"`
}

// HistorySettings controls the undo log.
type HistorySettings struct {
	// MaxEntries bounds the undo stack. Oldest entries are evicted
	// once the bound is reached.
	MaxEntries int `toml:"max_entries"`

	Coalesce CoalesceSettings `toml:"coalesce"`
}

// CoalesceSettings controls merging of contiguous typing into a
// single undo unit.
type CoalesceSettings struct {
	Enabled bool `toml:"enabled"`

	// IntervalMS is the longest pause, in milliseconds, between two
	// keystrokes that still extends the current run.
	IntervalMS int `toml:"interval_ms"`

	// MaxRun caps a run's length in grapheme clusters.
	MaxRun int `toml:"max_run"`
}

// Default returns the settings used when no file is present.
func Default() Settings {
	cc := history.DefaultCoalesceConfig()
	return Settings{
		History: HistorySettings{
			MaxEntries: history.DefaultMaxEntries,
			Coalesce: CoalesceSettings{
				Enabled:    cc.Enabled,
				IntervalMS: int(cc.Interval / time.Millisecond),
				MaxRun:     cc.MaxRun,
			},
		},
	}
}

// Load reads settings from path. A missing file yields Default; a
// present file is overlaid onto Default, so partial files work.
func Load(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := s.Validate(); err != nil {
		return Default(), fmt.Errorf("config file %s: %w", path, err)
	}
	return s, nil
}

// Validate rejects values the engine cannot honor.
func (s Settings) Validate() error {
	if s.History.MaxEntries < 1 {
		return fmt.Errorf("history.max_entries must be positive, got %d", s.History.MaxEntries)
	}
	if s.History.Coalesce.IntervalMS < 0 {
		return fmt.Errorf("history.coalesce.interval_ms must not be negative, got %d", s.History.Coalesce.IntervalMS)
	}
	if s.History.Coalesce.MaxRun < 1 {
		return fmt.Errorf("history.coalesce.max_run must be positive, got %d", s.History.Coalesce.MaxRun)
	}
	return nil
}

// CoalesceConfig converts the TOML shape to the engine's.
func (s Settings) CoalesceConfig() history.CoalesceConfig {
	return history.CoalesceConfig{
		Enabled:  s.History.Coalesce.Enabled,
		Interval: time.Duration(s.History.Coalesce.IntervalMS) * time.Millisecond,
		MaxRun:   s.History.Coalesce.MaxRun,
	}
}

// BufferOptions expresses the settings as buffer construction options.
func (s Settings) BufferOptions() []buffer.Option {
	return []buffer.Option{
		buffer.WithMaxHistory(s.History.MaxEntries),
		buffer.WithCoalescing(s.CoalesceConfig()),
	}
}
