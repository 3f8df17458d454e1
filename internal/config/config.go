package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	StorageMemory = "memory"
	StorageFile   = "file"

	EnvPrefix = "SCRIPTEDIT"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds the editor settings.
type Config struct {
	Tracker TrackerConfig `mapstructure:"tracker" yaml:"tracker"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
}

type TrackerConfig struct {
	HistoryLimit          int     `mapstructure:"history_limit" yaml:"history_limit"`
	DebounceMS            int     `mapstructure:"debounce_ms" yaml:"debounce_ms"`
	SimilarityThreshold   float64 `mapstructure:"similarity_threshold" yaml:"similarity_threshold"`
	SymmetricSnapshotRedo bool    `mapstructure:"symmetric_snapshot_redo" yaml:"symmetric_snapshot_redo"`
}

// StorageConfig selects where the production-state blob lives. Path is only
// used by the file store.
type StorageConfig struct {
	Kind string `mapstructure:"kind" yaml:"kind"`
	Path string `mapstructure:"path" yaml:"path"`
}

func DefaultConfig() Config {
	return Config{
		Tracker: TrackerConfig{
			HistoryLimit:          50,
			DebounceMS:            500,
			SimilarityThreshold:   0.9,
			SymmetricSnapshotRedo: true,
		},
		Storage: StorageConfig{
			Kind: StorageMemory,
			Path: "scriptedit-state.json",
		},
	}
}

// Debounce is the debounce window as a duration.
func (c TrackerConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

func (c Config) Validate() error {
	if c.Tracker.HistoryLimit <= 0 {
		return fmt.Errorf("tracker.history_limit must be positive, got %d: %w", c.Tracker.HistoryLimit, ErrInvalidConfig)
	}
	if c.Tracker.DebounceMS < 0 {
		return fmt.Errorf("tracker.debounce_ms must not be negative, got %d: %w", c.Tracker.DebounceMS, ErrInvalidConfig)
	}
	if c.Tracker.SimilarityThreshold <= 0 || c.Tracker.SimilarityThreshold > 1 {
		return fmt.Errorf("tracker.similarity_threshold must be in (0, 1], got %v: %w", c.Tracker.SimilarityThreshold, ErrInvalidConfig)
	}
	switch c.Storage.Kind {
	case StorageMemory:
	case StorageFile:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for file storage: %w", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("unsupported storage.kind %q: %w", c.Storage.Kind, ErrInvalidConfig)
	}
	return nil
}
