package config

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from path, layered over the defaults. An empty
// path or a missing file yields the defaults. SCRIPTEDIT_* environment
// variables override both, e.g. SCRIPTEDIT_TRACKER_HISTORY_LIMIT.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("tracker.history_limit", cfg.Tracker.HistoryLimit)
	v.SetDefault("tracker.debounce_ms", cfg.Tracker.DebounceMS)
	v.SetDefault("tracker.similarity_threshold", cfg.Tracker.SimilarityThreshold)
	v.SetDefault("tracker.symmetric_snapshot_redo", cfg.Tracker.SymmetricSnapshotRedo)
	v.SetDefault("storage.kind", cfg.Storage.Kind)
	v.SetDefault("storage.path", cfg.Storage.Path)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return Config{}, err
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Storage.Path = os.ExpandEnv(cfg.Storage.Path)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
