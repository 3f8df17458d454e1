package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scriptedit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, int64(500), cfg.Tracker.Debounce().Milliseconds())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
tracker:
  history_limit: 10
  debounce_ms: 250
  symmetric_snapshot_redo: false
storage:
  kind: file
  path: /tmp/scriptedit/state.json
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Tracker.HistoryLimit)
	assert.Equal(t, 250, cfg.Tracker.DebounceMS)
	assert.InDelta(t, 0.9, cfg.Tracker.SimilarityThreshold, 1e-9)
	assert.False(t, cfg.Tracker.SymmetricSnapshotRedo)
	assert.Equal(t, StorageFile, cfg.Storage.Kind)
	assert.Equal(t, "/tmp/scriptedit/state.json", cfg.Storage.Path)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "tracker:\n  history_limit: 10\n")
	t.Setenv("SCRIPTEDIT_TRACKER_HISTORY_LIMIT", "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Tracker.HistoryLimit)
}

func TestLoad_Rejects(t *testing.T) {
	cases := map[string]string{
		"limit":     "tracker:\n  history_limit: 0\n",
		"debounce":  "tracker:\n  debounce_ms: -1\n",
		"threshold": "tracker:\n  similarity_threshold: 1.5\n",
		"kind":      "storage:\n  kind: cloud\n",
		"path":      "storage:\n  kind: file\n  path: \"\"\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "tracker: [unterminated\n"))
	assert.Error(t, err)
}
