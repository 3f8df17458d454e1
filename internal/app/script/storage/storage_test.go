package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/production-script-editor/internal/models/m_script"
	"github.com/murkotick/production-script-editor/internal/pkg/clock"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, ok, err := s.Get(ctx, m_script.KeyProductionState)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, m_script.KeyProductionState, `{"events":[]}`))
	v, ok, err := s.Get(ctx, m_script.KeyProductionState)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"events":[]}`, v)

	require.NoError(t, s.Delete(ctx, m_script.KeyProductionState))
	_, ok, _ = s.Get(ctx, m_script.KeyProductionState)
	assert.False(t, ok)
}

// TestFileStore_PersistsAcrossInstances verifies a second store on the same
// path sees values written by the first.
func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "session.json")
	clk := clock.NewFake(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))

	first, err := NewFileStore(path, clk, nil)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, m_script.KeyProjectName, "Pilot"))
	require.NoError(t, first.Set(ctx, m_script.KeyProductionState, `{"title":"Pilot"}`))

	second, err := NewFileStore(path, clk, nil)
	require.NoError(t, err)
	v, ok, err := second.Get(ctx, m_script.KeyProjectName)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Pilot", v)

	require.NoError(t, second.Delete(ctx, m_script.KeyProjectName))
	_, ok, err = first.Get(ctx, m_script.KeyProjectName)
	require.NoError(t, err)
	assert.False(t, ok)

	matches, err := filepath.Glob(path + ".tmp-*")
	require.NoError(t, err)
	assert.Empty(t, matches, "temp files are renamed or removed")
}

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "none.json"), nil, nil)
	require.NoError(t, err)

	_, ok, err := s.Get(context.Background(), "anything")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_RejectsNewerVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":99,"entries":{}}`), 0o600))

	s, err := NewFileStore(path, nil, nil)
	require.NoError(t, err)

	_, _, err = s.Get(context.Background(), "k")
	require.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestNewFileStore_RequiresPath(t *testing.T) {
	_, err := NewFileStore("  ", nil, nil)
	require.Error(t, err)
}
