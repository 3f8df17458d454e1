package main

import (
	"context"

	"pkt.systems/pslog"

	"github.com/murkotick/production-script-editor/internal/app/script/contracts"
	"github.com/murkotick/production-script-editor/internal/app/script/storage"
	"github.com/murkotick/production-script-editor/internal/app/script/tracker"
	"github.com/murkotick/production-script-editor/internal/config"
	"github.com/murkotick/production-script-editor/internal/pkg/clock"
)

func newSessionStore(ctx context.Context, cfg config.StorageConfig) (contracts.SessionStore, error) {
	if cfg.Kind == config.StorageFile {
		return storage.NewFileStore(cfg.Path, clock.RealClock{}, pslog.Ctx(ctx))
	}
	return storage.NewMemoryStore(), nil
}

func trackerOptions(ctx context.Context, cfg config.TrackerConfig) []tracker.Option {
	return []tracker.Option{
		tracker.WithHistoryLimit(cfg.HistoryLimit),
		tracker.WithDebounce(cfg.Debounce()),
		tracker.WithSimilarityThreshold(cfg.SimilarityThreshold),
		tracker.WithSymmetricSnapshotRedo(cfg.SymmetricSnapshotRedo),
		tracker.WithAffordances(&loggedButtons{log: pslog.Ctx(ctx)}),
	}
}

// loggedButtons stands in for the toolbar: it logs availability changes.
type loggedButtons struct {
	log        pslog.Logger
	undo, redo bool
}

func (b *loggedButtons) SetUndoEnabled(enabled bool) {
	if enabled != b.undo {
		b.log.Debug("undo availability changed", "enabled", enabled)
	}
	b.undo = enabled
}

func (b *loggedButtons) SetRedoEnabled(enabled bool) {
	if enabled != b.redo {
		b.log.Debug("redo availability changed", "enabled", enabled)
	}
	b.redo = enabled
}
