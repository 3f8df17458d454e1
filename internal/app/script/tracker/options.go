package tracker

import (
	"time"

	"pkt.systems/pslog"

	"github.com/murkotick/production-script-editor/internal/app/script/contracts"
	"github.com/murkotick/production-script-editor/internal/pkg/clock"
)

// DefaultDebounce is the quiet period after which a burst of field input
// collapses into one recorded change.
const DefaultDebounce = 500 * time.Millisecond

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock sets the clock used for timestamps and debounce timers.
func WithClock(clk clock.Clock) Option {
	return func(t *Tracker) {
		if clk != nil {
			t.clk = clk
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger pslog.Logger) Option {
	return func(t *Tracker) {
		if logger != nil {
			t.log = logger
		}
	}
}

// WithAffordances connects the undo/redo buttons.
func WithAffordances(ui contracts.Affordances) Option {
	return func(t *Tracker) {
		t.ui = ui
	}
}

// WithHistoryLimit bounds the undo and redo stacks.
func WithHistoryLimit(limit int) Option {
	return func(t *Tracker) {
		t.limit = limit
	}
}

// WithDebounce sets the debounce window for field input.
func WithDebounce(d time.Duration) Option {
	return func(t *Tracker) {
		if d >= 0 {
			t.debounce = d
		}
	}
}

// WithSimilarityThreshold sets the markup similarity above which two
// consecutive snapshots are considered duplicates.
func WithSimilarityThreshold(threshold float64) Option {
	return func(t *Tracker) {
		if threshold > 0 && threshold <= 1 {
			t.threshold = threshold
		}
	}
}

// WithSymmetricSnapshotRedo controls whether undoing a snapshot pushes the
// replaced state onto the redo stack. When false, snapshots cannot be redone.
func WithSymmetricSnapshotRedo(enabled bool) Option {
	return func(t *Tracker) {
		t.symmetric = enabled
	}
}
