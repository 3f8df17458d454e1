// Package tracker records reversible changes to a production page and
// replays them for undo and redo.
//
// Field edits are debounced per field and stored as field deltas; structural
// actions (rows added, removed or moved, mode and view switches) are stored
// as full snapshots of the page taken just before the action. Both kinds
// live on one bounded undo stack and one redo stack.
package tracker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"pkt.systems/pslog"

	"github.com/murkotick/production-script-editor/internal/app/script/contracts"
	"github.com/murkotick/production-script-editor/internal/app/script/domain"
	"github.com/murkotick/production-script-editor/internal/models/m_script"
	"github.com/murkotick/production-script-editor/internal/pkg/clock"
)

// Tracker owns the undo/redo stacks and the previous-value cache. It reads
// and writes the document and session store but does not own them.
type Tracker struct {
	mu    sync.Mutex
	state atomic.Int32

	// canUndo and canRedo mirror the stacks so they can be read without mu.
	canUndo atomic.Bool
	canRedo atomic.Bool
	// uiDirty marks availability changes not yet pushed to ui; guarded by mu.
	uiDirty bool
	// uiMu serializes affordance callbacks, which run without mu.
	uiMu sync.Mutex

	doc   contracts.Document
	store contracts.SessionStore
	ui    contracts.Affordances
	clk   clock.Clock
	log   pslog.Logger

	limit     int
	debounce  time.Duration
	threshold float64
	symmetric bool

	undo     *domain.RecordStack
	redo     *domain.RecordStack
	values   *domain.ValueCache
	baseline *domain.FullSnapshot
	pending  *pendingSave
	events   []domain.HistoryEvent

	factories map[domain.ChangeKind]recordFactory

	// bg is the context handed to debounce callbacks.
	bg context.Context
}

// New creates a Tracker bound to doc and store, seeding the previous-value
// cache and the baseline snapshot from the current document.
func New(ctx context.Context, doc contracts.Document, store contracts.SessionStore, opts ...Option) (*Tracker, error) {
	if doc == nil {
		return nil, fmt.Errorf("tracker: document is nil")
	}
	if store == nil {
		return nil, fmt.Errorf("tracker: session store is nil")
	}

	t := &Tracker{
		doc:       doc,
		store:     store,
		clk:       clock.RealClock{},
		log:       pslog.Ctx(ctx),
		limit:     domain.DefaultHistoryLimit,
		debounce:  DefaultDebounce,
		threshold: domain.DefaultSimilarityThreshold,
		symmetric: true,
		values:    domain.NewValueCache(),
		bg:        context.WithoutCancel(ctx),
	}
	for _, opt := range opts {
		opt(t)
	}

	var err error
	if t.undo, err = domain.NewRecordStack(t.limit); err != nil {
		return nil, fmt.Errorf("tracker: undo stack: %w", err)
	}
	if t.redo, err = domain.NewRecordStack(t.limit); err != nil {
		return nil, fmt.Errorf("tracker: redo stack: %w", err)
	}
	t.factories = defaultFactories()

	t.mu.Lock()
	defer t.unlock()
	t.seedValuesLocked()
	t.baseline = t.captureLocked(ctx)
	t.publishLocked()
	t.log.Debug("tracker ready", "fields", t.values.Len(), "limit", t.limit, "debounce", t.debounce)
	return t, nil
}

// CanUndo reports whether the undo stack has records. It never blocks, so
// affordance callbacks may call it.
func (t *Tracker) CanUndo() bool {
	return t.canUndo.Load()
}

// CanRedo reports whether the redo stack has records. It never blocks.
func (t *Tracker) CanRedo() bool {
	return t.canRedo.Load()
}

// Reset clears both stacks, drops any pending save and reseeds the cache and
// baseline from the document. Use it after a different script is loaded.
func (t *Tracker) Reset(ctx context.Context) {
	t.mu.Lock()
	defer t.unlock()

	t.cancelPendingLocked()
	t.undo.Clear()
	t.redo.Clear()
	t.values.Reset()
	t.seedValuesLocked()
	t.baseline = t.captureLocked(ctx)
	t.events = append(t.events, &domain.HistoryClearedEvent{ClearedAt: t.clk.Now()})
	t.publishLocked()
	t.log.Info("history cleared")
}

// PullEvents returns the history events raised since the last call.
func (t *Tracker) PullEvents() []domain.HistoryEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := t.events
	t.events = nil
	return out
}

// seedValuesLocked records the current value of every field not yet cached
// and forgets fields that left the document.
func (t *Tracker) seedValuesLocked() {
	live := make(map[string]struct{})
	for _, f := range t.doc.Fields() {
		live[f.ID()] = struct{}{}
		t.values.Seed(f.ID(), f.Value())
	}
	t.values.Retain(func(fieldID string) bool {
		_, ok := live[fieldID]
		return ok
	})
}

// reloadValuesLocked overwrites the cache with the document's values.
func (t *Tracker) reloadValuesLocked() {
	t.values.Reset()
	t.seedValuesLocked()
}

// captureLocked snapshots the document and the production state blob.
func (t *Tracker) captureLocked(ctx context.Context) *domain.FullSnapshot {
	blob, present, err := t.store.Get(ctx, m_script.KeyProductionState)
	if err != nil {
		t.log.Warn("production state read failed", "err", err)
		blob, present = "", false
	}
	return &domain.FullSnapshot{
		Timestamp:          t.clk.Now(),
		TitleText:          t.doc.Title(),
		TableMarkup:        t.doc.TableMarkup(),
		ViewMode:           t.doc.ViewMode(),
		CurrentView:        t.doc.CurrentView(),
		ProductionState:    blob,
		HasProductionState: present,
		ProjectName:        t.projectNameLocked(ctx),
	}
}

// projectNameLocked prefers the stored project name over the page's.
func (t *Tracker) projectNameLocked(ctx context.Context) string {
	name, ok, err := t.store.Get(ctx, m_script.KeyProjectName)
	if err != nil {
		t.log.Warn("project name read failed", "err", err)
	}
	if err == nil && ok && name != "" {
		return name
	}
	return t.doc.ProjectName()
}

// publishLocked records stack availability. The UI is told in unlock.
func (t *Tracker) publishLocked() {
	t.canUndo.Store(t.undo.Len() > 0)
	t.canRedo.Store(t.redo.Len() > 0)
	t.uiDirty = true
}

// unlock releases mu and then pushes pending availability changes to the UI,
// so affordance callbacks may call back into the tracker.
func (t *Tracker) unlock() {
	dirty := t.uiDirty
	t.uiDirty = false
	t.mu.Unlock()
	if !dirty || t.ui == nil {
		return
	}
	t.uiMu.Lock()
	defer t.uiMu.Unlock()
	t.ui.SetUndoEnabled(t.canUndo.Load())
	t.ui.SetRedoEnabled(t.canRedo.Load())
}
