package tracker

import (
	"context"
	"encoding/json"

	"github.com/murkotick/production-script-editor/internal/app/script/contracts"
	"github.com/murkotick/production-script-editor/internal/app/script/domain"
	"github.com/murkotick/production-script-editor/internal/models/m_script"
)

type direction int

const (
	backward direction = iota
	forward
)

func (d direction) String() string {
	if d == forward {
		return "redo"
	}
	return "undo"
}

// Undo reverts the most recent record. A pending field save is committed
// first so that it is what gets undone. With an empty undo stack Undo is a
// no-op.
func (t *Tracker) Undo(ctx context.Context) error {
	if t.current() == stateReplaying {
		return domain.ErrReplayInProgress
	}
	t.mu.Lock()
	defer t.unlock()

	if err := t.flushLocked(ctx); err != nil {
		t.log.Warn("pending save failed before undo", "err", err)
	}
	rec, ok := t.undo.Pop()
	if !ok {
		return nil
	}
	return t.replayLocked(ctx, rec, backward)
}

// Redo re-applies the most recently undone record. With an empty redo stack
// Redo is a no-op.
func (t *Tracker) Redo(ctx context.Context) error {
	if t.current() == stateReplaying {
		return domain.ErrReplayInProgress
	}
	t.mu.Lock()
	defer t.unlock()

	if err := t.flushLocked(ctx); err != nil {
		t.log.Warn("pending save failed before redo", "err", err)
	}
	rec, ok := t.redo.Pop()
	if !ok {
		return nil
	}
	return t.replayLocked(ctx, rec, forward)
}

// replayLocked applies rec to the document and pushes its inverse onto the
// opposite stack. Failures to locate targets are logged and the record is
// dropped.
func (t *Tracker) replayLocked(ctx context.Context, rec domain.ChangeRecord, dir direction) error {
	if !t.enter(stateReplaying) {
		return domain.ErrReplayInProgress
	}
	defer t.leave(stateReplaying)
	defer t.publishLocked()

	opposite := t.redo
	if dir == forward {
		opposite = t.undo
	}
	now := t.clk.Now()

	switch r := rec.(type) {
	case *domain.FieldChange:
		field, ok := t.locate(r)
		if !ok {
			t.log.Warn("restore target not found", "op", dir.String(), "field", r.FieldID, "row", r.RowID, "description", r.Description)
			t.events = append(t.events, &domain.RestoreSkippedEvent{Record: r, Reason: domain.ErrFieldNotFound, SkippedAt: now})
			return nil
		}
		current := field.Value()
		field.SetValue(r.OldValue)
		t.values.Set(field.ID(), r.OldValue)
		inverse := r.Inverse(current, now)
		inverse.FieldID = field.ID()
		opposite.Push(inverse)
		t.log.Debug("field restored", "op", dir.String(), "field", field.ID(), "value", r.OldValue)

	case *domain.FullSnapshot:
		if t.symmetric {
			opposite.Push(t.captureLocked(ctx).Relabel(r.Description, now))
		}
		t.restoreLocked(ctx, r)
		t.reloadValuesLocked()
		t.log.Debug("snapshot restored", "op", dir.String(), "description", r.Description)
	}

	t.baseline = t.captureLocked(ctx)
	if dir == forward {
		t.events = append(t.events, &domain.RedoneEvent{Record: rec, RedoneAt: now})
	} else {
		t.events = append(t.events, &domain.UndoneEvent{Record: rec, UndoneAt: now})
	}
	return nil
}

// locate finds the field a record targets: by id first, then by row and
// field type when the id went stale.
func (t *Tracker) locate(r *domain.FieldChange) (contracts.Field, bool) {
	if f, ok := t.doc.FindByID(r.FieldID); ok {
		return f, true
	}
	if r.RowID == "" || r.FieldType == "" {
		return nil, false
	}
	return t.doc.FindInRow(r.RowID, r.FieldType)
}

// restoreLocked overwrites everything a snapshot covers. Each part is
// applied independently; a failing part is logged and skipped.
func (t *Tracker) restoreLocked(ctx context.Context, s *domain.FullSnapshot) {
	t.doc.SetTitle(s.TitleText)
	if err := t.doc.SetTableMarkup(s.TableMarkup); err != nil {
		t.log.Warn("table markup restore failed", "err", err)
	}
	t.doc.SetViewMode(s.ViewMode)
	t.doc.SetCurrentView(s.CurrentView)

	if !s.HasProductionState {
		if err := t.store.Delete(ctx, m_script.KeyProductionState); err != nil {
			t.log.Warn("production state restore failed", "err", err)
		}
		return
	}
	if s.ProductionState != "" && !json.Valid([]byte(s.ProductionState)) {
		t.log.Warn("production state left untouched", "err", domain.ErrMalformedState)
		return
	}
	if err := t.store.Set(ctx, m_script.KeyProductionState, s.ProductionState); err != nil {
		t.log.Warn("production state restore failed", "err", err)
	}
}
