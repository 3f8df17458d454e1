package tracker

import (
	"context"
	"fmt"

	"github.com/murkotick/production-script-editor/internal/app/script/domain"
)

// recordFactory builds the record for one change kind. A nil record with a
// nil error means there is nothing to record.
type recordFactory func(t *Tracker, kind domain.ChangeKind, target Target, value string) (domain.ChangeRecord, error)

func defaultFactories() map[domain.ChangeKind]recordFactory {
	return map[domain.ChangeKind]recordFactory{
		domain.KindTitle:          fieldChangeFactory,
		domain.KindEditableCell:   fieldChangeFactory,
		domain.KindShotType:       fieldChangeFactory,
		domain.KindShotSubject:    fieldChangeFactory,
		domain.KindCustomShotType: fieldChangeFactory,
		domain.KindCameraNumber:   fieldChangeFactory,
		domain.KindCameraPosition: fieldChangeFactory,
		domain.KindDuration:       fieldChangeFactory,
		domain.KindRowAdded:       snapshotFactory,
		domain.KindRowRemoved:     snapshotFactory,
		domain.KindRowMoved:       snapshotFactory,
		domain.KindModeSwitch:     snapshotFactory,
		domain.KindViewSwitch:     snapshotFactory,
		domain.KindBulkEdit:       snapshotFactory,
	}
}

func fieldChangeFactory(t *Tracker, kind domain.ChangeKind, target Target, value string) (domain.ChangeRecord, error) {
	old, _ := t.values.Get(target.FieldID)
	t.values.Set(target.FieldID, value)
	if old == value {
		return nil, nil
	}
	return domain.NewFieldChange(kind, target.RowID, target.FieldID, old, value, t.clk.Now())
}

// snapshotFactory records the page as it was before the structural action.
func snapshotFactory(t *Tracker, kind domain.ChangeKind, _ Target, _ string) (domain.ChangeRecord, error) {
	return t.baseline.Relabel(kind.Description(), t.clk.Now()), nil
}

// RecordChange records a change of the given kind right away, bypassing the
// debounce window. For field kinds the field's current value is recorded and
// a pending save for the same field is superseded.
func (t *Tracker) RecordChange(ctx context.Context, kind domain.ChangeKind, target Target) error {
	if t.current() == stateReplaying {
		t.log.Debug("record dropped during replay", "kind", kind, "field", target.FieldID)
		return nil
	}
	if !kind.Valid() {
		return fmt.Errorf("record %q: %w", kind, domain.ErrUnknownChangeKind)
	}

	t.mu.Lock()
	defer t.unlock()

	if kind.Structural() {
		return t.recordLocked(ctx, kind, target, "")
	}
	if target.FieldID == "" {
		return fmt.Errorf("record %q: %w", kind, domain.ErrEmptyFieldID)
	}
	field, ok := t.doc.FindByID(target.FieldID)
	if !ok {
		return fmt.Errorf("record %q: %w", target.FieldID, domain.ErrFieldNotFound)
	}
	if target.RowID == "" {
		target.RowID = field.RowID()
	}
	if t.pending != nil && t.pending.target.FieldID == target.FieldID {
		t.cancelPendingLocked()
	}
	return t.recordLocked(ctx, kind, target, field.Value())
}

func (t *Tracker) recordLocked(ctx context.Context, kind domain.ChangeKind, target Target, value string) error {
	factory, ok := t.factories[kind]
	if !ok {
		return fmt.Errorf("record %q: %w", kind, domain.ErrUnknownChangeKind)
	}
	if !t.enter(stateRecording) {
		return domain.ErrReplayInProgress
	}
	defer t.leave(stateRecording)

	rec, err := factory(t, kind, target, value)
	if err != nil {
		return fmt.Errorf("record %q: %w", kind, err)
	}
	if kind.Structural() {
		t.seedValuesLocked()
		t.baseline = t.captureLocked(ctx)
	}
	if rec == nil {
		return nil
	}
	t.pushLocked(ctx, rec)
	return nil
}

// pushLocked pushes a user-driven record unless it duplicates the top of the
// undo stack. A push always invalidates the redo stack.
func (t *Tracker) pushLocked(ctx context.Context, rec domain.ChangeRecord) {
	log := t.log
	if top, ok := t.undo.Peek(); ok && domain.Similar(top, rec, t.threshold) {
		log.Debug("similar change dropped", "description", rec.Describe())
		return
	}
	evicted := t.undo.Push(rec)
	t.redo.Clear()
	if evicted != nil {
		log.Debug("oldest change evicted", "id", evicted.RecordID(), "description", evicted.Describe())
	}
	if fc, ok := rec.(*domain.FieldChange); ok {
		// Keep the baseline current so a later snapshot holds this edit.
		t.baseline = t.captureLocked(ctx)
		log.Debug("field change recorded", "field", fc.FieldID, "old", fc.OldValue, "new", fc.NewValue)
	} else {
		log.Debug("snapshot recorded", "description", rec.Describe())
	}
	t.events = append(t.events, &domain.RecordedEvent{Record: rec, Evicted: evicted, RecordedAt: t.clk.Now()})
	t.publishLocked()
}
