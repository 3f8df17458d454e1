package tracker

import (
	"context"
	"fmt"

	"github.com/murkotick/production-script-editor/internal/app/script/domain"
	"github.com/murkotick/production-script-editor/internal/pkg/clock"
)

// Trigger is the document event behind a notification.
type Trigger int

const (
	// TriggerInput is a keystroke or selection change; it is debounced.
	TriggerInput Trigger = iota
	// TriggerBlur is a field losing focus; it commits the field immediately.
	TriggerBlur
	// TriggerAction is a discrete click such as adding a row.
	TriggerAction
)

// Target addresses what a notification is about. Structural kinds leave
// FieldID empty.
type Target struct {
	FieldID string
	RowID   string
}

// Notification tells the tracker that the document changed.
type Notification struct {
	Kind    domain.ChangeKind
	Target  Target
	Trigger Trigger
}

// pendingSave is the single debounced field save waiting for its quiet period.
type pendingSave struct {
	kind   domain.ChangeKind
	target Target
	value  string
	timer  clock.Timer
}

// Notify reports a document change. Field kinds are coalesced per field over
// the debounce window; structural kinds are recorded at once and leave any
// pending field save alone. Notifications raised while a replay is running
// are dropped.
func (t *Tracker) Notify(ctx context.Context, n Notification) error {
	if t.current() == stateReplaying {
		t.log.Debug("notification dropped during replay", "kind", n.Kind, "field", n.Target.FieldID)
		return nil
	}
	if !n.Kind.Valid() {
		return fmt.Errorf("notify %q: %w", n.Kind, domain.ErrUnknownChangeKind)
	}

	t.mu.Lock()
	defer t.unlock()

	if n.Kind.Structural() {
		return t.recordLocked(ctx, n.Kind, n.Target, "")
	}

	if n.Target.FieldID == "" {
		return fmt.Errorf("notify %q: %w", n.Kind, domain.ErrEmptyFieldID)
	}
	field, ok := t.doc.FindByID(n.Target.FieldID)
	if !ok {
		return fmt.Errorf("notify %q: %w", n.Target.FieldID, domain.ErrFieldNotFound)
	}
	target := n.Target
	if target.RowID == "" {
		target.RowID = field.RowID()
	}

	// Only one save may be pending; a different field flushes the old one.
	if t.pending != nil && t.pending.target.FieldID != target.FieldID {
		if err := t.flushLocked(ctx); err != nil {
			t.log.Warn("pending save failed", "err", err)
		}
	}
	t.cancelPendingLocked()

	p := &pendingSave{kind: n.Kind, target: target, value: field.Value()}
	t.pending = p
	if n.Trigger == TriggerBlur || t.debounce == 0 {
		return t.flushLocked(ctx)
	}
	p.timer = t.clk.AfterFunc(t.debounce, func() { t.fire(p) })
	return nil
}

// Flush commits the pending debounced save, if any. It is a no-op while a
// replay is running.
func (t *Tracker) Flush(ctx context.Context) error {
	if t.current() == stateReplaying {
		return nil
	}
	t.mu.Lock()
	defer t.unlock()
	return t.flushLocked(ctx)
}

// fire runs when a debounce window closes without a newer notification.
func (t *Tracker) fire(p *pendingSave) {
	t.mu.Lock()
	defer t.unlock()
	if t.pending != p {
		return
	}
	if err := t.flushLocked(t.bg); err != nil {
		t.log.Warn("debounced save failed", "field", p.target.FieldID, "err", err)
	}
}

func (t *Tracker) flushLocked(ctx context.Context) error {
	p := t.pending
	if p == nil {
		return nil
	}
	t.cancelPendingLocked()
	return t.recordLocked(ctx, p.kind, p.target, p.value)
}

func (t *Tracker) cancelPendingLocked() {
	if t.pending == nil {
		return
	}
	if t.pending.timer != nil {
		t.pending.timer.Stop()
	}
	t.pending = nil
}
