package domain

import "time"

// HistoryEvent is a marker interface for facts about the undo history.
type HistoryEvent interface {
	EventType() string
	RecordID() string
	OccurredAt() time.Time
}

// RecordedEvent is raised when a user-driven change is pushed onto the undo stack.
type RecordedEvent struct {
	Record     ChangeRecord
	Evicted    ChangeRecord
	RecordedAt time.Time
}

func (e *RecordedEvent) EventType() string {
	return "history.recorded"
}

func (e *RecordedEvent) RecordID() string {
	return e.Record.RecordID()
}

func (e *RecordedEvent) OccurredAt() time.Time {
	return e.RecordedAt
}

// UndoneEvent is raised when a record is replayed backward.
type UndoneEvent struct {
	Record   ChangeRecord
	UndoneAt time.Time
}

func (e *UndoneEvent) EventType() string {
	return "history.undone"
}

func (e *UndoneEvent) RecordID() string {
	return e.Record.RecordID()
}

func (e *UndoneEvent) OccurredAt() time.Time {
	return e.UndoneAt
}

// RedoneEvent is raised when a record is replayed forward.
type RedoneEvent struct {
	Record   ChangeRecord
	RedoneAt time.Time
}

func (e *RedoneEvent) EventType() string {
	return "history.redone"
}

func (e *RedoneEvent) RecordID() string {
	return e.Record.RecordID()
}

func (e *RedoneEvent) OccurredAt() time.Time {
	return e.RedoneAt
}

// RestoreSkippedEvent is raised when a popped record could not be applied
// because its target no longer exists. The record is lost.
type RestoreSkippedEvent struct {
	Record    ChangeRecord
	Reason    error
	SkippedAt time.Time
}

func (e *RestoreSkippedEvent) EventType() string {
	return "history.restore_skipped"
}

func (e *RestoreSkippedEvent) RecordID() string {
	return e.Record.RecordID()
}

func (e *RestoreSkippedEvent) OccurredAt() time.Time {
	return e.SkippedAt
}

// HistoryClearedEvent is raised when both stacks are emptied.
type HistoryClearedEvent struct {
	ClearedAt time.Time
}

func (e *HistoryClearedEvent) EventType() string {
	return "history.cleared"
}

func (e *HistoryClearedEvent) RecordID() string {
	return ""
}

func (e *HistoryClearedEvent) OccurredAt() time.Time {
	return e.ClearedAt
}
