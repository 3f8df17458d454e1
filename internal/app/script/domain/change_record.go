package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChangeRecord is a reversible entry on the undo or redo stack.
// It is implemented only by *FieldChange and *FullSnapshot.
type ChangeRecord interface {
	RecordID() string
	RecordedAt() time.Time
	Describe() string
	isChangeRecord()
}

// FieldChange is a reversible edit to one addressable field.
type FieldChange struct {
	ID          string
	Timestamp   time.Time
	Description string
	RowID       string
	FieldID     string
	FieldType   FieldType
	OldValue    string
	NewValue    string
	// Selector is the lookup hint used when FieldID no longer resolves.
	Selector string
}

// NewFieldChange creates a FieldChange with a fresh id.
func NewFieldChange(kind ChangeKind, rowID, fieldID, oldValue, newValue string, now time.Time) (*FieldChange, error) {
	if fieldID == "" {
		return nil, ErrEmptyFieldID
	}
	if kind.Structural() || !kind.Valid() {
		return nil, ErrUnknownChangeKind
	}
	ft := kind.FieldType()
	return &FieldChange{
		ID:          uuid.New().String(),
		Timestamp:   now,
		Description: kind.Description(),
		RowID:       rowID,
		FieldID:     fieldID,
		FieldType:   ft,
		OldValue:    oldValue,
		NewValue:    newValue,
		Selector:    "." + ft.Class(),
	}, nil
}

func (c *FieldChange) RecordID() string      { return c.ID }
func (c *FieldChange) RecordedAt() time.Time { return c.Timestamp }
func (c *FieldChange) Describe() string      { return c.Description }
func (c *FieldChange) isChangeRecord()       {}

// Inverse returns the record pushed onto the opposite stack after c is
// replayed: the field went from current back to c.OldValue.
func (c *FieldChange) Inverse(current string, now time.Time) *FieldChange {
	inv := *c
	inv.ID = uuid.New().String()
	inv.Timestamp = now
	inv.OldValue = current
	inv.NewValue = c.OldValue
	return &inv
}

// FullSnapshot is a checkpoint of the whole editable document and its
// serialized session state.
type FullSnapshot struct {
	ID              string
	Timestamp       time.Time
	Description     string
	TitleText       string
	TableMarkup     string
	ViewMode        bool
	CurrentView     string
	ProductionState string

	// HasProductionState is false when no blob was stored at capture time;
	// restoring such a snapshot deletes the stored blob.
	HasProductionState bool
	ProjectName        string
}

// Relabel returns a copy of s with a fresh id, timestamp and description.
func (s *FullSnapshot) Relabel(description string, now time.Time) *FullSnapshot {
	out := *s
	out.ID = uuid.New().String()
	out.Timestamp = now
	out.Description = description
	return &out
}

func (s *FullSnapshot) RecordID() string      { return s.ID }
func (s *FullSnapshot) RecordedAt() time.Time { return s.Timestamp }
func (s *FullSnapshot) Describe() string      { return s.Description }
func (s *FullSnapshot) isChangeRecord()       {}
