package dto

// RecordDTO is a printable view of one change record.
// Field-only and snapshot-only attributes are left empty for the other variant.
type RecordDTO struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"` // "field" or "snapshot"
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"` // RFC3339Nano

	FieldID  string `json:"field_id,omitempty"`
	RowID    string `json:"row_id,omitempty"`
	OldValue string `json:"old_value,omitempty"`
	NewValue string `json:"new_value,omitempty"`

	Title       string `json:"title,omitempty"`
	CurrentView string `json:"current_view,omitempty"`
	ViewMode    bool   `json:"view_mode,omitempty"`
	MarkupBytes int    `json:"markup_bytes,omitempty"`
}

// HistoryDTO lists both stacks, oldest first.
type HistoryDTO struct {
	Undo    []RecordDTO `json:"undo"`
	Redo    []RecordDTO `json:"redo"`
	CanUndo bool        `json:"can_undo"`
	CanRedo bool        `json:"can_redo"`
	Limit   int         `json:"limit"`
}

// EventDTO is a history event with its JSON payload.
type EventDTO struct {
	Type       string `json:"type"`
	RecordID   string `json:"record_id,omitempty"`
	OccurredAt string `json:"occurred_at"`
	Payload    string `json:"payload"`
}

// SessionDTO is the outcome of replaying an editing session.
type SessionDTO struct {
	Title       string     `json:"title"`
	CurrentView string     `json:"current_view"`
	ViewMode    bool       `json:"view_mode"`
	Rows        []string   `json:"rows"`
	TableMarkup string     `json:"table_markup"`
	Page        string     `json:"page,omitempty"`
	Steps       int        `json:"steps"`
	History     HistoryDTO `json:"history"`
	Events      []EventDTO `json:"events"`
}
