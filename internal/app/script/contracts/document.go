package contracts

import "github.com/murkotick/production-script-editor/internal/app/script/domain"

// Document is the live production page the tracker observes and restores.
// The tracker reads and writes it but does not own it; other code paths
// mutate it freely.
type Document interface {
	// FindByID returns the field addressed by id.
	FindByID(id string) (Field, bool)
	// FindInRow returns the field of the given type inside the row.
	FindInRow(rowID string, ft domain.FieldType) (Field, bool)
	// Fields returns every tracked field currently in the document.
	Fields() []Field

	Title() string
	SetTitle(title string)

	// TableMarkup returns the event table body markup.
	TableMarkup() string
	// SetTableMarkup replaces the event table body wholesale.
	SetTableMarkup(markup string) error

	ViewMode() bool
	SetViewMode(on bool)

	CurrentView() string
	SetCurrentView(name string)

	ProjectName() string
}

// Field is a single addressable input, select or content-editable cell.
type Field interface {
	ID() string
	// RowID is the id of the closest row ancestor ("" for the title).
	RowID() string
	Type() domain.FieldType
	Value() string
	SetValue(value string)
}
