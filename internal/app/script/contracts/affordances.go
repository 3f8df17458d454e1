package contracts

// Affordances reflects history availability in the UI (undo/redo buttons).
type Affordances interface {
	SetUndoEnabled(enabled bool)
	SetRedoEnabled(enabled bool)
}
