package m_script

// Element ids and classes of the production page.
const (
	TitleID       = "productionTitle"
	TableBodyID   = "eventTableBody"
	RowIDPrefix   = "row-"
	RowElement    = "tr"
	EditableClass = "editable"

	ClassTitle          = "production-title"
	ClassEditableCell   = "editable-cell"
	ClassShotType       = "shot-type"
	ClassShotSubject    = "shot-subject"
	ClassCustomShotType = "custom-shot-type"
	ClassCameraNumber   = "camera-number"
	ClassCameraPosition = "camera-position"
	ClassDuration       = "duration"
)

// Session storage keys.
const (
	KeyProductionState = "productionState"
	KeyProjectName     = "projectName"
)
