package domain

import "github.com/murkotick/production-script-editor/internal/models/m_script"

// ChangeKind tags a change notification with its semantic meaning.
type ChangeKind string

// Field kinds are continuous-input edits to a single addressable field.
const (
	KindTitle          ChangeKind = "title"
	KindEditableCell   ChangeKind = "editable_cell"
	KindShotType       ChangeKind = "shot_type"
	KindShotSubject    ChangeKind = "shot_subject"
	KindCustomShotType ChangeKind = "custom_shot_type"
	KindCameraNumber   ChangeKind = "camera_number"
	KindCameraPosition ChangeKind = "camera_position"
	KindDuration       ChangeKind = "duration"
)

// Structural kinds are discrete actions captured as full snapshots.
const (
	KindRowAdded   ChangeKind = "row_added"
	KindRowRemoved ChangeKind = "row_removed"
	KindRowMoved   ChangeKind = "row_moved"
	KindModeSwitch ChangeKind = "mode_switch"
	KindViewSwitch ChangeKind = "view_switch"
	KindBulkEdit   ChangeKind = "bulk_edit"
)

// FieldType identifies the class of an addressable field inside a row.
type FieldType string

const (
	FieldTitle          FieldType = "title"
	FieldEditableCell   FieldType = "editable_cell"
	FieldShotType       FieldType = "shot_type"
	FieldShotSubject    FieldType = "shot_subject"
	FieldCustomShotType FieldType = "custom_shot_type"
	FieldCameraNumber   FieldType = "camera_number"
	FieldCameraPosition FieldType = "camera_position"
	FieldDuration       FieldType = "duration"
)

type kindInfo struct {
	description string
	fieldType   FieldType
}

var kinds = map[ChangeKind]kindInfo{
	KindTitle:          {"Title Change", FieldTitle},
	KindEditableCell:   {"Cell Edit", FieldEditableCell},
	KindShotType:       {"Shot Type Change", FieldShotType},
	KindShotSubject:    {"Shot Subject Change", FieldShotSubject},
	KindCustomShotType: {"Custom Shot Type Change", FieldCustomShotType},
	KindCameraNumber:   {"Camera Number Change", FieldCameraNumber},
	KindCameraPosition: {"Camera Position Change", FieldCameraPosition},
	KindDuration:       {"Duration Change", FieldDuration},
	KindRowAdded:       {"Row Added", ""},
	KindRowRemoved:     {"Row Removed", ""},
	KindRowMoved:       {"Row Moved", ""},
	KindModeSwitch:     {"Mode Switch", ""},
	KindViewSwitch:     {"View Switch", ""},
	KindBulkEdit:       {"Bulk Edit", ""},
}

var fieldClasses = map[FieldType]string{
	FieldTitle:          m_script.ClassTitle,
	FieldEditableCell:   m_script.ClassEditableCell,
	FieldShotType:       m_script.ClassShotType,
	FieldShotSubject:    m_script.ClassShotSubject,
	FieldCustomShotType: m_script.ClassCustomShotType,
	FieldCameraNumber:   m_script.ClassCameraNumber,
	FieldCameraPosition: m_script.ClassCameraPosition,
	FieldDuration:       m_script.ClassDuration,
}

// Valid reports whether k is a known change kind.
func (k ChangeKind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

// Structural reports whether k is a discrete structural or mode action.
func (k ChangeKind) Structural() bool {
	info, ok := kinds[k]
	return ok && info.fieldType == ""
}

// Description returns the human label recorded with changes of this kind.
func (k ChangeKind) Description() string {
	if info, ok := kinds[k]; ok {
		return info.description
	}
	return string(k)
}

// FieldType returns the field type edited by a field kind, or "" for
// structural kinds.
func (k ChangeKind) FieldType() FieldType {
	return kinds[k].fieldType
}

// Class returns the CSS class that marks fields of this type within a row.
func (t FieldType) Class() string {
	return fieldClasses[t]
}

// FieldTypeForClass resolves a CSS class back to its field type.
func FieldTypeForClass(class string) (FieldType, bool) {
	for ft, c := range fieldClasses {
		if c == class {
			return ft, true
		}
	}
	return "", false
}

// Kind returns the field change kind that edits fields of this type.
func (t FieldType) Kind() (ChangeKind, bool) {
	for k, info := range kinds {
		if info.fieldType != "" && info.fieldType == t {
			return k, true
		}
	}
	return "", false
}
