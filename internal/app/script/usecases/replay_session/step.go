package replay_session

import (
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/murkotick/production-script-editor/internal/app/script/htmldoc"
)

// Actions a session step can perform.
const (
	ActionEdit       = "edit"
	ActionBlur       = "blur"
	ActionWait       = "wait"
	ActionAddRow     = "add_row"
	ActionRemoveRow  = "remove_row"
	ActionMoveRow    = "move_row"
	ActionSwitchView = "switch_view"
	ActionToggleMode = "toggle_mode"
	ActionUndo       = "undo"
	ActionRedo       = "redo"
	ActionFlush      = "flush"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrNoTarget      = errors.New("step needs a field or a row and column")
)

// Step is one user action in a recorded editing session.
//
// Fields are addressed by id, or by row id plus column (a field type such as
// "duration") when ids are not known up front.
type Step struct {
	Action string        `yaml:"action"`
	Field  string        `yaml:"field,omitempty"`
	Row    string        `yaml:"row,omitempty"`
	Column string        `yaml:"column,omitempty"`
	Value  string        `yaml:"value,omitempty"`
	Index  int           `yaml:"index,omitempty"`
	View   string        `yaml:"view,omitempty"`
	For    time.Duration `yaml:"for,omitempty"`
	Cells  htmldoc.Row   `yaml:"cells,omitempty"`
}

// Script is a recorded session as stored on disk.
type Script struct {
	Title   string `yaml:"title"`
	Project string `yaml:"project"`
	Steps   []Step `yaml:"steps"`
}

// ParseScript decodes a YAML session. Unknown keys are rejected.
func ParseScript(r io.Reader) (Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return s, nil
		}
		return Script{}, fmt.Errorf("decode session: %w", err)
	}
	for i, st := range s.Steps {
		if err := validateStep(st); err != nil {
			return Script{}, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return s, nil
}
