package replay_session

import (
	"errors"
	"fmt"
)

var ErrInvalidStep = errors.New("invalid step")

func validateStep(step Step) error {
	switch step.Action {
	case ActionEdit, ActionBlur:
		if step.Field == "" && (step.Row == "" || step.Column == "") {
			return ErrNoTarget
		}
	case ActionWait:
		if step.For <= 0 {
			return fmt.Errorf("wait: for must be positive: %w", ErrInvalidStep)
		}
	case ActionRemoveRow, ActionMoveRow:
		if step.Row == "" {
			return fmt.Errorf("%s: row is required: %w", step.Action, ErrInvalidStep)
		}
		if step.Index < 0 {
			return fmt.Errorf("%s: index must not be negative: %w", step.Action, ErrInvalidStep)
		}
	case ActionSwitchView:
		if step.View == "" {
			return fmt.Errorf("switch_view: view is required: %w", ErrInvalidStep)
		}
	case ActionAddRow, ActionToggleMode, ActionUndo, ActionRedo, ActionFlush:
	default:
		return fmt.Errorf("%q: %w", step.Action, ErrUnknownAction)
	}
	return nil
}
