package tracker

import (
	"time"

	"github.com/murkotick/production-script-editor/internal/app/script/domain"
	"github.com/murkotick/production-script-editor/internal/app/script/dto"
)

// History returns a printable view of both stacks, oldest first.
func (t *Tracker) History() dto.HistoryDTO {
	t.mu.Lock()
	defer t.mu.Unlock()

	return dto.HistoryDTO{
		Undo:    toRecordDTOs(t.undo.Records()),
		Redo:    toRecordDTOs(t.redo.Records()),
		CanUndo: t.undo.Len() > 0,
		CanRedo: t.redo.Len() > 0,
		Limit:   t.undo.Limit(),
	}
}

func toRecordDTOs(records []domain.ChangeRecord) []dto.RecordDTO {
	out := make([]dto.RecordDTO, 0, len(records))
	for _, rec := range records {
		out = append(out, ToRecordDTO(rec))
	}
	return out
}

// ToRecordDTO maps a change record to its printable form.
func ToRecordDTO(rec domain.ChangeRecord) dto.RecordDTO {
	out := dto.RecordDTO{
		ID:          rec.RecordID(),
		Description: rec.Describe(),
		Timestamp:   rec.RecordedAt().Format(time.RFC3339Nano),
	}
	switch r := rec.(type) {
	case *domain.FieldChange:
		out.Kind = "field"
		out.FieldID = r.FieldID
		out.RowID = r.RowID
		out.OldValue = r.OldValue
		out.NewValue = r.NewValue
	case *domain.FullSnapshot:
		out.Kind = "snapshot"
		out.Title = r.TitleText
		out.CurrentView = r.CurrentView
		out.ViewMode = r.ViewMode
		out.MarkupBytes = len(r.TableMarkup)
	}
	return out
}
