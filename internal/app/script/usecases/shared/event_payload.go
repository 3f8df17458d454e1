package shared

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/murkotick/production-script-editor/internal/app/script/domain"
	"github.com/murkotick/production-script-editor/internal/app/script/dto"
)

// MarshalHistoryEventPayload converts a history event into a JSON payload.
// Records are reduced to id, description and kind; snapshots never carry
// their markup.
func MarshalHistoryEventPayload(ev domain.HistoryEvent) (string, error) {
	if ev == nil {
		return "{}", nil
	}

	var payload map[string]interface{}
	switch e := ev.(type) {
	case *domain.RecordedEvent:
		payload = map[string]interface{}{
			"record":      recordPayload(e.Record),
			"recorded_at": e.RecordedAt,
		}
		if e.Evicted != nil {
			payload["evicted"] = recordPayload(e.Evicted)
		}

	case *domain.UndoneEvent:
		payload = map[string]interface{}{
			"record":    recordPayload(e.Record),
			"undone_at": e.UndoneAt,
		}

	case *domain.RedoneEvent:
		payload = map[string]interface{}{
			"record":    recordPayload(e.Record),
			"redone_at": e.RedoneAt,
		}

	case *domain.RestoreSkippedEvent:
		reason := ""
		if e.Reason != nil {
			reason = e.Reason.Error()
		}
		payload = map[string]interface{}{
			"record":     recordPayload(e.Record),
			"reason":     reason,
			"skipped_at": e.SkippedAt,
		}

	case *domain.HistoryClearedEvent:
		payload = map[string]interface{}{
			"cleared_at": e.ClearedAt,
		}

	default:
		b, err := json.Marshal(ev)
		if err != nil {
			return "", fmt.Errorf("marshal payload for %T: %w", ev, err)
		}
		return string(b), nil
	}

	payload["event_type"] = ev.EventType()
	b, err := json.Marshal(payload)
	return string(b), err
}

func recordPayload(rec domain.ChangeRecord) map[string]interface{} {
	out := map[string]interface{}{
		"id":          rec.RecordID(),
		"description": rec.Describe(),
	}
	switch r := rec.(type) {
	case *domain.FieldChange:
		out["kind"] = "field"
		out["field_id"] = r.FieldID
		out["row_id"] = r.RowID
		out["old_value"] = r.OldValue
		out["new_value"] = r.NewValue
	case *domain.FullSnapshot:
		out["kind"] = "snapshot"
		out["title"] = r.TitleText
		out["current_view"] = r.CurrentView
		out["view_mode"] = r.ViewMode
	}
	return out
}

// ToEventDTOs maps history events to their printable form.
func ToEventDTOs(events []domain.HistoryEvent) ([]dto.EventDTO, error) {
	out := make([]dto.EventDTO, 0, len(events))
	for _, ev := range events {
		payload, err := MarshalHistoryEventPayload(ev)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.EventDTO{
			Type:       ev.EventType(),
			RecordID:   ev.RecordID(),
			OccurredAt: ev.OccurredAt().UTC().Format(time.RFC3339Nano),
			Payload:    payload,
		})
	}
	return out, nil
}
