package replay_session

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"pkt.systems/pslog"

	"github.com/murkotick/production-script-editor/internal/app/script/contracts"
	"github.com/murkotick/production-script-editor/internal/app/script/domain"
	"github.com/murkotick/production-script-editor/internal/app/script/dto"
	"github.com/murkotick/production-script-editor/internal/app/script/htmldoc"
	"github.com/murkotick/production-script-editor/internal/app/script/tracker"
	shared "github.com/murkotick/production-script-editor/internal/app/script/usecases/shared"
	"github.com/murkotick/production-script-editor/internal/pkg/clock"
)

// Request for replaying an editing session
type Request struct {
	// Page is the production page to edit. A blank page titled after the
	// script is used when nil.
	Page   io.Reader
	Script Script
	// RenderPage includes the final page markup in the result.
	RenderPage bool
}

type Interactor struct {
	Store   contracts.SessionStore
	Clock   clock.Clock
	Options []tracker.Option
}

func NewInteractor(store contracts.SessionStore, clk clock.Clock, opts ...tracker.Option) *Interactor {
	return &Interactor{
		Store:   store,
		Clock:   clk,
		Options: opts,
	}
}

// session is the state of one replay run.
type session struct {
	doc *htmldoc.Document
	tr  *tracker.Tracker
	clk *clock.FakeClock
	log pslog.Logger
}

// Execute replays the script step by step on a simulated clock starting at
// the interactor's current time. Debounce windows only elapse on wait steps.
func (it *Interactor) Execute(ctx context.Context, req Request) (dto.SessionDTO, error) {
	log := pslog.Ctx(ctx)

	// 1. Load the page
	doc, err := it.loadPage(req)
	if err != nil {
		return dto.SessionDTO{}, err
	}

	// 2. Bind a tracker on a simulated clock
	fake := clock.NewFake(it.Clock.Now())
	opts := append([]tracker.Option{tracker.WithLogger(log)}, it.Options...)
	opts = append(opts, tracker.WithClock(fake))
	tr, err := tracker.New(ctx, doc, it.Store, opts...)
	if err != nil {
		return dto.SessionDTO{}, err
	}
	s := &session{doc: doc, tr: tr, clk: fake, log: log}

	// 3. Apply steps
	var events []domain.HistoryEvent
	for i, step := range req.Script.Steps {
		if err := s.apply(ctx, step); err != nil {
			return dto.SessionDTO{}, fmt.Errorf("step %d (%s): %w", i+1, step.Action, err)
		}
		events = append(events, tr.PullEvents()...)
	}

	// 4. Build result
	evs, err := shared.ToEventDTOs(events)
	if err != nil {
		return dto.SessionDTO{}, err
	}
	out := dto.SessionDTO{
		Title:       doc.Title(),
		CurrentView: doc.CurrentView(),
		ViewMode:    doc.ViewMode(),
		Rows:        doc.Rows(),
		TableMarkup: doc.TableMarkup(),
		Steps:       len(req.Script.Steps),
		History:     tr.History(),
		Events:      evs,
	}
	if req.RenderPage {
		var buf bytes.Buffer
		if err := doc.Render(&buf); err != nil {
			return dto.SessionDTO{}, fmt.Errorf("render page: %w", err)
		}
		out.Page = buf.String()
	}
	log.Info("session replayed", "steps", out.Steps, "undo", len(out.History.Undo), "redo", len(out.History.Redo))
	return out, nil
}

func (it *Interactor) loadPage(req Request) (*htmldoc.Document, error) {
	if req.Page == nil {
		return htmldoc.New(req.Script.Title, req.Script.Project), nil
	}
	return htmldoc.Load(req.Page)
}

func (s *session) apply(ctx context.Context, step Step) error {
	switch step.Action {
	case ActionEdit:
		f, err := s.resolve(step)
		if err != nil {
			return err
		}
		f.SetValue(step.Value)
		return s.notifyField(ctx, f, tracker.TriggerInput)

	case ActionBlur:
		f, err := s.resolve(step)
		if err != nil {
			return err
		}
		return s.notifyField(ctx, f, tracker.TriggerBlur)

	case ActionWait:
		s.clk.Advance(step.For)
		return nil

	case ActionAddRow:
		id, err := s.doc.AddRow(step.Cells)
		if err != nil {
			return err
		}
		s.log.Debug("row added", "row", id)
		return s.notifyAction(ctx, domain.KindRowAdded)

	case ActionRemoveRow:
		if err := s.doc.RemoveRow(step.Row); err != nil {
			return err
		}
		return s.notifyAction(ctx, domain.KindRowRemoved)

	case ActionMoveRow:
		if err := s.doc.MoveRow(step.Row, step.Index); err != nil {
			return err
		}
		return s.notifyAction(ctx, domain.KindRowMoved)

	case ActionSwitchView:
		s.doc.SetCurrentView(step.View)
		return s.notifyAction(ctx, domain.KindViewSwitch)

	case ActionToggleMode:
		s.doc.SetViewMode(!s.doc.ViewMode())
		return s.notifyAction(ctx, domain.KindModeSwitch)

	case ActionUndo:
		return s.tr.Undo(ctx)

	case ActionRedo:
		return s.tr.Redo(ctx)

	case ActionFlush:
		return s.tr.Flush(ctx)
	}
	return fmt.Errorf("%q: %w", step.Action, ErrUnknownAction)
}

// resolve finds the field a step addresses.
func (s *session) resolve(step Step) (contracts.Field, error) {
	switch {
	case step.Field != "":
		f, ok := s.doc.FindByID(step.Field)
		if !ok {
			return nil, fmt.Errorf("field %q: %w", step.Field, domain.ErrFieldNotFound)
		}
		return f, nil
	case step.Row != "" && step.Column != "":
		f, ok := s.doc.FindInRow(step.Row, domain.FieldType(step.Column))
		if !ok {
			return nil, fmt.Errorf("field %s/%s: %w", step.Row, step.Column, domain.ErrFieldNotFound)
		}
		return f, nil
	}
	return nil, ErrNoTarget
}

func (s *session) notifyField(ctx context.Context, f contracts.Field, trigger tracker.Trigger) error {
	kind, ok := f.Type().Kind()
	if !ok {
		return fmt.Errorf("field %q: %w", f.ID(), domain.ErrUnknownChangeKind)
	}
	return s.tr.Notify(ctx, tracker.Notification{
		Kind:    kind,
		Target:  tracker.Target{FieldID: f.ID(), RowID: f.RowID()},
		Trigger: trigger,
	})
}

func (s *session) notifyAction(ctx context.Context, kind domain.ChangeKind) error {
	return s.tr.Notify(ctx, tracker.Notification{Kind: kind, Trigger: tracker.TriggerAction})
}
