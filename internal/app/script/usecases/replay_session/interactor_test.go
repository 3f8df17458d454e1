package replay_session

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/production-script-editor/internal/app/script/storage"
	"github.com/murkotick/production-script-editor/internal/pkg/clock"
)

var t0 = time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

func run(t *testing.T, src string, req Request) (Request, *Interactor) {
	t.Helper()
	s, err := ParseScript(strings.NewReader(src))
	require.NoError(t, err)
	req.Script = s
	return req, NewInteractor(storage.NewMemoryStore(), clock.NewFake(t0))
}

const fieldSession = `
title: Evening News
project: News
steps:
  - action: add_row
    cells: {event: Opening, duration: "00:30"}
  - action: add_row
    cells: {event: Weather, duration: "01:00"}
  - {action: edit, row: row-1, column: duration, value: "00:3"}
  - {action: edit, row: row-1, column: duration, value: "00:45"}
  - {action: wait, for: 600ms}
  - {action: edit, field: productionTitle, value: Late News}
  - {action: blur, field: productionTitle}
  - action: undo
  - action: undo
`

func TestExecute_FieldEditsUndone(t *testing.T) {
	req, it := run(t, fieldSession, Request{RenderPage: true})

	out, err := it.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 9, out.Steps)
	assert.Equal(t, "Evening News", out.Title)
	assert.Equal(t, []string{"row-1", "row-2"}, out.Rows)
	assert.Contains(t, out.TableMarkup, `id="duration-1" class="duration" value="00:30"`)
	assert.Contains(t, out.Page, `data-project="News"`)

	require.Len(t, out.History.Undo, 2)
	require.Len(t, out.History.Redo, 2)
	assert.Equal(t, "Row Added", out.History.Undo[1].Description)
	// Redo holds the inverses: the title edit was undone first.
	assert.Equal(t, "Late News", out.History.Redo[0].OldValue)
	assert.Equal(t, "00:45", out.History.Redo[1].OldValue)

	types := map[string]int{}
	for _, ev := range out.Events {
		types[ev.Type]++
		assert.NotEmpty(t, ev.Payload)
	}
	assert.Equal(t, 4, types["history.recorded"])
	assert.Equal(t, 2, types["history.undone"])
}

const structuralSession = `
title: Morning Show
steps:
  - {action: add_row, cells: {event: Opening}}
  - {action: add_row, cells: {event: Weather}}
  - action: toggle_mode
  - action: undo
  - action: redo
  - {action: move_row, row: row-2, index: 0}
  - action: undo
`

func TestExecute_StructuralUndoRedo(t *testing.T) {
	req, it := run(t, structuralSession, Request{})

	out, err := it.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, []string{"row-1", "row-2"}, out.Rows)
	assert.True(t, out.ViewMode)
	assert.Len(t, out.History.Undo, 3)
	assert.Len(t, out.History.Redo, 1)
	assert.Equal(t, "Row Moved", out.History.Redo[0].Description)
	assert.Empty(t, out.Page)
}

func TestExecute_PendingEditNeedsWaitOrFlush(t *testing.T) {
	src := `
title: Draft
steps:
  - {action: edit, field: productionTitle, value: Final}
`
	req, it := run(t, src, Request{})
	out, err := it.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Final", out.Title)
	assert.Empty(t, out.History.Undo)

	req, it = run(t, src+"  - action: flush\n", Request{})
	out, err = it.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, out.History.Undo, 1)
	assert.Equal(t, "Draft", out.History.Undo[0].OldValue)
}

func TestExecute_LoadsPage(t *testing.T) {
	page := `<html><body><h1 id="productionTitle">Loaded</h1>
<table><tbody id="eventTableBody"><tr id="row-7"><td><input id="cameraNum-7" class="camera-number" value="2"/></td></tr></tbody></table>
</body></html>`
	src := `
steps:
  - {action: edit, field: cameraNum-7, value: "3"}
  - {action: blur, field: cameraNum-7}
  - action: add_row
`
	req, it := run(t, src, Request{Page: strings.NewReader(page)})
	out, err := it.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "Loaded", out.Title)
	assert.Equal(t, []string{"row-7", "row-8"}, out.Rows)
	require.Len(t, out.History.Undo, 2)
	assert.Equal(t, "cameraNum-7", out.History.Undo[0].FieldID)
	assert.Equal(t, "row-7", out.History.Undo[0].RowID)
}

func TestExecute_StepErrors(t *testing.T) {
	cases := map[string]string{
		"missing field": "steps:\n  - {action: edit, field: nope, value: x}\n",
		"missing row":   "steps:\n  - {action: remove_row, row: row-3}\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			req, it := run(t, src, Request{})
			_, err := it.Execute(context.Background(), req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "step 1")
		})
	}
}

func TestParseScript(t *testing.T) {
	s, err := ParseScript(strings.NewReader("title: T\nsteps:\n  - {action: wait, for: 1.5s}\n"))
	require.NoError(t, err)
	require.Len(t, s.Steps, 1)
	assert.Equal(t, 1500*time.Millisecond, s.Steps[0].For)

	_, err = ParseScript(strings.NewReader("steps:\n  - {action: dance}\n"))
	assert.ErrorIs(t, err, ErrUnknownAction)

	_, err = ParseScript(strings.NewReader("steps:\n  - {action: undo, bogus: 1}\n"))
	assert.Error(t, err)

	_, err = ParseScript(strings.NewReader("steps:\n  - action: undo\n  - {action: blur}\n"))
	assert.ErrorIs(t, err, ErrNoTarget)
	assert.ErrorContains(t, err, "step 2")

	_, err = ParseScript(strings.NewReader("steps:\n  - {action: move_row, index: 1}\n"))
	assert.ErrorIs(t, err, ErrInvalidStep)

	_, err = ParseScript(strings.NewReader("steps:\n  - {action: wait}\n"))
	assert.ErrorIs(t, err, ErrInvalidStep)

	s, err = ParseScript(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, s.Steps)
}
