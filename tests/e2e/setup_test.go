package e2e

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/murkotick/production-script-editor/internal/app/script/htmldoc"
	"github.com/murkotick/production-script-editor/internal/app/script/storage"
	"github.com/murkotick/production-script-editor/internal/app/script/tracker"
	"github.com/murkotick/production-script-editor/internal/models/m_script"
	"github.com/murkotick/production-script-editor/internal/pkg/clock"
)

const page = `<!DOCTYPE html>
<html><body data-project="Evening News" data-current-view="edit" data-view-mode="false">
<h1 id="productionTitle" class="production-title" contenteditable="true">Evening News</h1>
<table><tbody id="eventTableBody">
<tr id="row-1">
<td id="event-1" class="editable editable-cell" contenteditable="true">Opening</td>
<td><select id="shotType-1" class="shot-type"><option value="WS" selected>WS</option><option value="CU">CU</option></select></td>
<td><input id="duration-1" class="duration" value="00:30"/></td>
</tr>
</tbody></table>
</body></html>`

type editor struct {
	doc       *htmldoc.Document
	store     *storage.FileStore
	storePath string
	tr        *tracker.Tracker
	clk       *clock.FakeClock
}

func newEditor(t *testing.T, state string) *editor {
	t.Helper()
	ctx := context.Background()
	clk := clock.NewFake(time.Now().UTC().Truncate(time.Second))

	path := filepath.Join(t.TempDir(), "store.json")
	store, err := storage.NewFileStore(path, clk, nil)
	require.NoError(t, err)
	if state != "" {
		require.NoError(t, store.Set(ctx, m_script.KeyProductionState, state))
	}

	doc, err := htmldoc.Load(strings.NewReader(page))
	require.NoError(t, err)

	tr, err := tracker.New(ctx, doc, store, tracker.WithClock(clk))
	require.NoError(t, err)
	return &editor{doc: doc, store: store, storePath: path, tr: tr, clk: clk}
}

// typeInto sets a field and raises the input notification the page would.
func (e *editor) typeInto(t *testing.T, fieldID, value string) {
	t.Helper()
	f, ok := e.doc.FindByID(fieldID)
	require.True(t, ok, fieldID)
	f.SetValue(value)
	kind, ok := f.Type().Kind()
	require.True(t, ok)
	require.NoError(t, e.tr.Notify(context.Background(), tracker.Notification{
		Kind:    kind,
		Target:  tracker.Target{FieldID: fieldID},
		Trigger: tracker.TriggerInput,
	}))
}

func (e *editor) value(t *testing.T, fieldID string) string {
	t.Helper()
	f, ok := e.doc.FindByID(fieldID)
	require.True(t, ok, fieldID)
	return f.Value()
}

func (e *editor) state(t *testing.T) string {
	t.Helper()
	v, _, err := e.store.Get(context.Background(), m_script.KeyProductionState)
	require.NoError(t, err)
	return v
}
