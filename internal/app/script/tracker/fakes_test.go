package tracker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/murkotick/production-script-editor/internal/app/script/contracts"
	"github.com/murkotick/production-script-editor/internal/app/script/domain"
	"github.com/murkotick/production-script-editor/internal/models/m_script"
)

// fakeDoc is an in-memory production page. Its "markup" is the JSON
// encoding of its rows, which is all the tracker needs to round-trip.
type fakeDoc struct {
	title    string
	rows     []fakeRow
	viewMode bool
	view     string
	project  string

	// gen is part of every field id; bumping it simulates a re-render that
	// regenerates ids.
	gen int

	onSet func(fieldID, value string)
}

type fakeRow struct {
	ID    string                      `json:"id"`
	Cells map[domain.FieldType]string `json:"cells"`
}

type fakeField struct {
	doc   *fakeDoc
	rowID string
	ft    domain.FieldType
	id    string
}

func newFakeDoc(title string, rowIDs ...string) *fakeDoc {
	d := &fakeDoc{title: title, view: "edit", project: "Pilot"}
	for _, id := range rowIDs {
		d.addRow(id)
	}
	return d
}

func (d *fakeDoc) addRow(id string) {
	d.rows = append(d.rows, fakeRow{ID: id, Cells: map[domain.FieldType]string{
		domain.FieldShotType:     "",
		domain.FieldShotSubject:  "",
		domain.FieldCameraNumber: "",
		domain.FieldDuration:     "",
	}})
}

func (d *fakeDoc) removeRow(id string) {
	for i, r := range d.rows {
		if r.ID == id {
			d.rows = append(d.rows[:i], d.rows[i+1:]...)
			return
		}
	}
}

func (d *fakeDoc) fieldID(rowID string, ft domain.FieldType) string {
	return fmt.Sprintf("%s-%s-g%d", ft, rowID, d.gen)
}

func (d *fakeDoc) row(id string) (*fakeRow, bool) {
	for i := range d.rows {
		if d.rows[i].ID == id {
			return &d.rows[i], true
		}
	}
	return nil, false
}

// set changes a field the way a user typing would, without notifying.
func (d *fakeDoc) set(fieldID, value string) {
	f, ok := d.FindByID(fieldID)
	if !ok {
		panic("fakeDoc: no field " + fieldID)
	}
	f.SetValue(value)
}

func (d *fakeDoc) get(fieldID string) string {
	f, ok := d.FindByID(fieldID)
	if !ok {
		return "<missing>"
	}
	return f.Value()
}

func (d *fakeDoc) FindByID(id string) (contracts.Field, bool) {
	for _, f := range d.Fields() {
		if f.ID() == id {
			return f, true
		}
	}
	return nil, false
}

func (d *fakeDoc) FindInRow(rowID string, ft domain.FieldType) (contracts.Field, bool) {
	r, ok := d.row(rowID)
	if !ok {
		return nil, false
	}
	if _, ok := r.Cells[ft]; !ok {
		return nil, false
	}
	return &fakeField{doc: d, rowID: rowID, ft: ft, id: d.fieldID(rowID, ft)}, true
}

func (d *fakeDoc) Fields() []contracts.Field {
	out := []contracts.Field{&fakeField{doc: d, ft: domain.FieldTitle, id: m_script.TitleID}}
	for _, r := range d.rows {
		for _, ft := range []domain.FieldType{domain.FieldShotType, domain.FieldShotSubject, domain.FieldCameraNumber, domain.FieldDuration} {
			if _, ok := r.Cells[ft]; ok {
				out = append(out, &fakeField{doc: d, rowID: r.ID, ft: ft, id: d.fieldID(r.ID, ft)})
			}
		}
	}
	return out
}

func (d *fakeDoc) Title() string         { return d.title }
func (d *fakeDoc) SetTitle(title string) { d.title = title }

func (d *fakeDoc) TableMarkup() string {
	data, err := json.Marshal(d.rows)
	if err != nil {
		panic(err)
	}
	return string(data)
}

func (d *fakeDoc) SetTableMarkup(markup string) error {
	var rows []fakeRow
	if err := json.Unmarshal([]byte(markup), &rows); err != nil {
		return err
	}
	d.rows = rows
	return nil
}

func (d *fakeDoc) ViewMode() bool             { return d.viewMode }
func (d *fakeDoc) SetViewMode(on bool)        { d.viewMode = on }
func (d *fakeDoc) CurrentView() string        { return d.view }
func (d *fakeDoc) SetCurrentView(name string) { d.view = name }
func (d *fakeDoc) ProjectName() string        { return d.project }

func (f *fakeField) ID() string             { return f.id }
func (f *fakeField) RowID() string          { return f.rowID }
func (f *fakeField) Type() domain.FieldType { return f.ft }

func (f *fakeField) Value() string {
	if f.ft == domain.FieldTitle {
		return f.doc.title
	}
	r, ok := f.doc.row(f.rowID)
	if !ok {
		return ""
	}
	return r.Cells[f.ft]
}

func (f *fakeField) SetValue(value string) {
	if f.ft == domain.FieldTitle {
		f.doc.title = value
	} else if r, ok := f.doc.row(f.rowID); ok {
		r.Cells[f.ft] = value
	}
	if f.doc.onSet != nil {
		f.doc.onSet(f.id, value)
	}
}

// fakeButtons records the last undo/redo availability pushed to the UI.
type fakeButtons struct {
	undo, redo bool
	calls      int
}

func (b *fakeButtons) SetUndoEnabled(enabled bool) { b.undo = enabled; b.calls++ }
func (b *fakeButtons) SetRedoEnabled(enabled bool) { b.redo = enabled }

type logCapture struct {
	buf bytes.Buffer
}

func (c *logCapture) Write(p []byte) (int, error) {
	return c.buf.Write(p)
}

// entries parses every structured log line written so far.
func (c *logCapture) entries(t *testing.T) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range bytes.Split(c.buf.Bytes(), []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		entry := map[string]any{}
		if err := json.Unmarshal(line, &entry); err != nil {
			t.Fatalf("parse log entry: %v", err)
		}
		out = append(out, entry)
	}
	return out
}
