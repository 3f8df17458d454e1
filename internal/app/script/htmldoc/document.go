// Package htmldoc is the production page as parsed HTML. It implements the
// tracker's document contract and the editor operations that replays drive.
package htmldoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/murkotick/production-script-editor/internal/app/script/contracts"
	"github.com/murkotick/production-script-editor/internal/app/script/domain"
	"github.com/murkotick/production-script-editor/internal/models/m_script"
)

// Errors returned when a page lacks a required part or a row is missing.
var (
	ErrMissingTitle = errors.New("page has no production title")
	ErrMissingTable = errors.New("page has no event table body")
	ErrRowNotFound  = errors.New("row not found")
)

const (
	attrViewMode    = "data-view-mode"
	attrCurrentView = "data-current-view"
	attrProject     = "data-project"

	// DefaultView is the view a page without a data-current-view opens in.
	DefaultView = "edit"
)

const blankPage = `<!DOCTYPE html>
<html><head><title>Production Script</title></head>
<body data-current-view="edit" data-view-mode="false">
<h1 id="productionTitle" class="production-title" contenteditable="true"></h1>
<table class="event-table"><tbody id="eventTableBody"></tbody></table>
</body></html>`

// Document is a parsed production page. It is not safe for concurrent use;
// the tracker serializes access.
type Document struct {
	root  *html.Node
	body  *html.Node
	title *html.Node
	tbody *html.Node
}

var _ contracts.Document = (*Document)(nil)

// Load parses a full production page.
func Load(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	d := &Document{root: root}
	d.body = findElement(root, func(n *html.Node) bool { return n.DataAtom == atom.Body })
	d.title = findByID(root, m_script.TitleID)
	if d.title == nil {
		return nil, ErrMissingTitle
	}
	d.tbody = findByID(root, m_script.TableBodyID)
	if d.tbody == nil {
		return nil, ErrMissingTable
	}
	return d, nil
}

// New returns an empty page with the given title and project.
func New(title, project string) *Document {
	d, err := Load(strings.NewReader(blankPage))
	if err != nil {
		panic(fmt.Sprintf("htmldoc: blank page: %v", err))
	}
	d.SetTitle(title)
	if project != "" {
		setAttr(d.body, attrProject, project)
	}
	return d
}

// Render writes the whole page.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// FindByID returns the tracked field with the given element id.
func (d *Document) FindByID(id string) (contracts.Field, bool) {
	if id == "" {
		return nil, false
	}
	n := findByID(d.root, id)
	if n == nil {
		return nil, false
	}
	ft, ok := fieldType(n)
	if !ok {
		return nil, false
	}
	return &Field{n: n, ft: ft}, true
}

// FindInRow returns the field of type ft inside the row with id rowID.
func (d *Document) FindInRow(rowID string, ft domain.FieldType) (contracts.Field, bool) {
	row := d.row(rowID)
	if row == nil {
		return nil, false
	}
	class := ft.Class()
	n := findElement(row, func(n *html.Node) bool { return hasClass(n, class) })
	if n == nil {
		return nil, false
	}
	if _, ok := attr(n, "id"); !ok {
		return nil, false
	}
	return &Field{n: n, ft: ft}, true
}

// Fields lists the title followed by every row field in document order.
func (d *Document) Fields() []contracts.Field {
	out := []contracts.Field{&Field{n: d.title, ft: domain.FieldTitle}}
	walk(d.tbody, func(n *html.Node) bool {
		if ft, ok := fieldType(n); ok {
			out = append(out, &Field{n: n, ft: ft})
		}
		return true
	})
	return out
}

// Title returns the text of the production title.
func (d *Document) Title() string {
	return textContent(d.title)
}

// SetTitle replaces the production title text.
func (d *Document) SetTitle(title string) {
	setTextContent(d.title, title)
}

// TableMarkup renders the children of the table body.
func (d *Document) TableMarkup() string {
	var buf bytes.Buffer
	for c := d.tbody.FirstChild; c != nil; c = c.NextSibling {
		// Render only fails on writer errors; bytes.Buffer never returns one.
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

// SetTableMarkup replaces the table body with markup parsed in a tbody
// context. On a parse error the table is left unchanged.
func (d *Document) SetTableMarkup(markup string) error {
	ctx := &html.Node{Type: html.ElementNode, Data: "tbody", DataAtom: atom.Tbody}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return fmt.Errorf("parse table markup: %w", err)
	}
	removeChildren(d.tbody)
	for _, n := range nodes {
		d.tbody.AppendChild(n)
	}
	return nil
}

// ViewMode reports whether the page is in read-only view mode.
func (d *Document) ViewMode() bool {
	v, _ := attr(d.body, attrViewMode)
	return v == "true"
}

// SetViewMode switches view mode on or off.
func (d *Document) SetViewMode(on bool) {
	if on {
		setAttr(d.body, attrViewMode, "true")
		return
	}
	setAttr(d.body, attrViewMode, "false")
}

// CurrentView returns the active view name, DefaultView when unset.
func (d *Document) CurrentView() string {
	if v, ok := attr(d.body, attrCurrentView); ok && v != "" {
		return v
	}
	return DefaultView
}

// SetCurrentView sets the active view name.
func (d *Document) SetCurrentView(name string) {
	setAttr(d.body, attrCurrentView, name)
}

// ProjectName returns the project the page belongs to.
func (d *Document) ProjectName() string {
	v, _ := attr(d.body, attrProject)
	return v
}

// SetFieldValue changes a field the way typing into it would. It does not
// notify anyone.
func (d *Document) SetFieldValue(id, value string) error {
	f, ok := d.FindByID(id)
	if !ok {
		return fmt.Errorf("set %q: %w", id, domain.ErrFieldNotFound)
	}
	f.SetValue(value)
	return nil
}
