package htmldoc

import (
	"golang.org/x/net/html"

	"github.com/murkotick/production-script-editor/internal/app/script/domain"
	"github.com/murkotick/production-script-editor/internal/models/m_script"
)

// Field is an input, select or content-editable element of the page.
type Field struct {
	n  *html.Node
	ft domain.FieldType
}

// fieldType reports whether n is a tracked field and of which type.
func fieldType(n *html.Node) (domain.FieldType, bool) {
	if n.Type != html.ElementNode {
		return "", false
	}
	id, _ := attr(n, "id")
	if id == "" {
		return "", false
	}
	if id == m_script.TitleID {
		return domain.FieldTitle, true
	}
	for _, c := range classes(n) {
		if ft, ok := domain.FieldTypeForClass(c); ok {
			return ft, true
		}
	}
	return "", false
}

// ID returns the element id.
func (f *Field) ID() string {
	id, _ := attr(f.n, "id")
	return id
}

// RowID is the id of the closest row ancestor.
func (f *Field) RowID() string {
	row := closest(f.n, m_script.RowElement)
	if row == nil {
		return ""
	}
	id, _ := attr(row, "id")
	return id
}

// Type returns the field type derived from the element class.
func (f *Field) Type() domain.FieldType {
	return f.ft
}

// Value reads value for inputs, the selected option for selects and the
// text content for everything else.
func (f *Field) Value() string {
	switch {
	case isElement(f.n, "input"):
		v, _ := attr(f.n, "value")
		return v
	case isElement(f.n, "select"):
		opt := selectedOption(f.n)
		if opt == nil {
			return ""
		}
		return optionValue(opt)
	default:
		return textContent(f.n)
	}
}

// SetValue writes value the same way Value reads it.
func (f *Field) SetValue(value string) {
	switch {
	case isElement(f.n, "input"):
		setAttr(f.n, "value", value)
	case isElement(f.n, "select"):
		selectOption(f.n, value)
	default:
		setTextContent(f.n, value)
	}
}

func options(sel *html.Node) []*html.Node {
	var out []*html.Node
	walk(sel, func(n *html.Node) bool {
		if isElement(n, "option") {
			out = append(out, n)
		}
		return true
	})
	return out
}

func selectedOption(sel *html.Node) *html.Node {
	opts := options(sel)
	for _, o := range opts {
		if _, ok := attr(o, "selected"); ok {
			return o
		}
	}
	if len(opts) > 0 {
		return opts[0]
	}
	return nil
}

func optionValue(opt *html.Node) string {
	if v, ok := attr(opt, "value"); ok {
		return v
	}
	return textContent(opt)
}

// selectOption marks the option with the given value selected, appending
// one when the value is not offered (custom shot types).
func selectOption(sel *html.Node, value string) {
	var match *html.Node
	for _, o := range options(sel) {
		removeAttr(o, "selected")
		if match == nil && optionValue(o) == value {
			match = o
		}
	}
	if match == nil {
		match = &html.Node{Type: html.ElementNode, Data: "option", Attr: []html.Attribute{{Key: "value", Val: value}}}
		match.AppendChild(&html.Node{Type: html.TextNode, Data: value})
		sel.AppendChild(match)
	}
	setAttr(match, "selected", "")
}
