package htmldoc

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/murkotick/production-script-editor/internal/models/m_script"
)

// ShotTypes are the options every new row offers.
var ShotTypes = []string{"WS", "MS", "CU", "ECU", "OTS", "Custom"}

// Row holds the initial cell values of a new row.
type Row struct {
	Event          string `yaml:"event"`
	ShotType       string `yaml:"shot_type"`
	ShotSubject    string `yaml:"shot_subject"`
	CustomShotType string `yaml:"custom_shot_type"`
	CameraNumber   string `yaml:"camera_number"`
	CameraPosition string `yaml:"camera_position"`
	Duration       string `yaml:"duration"`
}

// Rows lists the row ids in table order.
func (d *Document) Rows() []string {
	var ids []string
	for c := d.tbody.FirstChild; c != nil; c = c.NextSibling {
		if isElement(c, m_script.RowElement) {
			if id, ok := attr(c, "id"); ok {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

func (d *Document) row(id string) *html.Node {
	for c := d.tbody.FirstChild; c != nil; c = c.NextSibling {
		if !isElement(c, m_script.RowElement) {
			continue
		}
		if v, _ := attr(c, "id"); v == id {
			return c
		}
	}
	return nil
}

// nextRowNumber is one past the highest row-N suffix in the table.
func (d *Document) nextRowNumber() int {
	highest := 0
	for _, id := range d.Rows() {
		n, err := strconv.Atoi(strings.TrimPrefix(id, m_script.RowIDPrefix))
		if err == nil && n > highest {
			highest = n
		}
	}
	return highest + 1
}

// AddRow appends a row built from r and returns its id.
func (d *Document) AddRow(r Row) (string, error) {
	n := d.nextRowNumber()
	ctx := &html.Node{Type: html.ElementNode, Data: "tbody", DataAtom: atom.Tbody}
	nodes, err := html.ParseFragment(strings.NewReader(rowMarkup(n, r)), ctx)
	if err != nil {
		return "", fmt.Errorf("build row: %w", err)
	}
	shotType := r.ShotType
	if shotType == "" {
		shotType = ShotTypes[0]
	}
	for _, node := range nodes {
		if isElement(node, m_script.RowElement) {
			if sel := findElement(node, func(e *html.Node) bool { return hasClass(e, m_script.ClassShotType) }); sel != nil {
				selectOption(sel, shotType)
			}
		}
		d.tbody.AppendChild(node)
	}
	return m_script.RowIDPrefix + strconv.Itoa(n), nil
}

// RemoveRow deletes a row.
func (d *Document) RemoveRow(id string) error {
	row := d.row(id)
	if row == nil {
		return fmt.Errorf("remove %q: %w", id, ErrRowNotFound)
	}
	d.tbody.RemoveChild(row)
	return nil
}

// MoveRow moves a row to index among the rows, clamped to the table bounds.
func (d *Document) MoveRow(id string, index int) error {
	row := d.row(id)
	if row == nil {
		return fmt.Errorf("move %q: %w", id, ErrRowNotFound)
	}
	d.tbody.RemoveChild(row)
	ids := d.Rows()
	if index < 0 {
		index = 0
	}
	if index >= len(ids) {
		d.tbody.AppendChild(row)
		return nil
	}
	d.tbody.InsertBefore(row, d.row(ids[index]))
	return nil
}

func rowMarkup(n int, r Row) string {
	esc := html.EscapeString
	var b strings.Builder
	fmt.Fprintf(&b, `<tr id="%s%d">`, m_script.RowIDPrefix, n)
	fmt.Fprintf(&b, `<td id="event-%d" class="%s %s" contenteditable="true">%s</td>`,
		n, m_script.EditableClass, m_script.ClassEditableCell, esc(r.Event))

	fmt.Fprintf(&b, `<td><select id="shotType-%d" class="%s">`, n, m_script.ClassShotType)
	for _, st := range ShotTypes {
		fmt.Fprintf(&b, `<option value="%s">%s</option>`, esc(st), esc(st))
	}
	b.WriteString(`</select></td>`)

	inputs := []struct {
		prefix, class, value string
	}{
		{"shotSubject", m_script.ClassShotSubject, r.ShotSubject},
		{"customShotType", m_script.ClassCustomShotType, r.CustomShotType},
		{"cameraNum", m_script.ClassCameraNumber, r.CameraNumber},
		{"cameraPos", m_script.ClassCameraPosition, r.CameraPosition},
		{"duration", m_script.ClassDuration, r.Duration},
	}
	for _, in := range inputs {
		fmt.Fprintf(&b, `<td><input id="%s-%d" class="%s" value="%s"/></td>`, in.prefix, n, in.class, esc(in.value))
	}
	b.WriteString(`</tr>`)
	return b.String()
}
