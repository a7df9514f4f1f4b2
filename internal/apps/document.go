package apps

import tea "github.com/charmbracelet/bubbletea"

// Document is a read-only scrolling text view.
type Document struct {
	text   string
	offset int
	page   int
}

func NewDocument(text string) *Document {
	return &Document{text: text}
}

func (d *Document) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		d.offset--
	case "down", "j":
		d.offset++
	case "pgup":
		d.offset -= max(d.page, 1)
	case "pgdown", " ":
		d.offset += max(d.page, 1)
	case "home", "g":
		d.offset = 0
	}
	d.offset = max(d.offset, 0)
	return nil
}

func (d *Document) Render(width, height int) []string {
	d.page = height
	out, offset := window(wrap(d.text, width), d.offset, height)
	d.offset = offset
	return out
}
