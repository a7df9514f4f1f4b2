package apps

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/1broseidon/deskos/internal/registry"
)

// Note is one entry of the Notes app.
type Note struct {
	ID    string
	Title string
	Body  string
	Date  string
}

// Export formats accepted by Notes.Export.
const (
	FormatText     = "txt"
	FormatMarkdown = "md"
)

const noteDateLayout = "January 2006"

var spaces = regexp.MustCompile(`\s+`)

func initialNotes() []Note {
	return []Note{
		{
			ID:    "1",
			Title: "About FOSal",
			Date:  "Dec 2025",
			Body:  "FOSal (Frontend OS Abstraction Layer) is a desktop environment designed to showcase my skills as a software engineer. It's a living workspace built with systems-level thinking.",
		},
		{
			ID:    "2",
			Title: "Career Goals",
			Date:  "Dec 2025",
			Body: "1. Grow as an efficient and skilled software developer.\n" +
				"2. Build robust automation tools.\n" +
				"3. Build scalable and useful applications.\n" +
				"4. Contribute to open source.\n" +
				"5. Create robust developer tools.\n" +
				"6. Solve real-world problems.",
		},
		{
			ID:    "3",
			Title: "Technical Stack",
			Date:  "June 2024",
			Body: "Core: Java, Spring Boot, Python, React, TypeScript.\n" +
				"Specialties: Full-stack development, systems programming, computer vision, AI/ML.",
		},
	}
}

type notesMode int

const (
	notesBrowse notesMode = iota
	notesEditTitle
	notesEditBody
)

// Notes is a small note-taking app. Notes live in memory for the lifetime of
// the window; export writes the active note to the data directory.
type Notes struct {
	opts   Options
	notes  []Note
	active int
	mode   notesMode
	status string

	title textinput.Model
	body  textarea.Model
}

func NewNotes(_ registry.Context, opts Options) *Notes {
	body := textarea.New()
	body.CharLimit = 0
	body.ShowLineNumbers = false
	return &Notes{
		opts:  opts,
		notes: initialNotes(),
		title: newInput("Untitled", 80),
		body:  body,
	}
}

// Notes returns a copy of all notes, newest first.
func (n *Notes) Notes() []Note {
	return append([]Note(nil), n.notes...)
}

// Active returns the selected note.
func (n *Notes) Active() Note {
	return n.notes[n.active]
}

// Status returns the last status message.
func (n *Notes) Status() string {
	return n.status
}

// Create adds an empty note at the top of the list and selects it.
func (n *Notes) Create() Note {
	note := Note{
		ID:    uuid.NewString(),
		Title: "New Note",
		Date:  n.opts.now().Format(noteDateLayout),
	}
	n.notes = append([]Note{note}, n.notes...)
	n.active = 0
	return note
}

// Delete removes the note with id. The last remaining note is never deleted.
func (n *Notes) Delete(id string) bool {
	if len(n.notes) <= 1 {
		return false
	}
	for i, note := range n.notes {
		if note.ID != id {
			continue
		}
		wasActive := i == n.active
		n.notes = append(n.notes[:i], n.notes[i+1:]...)
		switch {
		case wasActive:
			n.active = 0
		case i < n.active:
			n.active--
		}
		return true
	}
	return false
}

// Select makes the note at index i active.
func (n *Notes) Select(i int) {
	if i >= 0 && i < len(n.notes) {
		n.active = i
	}
}

// SetTitle renames the active note.
func (n *Notes) SetTitle(title string) {
	n.notes[n.active].Title = title
}

// SetBody replaces the content of the active note.
func (n *Notes) SetBody(body string) {
	n.notes[n.active].Body = body
}

// ExportName is the file name an export of note in format is written to.
func ExportName(note Note, format string) string {
	name := strings.ToLower(spaces.ReplaceAllString(strings.TrimSpace(note.Title), "_"))
	if name == "" {
		name = "untitled"
	}
	return name + "." + format
}

// Export writes the active note's content under the data directory and
// returns the file path.
func (n *Notes) Export(format string) (string, error) {
	if format != FormatText && format != FormatMarkdown {
		return "", fmt.Errorf("unsupported export format %q", format)
	}
	dir := n.opts.dataPath("notes")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := n.opts.dataPath("notes", ExportName(n.Active(), format))
	if err := os.WriteFile(path, []byte(n.Active().Body), 0o644); err != nil {
		return "", fmt.Errorf("export note: %w", err)
	}
	return path, nil
}

func (n *Notes) export(format string) {
	path, err := n.Export(format)
	if err != nil {
		n.status = err.Error()
		return
	}
	n.status = "Exported " + path
}

func (n *Notes) Update(msg tea.KeyMsg) tea.Cmd {
	switch n.mode {
	case notesEditTitle:
		switch msg.String() {
		case "enter", "esc":
			n.SetTitle(n.title.Value())
			n.mode = notesBrowse
			return nil
		}
		var cmd tea.Cmd
		n.title, cmd = n.title.Update(msg)
		return cmd
	case notesEditBody:
		if msg.String() == "esc" {
			n.SetBody(n.body.Value())
			n.body.Blur()
			n.mode = notesBrowse
			return nil
		}
		var cmd tea.Cmd
		n.body, cmd = n.body.Update(msg)
		return cmd
	}

	n.status = ""
	switch msg.String() {
	case "up", "k":
		n.Select(n.active - 1)
	case "down", "j":
		n.Select(n.active + 1)
	case "n":
		n.Create()
	case "d", "delete":
		if !n.Delete(n.Active().ID) {
			n.status = "Cannot delete the last note"
		}
	case "r":
		n.title.SetValue(n.Active().Title)
		n.title.CursorEnd()
		n.mode = notesEditTitle
	case "e", "enter":
		n.body.SetValue(n.Active().Body)
		n.mode = notesEditBody
		return n.body.Focus()
	case "x":
		n.export(FormatText)
	case "m":
		n.export(FormatMarkdown)
	}
	return nil
}

func (n *Notes) Render(width, height int) []string {
	if height <= 0 || width <= 0 {
		return nil
	}
	listWidth := min(22, width/3)
	editorWidth := width - listWidth - 1

	var left []string
	left = append(left, fit("ALL NOTES  [n]ew", listWidth))
	for i, note := range n.notes {
		title := note.Title
		if title == "" {
			title = "Untitled"
		}
		marker := "  "
		if i == n.active {
			marker = "▸ "
		}
		left = append(left, fit(marker+title, listWidth), fit("  "+note.Date, listWidth))
	}

	active := n.Active()
	title := active.Title
	body := active.Body
	switch n.mode {
	case notesEditTitle:
		title = inputLine(n.title)
	case notesEditBody:
		body = n.body.Value()
	}
	right := []string{active.Date, title, ""}
	right = append(right, wrap(body, editorWidth)...)

	footer := "[r]ename [e]dit [d]elete e[x]port.txt export.[m]d"
	switch {
	case n.status != "":
		footer = n.status
	case n.mode == notesEditBody:
		footer = "editing, esc to finish"
	case n.mode == notesEditTitle:
		footer = "renaming, enter to finish"
	}

	out := make([]string, 0, height)
	for row := 0; row < height-1; row++ {
		l, r := "", ""
		if row < len(left) {
			l = left[row]
		}
		if row < len(right) {
			r = right[row]
		}
		out = append(out, fit(l, listWidth)+"│"+r)
	}
	return append(out, footer)
}
