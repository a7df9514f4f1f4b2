package apps

import (
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/deskos/internal/registry"
	"github.com/1broseidon/deskos/internal/wm"
)

// ParamURL is the launch parameter holding the page to show.
const ParamURL = "url"

const (
	browserHome    = "https://www.google.com/search?igu=1"
	browserAddress = "https://www.google.com"
)

// ResolveAddress turns address bar input into a URL. Input that is not an
// http(s) or blob URL becomes a search.
func ResolveAddress(input string) (string, bool) {
	target := strings.TrimSpace(input)
	if target == "" {
		return "", false
	}
	if strings.HasPrefix(target, "http") || strings.HasPrefix(target, "blob:") {
		return target, true
	}
	q := strings.ReplaceAll(url.QueryEscape(target), "+", "%20")
	return "https://www.google.com/search?q=" + q + "&igu=1", true
}

// Browser is an address bar with history. Pages are described rather than
// rendered.
type Browser struct {
	current string
	back    []string
	forward []string
	reloads int
	input   textinput.Model
}

func NewBrowser(ctx registry.Context) *Browser {
	b := &Browser{current: browserHome, input: newInput("Search or enter URL", 2048)}
	b.input.SetValue(browserAddress)
	if u := ctx.Params.Get(ParamURL); u != "" {
		b.current = u
		b.input.SetValue(u)
	}
	b.input.CursorEnd()
	return b
}

// URL returns the page being shown.
func (b *Browser) URL() string { return b.current }

// Reloads returns how many times the current page was reloaded.
func (b *Browser) Reloads() int { return b.reloads }

// Navigate shows target and records the previous page in history.
func (b *Browser) Navigate(target string) {
	if target == b.current {
		return
	}
	b.back = append(b.back, b.current)
	b.forward = nil
	b.current = target
	b.input.SetValue(target)
	b.input.CursorEnd()
	b.reloads = 0
}

// Go resolves the address bar and navigates to the result.
func (b *Browser) Go() bool {
	target, ok := ResolveAddress(b.input.Value())
	if !ok {
		return false
	}
	b.Navigate(target)
	return true
}

// Back returns to the previous page.
func (b *Browser) Back() bool {
	if len(b.back) == 0 {
		return false
	}
	b.forward = append(b.forward, b.current)
	b.current = b.back[len(b.back)-1]
	b.back = b.back[:len(b.back)-1]
	b.input.SetValue(b.current)
	b.input.CursorEnd()
	return true
}

// Forward undoes a Back.
func (b *Browser) Forward() bool {
	if len(b.forward) == 0 {
		return false
	}
	b.back = append(b.back, b.current)
	b.current = b.forward[len(b.forward)-1]
	b.forward = b.forward[:len(b.forward)-1]
	b.input.SetValue(b.current)
	b.input.CursorEnd()
	return true
}

// Relaunch shows the url parameter of a repeated open.
func (b *Browser) Relaunch(params wm.LaunchParams) tea.Cmd {
	if u := params.Get(ParamURL); u != "" {
		b.Navigate(u)
	}
	return nil
}

func (b *Browser) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		b.Go()
		return nil
	case "alt+left":
		b.Back()
		return nil
	case "alt+right":
		b.Forward()
		return nil
	case "f5", "ctrl+r":
		b.reloads++
		return nil
	}
	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	return cmd
}

func (b *Browser) Render(width, height int) []string {
	if height <= 0 {
		return nil
	}
	nav := func(ok bool, glyph string) string {
		if ok {
			return glyph
		}
		return " "
	}
	bar := nav(len(b.back) > 0, "❮") + " " + nav(len(b.forward) > 0, "❯") + " ↻  " + inputLine(b.input)
	out := []string{bar, strings.Repeat("─", max(width, 0)), ""}

	host := b.current
	if u, err := url.Parse(b.current); err == nil && u.Host != "" {
		host = u.Host
	}
	page := "Loading " + host + "\n\n" + b.current + "\n\nalt+←/→ history  f5 reload"
	out = append(out, wrap(page, width)...)
	if len(out) > height {
		out = out[:height]
	}
	return out
}
