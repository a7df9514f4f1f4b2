package platform

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// Terminal reports properties of the controlling terminal the desktop is
// drawn into.
type Terminal struct {
	in  *os.File
	out *os.File
}

// NewTerminal returns a Terminal bound to stdin/stdout.
func NewTerminal() *Terminal {
	return &Terminal{in: os.Stdin, out: os.Stdout}
}

// Interactive reports whether both stdin and stdout are terminals.
func (t *Terminal) Interactive() bool {
	return term.IsTerminal(int(t.in.Fd())) && term.IsTerminal(int(t.out.Fd()))
}

// Size returns the current terminal size in cells.
func (t *Terminal) Size() (Size, error) {
	w, h, err := term.GetSize(int(t.out.Fd()))
	if err != nil {
		return Size{}, fmt.Errorf("failed to read terminal size: %w", err)
	}
	return Size{Width: w, Height: h}, nil
}
