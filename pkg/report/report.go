// Package report prints the user-facing status lines of a manifest run.
// Output is styled with lipgloss only when it goes to a terminal and
// NO_COLOR is not set; otherwise plain text is written so that scripts can
// match on it.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Printer writes status lines to an output stream.
type Printer struct {
	w      io.Writer
	styled bool

	okStyle   lipgloss.Style
	pathStyle lipgloss.Style
	errStyle  lipgloss.Style
}

// New returns a Printer for w, enabling styling when w is a terminal.
func New(w io.Writer) *Printer {
	return newPrinter(w, isTerminal(w) && !termenv.EnvNoColor())
}

// NewPlain returns a Printer that never styles its output.
func NewPlain(w io.Writer) *Printer {
	return newPrinter(w, false)
}

func newPrinter(w io.Writer, styled bool) *Printer {
	r := lipgloss.NewRenderer(w)
	p := &Printer{w: w, styled: styled}
	p.okStyle = r.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#10B981"))
	p.pathStyle = r.NewStyle().
		Foreground(lipgloss.Color("#7C3AED"))
	p.errStyle = r.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#EF4444"))
	return p
}

// Styled reports whether the printer emits ANSI styling.
func (p *Printer) Styled() bool {
	return p.styled
}

// Written confirms that the manifest was stored at path.
func (p *Printer) Written(path string) {
	if !p.styled {
		fmt.Fprintf(p.w, "Manifest written to %s\n", path)
		return
	}
	fmt.Fprintf(p.w, "%s %s\n", p.okStyle.Render("Manifest written to"), p.pathStyle.Render(path))
}

// NotDirectory reports that the target path cannot be scanned.
func (p *Printer) NotDirectory() {
	const msg = "Error: Provided path is not a directory."
	if !p.styled {
		fmt.Fprintln(p.w, msg)
		return
	}
	fmt.Fprintln(p.w, p.errStyle.Render(msg))
}

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
