// Package render writes replies to the terminal.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

const defaultWidth = 80

// Renderer prints replies, as rendered markdown when attached to a terminal.
type Renderer struct {
	w        io.Writer
	markdown *glamour.TermRenderer
}

// New returns a Renderer for w. Markdown rendering is used only when raw is
// false and w is a terminal; otherwise replies are written verbatim.
func New(w io.Writer, raw bool) (*Renderer, error) {
	r := &Renderer{w: w}
	if raw {
		return r, nil
	}

	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return r, nil
	}

	width := defaultWidth
	if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
		width = cols
	}

	md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("could not create markdown renderer: %w", err)
	}
	r.markdown = md
	return r, nil
}

// Markdown reports whether replies are rendered rather than printed verbatim.
func (r *Renderer) Markdown() bool {
	return r.markdown != nil
}

// Reply writes text followed by a newline.
func (r *Renderer) Reply(text string) error {
	if r.markdown != nil {
		out, err := r.markdown.Render(text)
		if err == nil {
			_, err = io.WriteString(r.w, out)
			return err
		}
		// Fall through to the verbatim text if rendering fails.
	}

	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err := io.WriteString(r.w, text)
	return err
}
