// Package output provides rendering helpers for CLI commands: output
// mode resolution (terminal vs. pipe vs. machine-readable) and a small
// set of lipgloss styles shared across commands.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Mode selects how command output is rendered.
type Mode string

const (
	// ModeAuto picks text for terminals and markdown for pipes.
	ModeAuto Mode = "auto"
	// ModeText renders styled terminal output.
	ModeText Mode = "text"
	// ModeMarkdown renders plain markdown suitable for piping.
	ModeMarkdown Mode = "markdown"
	// ModeJSON renders machine-readable JSON.
	ModeJSON Mode = "json"
)

// Renderer writes command output in the selected mode.
type Renderer struct {
	w      io.Writer
	errW   io.Writer
	mode   Mode
	styles Styles
}

// NewRenderer creates a renderer for the given writers and mode. An
// empty mode is treated as ModeAuto.
func NewRenderer(w, errW io.Writer, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	return &Renderer{
		w:      w,
		errW:   errW,
		mode:   mode,
		styles: newStyles(),
	}
}

// EffectiveMode resolves ModeAuto to a concrete mode based on whether
// stdout is a terminal.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if f, ok := r.w.(*os.File); ok && term.IsTerminal(int(f.Fd())) && !termenv.EnvNoColor() {
		return ModeText
	}
	return ModeMarkdown
}

// Styles returns the style set for styled text output.
func (r *Renderer) Styles() Styles {
	return r.styles
}

// Writer returns the underlying output writer.
func (r *Renderer) Writer() io.Writer {
	return r.w
}

// Println writes a line to the output writer.
func (r *Renderer) Println(a ...any) {
	fmt.Fprintln(r.w, a...)
}

// Printf writes formatted output to the output writer.
func (r *Renderer) Printf(format string, a ...any) {
	fmt.Fprintf(r.w, format, a...)
}

// Success writes a success-styled line to the output writer.
func (r *Renderer) Success(msg string) {
	r.Println(r.styles.Success.Render(msg))
}

// Error writes an error-styled line to the error writer.
func (r *Renderer) Error(msg string) {
	fmt.Fprintln(r.errW, r.styles.Error.Render(msg))
}

// JSON writes v as indented JSON to the output writer.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
