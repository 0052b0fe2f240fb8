// Package output renders command results for terminals, pipes and machines.
//
// The renderer picks a mode once per command. ModeAuto resolves to styled
// text when stdout is a terminal and to markdown otherwise, so piping
// earlylint into a file or an LLM produces plain, readable output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// OutputMode selects how results are rendered.
type OutputMode string //nolint:revive // output.OutputMode reads fine at call sites

// Mode is shorthand for OutputMode, used when converting config strings.
type Mode = OutputMode

// Output modes.
const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
	ModeYAML     OutputMode = "yaml"
)

// Modes lists the accepted mode names.
func Modes() []string {
	return []string{string(ModeAuto), string(ModeText), string(ModeMarkdown), string(ModeJSON), string(ModeYAML)}
}

// ParseMode converts a user supplied string into a mode.
func ParseMode(s string) (OutputMode, bool) {
	switch m := OutputMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeAuto, true
	case ModeAuto, ModeText, ModeMarkdown, ModeJSON, ModeYAML:
		return m, true
	case "md":
		return ModeMarkdown, true
	case "yml":
		return ModeYAML, true
	default:
		return ModeAuto, false
	}
}

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   OutputMode
	isTTY  bool
	styles *Styles
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit TTY state.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	if m, ok := ParseMode(string(mode)); ok {
		mode = m
	} else {
		mode = ModeAuto
	}

	lr := lipgloss.NewRenderer(out)
	if !isTTY {
		lr.SetColorProfile(termenv.Ascii)
	}

	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTTY,
		styles: NewStyles(lr),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}

// Mode returns the configured mode, which may be ModeAuto.
func (r *Renderer) Mode() OutputMode {
	return r.mode
}

// EffectiveMode resolves ModeAuto against the TTY state.
func (r *Renderer) EffectiveMode() OutputMode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// IsTTY reports whether the output is attached to a terminal.
func (r *Renderer) IsTTY() bool {
	return r.isTTY
}

// IsStructured reports whether the effective mode is JSON or YAML.
func (r *Renderer) IsStructured() bool {
	m := r.EffectiveMode()
	return m == ModeJSON || m == ModeYAML
}

// Styles returns the lipgloss styles bound to this renderer.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Writer returns the stdout writer.
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// ErrWriter returns the stderr writer.
func (r *Renderer) ErrWriter() io.Writer {
	return r.errOut
}

// Println writes a line to stdout.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted text to stdout.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Success prints a success line. Structured modes stay silent so the
// document on stdout remains parseable.
func (r *Renderer) Success(msg string) {
	switch r.EffectiveMode() {
	case ModeJSON, ModeYAML:
		return
	case ModeMarkdown:
		r.Println("**OK** " + msg)
	default:
		r.Println(r.styles.Success.Render("✓ " + msg))
	}
}

// Warning prints a warning to stderr.
func (r *Renderer) Warning(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Warning.Render("warning: ")+msg)
}

// Error prints an error to stderr.
func (r *Renderer) Error(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render("error: ")+msg)
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAML writes v as a YAML document.
func (r *Renderer) YAML(v any) error {
	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Structured writes v in the effective structured mode. It returns false
// when the mode is not structured.
func (r *Renderer) Structured(v any) (bool, error) {
	switch r.EffectiveMode() {
	case ModeJSON:
		return true, r.JSON(v)
	case ModeYAML:
		return true, r.YAML(v)
	default:
		return false, nil
	}
}
