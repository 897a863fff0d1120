package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Status values accepted by StatusLine.
const (
	StatusSuccess = "success"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   OutputMode
	isTTY  bool
	styles *Styles
	title  cases.Caser
}

// NewRenderer creates a renderer writing results to out and diagnostics to
// errOut. TTY detection only succeeds when out is an *os.File.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY is NewRenderer with explicit TTY detection, for tests.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	r := &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTTY,
		title:  cases.Title(language.English, cases.NoLower),
	}
	r.styles = newStyles(out, r.EffectiveMode() != ModeText || !isTTY)
	return r
}

// EffectiveMode resolves ModeAuto against the TTY state.
func (r *Renderer) EffectiveMode() OutputMode {
	if r.mode != ModeAuto && r.mode != "" {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// IsTTY reports whether the output is a terminal.
func (r *Renderer) IsTTY() bool { return r.isTTY }

// Writer returns the result writer.
func (r *Renderer) Writer() io.Writer { return r.out }

// Styles returns the styles bound to the result writer.
func (r *Renderer) Styles() *Styles { return r.styles }

// Println writes a line to the result writer.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted output to the result writer.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Header writes a section header. Level 1 is the top level.
func (r *Renderer) Header(level int, s string) {
	if r.EffectiveMode() == ModeText {
		style := r.styles.Header2
		if level <= 1 {
			style = r.styles.Header1
		}
		r.Println(style.Render(r.title.String(s)))
		return
	}
	r.Println(FormatHeader(level, s))
	r.Println("")
}

// StatusLine writes one item with its status and an optional detail.
func (r *Renderer) StatusLine(name, status, detail string) {
	if r.EffectiveMode() != ModeText {
		line := fmt.Sprintf("- %s: %s", name, status)
		if detail != "" {
			line += " (" + detail + ")"
		}
		r.Println(line)
		return
	}

	var icon string
	switch status {
	case StatusSuccess:
		icon = r.styles.StatusSuccess.Render("✓")
	case StatusSkipped:
		icon = r.styles.StatusSkipped.Render("-")
	case StatusFailed:
		icon = r.styles.StatusFailed.Render("✗")
	default:
		icon = r.styles.Muted.Render("?")
	}
	line := fmt.Sprintf("  %s %s", icon, r.styles.Path.Render(name))
	if detail != "" {
		line += " " + r.styles.Muted.Render(detail)
	}
	r.Println(line)
}

// Success writes a success message.
func (r *Renderer) Success(msg string) {
	if r.EffectiveMode() == ModeText {
		r.Println(r.styles.Success.Render("✓ " + msg))
		return
	}
	r.Println("**" + msg + "**")
}

// Warning writes a warning to the diagnostics writer.
func (r *Renderer) Warning(msg string) {
	if r.EffectiveMode() == ModeText {
		_, _ = fmt.Fprintln(r.errOut, r.styles.Warning.Render("! "+msg))
		return
	}
	_, _ = fmt.Fprintln(r.errOut, "Warning: "+msg)
}

// Error writes an error message to the diagnostics writer.
func (r *Renderer) Error(msg string) {
	if r.EffectiveMode() == ModeText {
		_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render("✗ "+msg))
		return
	}
	_, _ = fmt.Fprintln(r.errOut, "Error: "+msg)
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table writes rows under headers, as a boxed table in text mode and as a
// markdown table otherwise.
func (r *Renderer) Table(headers []string, rows [][]string) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)

	headerRow := make(table.Row, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	t.AppendHeader(headerRow)

	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, v := range row {
			tr[i] = v
		}
		t.AppendRow(tr)
	}

	if r.EffectiveMode() == ModeText {
		t.SetStyle(table.StyleLight)
		t.Render()
		return
	}
	t.RenderMarkdown()
}

// FormatHeader returns a markdown header of the given level.
func FormatHeader(level int, s string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + s
}

// FormatKeyValue returns a markdown list item for a key and value.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s:** %s", key, value)
}
