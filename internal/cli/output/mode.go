// Package output renders command results for terminals, pipes and tools.
//
// A Renderer picks its style from the requested Mode. ModeAuto resolves to
// styled text on a TTY and to markdown everywhere else, so piped output
// stays readable by agents and diff tools.
package output

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// OutputMode selects how a Renderer formats its output.
type OutputMode string

// Supported output modes.
const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
)

// Mode converts a configuration value into an OutputMode. Unknown and
// empty values resolve to ModeAuto.
func Mode(s string) OutputMode {
	switch OutputMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeText:
		return ModeText
	case ModeMarkdown, "md":
		return ModeMarkdown
	case ModeJSON:
		return ModeJSON
	default:
		return ModeAuto
	}
}

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}
