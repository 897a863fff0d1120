package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles used for text output.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Path    lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	StatusSuccess lipgloss.Style
	StatusSkipped lipgloss.Style
	StatusFailed  lipgloss.Style
}

// newStyles builds styles bound to w. Colors are dropped when the
// environment asks for it (NO_COLOR, dumb terminals) or when plain is set.
func newStyles(w io.Writer, plain bool) *Styles {
	lr := lipgloss.NewRenderer(w)
	if plain || termenv.NewOutput(w).EnvColorProfile() == termenv.Ascii {
		lr.SetColorProfile(termenv.Ascii)
	}

	return &Styles{
		Header1: lr.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Header2: lr.NewStyle().Bold(true),
		Bold:    lr.NewStyle().Bold(true),
		Muted:   lr.NewStyle().Foreground(lipgloss.Color("8")),
		Path:    lr.NewStyle().Foreground(lipgloss.Color("14")),

		Success: lr.NewStyle().Foreground(lipgloss.Color("10")),
		Warning: lr.NewStyle().Foreground(lipgloss.Color("11")),
		Error:   lr.NewStyle().Foreground(lipgloss.Color("9")),
		Info:    lr.NewStyle().Foreground(lipgloss.Color("12")),

		StatusSuccess: lr.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		StatusSkipped: lr.NewStyle().Foreground(lipgloss.Color("8")),
		StatusFailed:  lr.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}
