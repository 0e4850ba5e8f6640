package main

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Color palette
var (
	colorError   = lipgloss.Color("#EF4444") // Red
	colorAccent  = lipgloss.Color("#F59E0B") // Amber
	colorSuccess = lipgloss.Color("#10B981") // Emerald
	colorPrimary = lipgloss.Color("#06B6D4") // Cyan
	colorMuted   = lipgloss.Color("#6B7280") // Gray
)

type colorChoice int

const (
	colorAuto colorChoice = iota
	colorAlways
	colorNever
)

// colorMode combines the config setting, the --no-color flag and NO_COLOR.
func colorMode(setting string, noColorFlag bool) colorChoice {
	if noColorFlag {
		return colorNever
	}
	switch setting {
	case "always":
		return colorAlways
	case "never":
		return colorNever
	}
	if os.Getenv("NO_COLOR") != "" {
		return colorNever
	}
	return colorAuto
}

// styles renders the short decorated fragments of CLI output. Source text is
// never passed through lipgloss, so tabs and spacing survive unchanged.
type styles struct {
	enabled bool

	errorCode lipgloss.Style
	location  lipgloss.Style
	caret     lipgloss.Style
	muted     lipgloss.Style
	success   lipgloss.Style
	prompt    lipgloss.Style
	banner    lipgloss.Style
}

func newStyles(w io.Writer, mode colorChoice) styles {
	r := lipgloss.NewRenderer(w)

	enabled := true
	switch mode {
	case colorNever:
		enabled = false
	case colorAlways:
		r.SetColorProfile(termenv.ANSI256)
	case colorAuto:
		f, ok := w.(*os.File)
		enabled = ok && isatty.IsTerminal(f.Fd())
	}

	return styles{
		enabled:   enabled,
		errorCode: r.NewStyle().Foreground(colorError).Bold(true),
		location:  r.NewStyle().Bold(true),
		caret:     r.NewStyle().Foreground(colorAccent).Bold(true),
		muted:     r.NewStyle().Foreground(colorMuted),
		success:   r.NewStyle().Foreground(colorSuccess),
		prompt:    r.NewStyle().Foreground(colorSuccess).Bold(true),
		banner:    r.NewStyle().Foreground(colorPrimary).Bold(true),
	}
}

func (s styles) render(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return style.Render(text)
}
