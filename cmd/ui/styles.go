// Package ui provides the small lipgloss-based color palette and layout
// helpers cmd/filehash uses to render `cache validate -v` diagnostics
// and the `cache dump` header — the same palette the teacher's
// cmd/sourcecontrol used for git-status coloring, repurposed for a
// reuse/rehash/missing vocabulary instead of modified/deleted/added.
package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorGreenStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true)
	ColorRedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
	ColorYellowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)
	ColorBlueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00BFFF")).Bold(true)
	ColorCyanStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FFFF"))
	ColorMagentaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF00FF")).Italic(true)
	ColorGrayStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	// ReusedStyle marks a path whose hash was reused from a prior cache.
	ReusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true)
	// RehashedStyle marks a path that had to be rehashed this validate.
	RehashedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Bold(true)
	// MissingStyle marks a path whose stat failed.
	MissingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444")).Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#5F5FFF")).
			PaddingTop(1).
			PaddingBottom(1).
			MarginBottom(1)

	InfoStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00BFFF")).
			PaddingTop(1).
			PaddingBottom(1)

	SectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Underline(true)
)

// Icons used in validate -v and cache dump output.
const (
	IconReused    = "="
	IconRehashed  = "~"
	IconMissing   = "✗"
	IconCheckmark = "✓"
	IconCache     = "⊚"
)

func Green(s string) string   { return ColorGreenStyle.Render(s) }
func Red(s string) string     { return ColorRedStyle.Render(s) }
func Yellow(s string) string  { return ColorYellowStyle.Render(s) }
func Blue(s string) string    { return ColorBlueStyle.Render(s) }
func Cyan(s string) string    { return ColorCyanStyle.Render(s) }
func Magenta(s string) string { return ColorMagentaStyle.Render(s) }
func Gray(s string) string    { return ColorGrayStyle.Render(s) }

func Header(text string) string  { return HeaderStyle.Render(text) }
func Section(text string) string { return SectionStyle.Render(text) }
func Info(text string) string    { return InfoStyle.Render(text) }
