package ui

import (
	"fmt"
	"strings"
)

// ReuseStatus mirrors filecache.ReuseReason for rendering purposes, kept
// separate so cmd/ui never imports the domain package.
type ReuseStatus int

const (
	StatusReused ReuseStatus = iota
	StatusRehashed
	StatusMissing
)

// FormatReuseLine formats one path of a `cache validate -v` diagnostics
// listing with the icon and color matching how its hash was resolved.
func FormatReuseLine(status ReuseStatus, path, reason string) string {
	var icon, rendered string
	switch status {
	case StatusReused:
		icon, rendered = IconReused, ReusedStyle.Render(path)
	case StatusRehashed:
		icon, rendered = IconRehashed, RehashedStyle.Render(path)
	case StatusMissing:
		icon, rendered = IconMissing, MissingStyle.Render(path)
	default:
		return path
	}
	if reason == "" {
		return fmt.Sprintf("  %s  %s", icon, rendered)
	}
	return fmt.Sprintf("  %s  %s  %s", icon, rendered, Gray(reason))
}

// SuccessMessage creates a success message with a checkmark icon.
func SuccessMessage(message string, details ...string) string {
	parts := []string{Green(IconCheckmark), Green(message)}
	for _, detail := range details {
		parts = append(parts, Blue(detail))
	}
	return strings.Join(parts, " ")
}

// CacheSummaryLine renders the one-line validate/write summary: aggregate
// digest, how many paths were rehashed, and how many were reused.
func CacheSummaryLine(digestHex string, rehashed, reused int) string {
	return fmt.Sprintf(
		"%s %s  %s %d rehashed  %s %d reused",
		Cyan(IconCache), Cyan(digestHex),
		Yellow(IconRehashed), rehashed,
		Green(IconReused), reused,
	)
}

// FormatSeparator creates a dim separator line between dump sections.
func FormatSeparator(width int) string {
	return Gray(strings.Repeat("-", width))
}

// ErrorMessage formats an error message in red.
func ErrorMessage(message string) string {
	return Red(message)
}

// WarningMessage formats a warning message in yellow.
func WarningMessage(message string) string {
	return Yellow(message)
}

// InfoMessage formats an info message in blue.
func InfoMessage(message string) string {
	return Blue(message)
}
