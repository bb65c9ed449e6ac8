// Package ui holds the terminal styling and the bubbletea run view.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ─── Palette ─────────────────────────────────────────────────────────────────

var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#60a5fa"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#16a34a", Dark: "#4ade80"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#ca8a04", Dark: "#facc15"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	ColorText    = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#f3f4f6"}
)

// ─── Styles ──────────────────────────────────────────────────────────────────

var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	BannerStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	DoneStyle    = lipgloss.NewStyle().Foreground(ColorSuccess)
	WarnStyle    = lipgloss.NewStyle().Foreground(ColorWarning)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorError)
	MutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	TextStyle    = lipgloss.NewStyle().Foreground(ColorText)
	HintBarStyle = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
)

// ─── Icons ───────────────────────────────────────────────────────────────────

const (
	IconCheck   = "✓"
	IconCross   = "✗"
	IconWarning = "!"
	IconBullet  = "•"
)

// StyleLogLine colours a run-log line by its marker.
func StyleLogLine(line string) string {
	switch {
	case hasMarker(line, "[error]"):
		return ErrorStyle.Render(line)
	case hasMarker(line, "[skip]"), hasMarker(line, "[warn]"):
		return WarnStyle.Render(line)
	case hasMarker(line, "done:"):
		return DoneStyle.Render(line)
	case hasMarker(line, "---"), hasMarker(line, "==="):
		return BannerStyle.Render(line)
	default:
		return TextStyle.Render(line)
	}
}

func hasMarker(line, marker string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " "), marker)
}
