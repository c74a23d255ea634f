// Package tui provides terminal output components for Calcifer: semantic
// colors, status rendering, tables, relative times, and markdown display.
//
// All colors use AdaptiveColor for light/dark terminal support. Call
// CheckNoColor at command start to honor the NO_COLOR environment variable.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mrz1836/calcifer/internal/domain"
)

//nolint:gochecknoglobals // Intentional package-level constants for TUI styling API
var (
	// ColorPrimary is blue, used for active states and primary values.
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00D7FF"}

	// ColorSuccess is green, used for up endpoints and completed items.
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF87"}

	// ColorWarning is yellow, used for planning items and warnings.
	ColorWarning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}

	// ColorError is red, used for down endpoints and failures.
	ColorError = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}

	// ColorMuted is gray, used for unknown states and secondary text.
	ColorMuted = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#6C6C6C"}

	// StyleBold applies bold formatting to text.
	StyleBold = lipgloss.NewStyle().Bold(true)

	// StyleDim applies dim formatting to text.
	StyleDim = lipgloss.NewStyle().Faint(true)
)

// StatusColor returns the semantic color for a work item status.
func StatusColor(status domain.Status) lipgloss.AdaptiveColor {
	switch status {
	case domain.StatusPlanning:
		return ColorWarning
	case domain.StatusInProgress:
		return ColorPrimary
	case domain.StatusComplete:
		return ColorSuccess
	case domain.StatusCancelled:
		return ColorMuted
	default:
		return ColorMuted
	}
}

// EndpointStatusColor returns the semantic color for an endpoint status.
func EndpointStatusColor(status domain.EndpointStatus) lipgloss.AdaptiveColor {
	switch status {
	case domain.EndpointStatusUp:
		return ColorSuccess
	case domain.EndpointStatusDown:
		return ColorError
	case domain.EndpointStatusUnknown:
		return ColorMuted
	default:
		return ColorMuted
	}
}

// StatusIcon returns a glyph for a work item status. Icon, color, and text
// are kept redundant so meaning survives any one channel being stripped.
func StatusIcon(status domain.Status) string {
	switch status {
	case domain.StatusPlanning:
		return "◌"
	case domain.StatusInProgress:
		return "●"
	case domain.StatusComplete:
		return "✓"
	case domain.StatusCancelled:
		return "✗"
	default:
		return "?"
	}
}

// EndpointStatusIcon returns a glyph for an endpoint status.
func EndpointStatusIcon(status domain.EndpointStatus) string {
	switch status {
	case domain.EndpointStatusUp:
		return "✓"
	case domain.EndpointStatusDown:
		return "✗"
	case domain.EndpointStatusUnknown:
		return "?"
	default:
		return "?"
	}
}

// RenderStatus renders a work item status with icon and color.
func RenderStatus(status domain.Status) string {
	style := lipgloss.NewStyle().Foreground(StatusColor(status))
	return style.Render(StatusIcon(status) + " " + string(status))
}

// RenderEndpointStatus renders an endpoint status with icon and color.
func RenderEndpointStatus(status domain.EndpointStatus) string {
	style := lipgloss.NewStyle().Foreground(EndpointStatusColor(status))
	return style.Render(EndpointStatusIcon(status) + " " + string(status))
}

// OutputStyles holds common output styles.
type OutputStyles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Dim     lipgloss.Style
}

// NewOutputStyles creates common output styles.
func NewOutputStyles() *OutputStyles {
	return &OutputStyles{
		Success: lipgloss.NewStyle().Foreground(ColorSuccess),
		Error:   lipgloss.NewStyle().Foreground(ColorError),
		Warning: lipgloss.NewStyle().Foreground(ColorWarning),
		Info:    lipgloss.NewStyle().Foreground(ColorPrimary),
		Dim:     lipgloss.NewStyle().Foreground(ColorMuted),
	}
}

// HasColorSupport returns false if NO_COLOR is set (any value, per the
// NO_COLOR standard) or TERM=dumb.
func HasColorSupport() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return true
}

// CheckNoColor disables color rendering when the terminal asks for it.
func CheckNoColor() {
	if !HasColorSupport() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}
