// Package ui holds the terminal presentation layer: color theme, headless
// mode detection, and the generation spinner. Interactive components degrade
// to plain log lines without a TTY.
package ui

import "os"

// Color palette (dark terminal values).
const (
	ColorPrimary   = "#2DD4BF"
	ColorSecondary = "#818CF8"
	ColorSuccess   = "#34D399"
	ColorError     = "#F87171"
	ColorText      = "#E5E7EB"
	ColorMuted     = "#6B7280"
	ColorBorder    = "#374151"
)

// Theme carries the color palette and the color toggle shared by all UI
// components.
type Theme struct {
	NoColor bool
	Colors  Palette
}

// Palette names the semantic colors used by the theme.
type Palette struct {
	Primary   string
	Secondary string
	Success   string
	Error     string
	Text      string
	Muted     string
	Border    string
}

// NewTheme creates the default theme, honoring the NO_COLOR convention.
func NewTheme() *Theme {
	_, noColor := os.LookupEnv("NO_COLOR")
	return &Theme{
		NoColor: noColor,
		Colors: Palette{
			Primary:   ColorPrimary,
			Secondary: ColorSecondary,
			Success:   ColorSuccess,
			Error:     ColorError,
			Text:      ColorText,
			Muted:     ColorMuted,
			Border:    ColorBorder,
		},
	}
}
