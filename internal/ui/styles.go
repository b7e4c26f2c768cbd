package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/gubarz/snipmd/internal/config"
)

// StyleManager encapsulates all TUI and report styles
type StyleManager struct {
	// Status styles
	Found   lipgloss.Style
	Missing lipgloss.Style
	Error   lipgloss.Style

	// List view styles
	Mode   lipgloss.Style
	Cursor lipgloss.Style
	Dim    lipgloss.Style

	// Preview styles
	PreviewHeader lipgloss.Style
	PreviewInfo   lipgloss.Style

	// Chrome styles
	Header  lipgloss.Style
	Border  lipgloss.Style
	Divider lipgloss.Style

	// Colors for direct access
	SelectedBg lipgloss.Color
}

// DefaultStyles returns a StyleManager with default styles
func DefaultStyles() *StyleManager {
	return &StyleManager{
		Found:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Missing:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Error:         lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Mode:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Cursor:        lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		Dim:           lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		PreviewHeader: lipgloss.NewStyle().Bold(true),
		PreviewInfo:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Header:        lipgloss.NewStyle().Bold(true),
		Border:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Divider:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		SelectedBg:    lipgloss.Color("236"),
	}
}

// LoadFromConfig updates styles based on configuration
func (s *StyleManager) LoadFromConfig() {
	found := parseANSIColor(config.GetColorFound())
	missing := parseANSIColor(config.GetColorMissing())
	errColor := parseANSIColor(config.GetColorError())
	dim := parseANSIColor(config.GetColorDim())

	s.Found = lipgloss.NewStyle().Foreground(found)
	s.Missing = lipgloss.NewStyle().Foreground(missing)
	s.Error = lipgloss.NewStyle().Foreground(errColor)
	s.Dim = lipgloss.NewStyle().Foreground(dim)
	s.PreviewInfo = lipgloss.NewStyle().Foreground(dim)
}

// WithSelection returns a copy of the given style with the selected background applied
func (s *StyleManager) WithSelection(style lipgloss.Style) lipgloss.Style {
	return style.Background(s.SelectedBg)
}

// parseANSIColor converts ANSI color codes to lipgloss colors
func parseANSIColor(code string) lipgloss.Color {
	ansiToLipgloss := map[string]string{
		"30": "0", "31": "1", "32": "2", "33": "3",
		"34": "4", "35": "5", "36": "6", "37": "7",
		"90": "8", "91": "9", "92": "10", "93": "11",
		"94": "12", "95": "13", "96": "14", "97": "15",
	}
	if mapped, ok := ansiToLipgloss[code]; ok {
		return lipgloss.Color(mapped)
	}
	return lipgloss.Color(code)
}

// Global style manager instance
var styles = DefaultStyles()

// RefreshStyles updates the global styles from config
func RefreshStyles() {
	styles.LoadFromConfig()
}
