// Package styles provides shared lipgloss styles for CLI output and forms.
package styles

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/tend/internal/core/todo"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	HeaderStyle  lipgloss.Style
	MutedStyle   lipgloss.Style
	SuccessStyle lipgloss.Style
	WarningStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	DividerStyle lipgloss.Style

	TitleStyle     lipgloss.Style
	CompletedStyle lipgloss.Style
	IDStyle        lipgloss.Style

	PriorityHighStyle   lipgloss.Style
	PriorityMediumStyle lipgloss.Style
	PriorityLowStyle    lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	HeaderStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	MutedStyle = lipgloss.NewStyle().Foreground(p.Muted)
	SuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	WarningStyle = lipgloss.NewStyle().Foreground(p.Warning)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.Error).Bold(true)
	DividerStyle = lipgloss.NewStyle().Foreground(p.Surface)

	TitleStyle = lipgloss.NewStyle().Foreground(p.Foreground).Bold(true)
	CompletedStyle = lipgloss.NewStyle().Foreground(p.Muted).Strikethrough(true)
	IDStyle = lipgloss.NewStyle().Foreground(p.Secondary)

	PriorityHighStyle = lipgloss.NewStyle().Foreground(p.Error).Bold(true)
	PriorityMediumStyle = lipgloss.NewStyle().Foreground(p.Warning)
	PriorityLowStyle = lipgloss.NewStyle().Foreground(p.Muted)
}

// PriorityStyle returns the style used to render priority p.
func PriorityStyle(p todo.Priority) lipgloss.Style {
	switch p {
	case todo.PriorityHigh:
		return PriorityHighStyle
	case todo.PriorityLow:
		return PriorityLowStyle
	default:
		return PriorityMediumStyle
	}
}

// TagStyle renders a tag chip in the tag's stored colour.
func TagStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ffffff")).
		Background(lipgloss.Color(hex)).
		Padding(0, 1)
}

// FormTheme returns a huh theme using the active palette.
func FormTheme() *huh.Theme {
	t := huh.ThemeBase()
	p := CurrentPalette

	t.Focused.Base = t.Focused.Base.BorderForeground(p.Muted)
	t.Focused.Title = t.Focused.Title.Foreground(p.Primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(p.Muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(p.Error)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(p.Error)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(p.Secondary)
	t.Focused.Option = t.Focused.Option.Foreground(p.Foreground)
	t.Focused.MultiSelectSelector = t.Focused.MultiSelectSelector.Foreground(p.Secondary)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(p.Success)
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(p.Foreground)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(p.Surface).Background(p.Primary)
	t.Focused.BlurredButton = t.Focused.BlurredButton.Foreground(p.Foreground).Background(p.Surface)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(p.Success)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(p.Secondary)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderStyle(lipgloss.HiddenBorder())

	t.Group.Title = t.Focused.Title
	t.Group.Description = t.Focused.Description
	return t
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
