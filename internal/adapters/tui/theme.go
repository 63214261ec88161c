package tui

import (
	"reflect"

	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/discipline-tracker/internal/config"
	"github.com/xvierd/discipline-tracker/internal/domain"
)

// resolveTheme fills empty string fields of theme with the defaults.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}

type styles struct {
	mode      lipgloss.Style
	clock     lipgloss.Style
	title     lipgloss.Style
	help      lipgloss.Style
	selected  lipgloss.Style
	sidebar   lipgloss.Style
	banner    lipgloss.Style
	errorLine lipgloss.Style
}

func newStyles(theme config.ThemeConfig, mode domain.TimerMode, running bool) styles {
	accent := lipgloss.Color(theme.ColorWork)
	if mode.IsBreak() {
		accent = lipgloss.Color(theme.ColorBreak)
	}
	clockColor := accent
	if !running {
		clockColor = lipgloss.Color(theme.ColorPaused)
	}

	return styles{
		mode:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		clock:    lipgloss.NewStyle().Foreground(clockColor),
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.ColorTitle)),
		help:     lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorHelp)),
		selected: lipgloss.NewStyle().Bold(true).Foreground(accent),
		sidebar: lipgloss.NewStyle().
			Width(sidebarWidth).
			PaddingRight(2).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(lipgloss.Color(theme.ColorTitle)),
		banner:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		errorLine: lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75")),
	}
}
