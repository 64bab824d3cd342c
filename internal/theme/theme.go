// Package theme maps output styles to terminal colours.
package theme

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/joeycumines/linkterm/internal/output"
)

// Palette lists the colours a theme is built from.
type Palette struct {
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Directory  lipgloss.Color
	Error      lipgloss.Color
	Info       lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Accent     lipgloss.Color
	Prompt     lipgloss.Color
	Scrollbar  lipgloss.Color
}

// Theme is a named palette together with the styles derived from it.
type Theme struct {
	Name        string
	Description string
	// Animated themes reveal file contents gradually.
	Animated bool
	Palette  Palette

	styles map[output.Style]lipgloss.Style
}

func newTheme(name, description string, animated bool, p Palette) *Theme {
	fg := lipgloss.NewStyle().Foreground
	t := &Theme{
		Name:        name,
		Description: description,
		Animated:    animated,
		Palette:     p,
		styles: map[output.Style]lipgloss.Style{
			output.Plain:     fg(p.Foreground),
			output.Directory: fg(p.Directory).Bold(true),
			output.Error:     fg(p.Error),
			output.Info:      fg(p.Info),
			output.Success:   fg(p.Success),
			output.Warning:   fg(p.Warning),
			output.Accent:    fg(p.Accent),
			output.Muted:     fg(p.Muted),
			output.Heading:   fg(p.Accent).Bold(true),
			output.Echo:      fg(p.Prompt),
		},
	}
	return t
}

var themes = map[string]*Theme{
	"default": newTheme("default", "Classic dark terminal", false, Palette{
		Foreground: "#d4d4d4",
		Muted:      "#808080",
		Directory:  "#569cd6",
		Error:      "#f14c4c",
		Info:       "#29b8db",
		Success:    "#23d18b",
		Warning:    "#f5f543",
		Accent:     "#bc3fbc",
		Prompt:     "#23d18b",
		Scrollbar:  "#5a5a5a",
	}),
	"matrix": newTheme("matrix", "Green phosphor on black", false, Palette{
		Foreground: "#00ff41",
		Muted:      "#008f11",
		Directory:  "#7dff9a",
		Error:      "#ff3b3b",
		Info:       "#00d836",
		Success:    "#00ff41",
		Warning:    "#d4ff00",
		Accent:     "#39ff14",
		Prompt:     "#00ff41",
		Scrollbar:  "#003b00",
	}),
	"dracula": newTheme("dracula", "Dark theme with vivid pastels", false, Palette{
		Foreground: "#f8f8f2",
		Muted:      "#6272a4",
		Directory:  "#bd93f9",
		Error:      "#ff5555",
		Info:       "#8be9fd",
		Success:    "#50fa7b",
		Warning:    "#f1fa8c",
		Accent:     "#ff79c6",
		Prompt:     "#50fa7b",
		Scrollbar:  "#44475a",
	}),
	"alien": newTheme("alien", "Amber ship console, animated output", true, Palette{
		Foreground: "#ffb000",
		Muted:      "#8a5a00",
		Directory:  "#ffd27f",
		Error:      "#ff4500",
		Info:       "#ffcc66",
		Success:    "#ffe08a",
		Warning:    "#ff8c00",
		Accent:     "#ffa500",
		Prompt:     "#ffb000",
		Scrollbar:  "#4d3500",
	}),
}

// Get returns the named theme.
func Get(name string) (*Theme, bool) {
	t, ok := themes[name]
	return t, ok
}

// MustGet returns the named theme, falling back to the default one.
func MustGet(name string) *Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["default"]
}

// Names lists theme names, sorted.
func Names() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Title is the display form of the theme name, e.g. "Dracula".
func (t *Theme) Title() string {
	return cases.Title(language.English).String(t.Name)
}

// Style returns the lipgloss style for s.
func (t *Theme) Style(s output.Style) lipgloss.Style {
	if st, ok := t.styles[s]; ok {
		return st
	}
	return t.styles[output.Plain]
}

// Render styles a single line.
func (t *Theme) Render(l output.Line) string {
	if l.Text == "" {
		return ""
	}
	if len(l.Segments) == 0 {
		return t.Style(l.Style).Render(l.Text)
	}
	var b strings.Builder
	for _, s := range l.Segments {
		if s.Text != "" {
			b.WriteString(t.Style(s.Style).Render(s.Text))
		}
	}
	return b.String()
}

// Prompt is the style used for the input prompt.
func (t *Theme) Prompt() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Palette.Prompt).Bold(true)
}
