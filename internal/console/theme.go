package console

import "github.com/charmbracelet/lipgloss"

// Theme is a named colour palette for progress output.
type Theme struct {
	Name string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string
}

// styles are the lipgloss styles a Printer applies, bound to its renderer.
type styles struct {
	heading lipgloss.Style
	rule    lipgloss.Style
	text    lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
	create  lipgloss.Style
	warning lipgloss.Style
	danger  lipgloss.Style
}

func (t Theme) styles(r *lipgloss.Renderer) styles {
	return styles{
		heading: r.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),
		rule: r.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),
		text: r.NewStyle().
			Foreground(lipgloss.Color(t.Text)),
		muted: r.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),
		success: r.NewStyle().
			Foreground(lipgloss.Color(t.Success)),
		create: r.NewStyle().
			Foreground(lipgloss.Color(t.Info)),
		warning: r.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),
		danger: r.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),
	}
}

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

// GetTheme returns a theme by name, falling back to Nightfox.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return nightfoxTheme()
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return append([]string(nil), themeOrder...)
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name:    "Nightfox",
		Text:    "#cdcecf", // fg1
		Muted:   "#738091", // comment
		Faint:   "#71839b", // fg3
		Accent:  "#719cd6", // blue
		Success: "#81b29a", // green
		Warning: "#dbc074", // yellow
		Danger:  "#c94f6d", // red
		Info:    "#63cdcf", // cyan
	}
}

func kanagawaTheme() Theme {
	// Kanagawa palette: https://github.com/rebelot/kanagawa.nvim
	return Theme{
		Name:    "Kanagawa",
		Text:    "#DCD7BA", // fujiWhite
		Muted:   "#C8C093", // oldWhite
		Faint:   "#727169", // fujiGray
		Accent:  "#7E9CD8", // crystalBlue
		Success: "#98BB6C", // springGreen
		Warning: "#E6C384", // carpYellow
		Danger:  "#E46876", // waveRed
		Info:    "#7FB4CA", // springBlue
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name:    "Slate",
		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500
		Info:    "#06b6d4", // cyan-500
	}
}
