package report

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/okian/radar/internal/domain/dashboard"
)

// Banner colors match the HTML dashboard.
var (
	colorGreen  = lipgloss.Color("#15803D")
	colorYellow = lipgloss.Color("#CA8A04")
	colorRed    = lipgloss.Color("#B91C1C")
	colorTitle  = lipgloss.Color("#2CD7C7")
	colorMuted  = lipgloss.Color("#6B7280")
	colorBorder = lipgloss.Color("#16858E")
)

type styles struct {
	title      lipgloss.Style
	muted      lipgloss.Style
	bold       lipgloss.Style
	card       lipgloss.Style
	section    lipgloss.Style
	commentary lipgloss.Style
	banner     map[dashboard.Color]lipgloss.Style
}

func newStyles(r *lipgloss.Renderer, noColor bool) styles {
	s := styles{
		title:      r.NewStyle().Bold(true),
		muted:      r.NewStyle(),
		bold:       r.NewStyle().Bold(true),
		card:       r.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		section:    r.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).PaddingLeft(1),
		commentary: r.NewStyle().Italic(true),
		banner:     map[dashboard.Color]lipgloss.Style{},
	}
	base := r.NewStyle().Bold(true).Padding(0, 2)
	if noColor {
		for _, c := range []dashboard.Color{dashboard.ColorGreen, dashboard.ColorYellow, dashboard.ColorRed} {
			s.banner[c] = base.Border(lipgloss.NormalBorder())
		}
		return s
	}
	s.title = s.title.Foreground(colorTitle)
	s.muted = s.muted.Foreground(colorMuted)
	s.card = s.card.BorderForeground(colorBorder)
	s.section = s.section.BorderForeground(colorBorder)
	white := lipgloss.Color("#FFFFFF")
	s.banner[dashboard.ColorGreen] = base.Foreground(white).Background(colorGreen)
	s.banner[dashboard.ColorYellow] = base.Foreground(white).Background(colorYellow)
	s.banner[dashboard.ColorRed] = base.Foreground(white).Background(colorRed)
	return s
}
