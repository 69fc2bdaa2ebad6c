// Package report renders a dashboard view for the terminal.
package report

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/okian/radar/internal/domain/dashboard"
)

// ErrNilWriter is returned when Write is given no destination.
var ErrNilWriter = errors.New("nil writer")

// sparkBlocks are the eight levels used for sparklines, lowest first.
var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// Option configures a Renderer.
type Option func(*Renderer)

// WithNoColor strips colors, leaving borders and emphasis.
func WithNoColor() Option {
	return func(r *Renderer) {
		r.noColor = true
	}
}

// WithWidth sets the wrap width for prose. Zero disables wrapping.
func WithWidth(width int) Option {
	return func(r *Renderer) {
		if width >= 0 {
			r.width = width
		}
	}
}

// Renderer turns a dashboard.View into styled text.
type Renderer struct {
	noColor bool
	width   int
}

// New creates a renderer with an 80 column wrap width.
func New(opts ...Option) *Renderer {
	r := &Renderer{width: 80}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Write renders v to w, detecting the color profile from w.
func (r *Renderer) Write(w io.Writer, v dashboard.View) error {
	if w == nil {
		return ErrNilWriter
	}
	out := r.render(lipgloss.NewRenderer(w), v)
	if _, err := io.WriteString(w, out+"\n"); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Render returns v as a string using the default renderer.
func (r *Renderer) Render(v dashboard.View) string {
	return r.render(lipgloss.DefaultRenderer(), v)
}

func (r *Renderer) render(lr *lipgloss.Renderer, v dashboard.View) string {
	st := newStyles(lr, r.noColor)
	blocks := []string{
		st.title.Render(fmt.Sprintf("Strategic Radar %d", v.Year)),
		r.banner(st, v.Banner),
		r.cards(st, v.Cards),
	}
	for _, sec := range v.Sections {
		blocks = append(blocks, r.section(st, sec, v.Year))
	}
	if len(v.Extra) > 0 {
		blocks = append(blocks, r.section(st, dashboard.Section{
			Title:  "Talent and investment",
			Charts: v.Extra,
		}, v.Year))
	}
	if v.Summary != "" {
		blocks = append(blocks, st.bold.Render("Summary")+"\n"+r.wrap(lr, v.Summary))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (r *Renderer) banner(st styles, b dashboard.Banner) string {
	style, ok := st.banner[b.Color]
	if !ok {
		style = st.bold
	}
	return style.Render(fmt.Sprintf("Alignment index %.1f  %s", b.Score, b.Label))
}

func (r *Renderer) cards(st styles, cards []dashboard.Card) string {
	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		value := fmt.Sprintf("%.1f", c.Value)
		if c.Unit != "" {
			value += " " + c.Unit
		}
		rendered = append(rendered, st.card.Render(st.muted.Render(c.Label)+"\n"+st.bold.Render(value)))
	}
	// Four cards per row keeps the block under 80 columns.
	var rows []string
	for i := 0; i < len(rendered); i += 4 {
		end := min(i+4, len(rendered))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (r *Renderer) section(st styles, sec dashboard.Section, year int) string {
	lines := []string{st.bold.Render(sec.Title)}
	if sec.Description != "" {
		lines = append(lines, st.muted.Render(sec.Description))
	}
	for _, ch := range sec.Charts {
		for _, s := range ch.Series {
			lines = append(lines, fmt.Sprintf("%-34s %s %s",
				truncate(ch.Title+": "+s.Name, 34), Sparkline(s.Points), latest(s.Points, year)))
		}
	}
	if sec.Commentary != "" {
		lines = append(lines, st.commentary.Render(sec.Commentary))
	}
	return st.section.Render(strings.Join(lines, "\n"))
}

func (r *Renderer) wrap(lr *lipgloss.Renderer, s string) string {
	if r.width == 0 {
		return s
	}
	return lr.NewStyle().Width(r.width).Render(s)
}

// Sparkline maps each point onto one of eight block heights scaled between
// the series minimum and maximum. A flat series renders at the lowest level.
func Sparkline(points []dashboard.Point) string {
	if len(points) == 0 {
		return ""
	}
	// The range covers finite values only. +Inf pins to the top block and
	// NaN or -Inf to the bottom one.
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			continue
		}
		lo = math.Min(lo, p.Value)
		hi = math.Max(hi, p.Value)
	}
	var b strings.Builder
	top := len(sparkBlocks) - 1
	for _, p := range points {
		idx := 0
		switch {
		case math.IsInf(p.Value, 1):
			idx = top
		case math.IsNaN(p.Value), math.IsInf(p.Value, -1):
		case hi > lo:
			// Halved operands keep the span finite near the float limits.
			span := hi/2 - lo/2
			idx = int(math.Round((p.Value/2 - lo/2) / span * float64(top)))
		}
		b.WriteRune(sparkBlocks[min(max(idx, 0), top)])
	}
	return b.String()
}

// latest formats the value for year, or the last point when year is absent.
func latest(points []dashboard.Point, year int) string {
	if len(points) == 0 {
		return ""
	}
	for _, p := range points {
		if p.Year == year {
			return fmt.Sprintf("%.1f", p.Value)
		}
	}
	return fmt.Sprintf("%.1f", points[len(points)-1].Value)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
