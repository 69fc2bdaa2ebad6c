// Package dashboard builds the presentation model of the strategic radar:
// a status banner, headline cards, three capability sections with their
// charts and commentary, and a prose summary for one selected year.
package dashboard

import (
	"errors"

	"github.com/okian/radar/internal/domain/model"
)

// ErrYearNotInSeries is returned when the selected year has no record.
var ErrYearNotInSeries = errors.New("year not in series")

// Color is a banner color keyed to the alignment status.
type Color string

const (
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorRed    Color = "red"
)

// Input is everything Render needs.
type Input struct {
	Records []model.MetricRecord
	Year    int
	Result  model.AlignmentResult
}

// Banner is the headline alignment block.
type Banner struct {
	Score  float64      `json:"score"`
	Status model.Status `json:"status"`
	Color  Color        `json:"color"`
	Label  string       `json:"label"`
}

// Card is a single headline metric for the selected year.
type Card struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

// Point is one year's value in a series.
type Point struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// Series is a named line or bar set drawn in one color.
type Series struct {
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	Dashed bool    `json:"dashed,omitempty"`
	Points []Point `json:"points"`
}

// ChartKind selects how a chart is drawn.
type ChartKind string

const (
	ChartLine ChartKind = "line"
	ChartBar  ChartKind = "bar"
)

// Chart is a titled set of series over all years.
type Chart struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Kind   ChartKind `json:"kind"`
	XAxis  string    `json:"x_axis"`
	YAxis  string    `json:"y_axis"`
	Series []Series  `json:"series"`
}

// Section groups the charts of one dynamic capability.
type Section struct {
	Key         string  `json:"key"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Charts      []Chart `json:"charts"`
	Commentary  string  `json:"commentary"`
}

// View is the full dashboard for one year.
type View struct {
	Year     int       `json:"year"`
	Years    []int     `json:"years"`
	Banner   Banner    `json:"banner"`
	Cards    []Card    `json:"cards"`
	Sections []Section `json:"sections"`
	Extra    []Chart   `json:"extra"`
	Summary  string    `json:"summary"`
}
