package dashboard

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/okian/radar/internal/domain/alignment"
	"github.com/okian/radar/internal/domain/model"
)

// highIntelligence is the market intelligence level above which slow
// detection is called out.
const highIntelligence = 70

// Series colors.
const (
	colorRoyalBlue = "#4169E1"
	colorOrange    = "#FFA500"
	colorGreen     = "#008000"
	colorPurple    = "#800080"
	colorBlue      = "#0000FF"
	colorGray      = "#808080"
	colorIndigo    = "#4F46E5"
	colorEmerald   = "#10B981"
	colorAmber     = "#F59E0B"
)

const (
	sensingCommentary = "Prioritise which weak signals feed the R&D roadmap and emerging technology bets."
	slowDetectionNote = " Market intelligence is high but emerging technology detection is slower than usual: " +
		"push evaluation accelerators and rapid prototyping."
	seizingCommentary = "Shorter time-to-market and a growing share of co-created revenue show execution moving " +
		"toward agile, customer-driven delivery. Watch whether the gains hold as alliances with startups " +
		"and innovation centres are added."
	configuringCommentary = "Decentralised governance and fewer bottlenecks need learning mechanisms and rewards " +
		"for collaborative innovation. Track de-routinization maturity and the digital literacy needed to " +
		"challenge algorithmic recommendations."
)

// Render builds the dashboard view for in.Year. It does not compute the
// alignment itself; in.Result is shown as given.
func Render(in Input) (View, error) {
	records := make([]model.MetricRecord, len(in.Records))
	copy(records, in.Records)
	sort.Slice(records, func(i, j int) bool { return records[i].Year < records[j].Year })

	idx := sort.Search(len(records), func(i int) bool { return records[i].Year >= in.Year })
	if idx == len(records) || records[idx].Year != in.Year {
		return View{}, fmt.Errorf("%w: %d", ErrYearNotInSeries, in.Year)
	}
	cur := records[idx]

	years := make([]int, len(records))
	for i, r := range records {
		years[i] = r.Year
	}

	return View{
		Year:   in.Year,
		Years:  years,
		Banner: NewBanner(in.Result),
		Cards:  cards(cur, in.Result),
		Sections: []Section{
			sensingSection(records, cur),
			seizingSection(records),
			configuringSection(records),
		},
		Extra:   extraCharts(records),
		Summary: summary(cur, in.Result),
	}, nil
}

// NewBanner maps an alignment result to its banner.
func NewBanner(res model.AlignmentResult) Banner {
	b := Banner{Score: alignment.Round1(res.Score), Status: res.Status}
	switch res.Status {
	case model.StatusStrong:
		b.Color, b.Label = ColorGreen, "Strong alignment"
	case model.StatusModerate:
		b.Color, b.Label = ColorYellow, "Moderate alignment"
	default:
		b.Color, b.Label = ColorRed, "Alignment at risk"
	}
	return b
}

func cards(r model.MetricRecord, res model.AlignmentResult) []Card {
	return []Card{
		{Key: "market_intelligence_index", Label: "Market intelligence", Value: alignment.Round1(r.MarketIntelligenceIndex)},
		{Key: "emerging_tech_detection_days", Label: "Emerging tech detection", Value: alignment.Round1(r.EmergingTechDetectionDays), Unit: "days"},
		{Key: "time_to_market_weeks", Label: "Time-to-market", Value: alignment.Round1(r.TimeToMarketWeeks), Unit: "weeks"},
		{Key: "co_creation_revenue_percent", Label: "Co-creation revenue", Value: alignment.Round1(r.CoCreationRevenuePercent), Unit: "%"},
		{Key: "decentralization_index", Label: "Decentralization", Value: alignment.Round1(r.DecentralizationIndex)},
		{Key: "rnd_percent_revenue", Label: "R&D / revenue", Value: alignment.Round1(r.RnDPercentRevenue), Unit: "%"},
		{Key: "alignment_index", Label: "Alignment index", Value: alignment.Round1(res.Score)},
	}
}

func sensingSection(records []model.MetricRecord, cur model.MetricRecord) Section {
	commentary := sensingCommentary
	if slowDetection(records, cur) {
		commentary += slowDetectionNote
	}
	return Section{
		Key:         "sensing",
		Title:       "Sensing",
		Description: "Weak-signal monitoring to avoid misalignment and steer R&D.",
		Charts: []Chart{{
			ID:    "sensing_trends",
			Title: "Market intelligence vs emerging technology detection time",
			Kind:  ChartLine,
			XAxis: "Year",
			YAxis: "Value / days",
			Series: []Series{
				series("Market intelligence index", colorRoyalBlue, records, func(r model.MetricRecord) float64 { return r.MarketIntelligenceIndex }),
				series("Emerging tech detection (days)", colorOrange, records, func(r model.MetricRecord) float64 { return r.EmergingTechDetectionDays }),
			},
		}},
		Commentary: commentary,
	}
}

func seizingSection(records []model.MetricRecord) Section {
	return Section{
		Key:         "seizing",
		Title:       "Seizing",
		Description: "Capacity to turn opportunities into commercial solutions and deploy in new markets.",
		Charts: []Chart{
			{
				ID: "time_to_market", Title: "Time-to-market (weeks)", Kind: ChartBar, XAxis: "Year", YAxis: "Weeks",
				Series: []Series{series("Time-to-market", colorIndigo, records, func(r model.MetricRecord) float64 { return r.TimeToMarketWeeks })},
			},
			{
				ID: "co_creation", Title: "Revenue share from co-creation", Kind: ChartBar, XAxis: "Year", YAxis: "% of revenue",
				Series: []Series{series("Co-creation", colorEmerald, records, func(r model.MetricRecord) float64 { return r.CoCreationRevenuePercent })},
			},
			{
				ID: "periphery_deployment", Title: "Days to establish presence in a new market", Kind: ChartLine, XAxis: "Year", YAxis: "Days",
				Series: []Series{series("Periphery deployment", colorAmber, records, func(r model.MetricRecord) float64 { return r.PeripheryDeploymentDays })},
			},
		},
		Commentary: seizingCommentary,
	}
}

func configuringSection(records []model.MetricRecord) Section {
	return Section{
		Key:         "configuring",
		Title:       "Configuring",
		Description: "Organisational transformation toward decentralisation while keeping strategic coherence.",
		Charts: []Chart{
			{
				ID: "decentralization", Title: "Decentralization and de-routinization over time", Kind: ChartLine, XAxis: "Year", YAxis: "Index",
				Series: []Series{
					series("Decentralization", colorGreen, records, func(r model.MetricRecord) float64 { return r.DecentralizationIndex }),
					series("De-routinization", colorPurple, records, func(r model.MetricRecord) float64 { return r.DeroutinizationIndex }),
				},
			},
			{
				ID: "blue_army", Title: "Strategic plans adjusted by the Blue Army", Kind: ChartBar, XAxis: "Year", YAxis: "Plans",
				Series: []Series{series("Blue Army plans", colorIndigo, records, func(r model.MetricRecord) float64 { return float64(r.BlueArmyPlans) })},
			},
		},
		Commentary: configuringCommentary,
	}
}

func extraCharts(records []model.MetricRecord) []Chart {
	competitor := series("Competitors", colorGray, records, func(r model.MetricRecord) float64 { return r.CompetitorRnDPercent })
	competitor.Dashed = true
	return []Chart{
		{
			ID: "international_talent", Title: "International talent", Kind: ChartBar, XAxis: "Year", YAxis: "People",
			Series: []Series{series("International talent", colorIndigo, records, func(r model.MetricRecord) float64 { return float64(r.InternationalTalent) })},
		},
		{
			ID: "rnd_investment", Title: "R&D investment as % of revenue", Kind: ChartLine, XAxis: "Year", YAxis: "R&D / revenue (%)",
			Series: []Series{
				series("R&D % of revenue", colorBlue, records, func(r model.MetricRecord) float64 { return r.RnDPercentRevenue }),
				competitor,
			},
		},
	}
}

func series(name, color string, records []model.MetricRecord, value func(model.MetricRecord) float64) Series {
	points := make([]Point, len(records))
	for i, r := range records {
		points[i] = Point{Year: r.Year, Value: roundTo2(value(r))}
	}
	return Series{Name: name, Color: color, Points: points}
}

// slowDetection reports whether cur pairs high market intelligence with a
// detection time above the series median.
func slowDetection(records []model.MetricRecord, cur model.MetricRecord) bool {
	if cur.MarketIntelligenceIndex < highIntelligence {
		return false
	}
	days := make([]float64, len(records))
	for i, r := range records {
		days[i] = r.EmergingTechDetectionDays
	}
	return cur.EmergingTechDetectionDays > median(days)
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	s := make([]float64, len(values))
	copy(s, values)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return (s[mid-1] + s[mid]) / 2
}

func summary(r model.MetricRecord, res model.AlignmentResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "In %d the alignment index is %.1f (%s). ", r.Year, alignment.Round1(res.Score), res.Status)
	fmt.Fprintf(&b, "Sensing: market intelligence %.1f with emerging technologies detected in %.1f days. ",
		r.MarketIntelligenceIndex, r.EmergingTechDetectionDays)
	fmt.Fprintf(&b, "Seizing: time-to-market %.1f weeks and %.1f%% of revenue from co-creation. ",
		r.TimeToMarketWeeks, r.CoCreationRevenuePercent)
	fmt.Fprintf(&b, "Configuring: decentralization %.1f, de-routinization %.1f and %d Blue Army plans adjusted.",
		r.DecentralizationIndex, r.DeroutinizationIndex, r.BlueArmyPlans)
	return b.String()
}

// roundTo2 leaves non-finite and very large values as they are; scaling
// them would overflow.
func roundTo2(x float64) float64 {
	if math.IsNaN(x) || math.Abs(x) >= 1e15 {
		return x
	}
	return math.Round(x*100) / 100
}
