package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/okian/radar/internal/domain/model"
)

// column binds a CSV header to a RawRecord field.
type column struct {
	name   string
	set    func(r *model.RawRecord, cell string) error
	format func(m model.MetricRecord) string
}

func floatColumn(name string, field func(r *model.RawRecord) **float64, value func(m model.MetricRecord) float64) column {
	return column{
		name: name,
		set: func(r *model.RawRecord, cell string) error {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return errors.New("not a number: " + strconv.Quote(cell))
			}
			*field(r) = &v
			return nil
		},
		format: func(m model.MetricRecord) string {
			return strconv.FormatFloat(value(m), 'f', -1, 64)
		},
	}
}

func intColumn(name string, field func(r *model.RawRecord) **int, value func(m model.MetricRecord) int) column {
	return column{
		name: name,
		set: func(r *model.RawRecord, cell string) error {
			v, err := strconv.Atoi(cell)
			if err != nil {
				return errors.New("not an integer: " + strconv.Quote(cell))
			}
			*field(r) = &v
			return nil
		},
		format: func(m model.MetricRecord) string {
			return strconv.Itoa(value(m))
		},
	}
}

// columns lists the CSV layout in output order.
var columns = []column{
	intColumn("year",
		func(r *model.RawRecord) **int { return &r.Year },
		func(m model.MetricRecord) int { return m.Year }),
	floatColumn("market_intelligence_index",
		func(r *model.RawRecord) **float64 { return &r.MarketIntelligenceIndex },
		func(m model.MetricRecord) float64 { return m.MarketIntelligenceIndex }),
	floatColumn("emerging_tech_detection_days",
		func(r *model.RawRecord) **float64 { return &r.EmergingTechDetectionDays },
		func(m model.MetricRecord) float64 { return m.EmergingTechDetectionDays }),
	floatColumn("time_to_market_weeks",
		func(r *model.RawRecord) **float64 { return &r.TimeToMarketWeeks },
		func(m model.MetricRecord) float64 { return m.TimeToMarketWeeks }),
	floatColumn("co_creation_revenue_percent",
		func(r *model.RawRecord) **float64 { return &r.CoCreationRevenuePercent },
		func(m model.MetricRecord) float64 { return m.CoCreationRevenuePercent }),
	floatColumn("periphery_deployment_days",
		func(r *model.RawRecord) **float64 { return &r.PeripheryDeploymentDays },
		func(m model.MetricRecord) float64 { return m.PeripheryDeploymentDays }),
	floatColumn("decentralization_index",
		func(r *model.RawRecord) **float64 { return &r.DecentralizationIndex },
		func(m model.MetricRecord) float64 { return m.DecentralizationIndex }),
	intColumn("blue_army_plans",
		func(r *model.RawRecord) **int { return &r.BlueArmyPlans },
		func(m model.MetricRecord) int { return m.BlueArmyPlans }),
	floatColumn("deroutinization_index",
		func(r *model.RawRecord) **float64 { return &r.DeroutinizationIndex },
		func(m model.MetricRecord) float64 { return m.DeroutinizationIndex }),
	intColumn("international_talent",
		func(r *model.RawRecord) **int { return &r.InternationalTalent },
		func(m model.MetricRecord) int { return m.InternationalTalent }),
	floatColumn("rnd_percent_revenue",
		func(r *model.RawRecord) **float64 { return &r.RnDPercentRevenue },
		func(m model.MetricRecord) float64 { return m.RnDPercentRevenue }),
	floatColumn("competitor_rnd_percent",
		func(r *model.RawRecord) **float64 { return &r.CompetitorRnDPercent },
		func(m model.MetricRecord) float64 { return m.CompetitorRnDPercent }),
}

// decodeCSV reads a header row followed by data rows. Unknown columns are
// skipped; empty cells count as missing.
func decodeCSV(r io.Reader) ([]rawRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %w", ErrDecode, err)
	}

	byName := make(map[string]column, len(columns))
	for _, c := range columns {
		byName[c.name] = c
	}
	mapping := make([]*column, len(headers))
	for i, h := range headers {
		if c, ok := byName[strings.ToLower(strings.TrimSpace(h))]; ok {
			mapping[i] = &c
		}
	}

	var rows []rawRow
	for {
		cells, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			rows = append(rows, rawRow{err: model.NewInvalidInput(0, "record", err.Error())})
			continue
		}
		rows = append(rows, parseCSVRow(mapping, cells))
	}
	return rows, nil
}

func parseCSVRow(mapping []*column, cells []string) rawRow {
	var raw model.RawRecord
	for i, cell := range cells {
		if i >= len(mapping) || mapping[i] == nil {
			continue
		}
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		if err := mapping[i].set(&raw, cell); err != nil {
			year := 0
			if raw.Year != nil {
				year = *raw.Year
			}
			return rawRow{err: model.NewInvalidInput(year, mapping[i].name, err.Error())}
		}
	}
	return rawRow{raw: raw}
}

func encodeCSV(w io.Writer, records []model.MetricRecord) error {
	cw := csv.NewWriter(w)
	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = c.name
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}
	row := make([]string, len(columns))
	for _, m := range records {
		for i, c := range columns {
			row[i] = c.format(m)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("encode csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}
	return nil
}
