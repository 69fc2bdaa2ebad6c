package model

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// recordValidate is shared by all callers; validator.Validate caches struct
// metadata and is safe for concurrent use.
var recordValidate *validator.Validate

func init() {
	recordValidate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their json names.
	recordValidate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	if err := recordValidate.RegisterValidation("finite", validateFinite); err != nil {
		panic(fmt.Sprintf("register finite validator: %v", err))
	}
}

// validateFinite rejects NaN and infinities, which slip past numeric range tags.
func validateFinite(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		v := fl.Field().Float()
		return !math.IsNaN(v) && !math.IsInf(v, 0)
	default:
		return true
	}
}

// Validate checks every field against its declared domain. The first
// violation is returned as an *InvalidInputError.
func (r MetricRecord) Validate() error {
	err := recordValidate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return NewInvalidInput(r.Year, fe.Field(), describe(fe))
	}
	return NewInvalidInput(r.Year, "record", err.Error())
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "finite":
		return "must be a finite number"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag()
	}
}

// NewMetricRecord converts a boundary record into a validated MetricRecord.
// Year, market_intelligence_index, time_to_market_weeks and
// decentralization_index are required; the informational fields default to 0.
func NewMetricRecord(raw RawRecord) (MetricRecord, error) {
	if raw.Year == nil {
		return MetricRecord{}, NewInvalidInput(0, "year", "missing")
	}
	year := *raw.Year
	switch {
	case raw.MarketIntelligenceIndex == nil:
		return MetricRecord{}, NewInvalidInput(year, "market_intelligence_index", "missing")
	case raw.TimeToMarketWeeks == nil:
		return MetricRecord{}, NewInvalidInput(year, "time_to_market_weeks", "missing")
	case raw.DecentralizationIndex == nil:
		return MetricRecord{}, NewInvalidInput(year, "decentralization_index", "missing")
	}

	r := MetricRecord{
		Year:                      year,
		MarketIntelligenceIndex:   *raw.MarketIntelligenceIndex,
		EmergingTechDetectionDays: floatOr(raw.EmergingTechDetectionDays),
		TimeToMarketWeeks:         *raw.TimeToMarketWeeks,
		CoCreationRevenuePercent:  floatOr(raw.CoCreationRevenuePercent),
		PeripheryDeploymentDays:   floatOr(raw.PeripheryDeploymentDays),
		DecentralizationIndex:     *raw.DecentralizationIndex,
		BlueArmyPlans:             intOr(raw.BlueArmyPlans),
		DeroutinizationIndex:      floatOr(raw.DeroutinizationIndex),
		InternationalTalent:       intOr(raw.InternationalTalent),
		RnDPercentRevenue:         floatOr(raw.RnDPercentRevenue),
		CompetitorRnDPercent:      floatOr(raw.CompetitorRnDPercent),
	}
	if err := r.Validate(); err != nil {
		return MetricRecord{}, err
	}
	return r, nil
}

func floatOr(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func intOr(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
