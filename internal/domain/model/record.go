// Package model contains domain models passed between layers.
package model

// MetricRecord holds one year of capability indicators.
// Only MarketIntelligenceIndex, TimeToMarketWeeks and DecentralizationIndex
// feed the alignment index; the rest are informational for the dashboard.
type MetricRecord struct {
	Year int `json:"year" yaml:"year" validate:"gt=0"`

	// Sensing
	MarketIntelligenceIndex   float64 `json:"market_intelligence_index" yaml:"market_intelligence_index" validate:"finite,gte=0,lte=100"`
	EmergingTechDetectionDays float64 `json:"emerging_tech_detection_days" yaml:"emerging_tech_detection_days" validate:"finite,gte=0"`

	// Seizing
	TimeToMarketWeeks        float64 `json:"time_to_market_weeks" yaml:"time_to_market_weeks" validate:"finite,gt=0"`
	CoCreationRevenuePercent float64 `json:"co_creation_revenue_percent" yaml:"co_creation_revenue_percent" validate:"finite,gte=0,lte=100"`
	PeripheryDeploymentDays  float64 `json:"periphery_deployment_days" yaml:"periphery_deployment_days" validate:"finite,gte=0"`

	// Configuring
	DecentralizationIndex float64 `json:"decentralization_index" yaml:"decentralization_index" validate:"finite,gte=0,lte=100"`
	BlueArmyPlans         int     `json:"blue_army_plans" yaml:"blue_army_plans" validate:"gte=0"`
	DeroutinizationIndex  float64 `json:"deroutinization_index" yaml:"deroutinization_index" validate:"finite,gte=0,lte=100"`

	// Context
	InternationalTalent  int     `json:"international_talent" yaml:"international_talent" validate:"gte=0"`
	RnDPercentRevenue    float64 `json:"rnd_percent_revenue" yaml:"rnd_percent_revenue" validate:"finite,gte=0,lte=100"`
	CompetitorRnDPercent float64 `json:"competitor_rnd_percent" yaml:"competitor_rnd_percent" validate:"finite,gte=0,lte=100"`
}

// RawRecord is the loosely typed shape accepted at the loading boundary.
// Nil pointers mark fields that were absent from the source.
type RawRecord struct {
	Year                      *int     `json:"year" yaml:"year"`
	MarketIntelligenceIndex   *float64 `json:"market_intelligence_index" yaml:"market_intelligence_index"`
	EmergingTechDetectionDays *float64 `json:"emerging_tech_detection_days" yaml:"emerging_tech_detection_days"`
	TimeToMarketWeeks         *float64 `json:"time_to_market_weeks" yaml:"time_to_market_weeks"`
	CoCreationRevenuePercent  *float64 `json:"co_creation_revenue_percent" yaml:"co_creation_revenue_percent"`
	PeripheryDeploymentDays   *float64 `json:"periphery_deployment_days" yaml:"periphery_deployment_days"`
	DecentralizationIndex     *float64 `json:"decentralization_index" yaml:"decentralization_index"`
	BlueArmyPlans             *int     `json:"blue_army_plans" yaml:"blue_army_plans"`
	DeroutinizationIndex      *float64 `json:"deroutinization_index" yaml:"deroutinization_index"`
	InternationalTalent       *int     `json:"international_talent" yaml:"international_talent"`
	RnDPercentRevenue         *float64 `json:"rnd_percent_revenue" yaml:"rnd_percent_revenue"`
	CompetitorRnDPercent      *float64 `json:"competitor_rnd_percent" yaml:"competitor_rnd_percent"`
}

// Raw converts a record back into its boundary shape with every field set.
func (r MetricRecord) Raw() RawRecord {
	return RawRecord{
		Year:                      &r.Year,
		MarketIntelligenceIndex:   &r.MarketIntelligenceIndex,
		EmergingTechDetectionDays: &r.EmergingTechDetectionDays,
		TimeToMarketWeeks:         &r.TimeToMarketWeeks,
		CoCreationRevenuePercent:  &r.CoCreationRevenuePercent,
		PeripheryDeploymentDays:   &r.PeripheryDeploymentDays,
		DecentralizationIndex:     &r.DecentralizationIndex,
		BlueArmyPlans:             &r.BlueArmyPlans,
		DeroutinizationIndex:      &r.DeroutinizationIndex,
		InternationalTalent:       &r.InternationalTalent,
		RnDPercentRevenue:         &r.RnDPercentRevenue,
		CompetitorRnDPercent:      &r.CompetitorRnDPercent,
	}
}

// AlignmentResult is the derived score and its classification.
type AlignmentResult struct {
	Score  float64 `json:"score"`
	Status Status  `json:"status"`
}
