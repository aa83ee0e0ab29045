package models

// TrendDirection tags the direction of a demand forecast.
type TrendDirection string

const (
	TrendIncrease TrendDirection = "increase"
	TrendDecrease TrendDirection = "decrease"
)

// DemandSignal is the demand collector's output for one supplier.
// A nil *DemandSignal means the supplier has no linked product; a signal
// with HasForecast false carries only an informational statement (for
// example an insufficient-history note) and contributes no score.
type DemandSignal struct {
	ProductName   string
	HasForecast   bool
	PercentChange int // signed, as forecast vs latest actuals
	Direction     TrendDirection
	Statement     string
}

// LogisticsSignal is the logistics collector's output for one supplier.
// A nil *LogisticsSignal means no active shipment. Delayed is resolved
// from the shipment status at the collector boundary so the aggregator
// never inspects prose.
type LogisticsSignal struct {
	ShipmentID string
	Status     string
	RouteRisk  string
	Delayed    bool
	Statement  string
}

// RiskCategory classifies the dominant external risk found in news.
type RiskCategory string

const (
	CategoryLogistics       RiskCategory = "Logistics"
	CategoryFinancial       RiskCategory = "Financial"
	CategoryGeopolitical    RiskCategory = "Geopolitical"
	CategoryCybersecurity   RiskCategory = "Cybersecurity"
	CategoryNaturalDisaster RiskCategory = "Natural Disaster"
	CategoryOther           RiskCategory = "Other"
	CategoryError           RiskCategory = "Error"
)

// NormalizeCategory maps free-text category labels onto the known set,
// defaulting to Other for anything unrecognized.
func NormalizeCategory(raw string) RiskCategory {
	switch RiskCategory(raw) {
	case CategoryLogistics, CategoryFinancial, CategoryGeopolitical,
		CategoryCybersecurity, CategoryNaturalDisaster, CategoryOther:
		return RiskCategory(raw)
	default:
		return CategoryOther
	}
}

// NewsRiskSignal is the news collector's output for one (topic, country)
// pair. A failed fetch or classification is represented by Err rather
// than a Go error so one supplier's failure never aborts the batch.
type NewsRiskSignal struct {
	Err      string       `json:"error,omitempty"`
	Summary  string       `json:"summary"`
	Category RiskCategory `json:"risk_category"`
	Entities []string     `json:"key_entities"`
}

// Failed reports whether the signal carries an error instead of a result.
func (s *NewsRiskSignal) Failed() bool {
	return s != nil && s.Err != ""
}

// NewsError builds the error variant of a news risk signal.
func NewsError(reason string) *NewsRiskSignal {
	return &NewsRiskSignal{Err: reason}
}
