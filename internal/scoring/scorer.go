// Package scoring combines per-supplier risk signals into a final score,
// a priority tier, and a formatted alert.
package scoring

import (
	"fmt"
	"strings"

	"supply-sentinel/internal/models"
)

// Bonus points added on top of the supplier's base risk score. Each
// signal only ever adds a non-negative bonus, so the final score is
// monotonically non-decreasing in the number of firing signals.
const (
	newsHighImpactBonus   = 5
	newsMediumImpactBonus = 2
	demandSpikeBonus      = 5
	demandModerateBonus   = 2
	shipmentDelayedBonus  = 3

	majorSpikePercent    = 25
	moderateSpikePercent = 10
)

// PriorityFor maps a final score onto a priority tier. Thresholds are
// strict: a score of exactly 15 is HIGH, not CRITICAL.
func PriorityFor(score float64) models.Priority {
	switch {
	case score > 15:
		return models.PriorityCritical
	case score > 10:
		return models.PriorityHigh
	case score > 5:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

// NewsBonus returns the score contribution of a news risk signal.
func NewsBonus(news *models.NewsRiskSignal) float64 {
	if news == nil || news.Failed() {
		return 0
	}
	switch models.NormalizeCategory(string(news.Category)) {
	case models.CategoryLogistics, models.CategoryNaturalDisaster, models.CategoryGeopolitical:
		return newsHighImpactBonus
	case models.CategoryFinancial:
		return newsMediumImpactBonus
	default:
		return 0
	}
}

// DemandBonus returns the score contribution of a demand signal.
func DemandBonus(demand *models.DemandSignal) float64 {
	if demand == nil || !demand.HasForecast || demand.Direction != models.TrendIncrease {
		return 0
	}
	switch {
	case demand.PercentChange > majorSpikePercent:
		return demandSpikeBonus
	case demand.PercentChange > moderateSpikePercent:
		return demandModerateBonus
	default:
		return 0
	}
}

// LogisticsBonus returns the score contribution of a logistics signal.
func LogisticsBonus(logistics *models.LogisticsSignal) float64 {
	if logistics != nil && logistics.Delayed {
		return shipmentDelayedBonus
	}
	return 0
}

// Score aggregates the three signals for one supplier into a ScoredAlert.
// Missing signals are valid and contribute zero; a failed news signal
// surfaces its reason in the News Summary line under category "Error".
func Score(sup models.Supplier, news *models.NewsRiskSignal, demand *models.DemandSignal, logistics *models.LogisticsSignal) models.ScoredAlert {
	finalScore := sup.RiskScore

	var (
		category = models.CategoryError
		summary  string
		entities []string
	)
	switch {
	case news == nil:
		summary = "No news data available."
	case news.Failed():
		summary = news.Err
	default:
		category = models.NormalizeCategory(string(news.Category))
		summary = news.Summary
		if summary == "" {
			summary = "N/A"
		}
		entities = news.Entities
		finalScore += NewsBonus(news)
	}

	finalScore += DemandBonus(demand)
	finalScore += LogisticsBonus(logistics)

	priority := PriorityFor(finalScore)

	var b strings.Builder
	fmt.Fprintf(&b, "%s ALERT FOR: %s\n", priority.Badge(), strings.ToUpper(sup.Name))
	fmt.Fprintf(&b, "   - Supplier Status: %s (Internal Risk Score: %.1f)\n", sup.Status, sup.RiskScore)
	if demand != nil && demand.Statement != "" {
		fmt.Fprintf(&b, "   - %s\n", demand.Statement)
	}
	if logistics != nil && logistics.Statement != "" {
		fmt.Fprintf(&b, "   - %s\n", logistics.Statement)
	}
	fmt.Fprintf(&b, "   - External Risk Category: %s\n", category)
	fmt.Fprintf(&b, "   - Key Entities: %s\n", strings.Join(entities, ", "))
	fmt.Fprintf(&b, "   - News Summary: %s\n", summary)

	return models.ScoredAlert{
		Supplier:   sup,
		FinalScore: finalScore,
		Priority:   priority,
		Text:       b.String(),
	}
}
