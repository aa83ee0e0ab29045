package models

import "time"

// Priority represents an alert priority tier, strictly ordered
// CRITICAL > HIGH > MEDIUM > LOW.
type Priority string

const (
	PriorityCritical Priority = "CRITICAL"
	PriorityHigh     Priority = "HIGH"
	PriorityMedium   Priority = "MEDIUM"
	PriorityLow      Priority = "LOW"
)

// Badge returns the emoji-prefixed label used in alert text.
func (p Priority) Badge() string {
	switch p {
	case PriorityCritical:
		return "🔴 CRITICAL"
	case PriorityHigh:
		return "🟠 HIGH"
	case PriorityMedium:
		return "🟡 MEDIUM"
	default:
		return "🟢 LOW"
	}
}

// Rank returns a numeric rank for ordering comparisons (higher = more severe).
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 3
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}

// ScoredAlert is the aggregator's ephemeral output for one at-risk
// supplier: final score, priority tier, and the rendered alert text.
// It is created once per supplier per analysis run and not persisted
// by the core itself.
type ScoredAlert struct {
	Supplier   Supplier
	FinalScore float64
	Priority   Priority
	Text       string
}

// AlertRecord is the persisted form of an alert, written by the
// scheduled analysis path.
type AlertRecord struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	SupplierName string    `json:"supplier_name"`
	Priority     Priority  `json:"priority"`
	Text         string    `json:"alert_text"`
}
