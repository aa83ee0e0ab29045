// Package agents provides the signal collectors and the analysis
// orchestrator for the supply chain sentinel.
package agents

import (
	"context"

	"supply-sentinel/internal/models"
)

// Credentials are the model-service credentials supplied by the caller
// for a single analysis run. They are passed through per invocation and
// never held as ambient state.
type Credentials struct {
	APIKey    string
	ProjectID string
}

// Empty reports whether no credentials were supplied.
func (c Credentials) Empty() bool {
	return c.APIKey == "" && c.ProjectID == ""
}

// DemandCollector produces the demand forecast signal for one supplier.
// A nil signal with a nil error means no data, which is a valid state.
type DemandCollector interface {
	Collect(ctx context.Context, supplierID int64) (*models.DemandSignal, error)
}

// LogisticsCollector produces the logistics signal for one supplier.
// A nil signal with a nil error means no active shipment.
type LogisticsCollector interface {
	Collect(ctx context.Context, supplierID int64) (*models.LogisticsSignal, error)
}

// NewsCollector produces the news risk signal for a topic and country.
// Failures are folded into the signal's error variant, so the returned
// signal is never nil.
type NewsCollector interface {
	Collect(ctx context.Context, topic, countryCode string, creds Credentials) *models.NewsRiskSignal
}

// Notifier receives generated alerts and collector errors. All methods
// are advisory; the orchestrator ignores notifier failures.
type Notifier interface {
	SendAlert(ctx context.Context, alert models.ScoredAlert) error
	SendError(ctx context.Context, err error, context string) error
}
