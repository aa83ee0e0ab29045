package agents

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"supply-sentinel/internal/models"
	"supply-sentinel/internal/store"
)

// DefaultRiskThreshold flags any supplier whose base score reaches it.
const DefaultRiskThreshold = 7.0

// SupplierAgent identifies at-risk suppliers from the supplier source.
type SupplierAgent struct {
	store     store.DataStore
	threshold float64
	logger    zerolog.Logger
}

// NewSupplierAgent creates a new supplier agent. A non-positive
// threshold falls back to the default.
func NewSupplierAgent(dataStore store.DataStore, threshold float64, logger zerolog.Logger) *SupplierAgent {
	if threshold <= 0 {
		threshold = DefaultRiskThreshold
	}
	return &SupplierAgent{
		store:     dataStore,
		threshold: threshold,
		logger:    logger,
	}
}

// FilterAtRisk returns the suppliers whose status is abnormal or whose
// base risk score reaches the threshold. Pure function of its input;
// the returned slice preserves input order.
func FilterAtRisk(suppliers []models.Supplier, threshold float64) []models.Supplier {
	atRisk := make([]models.Supplier, 0, len(suppliers))
	for _, sup := range suppliers {
		if sup.AtRisk(threshold) {
			atRisk = append(atRisk, sup)
		}
	}
	return atRisk
}

// FindAtRisk returns the at-risk subset of all suppliers. An empty
// result is valid; only total source unavailability is an error.
func (a *SupplierAgent) FindAtRisk(ctx context.Context) ([]models.Supplier, error) {
	suppliers, err := a.store.ListSuppliers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing suppliers: %w", err)
	}

	atRisk := FilterAtRisk(suppliers, a.threshold)
	if len(atRisk) > 0 {
		a.logger.Info().Int("count", len(atRisk)).Msg("Found suppliers matching risk criteria")
	} else {
		a.logger.Info().Msg("No suppliers are currently at high risk")
	}
	return atRisk, nil
}
