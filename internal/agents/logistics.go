package agents

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"supply-sentinel/internal/models"
	"supply-sentinel/internal/store"
)

// LogisticsAgent checks for active shipments from a supplier and tags
// delayed ones.
type LogisticsAgent struct {
	store  store.DataStore
	logger zerolog.Logger
}

// NewLogisticsAgent creates a new logistics agent.
func NewLogisticsAgent(dataStore store.DataStore, logger zerolog.Logger) *LogisticsAgent {
	return &LogisticsAgent{store: dataStore, logger: logger}
}

// Collect builds the logistics signal for one supplier. No active
// shipment yields a nil signal. When several shipments are active the
// first one is reported.
func (a *LogisticsAgent) Collect(ctx context.Context, supplierID int64) (*models.LogisticsSignal, error) {
	shipments, err := a.store.GetActiveShipments(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("loading shipments for supplier %d: %w", supplierID, err)
	}
	if len(shipments) == 0 {
		return nil, nil
	}

	shipment := shipments[0]
	a.logger.Debug().Int64("supplier_id", supplierID).Str("shipment", shipment.ID).Msg("Found active shipment")

	return &models.LogisticsSignal{
		ShipmentID: shipment.ID,
		Status:     shipment.Status,
		RouteRisk:  shipment.RouteRiskLevel,
		Delayed:    shipment.Status == models.ShipmentDelayed,
		Statement: fmt.Sprintf("LOGISTICS ALERT: Shipment '%s' is currently '%s' on a '%s' risk route.",
			shipment.ID, shipment.Status, shipment.RouteRiskLevel),
	}, nil
}
