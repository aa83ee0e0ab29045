package agents

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"supply-sentinel/internal/models"
	"supply-sentinel/internal/store"
)

// DemandAgent forecasts near-term demand for a supplier's products from
// sales history and reports the projected change as a typed signal.
type DemandAgent struct {
	store            store.DataStore
	forecastWeeks    int
	minHistoryPoints int
	logger           zerolog.Logger
}

// NewDemandAgent creates a new demand forecast agent.
func NewDemandAgent(dataStore store.DataStore, forecastWeeks, minHistoryPoints int, logger zerolog.Logger) *DemandAgent {
	if forecastWeeks <= 0 {
		forecastWeeks = 4
	}
	if minHistoryPoints < 2 {
		minHistoryPoints = 10
	}
	return &DemandAgent{
		store:            dataStore,
		forecastWeeks:    forecastWeeks,
		minHistoryPoints: minHistoryPoints,
		logger:           logger,
	}
}

// Collect builds the demand signal for one supplier. A supplier without
// a linked product yields a nil signal; a product with too little sales
// history yields an informational signal without a forecast. The first
// linked product is the one forecast.
func (a *DemandAgent) Collect(ctx context.Context, supplierID int64) (*models.DemandSignal, error) {
	products, err := a.store.GetProductsBySupplier(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("loading products for supplier %d: %w", supplierID, err)
	}
	if len(products) == 0 {
		return nil, nil
	}

	product := products[0]
	history, err := a.store.GetSalesHistory(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("loading sales history for product %d: %w", product.ID, err)
	}
	if len(history) < a.minHistoryPoints {
		return &models.DemandSignal{
			ProductName: product.Name,
			HasForecast: false,
			Statement:   fmt.Sprintf("Insufficient sales history for %s.", product.Name),
		}, nil
	}

	current := history[len(history)-1].Units
	if current <= 0 {
		a.logger.Debug().Int64("product_id", product.ID).Msg("Latest sales are zero, skipping forecast")
		return nil, nil
	}

	a.logger.Debug().Str("product", product.Name).Msg("Forecasting demand")

	predicted := forecastUnits(history, a.forecastWeeks)
	percentChange := int(math.Round((float64(predicted) - current) / current * 100))

	direction := models.TrendIncrease
	if percentChange < 0 {
		direction = models.TrendDecrease
	}

	statement := fmt.Sprintf(
		"DEMAND FORECAST for '%s': Sales are projected to be ~%d units/week in %d weeks, a %d%% %s from current levels.",
		product.Name, predicted, a.forecastWeeks, percentChange, direction,
	)

	return &models.DemandSignal{
		ProductName:   product.Name,
		HasForecast:   true,
		PercentChange: percentChange,
		Direction:     direction,
		Statement:     statement,
	}, nil
}

// forecastUnits projects weekly sales the given number of steps past the
// end of the history using an ordinary least squares trend line. The
// history is assumed to be in chronological order with a roughly weekly
// cadence; the forecast never goes below zero.
func forecastUnits(history []models.SalesPoint, stepsAhead int) int {
	n := float64(len(history))

	var sumX, sumY, sumXY, sumXX float64
	for i, pt := range history {
		x := float64(i)
		sumX += x
		sumY += pt.Units
		sumXY += x * pt.Units
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return int(math.Round(history[len(history)-1].Units))
	}

	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	x := float64(len(history) - 1 + stepsAhead)
	predicted := intercept + slope*x
	if predicted < 0 {
		predicted = 0
	}
	return int(math.Round(predicted))
}
