package agents

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"supply-sentinel/internal/countries"
	"supply-sentinel/internal/logging"
	"supply-sentinel/internal/models"
	"supply-sentinel/internal/scoring"
)

// NoRiskMessage is the sentinel result returned when no supplier passes
// the risk filter. Downstream consumers recognize it by substring.
const NoRiskMessage = "✅ Analysis Complete: No high-risk suppliers found."

// News topics chosen per supplier status.
const (
	topicDelayed    = "shipping delay OR port congestion"
	topicDisruption = "supply chain disruption OR factory shutdown"
)

// Orchestrator runs the full supply chain analysis: it finds at-risk
// suppliers, gathers the three signals for each, and aggregates them
// into prioritized alerts. It holds no mutable state between runs, so
// RunAnalysis is safe to call repeatedly.
type Orchestrator struct {
	suppliers *SupplierAgent
	demand    DemandCollector
	logistics LogisticsCollector
	news      NewsCollector
	notifier  Notifier
	logger    zerolog.Logger
}

// NewOrchestrator creates a new analysis orchestrator. The notifier may
// be nil.
func NewOrchestrator(
	suppliers *SupplierAgent,
	demand DemandCollector,
	logistics LogisticsCollector,
	news NewsCollector,
	notifier Notifier,
	logger zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		suppliers: suppliers,
		demand:    demand,
		logistics: logistics,
		news:      news,
		notifier:  notifier,
		logger:    logger,
	}
}

// RunAnalysis runs one full analysis and returns the ordered alert
// texts, one per at-risk supplier. An empty at-risk set yields exactly
// one element, the NoRiskMessage sentinel. Only total supplier-source
// unavailability is fatal; any single collector failure degrades that
// supplier's alert instead of aborting the run.
func (o *Orchestrator) RunAnalysis(ctx context.Context, creds Credentials) ([]string, error) {
	scored, err := o.RunAnalysisDetailed(ctx, creds)
	if err != nil {
		return nil, err
	}
	if len(scored) == 0 {
		return []string{NoRiskMessage}, nil
	}

	alerts := make([]string, 0, len(scored))
	for _, alert := range scored {
		alerts = append(alerts, alert.Text)
	}
	return alerts, nil
}

// RunAnalysisDetailed is RunAnalysis with structured results, one
// ScoredAlert per at-risk supplier in filter order. An empty at-risk
// set yields an empty slice and no error.
func (o *Orchestrator) RunAnalysisDetailed(ctx context.Context, creds Credentials) ([]models.ScoredAlert, error) {
	o.logger.Info().Msg("Starting supply chain analysis")
	start := time.Now()

	atRisk, err := o.suppliers.FindAtRisk(ctx)
	if err != nil {
		return nil, fmt.Errorf("finding at-risk suppliers: %w", err)
	}
	if len(atRisk) == 0 {
		logging.LogAnalysisRun(o.logger, 0, 0, time.Since(start))
		return nil, nil
	}

	results := make([]models.ScoredAlert, 0, len(atRisk))
	for _, sup := range atRisk {
		alert := o.processSupplier(ctx, sup, creds)
		results = append(results, alert)

		logging.LogAlert(o.logger, sup.Name, string(alert.Priority), alert.FinalScore)
		if o.notifier != nil {
			if err := o.notifier.SendAlert(ctx, alert); err != nil {
				o.logger.Warn().Err(err).Msg("Notifier failed")
			}
		}
	}

	logging.LogAnalysisRun(o.logger, len(atRisk), len(results), time.Since(start))
	return results, nil
}

// signalSet joins the three collectors' outputs for one supplier.
type signalSet struct {
	news      *models.NewsRiskSignal
	demand    *models.DemandSignal
	logistics *models.LogisticsSignal
}

// processSupplier gathers the three signals concurrently and aggregates
// them. Collector errors become absent signals.
func (o *Orchestrator) processSupplier(ctx context.Context, sup models.Supplier, creds Credentials) models.ScoredAlert {
	logger := logging.WithSupplier(o.logger, sup.ID, sup.Name)

	countryCode, match := countries.Resolve(sup.Country)
	if match == countries.MatchDefault {
		logger.Warn().Str("country", sup.Country).Str("fallback", countryCode).Msg("Could not resolve country code")
	}

	topic := topicDisruption
	if sup.Status == models.StatusDelayed {
		topic = topicDelayed
	}

	var (
		wg      sync.WaitGroup
		signals signalSet
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		demand, err := o.demand.Collect(ctx, sup.ID)
		if err != nil {
			o.reportCollectorError(ctx, logger, "demand", err)
			return
		}
		signals.demand = demand
	}()
	go func() {
		defer wg.Done()
		logistics, err := o.logistics.Collect(ctx, sup.ID)
		if err != nil {
			o.reportCollectorError(ctx, logger, "logistics", err)
			return
		}
		signals.logistics = logistics
	}()
	go func() {
		defer wg.Done()
		signals.news = o.news.Collect(ctx, topic, countryCode, creds)
	}()
	wg.Wait()

	return scoring.Score(sup, signals.news, signals.demand, signals.logistics)
}

// reportCollectorError logs a per-supplier collector failure. These are
// never fatal to the run.
func (o *Orchestrator) reportCollectorError(ctx context.Context, logger zerolog.Logger, collector string, err error) {
	agentLogger := logging.WithAgent(logger, collector)
	agentLogger.Warn().Err(err).Msg("Collector failed, continuing with absent signal")
	if o.notifier != nil {
		o.notifier.SendError(ctx, err, collector)
	}
}
