package agents

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"supply-sentinel/internal/models"
)

func testOrchestrator(st *fakeStore, news *fakeNewsCollector, demand *fakeDemandCollector, logistics *fakeLogisticsCollector, notifier Notifier) *Orchestrator {
	logger := zerolog.Nop()
	return NewOrchestrator(
		NewSupplierAgent(st, DefaultRiskThreshold, logger),
		demand,
		logistics,
		news,
		notifier,
		logger,
	)
}

func TestRunAnalysisNoAtRiskSuppliers(t *testing.T) {
	st := newFakeStore()
	st.suppliers = []models.Supplier{
		{ID: 1, Name: "Safe One", Country: "Germany", Status: models.StatusOK, RiskScore: 2.0},
		{ID: 2, Name: "Safe Two", Country: "Japan", Status: models.StatusOK, RiskScore: 6.9},
	}
	news := &fakeNewsCollector{}
	orch := testOrchestrator(st, news, &fakeDemandCollector{}, &fakeLogisticsCollector{}, nil)

	alerts, err := orch.RunAnalysis(context.Background(), Credentials{})
	if err != nil {
		t.Fatalf("RunAnalysis() error = %v", err)
	}
	if len(alerts) != 1 || alerts[0] != NoRiskMessage {
		t.Errorf("RunAnalysis() = %v, want exactly the no-risk sentinel", alerts)
	}
	if len(news.topics) != 0 {
		t.Errorf("no collectors should run when no supplier is at risk, got %d news calls", len(news.topics))
	}
}

func TestRunAnalysisSupplierSourceUnavailable(t *testing.T) {
	st := newFakeStore()
	st.listErr = errors.New("database is locked")
	orch := testOrchestrator(st, &fakeNewsCollector{}, &fakeDemandCollector{}, &fakeLogisticsCollector{}, nil)

	_, err := orch.RunAnalysis(context.Background(), Credentials{})
	if err == nil {
		t.Fatal("RunAnalysis() should fail when the supplier source is unavailable")
	}
}

func TestRunAnalysisOnePerAtRiskSupplierInOrder(t *testing.T) {
	st := newFakeStore()
	st.suppliers = []models.Supplier{
		{ID: 1, Name: "Alpha", Country: "Germany", Status: models.StatusHalted, RiskScore: 9.0},
		{ID: 2, Name: "Safe", Country: "France", Status: models.StatusOK, RiskScore: 1.0},
		{ID: 3, Name: "Beta", Country: "Japan", Status: models.StatusOK, RiskScore: 8.5},
		{ID: 4, Name: "Gamma", Country: "India", Status: models.StatusDelayed, RiskScore: 3.0},
	}
	notifier := &recordingNotifier{}
	orch := testOrchestrator(st, &fakeNewsCollector{}, &fakeDemandCollector{}, &fakeLogisticsCollector{}, notifier)

	scored, err := orch.RunAnalysisDetailed(context.Background(), Credentials{})
	if err != nil {
		t.Fatalf("RunAnalysisDetailed() error = %v", err)
	}

	wantOrder := []string{"Alpha", "Beta", "Gamma"}
	if len(scored) != len(wantOrder) {
		t.Fatalf("got %d alerts, want %d", len(scored), len(wantOrder))
	}
	for i, name := range wantOrder {
		if scored[i].Supplier.Name != name {
			t.Errorf("alert %d is for %q, want %q", i, scored[i].Supplier.Name, name)
		}
	}
	if len(notifier.alerts) != len(wantOrder) {
		t.Errorf("notifier received %d alerts, want %d", len(notifier.alerts), len(wantOrder))
	}
}

func TestRunAnalysisTopicFollowsStatus(t *testing.T) {
	st := newFakeStore()
	st.suppliers = []models.Supplier{
		{ID: 1, Name: "Stalled", Country: "Germany", Status: models.StatusDelayed, RiskScore: 1.0},
		{ID: 2, Name: "Dark", Country: "Japan", Status: models.StatusHalted, RiskScore: 1.0},
	}
	news := &fakeNewsCollector{}
	orch := testOrchestrator(st, news, &fakeDemandCollector{}, &fakeLogisticsCollector{}, nil)

	if _, err := orch.RunAnalysisDetailed(context.Background(), Credentials{}); err != nil {
		t.Fatalf("RunAnalysisDetailed() error = %v", err)
	}

	if len(news.topics) != 2 {
		t.Fatalf("got %d news calls, want 2", len(news.topics))
	}
	if news.topics[0] != topicDelayed {
		t.Errorf("delayed supplier topic = %q, want %q", news.topics[0], topicDelayed)
	}
	if news.topics[1] != topicDisruption {
		t.Errorf("halted supplier topic = %q, want %q", news.topics[1], topicDisruption)
	}
	if news.country[0] != "de" || news.country[1] != "jp" {
		t.Errorf("resolved countries = %v, want [de jp]", news.country)
	}
}

func TestRunAnalysisCollectorFailureDegrades(t *testing.T) {
	st := newFakeStore()
	st.suppliers = []models.Supplier{
		{ID: 1, Name: "Acme", Country: "Germany", Status: models.StatusHalted, RiskScore: 8.0},
	}
	notifier := &recordingNotifier{}
	orch := testOrchestrator(
		st,
		&fakeNewsCollector{signal: &models.NewsRiskSignal{Summary: "calm", Category: models.CategoryOther}},
		&fakeDemandCollector{err: errors.New("sales table corrupt")},
		&fakeLogisticsCollector{err: errors.New("shipments offline")},
		notifier,
	)

	scored, err := orch.RunAnalysisDetailed(context.Background(), Credentials{})
	if err != nil {
		t.Fatalf("collector failures must not abort the run: %v", err)
	}
	if len(scored) != 1 {
		t.Fatalf("got %d alerts, want 1", len(scored))
	}
	// The supplier is still reported with the signals that did arrive.
	if scored[0].FinalScore != 8.0 {
		t.Errorf("FinalScore = %v, want base 8.0 with failed collectors contributing nothing", scored[0].FinalScore)
	}
	if strings.Contains(scored[0].Text, "DEMAND FORECAST") || strings.Contains(scored[0].Text, "LOGISTICS ALERT") {
		t.Errorf("failed collectors must not leave lines in the alert:\n%s", scored[0].Text)
	}
	if len(notifier.errors) != 2 {
		t.Errorf("notifier saw %d collector errors, want 2 (%v)", len(notifier.errors), notifier.errors)
	}
}

func TestRunAnalysisIdempotent(t *testing.T) {
	st := newFakeStore()
	st.suppliers = []models.Supplier{
		{ID: 1, Name: "Acme", Country: "Germany", Status: models.StatusDelayed, RiskScore: 8.0},
	}
	orch := testOrchestrator(
		st,
		&fakeNewsCollector{signal: &models.NewsRiskSignal{Summary: "port strike", Category: models.CategoryLogistics}},
		&fakeDemandCollector{signal: &models.DemandSignal{
			ProductName: "Widget", HasForecast: true, PercentChange: 30,
			Direction: models.TrendIncrease, Statement: "DEMAND FORECAST for 'Widget': up.",
		}},
		&fakeLogisticsCollector{signal: &models.LogisticsSignal{
			ShipmentID: "SH-1", Status: models.ShipmentDelayed, RouteRisk: "High",
			Delayed: true, Statement: "LOGISTICS ALERT: Shipment 'SH-1' is delayed.",
		}},
		nil,
	)

	first, err := orch.RunAnalysis(context.Background(), Credentials{})
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := orch.RunAnalysis(context.Background(), Credentials{})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(first) != 1 || len(second) != 1 || first[0] != second[0] {
		t.Errorf("identical inputs should produce identical alerts:\n%v\n%v", first, second)
	}
	if !strings.Contains(first[0], "CRITICAL") {
		t.Errorf("8.0 + 5 + 5 + 3 should be CRITICAL:\n%s", first[0])
	}
}
