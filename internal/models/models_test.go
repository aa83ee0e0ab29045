package models

import "testing"

func TestSupplierAtRisk(t *testing.T) {
	tests := []struct {
		name     string
		supplier Supplier
		want     bool
	}{
		{"ok below threshold", Supplier{Status: StatusOK, RiskScore: 6.9}, false},
		{"ok at threshold", Supplier{Status: StatusOK, RiskScore: 7.0}, true},
		{"ok above threshold", Supplier{Status: StatusOK, RiskScore: 9.0}, true},
		{"delayed low score", Supplier{Status: StatusDelayed, RiskScore: 1.0}, true},
		{"halted low score", Supplier{Status: StatusHalted, RiskScore: 0.0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.supplier.AtRisk(7.0); got != tt.want {
				t.Errorf("AtRisk(7.0) = %v, want %v for %+v", got, tt.want, tt.supplier)
			}
		})
	}
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		raw  string
		want RiskCategory
	}{
		{"Logistics", CategoryLogistics},
		{"Financial", CategoryFinancial},
		{"Geopolitical", CategoryGeopolitical},
		{"Cybersecurity", CategoryCybersecurity},
		{"Natural Disaster", CategoryNaturalDisaster},
		{"Other", CategoryOther},
		{"Weather", CategoryOther},
		{"logistics", CategoryOther}, // category labels are case sensitive
		{"", CategoryOther},
	}

	for _, tt := range tests {
		if got := NormalizeCategory(tt.raw); got != tt.want {
			t.Errorf("NormalizeCategory(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestPriorityRankOrdering(t *testing.T) {
	ordered := []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].Rank() >= ordered[i].Rank() {
			t.Errorf("Rank(%v) = %d should be below Rank(%v) = %d",
				ordered[i-1], ordered[i-1].Rank(), ordered[i], ordered[i].Rank())
		}
	}
}

func TestNewsRiskSignalFailed(t *testing.T) {
	if (&NewsRiskSignal{Summary: "fine"}).Failed() {
		t.Error("signal without Err should not be failed")
	}
	if !NewsError("API Error: boom").Failed() {
		t.Error("NewsError should build a failed signal")
	}
	var nilSignal *NewsRiskSignal
	if nilSignal.Failed() {
		t.Error("nil signal is absent, not failed")
	}
}
