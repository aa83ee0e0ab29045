package agents

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"supply-sentinel/internal/models"
)

func seedSales(st *fakeStore, productID int64, weekly []float64) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	for i, units := range weekly {
		st.sales[productID] = append(st.sales[productID], models.SalesPoint{
			ProductID: productID,
			Date:      start.AddDate(0, 0, 7*i),
			Units:     units,
		})
	}
}

func TestDemandCollectNoProducts(t *testing.T) {
	st := newFakeStore()
	agent := NewDemandAgent(st, 4, 10, zerolog.Nop())

	signal, err := agent.Collect(context.Background(), 1)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if signal != nil {
		t.Errorf("supplier with no products should yield nil signal, got %+v", signal)
	}
}

func TestDemandCollectInsufficientHistory(t *testing.T) {
	st := newFakeStore()
	st.products[1] = []models.Product{{ID: 100, Name: "Widget", SupplierID: 1}}
	seedSales(st, 100, []float64{10, 11, 12})

	agent := NewDemandAgent(st, 4, 10, zerolog.Nop())
	signal, err := agent.Collect(context.Background(), 1)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if signal == nil {
		t.Fatal("expected an informational signal")
	}
	if signal.HasForecast {
		t.Error("HasForecast should be false with too little history")
	}
	if signal.Statement != "Insufficient sales history for Widget." {
		t.Errorf("Statement = %q", signal.Statement)
	}
}

func TestDemandCollectRisingTrend(t *testing.T) {
	st := newFakeStore()
	st.products[1] = []models.Product{{ID: 100, Name: "Widget", SupplierID: 1}}
	// Steady +10 units/week: 100, 110, ..., 190.
	weekly := make([]float64, 10)
	for i := range weekly {
		weekly[i] = 100 + float64(i)*10
	}
	seedSales(st, 100, weekly)

	agent := NewDemandAgent(st, 4, 10, zerolog.Nop())
	signal, err := agent.Collect(context.Background(), 1)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if signal == nil || !signal.HasForecast {
		t.Fatalf("expected a forecast signal, got %+v", signal)
	}
	if signal.Direction != models.TrendIncrease {
		t.Errorf("Direction = %v, want increase", signal.Direction)
	}
	// Trend projects 190 + 4*10 = 230, a 21% increase over 190.
	if signal.PercentChange != 21 {
		t.Errorf("PercentChange = %d, want 21", signal.PercentChange)
	}
	want := fmt.Sprintf(
		"DEMAND FORECAST for 'Widget': Sales are projected to be ~230 units/week in 4 weeks, a 21%% %s from current levels.",
		models.TrendIncrease,
	)
	if signal.Statement != want {
		t.Errorf("Statement = %q\nwant        %q", signal.Statement, want)
	}
}

func TestDemandCollectFallingTrend(t *testing.T) {
	st := newFakeStore()
	st.products[1] = []models.Product{{ID: 100, Name: "Widget", SupplierID: 1}}
	weekly := make([]float64, 12)
	for i := range weekly {
		weekly[i] = 200 - float64(i)*5
	}
	seedSales(st, 100, weekly)

	agent := NewDemandAgent(st, 4, 10, zerolog.Nop())
	signal, err := agent.Collect(context.Background(), 1)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if signal == nil || !signal.HasForecast {
		t.Fatalf("expected a forecast signal, got %+v", signal)
	}
	if signal.Direction != models.TrendDecrease {
		t.Errorf("Direction = %v, want decrease", signal.Direction)
	}
	if signal.PercentChange >= 0 {
		t.Errorf("PercentChange = %d, want negative", signal.PercentChange)
	}
	if !strings.Contains(signal.Statement, "decrease from current levels.") {
		t.Errorf("Statement = %q", signal.Statement)
	}
}

func TestDemandCollectZeroCurrentSales(t *testing.T) {
	st := newFakeStore()
	st.products[1] = []models.Product{{ID: 100, Name: "Widget", SupplierID: 1}}
	weekly := make([]float64, 11)
	weekly[10] = 0
	for i := 0; i < 10; i++ {
		weekly[i] = 50
	}
	seedSales(st, 100, weekly)

	agent := NewDemandAgent(st, 4, 10, zerolog.Nop())
	signal, err := agent.Collect(context.Background(), 1)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if signal != nil {
		t.Errorf("zero current sales should yield nil signal, got %+v", signal)
	}
}

func TestForecastUnitsFlatHistory(t *testing.T) {
	history := make([]models.SalesPoint, 10)
	for i := range history {
		history[i] = models.SalesPoint{Units: 42}
	}
	if got := forecastUnits(history, 4); got != 42 {
		t.Errorf("forecastUnits(flat, 4) = %d, want 42", got)
	}
}

func TestForecastUnitsNeverNegative(t *testing.T) {
	history := make([]models.SalesPoint, 10)
	for i := range history {
		history[i] = models.SalesPoint{Units: float64(90 - i*10)}
	}
	if got := forecastUnits(history, 10); got < 0 {
		t.Errorf("forecastUnits() = %d, want >= 0", got)
	}
}
