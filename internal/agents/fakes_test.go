package agents

import (
	"context"
	"sort"
	"sync"
	"time"

	"supply-sentinel/internal/models"
	"supply-sentinel/internal/store"
)

// fakeStore is an in-memory DataStore for agent tests.
type fakeStore struct {
	suppliers []models.Supplier
	products  map[int64][]models.Product
	sales     map[int64][]models.SalesPoint
	shipments map[int64][]models.Shipment
	alerts    []models.AlertRecord

	listErr      error
	productsErr  error
	salesErr     error
	shipmentsErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:  make(map[int64][]models.Product),
		sales:     make(map[int64][]models.SalesPoint),
		shipments: make(map[int64][]models.Shipment),
	}
}

func (s *fakeStore) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.suppliers, nil
}

func (s *fakeStore) GetSupplier(ctx context.Context, id int64) (*models.Supplier, error) {
	for _, sup := range s.suppliers {
		if sup.ID == id {
			return &sup, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *fakeStore) GetProductsBySupplier(ctx context.Context, supplierID int64) ([]models.Product, error) {
	if s.productsErr != nil {
		return nil, s.productsErr
	}
	return s.products[supplierID], nil
}

func (s *fakeStore) GetSalesHistory(ctx context.Context, productID int64) ([]models.SalesPoint, error) {
	if s.salesErr != nil {
		return nil, s.salesErr
	}
	history := append([]models.SalesPoint(nil), s.sales[productID]...)
	sort.Slice(history, func(i, j int) bool { return history[i].Date.Before(history[j].Date) })
	return history, nil
}

func (s *fakeStore) GetActiveShipments(ctx context.Context, supplierID int64) ([]models.Shipment, error) {
	if s.shipmentsErr != nil {
		return nil, s.shipmentsErr
	}
	var active []models.Shipment
	for _, sh := range s.shipments[supplierID] {
		if sh.Status != models.ShipmentDelivered {
			active = append(active, sh)
		}
	}
	return active, nil
}

func (s *fakeStore) SaveAlert(ctx context.Context, alert *models.AlertRecord) error {
	s.alerts = append(s.alerts, *alert)
	return nil
}

func (s *fakeStore) GetRecentAlerts(ctx context.Context, limit int) ([]models.AlertRecord, error) {
	if limit <= 0 || limit > len(s.alerts) {
		limit = len(s.alerts)
	}
	return s.alerts[:limit], nil
}

func (s *fakeStore) ImportSuppliers(ctx context.Context, suppliers []models.Supplier) error {
	s.suppliers = append(s.suppliers, suppliers...)
	return nil
}

func (s *fakeStore) ImportProducts(ctx context.Context, products []models.Product) error {
	for _, p := range products {
		s.products[p.SupplierID] = append(s.products[p.SupplierID], p)
	}
	return nil
}

func (s *fakeStore) ImportSalesHistory(ctx context.Context, points []models.SalesPoint) error {
	for _, pt := range points {
		s.sales[pt.ProductID] = append(s.sales[pt.ProductID], pt)
	}
	return nil
}

func (s *fakeStore) ImportShipments(ctx context.Context, shipments []models.Shipment) error {
	for _, sh := range shipments {
		s.shipments[sh.SupplierID] = append(s.shipments[sh.SupplierID], sh)
	}
	return nil
}

func (s *fakeStore) Close() error { return nil }

// fakeNewsCollector records the topics and countries it was asked about.
type fakeNewsCollector struct {
	mu      sync.Mutex
	signal  *models.NewsRiskSignal
	topics  []string
	country []string
}

func (f *fakeNewsCollector) Collect(ctx context.Context, topic, countryCode string, creds Credentials) *models.NewsRiskSignal {
	f.mu.Lock()
	f.topics = append(f.topics, topic)
	f.country = append(f.country, countryCode)
	f.mu.Unlock()
	if f.signal != nil {
		return f.signal
	}
	return models.NewsError("No news found for the given criteria.")
}

// fakeDemandCollector returns a fixed signal or error.
type fakeDemandCollector struct {
	signal *models.DemandSignal
	err    error
}

func (f *fakeDemandCollector) Collect(ctx context.Context, supplierID int64) (*models.DemandSignal, error) {
	return f.signal, f.err
}

// fakeLogisticsCollector returns a fixed signal or error.
type fakeLogisticsCollector struct {
	signal *models.LogisticsSignal
	err    error
}

func (f *fakeLogisticsCollector) Collect(ctx context.Context, supplierID int64) (*models.LogisticsSignal, error) {
	return f.signal, f.err
}

// fakeLLM returns canned completions.
type fakeLLM struct {
	response string
	err      error
}

func (f *fakeLLM) Complete(ctx context.Context, prompt string) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return f.response, f.err
}

func fakeLLMFactory(llm LLMClient) LLMFactory {
	return func(creds Credentials) LLMClient { return llm }
}

// memoryCache is a map-backed NewsCache for tests.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]string
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]string)}
}

func (c *memoryCache) Get(ctx context.Context, key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	val, ok := c.entries[key]
	return val, ok
}

func (c *memoryCache) Set(ctx context.Context, key string, value string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	c.sets++
}

// recordingNotifier captures alerts and collector errors.
type recordingNotifier struct {
	mu     sync.Mutex
	alerts []models.ScoredAlert
	errors []string
}

func (n *recordingNotifier) SendAlert(ctx context.Context, alert models.ScoredAlert) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, alert)
	return nil
}

func (n *recordingNotifier) SendError(ctx context.Context, err error, context string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, context)
	return nil
}
