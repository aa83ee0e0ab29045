// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"errors"

	"supply-sentinel/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// DataStore defines the interface for supply chain data persistence.
type DataStore interface {
	// Suppliers
	ListSuppliers(ctx context.Context) ([]models.Supplier, error)
	GetSupplier(ctx context.Context, id int64) (*models.Supplier, error)

	// Demand inputs
	GetProductsBySupplier(ctx context.Context, supplierID int64) ([]models.Product, error)
	GetSalesHistory(ctx context.Context, productID int64) ([]models.SalesPoint, error)

	// Logistics inputs
	GetActiveShipments(ctx context.Context, supplierID int64) ([]models.Shipment, error)

	// Alerts
	SaveAlert(ctx context.Context, alert *models.AlertRecord) error
	GetRecentAlerts(ctx context.Context, limit int) ([]models.AlertRecord, error)

	// Seed data import
	ImportSuppliers(ctx context.Context, suppliers []models.Supplier) error
	ImportProducts(ctx context.Context, products []models.Product) error
	ImportSalesHistory(ctx context.Context, points []models.SalesPoint) error
	ImportShipments(ctx context.Context, shipments []models.Shipment) error

	// Lifecycle
	Close() error
}
