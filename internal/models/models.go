// Package models defines the core data types for the supply chain sentinel.
package models

import "time"

// ProductionStatus represents a supplier's current production state.
type ProductionStatus string

const (
	StatusOK      ProductionStatus = "OK"
	StatusDelayed ProductionStatus = "DELAYED"
	StatusHalted  ProductionStatus = "HALTED"
)

// Supplier represents one supplier as owned by the external data source.
// The core reads suppliers, it never mutates them.
type Supplier struct {
	ID        int64            `csv:"supplier_id" json:"supplier_id"`
	Name      string           `csv:"supplier_name" json:"supplier_name"`
	Country   string           `csv:"country" json:"country"`
	Status    ProductionStatus `csv:"production_status" json:"production_status"`
	RiskScore float64          `csv:"risk_score" json:"risk_score"`
}

// AtRisk reports whether the supplier fails the risk filter pass condition.
func (s Supplier) AtRisk(threshold float64) bool {
	return s.Status != StatusOK || s.RiskScore >= threshold
}

// Product represents a product manufactured by a supplier.
type Product struct {
	ID         int64  `csv:"product_id" json:"product_id"`
	Name       string `csv:"product_name" json:"product_name"`
	SupplierID int64  `csv:"supplier_id" json:"supplier_id"`
}

// SalesPoint is a single observation in a product's weekly sales history.
type SalesPoint struct {
	ProductID int64
	Date      time.Time
	Units     float64
}

// Shipment represents one shipment from a supplier.
type Shipment struct {
	ID             string `csv:"shipment_id" json:"shipment_id"`
	SupplierID     int64  `csv:"supplier_id" json:"supplier_id"`
	Status         string `csv:"status" json:"status"`
	RouteRiskLevel string `csv:"route_risk_level" json:"route_risk_level"`
}

// ShipmentDelivered is the terminal shipment status. Anything else counts
// as an active shipment for the logistics collector.
const ShipmentDelivered = "Delivered"

// ShipmentDelayed marks a shipment stuck in transit.
const ShipmentDelayed = "Delayed"
