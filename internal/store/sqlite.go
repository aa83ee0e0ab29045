package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"supply-sentinel/internal/models"
)

// SQLiteStore implements DataStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based data store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS suppliers (
		supplier_id INTEGER PRIMARY KEY,
		supplier_name TEXT NOT NULL,
		country TEXT NOT NULL,
		production_status TEXT NOT NULL,
		risk_score REAL NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS products (
		product_id INTEGER PRIMARY KEY,
		product_name TEXT NOT NULL,
		supplier_id INTEGER NOT NULL,
		FOREIGN KEY (supplier_id) REFERENCES suppliers(supplier_id)
	);

	CREATE TABLE IF NOT EXISTS sales_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		product_id INTEGER NOT NULL,
		ds DATETIME NOT NULL,
		y REAL NOT NULL,
		UNIQUE(product_id, ds),
		FOREIGN KEY (product_id) REFERENCES products(product_id)
	);

	CREATE TABLE IF NOT EXISTS shipments (
		shipment_id TEXT PRIMARY KEY,
		supplier_id INTEGER NOT NULL,
		status TEXT NOT NULL,
		route_risk_level TEXT NOT NULL,
		FOREIGN KEY (supplier_id) REFERENCES suppliers(supplier_id)
	);

	CREATE TABLE IF NOT EXISTS alerts (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		supplier_name TEXT NOT NULL,
		priority TEXT NOT NULL,
		alert_text TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_products_supplier ON products(supplier_id);
	CREATE INDEX IF NOT EXISTS idx_sales_product ON sales_history(product_id, ds);
	CREATE INDEX IF NOT EXISTS idx_shipments_supplier ON shipments(supplier_id);
	CREATE INDEX IF NOT EXISTS idx_alerts_timestamp ON alerts(timestamp);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// ListSuppliers returns all suppliers ordered by id.
func (s *SQLiteStore) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT supplier_id, supplier_name, country, production_status, risk_score
		FROM suppliers
		ORDER BY supplier_id`)
	if err != nil {
		return nil, fmt.Errorf("querying suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []models.Supplier
	for rows.Next() {
		var sup models.Supplier
		if err := rows.Scan(&sup.ID, &sup.Name, &sup.Country, &sup.Status, &sup.RiskScore); err != nil {
			return nil, fmt.Errorf("scanning supplier: %w", err)
		}
		suppliers = append(suppliers, sup)
	}
	return suppliers, rows.Err()
}

// GetSupplier returns a single supplier by id.
func (s *SQLiteStore) GetSupplier(ctx context.Context, id int64) (*models.Supplier, error) {
	var sup models.Supplier
	err := s.db.QueryRowContext(ctx, `
		SELECT supplier_id, supplier_name, country, production_status, risk_score
		FROM suppliers
		WHERE supplier_id = ?`, id).
		Scan(&sup.ID, &sup.Name, &sup.Country, &sup.Status, &sup.RiskScore)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying supplier %d: %w", id, err)
	}
	return &sup, nil
}

// GetProductsBySupplier returns all products linked to a supplier.
func (s *SQLiteStore) GetProductsBySupplier(ctx context.Context, supplierID int64) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product_id, product_name, supplier_id
		FROM products
		WHERE supplier_id = ?
		ORDER BY product_id`, supplierID)
	if err != nil {
		return nil, fmt.Errorf("querying products for supplier %d: %w", supplierID, err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.SupplierID); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetSalesHistory returns a product's sales history in chronological order.
func (s *SQLiteStore) GetSalesHistory(ctx context.Context, productID int64) ([]models.SalesPoint, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product_id, ds, y
		FROM sales_history
		WHERE product_id = ?
		ORDER BY ds`, productID)
	if err != nil {
		return nil, fmt.Errorf("querying sales history for product %d: %w", productID, err)
	}
	defer rows.Close()

	var points []models.SalesPoint
	for rows.Next() {
		var pt models.SalesPoint
		if err := rows.Scan(&pt.ProductID, &pt.Date, &pt.Units); err != nil {
			return nil, fmt.Errorf("scanning sales point: %w", err)
		}
		points = append(points, pt)
	}
	return points, rows.Err()
}

// GetActiveShipments returns a supplier's shipments that are not yet delivered.
func (s *SQLiteStore) GetActiveShipments(ctx context.Context, supplierID int64) ([]models.Shipment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT shipment_id, supplier_id, status, route_risk_level
		FROM shipments
		WHERE supplier_id = ? AND status != ?
		ORDER BY shipment_id`, supplierID, models.ShipmentDelivered)
	if err != nil {
		return nil, fmt.Errorf("querying shipments for supplier %d: %w", supplierID, err)
	}
	defer rows.Close()

	var shipments []models.Shipment
	for rows.Next() {
		var sh models.Shipment
		if err := rows.Scan(&sh.ID, &sh.SupplierID, &sh.Status, &sh.RouteRiskLevel); err != nil {
			return nil, fmt.Errorf("scanning shipment: %w", err)
		}
		shipments = append(shipments, sh)
	}
	return shipments, rows.Err()
}

// SaveAlert persists an alert record.
func (s *SQLiteStore) SaveAlert(ctx context.Context, alert *models.AlertRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO alerts (id, timestamp, supplier_name, priority, alert_text)
		VALUES (?, ?, ?, ?, ?)`,
		alert.ID, alert.Timestamp, alert.SupplierName, string(alert.Priority), alert.Text)
	if err != nil {
		return fmt.Errorf("inserting alert: %w", err)
	}
	return nil
}

// GetRecentAlerts returns the most recent persisted alerts.
func (s *SQLiteStore) GetRecentAlerts(ctx context.Context, limit int) ([]models.AlertRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, timestamp, supplier_name, priority, alert_text
		FROM alerts
		ORDER BY timestamp DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying alerts: %w", err)
	}
	defer rows.Close()

	var alerts []models.AlertRecord
	for rows.Next() {
		var a models.AlertRecord
		if err := rows.Scan(&a.ID, &a.Timestamp, &a.SupplierName, &a.Priority, &a.Text); err != nil {
			return nil, fmt.Errorf("scanning alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// ImportSuppliers bulk-inserts suppliers, replacing existing rows by id.
func (s *SQLiteStore) ImportSuppliers(ctx context.Context, suppliers []models.Supplier) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT OR REPLACE INTO suppliers
				(supplier_id, supplier_name, country, production_status, risk_score)
			VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, sup := range suppliers {
			if _, err := stmt.ExecContext(ctx, sup.ID, sup.Name, sup.Country, string(sup.Status), sup.RiskScore); err != nil {
				return fmt.Errorf("inserting supplier %d: %w", sup.ID, err)
			}
		}
		return nil
	})
}

// ImportProducts bulk-inserts products, replacing existing rows by id.
func (s *SQLiteStore) ImportProducts(ctx context.Context, products []models.Product) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT OR REPLACE INTO products (product_id, product_name, supplier_id)
			VALUES (?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, p := range products {
			if _, err := stmt.ExecContext(ctx, p.ID, p.Name, p.SupplierID); err != nil {
				return fmt.Errorf("inserting product %d: %w", p.ID, err)
			}
		}
		return nil
	})
}

// ImportSalesHistory bulk-inserts sales points, replacing duplicates.
func (s *SQLiteStore) ImportSalesHistory(ctx context.Context, points []models.SalesPoint) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT OR REPLACE INTO sales_history (product_id, ds, y)
			VALUES (?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, pt := range points {
			if _, err := stmt.ExecContext(ctx, pt.ProductID, pt.Date, pt.Units); err != nil {
				return fmt.Errorf("inserting sales point for product %d: %w", pt.ProductID, err)
			}
		}
		return nil
	})
}

// ImportShipments bulk-inserts shipments, replacing existing rows by id.
func (s *SQLiteStore) ImportShipments(ctx context.Context, shipments []models.Shipment) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT OR REPLACE INTO shipments (shipment_id, supplier_id, status, route_risk_level)
			VALUES (?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, sh := range shipments {
			if _, err := stmt.ExecContext(ctx, sh.ID, sh.SupplierID, sh.Status, sh.RouteRiskLevel); err != nil {
				return fmt.Errorf("inserting shipment %s: %w", sh.ID, err)
			}
		}
		return nil
	})
}

// withTx runs fn inside a transaction.
func (s *SQLiteStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
