package store

import (
	"fmt"
	"os"
	"time"

	"github.com/gocarina/gocsv"

	"supply-sentinel/internal/models"
)

// csvDate parses the date column of sales history CSVs. Both plain dates
// and RFC 3339 timestamps are accepted.
type csvDate struct {
	time.Time
}

// UnmarshalCSV implements gocsv unmarshalling for csvDate.
func (d *csvDate) UnmarshalCSV(csv string) error {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, csv); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("unrecognized date %q", csv)
}

// salesRow is one row of a sales history CSV export.
type salesRow struct {
	ProductID int64   `csv:"product_id"`
	Date      csvDate `csv:"ds"`
	Units     float64 `csv:"y"`
}

// LoadSuppliersCSV reads a suppliers CSV file.
func LoadSuppliersCSV(path string) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	if err := unmarshalCSVFile(path, &suppliers); err != nil {
		return nil, err
	}
	return suppliers, nil
}

// LoadProductsCSV reads a products CSV file.
func LoadProductsCSV(path string) ([]models.Product, error) {
	var products []models.Product
	if err := unmarshalCSVFile(path, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// LoadSalesHistoryCSV reads a sales history CSV file.
func LoadSalesHistoryCSV(path string) ([]models.SalesPoint, error) {
	var rows []salesRow
	if err := unmarshalCSVFile(path, &rows); err != nil {
		return nil, err
	}

	points := make([]models.SalesPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, models.SalesPoint{
			ProductID: r.ProductID,
			Date:      r.Date.Time,
			Units:     r.Units,
		})
	}
	return points, nil
}

// LoadShipmentsCSV reads a shipments CSV file.
func LoadShipmentsCSV(path string) ([]models.Shipment, error) {
	var shipments []models.Shipment
	if err := unmarshalCSVFile(path, &shipments); err != nil {
		return nil, err
	}
	return shipments, nil
}

func unmarshalCSVFile(path string, out interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.UnmarshalFile(f, out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
