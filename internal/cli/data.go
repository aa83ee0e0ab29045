package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"supply-sentinel/internal/store"
)

func newImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import supply chain seed data from CSV files",
		Long: `Import suppliers, products, sales history, and shipments from CSV
exports into the local database. Existing rows with matching ids are
replaced.`,
		Example: `  sentinel import --suppliers data/suppliers.csv
  sentinel import --suppliers s.csv --products p.csv --sales sales.csv --shipments sh.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			if app.Store == nil {
				output.Error("Data store not available.")
				return fmt.Errorf("store not configured")
			}

			suppliersPath, _ := cmd.Flags().GetString("suppliers")
			productsPath, _ := cmd.Flags().GetString("products")
			salesPath, _ := cmd.Flags().GetString("sales")
			shipmentsPath, _ := cmd.Flags().GetString("shipments")

			if suppliersPath == "" && productsPath == "" && salesPath == "" && shipmentsPath == "" {
				output.Error("Nothing to import. Pass at least one CSV flag.")
				return fmt.Errorf("no input files")
			}

			if suppliersPath != "" {
				suppliers, err := store.LoadSuppliersCSV(suppliersPath)
				if err != nil {
					return err
				}
				if err := app.Store.ImportSuppliers(ctx, suppliers); err != nil {
					return err
				}
				output.Success("Imported %d suppliers.", len(suppliers))
			}

			if productsPath != "" {
				products, err := store.LoadProductsCSV(productsPath)
				if err != nil {
					return err
				}
				if err := app.Store.ImportProducts(ctx, products); err != nil {
					return err
				}
				output.Success("Imported %d products.", len(products))
			}

			if salesPath != "" {
				points, err := store.LoadSalesHistoryCSV(salesPath)
				if err != nil {
					return err
				}
				if err := app.Store.ImportSalesHistory(ctx, points); err != nil {
					return err
				}
				output.Success("Imported %d sales points.", len(points))
			}

			if shipmentsPath != "" {
				shipments, err := store.LoadShipmentsCSV(shipmentsPath)
				if err != nil {
					return err
				}
				if err := app.Store.ImportShipments(ctx, shipments); err != nil {
					return err
				}
				output.Success("Imported %d shipments.", len(shipments))
			}

			return nil
		},
	}

	cmd.Flags().String("suppliers", "", "suppliers CSV file")
	cmd.Flags().String("products", "", "products CSV file")
	cmd.Flags().String("sales", "", "sales history CSV file")
	cmd.Flags().String("shipments", "", "shipments CSV file")
	return cmd
}
