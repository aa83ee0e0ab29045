package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"supply-sentinel/internal/agents"
)

func newAlertsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "alerts",
		Short:   "List recently persisted alerts",
		Example: `  sentinel alerts --limit 20`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Error("Data store not available.")
				return fmt.Errorf("store not configured")
			}

			limit, _ := cmd.Flags().GetInt("limit")
			alerts, err := app.Store.GetRecentAlerts(ctx, limit)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{"alerts": alerts})
			}

			if len(alerts) == 0 {
				output.Info("No alerts saved yet.")
				return nil
			}
			for _, a := range alerts {
				output.Printf("[%s] %s %s\n", a.Timestamp.Format(time.RFC3339), a.Priority, a.SupplierName)
				output.Println(a.Text)
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 50, "maximum number of alerts to list")
	return cmd
}

func newSuppliersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "suppliers",
		Short:   "List suppliers, optionally only the at-risk subset",
		Example: `  sentinel suppliers
  sentinel suppliers --at-risk`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Error("Data store not available.")
				return fmt.Errorf("store not configured")
			}

			suppliers, err := app.Store.ListSuppliers(ctx)
			if err != nil {
				return err
			}

			atRiskOnly, _ := cmd.Flags().GetBool("at-risk")
			if atRiskOnly {
				suppliers = agents.FilterAtRisk(suppliers, app.Config.Analysis.RiskThreshold)
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{"suppliers": suppliers})
			}

			if len(suppliers) == 0 {
				output.Info("No suppliers found.")
				return nil
			}
			for _, sup := range suppliers {
				marker := " "
				if sup.AtRisk(app.Config.Analysis.RiskThreshold) {
					marker = "!"
				}
				output.Printf("%s %4d  %-30s %-15s %-8s %.1f\n",
					marker, sup.ID, sup.Name, sup.Country, sup.Status, sup.RiskScore)
			}
			return nil
		},
	}

	cmd.Flags().Bool("at-risk", false, "only show suppliers matching the risk criteria")
	return cmd
}
