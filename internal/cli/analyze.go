package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"supply-sentinel/internal/agents"
	"supply-sentinel/internal/models"
)

func newAnalyzeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run a full supply chain risk analysis",
		Long: `Run the full analysis: flag at-risk suppliers, gather demand,
logistics, and news risk signals for each, and print the resulting
prioritized alerts.`,
		Example: `  sentinel analyze
  sentinel analyze --save
  sentinel analyze --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()

			save, _ := cmd.Flags().GetBool("save")

			if app.Orchestrator == nil {
				output.Error("Data store not available. Run 'sentinel import' first.")
				return fmt.Errorf("store not configured")
			}

			scored, err := app.Orchestrator.RunAnalysisDetailed(ctx, credentialsFromConfig(app.Config))
			if err != nil {
				output.Error("Analysis failed: %v", err)
				return err
			}

			alerts := make([]string, 0, len(scored))
			for _, alert := range scored {
				alerts = append(alerts, alert.Text)
			}
			if len(alerts) == 0 {
				alerts = append(alerts, agents.NoRiskMessage)
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{"alerts": alerts})
			}

			for _, text := range alerts {
				output.Println(text)
			}

			if save && len(scored) > 0 {
				saved := 0
				for _, alert := range scored {
					record := &models.AlertRecord{
						ID:           uuid.NewString(),
						Timestamp:    time.Now().UTC(),
						SupplierName: alert.Supplier.Name,
						Priority:     alert.Priority,
						Text:         alert.Text,
					}
					if err := app.Store.SaveAlert(ctx, record); err != nil {
						output.Warning("Could not save alert for %s: %v", alert.Supplier.Name, err)
						continue
					}
					saved++
				}
				output.Success("Saved %d alerts.", saved)
			}

			return nil
		},
	}

	cmd.Flags().Bool("save", false, "persist generated alerts to the database")
	return cmd
}
