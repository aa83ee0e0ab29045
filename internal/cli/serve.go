package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"supply-sentinel/internal/server"
)

func newServeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the analysis HTTP API",
		Long: `Start the HTTP API exposing on-demand analysis, scheduled analysis
with alert persistence, and recent persisted alerts.`,
		Example: `  sentinel serve
  sentinel serve --addr :9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			if app.Orchestrator == nil || app.Store == nil {
				output.Error("Data store not available. Run 'sentinel import' first.")
				return fmt.Errorf("store not configured")
			}

			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = app.Config.Server.Addr
			}

			srv := server.New(app.Orchestrator, app.Store, credentialsFromConfig(app.Config), app.Logger)
			output.Info("Listening on %s", addr)
			return srv.Run(addr)
		},
	}

	cmd.Flags().String("addr", "", "listen address (default from config)")
	return cmd
}
