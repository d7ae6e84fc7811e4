package cmd

import (
	"github.com/castinsight/castdash/core"
	"github.com/castinsight/castdash/core/synth"
	"github.com/castinsight/castdash/internal/contract"
	"github.com/castinsight/castdash/internal/server"
	"github.com/spf13/cobra"
)

// serveCmd starts the REST API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard panels as a REST API",
	Long: `Start the HTTP API consumed by the dashboard front end.

Every panel answers under /api with the envelope {success, data, error}.
Operational endpoints:
  /healthz  - liveness
  /readyz   - readiness, pings the datamart
  /metrics  - Prometheus metrics

Examples:
  # Listen on the default :8888
  castdash serve

  # JSON logs for a container platform
  castdash serve --addr :9000 --log-format json`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		dash := core.NewDashboard(store, synth.NewRandom(), cfg)
		api := server.NewWebAPI(logger, server.Config{
			Addr:            cfg.Addr,
			ShutdownTimeout: cfg.ShutdownTimeout,
			Dependencies: server.Dependencies{
				Dashboard: dash,
				Metrics:   server.NewMetrics(),
				Ready:     []server.ReadyCheck{store.Ping},
			},
		})
		if err := api.Start(rootCtx); err != nil {
			contract.LogFatal("Server stopped", err)
		}
		return nil
	},
}
