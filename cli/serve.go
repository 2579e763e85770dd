package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shipment-service/core"
	"shipment-service/shipments/handlers"
	"shipment-service/workers/shipments"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if a.cfg.SeedOnStartup {
		if _, err := a.service.Seed(ctx); err != nil {
			a.logger.Error("Failed to seed shipments", zap.Error(err))
			return err
		}
	}

	orchestrator := core.NewOrchestrator(a.logger, []core.Worker{
		shipments.NewWorker(a.logger, a.repo, a.cfg.ReportSchedule),
	})
	c, err := orchestrator.Start()
	if err != nil {
		return err
	}
	defer c.Stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := core.NewRouter(a.logger, core.NewMetrics(reg))
	handlers.NewHandler(a.logger, a.service).Register(router)

	srv := &http.Server{
		Addr:         a.cfg.HTTPAddr,
		Handler:      core.WithCORS(router),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	if err := core.Serve(ctx, a.logger, srv, a.cfg.ShutdownTimeout); err != nil {
		a.logger.Error("HTTP server failed", zap.Error(err))
		return err
	}

	a.logger.Info("Server shutdown complete")
	return nil
}
