package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"shipment-service/config"
	"shipment-service/core"
	"shipment-service/shipments/repositories"
	"shipment-service/shipments/services"
)

func NewRootCmd() *cobra.Command {
	serve := newServeCmd()

	root := &cobra.Command{
		Use:           "shipment-service",
		Short:         "Shipment CRUD service for the transport management suite",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	root.AddCommand(serve, newSeedCmd())
	return root
}

func Execute() error {
	return NewRootCmd().Execute()
}

// app bundles what every command needs: config, logger and an open,
// migrated database.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	repo    *repositories.Repository
	service *services.ShipmentService
}

func newApp() (*app, error) {
	cfg := config.LoadConfig()

	logger, err := core.NewLogger(*cfg)
	if err != nil {
		return nil, err
	}

	db, err := core.OpenDatabase(cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to open database", zap.String("driver", cfg.Database.Driver), zap.Error(err))
		return nil, err
	}

	if err := repositories.Migrate(db); err != nil {
		logger.Error("Failed to migrate database", zap.Error(err))
		_ = core.CloseDatabase(db)
		return nil, err
	}

	repo := repositories.NewRepository(db)
	return &app{
		cfg:     cfg,
		logger:  logger,
		db:      db,
		repo:    repo,
		service: services.NewShipmentService(logger, repo),
	}, nil
}

func (a *app) close() {
	if err := core.CloseDatabase(a.db); err != nil {
		a.logger.Error("Failed to close database", zap.Error(err))
	}
	_ = a.logger.Sync()
}
