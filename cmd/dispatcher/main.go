package main

import (
	"context"

	"github.com/shenikar/incident_dispatch/internal/config"
	"github.com/shenikar/incident_dispatch/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// @title Incident Dispatch API
// @version 1.0
// @description Routes reported incidents to the most suitable emergency authority and tracks assignments.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	root := &cobra.Command{
		Use:           "dispatcher",
		Short:         "Incident dispatch service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	root.AddCommand(newServeCmd(), newMigrateCmd())

	if err := root.ExecuteContext(context.Background()); err != nil {
		logrus.Fatalf("dispatcher: %v", err)
	}
}

// loadConfig загружает конфигурацию и создает логгер
func loadConfig() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.New(cfg.LogLevel, cfg.LogFormat, cfg.TracingServiceName), nil
}
