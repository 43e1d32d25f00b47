package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/sync/errgroup"

	_ "github.com/shenikar/incident_dispatch/docs"
	v1 "github.com/shenikar/incident_dispatch/internal/handler/http/v1"
	"github.com/shenikar/incident_dispatch/internal/metrics"
	"github.com/shenikar/incident_dispatch/internal/notification"
	"github.com/shenikar/incident_dispatch/internal/repository"
	"github.com/shenikar/incident_dispatch/internal/routing"
	"github.com/shenikar/incident_dispatch/internal/service"
	"github.com/shenikar/incident_dispatch/pkg/postgres"
	redisclient "github.com/shenikar/incident_dispatch/pkg/redis"
	"github.com/shenikar/incident_dispatch/pkg/tracing"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the notification worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Контекст для graceful shutdown
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to init tracing: %w", err)
	}
	defer tracing.ShutdownWithTimeout(context.Background(), shutdownTracing, log)

	// Запуск миграций
	log.Info("Running database migrations...")
	if err := postgres.Migrate(cfg.DatabaseURL, "migrations", false); err != nil {
		return err
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	m, err := metrics.New(nil)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	// Инициализация репозиториев
	routingCfg := routing.DefaultConfig()
	routingCfg.AllowUnknownLocation = cfg.DispatchAllowUnknownLocation
	incidentRepo := repository.NewIncidentRepository(dbpool, redisClient, log)
	assignmentRepo := repository.NewAssignmentRepository(dbpool, redisClient, cfg.DispatchLockTimeout, log)
	authorityRepo := repository.NewAuthorityRepository(dbpool, routingCfg.ResponseWindow)

	router, err := routing.NewRouter(authorityRepo, routingCfg)
	if err != nil {
		return fmt.Errorf("invalid routing config: %w", err)
	}

	// Инициализация сервисов
	dispatchService := service.NewDispatchService(
		incidentRepo,
		assignmentRepo,
		router,
		notification.NewRedisPublisher(redisClient),
		cfg,
		log,
		service.WithMetrics(m),
	)

	// Инициализация хэндлеров
	handler := v1.NewHandler(dispatchService, log, cfg)

	// Настройка Gin роутера
	engine := gin.New()
	engine.Use(gin.Recovery())
	api := engine.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Swagger UI и метрики
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	worker := notification.NewWorker(redisClient, log, cfg)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("HTTP server started on port %s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return worker.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Received shutdown signal, shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Server gracefully stopped")
	return nil
}
