// File: vetcare/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"vetcare/config"
	"vetcare/database"
	sessionRepo "vetcare/database/repository/session"
	"vetcare/handlers"
	"vetcare/middleware"
	"vetcare/routes"
	"vetcare/services/scheduler"
	"vetcare/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "vetcare",
		Short:         "Veterinary clinic doctor session scheduling API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(indexesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var inMemory bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(inMemory)
		},
	}
	cmd.Flags().BoolVar(&inMemory, "memory", false, "keep sessions in process memory instead of MongoDB (development only)")
	return cmd
}

func indexesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "indexes",
		Short: "Create the MongoDB indexes and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadConfig(); err != nil {
				return err
			}
			logger := utils.GetLogger()
			defer logger.Sync()

			if err := database.InitDB(); err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			defer database.Disconnect(ctx)

			if err := sessionRepo.NewMongoSessionRepo(database.Database()).EnsureIndexes(ctx); err != nil {
				return err
			}
			logger.Info("indexes: session indexes are in place")
			return nil
		},
	}
}

func runServer(inMemory bool) error {
	if err := config.LoadConfig(); err != nil {
		return err
	}
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	roster, err := scheduler.RosterFromConfig(cfg.Doctors)
	if err != nil {
		return fmt.Errorf("main: invalid doctor roster: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// repositories.
	var repo sessionRepo.SessionRepository
	if inMemory {
		logger.Warn("main: using in-memory session store; data is lost on exit")
		repo = sessionRepo.NewMemorySessionRepo()
	} else {
		if err := database.InitDB(); err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := database.Disconnect(shutdownCtx); err != nil {
				logger.Warn("main: mongo disconnect failed", zap.Error(err))
			}
		}()
		repo = sessionRepo.NewMongoSessionRepo(database.Database())
		if err := repo.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("main: %w", err)
		}
	}

	var cache scheduler.ListCache
	if cfg.CacheEnabled {
		if err := utils.InitCache(); err != nil {
			return fmt.Errorf("main: %w", err)
		}
		defer utils.CacheClient.Close()
		cache = utils.NewSessionListCache(utils.CacheClient, cfg.SessionCacheTTL(), logger)
	}

	utils.StartHealthMonitor(ctx, cfg.HealthCheckInterval(), database.MongoClient, utils.CacheClient)

	// services.
	schedulerSvc := scheduler.New(repo, roster, scheduler.SystemClock, cfg.Location(), cache, logger)
	sessionHandler := handlers.NewSessionHandler(schedulerSvc)

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestContext(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin, cfg.RateLimitBurst, logger))
	routes.RegisterRoutes(router, handlers.NewHandlerBundle(sessionHandler))

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Sugar().Infof("Starting server on %s (clinic time zone %s, %d doctors)...",
			srv.Addr, cfg.Location(), len(roster.Doctors()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Wait for an OS signal or a listener failure.
	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("main: server failed to start: %w", err)
		}
	case <-ctx.Done():
	}
	logger.Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("main: server forced to shutdown: %w", err)
	}

	logger.Info("main: server stopped gracefully")
	return nil
}
