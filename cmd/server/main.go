package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sentiment_dashboard/backend/internal/ai"
	"github.com/sentiment_dashboard/backend/internal/config"
	"github.com/sentiment_dashboard/backend/internal/db"
	httpapi "github.com/sentiment_dashboard/backend/internal/http"
	"github.com/sentiment_dashboard/backend/internal/service"
)

var errNoDatabase = errors.New("DATABASE_URL is not set")

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := log.Level(level).With().Str("service", "sentiment-dashboard").Str("env", cfg.Env).Logger()

	rootCmd := &cobra.Command{
		Use:           "server",
		Short:         "Customer sentiment dashboard API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg, logger)
		},
	}
	rootCmd.AddCommand(serveCmd(cfg, logger))
	rootCmd.AddCommand(migrateCmd(cfg, logger))
	rootCmd.AddCommand(seedCmd(cfg, logger))

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("command failed")
	}
}

func serveCmd(cfg config.Config, logger zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg, logger)
		},
	}
}

func migrateCmd(cfg config.Config, logger zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()
			logger.Info().Msg("schema applied")
			return nil
		},
	}
}

func seedCmd(cfg config.Config, logger zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Replace all data with the demo fixtures",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.Seed(cmd.Context(), db.DefaultFixtures(time.Now())); err != nil {
				return err
			}
			logger.Info().Msg("fixtures loaded")
			return nil
		},
	}
}

// openStore connects to Postgres and applies the schema.
func openStore(ctx context.Context, cfg config.Config) (*db.Store, error) {
	if cfg.DatabaseURL == "" {
		return nil, errNoDatabase
	}
	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

func serve(ctx context.Context, cfg config.Config, logger zerolog.Logger) error {
	var repo service.Repository
	if cfg.DatabaseURL == "" {
		mem := db.NewMemory()
		if err := mem.Seed(ctx, db.DefaultFixtures(time.Now())); err != nil {
			return err
		}
		repo = mem
		logger.Info().Msg("DATABASE_URL not set, using in-memory store with demo data")
	} else {
		store, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer store.Close()
		if cfg.SeedOnStart {
			if err := store.Seed(ctx, db.DefaultFixtures(time.Now())); err != nil {
				return err
			}
			logger.Info().Msg("fixtures loaded")
		}
		repo = store
	}

	svc := service.New(repo, ai.MockGenerator{ModelVersion: cfg.InsightModel}, logger)
	if cfg.FeedbackDefaultLimit > 0 {
		svc.FeedbackLimit = cfg.FeedbackDefaultLimit
	}
	if cfg.InsightsDefaultLimit > 0 {
		svc.InsightLimit = cfg.InsightsDefaultLimit
	}

	router := httpapi.Router(cfg, svc, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.RequestTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return err
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
	return nil
}
