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

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"bug-tracker/internal/config"
	"bug-tracker/internal/database"
	"bug-tracker/internal/repository"
	"bug-tracker/internal/repository/memory"
	mongorepo "bug-tracker/internal/repository/mongo"
	"bug-tracker/internal/repository/postgres"
	"bug-tracker/internal/router"
	"bug-tracker/pkg/logger"
)

var cfgPath string

func main() {
	root := &cobra.Command{
		Use:          "bug-tracker",
		Short:        "Bug tracking REST API",
		SilenceUsage: true,
		RunE:         runServe,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to YAML config file")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create the Postgres schema",
		RunE:  runMigrate,
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	// config + logger
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	l := logger.New(cfg.Env)

	// storage
	repo, closeStore, err := openStore(cmd.Context(), cfg, l)
	if err != nil {
		l.Error().Err(err).Str("driver", cfg.StoreDriver).Msg("store connect failed")
		return err
	}
	defer closeStore()

	// http
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.New(l, repo, cfg),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		l.Info().Str("addr", srv.Addr).Str("driver", cfg.StoreDriver).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-stop:
	case err := <-errCh:
		l.Error().Err(err).Msg("server error")
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	l.Info().Msg("shutdown complete")
	return nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	l := logger.New(cfg.Env)

	pool, err := database.Open(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := database.Migrate(cmd.Context(), pool); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	l.Info().Msg("schema up to date")
	return nil
}

func openStore(ctx context.Context, cfg config.Config, l zerolog.Logger) (repository.BugRepository, func(), error) {
	switch cfg.StoreDriver {
	case "postgres":
		pool, err := database.Open(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewBugRepo(pool), pool.Close, nil
	case "mongo":
		client, db, err := database.OpenMongo(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		repo := mongorepo.NewBugRepo(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			l.Warn().Err(err).Msg("mongo index creation failed")
		}
		return repo, func() { _ = client.Disconnect(context.Background()) }, nil
	default:
		l.Warn().Msg("using in-memory store; data is lost on exit")
		return memory.NewBugRepo(), func() {}, nil
	}
}
