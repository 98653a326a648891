package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/firestore"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"eTEats_recipes/config"
	"eTEats_recipes/handlers"
	"eTEats_recipes/metrics"
	"eTEats_recipes/repository"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(cfgPath func() string) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the recipe API",
		Long: `Run a recipe API compatible with the one the other commands talk to.

Recipes are kept in memory, in a Firestore collection or in a BigQuery table
(server.repository).
server.seed_file, when set, is a JSON array of recipes loaded at start.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(cfgPath())
			if err != nil {
				return err
			}
			defer log.Sync()
			if addr != "" {
				cfg.Server.Addr = addr
			}

			ln, err := net.Listen("tcp", cfg.Server.Addr)
			if err != nil {
				return fmt.Errorf("listen on %s: %w", cfg.Server.Addr, err)
			}
			return serve(cmd.Context(), cfg, log, ln)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

// openRepository builds the configured recipe repository. The returned
// function releases it.
func openRepository(ctx context.Context, cfg config.ServerConfig) (repository.Repository, func() error, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	switch cfg.Repository {
	case "firestore":
		client, err := firestore.NewClient(ctx, cfg.FirestoreProject, opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("create firestore client: %w", err)
		}
		return repository.NewFirestore(client, cfg.FirestoreCollection), client.Close, nil
	case "bigquery":
		client, err := bigquery.NewClient(ctx, cfg.BigQueryProject, opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("create bigquery client: %w", err)
		}
		repo := repository.NewBigQuery(client, cfg.BigQueryDataset, cfg.BigQueryTable)
		if err := repo.EnsureTable(ctx); err != nil {
			client.Close()
			return nil, nil, err
		}
		return repo, client.Close, nil
	case "memory", "":
		return repository.NewMemory(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown repository %q", cfg.Repository)
	}
}

// serve runs the API on ln until ctx is done, then shuts down gracefully.
func serve(ctx context.Context, cfg *config.Config, log *zap.Logger, ln net.Listener) error {
	repo, closeRepo, err := openRepository(ctx, cfg.Server)
	if err != nil {
		ln.Close()
		return err
	}
	defer func() {
		if err := closeRepo(); err != nil {
			log.Warn("closing repository", zap.Error(err))
		}
	}()

	if cfg.Server.SeedFile != "" {
		n, err := repository.LoadSeed(ctx, repo, cfg.Server.SeedFile)
		if err != nil {
			ln.Close()
			return fmt.Errorf("seed recipes: %w", err)
		}
		log.Info("seeded recipes", zap.Int("count", n), zap.String("file", cfg.Server.SeedFile))
	}

	handler := handlers.NewRouter(handlers.Deps{
		Repo:            repo,
		Log:             log.Named("http"),
		Metrics:         metrics.New(),
		ThumbnailHeight: cfg.Server.ThumbnailHeight,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", ln.Addr().String()), zap.String("repository", cfg.Server.Repository))
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
