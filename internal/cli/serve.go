package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/evcraddock/threads/internal/comment"
	"github.com/evcraddock/threads/internal/config"
	"github.com/evcraddock/threads/internal/db"
	"github.com/evcraddock/threads/internal/logging"
	"github.com/evcraddock/threads/internal/web"
)

type serveOptions struct {
	port       int
	dev        bool
	configPath string
	store      string
	seed       bool
}

func newServeCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the comment server",
		Long:  "Start the HTTP server for the comments API and the threaded web page.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := serveConfig(cmd, opts)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}

	cmd.Flags().IntVar(&opts.port, "port", 5000, "port to listen on")
	cmd.Flags().BoolVar(&opts.dev, "dev", false, "human-readable debug logging")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "YAML config file")
	cmd.Flags().StringVar(&opts.store, "store", config.StoreMemory, "comment store (memory|sqlite)")
	cmd.Flags().BoolVar(&opts.seed, "seed", true, "load the sample comments at startup")

	return cmd
}

// serveConfig loads .env, the config file and the environment, then applies
// any flags given on the command line.
func serveConfig(cmd *cobra.Command, opts serveOptions) (config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config.Config{}, fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Port = opts.port
	}
	if flags.Changed("dev") {
		cfg.DevMode = opts.dev
	}
	if flags.Changed("store") {
		cfg.Store = opts.store
	}
	if flags.Changed("seed") {
		cfg.Seed = opts.seed
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runServe(ctx context.Context, cfg config.Config) error {
	logging.Setup(cfg.DevMode)

	store, closeStore, err := openStore(cfg.Store)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.Seed {
		if err := comment.Seed(ctx, store, time.Now()); err != nil {
			return fmt.Errorf("seeding comments: %w", err)
		}
	}

	srv, err := web.NewServer(comment.NewService(store), cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Starting threads on http://localhost:%d\n", cfg.Port)
	return srv.ListenAndServe(ctx)
}

// openStore returns the configured comment store and a func that releases it.
func openStore(kind string) (comment.Store, func(), error) {
	switch kind {
	case config.StoreSQLite:
		database, err := db.Open()
		if err != nil {
			return nil, nil, err
		}
		return comment.NewRepository(database), func() { closeDB(database) }, nil
	case config.StoreMemory:
		return comment.NewMemoryStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", kind)
	}
}

// closeDB closes the database, logging any error.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		slog.Warn("closing database", "error", err)
	}
}
