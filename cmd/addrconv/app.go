package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/addrconv/internal/config"
	"github.com/addrconv/internal/db"
	"github.com/addrconv/internal/logger"
	"github.com/addrconv/internal/metrics"
	"github.com/addrconv/internal/service"
	"github.com/addrconv/internal/storage"
)

// app carries the state shared by every subcommand.
type app struct {
	cfg      config.Config
	log      zerolog.Logger
	registry *prometheus.Registry
	closers  []func() error
}

// configure merges persistent flags over the environment.
func (a *app) configure(cmd *cobra.Command) error {
	a.cfg = config.FromEnv()
	flags := cmd.Flags()

	if flags.Changed("storage") {
		v, _ := flags.GetString("storage")
		a.cfg.Storage.Backend = strings.ToLower(v)
	}
	if flags.Changed("storage-dir") {
		a.cfg.Storage.Dir, _ = flags.GetString("storage-dir")
	}
	if flags.Changed("log-level") {
		a.cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("normalize") {
		a.cfg.Normalize, _ = flags.GetBool("normalize")
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	a.log = logger.New(cmd.ErrOrStderr(), logger.Config{Level: a.cfg.Log.Level, Pretty: a.cfg.Log.Pretty})
	a.registry = prometheus.NewRegistry()
	return nil
}

// service opens the configured repository and wraps it in a Service.
func (a *app) service(ctx context.Context) (*service.Service, error) {
	repo, err := a.openRepository(ctx)
	if err != nil {
		return nil, err
	}
	return service.New(repo,
		service.WithLogger(a.log),
		service.WithMetrics(metrics.New(a.registry)),
		service.WithNormalize(a.cfg.Normalize),
	), nil
}

func (a *app) openRepository(ctx context.Context) (storage.Repository, error) {
	sc := a.cfg.Storage
	a.log.Debug().Str("backend", sc.Backend).Msg("opening storage")

	switch sc.Backend {
	case config.StorageMemory:
		return storage.NewMemoryStore(), nil
	case config.StorageFile:
		return storage.NewFileStore(sc.Dir)
	case config.StoragePostgres:
		conn, err := db.NewConnection(ctx, sc)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, conn.Close)
		return storage.NewPostgresStore(conn.DB), nil
	case config.StorageRedis:
		opts, err := redis.ParseURL(sc.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		return storage.NewRedisStore(client, sc.RedisKeyPrefix), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", sc.Backend)
	}
}

func (a *app) close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// readAddress returns the --address value, reading stdin when it is "-".
func readAddress(cmd *cobra.Command) ([]byte, error) {
	value, _ := cmd.Flags().GetString("address")
	if value == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read address from stdin: %w", err)
		}
		return data, nil
	}
	if strings.TrimSpace(value) == "" {
		return nil, fmt.Errorf("--address must not be empty")
	}
	return []byte(value), nil
}

func formatFlag(cmd *cobra.Command, name string) (service.Format, error) {
	value, _ := cmd.Flags().GetString(name)
	return service.ParseFormat(value)
}
