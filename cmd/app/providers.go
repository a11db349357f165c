package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/renaqiu/stylematch/internal/domain/closet"
	"github.com/renaqiu/stylematch/internal/domain/matching"
	"github.com/renaqiu/stylematch/internal/domain/scan"
	"github.com/renaqiu/stylematch/internal/infra/closetrepo"
	"github.com/renaqiu/stylematch/internal/infra/config"
	"github.com/renaqiu/stylematch/internal/infra/imagestore"
	"github.com/renaqiu/stylematch/internal/infra/scanstore"
)

func provideMatchingConfig(cfg *config.Config) matching.Config {
	return matching.Config{
		HighThreshold:   cfg.Matching.HighThreshold,
		MediumThreshold: cfg.Matching.MediumThreshold,
		MaxSuggestions:  cfg.Matching.MaxSuggestions,
		Weights: matching.Weights{
			Category:  cfg.Matching.Weights.Category,
			Color:     cfg.Matching.Weights.Color,
			Style:     cfg.Matching.Weights.Style,
			Formality: cfg.Matching.Weights.Formality,
		},
	}
}

func provideMatchingEngine(cfg matching.Config) *matching.Engine {
	return matching.NewEngine(cfg)
}

func provideClosetConfig(cfg *config.Config) closet.Config {
	return closet.Config{
		SimilarityThreshold: cfg.Closet.SimilarityThreshold,
	}
}

func provideScanConfig(cfg *config.Config) scan.Config {
	return scan.Config{
		SavedScanTTL:  cfg.Scans.SavedScanTTL,
		TrendingCount: cfg.Scans.TrendingCount,
	}
}

func provideClosetRepository(cfg *config.Config, logger *slog.Logger) closet.Repository {
	fallback := closetrepo.NewMemoryRepository()
	dsn := strings.TrimSpace(cfg.Closet.Postgres.DSN)
	if dsn == "" {
		logger.Info("closet postgres dsn not set, using memory repository")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return fallback
	}
	if cfg.Closet.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Closet.Postgres.MaxConns
	}
	if cfg.Closet.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Closet.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("closet postgres repository enabled")
	return closetrepo.NewPostgresRepository(pool)
}

func provideScanStore(cfg *config.Config, logger *slog.Logger) scan.Store {
	if cfg.Scans.Redis.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return scanstore.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return scanstore.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
		} else {
			logger.Info("scan valkey store enabled", "addr", cfg.Scans.Redis.Addr)
			return scanstore.NewValkeyStore(client, "scans")
		}
	}
	return scanstore.NewMemoryStore()
}

func provideImageStore(cfg *config.Config, logger *slog.Logger) closet.ImageStore {
	if !cfg.Images.Enabled {
		return imagestore.NewMemoryStorage()
	}
	storage, err := imagestore.NewMinioStorage(
		cfg.Images.Endpoint,
		cfg.Images.AccessKey,
		cfg.Images.SecretKey,
		cfg.Images.Bucket,
		cfg.Images.Region,
		logger,
	)
	if err != nil {
		logger.Error("failed to initialize object storage, falling back to memory images", "error", err)
		return imagestore.NewMemoryStorage()
	}
	logger.Info("object storage enabled", "bucket", cfg.Images.Bucket)
	return storage
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Scans.Redis.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Scans.Redis.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Scans.Redis.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
