package store

import (
	"context"
	"fmt"

	"edugen/internal/cache"
	"edugen/internal/config"
	"edugen/internal/database"
	"edugen/internal/domain"
	"edugen/internal/logger"

	"go.uber.org/zap"
)

// Open connects the slot backend named by cfg.Storage.Backend. The returned
// close function releases any connection it opened.
func Open(ctx context.Context, cfg *config.Config) (domain.KeyValueStore, func() error, error) {
	noop := func() error { return nil }
	l := logger.Get().With(zap.String("backend", cfg.Storage.Backend))

	switch cfg.Storage.Backend {
	case config.StorageMemory:
		l.Info("Using in-memory slot storage")
		return NewMemoryKV(), noop, nil

	case config.StorageFile:
		kv, err := NewFileKV(cfg.Storage.FileDir)
		if err != nil {
			return nil, nil, err
		}
		l.Info("Using file slot storage", zap.String("dir", cfg.Storage.FileDir))
		return kv, noop, nil

	case config.StorageRedis:
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		l.Info("Using Redis slot storage", zap.String("address", cfg.Redis.Address))
		return NewRedisKV(client, cfg.Storage.KeyPrefix), client.Close, nil

	case config.StorageOracle:
		db, err := database.NewSQLXOracleDB(ctx, cfg.GetDSN())
		if err != nil {
			return nil, nil, err
		}
		l.Info("Using Oracle slot storage", zap.String("host", cfg.DB.Host))
		return NewOracleKV(db), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unsupported storage backend: %q", cfg.Storage.Backend)
	}
}
