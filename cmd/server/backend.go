package main

import (
	"context"
	"fmt"

	"github.com/mmynk/apartmanager/internal/config"
	"github.com/mmynk/apartmanager/internal/storage"
	"github.com/mmynk/apartmanager/internal/storage/memory"
	"github.com/mmynk/apartmanager/internal/storage/postgres"
	"github.com/mmynk/apartmanager/internal/storage/redisstore"
	"github.com/mmynk/apartmanager/internal/storage/sqlite"
)

// openKV opens the key-value backend named by cfg.Driver.
func openKV(ctx context.Context, cfg config.StorageConfig) (storage.KV, error) {
	var (
		kv  storage.KV
		err error
	)
	switch cfg.Driver {
	case "sqlite":
		var s *sqlite.SQLiteStore
		s, err = sqlite.New(cfg.Path)
		if err == nil {
			kv = s
		}
	case "memory":
		kv = memory.New()
	case "redis":
		var s *redisstore.Store
		s, err = redisstore.New(ctx, redisstore.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
		if err == nil {
			kv = s
		}
	case "postgres":
		var s *postgres.Store
		s, err = postgres.New(ctx, cfg.PostgresDSN)
		if err == nil {
			kv = s
		}
	default:
		err = fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	return kv, nil
}
