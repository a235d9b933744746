package main

import (
	"context"
	"log"

	"github.com/KirkDiggler/rpg-inventory/internal/codec"
	"github.com/KirkDiggler/rpg-inventory/internal/config"
	"github.com/KirkDiggler/rpg-inventory/internal/entities/inventory"
	"github.com/KirkDiggler/rpg-inventory/internal/entities/item"
	"github.com/KirkDiggler/rpg-inventory/internal/errors"
	orchestrator "github.com/KirkDiggler/rpg-inventory/internal/orchestrators/inventory"
	"github.com/KirkDiggler/rpg-inventory/internal/persistence"
	"github.com/KirkDiggler/rpg-inventory/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-inventory/internal/redis"
	"github.com/KirkDiggler/rpg-inventory/internal/repositories/saves"
)

// newService builds the storage backend, persistence adapter and
// orchestrator described by cfg. The returned closers release the backend.
func newService(ctx context.Context, cfg *config.Config) (_ orchestrator.Service, closers []func() error, err error) {
	defer func() {
		if err == nil {
			return
		}
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
		closers = nil
	}()

	repo, err := openRepository(ctx, cfg, &closers)
	if err != nil {
		return nil, closers, err
	}
	closers = append(closers, repo.Close)

	payloadCodec, err := codec.New(cfg.Codec, cfg.Compression)
	if err != nil {
		return nil, closers, err
	}

	adapter, err := persistence.NewAdapter[item.Item](&persistence.Config{
		Repository:  repo,
		Codec:       payloadCodec,
		Clock:       clock.New(),
		IDGenerator: inventory.DefaultIDGenerator,
	})
	if err != nil {
		return nil, closers, err
	}

	service, err := orchestrator.NewOrchestrator(&orchestrator.Config{
		Store:       adapter,
		IDGenerator: inventory.DefaultIDGenerator,
	})
	if err != nil {
		return nil, closers, err
	}

	return service, closers, nil
}

func openRepository(ctx context.Context, cfg *config.Config, closers *[]func() error) (saves.Repository, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return saves.NewFile(&saves.FileConfig{Dir: cfg.DataDir})

	case config.BackendSQLite:
		return saves.NewSQLite(ctx, &saves.SQLiteConfig{Path: cfg.SQLiteFile()})

	case config.BackendRedis:
		client, err := redis.NewClient(cfg.Redis.Addr, &redis.Options{
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, client.Close)

		if err := redis.Ping(ctx, client); err != nil {
			return nil, err
		}
		return saves.NewRedis(&saves.RedisConfig{Client: client})

	case config.BackendMemory:
		log.Printf("Using the memory backend: nothing is kept after this command exits")
		return saves.NewMemory(nil), nil

	default:
		return nil, errors.InvalidArgumentf("unknown backend %q", cfg.Backend)
	}
}
