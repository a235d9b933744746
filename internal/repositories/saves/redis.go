package saves

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/KirkDiggler/rpg-inventory/internal/errors"
	"github.com/KirkDiggler/rpg-inventory/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-inventory/internal/redis"
)

const (
	saveKeyPrefix = "inventory:save:"
	saveIndexKey  = "inventory:saves"

	fieldData    = "data"
	fieldSavedAt = "saved_at"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis save repository
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a Redis-backed save repository. Each save is a hash at
// inventory:save:<name>; the set inventory:saves indexes the names.
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

func saveKey(name string) string {
	return saveKeyPrefix + name
}

func (r *redisRepository) Store(ctx context.Context, input StoreInput) (*StoreOutput, error) {
	if err := validateStore(input); err != nil {
		return nil, err
	}

	now := r.clock.Now()

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, saveKey(input.Name))
	pipe.HSet(ctx, saveKey(input.Name),
		fieldData, input.Data,
		fieldSavedAt, now.Format(time.RFC3339Nano))
	pipe.SAdd(ctx, saveIndexKey, input.Name)

	if _, err := pipe.Exec(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to store save in redis",
			"name", input.Name,
			"error", err)
		return nil, errors.Wrapf(err, "failed to store save %s", input.Name)
	}

	slog.DebugContext(ctx, "stored save in redis",
		"name", input.Name,
		"bytes", len(input.Data))

	return &StoreOutput{SavedAt: now}, nil
}

func (r *redisRepository) Load(ctx context.Context, input LoadInput) (*LoadOutput, error) {
	if err := ValidateName(input.Name); err != nil {
		return nil, err
	}

	fields, err := r.client.HGetAll(ctx, saveKey(input.Name)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get save %s", input.Name)
	}

	data, ok := fields[fieldData]
	if !ok {
		return nil, notFound(input.Name)
	}

	savedAt, err := time.Parse(time.RFC3339Nano, fields[fieldSavedAt])
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "save %s has an invalid timestamp", input.Name)
	}

	return &LoadOutput{
		Name:    input.Name,
		Data:    []byte(data),
		SavedAt: savedAt,
	}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := ValidateName(input.Name); err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	deleted := pipe.Del(ctx, saveKey(input.Name))
	pipe.SRem(ctx, saveIndexKey, input.Name)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete save %s", input.Name)
	}

	if deleted.Val() == 0 {
		return nil, notFound(input.Name)
	}

	slog.DebugContext(ctx, "deleted save from redis", "name", input.Name)
	return &DeleteOutput{}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	names, err := r.client.SMembers(ctx, saveIndexKey).Result()
	if err != nil {
		slog.ErrorContext(ctx, "failed to list saves from redis index",
			"key", saveIndexKey,
			"error", err)
		return nil, errors.Wrap(err, "failed to list saves")
	}
	slices.Sort(names)

	return &ListOutput{Names: names}, nil
}

// Close leaves the injected client open; its owner closes it
func (r *redisRepository) Close() error {
	return nil
}
