package persistence

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/supportzen/internal/config"
)

// Redis persists each slot under a prefixed key via go-redis.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis connects to Redis using the provided configuration.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "supportzen:slot:"
	}
	return &Redis{client: client, prefix: prefix}
}

// Read returns the slot payload, or ErrSlotEmpty when the key is missing.
func (r *Redis) Read(ctx context.Context, slot Slot) ([]byte, error) {
	payload, err := r.client.Get(ctx, r.prefix+string(slot)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// Write replaces the slot payload. Slots never expire.
func (r *Redis) Write(ctx context.Context, slot Slot, payload []byte) error {
	return r.client.Set(ctx, r.prefix+string(slot), payload, 0).Err()
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.client == nil {
		return errors.New("redis client not configured")
	}
	return r.client.Ping(ctx).Err()
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.client != nil {
		_ = r.client.Close()
	}
}
