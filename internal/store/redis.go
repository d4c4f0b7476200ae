package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/zikashaLLP/Rotery-Club-sub000/internal/config"
	"github.com/zikashaLLP/Rotery-Club-sub000/internal/logger"
	"github.com/zikashaLLP/Rotery-Club-sub000/internal/models"
)

// NewRedisClient connects a redis client from configuration
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// RedisCheckoutStore persists checkout sessions as JSON blobs with a TTL
type RedisCheckoutStore struct {
	cli *redis.Client
	log logger.Logger
}

// NewRedisCheckoutStore creates a Redis-backed checkout store
func NewRedisCheckoutStore(cli *redis.Client, log logger.Logger) *RedisCheckoutStore {
	return &RedisCheckoutStore{cli: cli, log: log}
}

func (s *RedisCheckoutStore) Save(ctx context.Context, cs *models.CheckoutSession) error {
	data, err := json.Marshal(cs)
	if err != nil {
		return fmt.Errorf("failed to marshal checkout session: %w", err)
	}
	if err := s.cli.Set(ctx, s.key(cs.ID), data, SessionTTL).Err(); err != nil {
		s.log.Error("redis checkout save failed", "session_id", cs.ID, "error", err)
		return err
	}
	return nil
}

func (s *RedisCheckoutStore) Get(ctx context.Context, id string) (*models.CheckoutSession, error) {
	data, err := s.cli.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.log.Error("redis checkout get failed", "session_id", id, "error", err)
		return nil, err
	}

	var cs models.CheckoutSession
	if err := json.Unmarshal(data, &cs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checkout session: %w", err)
	}
	return &cs, nil
}

func (s *RedisCheckoutStore) Delete(ctx context.Context, id string) error {
	return s.cli.Del(ctx, s.key(id)).Err()
}

func (s *RedisCheckoutStore) key(id string) string {
	return "checkout:session:" + id
}
