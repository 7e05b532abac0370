package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"checkout-core/internal/config"
	"checkout-core/internal/model"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RedisStore keeps the lines of one cart in a Redis list, one JSON document per line.
type RedisStore struct {
	client    redis.UniversalClient
	key       string
	logger    zerolog.Logger
	mu        sync.Mutex
	closed    bool
	closeOnce sync.Once
}

// NewRedisStore creates a store that keeps its lines under key. Close closes client.
func NewRedisStore(client redis.UniversalClient, key string, logger zerolog.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		key:    key,
		logger: logger.With().Str("component", "redis-cart-store").Str("key", key).Logger(),
	}
}

// OpenRedisStore connects to cfg.URL and returns a store for a fresh cart key.
func OpenRedisStore(ctx context.Context, cfg config.RedisConfig, logger zerolog.Logger) (*RedisStore, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	key := fmt.Sprintf("%s:%s", cfg.KeyPrefix, uuid.NewString())
	logger.Info().Int("redis_db", opts.DB).Str("key", key).Msg("redis cart store connected")

	return NewRedisStore(client, key, logger), nil
}

// Key returns the Redis key holding the lines.
func (s *RedisStore) Key() string {
	return s.key
}

// Append pushes a new line to the tail of the list.
func (s *RedisStore) Append(ctx context.Context, item model.Item) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	if err := item.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to encode cart item: %w", err)
	}

	if err := s.client.RPush(ctx, s.key, payload).Err(); err != nil {
		s.logger.Error().Err(err).Str("item", item.Name).Msg("failed to push cart item")
		return fmt.Errorf("failed to push cart item: %w", err)
	}

	return nil
}

// Items reads the whole list in insertion order.
func (s *RedisStore) Items(ctx context.Context) ([]model.Item, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	raw, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to read cart items")
		return nil, fmt.Errorf("failed to read cart items: %w", err)
	}

	items := make([]model.Item, 0, len(raw))
	for i, doc := range raw {
		var item model.Item
		if err := json.Unmarshal([]byte(doc), &item); err != nil {
			s.logger.Error().Err(err).Int("index", i).Msg("failed to decode cart item")
			return nil, fmt.Errorf("failed to decode cart item %d: %w", i, err)
		}
		items = append(items, item)
	}

	return items, nil
}

// ResetDatabase deletes the list.
func (s *RedisStore) ResetDatabase(ctx context.Context) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		s.logger.Error().Err(err).Msg("failed to reset cart")
		return fmt.Errorf("failed to reset cart: %w", err)
	}
	return nil
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()

		if err = s.client.Close(); err != nil {
			s.logger.Error().Err(err).Msg("failed to close redis client")
		}
	})
	return err
}

func (s *RedisStore) checkOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	return nil
}
