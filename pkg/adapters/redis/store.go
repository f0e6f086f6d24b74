package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/replica/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by the store and the locker.
const DefaultPrefix = "replica:"

// Store implements ports.RunStore using Redis.
// Runs are stored as JSON strings and indexed in a sorted set scored by start time.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures the Store.
type Option func(*Store)

// WithTTL sets the expiration for run records. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store connected to address.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Client exposes the underlying client so a Locker can share the connection.
func (s *Store) Client() *backend.Client {
	return s.client
}

func (s *Store) key(id string) string {
	return s.prefix + "run:" + id
}

func (s *Store) indexKey() string {
	return s.prefix + "runs"
}

// Save persists the run and indexes it by start time.
func (s *Store) Save(ctx context.Context, run *domain.Run) error {
	if run.ID == "" {
		return fmt.Errorf("run id cannot be empty")
	}

	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(run.ID), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  float64(run.StartedAt.UnixMilli()),
		Member: run.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves a run from Redis.
func (s *Store) Load(ctx context.Context, id string) (*domain.Run, error) {
	val, err := s.client.Get(ctx, s.key(id)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var run domain.Run
	if err := json.Unmarshal([]byte(val), &run); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run: %w", err)
	}
	return &run, nil
}

// Delete removes the run and its index entry.
func (s *Store) Delete(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(id))
	pipe.ZRem(ctx, s.indexKey(), id)
	_, err := pipe.Exec(ctx)
	return err
}

// List returns all live runs, oldest first.
// Index entries whose record has expired are pruned lazily.
func (s *Store) List(ctx context.Context) ([]domain.Run, error) {
	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	if len(ids) == 0 {
		return []domain.Run{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.key(id)
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}

	runs := make([]domain.Run, 0, len(ids))
	var expired []any
	for i, v := range vals {
		str, ok := v.(string)
		if !ok {
			expired = append(expired, ids[i])
			continue
		}
		var run domain.Run
		if err := json.Unmarshal([]byte(str), &run); err != nil {
			return nil, fmt.Errorf("failed to unmarshal run %s: %w", ids[i], err)
		}
		runs = append(runs, run)
	}

	if len(expired) > 0 {
		if err := s.client.ZRem(ctx, s.indexKey(), expired...).Err(); err != nil {
			return nil, fmt.Errorf("failed to prune expired runs: %w", err)
		}
	}

	domain.SortRuns(runs)
	return runs, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
