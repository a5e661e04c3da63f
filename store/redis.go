package store

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	sdk "github.com/redline-ai/sdk"
	"github.com/redline-ai/sdk/review"
)

// Store defines report persistence for completed reviews.
type Store interface {
	// Save persists a report under its ID.
	Save(ctx context.Context, report *review.ReviewReport) error

	// Get returns the report with the given ID.
	// Returns an error wrapping sdk.ErrReportNotFound when absent.
	Get(ctx context.Context, id string) (*review.ReviewReport, error)

	// List returns up to limit reports, newest first. A non-positive
	// limit returns all stored reports.
	List(ctx context.Context, limit int) ([]*review.ReviewReport, error)

	// Delete removes the report with the given ID. Deleting an absent
	// report is not an error.
	Delete(ctx context.Context, id string) error

	// Close closes the underlying connection.
	Close() error
}

// RedisOptions configures the Redis connection for a report store.
type RedisOptions struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379")
	URL string

	// KeyPrefix namespaces all keys written by this store. Default: "review".
	KeyPrefix string

	// TTL is how long saved reports live. Zero means no expiry.
	TTL time.Duration

	// TLS configuration for secure connections
	TLS *tls.Config

	// ConnectTimeout is the maximum time to wait for connection establishment
	ConnectTimeout time.Duration

	// ReadTimeout is the maximum time to wait for read operations
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait for write operations
	WriteTimeout time.Duration
}

// RedisStore implements Store using go-redis/v9.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a report store connected to the given Redis.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	const op = "store.NewRedisStore"

	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = "review"
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 30 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, sdk.NewConfigurationError(op,
			fmt.Errorf("%w: parse Redis URL: %v", sdk.ErrInvalidConfig, err))
	}

	redisOpts.TLSConfig = opts.TLS
	redisOpts.DialTimeout = opts.ConnectTimeout
	redisOpts.ReadTimeout = opts.ReadTimeout
	redisOpts.WriteTimeout = opts.WriteTimeout

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, sdk.NewStorageError(op, fmt.Errorf("connect to Redis: %w", err))
	}

	return &RedisStore{
		client: client,
		prefix: opts.KeyPrefix,
		ttl:    opts.TTL,
	}, nil
}

func (s *RedisStore) reportKey(id string) string {
	return fmt.Sprintf("%s:report:%s", s.prefix, id)
}

func (s *RedisStore) indexKey() string {
	return s.prefix + ":reports"
}

// Save persists a report under its ID and indexes it by creation time.
func (s *RedisStore) Save(ctx context.Context, report *review.ReviewReport) error {
	const op = "RedisStore.Save"

	if report == nil || report.ID == "" {
		return sdk.NewValidationError(op, errors.New("report must have an ID"))
	}

	data, err := json.Marshal(report)
	if err != nil {
		return sdk.NewStorageError(op, fmt.Errorf("marshal report: %w", err))
	}

	if err := s.client.Set(ctx, s.reportKey(report.ID), data, s.ttl).Err(); err != nil {
		return sdk.NewStorageError(op, fmt.Errorf("set report %s: %w", report.ID, err))
	}

	score := float64(report.CreatedAt.UnixNano())
	if err := s.client.ZAdd(ctx, s.indexKey(), redis.Z{Score: score, Member: report.ID}).Err(); err != nil {
		return sdk.NewStorageError(op, fmt.Errorf("index report %s: %w", report.ID, err))
	}

	return nil
}

// Get returns the report with the given ID.
func (s *RedisStore) Get(ctx context.Context, id string) (*review.ReviewReport, error) {
	const op = "RedisStore.Get"

	data, err := s.client.Get(ctx, s.reportKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, sdk.NewNotFoundError(op,
				fmt.Errorf("%w: %s", sdk.ErrReportNotFound, id))
		}
		return nil, sdk.NewStorageError(op, fmt.Errorf("get report %s: %w", id, err))
	}

	var report review.ReviewReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, sdk.NewStorageError(op, fmt.Errorf("unmarshal report %s: %w", id, err))
	}

	return &report, nil
}

// List returns up to limit reports, newest first.
func (s *RedisStore) List(ctx context.Context, limit int) ([]*review.ReviewReport, error) {
	const op = "RedisStore.List"

	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	ids, err := s.client.ZRevRange(ctx, s.indexKey(), 0, stop).Result()
	if err != nil {
		return nil, sdk.NewStorageError(op, fmt.Errorf("range report index: %w", err))
	}

	reports := make([]*review.ReviewReport, 0, len(ids))
	for _, id := range ids {
		report, err := s.Get(ctx, id)
		if err != nil {
			if errors.Is(err, sdk.ErrReportNotFound) {
				// Report expired after indexing; drop the stale entry.
				s.client.ZRem(ctx, s.indexKey(), id)
				continue
			}
			return nil, err
		}
		reports = append(reports, report)
	}

	return reports, nil
}

// Delete removes the report and its index entry.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	const op = "RedisStore.Delete"

	if err := s.client.Del(ctx, s.reportKey(id)).Err(); err != nil {
		return sdk.NewStorageError(op, fmt.Errorf("delete report %s: %w", id, err))
	}
	if err := s.client.ZRem(ctx, s.indexKey(), id).Err(); err != nil {
		return sdk.NewStorageError(op, fmt.Errorf("deindex report %s: %w", id, err))
	}
	return nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
