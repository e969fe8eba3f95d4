// Package redis provides Redis implementations of repository interfaces.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/refripanel/quote-go/internal/application/port"
	"github.com/refripanel/quote-go/internal/domain/entity"
	"github.com/refripanel/quote-go/internal/domain/repository"
)

// Options holds the connection settings for the session store.
type Options struct {
	Addr     string
	Password string
	DB       int

	// TTL is how long a session lives after its last write.
	TTL time.Duration

	// ConnectTimeout bounds the retry loop in Connect. Zero means
	// DefaultConnectTimeout.
	ConnectTimeout time.Duration
}

// DefaultConnectTimeout bounds Connect when Options leave it unset.
const DefaultConnectTimeout = 30 * time.Second

// SessionRepository stores form sessions as JSON values with a TTL.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepository wraps an existing client.
func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{client: client, ttl: ttl}
}

// Connect dials Redis and pings it with exponential backoff until it answers
// or opts.ConnectTimeout elapses.
//
// Parameters:
//   - ctx: context for cancellation
//   - opts: connection settings
//   - log: receives one warning per failed attempt
//
// Returns:
//   - *SessionRepository: a ready repository
//   - error: wraps repository.ErrConnectionFailed when every attempt failed
func Connect(ctx context.Context, opts Options, log port.Logger) (*SessionRepository, error) {
	const operation = "redis.Connect"

	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		PoolSize:     20,
		MinIdleConns: 2,
	})

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = opts.ConnectTimeout
	if retryPolicy.MaxElapsedTime <= 0 {
		retryPolicy.MaxElapsedTime = DefaultConnectTimeout
	}
	retryPolicy.MaxInterval = 5 * time.Second

	log = log.WithContext(ctx)
	log.Info("Connecting to Redis...", "addr", opts.Addr)

	err := backoff.RetryNotify(
		func() error {
			if err := client.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("ping: %w", err)
			}
			return nil
		},
		backoff.WithContext(retryPolicy, ctx),
		func(err error, duration time.Duration) {
			log.Warn("Redis connection failed, retrying...",
				"error", err,
				"next_attempt_in", duration.String())
		},
	)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: %w: %v", operation, repository.ErrConnectionFailed, err)
	}

	return NewSessionRepository(client, opts.TTL), nil
}

// Close closes the Redis connection.
func (r *SessionRepository) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}

func (r *SessionRepository) Create(ctx context.Context, session *entity.FormSession) error {
	if session == nil {
		return repository.ErrInvalidInput
	}
	data, err := encodeSession(session)
	if err != nil {
		return err
	}

	ok, err := r.client.SetNX(ctx, buildSessionKey(session.ID), data, r.ttl).Result()
	if err != nil {
		return storeError("create session", err)
	}
	if !ok {
		return repository.ErrDuplicateSession
	}
	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.FormSession, error) {
	data, err := r.client.Get(ctx, buildSessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, repository.ErrSessionNotFound
	}
	if err != nil {
		return nil, storeError("get session", err)
	}
	return decodeSession(data)
}

// Update writes the session only if the stored version is the one it was
// read at. The check and the write run in one WATCH transaction.
func (r *SessionRepository) Update(ctx context.Context, session *entity.FormSession) error {
	if session == nil {
		return repository.ErrInvalidInput
	}
	data, err := encodeSession(session)
	if err != nil {
		return err
	}
	key := buildSessionKey(session.ID)

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return repository.ErrSessionNotFound
		}
		if err != nil {
			return storeError("read session", err)
		}
		current, err := decodeSession(raw)
		if err != nil {
			return err
		}
		if current.Version != session.Version-1 {
			return repository.ErrOptimisticLock
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)
			return nil
		})
		return err
	}, key)

	switch {
	case errors.Is(err, redis.TxFailedErr):
		return repository.ErrOptimisticLock
	case err == nil,
		errors.Is(err, repository.ErrSessionNotFound),
		errors.Is(err, repository.ErrOptimisticLock),
		errors.Is(err, repository.ErrConnectionFailed):
		return err
	default:
		return storeError("update session", err)
	}
}

func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, buildSessionKey(id)).Err(); err != nil {
		return storeError("delete session", err)
	}
	return nil
}

func buildSessionKey(id uuid.UUID) string {
	return fmt.Sprintf("quote:session:%s", id)
}

func encodeSession(session *entity.FormSession) ([]byte, error) {
	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}
	return data, nil
}

func decodeSession(data []byte) (*entity.FormSession, error) {
	var session entity.FormSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

// Ping implements repository.SessionRepository.
func (r *SessionRepository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return storeError("redis.Ping", err)
	}
	return nil
}

func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, repository.ErrConnectionFailed, err)
}

var _ repository.SessionRepository = (*SessionRepository)(nil)
