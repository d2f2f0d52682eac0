package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// Session is the server-side state referenced by the opaque token a client
// holds in its cookie.
type Session struct {
	AccountID uint   `json:"account_id"`
	Username  string `json:"username"`
}

// Store persists sessions keyed by opaque token. Get returns (nil, nil) for a
// missing or expired token; an error means the store itself failed, which is
// distinct from "no session".
type Store interface {
	Create(ctx context.Context, sess Session, ttl time.Duration) (token string, err error)
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

// RedisStore keeps sessions in Redis with a TTL per token. Unlike the cache
// wrapper it does not swallow errors: losing the session backend must not
// silently log everyone out as "no session" vs. surface as a failure.
type RedisStore struct {
	client *redis.Client
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(addr, password string, db int) *RedisStore {
	return &RedisStore{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// Create stores the session under a fresh random token and returns the token.
func (s *RedisStore) Create(ctx context.Context, sess Session, ttl time.Duration) (string, error) {
	payload, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}

	token := newToken()
	if err := s.client.Set(ctx, sessionKeyPrefix+token, payload, ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Get resolves a token to its session, or (nil, nil) when absent or expired.
func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &sess, nil
}

// Delete invalidates a token. Deleting an unknown token is a no-op.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func newToken() string {
	return uuid.New().String()
}
