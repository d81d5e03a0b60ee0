// AngelaMos | 2026
// store.go

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/core"
)

// CookieName is the fixed identifier of the session cookie.
const CookieName = "collab_session"

const keyPrefix = "session:"

// Store maps an opaque client-held token to the authenticated user's id.
// Implementations own session lifetime; Resolve refreshes the rolling TTL.
type Store interface {
	Create(ctx context.Context, userID string) (string, error)
	Resolve(ctx context.Context, token string) (string, error)
	Destroy(ctx context.Context, token string) error
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Create(ctx context.Context, userID string) (string, error) {
	token, err := core.GenerateSessionToken()
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+token, userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return token, nil
}

// Resolve returns the user id bound to the token and slides the expiry
// forward, giving sessions their rolling lifetime. Unknown or expired tokens
// yield ErrUnauthorized.
func (s *RedisStore) Resolve(ctx context.Context, token string) (string, error) {
	userID, err := s.client.GetEx(ctx, keyPrefix+token, s.ttl).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("resolve session: %w", core.ErrUnauthorized)
	}
	if err != nil {
		return "", fmt.Errorf("resolve session: %w", err)
	}

	return userID, nil
}

func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
