package cache

import (
	"context"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// TokenRevoker is a Redis-backed deny list of logged-out JWT ids. Each
// entry lives only as long as the token it blocks would have.
type TokenRevoker struct {
	client     *redisv9.Client
	defaultTTL time.Duration
}

func NewTokenRevoker(client *redisv9.Client, defaultTTL time.Duration) *TokenRevoker {
	if defaultTTL <= 0 {
		defaultTTL = 2 * time.Hour
	}
	return &TokenRevoker{
		client:     client,
		defaultTTL: defaultTTL,
	}
}

func (r *TokenRevoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = r.defaultTTL
	}
	if err := r.client.Set(ctx, r.key(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis set revoked token failed: %w", err)
	}
	return nil
}

func (r *TokenRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	exists, err := r.client.Exists(ctx, r.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis check revoked token failed: %w", err)
	}
	return exists > 0, nil
}

func (r *TokenRevoker) key(tokenID string) string {
	return fmt.Sprintf("auth:revoked:%s", tokenID)
}
