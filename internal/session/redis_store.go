package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store with a 7-day
// sliding expiry.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "session:",
		ttl:    TTL * time.Second,
	}
}

func (r *RedisStore) key(token string) string {
	return r.prefix + token
}

func (r *RedisStore) Create(ctx context.Context, userID, openID string) (string, error) {
	if userID == "" || openID == "" {
		return "", fmt.Errorf("session: missing user_id or openid")
	}

	token, err := GenerateToken()
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(Data{
		UserID:    userID,
		OpenID:    openID,
		CreatedAt: time.Now().UnixMilli(),
	})
	if err != nil {
		return "", fmt.Errorf("session: failed to marshal: %w", err)
	}

	if err := r.client.SetEx(ctx, r.key(token), data, r.ttl).Err(); err != nil {
		return "", err
	}

	return token, nil
}

func (r *RedisStore) Get(ctx context.Context, token string) (*Data, error) {
	val, err := r.client.Get(ctx, r.key(token)).Result()
	if err == redis.Nil {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err
	}

	var d Data
	if err := json.Unmarshal([]byte(val), &d); err != nil {
		// Malformed payloads fail closed: no session rather than an
		// infrastructure error.
		return nil, nil
	}

	return &d, nil
}

func (r *RedisStore) Refresh(ctx context.Context, token string) (bool, error) {
	ok, err := r.client.Expire(ctx, r.key(token), r.ttl).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (r *RedisStore) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, r.key(token)).Err()
}
