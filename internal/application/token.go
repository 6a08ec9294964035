package application

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore persists opaque bearer tokens. A token is an unstructured
// random string mapped server-side to a user id; clients present it in the
// Authorization header on every request.
type TokenStore interface {
	Save(ctx context.Context, token, userID string) error
	Resolve(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
	RevokeUser(ctx context.Context, userID string) error
	TTL() time.Duration
}

func keyToken(t string) string      { return "auth:token:" + t }
func keyUserTokens(uid string) string { return "auth:user:" + uid + ":tokens" }

// RedisTokenStore keeps token -> user id mappings in Redis with a TTL,
// plus a per-user set so all of a user's tokens can be revoked at once
// (e.g. after a password change).
type RedisTokenStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisTokenStore(rdb *redis.Client, ttl time.Duration) *RedisTokenStore {
	return &RedisTokenStore{rdb: rdb, ttl: ttl}
}

func (s *RedisTokenStore) TTL() time.Duration { return s.ttl }

func (s *RedisTokenStore) Save(ctx context.Context, token, userID string) error {
	pipe := s.rdb.Pipeline()
	pipe.Set(ctx, keyToken(token), userID, s.ttl)
	pipe.SAdd(ctx, keyUserTokens(userID), token)
	pipe.Expire(ctx, keyUserTokens(userID), s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisTokenStore) Resolve(ctx context.Context, token string) (string, error) {
	uid, err := s.rdb.Get(ctx, keyToken(token)).Result()
	if err != nil {
		return "", err
	}
	return uid, nil
}

func (s *RedisTokenStore) Revoke(ctx context.Context, token string) error {
	uid, err := s.rdb.Get(ctx, keyToken(token)).Result()
	if err == nil && uid != "" {
		s.rdb.SRem(ctx, keyUserTokens(uid), token)
	}
	return s.rdb.Del(ctx, keyToken(token)).Err()
}

func (s *RedisTokenStore) RevokeUser(ctx context.Context, userID string) error {
	tokens, err := s.rdb.SMembers(ctx, keyUserTokens(userID)).Result()
	if err != nil {
		return err
	}
	pipe := s.rdb.Pipeline()
	for _, t := range tokens {
		pipe.Del(ctx, keyToken(t))
	}
	pipe.Del(ctx, keyUserTokens(userID))
	_, err = pipe.Exec(ctx)
	return err
}

var _ TokenStore = (*RedisTokenStore)(nil)
