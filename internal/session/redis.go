package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/avelina-cafes/cafewifi/internal/model"
	"github.com/avelina-cafes/cafewifi/internal/utils"
)

const redisKeyPrefix = "session:"

// RedisStore persists sessions in Redis with a key TTL matching the
// session lifetime, so expiry needs no application-side sweeping.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore wraps an already-connected Redis client.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// Create mints a new session and stores it under session:<id>.
func (s *RedisStore) Create(ctx context.Context, userID int64, ttl time.Duration) (*model.Session, error) {
	id, err := utils.NewSessionID()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	sess := model.Session{
		ID:        id,
		UserID:    userID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	body, err := json.Marshal(sess)
	if err != nil {
		return nil, err
	}
	if err := s.rdb.Set(ctx, redisKeyPrefix+id, body, ttl).Err(); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Get resolves a session id. Redis expiry removes stale keys, but the
// record's own expiry is still checked to close the gap between the
// two clocks.
func (s *RedisStore) Get(ctx context.Context, id string) (*model.Session, error) {
	body, err := s.rdb.Get(ctx, redisKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var sess model.Session
	if err := json.Unmarshal(body, &sess); err != nil {
		return nil, err
	}
	if sess.Expired(time.Now().UTC()) {
		_ = s.rdb.Del(ctx, redisKeyPrefix+id).Err()
		return nil, ErrNotFound
	}
	return &sess, nil
}

// Delete removes a session key. Deleting an absent key is a no-op.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, redisKeyPrefix+id).Err()
}
