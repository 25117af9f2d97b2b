package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisStore keeps sessions as JSON strings whose Redis TTL matches the
// session lifetime.
type RedisStore struct {
	client redis.Cmdable
}

func NewRedisStore(client redis.Cmdable) RedisStore {
	return RedisStore{
		client: client,
	}
}

func Key(token string) string {
	return keyPrefix + token
}

func (s RedisStore) Save(ctx context.Context, token string, session Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshalling session: %w", err)
	}

	if err := s.client.Set(ctx, Key(token), string(payload), ttl).Err(); err != nil {
		return fmt.Errorf("setting session key: %w", err)
	}

	return nil
}

func (s RedisStore) Load(ctx context.Context, token string) (Session, error) {
	payload, err := s.client.Get(ctx, Key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("getting session key: %w", err)
	}

	var session Session
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return Session{}, fmt.Errorf("unmarshalling session: %w", err)
	}

	return session, nil
}

func (s RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, Key(token)).Err(); err != nil {
		return fmt.Errorf("deleting session key: %w", err)
	}

	return nil
}
