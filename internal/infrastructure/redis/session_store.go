package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/date-app-backend/internal/domain/entity"
	"github.com/oksasatya/date-app-backend/internal/domain/repository"
)

// NewClient initializes a redis client
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

// SessionStore keeps one hash per signed-in user at user:session:<uid>.
type SessionStore struct {
	Client *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{Client: rdb}
}

func (s *SessionStore) Save(ctx context.Context, sess entity.Session, ttl time.Duration) error {
	key := sessionKey(sess.UserID)
	pipe := s.Client.Pipeline()
	pipe.HSet(ctx, key, map[string]any{
		"user_id":    sess.UserID,
		"email":      sess.Email,
		"sid":        sess.SessionID,
		"created_at": sess.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save session %s: %w", key, err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, uid string) (*entity.Session, error) {
	data, err := s.Client.HGetAll(ctx, sessionKey(uid)).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, repository.ErrSessionNotFound
	}
	created, _ := time.Parse(time.RFC3339Nano, data["created_at"])
	return &entity.Session{
		UserID:    data["user_id"],
		Email:     data["email"],
		SessionID: data["sid"],
		CreatedAt: created,
	}, nil
}

// Revoke drops the session; revoking a missing session succeeds.
func (s *SessionStore) Revoke(ctx context.Context, uid string) error {
	return s.Client.Del(ctx, sessionKey(uid)).Err()
}

var _ repository.SessionStore = (*SessionStore)(nil)
