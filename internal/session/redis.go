package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oggyb/mentormatch/internal/config"
)

// ErrNotFound is returned for unknown, expired or revoked sessions.
var ErrNotFound = errors.New("session not found")

// Session is the server-side half of a bearer token.
type Session struct {
	ID        string
	UserID    uint64
	ExpiresAt time.Time
}

type RedisStore struct {
	Client *redis.Client
}

// NewRedisStore initializes Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisStore(cfg *config.Config) *RedisStore {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return &RedisStore{Client: redis.NewClient(opts)}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.Client.Close()
}

// KeyForSession generates Redis key for a session id
func (s *RedisStore) KeyForSession(sid string) string {
	return fmt.Sprintf("sessions:%s", sid)
}

// KeyForUserSessions generates Redis key for the set of a user's session ids
func (s *RedisStore) KeyForUserSessions(userID uint64) string {
	return fmt.Sprintf("user_sessions:%d", userID)
}

// Create stores the session until its expiry and indexes it under the user.
func (s *RedisStore) Create(ctx context.Context, sess Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", sess.ID)
	}

	pipe := s.Client.TxPipeline()
	pipe.HSet(ctx, s.KeyForSession(sess.ID), map[string]interface{}{
		"user_id":    sess.UserID,
		"expires_at": sess.ExpiresAt.Unix(),
	})
	pipe.Expire(ctx, s.KeyForSession(sess.ID), ttl)
	pipe.SAdd(ctx, s.KeyForUserSessions(sess.UserID), sess.ID)
	pipe.Expire(ctx, s.KeyForUserSessions(sess.UserID), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("create redis session: %w", err)
	}
	return nil
}

// Get loads a live session.
func (s *RedisStore) Get(ctx context.Context, sid string) (Session, error) {
	values, err := s.Client.HGetAll(ctx, s.KeyForSession(sid)).Result()
	if err != nil {
		return Session{}, fmt.Errorf("get session: %w", err)
	}
	if len(values) == 0 {
		return Session{}, ErrNotFound
	}

	userID, err := strconv.ParseUint(values["user_id"], 10, 64)
	if err != nil {
		return Session{}, fmt.Errorf("parse session user: %w", err)
	}
	expUnix, err := strconv.ParseInt(values["expires_at"], 10, 64)
	if err != nil {
		return Session{}, fmt.Errorf("parse session expiry: %w", err)
	}

	return Session{ID: sid, UserID: userID, ExpiresAt: time.Unix(expUnix, 0).UTC()}, nil
}

// Delete revokes one session. Deleting an unknown session is not an error.
func (s *RedisStore) Delete(ctx context.Context, sid string) error {
	sess, err := s.Get(ctx, sid)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	pipe := s.Client.TxPipeline()
	pipe.Del(ctx, s.KeyForSession(sid))
	pipe.SRem(ctx, s.KeyForUserSessions(sess.UserID), sid)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete redis session: %w", err)
	}
	return nil
}
