package utils

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"helpdesk-app/internal/models"
)

const (
	SessionCookieName = "helpdesk_session"
	SessionTTL        = 24 * time.Hour
)

var ErrNoSession = errors.New("no active session")

// Session is the request-scoped caller identity. Role is resolved per request
// from the caller's user document, never taken from client input.
type Session struct {
	Token     string      `json:"-"`
	UserID    string      `json:"userId"`
	Email     string      `json:"email"`
	Role      models.Role `json:"-"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// SessionStore keeps sessions in Redis under an opaque token with a sliding
// one-day TTL.
type SessionStore struct {
	redis *RedisClient
}

func NewSessionStore(redis *RedisClient) *SessionStore {
	return &SessionStore{redis: redis}
}

func (s *SessionStore) Create(ctx context.Context, userID, email string) (*Session, error) {
	token, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	sess := &Session{
		Token:     token,
		UserID:    userID,
		Email:     email,
		ExpiresAt: time.Now().Add(SessionTTL),
	}
	if err := s.redis.Set(ctx, sessionKey(token), sess, SessionTTL); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get loads a session and slides its expiry forward by a full TTL.
func (s *SessionStore) Get(ctx context.Context, token string) (*Session, error) {
	var sess Session
	if err := s.redis.Get(ctx, sessionKey(token), &sess); err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	sess.Token = token

	sess.ExpiresAt = time.Now().Add(SessionTTL)
	if err := s.redis.Set(ctx, sessionKey(token), &sess, SessionTTL); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *SessionStore) Destroy(ctx context.Context, token string) error {
	return s.redis.Delete(ctx, sessionKey(token))
}

func sessionKey(token string) string {
	return "session:" + token
}

func newSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
