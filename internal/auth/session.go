package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/akalan-edu/portal-service/internal/models"
)

// ErrSessionNotFound is returned for unknown or expired tokens
var ErrSessionNotFound = errors.New("session not found")

const sessionKeyPrefix = "session:"

// Session is the per-login state kept in redis
type Session struct {
	UserID    uint            `json:"user_id"`
	Role      models.UserRole `json:"role"`
	Username  string          `json:"username"`
	CreatedAt time.Time       `json:"created_at"`
}

// SessionStore keeps opaque bearer-token sessions in redis with a sliding
// idle TTL: every successful lookup pushes the expiry forward.
type SessionStore struct {
	client  *redis.Client
	idleTTL time.Duration
}

func NewSessionStore(client *redis.Client, idleTTL time.Duration) *SessionStore {
	return &SessionStore{
		client:  client,
		idleTTL: idleTTL,
	}
}

// Create opens a session and returns its opaque token
func (s *SessionStore) Create(ctx context.Context, user *models.User) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	session := Session{
		UserID:    user.ID,
		Role:      user.Role,
		Username:  user.Username,
		CreatedAt: time.Now(),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKeyPrefix+token, data, s.idleTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return token, nil
}

// Get returns the session for a token and refreshes its idle TTL
func (s *SessionStore) Get(ctx context.Context, token string) (*Session, error) {
	key := sessionKeyPrefix + token

	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	// Sliding expiry: activity keeps the session alive
	if err := s.client.Expire(ctx, key, s.idleTTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to refresh session: %w", err)
	}

	return &session, nil
}

// Delete ends a session; deleting an unknown token is not an error
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKeyPrefix+token).Err()
}

// IdleTTL returns the configured idle expiry window
func (s *SessionStore) IdleTTL() time.Duration {
	return s.idleTTL
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
