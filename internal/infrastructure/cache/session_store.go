package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Session is the server-side state of one access token.
type Session struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	RoleID   int       `json:"role_id"`
	Role     string    `json:"role"`
}

// SessionStore keeps access sessions and refresh markers in Redis.
// A token is only honoured while its key exists.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func AccessKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("access_token:%s:%s", userID.String(), tokenID)
}

func RefreshKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("refresh_token:%s:%s", userID.String(), tokenID)
}

// Save stores the access session and the refresh marker atomically.
func (s *SessionStore) Save(ctx context.Context, session Session, accessID string, accessTTL time.Duration, refreshID string, refreshTTL time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, AccessKey(session.UserID, accessID), payload, accessTTL)
	pipe.Set(ctx, RefreshKey(session.UserID, refreshID), "valid", refreshTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Load returns the session of an access token, or nil when it was revoked
// or expired.
func (s *SessionStore) Load(ctx context.Context, userID uuid.UUID, accessID string) (*Session, error) {
	raw, err := s.client.Get(ctx, AccessKey(userID, accessID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

// ConsumeRefresh deletes the refresh marker and reports whether it existed,
// so a refresh token can be used once.
func (s *SessionStore) ConsumeRefresh(ctx context.Context, userID uuid.UUID, refreshID string) (bool, error) {
	deleted, err := s.client.Del(ctx, RefreshKey(userID, refreshID)).Result()
	if err != nil {
		return false, fmt.Errorf("consume refresh token: %w", err)
	}
	return deleted > 0, nil
}

// Revoke deletes the access session and, when given, the refresh marker.
func (s *SessionStore) Revoke(ctx context.Context, userID uuid.UUID, accessID, refreshID string) error {
	keys := []string{AccessKey(userID, accessID)}
	if refreshID != "" {
		keys = append(keys, RefreshKey(userID, refreshID))
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// RevokeAll removes every session and refresh marker of the user.
func (s *SessionStore) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	for _, pattern := range []string{AccessKey(userID, "*"), RefreshKey(userID, "*")} {
		iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("scan sessions: %w", err)
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("revoke sessions: %w", err)
			}
		}
	}
	return nil
}
