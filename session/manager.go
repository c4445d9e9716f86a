// Package session keeps the per-user session token mapping in the cache.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/milanbella/sa-oauthdb/errs"
	"github.com/milanbella/sa-oauthdb/logger"
	"github.com/milanbella/sa-oauthdb/model"
)

const (
	rotationInterval = 15 * time.Minute
	sessionTTL       = 24 * time.Hour
)

// Store is the part of the cache holding session mappings.
type Store interface {
	TouchSessionToken(ctx context.Context, uid, id string, payload []byte) error
	PruneSessionTokens(ctx context.Context, uid string, ids []string) error
	GetSessionTokens(ctx context.Context, uid string) map[string]json.RawMessage
}

// Manager creates, refreshes and expires session tokens.
type Manager struct {
	store Store
	now   func() time.Time
}

func NewManager(store Store) *Manager {
	return &Manager{store: store, now: func() time.Time { return time.Now().UTC() }}
}

// Create starts a new session for uid.
func (m *Manager) Create(ctx context.Context, uid, uaString string) (*model.SessionToken, error) {
	now := m.now()
	token := &model.SessionToken{
		ID:             uuid.NewString(),
		UID:            uid,
		UAString:       uaString,
		CreatedAt:      now,
		LastAccessTime: now,
	}
	if err := m.write(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// Touch records activity on a session. The stored entry is only rewritten
// once rotationInterval has passed since the last write. A session idle for
// longer than sessionTTL is removed and reported as errs.ErrNotFound.
func (m *Manager) Touch(ctx context.Context, uid, id string) (*model.SessionToken, error) {
	raw, ok := m.store.GetSessionTokens(ctx, uid)[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, errs.ErrNotFound)
	}

	token, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}

	now := m.now()
	if now.Sub(token.LastAccessTime) > sessionTTL {
		if err := m.Prune(ctx, uid, id); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("session %s expired: %w", id, errs.ErrNotFound)
	}

	if now.Sub(token.LastAccessTime) < rotationInterval {
		return token, nil
	}

	token.LastAccessTime = now
	if err := m.write(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// List returns the sessions of uid, most recently used first.
func (m *Manager) List(ctx context.Context, uid string) ([]*model.SessionToken, error) {
	stored := m.store.GetSessionTokens(ctx, uid)

	tokens := make([]*model.SessionToken, 0, len(stored))
	for id, raw := range stored {
		token, err := decode(raw)
		if err != nil {
			return nil, fmt.Errorf("session %s: %w", id, err)
		}
		tokens = append(tokens, token)
	}

	sort.Slice(tokens, func(i, j int) bool {
		if !tokens[i].LastAccessTime.Equal(tokens[j].LastAccessTime) {
			return tokens[i].LastAccessTime.After(tokens[j].LastAccessTime)
		}
		return tokens[i].ID < tokens[j].ID
	})
	return tokens, nil
}

// Prune drops the given sessions of uid.
func (m *Manager) Prune(ctx context.Context, uid string, ids ...string) error {
	return m.store.PruneSessionTokens(ctx, uid, ids)
}

// PruneExpired drops every session of uid idle for longer than sessionTTL
// and returns how many were removed. Entries that cannot be decoded are
// dropped too.
func (m *Manager) PruneExpired(ctx context.Context, uid string) (int, error) {
	now := m.now()

	var stale []string
	for id, raw := range m.store.GetSessionTokens(ctx, uid) {
		token, err := decode(raw)
		if err != nil {
			logger.Warn("dropping unreadable session %s of %s: %v", id, uid, err)
			stale = append(stale, id)
			continue
		}
		if now.Sub(token.LastAccessTime) > sessionTTL {
			stale = append(stale, id)
		}
	}

	if err := m.Prune(ctx, uid, stale...); err != nil {
		return 0, err
	}
	return len(stale), nil
}

func (m *Manager) write(ctx context.Context, token *model.SessionToken) error {
	payload, err := json.Marshal(token)
	if err != nil {
		return logger.LogErr(fmt.Errorf("encode session %s: %w", token.ID, err))
	}
	return m.store.TouchSessionToken(ctx, token.UID, token.ID, payload)
}

func decode(raw json.RawMessage) (*model.SessionToken, error) {
	var token model.SessionToken
	if err := json.Unmarshal(raw, &token); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMalformedRecord, err)
	}
	return &token, nil
}
