package cache

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

// TouchSessionToken inserts or replaces the payload stored under id in the
// session mapping of uid.
func (s *Store) TouchSessionToken(ctx context.Context, uid, id string, payload []byte) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	keys := []string{s.key(sessionTokensPrefix, uid)}
	if err := touchSessionTokenScript.Run(ctx, s.client, keys, id, string(payload)).Err(); err != nil {
		return unavailable("touchSessionToken", err)
	}
	return nil
}

// PruneSessionTokens removes ids from the session mapping of uid. Unknown
// ids are ignored.
func (s *Store) PruneSessionTokens(ctx context.Context, uid string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	keys := []string{s.key(sessionTokensPrefix, uid)}
	if err := pruneSessionTokensScript.Run(ctx, s.client, keys, string(data)).Err(); err != nil {
		return unavailable("pruneSessionTokens", err)
	}
	return nil
}

// GetSessionTokens returns the session mapping of uid. Failures are logged
// and yield an empty mapping.
func (s *Store) GetSessionTokens(ctx context.Context, uid string) map[string]json.RawMessage {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	empty := map[string]json.RawMessage{}

	keys := []string{s.key(sessionTokensPrefix, uid)}
	value, err := getSessionTokensScript.Run(ctx, s.client, keys).Text()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logReadErr("getSessionTokens", err)
		}
		return empty
	}

	var stored map[string]string
	if err := json.Unmarshal([]byte(value), &stored); err != nil {
		logReadErr("getSessionTokens", err)
		return empty
	}

	out := make(map[string]json.RawMessage, len(stored))
	for id, payload := range stored {
		out[id] = json.RawMessage(payload)
	}
	return out
}
