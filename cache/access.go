package cache

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/milanbella/sa-oauthdb/codec"
	"github.com/milanbella/sa-oauthdb/model"
)

// SetAccessToken writes the token record and adds it to its owner's index
// in one atomic step.
func (s *Store) SetAccessToken(ctx context.Context, t *model.AccessToken) error {
	record, err := codec.Encode(t)
	if err != nil {
		return err
	}

	tokenID := hex.EncodeToString(t.TokenID)
	uid := hex.EncodeToString(t.UserID)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	keys := []string{
		s.key(accessTokenPrefix, tokenID),
		s.key(accessTokenIndexPrefix, uid),
	}
	err = setAccessTokenScript.Run(ctx, s.client, keys, string(record), tokenID, t.ExpiresAt.UnixMilli()).Err()
	if err != nil {
		return unavailable("setAccessToken", err)
	}
	return nil
}

// GetAccessToken returns the cached token, or nil when it is absent or
// Redis cannot be reached. A record that cannot be decoded is an error.
func (s *Store) GetAccessToken(ctx context.Context, tokenID []byte) (*model.AccessToken, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	keys := []string{s.key(accessTokenPrefix, hex.EncodeToString(tokenID))}
	value, err := getAccessTokenScript.Run(ctx, s.client, keys).Text()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logReadErr("getAccessToken", err)
		}
		return nil, nil
	}

	t, err := codec.Decode([]byte(value))
	if err != nil {
		return nil, fmt.Errorf("cached access token %x: %w", tokenID, err)
	}
	return t, nil
}

// GetAccessTokens returns every cached token indexed under uid, ordered by
// expiry. Redis failures yield an empty list.
func (s *Store) GetAccessTokens(ctx context.Context, uid []byte) ([]*model.AccessToken, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	keys := []string{s.key(accessTokenIndexPrefix, hex.EncodeToString(uid))}
	values, err := getAccessTokensScript.Run(ctx, s.client, keys, s.key(accessTokenPrefix, "")).StringSlice()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logReadErr("getAccessTokens", err)
		}
		return []*model.AccessToken{}, nil
	}

	tokens := make([]*model.AccessToken, 0, len(values))
	for _, v := range values {
		t, err := codec.Decode([]byte(v))
		if err != nil {
			return nil, fmt.Errorf("cached access tokens for %x: %w", uid, err)
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}

// RemoveAccessToken deletes the token record and retracts it from its
// owner's index in one atomic step. Removing an absent token is not an
// error.
func (s *Store) RemoveAccessToken(ctx context.Context, tokenID []byte) error {
	id := hex.EncodeToString(tokenID)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	keys := []string{s.key(accessTokenPrefix, id)}
	if err := removeAccessTokenScript.Run(ctx, s.client, keys, s.key(accessTokenIndexPrefix, ""), id).Err(); err != nil {
		return unavailable("removeAccessToken", err)
	}
	return nil
}
