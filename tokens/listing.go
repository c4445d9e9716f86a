package tokens

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/milanbella/sa-oauthdb/errs"
	"github.com/milanbella/sa-oauthdb/model"
)

// clientLookup memoises registry answers for the duration of one listing.
// A nil entry records a client the registry does not know.
type clientLookup struct {
	s    *Service
	seen map[string]*model.Client
}

func (s *Service) newClientLookup() *clientLookup {
	return &clientLookup{s: s, seen: map[string]*model.Client{}}
}

func (l *clientLookup) get(ctx context.Context, id []byte) (*model.Client, error) {
	key := hex.EncodeToString(id)
	if c, ok := l.seen[key]; ok {
		return c, nil
	}

	c, err := l.s.getClient(ctx, id)
	if err != nil {
		if !errors.Is(err, errs.ErrNotFound) {
			return nil, fmt.Errorf("lookup client %s: %w", key, err)
		}
		c = nil
	}
	l.seen[key] = c
	return c, nil
}

// GetActiveClientsByUID lists the services connected to uid: unexpired
// cached tokens of clients that cannot grant, then legacy refresh tokens,
// then legacy active-client rows. Entries are not deduplicated.
func (s *Service) GetActiveClientsByUID(ctx context.Context, uid []byte) ([]model.ActiveClient, error) {
	var (
		cached  []*model.AccessToken
		refresh []model.RefreshToken
		older   []model.ActiveClient
	)
	now := s.opts.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		cached, err = s.cache.GetAccessTokens(gctx, uid)
		return err
	})
	g.Go(func() (err error) {
		refresh, err = s.legacy.GetRefreshTokensByUID(gctx, uid)
		return err
	})
	g.Go(func() (err error) {
		older, err = s.legacy.GetActiveClientsByUID(gctx, uid)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	lookup := s.newClientLookup()
	active := make([]model.ActiveClient, 0, len(cached)+len(refresh)+len(older))

	for _, t := range cached {
		if t.Expired(now) {
			continue
		}
		client, err := lookup.get(ctx, t.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil || client.CanGrant {
			continue
		}
		active = append(active, model.ActiveClient{
			ClientID:   t.ClientID,
			Name:       client.Name,
			Scope:      t.Scope,
			CreatedAt:  t.CreatedAt,
			LastUsedAt: t.CreatedAt,
			ExpiresAt:  t.ExpiresAt,
		})
	}

	for _, rt := range refresh {
		client, err := lookup.get(ctx, rt.ClientID)
		if err != nil {
			return nil, err
		}
		entry := model.ActiveClient{
			ClientID:   rt.ClientID,
			Scope:      rt.Scope,
			CreatedAt:  rt.CreatedAt,
			LastUsedAt: rt.LastUsedAt,
		}
		if client != nil {
			entry.Name = client.Name
		}
		active = append(active, entry)
	}

	return append(active, older...), nil
}

// GetAccessTokensByUID lists every token of uid, expired ones included:
// cached tokens enriched with client details, then legacy tokens.
func (s *Service) GetAccessTokensByUID(ctx context.Context, uid []byte) ([]*model.AccessToken, error) {
	var cached, older []*model.AccessToken

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		cached, err = s.cache.GetAccessTokens(gctx, uid)
		return err
	})
	g.Go(func() (err error) {
		older, err = s.legacy.GetAccessTokensByUID(gctx, uid)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	lookup := s.newClientLookup()
	for _, t := range cached {
		client, err := lookup.get(ctx, t.ClientID)
		if err != nil {
			return nil, err
		}
		if client != nil {
			t.ClientName = client.Name
			t.ClientCanGrant = client.CanGrant
		}
	}

	return append(cached, older...), nil
}
