// Package tokens is the token store facade. New access tokens live only in
// the Redis cache; tokens issued before the cutover are still served from
// the legacy MySQL tables until they expire.
package tokens

//go:generate mockgen -source=service.go -destination=mock_deps_test.go -package=tokens

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/milanbella/sa-oauthdb/clients"
	"github.com/milanbella/sa-oauthdb/codec"
	"github.com/milanbella/sa-oauthdb/errs"
	"github.com/milanbella/sa-oauthdb/logger"
	"github.com/milanbella/sa-oauthdb/model"
	"github.com/milanbella/sa-oauthdb/scope"
)

// CacheStore is the Redis tier, the system of record for new tokens.
type CacheStore interface {
	Health(ctx context.Context) error
	SetAccessToken(ctx context.Context, t *model.AccessToken) error
	GetAccessToken(ctx context.Context, tokenID []byte) (*model.AccessToken, error)
	GetAccessTokens(ctx context.Context, uid []byte) ([]*model.AccessToken, error)
	RemoveAccessToken(ctx context.Context, tokenID []byte) error
}

// LegacyStore is the relational store of pre-cutover tokens.
type LegacyStore interface {
	Health(ctx context.Context) error
	GetByTokenID(ctx context.Context, tokenID []byte) (*model.AccessToken, error)
	RemoveByTokenID(ctx context.Context, tokenID []byte) error
	GetActiveClientsByUID(ctx context.Context, uid []byte) ([]model.ActiveClient, error)
	GetAccessTokensByUID(ctx context.Context, uid []byte) ([]*model.AccessToken, error)
	GetRefreshTokensByUID(ctx context.Context, uid []byte) ([]model.RefreshToken, error)
}

// ClientRegistry resolves client metadata.
type ClientRegistry interface {
	GetClient(ctx context.Context, id []byte) (*model.Client, error)
}

// Reconciler brings the registry in line with the configured client list.
type Reconciler interface {
	Reconcile(ctx context.Context, defs []clients.Definition, autoUpdate bool) error
}

// Options tunes a Service. Zero values fall back to defaults.
type Options struct {
	MaxTTL time.Duration
	Hasher *codec.Hasher

	// ClientWaitTimeout bounds how long client lookups wait for Initialize.
	ClientWaitTimeout time.Duration
	// ClientRetryMax is the number of retries for a failing registry lookup.
	ClientRetryMax      int
	ClientRetryInterval time.Duration

	Reconciler  Reconciler
	Definitions []clients.Definition
	AutoUpdate  bool

	Now func() time.Time
}

const (
	DefaultMaxTTL              = 14 * 24 * time.Hour
	defaultClientWaitTimeout   = 10 * time.Second
	defaultClientRetryInterval = 100 * time.Millisecond
)

// Service combines the cache and legacy stores behind one API.
type Service struct {
	cache    CacheStore
	legacy   LegacyStore
	registry ClientRegistry
	opts     Options

	ready     chan struct{}
	readyOnce sync.Once
}

// New builds a Service. It is not ready for client lookups until
// Initialize has completed.
func New(cache CacheStore, legacy LegacyStore, registry ClientRegistry, opts Options) (*Service, error) {
	if opts.MaxTTL <= 0 {
		opts.MaxTTL = DefaultMaxTTL
	}
	if opts.Hasher == nil {
		h, err := codec.NewHasher(nil)
		if err != nil {
			return nil, err
		}
		opts.Hasher = h
	}
	if opts.ClientWaitTimeout <= 0 {
		opts.ClientWaitTimeout = defaultClientWaitTimeout
	}
	if opts.ClientRetryMax < 0 {
		opts.ClientRetryMax = 0
	}
	if opts.ClientRetryInterval <= 0 {
		opts.ClientRetryInterval = defaultClientRetryInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Service{
		cache:    cache,
		legacy:   legacy,
		registry: registry,
		opts:     opts,
		ready:    make(chan struct{}),
	}, nil
}

// Initialize reconciles the configured clients and checks both backends.
// The hosting process must wait for it before accepting traffic. An
// unreachable cache is only logged: reads fall back to the legacy store
// until it returns.
func (s *Service) Initialize(ctx context.Context) error {
	if s.opts.Reconciler != nil && len(s.opts.Definitions) > 0 {
		if err := s.opts.Reconciler.Reconcile(ctx, s.opts.Definitions, s.opts.AutoUpdate); err != nil {
			return logger.LogErr(fmt.Errorf("reconcile clients: %w", err))
		}
	}

	if err := s.cache.Health(ctx); err != nil {
		logger.Warn("starting with cache unavailable: %v", err)
	}
	if err := s.legacy.Health(ctx); err != nil {
		return logger.LogErr(err)
	}

	s.readyOnce.Do(func() { close(s.ready) })
	logger.Info("token store ready")
	return nil
}

// Ready is closed once Initialize has succeeded.
func (s *Service) Ready() <-chan struct{} {
	return s.ready
}

// GenerateParams describes a token to issue. ExpiresAt wins over TTL; with
// neither set the token lives for the configured maximum.
type GenerateParams struct {
	ClientID         []byte
	UserID           []byte
	Email            string
	Scope            scope.Set
	TTL              time.Duration
	ExpiresAt        time.Time
	ProfileChangedAt time.Time
}

// GenerateAccessToken issues a new bearer token and stores it in the cache
// only. The returned token carries the raw secret, which cannot be
// recovered later.
func (s *Service) GenerateAccessToken(ctx context.Context, p GenerateParams) (*model.AccessToken, error) {
	if len(p.ClientID) == 0 {
		return nil, logger.LogErr(errors.New("client id is required"))
	}
	if len(p.UserID) == 0 {
		return nil, logger.LogErr(errors.New("user id is required"))
	}

	raw, err := codec.NewRawToken()
	if err != nil {
		return nil, logger.LogErr(err)
	}

	now := s.opts.Now()
	expiresAt := p.ExpiresAt
	if expiresAt.IsZero() {
		if p.TTL > 0 {
			expiresAt = now.Add(p.TTL)
		} else {
			expiresAt = now.Add(s.opts.MaxTTL)
		}
	}

	t := &model.AccessToken{
		TokenID:          s.opts.Hasher.Hash(raw),
		ClientID:         p.ClientID,
		UserID:           p.UserID,
		Email:            p.Email,
		Scope:            p.Scope,
		Type:             model.TokenTypeBearer,
		ExpiresAt:        expiresAt,
		CreatedAt:        now,
		ProfileChangedAt: p.ProfileChangedAt,
	}
	if err := s.cache.SetAccessToken(ctx, t); err != nil {
		return nil, err
	}

	t.Token = raw
	return t, nil
}

// GetAccessToken looks the token up in the cache, then in the legacy store.
// A cached record always wins. errs.ErrNotFound means neither has it.
func (s *Service) GetAccessToken(ctx context.Context, tokenID []byte) (*model.AccessToken, error) {
	t, err := s.cache.GetAccessToken(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	if t != nil {
		return t, nil
	}

	return s.legacy.GetByTokenID(ctx, tokenID)
}

// RemoveAccessToken revokes the token in both stores. Both removals are
// always attempted; their errors are joined.
func (s *Service) RemoveAccessToken(ctx context.Context, tokenID []byte) error {
	cacheErr := s.cache.RemoveAccessToken(ctx, tokenID)
	legacyErr := s.legacy.RemoveByTokenID(ctx, tokenID)
	return errors.Join(cacheErr, legacyErr)
}

// RemovePublicAndCanGrantTokens is not supported.
func (s *Service) RemovePublicAndCanGrantTokens(ctx context.Context, uid []byte) error {
	return fmt.Errorf("remove public and canGrant tokens: %w", errs.ErrNotImplemented)
}

// getClient waits for readiness, then asks the registry, retrying
// transient failures.
func (s *Service) getClient(ctx context.Context, id []byte) (*model.Client, error) {
	if err := s.awaitReady(ctx); err != nil {
		return nil, err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.opts.ClientRetryInterval
	b.MaxInterval = time.Second

	var client *model.Client
	err := backoff.RetryNotify(func() error {
		c, err := s.registry.GetClient(ctx, id)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				return backoff.Permanent(err)
			}
			return err
		}
		client = c
		return nil
	}, backoff.WithContext(backoff.WithMaxRetries(b, uint64(s.opts.ClientRetryMax)), ctx), func(err error, wait time.Duration) {
		logger.Warn("client %x lookup failed, retrying in %s: %v", id, wait, err)
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (s *Service) awaitReady(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	default:
	}

	timer := time.NewTimer(s.opts.ClientWaitTimeout)
	defer timer.Stop()

	select {
	case <-s.ready:
		return nil
	case <-timer.C:
		return logger.LogErr(fmt.Errorf("%w: client registry not ready after %s", errs.ErrStoreUnavailable, s.opts.ClientWaitTimeout))
	case <-ctx.Done():
		return ctx.Err()
	}
}
