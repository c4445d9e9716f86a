// Package cache is the Redis tier of the token store. Multi-step mutations
// run as server-side Lua scripts so concurrent callers never see partial
// effects. Read paths fail open: a Redis error is logged and reported as an
// absent or empty result.
//
// The scripts derive record and index key names from stored data, so the
// store runs against a single Redis node or a failover group, never a
// cluster.
package cache

import (
	"context"
	"embed"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/milanbella/sa-oauthdb/config"
	"github.com/milanbella/sa-oauthdb/errs"
	"github.com/milanbella/sa-oauthdb/logger"
)

//go:embed scripts/*.lua
var scriptFS embed.FS

func loadScript(name string) *redis.Script {
	src, err := scriptFS.ReadFile("scripts/" + name + ".lua")
	if err != nil {
		panic(fmt.Sprintf("cache: missing script %s: %v", name, err))
	}
	return redis.NewScript(string(src))
}

var (
	touchSessionTokenScript  = loadScript("touchSessionToken")
	pruneSessionTokensScript = loadScript("pruneSessionTokens")
	getSessionTokensScript   = loadScript("getSessionTokens")
	setAccessTokenScript     = loadScript("setAccessToken")
	getAccessTokenScript     = loadScript("getAccessToken")
	getAccessTokensScript    = loadScript("getAccessTokens")
	removeAccessTokenScript  = loadScript("removeAccessToken")
)

const (
	accessTokenPrefix      = "at:"
	accessTokenIndexPrefix = "uat:"
	sessionTokensPrefix    = "st:"
)

// Store is a typed Redis client exposing only the operations the token
// store needs.
type Store struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

// New builds a store for cfg. Connections are made on demand; a failed
// first ping is logged and the store is returned anyway, so the legacy read
// path stays available while Redis is down.
func New(ctx context.Context, cfg config.RedisConfig) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	s := NewWithClient(client, cfg.Prefix, cfg.OpTimeout)
	if err := s.Health(ctx); err != nil {
		logger.Warn("redis not reachable at startup, serving from legacy store until it is: %v", err)
	}
	return s
}

// NewWithClient wraps an existing client. opTimeout bounds every call; zero
// leaves bounding to the caller's context.
func NewWithClient(client *redis.Client, prefix string, opTimeout time.Duration) *Store {
	return &Store{
		client:  client,
		prefix:  prefix,
		timeout: opTimeout,
	}
}

// Health checks Redis connectivity.
func (s *Store) Health(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: redis ping: %v", errs.ErrStoreUnavailable, err)
	}
	return nil
}

// Close closes the Redis connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *Store) key(kind, id string) string {
	return s.prefix + kind + id
}

func unavailable(op string, err error) error {
	return logger.LogErr(fmt.Errorf("%w: redis %s: %v", errs.ErrStoreUnavailable, op, err))
}

// logReadErr records a read failure that is being swallowed.
func logReadErr(op string, err error) {
	logger.LogErrorf("redis %s: %v", op, err)
}
