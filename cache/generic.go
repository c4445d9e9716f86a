package cache

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Generic commands. Keys are namespaced under the store prefix.

// Get returns the value at key. ok is false when the key is absent or
// Redis cannot be reached.
func (s *Store) Get(ctx context.Context, key string) (value string, ok bool) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logReadErr("get", err)
		}
		return "", false
	}
	return value, true
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return unavailable("set", err)
	}
	return nil
}

func (s *Store) Del(ctx context.Context, key string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return unavailable("del", err)
	}
	return nil
}

func (s *Store) ZAdd(ctx context.Context, key string, members ...redis.Z) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.client.ZAdd(ctx, s.prefix+key, members...).Err(); err != nil {
		return unavailable("zadd", err)
	}
	return nil
}

func (s *Store) ZRem(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	args := make([]interface{}, len(members))
	for i, m := range members {
		args[i] = m
	}
	if err := s.client.ZRem(ctx, s.prefix+key, args...).Err(); err != nil {
		return unavailable("zrem", err)
	}
	return nil
}

// ZRange returns members by ascending rank.
func (s *Store) ZRange(ctx context.Context, key string, start, stop int64) []string {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return readStrings("zrange", s.client.ZRange(ctx, s.prefix+key, start, stop))
}

// ZRangeWithScores is ZRange with each member's score.
func (s *Store) ZRangeWithScores(ctx context.Context, key string, start, stop int64) []redis.Z {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	values, err := s.client.ZRangeWithScores(ctx, s.prefix+key, start, stop).Result()
	if err != nil {
		logReadErr("zrange", err)
		return []redis.Z{}
	}
	return values
}

// ZRevRange returns members by descending rank.
func (s *Store) ZRevRange(ctx context.Context, key string, start, stop int64) []string {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return readStrings("zrevrange", s.client.ZRevRange(ctx, s.prefix+key, start, stop))
}

// ZRangeByScore returns members with min <= score <= max in ascending
// order. Bounds use Redis syntax ("-inf", "(10", ...).
func (s *Store) ZRangeByScore(ctx context.Context, key, min, max string) []string {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return readStrings("zrangebyscore", s.client.ZRangeByScore(ctx, s.prefix+key, &redis.ZRangeBy{Min: min, Max: max}))
}

// ZRevRangeByScore returns members with min <= score <= max in descending
// order.
func (s *Store) ZRevRangeByScore(ctx context.Context, key, max, min string) []string {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return readStrings("zrevrangebyscore", s.client.ZRevRangeByScore(ctx, s.prefix+key, &redis.ZRangeBy{Min: min, Max: max}))
}

// ZPopRangeByScore returns every member with min <= score <= max and
// removes exactly those members in the same MULTI/EXEC transaction, so
// concurrent callers never receive overlapping batches.
func (s *Store) ZPopRangeByScore(ctx context.Context, key, min, max string) ([]string, error) {
	if err := checkScoreBound(min); err != nil {
		return nil, err
	}
	if err := checkScoreBound(max); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	k := s.prefix + key
	var members *redis.StringSliceCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		members = pipe.ZRangeByScore(ctx, k, &redis.ZRangeBy{Min: min, Max: max})
		pipe.ZRemRangeByScore(ctx, k, min, max)
		return nil
	})
	if err != nil {
		return nil, unavailable("zpoprangebyscore", err)
	}
	return members.Val(), nil
}

// checkScoreBound accepts the Redis score bound syntax: a number, an
// infinity, either optionally prefixed with "(" for an exclusive bound.
func checkScoreBound(bound string) error {
	v, err := strconv.ParseFloat(strings.TrimPrefix(bound, "("), 64)
	if err != nil || math.IsNaN(v) {
		return fmt.Errorf("invalid score bound %q", bound)
	}
	return nil
}

func readStrings(op string, cmd *redis.StringSliceCmd) []string {
	values, err := cmd.Result()
	if err != nil {
		logReadErr(op, err)
		return []string{}
	}
	return values
}
