// Package cache keeps solved move lists in Redis, keyed by the cube state.
// The solver is deterministic, so a state always maps to the same solution.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SeamusWaldron/cubesolver"
)

// KeyPrefix namespaces every cache key.
const KeyPrefix = "cubesolver:solution:"

// Cache is a solution cache backed by Redis. It is safe for concurrent use.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New creates a cache over an existing client. ttl <= 0 keeps entries
// until evicted.
func New(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl < 0 {
		ttl = 0
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

// Open parses a redis:// URL and connects.
func Open(ctx context.Context, url string, ttl time.Duration) (*Cache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	c := New(redis.NewClient(opts), ttl)
	if err := c.Ping(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return c, nil
}

// Ping verifies Redis connectivity.
func (c *Cache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (c *Cache) Close() error {
	return c.rdb.Close()
}

// Key returns the cache key of g: the 54 color codes in grid order.
func Key(g cubesolver.Grid) string {
	var b strings.Builder
	b.Grow(len(KeyPrefix) + 54)
	b.WriteString(KeyPrefix)
	for f := range g {
		for r := range g[f] {
			for col := range g[f][r] {
				b.WriteByte('0' + byte(g[f][r][col]))
			}
		}
	}
	return b.String()
}

type entry struct {
	Moves    []string  `json:"moves"`
	Segments []segment `json:"segments"`
}

type segment struct {
	Phase string `json:"phase"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Get returns the cached solution of g. A miss gives nil, false, nil.
func (c *Cache) Get(ctx context.Context, g cubesolver.Grid) (*cubesolver.Solution, bool, error) {
	data, err := c.rdb.Get(ctx, Key(g)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read solution from redis: %w", err)
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached solution: %w", err)
	}

	sol := &cubesolver.Solution{}
	for _, n := range e.Moves {
		m, err := cubesolver.ParseMove(n)
		if err != nil {
			return nil, false, fmt.Errorf("failed to decode cached solution: %w", err)
		}
		sol.Moves = append(sol.Moves, m)
	}
	for _, s := range e.Segments {
		p, ok := cubesolver.ParsePhase(s.Phase)
		if !ok {
			return nil, false, fmt.Errorf("failed to decode cached solution: unknown phase %q", s.Phase)
		}
		sol.Segments = append(sol.Segments, cubesolver.Segment{Phase: p, Start: s.Start, End: s.End})
	}
	return sol, true, nil
}

// Set stores the solution of g.
func (c *Cache) Set(ctx context.Context, g cubesolver.Grid, sol *cubesolver.Solution) error {
	e := entry{Moves: sol.Notation()}
	for _, s := range sol.Segments {
		e.Segments = append(e.Segments, segment{Phase: s.Phase.String(), Start: s.Start, End: s.End})
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode solution: %w", err)
	}
	if err := c.rdb.Set(ctx, Key(g), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write solution to redis: %w", err)
	}
	return nil
}

// Solve returns the cached solution of g or solves it and caches the
// result. hit reports whether the cache answered. Cache read or write
// failures never fail the solve; they are returned in cacheErr.
func (c *Cache) Solve(ctx context.Context, g cubesolver.Grid, opts ...cubesolver.Option) (sol *cubesolver.Solution, hit bool, cacheErr, err error) {
	sol, hit, cacheErr = c.Get(ctx, g)
	if hit {
		return sol, true, nil, nil
	}

	sol, err = cubesolver.Solve(g, opts...)
	if err != nil {
		return nil, false, cacheErr, err
	}
	if setErr := c.Set(ctx, g, sol); setErr != nil && cacheErr == nil {
		cacheErr = setErr
	}
	return sol, false, cacheErr, nil
}
