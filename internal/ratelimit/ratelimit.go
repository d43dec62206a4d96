// Package ratelimit is a fixed-window request limiter stored in Redis.
package ratelimit

import (
	"alcyxob/gym-app/internal/config"
	"alcyxob/gym-app/internal/logger"
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "gym:ratelimit"

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
  ttl = tonumber(ARGV[1])
end
return {current, ttl}
`)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter counts requests per key inside a fixed window. A nil Limiter, or
// one without a client, allows everything.
type Limiter struct {
	client redis.UniversalClient
	prefix string
	limit  int
	window time.Duration
	log    *logger.Logger
}

// New creates a limiter allowing limit requests per window for each key.
func New(client redis.UniversalClient, limit int, window time.Duration, log *logger.Logger) *Limiter {
	if log == nil {
		log = logger.Nop()
	}
	return &Limiter{
		client: client,
		prefix: defaultPrefix,
		limit:  limit,
		window: window,
		log:    log,
	}
}

// NewClient builds a redis client from cfg. It returns nil when neither a URL
// nor an address is configured.
func NewClient(cfg config.RedisConfig) (*redis.Client, error) {
	if url := strings.TrimSpace(cfg.URL); url != "" {
		opts, err := redis.ParseURL(url)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return redis.NewClient(opts), nil
	}
	if addr := strings.TrimSpace(cfg.Addr); addr != "" {
		return redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Password}), nil
	}
	return nil, nil
}

// Allow records one request for key. Redis failures are logged and the
// request is let through.
func (l *Limiter) Allow(ctx context.Context, key string) Decision {
	if l == nil || l.client == nil || l.limit <= 0 || l.window <= 0 {
		return Decision{Allowed: true, Remaining: -1}
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return Decision{Allowed: true, Remaining: -1}
	}

	windowMs := l.window.Milliseconds()
	if windowMs < 1000 {
		windowMs = 1000
	}

	count, ttlMs, err := l.consume(ctx, l.prefix+":"+key, windowMs)
	if err != nil {
		l.log.Warn("rate limiter unavailable, allowing request", "key", key, "error", err)
		return Decision{Allowed: true, Remaining: -1}
	}

	d := Decision{Allowed: count <= int64(l.limit), Remaining: l.limit - int(count)}
	if d.Remaining < 0 {
		d.Remaining = 0
	}
	if !d.Allowed {
		secs := math.Ceil(float64(ttlMs) / 1000.0)
		if secs < 1 {
			secs = 1
		}
		d.RetryAfter = time.Duration(secs) * time.Second
	}
	return d
}

func (l *Limiter) consume(ctx context.Context, key string, windowMs int64) (count int64, ttlMs int64, err error) {
	raw, err := fixedWindowScript.Run(ctx, l.client, []string{key}, windowMs).Result()
	if err != nil {
		return 0, 0, err
	}
	values, ok := raw.([]interface{})
	if !ok || len(values) != 2 {
		return 0, 0, fmt.Errorf("unexpected limiter response shape: %T", raw)
	}
	count, ok = values[0].(int64)
	if !ok {
		return 0, 0, fmt.Errorf("unexpected limiter count type: %T", values[0])
	}
	ttlMs, ok = values[1].(int64)
	if !ok || ttlMs < 0 {
		ttlMs = windowMs
	}
	return count, ttlMs, nil
}
