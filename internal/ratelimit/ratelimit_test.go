package ratelimit

import (
	"alcyxob/gym-app/internal/config"
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNilLimiterAllows(t *testing.T) {
	var l *Limiter
	if d := l.Allow(context.Background(), "member:1"); !d.Allowed {
		t.Fatalf("nil limiter should allow, got %+v", d)
	}
	if d := New(nil, 10, time.Minute, nil).Allow(context.Background(), "member:1"); !d.Allowed {
		t.Fatalf("limiter without client should allow, got %+v", d)
	}
}

func TestLimiterFailsOpenWhenRedisIsDown(t *testing.T) {
	// Nothing listens on port 1.
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	l := New(client, 1, time.Minute, nil)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	for i := 0; i < 3; i++ {
		if d := l.Allow(ctx, "staff:abc"); !d.Allowed {
			t.Fatalf("request %d rejected while redis is unreachable: %+v", i, d)
		}
	}
}

func TestNewClientFromConfig(t *testing.T) {
	c, err := NewClient(config.RedisConfig{})
	if err != nil || c != nil {
		t.Fatalf("empty config should give no client, got %v, %v", c, err)
	}

	c, err = NewClient(config.RedisConfig{URL: "redis://:secret@localhost:6380/2"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	if opts := c.Options(); opts.Addr != "localhost:6380" || opts.DB != 2 || opts.Password != "secret" {
		t.Fatalf("unexpected options: addr=%s db=%d", opts.Addr, opts.DB)
	}

	if _, err := NewClient(config.RedisConfig{URL: "http://nope"}); err == nil {
		t.Fatal("expected an error for a non-redis url")
	}
}
