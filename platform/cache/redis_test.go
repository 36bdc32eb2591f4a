package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

type testRedisConfig struct {
	url      string
	insecure bool
}

func (c testRedisConfig) GetRedisURL() string       { return c.url }
func (c testRedisConfig) GetRedisTLSInsecure() bool { return c.insecure }

func TestNewRedisClientDisabledWithoutURL(t *testing.T) {
	client, err := NewRedisClient(context.Background(), testRedisConfig{})
	if err != nil || client != nil {
		t.Fatalf("expected (nil, nil), got (%v, %v)", client, err)
	}
}

func TestNewRedisClientPings(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), testRedisConfig{url: "redis://" + mr.Addr() + "/2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = client.Close() }()

	if got := client.Options().DB; got != 2 {
		t.Fatalf("expected db 2, got %d", got)
	}
}

func TestNewRedisClientFailsWhenUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, err := NewRedisClient(context.Background(), testRedisConfig{url: "redis://" + addr}); err == nil {
		t.Fatal("expected ping error")
	}
}

func TestParseOptionsTLS(t *testing.T) {
	opt, err := ParseOptions(testRedisConfig{url: "rediss://user:pw@cache.example.com:6380", insecure: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opt.TLSConfig == nil || !opt.TLSConfig.InsecureSkipVerify {
		t.Fatal("expected insecure TLS config")
	}
	if opt.Username != "user" || opt.Password != "pw" {
		t.Fatalf("unexpected credentials %q/%q", opt.Username, opt.Password)
	}

	opt, err = ParseOptions(testRedisConfig{url: "redis://localhost:6379", insecure: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opt.TLSConfig == nil || !opt.TLSConfig.InsecureSkipVerify {
		t.Fatal("expected TLS forced on by REDIS_TLS_INSECURE")
	}

	if _, err := ParseOptions(testRedisConfig{url: "://bad"}); err == nil {
		t.Fatal("expected parse error")
	}
}
