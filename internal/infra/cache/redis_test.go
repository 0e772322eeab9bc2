package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/Chanakan5591/carbonyx/config"
)

func TestNewRedisConnection(t *testing.T) {
	server := miniredis.RunT(t)

	conn, err := NewRedisConnection(&config.RedisConfig{URL: "redis://" + server.Addr() + "/0"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer conn.Close()

	if !conn.HealthCheck(context.Background()) {
		t.Error("expected healthy connection")
	}

	server.Close()
	if conn.HealthCheck(context.Background()) {
		t.Error("expected unhealthy connection after server shutdown")
	}
}

func TestNewRedisConnection_InvalidURL(t *testing.T) {
	if _, err := NewRedisConnection(&config.RedisConfig{URL: "http://localhost"}); err == nil {
		t.Error("expected error for non-redis scheme")
	}
}
