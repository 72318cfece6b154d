//go:build integration

package valkey

import (
	"context"
	"errors"
	"os"
	"testing"
)

func TestCache_RoundTrip(t *testing.T) {
	addr := os.Getenv("MAPDEMO_VALKEY_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	c, err := New(addr, "mapdemo-test:")
	if err != nil {
		t.Skipf("valkey unavailable: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Ping(ctx); err != nil {
		t.Skipf("valkey unavailable: %v", err)
	}

	payload := []byte(`{"type":"FeatureCollection","features":[]}`)
	if err := c.Set(ctx, "features:s1", payload, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := c.Get(ctx, "features:s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("got %s, want %s", got, payload)
	}

	if err := c.Delete(ctx, "features:s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := c.Get(ctx, "features:s1"); !errors.Is(err, ErrMiss) {
		t.Errorf("expected ErrMiss after delete, got %v", err)
	}
}
