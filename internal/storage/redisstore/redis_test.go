package redisstore

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestStore_KeyPrefix(t *testing.T) {
	s := &Store{prefix: "apartmanager:"}
	if got := s.key("apt_manager_fees"); got != "apartmanager:apt_manager_fees" {
		t.Errorf("key() = %q", got)
	}
	bare := &Store{}
	if got := bare.key("apt_manager_fees"); got != "apt_manager_fees" {
		t.Errorf("key() without prefix = %q", got)
	}
}

func TestNew_UnreachableServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := New(ctx, Options{Addr: "127.0.0.1:1"}); err == nil {
		t.Fatal("expected connection error")
	}
}

// TestStore_RoundTrip runs against a real server when APT_TEST_REDIS_ADDR is set.
func TestStore_RoundTrip(t *testing.T) {
	addr := os.Getenv("APT_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("APT_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	store, err := New(ctx, Options{Addr: addr, Prefix: "apartmanager-test:"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer store.Close()

	if err := store.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := store.Get(ctx, "k")
	if err != nil || !ok || string(v) != "v" {
		t.Fatalf("Get: %q %v %v", v, ok, err)
	}
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Fatal("expected key deleted")
	}
}
