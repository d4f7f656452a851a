package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestReserver(t *testing.T) (CodeReserver, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCodeReserver(client), mr
}

func TestReserveClaimsCodeOnce(t *testing.T) {
	reserver, _ := newTestReserver(t)
	ctx := context.Background()

	ok, err := reserver.Reserve(ctx, "123456", time.Minute)
	if err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}
	if !ok {
		t.Fatal("first reservation should succeed")
	}

	ok, err = reserver.Reserve(ctx, "123456", time.Minute)
	if err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}
	if ok {
		t.Error("second reservation of the same code should fail")
	}

	ok, err = reserver.Reserve(ctx, "654321", time.Minute)
	if err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}
	if !ok {
		t.Error("a different code should still be reservable")
	}
}

func TestReleaseFreesCode(t *testing.T) {
	reserver, _ := newTestReserver(t)
	ctx := context.Background()

	if _, err := reserver.Reserve(ctx, "123456", time.Minute); err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}
	if err := reserver.Release(ctx, "123456"); err != nil {
		t.Fatalf("Release failed: %v", err)
	}

	ok, err := reserver.Reserve(ctx, "123456", time.Minute)
	if err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}
	if !ok {
		t.Error("released code should be reservable again")
	}
}

func TestReservationExpires(t *testing.T) {
	reserver, mr := newTestReserver(t)
	ctx := context.Background()

	if _, err := reserver.Reserve(ctx, "123456", time.Minute); err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	ok, err := reserver.Reserve(ctx, "123456", time.Minute)
	if err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}
	if !ok {
		t.Error("expired reservation should free the code")
	}
}
