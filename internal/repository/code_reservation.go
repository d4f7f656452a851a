package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const codeReservationPrefix = "attendance:code:"

// CodeReserver provides a fast atomic reservation of attendance codes so two
// concurrent session starts cannot draw the same code before either persists.
// The Postgres partial unique index remains the backstop; this layer only
// shortens the race window and avoids burning insert attempts.
type CodeReserver interface {
	Reserve(ctx context.Context, code string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, code string) error
}

type redisCodeReserver struct {
	client *redis.Client
}

// NewCodeReserver returns a Redis-backed reserver.
func NewCodeReserver(client *redis.Client) CodeReserver {
	return &redisCodeReserver{client: client}
}

// Reserve claims the code for ttl. Returns false when another session holds it.
func (r *redisCodeReserver) Reserve(ctx context.Context, code string, ttl time.Duration) (bool, error) {
	return r.client.SetNX(ctx, codeReservationPrefix+code, "1", ttl).Result()
}

// Release frees a reservation whose session insert did not go through.
func (r *redisCodeReserver) Release(ctx context.Context, code string) error {
	return r.client.Del(ctx, codeReservationPrefix+code).Err()
}
