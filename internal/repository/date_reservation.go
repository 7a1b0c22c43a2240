package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	bookingDomain "github.com/nbfilms/studio-api/internal/domain/booking"
)

const dateReservationPrefix = "booking:date:"

// RedisDateReservation implements the only-if-absent event date guard with a
// short-TTL SET NX key per normalized date. It narrows the window between the
// availability pre-check and the insert; the bookings table's unique index is
// what actually enforces exclusivity.
type RedisDateReservation struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDateReservation creates a guard with the given hold TTL.
func NewRedisDateReservation(client *redis.Client, ttl time.Duration) *RedisDateReservation {
	return &RedisDateReservation{client: client, ttl: ttl}
}

// Reserve attempts to claim the date. It returns false when another
// submission already holds it.
func (r *RedisDateReservation) Reserve(ctx context.Context, date time.Time) (bool, error) {
	ok, err := r.client.SetNX(ctx, dateReservationKey(date), "held", r.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to reserve date: %w", err)
	}
	return ok, nil
}

// Release frees the date, e.g. after a failed insert or a deleted booking.
func (r *RedisDateReservation) Release(ctx context.Context, date time.Time) error {
	if err := r.client.Del(ctx, dateReservationKey(date)).Err(); err != nil {
		return fmt.Errorf("failed to release date: %w", err)
	}
	return nil
}

func dateReservationKey(date time.Time) string {
	return dateReservationPrefix + bookingDomain.DateKey(date)
}
