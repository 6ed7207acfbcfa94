package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Locker hands out short-lived named locks. A lock is owned by the token
// TryLock returned and only that token can release it.
type Locker interface {
	// TryLock returns ok=false when someone else holds key
	TryLock(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	// Unlock releases key if it is still held under token
	Unlock(ctx context.Context, key, token string) error
	Close() error
}

var errLockBusy = errors.New("lock busy")

// InterventionLockKey is the lock serialising intervention checks of a meeting
func InterventionLockKey(meetingID string) string {
	return "intervention:check:" + meetingID
}

// MinutesLockKey is the lock serialising minutes reconciliation of a meeting
func MinutesLockKey(meetingID string) string {
	return "minutes:reconcile:" + meetingID
}

// Acquire waits until key is free and takes it for ttl. It gives up when ctx ends.
func Acquire(ctx context.Context, locker Locker, key string, ttl time.Duration) (string, error) {
	var token string
	operation := func() error {
		t, ok, err := locker.TryLock(ctx, key, ttl)
		if err != nil {
			return backoff.Permanent(err)
		}
		if !ok {
			return errLockBusy
		}
		token = t
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 20 * time.Millisecond
	bo.MaxInterval = time.Second
	bo.MaxElapsedTime = 0

	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return "", fmt.Errorf("acquire %s: %w", key, err)
	}
	return token, nil
}
