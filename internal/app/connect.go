package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/five82/bloom/internal/storage"
)

const (
	defaultConnectAttempts = 3
	defaultRetryInterval   = 500 * time.Millisecond
	maxBackoff             = 5 * time.Second
)

// openStorage opens the configured backend. Redis gets a few attempts with
// exponential backoff so a server that is still starting does not abort the
// app; file and memory backends fail immediately.
func openStorage(ctx context.Context, opts storage.Options, attempts int, base time.Duration) (storage.KV, error) {
	if opts.Backend != storage.BackendRedis || attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for failures := 0; failures < attempts; failures++ {
		if failures > 0 {
			wait := calculateBackoff(failures-1, base)
			log.Printf("storage: %v; retrying in %v", lastErr, wait)
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, fmt.Errorf("%w (last error: %v)", ctx.Err(), lastErr)
			case <-timer.C:
			}
		}

		kv, err := storage.Open(ctx, opts)
		if err == nil {
			return kv, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// calculateBackoff doubles base per failure, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return min(base, maxBackoff)
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}
