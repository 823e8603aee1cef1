package limiter

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/olusolaa/stack-sync/internal/core/ports"
)

const (
	DefaultRateLimitRPS = 10
	minRateLimitRPS     = 1
	maxRateLimitRPS     = 100
)

// DefaultRateLimiter is a token bucket shared by every flow that talks to AWS.
// The zero value is usable and runs at DefaultRateLimitRPS.
type DefaultRateLimiter struct {
	once    sync.Once
	rps     int
	limiter *rate.Limiter
}

// New returns a limiter for rps requests per second. Out of range values fall
// back to the default with a warning.
func New(rps int, logger ports.Logger) *DefaultRateLimiter {
	limitValue := DefaultRateLimitRPS
	if rps >= minRateLimitRPS && rps <= maxRateLimitRPS {
		limitValue = rps
	} else if rps != 0 && logger != nil {
		logger.Warnf(context.Background(), "Invalid AWS API RPS configured (%d), using default %d RPS. Valid range: %d-%d.",
			rps, DefaultRateLimitRPS, minRateLimitRPS, maxRateLimitRPS)
	}
	return &DefaultRateLimiter{rps: limitValue}
}

func (l *DefaultRateLimiter) init() {
	l.once.Do(func() {
		if l.rps == 0 {
			l.rps = DefaultRateLimitRPS
		}
		l.limiter = rate.NewLimiter(rate.Limit(l.rps), l.rps)
	})
}

func (l *DefaultRateLimiter) RPS() int {
	l.init()
	return l.rps
}

func (l *DefaultRateLimiter) Wait(ctx context.Context, logger ports.Logger) error {
	l.init()
	if err := l.limiter.Wait(ctx); err != nil {
		if ctx.Err() == nil && logger != nil {
			logger.Warnf(ctx, "Error waiting for AWS API rate limiter: %v", err)
		}
		return err
	}
	return nil
}
