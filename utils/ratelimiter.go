package utils

import (
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter bounds how often an expensive operation may start
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter allows perMinute operations per minute with a burst of one
func NewRateLimiter(perMinute int) *RateLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	every := time.Minute / time.Duration(perMinute)
	return &RateLimiter{limiter: rate.NewLimiter(rate.Every(every), 1)}
}

// Allow reports whether an operation may start now, consuming a token if so
func (r *RateLimiter) Allow() bool {
	return r.limiter.Allow()
}
