/*
Copyright 2024 The SUNET Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package openstack

import (
	"context"
	"errors"
	"math"
	"time"

	"golang.org/x/time/rate"

	"github.com/sunet/openstack-operator/internal/metrics"
)

// rateLimiter bounds both the number of concurrent remote calls and their
// average rate, and retries a call a bounded number of times with
// exponential backoff when it returns a transient error.
type rateLimiter struct {
	concurrency chan struct{}
	tokens      *rate.Limiter
	maxRetries  int

	// retryDelay is the first backoff interval; it doubles per attempt.
	retryDelay time.Duration
}

func newRateLimiter(maxConcurrent int, requestsPerSecond float64, maxRetries int) *rateLimiter {
	return &rateLimiter{
		concurrency: make(chan struct{}, maxConcurrent),
		tokens:      rate.NewLimiter(rate.Limit(requestsPerSecond), int(math.Max(1, requestsPerSecond))),
		maxRetries:  maxRetries,
		retryDelay:  time.Second,
	}
}

// acquire blocks until a concurrency slot and a rate token are both
// available, and records the time spent waiting.
func (l *rateLimiter) acquire(ctx context.Context) error {
	start := time.Now()

	select {
	case l.concurrency <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := l.tokens.Wait(ctx); err != nil {
		<-l.concurrency
		return err
	}

	if wait := time.Since(start); wait > time.Millisecond {
		metrics.RateLimitWaitSeconds.Observe(wait.Seconds())
	}
	return nil
}

func (l *rateLimiter) release() {
	<-l.concurrency
}

// transientError marks an error as safe to retry. Remote operations that
// wrap a gophercloud 5xx or network-layer failure should return one.
type transientError struct {
	err error
}

func (t *transientError) Error() string { return t.err.Error() }
func (t *transientError) Unwrap() error { return t.err }

// retryable wraps err so call treats it as transient.
func retryable(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

func isTransient(err error) bool {
	var t *transientError
	return errors.As(err, &t)
}

// call runs fn under the rate limiter, retrying on a transient error with
// exponential backoff, and records duration, outcome and retry metrics
// labelled by service and operation.
func call[T any](ctx context.Context, l *rateLimiter, service, operation string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	delay := l.retryDelay

	for attempt := 0; ; attempt++ {
		if err := l.acquire(ctx); err != nil {
			return zero, err
		}

		start := time.Now()
		result, err := fn(ctx)
		l.release()

		metrics.OpenStackAPIDuration.WithLabelValues(service, operation).Observe(time.Since(start).Seconds())

		if err == nil {
			metrics.OpenStackAPICalls.WithLabelValues(service, operation, "success").Inc()
			return result, nil
		}

		if !isTransient(err) || attempt >= l.maxRetries {
			metrics.OpenStackAPICalls.WithLabelValues(service, operation, "error").Inc()
			return zero, unwrapTransient(err)
		}

		metrics.OpenStackAPIRetries.WithLabelValues(service, operation).Inc()

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return zero, ctx.Err()
		}
		delay *= 2
	}
}

func unwrapTransient(err error) error {
	var t *transientError
	if errors.As(err, &t) {
		return t.err
	}
	return err
}
