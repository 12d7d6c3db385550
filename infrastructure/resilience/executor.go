// Package resilience provides resilient storage access patterns using fortify.
//
// The executor service layer routes archive saves and event appends through
// an Executor so that a slow or flapping backend degrades the run instead of
// wedging it. The planner itself never goes through this package; the core
// search performs no I/O.
package resilience

import (
	"context"
	"time"

	"github.com/felixgeelhaar/fortify/bulkhead"
	"github.com/felixgeelhaar/fortify/circuitbreaker"
	"github.com/felixgeelhaar/fortify/retry"
)

// Operation is a storage operation protected by the executor.
type Operation func(ctx context.Context) error

// Executor provides resilient storage access with circuit breaker, retry,
// and bulkhead patterns.
type Executor struct {
	bulkhead bulkhead.Bulkhead[struct{}]
	breaker  circuitbreaker.CircuitBreaker[struct{}]
	retry    retry.Retry[struct{}]
	timeout  time.Duration
}

// ExecutorConfig configures the resilient executor.
type ExecutorConfig struct {
	// MaxConcurrent limits concurrent storage operations.
	MaxConcurrent int

	// CircuitBreakerThreshold is the number of failures before opening.
	CircuitBreakerThreshold int

	// CircuitBreakerTimeout is how long the circuit stays open.
	CircuitBreakerTimeout time.Duration

	// RetryMaxAttempts is the maximum number of retry attempts.
	RetryMaxAttempts int

	// RetryInitialDelay is the initial delay between retries.
	RetryInitialDelay time.Duration

	// RetryBackoffMultiplier is the exponential backoff multiplier.
	RetryBackoffMultiplier float64

	// DefaultTimeout is the default operation timeout.
	DefaultTimeout time.Duration
}

// DefaultExecutorConfig returns a configuration with sensible defaults.
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		MaxConcurrent:           10,
		CircuitBreakerThreshold: 5,
		CircuitBreakerTimeout:   30 * time.Second,
		RetryMaxAttempts:        3,
		RetryInitialDelay:       100 * time.Millisecond,
		RetryBackoffMultiplier:  2.0,
		DefaultTimeout:          5 * time.Second,
	}
}

// NewExecutor creates a new resilient executor.
func NewExecutor(config ExecutorConfig) *Executor {
	// Ensure non-negative values for uint32 conversion
	maxConcurrent := config.MaxConcurrent
	if maxConcurrent < 0 {
		maxConcurrent = 10 // default
	}
	threshold := config.CircuitBreakerThreshold
	if threshold < 0 {
		threshold = 5 // default
	}

	return &Executor{
		bulkhead: bulkhead.New[struct{}](bulkhead.Config{
			MaxConcurrent: maxConcurrent,
		}),
		breaker: circuitbreaker.New[struct{}](circuitbreaker.Config{
			MaxRequests: uint32(maxConcurrent), // #nosec G115 -- bounds checked above
			Interval:    config.CircuitBreakerTimeout,
			Timeout:     config.CircuitBreakerTimeout,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return counts.ConsecutiveFailures >= uint32(threshold) // #nosec G115 -- bounds checked above
			},
		}),
		retry: retry.New[struct{}](retry.Config{
			MaxAttempts:   config.RetryMaxAttempts,
			InitialDelay:  config.RetryInitialDelay,
			BackoffPolicy: retry.BackoffExponential,
			Multiplier:    config.RetryBackoffMultiplier,
		}),
		timeout: config.DefaultTimeout,
	}
}

// NewDefaultExecutor creates an executor with default configuration.
func NewDefaultExecutor() *Executor {
	return NewExecutor(DefaultExecutorConfig())
}

// Execute runs an idempotent storage operation with resilience patterns
// applied. Composition order: Bulkhead → Timeout → Circuit Breaker → Retry.
//
// Use this for reads and writes that are safe to repeat, such as archive
// saves keyed by record ID. Non-idempotent writes go through ExecuteOnce.
func (e *Executor) Execute(ctx context.Context, op Operation) error {
	_, err := e.bulkhead.Execute(ctx, func(ctx context.Context) (struct{}, error) {
		// Apply timeout
		ctx, cancel := context.WithTimeout(ctx, e.timeout)
		defer cancel()

		// Apply circuit breaker
		return e.breaker.Execute(ctx, func(ctx context.Context) (struct{}, error) {
			return e.retry.Do(ctx, func(ctx context.Context) (struct{}, error) {
				return struct{}{}, op(ctx)
			})
		})
	})
	return err
}

// ExecuteOnce runs a storage operation without retry. The bulkhead, timeout,
// and circuit breaker still apply.
//
// Use this for operations that must not be repeated on ambiguous failure,
// such as event appends that allocate a new sequence number per call.
func (e *Executor) ExecuteOnce(ctx context.Context, op Operation) error {
	_, err := e.bulkhead.Execute(ctx, func(ctx context.Context) (struct{}, error) {
		ctx, cancel := context.WithTimeout(ctx, e.timeout)
		defer cancel()

		return e.breaker.Execute(ctx, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, op(ctx)
		})
	})
	return err
}

// ExecuteWithTimeout runs an idempotent operation with a custom timeout.
func (e *Executor) ExecuteWithTimeout(ctx context.Context, op Operation, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return e.Execute(ctx, op)
}

// CircuitBreakerState returns the current state of the circuit breaker.
func (e *Executor) CircuitBreakerState() circuitbreaker.State {
	return e.breaker.State()
}
