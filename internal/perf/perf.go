// Package perf times pipeline operations against a fixed budget. Operations
// that run past the warning threshold get a recorded warning; operations that
// run past the maximum are abandoned and a fallback, when supplied, produces
// the result instead.
package perf

import (
	"context"
	"fmt"
	"time"

	"promptforge/internal/logging"
)

// Budget bounds one measured operation.
type Budget struct {
	Warning time.Duration
	Max     time.Duration
}

// DefaultBudget is the generation pipeline's per-operation budget.
var DefaultBudget = Budget{
	Warning: 80 * time.Millisecond,
	Max:     100 * time.Millisecond,
}

// Op is a measured unit of work.
type Op[T any] func() (T, error)

// Result carries the operation's outcome together with its timing verdict.
type Result[T any] struct {
	Value           T
	Err             error
	ExecutionTime   time.Duration
	TimeoutExceeded bool
	UsedFallback    bool
	Warnings        []string
}

// Measure runs primary synchronously under DefaultBudget. The operation is
// never interrupted; timing is judged after it returns.
func Measure[T any](name string, primary Op[T]) Result[T] {
	start := time.Now()
	value, err := primary()
	elapsed := time.Since(start)

	res := Result[T]{
		Value:         value,
		Err:           err,
		ExecutionTime: elapsed,
	}
	judge(name, DefaultBudget, &res)
	return res
}

// MeasureCtx runs primary in a goroutine bounded by the budget's Max and any
// earlier ctx deadline. On expiry the primary is abandoned (its goroutine is
// left to finish into a buffered channel) and the fallback, when non-nil,
// produces the value; ExecutionTime covers both. A nil fallback yields the
// zero value with ctx.Err or a deadline error.
func MeasureCtx[T any](ctx context.Context, name string, b Budget, primary, fallback Op[T]) Result[T] {
	if b.Max <= 0 {
		b = DefaultBudget
	}

	type outcome struct {
		value T
		err   error
	}
	done := make(chan outcome, 1)

	start := time.Now()
	go func() {
		v, err := primary()
		done <- outcome{value: v, err: err}
	}()

	deadline := time.NewTimer(b.Max)
	defer deadline.Stop()

	var res Result[T]
	select {
	case out := <-done:
		res.Value = out.value
		res.Err = out.err
	case <-ctx.Done():
		res.TimeoutExceeded = true
		res.Err = ctx.Err()
	case <-deadline.C:
		res.TimeoutExceeded = true
		res.Err = fmt.Errorf("%s exceeded %v budget", name, b.Max)
	}

	if res.TimeoutExceeded && fallback != nil {
		res.Value, res.Err = fallback()
		res.UsedFallback = true
	}

	res.ExecutionTime = time.Since(start)
	judge(name, b, &res)
	return res
}

func judge[T any](name string, b Budget, res *Result[T]) {
	if res.ExecutionTime > b.Max && !res.TimeoutExceeded {
		res.TimeoutExceeded = true
	}
	if res.ExecutionTime > b.Warning {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("%s took %v, warning threshold %v", name, res.ExecutionTime, b.Warning))
		logging.PerformanceWarn("%s slow: %v (warn=%v max=%v)",
			name, res.ExecutionTime, b.Warning, b.Max)
		return
	}
	logging.Performance("%s completed in %v", name, res.ExecutionTime)
}
