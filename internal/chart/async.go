package chart

import (
	"context"
	"fmt"
)

// Result is the outcome of an asynchronous layout pass
type Result struct {
	Geometry *Geometry
	Err      error
}

// LayoutAsync runs Layout on its own goroutine. The returned channel yields
// exactly one Result and is then closed. The sample slices must not be
// modified until the result arrives.
func (e *Engine) LayoutAsync(ctx context.Context, width, height int, frequencies, gains []float64, opts Options) <-chan Result {
	return runAsync(func() (*Geometry, error) {
		return e.Layout(ctx, width, height, frequencies, gains, opts)
	})
}

// runAsync runs fn on its own goroutine. A panic in fn is delivered as the
// Result error instead of taking down the process.
func runAsync(fn func() (*Geometry, error)) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		defer func() {
			if r := recover(); r != nil {
				ch <- Result{Err: fmt.Errorf("layout panicked: %v", r)}
			}
		}()
		g, err := fn()
		ch <- Result{Geometry: g, Err: err}
	}()
	return ch
}
