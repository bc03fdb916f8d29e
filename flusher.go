package collector

import (
	"context"
	"sync"
	"time"

	"github.com/thedevsaddam/retry"
	"golang.org/x/sync/errgroup"
)

// defaultInterval is how often a Flusher steals when not configured.
const defaultInterval = time.Second

// Sink receives one stolen batch. Batches arrive in steal order but
// may run concurrently when a limit above 1 is set.
type Sink[T any] func(batch []T) error

// Flusher drains a Collector in the background: on every tick it
// steals everything accumulated since the previous tick and hands the
// batch to the sink. Empty steals are skipped. A sink error (after
// retries, if configured) stops the loop; Stop reports it.
type Flusher[T any] struct {
	collector *Collector[T]
	sink      Sink[T]
	interval  time.Duration
	retry     *retryConfig
	group     *errgroup.Group
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	errors    []error
	mutex     sync.Mutex
}

type retryConfig struct {
	attempts uint
	sleep    time.Duration
}

// NewFlusher creates a Flusher over c delivering to sink. Configure it
// with the WithX methods, then call Run.
func NewFlusher[T any](c *Collector[T], sink Sink[T]) *Flusher[T] {
	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)

	return &Flusher[T]{
		collector: c,
		sink:      sink,
		interval:  defaultInterval,
		group:     g,
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
		errors:    []error{},
	}
}

// WithInterval sets the steal interval.
func (f *Flusher[T]) WithInterval(d time.Duration) *Flusher[T] {
	f.interval = d
	return f
}

// WithRetry makes every sink call retry up to attempts times, sleeping
// between attempts.
func (f *Flusher[T]) WithRetry(attempts uint, sleep time.Duration) *Flusher[T] {
	f.retry = &retryConfig{
		attempts: attempts,
		sleep:    sleep,
	}
	return f
}

// WithLimit caps how many sink calls may run concurrently.
func (f *Flusher[T]) WithLimit(limit int) *Flusher[T] {
	f.group.SetLimit(limit)
	return f
}

// Run starts the background loop and returns the Flusher.
func (f *Flusher[T]) Run() *Flusher[T] {
	go func() {
		defer close(f.done)

		ticker := time.NewTicker(f.interval)
		defer ticker.Stop()

		for {
			select {
			case <-f.ctx.Done():
				return
			case <-ticker.C:
				f.flush()
			}
		}
	}()

	return f
}

// Stop cancels the loop, steals and delivers whatever is still
// resident, waits for in-flight sink calls and returns the first sink
// error. Only valid after Run.
func (f *Flusher[T]) Stop() error {
	f.cancel()
	<-f.done
	f.flush()

	return f.group.Wait()
}

// Errors returns all sink errors collected during runtime and a flag
// indicating if there were any.
func (f *Flusher[T]) Errors() ([]error, bool) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	return f.errors, len(f.errors) > 0
}

func (f *Flusher[T]) flush() {
	var batch []T
	f.collector.Collect(func(v T) {
		batch = append(batch, v)
	})

	if len(batch) == 0 {
		return
	}

	f.group.Go(func() error {
		deliver := func() error {
			return f.sink(batch)
		}

		var err error
		if f.retry != nil {
			err = retry.DoFunc(f.retry.attempts, f.retry.sleep, deliver)
		} else {
			err = deliver()
		}

		if err != nil {
			// collect errors separately and prevent race conditions
			f.mutex.Lock()
			f.errors = append(f.errors, err)
			f.mutex.Unlock()
		}

		return err
	})
}
