package collection

import (
	"context"
	"errors"
	"sync"
	"time"

	"pelada/internal/backend"
	"pelada/internal/logger"
	"pelada/internal/metrics"
)

const DefaultTimeout = 15 * time.Second

type State int

const (
	Idle State = iota
	Loading
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Fetcher loads the resource value for a driver (usually the signed-in
// user's id; empty for global resources).
type Fetcher[T any] func(ctx context.Context, driver string) (T, error)

type Options struct {
	// NeedsDriver resources settle empty, without fetching, while the
	// driver is empty.
	NeedsDriver bool
	// Available reports whether fetching can reach the backend at all.
	// When it returns false loads settle empty synchronously.
	Available func() bool
	Timeout   time.Duration
}

type Snapshot[T any] struct {
	Value   T
	State   State
	Loading bool
	Err     error
	Driver  string
}

// Resource is a remotely loaded value with a load state. Loads run
// detached from the caller's cancellation; only the completion of the most
// recently started load is applied.
type Resource[T any] struct {
	name  string
	fetch Fetcher[T]
	opts  Options

	mu      sync.Mutex
	mounted bool
	state   State
	value   T
	err     error
	driver  string
	gen     uint64
	done    chan struct{}
	pending bool
}

func NewResource[T any](name string, opts Options, fetch Fetcher[T]) *Resource[T] {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Resource[T]{name: name, fetch: fetch, opts: opts}
}

func (r *Resource[T]) Name() string {
	return r.name
}

// Mount starts the first load. Later calls are no-ops.
func (r *Resource[T]) Mount(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.mounted {
		return
	}
	r.mounted = true
	r.startLocked(ctx)
}

// SetDriver switches the resource to a new driver. The current value is
// dropped and, once mounted, a load for the new driver starts.
func (r *Resource[T]) SetDriver(ctx context.Context, driver string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if driver == r.driver {
		return
	}
	r.driver = driver
	var zero T
	r.value = zero
	r.err = nil
	if !r.mounted {
		r.state = Idle
		return
	}
	r.startLocked(ctx)
}

// Reload starts a fresh load without waiting for it. A load already in
// flight is reused.
func (r *Resource[T]) Reload(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mounted = true
	if r.state == Loading {
		return
	}
	r.startLocked(ctx)
}

// Refresh starts a new load and waits for it to settle.
func (r *Resource[T]) Refresh(ctx context.Context) error {
	r.mu.Lock()
	r.mounted = true
	r.startLocked(ctx)
	r.mu.Unlock()
	return r.Wait(ctx)
}

// Wait blocks until the latest load settles and returns its error.
func (r *Resource[T]) Wait(ctx context.Context) error {
	for {
		r.mu.Lock()
		done, gen := r.done, r.gen
		r.mu.Unlock()
		if done == nil {
			return nil
		}

		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}

		r.mu.Lock()
		current, err := r.gen == gen, r.err
		r.mu.Unlock()
		if current {
			return err
		}
	}
}

func (r *Resource[T]) Snapshot() Snapshot[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot[T]{
		Value:   r.value,
		State:   r.state,
		Loading: r.state == Loading,
		Err:     r.err,
		Driver:  r.driver,
	}
}

// Mutate applies fn to the value if the resource still belongs to driver.
func (r *Resource[T]) Mutate(driver string, fn func(T) T) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.driver != driver {
		return false
	}
	r.value = fn(r.value)
	return true
}

func (r *Resource[T]) startLocked(ctx context.Context) {
	r.gen++
	if r.pending {
		close(r.done)
	}
	r.done = make(chan struct{})
	r.pending = true

	if r.opts.NeedsDriver && r.driver == "" {
		r.settleLocked(r.gen, *new(T), nil)
		return
	}
	if r.opts.Available != nil && !r.opts.Available() {
		r.settleLocked(r.gen, *new(T), backend.ErrUnavailable)
		return
	}

	r.state = Loading
	go r.load(ctx, r.gen, r.driver)
}

func (r *Resource[T]) load(ctx context.Context, gen uint64, driver string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.opts.Timeout)
	defer cancel()

	value, err := r.fetch(ctx, driver)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.settleLocked(gen, value, err)
}

func (r *Resource[T]) settleLocked(gen uint64, value T, err error) {
	if gen != r.gen {
		metrics.RecordCollectionFetch(r.name, "stale")
		return
	}

	switch {
	case err == nil:
		r.value = value
		r.state = Loaded
		r.err = nil
		metrics.RecordCollectionFetch(r.name, "ok")
	case errors.Is(err, backend.ErrUnavailable):
		var zero T
		r.value = zero
		r.state = Loaded
		r.err = nil
		metrics.RecordCollectionFetch(r.name, "unconfigured")
	default:
		r.state = Failed
		r.err = err
		metrics.RecordCollectionFetch(r.name, "error")
		logger.Error("resource fetch failed", "resource", r.name, "driver", r.driver, "error", err)
	}

	close(r.done)
	r.pending = false
}
