package landmarks

import "time"

// PrefetcherBuilderOption is a functional option for configuring a Prefetcher.
type PrefetcherBuilderOption func(*prefetcher)

// WithWorkers sets the maximum number of concurrent prefetch workers.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - PrefetcherBuilderOption: option function to apply
func WithWorkers(n int) PrefetcherBuilderOption {
	return func(p *prefetcher) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithQueueDepth sets the pending task queue size of the worker pool.
//
// Parameters:
//   - n: the queue depth
//
// Returns:
//   - PrefetcherBuilderOption: option function to apply
func WithQueueDepth(n int) PrefetcherBuilderOption {
	return func(p *prefetcher) {
		if n > 0 {
			p.queueDepth = n
		}
	}
}

// WithIdleTimeout sets how long a pool worker may sit idle before the pool
// scales it down.
//
// Parameters:
//   - d: the idle timeout
//
// Returns:
//   - PrefetcherBuilderOption: option function to apply
func WithIdleTimeout(d time.Duration) PrefetcherBuilderOption {
	return func(p *prefetcher) {
		if d > 0 {
			p.idle = d
		}
	}
}
