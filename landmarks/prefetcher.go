package landmarks

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// Prefetcher warms a cache-fronted source for upcoming plan items while the
// current item is still dwelling on screen. Fetches run on a bounded dynamic
// worker pool; results are discarded because the wrapped source stores them.
type Prefetcher interface {
	// Warm schedules background fetches for the given sign names. Names with
	// a fetch already in flight are skipped.
	//
	// Parameters:
	//   - ctx: cancels the scheduled fetches
	//   - signNames: the upcoming sign names, in plan order
	Warm(ctx context.Context, signNames []string)
}

type prefetcher struct {
	source Source
	pool   worker.DynamicWorkerPool

	workers    int
	queueDepth int
	idle       time.Duration

	mu       sync.Mutex
	inFlight map[string]bool
	nextID   int
}

var _ Prefetcher = &prefetcher{}

// NewPrefetcher creates a prefetcher over the given source. Wrap the source
// with NewCachedSource first; warming an uncached source just burns requests.
//
// Parameters:
//   - source: the cache-fronted source to warm
//   - options: functional options for pool sizing
//
// Returns:
//   - Prefetcher: the configured prefetcher
func NewPrefetcher(source Source, options ...PrefetcherBuilderOption) Prefetcher {
	p := &prefetcher{
		source:     source,
		workers:    2,
		queueDepth: 64,
		idle:       1 * time.Second,
		inFlight:   make(map[string]bool),
	}
	for _, opt := range options {
		opt(p)
	}
	p.pool = worker.NewDynamicWorkerPool(p.workers, p.queueDepth, p.idle)
	return p
}

func (p *prefetcher) Warm(ctx context.Context, signNames []string) {
	for _, name := range signNames {
		p.mu.Lock()
		if name == "" || p.inFlight[name] {
			p.mu.Unlock()
			continue
		}
		p.inFlight[name] = true
		id := p.nextID
		p.nextID++
		p.mu.Unlock()

		p.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer func() {
					p.mu.Lock()
					delete(p.inFlight, name)
					p.mu.Unlock()
				}()
				if _, err := p.source.Frames(ctx, name); err != nil && !errors.Is(err, ErrNotFound) && !errors.Is(err, context.Canceled) {
					log.Printf("landmarks: prefetch %q: %v", name, err)
				}
				return nil, nil
			},
		})
	}
}
