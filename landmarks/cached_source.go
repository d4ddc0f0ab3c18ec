package landmarks

import (
	"context"
	"log"

	"github.com/unmute-ai/signplay/sign"
)

// cachedSource serves frames from the cache and falls through to the wrapped
// source on a miss, storing the result on the way back.
type cachedSource struct {
	src   Source
	cache Cache
}

var _ Source = &cachedSource{}

// NewCachedSource wraps a source with a cache.
//
// Parameters:
//   - src: the source of record
//   - cache: the cache consulted first
//
// Returns:
//   - Source: the cache-fronted source
func NewCachedSource(src Source, cache Cache) Source {
	return &cachedSource{src: src, cache: cache}
}

func (c *cachedSource) Frames(ctx context.Context, signName string) ([]sign.Frame, error) {
	if frames, err := c.cache.Frames(signName); err == nil {
		return frames, nil
	}

	frames, err := c.src.Frames(ctx, signName)
	if err != nil {
		return nil, err
	}
	// A failed cache write only costs the next lookup a refetch.
	if err := c.cache.Store(signName, frames); err != nil {
		log.Printf("landmarks: cache store for %q failed: %v", signName, err)
	}
	return frames, nil
}
