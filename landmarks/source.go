// Package landmarks resolves sign names to their recorded motion frames.
//
// Recordings arrive in three historical wire shapes; all of them are
// validated and normalized here, at the boundary, so everything downstream
// sees exactly one canonical frame type. Sources are composable: an HTTP or
// S3 source does the fetching, a badger-backed cache wraps it, and a
// prefetcher warms the cache for upcoming plan items.
package landmarks

import (
	"context"
	"errors"

	"github.com/unmute-ai/signplay/sign"
)

// ErrNotFound indicates no recording exists for the requested sign.
var ErrNotFound = errors.New("landmarks: sign not found")

// Source resolves a sign name to its canonical frame sequence.
type Source interface {
	// Frames fetches the ordered frame sequence recorded for a sign.
	//
	// Parameters:
	//   - ctx: cancels an in-flight lookup
	//   - signName: the canonical sign name
	//
	// Returns:
	//   - []sign.Frame: the ordered frame sequence
	//   - error: ErrNotFound if no recording exists, or a transport error
	Frames(ctx context.Context, signName string) ([]sign.Frame, error)
}
