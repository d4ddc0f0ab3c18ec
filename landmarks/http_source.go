package landmarks

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/unmute-ai/signplay/sign"
)

// maxPayloadBytes caps a single recording payload. The largest recorded signs
// are well under a megabyte; anything bigger is a broken upstream.
const maxPayloadBytes = 16 << 20

// httpSource fetches recordings from the landmark service:
// GET {base}/sign/{name}/landmarks.
type httpSource struct {
	baseURL string
	client  *http.Client
}

var _ Source = &httpSource{}

// NewHTTPSource creates a Source backed by the landmark HTTP service.
//
// Parameters:
//   - baseURL: the service root, e.g. "https://signs.example.com"
//   - options: functional options to override the HTTP client
//
// Returns:
//   - Source: the configured source
func NewHTTPSource(baseURL string, options ...HTTPSourceBuilderOption) Source {
	s := &httpSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *httpSource) Frames(ctx context.Context, signName string) ([]sign.Frame, error) {
	endpoint := fmt.Sprintf("%s/sign/%s/landmarks", s.baseURL, url.PathEscape(signName))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("landmarks: build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("landmarks: fetch %q: %w", signName, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("landmarks: fetch %q: unexpected status %s", signName, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("landmarks: read payload for %q: %w", signName, err)
	}
	return normalizePayload(data)
}
