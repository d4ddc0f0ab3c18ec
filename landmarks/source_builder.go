package landmarks

import "net/http"

// HTTPSourceBuilderOption is a functional option for configuring an HTTP source.
type HTTPSourceBuilderOption func(*httpSource)

// WithHTTPClient overrides the HTTP client used for landmark fetches.
//
// Parameters:
//   - client: the client to use
//
// Returns:
//   - HTTPSourceBuilderOption: option function to apply
func WithHTTPClient(client *http.Client) HTTPSourceBuilderOption {
	return func(s *httpSource) {
		if client != nil {
			s.client = client
		}
	}
}

// S3SourceBuilderOption is a functional option for configuring an S3 source.
type S3SourceBuilderOption func(*s3Source)

// WithKeyPrefix sets the key prefix prepended to every object key.
//
// Parameters:
//   - prefix: the prefix, without a trailing slash
//
// Returns:
//   - S3SourceBuilderOption: option function to apply
func WithKeyPrefix(prefix string) S3SourceBuilderOption {
	return func(s *s3Source) {
		s.prefix = prefix
	}
}
