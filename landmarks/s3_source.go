package landmarks

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/unmute-ai/signplay/sign"
)

// S3Client abstracts the S3 API operations used by the S3 source.
// The s3.Client type satisfies this interface.
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// s3Source fetches recording payloads from an S3-compatible object store,
// one JSON object per sign, keyed {prefix}/{name}.json.
type s3Source struct {
	client S3Client
	bucket string
	prefix string
}

var _ Source = &s3Source{}

// NewS3Source creates a Source backed by an object store bucket.
//
// The client should be pre-configured (credentials, region, endpoint).
// Any type satisfying S3Client is accepted; typically an s3.Client.
//
// Parameters:
//   - client: the object store client
//   - bucket: the bucket holding the recordings
//   - options: functional options, e.g. a key prefix
//
// Returns:
//   - Source: the configured source
func NewS3Source(client S3Client, bucket string, options ...S3SourceBuilderOption) Source {
	s := &s3Source{
		client: client,
		bucket: bucket,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// key builds the full object key for the given sign name.
func (s *s3Source) key(signName string) string {
	if s.prefix == "" {
		return signName + ".json"
	}
	return s.prefix + "/" + signName + ".json"
}

func (s *s3Source) Frames(ctx context.Context, signName string) ([]sign.Frame, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(signName)),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("landmarks: fetch %q from s3: %w", signName, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("landmarks: read payload for %q: %w", signName, err)
	}
	return normalizePayload(data)
}

// isS3NotFound reports whether err indicates the object does not exist.
func isS3NotFound(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}
	return false
}
