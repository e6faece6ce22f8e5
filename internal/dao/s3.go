package dao

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/a1s/gridbind/internal/model1"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/golang/glog"
	"go.opentelemetry.io/otel/attribute"
)

// S3API represents the subset of the S3 client used by S3Store.
type S3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store persists the whole content as a single JSON snapshot object.
type S3Store struct {
	client S3API
	bucket string
	key    string
}

// NewS3Store returns a store writing to s3://bucket/key.
func NewS3Store(client S3API, bucket, key string) (*S3Store, error) {
	if bucket == "" {
		return nil, ErrNoBucket
	}
	if key == "" {
		key = "gridbind.json"
	}

	return &S3Store{client: client, bucket: bucket, key: key}, nil
}

// NewS3StoreFromProfile builds an S3 client from the shared AWS config.
func NewS3StoreFromProfile(ctx context.Context, profile, region, bucket, key string) (*S3Store, error) {
	opts := make([]func(*config.LoadOptions) error, 0, 2)
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return NewS3Store(s3.NewFromConfig(cfg), bucket, key)
}

// Load fetches the snapshot. A missing object yields no sections.
func (s *S3Store) Load(ctx context.Context) (ss model1.Sections, err error) {
	ctx, span := startSpan(ctx, "s3", "load", attribute.String("gridbind.key", s.key))
	defer func() { endSpan(span, err) }()

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		if isNotFound(err) {
			glog.V(2).Infof("[s3] no snapshot at s3://%s/%s\n", s.bucket, s.key)
			return model1.Sections{}, nil
		}
		return nil, fmt.Errorf("failed to get s3://%s/%s: %w", s.bucket, s.key, err)
	}
	defer out.Body.Close()

	raw, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadSnapshot, snap.Version)
	}

	return snap.Sections, nil
}

// Save uploads the full snapshot.
func (s *S3Store) Save(ctx context.Context, ss model1.Sections) (err error) {
	ctx, span := startSpan(ctx, "s3", "save", attribute.String("gridbind.key", s.key))
	defer func() { endSpan(span, err) }()

	raw, err := json.Marshal(snapshot{Version: snapshotVersion, Sections: ss})
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(raw),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to put s3://%s/%s: %w", s.bucket, s.key, err)
	}

	return nil
}

// Delete rewrites the snapshot without the given rows.
func (s *S3Store) Delete(ctx context.Context, ids ...string) error {
	ss, err := s.Load(ctx)
	if err != nil {
		return err
	}

	return s.Save(ctx, dropRows(ss, ids...))
}

// Close is a no-op; the S3 client holds no dedicated resources.
func (*S3Store) Close() error {
	return nil
}

func isNotFound(err error) bool {
	var ae smithy.APIError
	if !errors.As(err, &ae) {
		return false
	}
	switch ae.ErrorCode() {
	case "NoSuchKey", "NotFound":
		return true
	default:
		return false
	}
}
