package backend

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/skilllink/skilllink/internal/common"
)

// S3Storage implements StorageAPI against the project's S3-compatible
// storage endpoint ({project}/storage/v1/s3). Public URLs resolve through
// the project's public-object route, not through the S3 protocol.
type S3Storage struct {
	client     *s3.Client
	projectURL string
}

// StorageOptions carries the credentials for the storage endpoint.
type StorageOptions struct {
	Region   string
	AccessID string
	Secret   string
	Endpoint string // optional override, defaults to {projectURL}/storage/v1/s3
}

// NewS3Storage builds a storage client for the given project.
func NewS3Storage(ctx context.Context, projectURL string, opts StorageOptions) (*S3Storage, error) {
	projectURL = strings.TrimRight(projectURL, "/")

	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = projectURL + "/storage/v1/s3"
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessID,
			opts.Secret,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("loading storage config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &S3Storage{client: client, projectURL: projectURL}, nil
}

// Upload writes the blob to bucket/key. With opts.Overwrite unset the put
// is conditional on the key not existing, so a duplicate key fails instead
// of silently replacing another client's object.
func (s *S3Storage) Upload(ctx context.Context, bucket, key string, body io.Reader, opts UploadOptions) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if opts.ContentType != "" {
		input.ContentType = aws.String(opts.ContentType)
	}
	if !opts.Overwrite {
		input.IfNoneMatch = aws.String("*")
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return &common.RemoteError{Message: "upload failed: " + err.Error(), Class: common.ClassTransient}
	}
	return nil
}

// PublicURL resolves bucket/key to the publicly fetchable URL. Pure string
// work, no network round-trip.
func (s *S3Storage) PublicURL(bucket, key string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.projectURL, bucket, key)
}
