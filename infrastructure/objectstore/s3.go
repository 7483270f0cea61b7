// Package objectstore adapts S3 presigned URLs to the ObjectStore port.
package objectstore

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	uploadExpiry   = 5 * time.Minute
	downloadExpiry = 15 * time.Minute
)

// S3ObjectStore issues time-limited upload and download URLs against one
// bucket. Photo bytes go straight between the client and S3.
type S3ObjectStore struct {
	presignClient *s3.PresignClient
	bucket        string
}

// NewS3ObjectStore creates an object store over the given S3 client.
func NewS3ObjectStore(client *s3.Client, bucket string) *S3ObjectStore {
	return &S3ObjectStore{
		presignClient: s3.NewPresignClient(client),
		bucket:        bucket,
	}
}

// PresignUpload returns a time-limited PUT URL for the given key.
func (s *S3ObjectStore) PresignUpload(ctx context.Context, key, contentType string) (string, error) {
	request, err := s.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = uploadExpiry
	})
	if err != nil {
		return "", fmt.Errorf("failed to presign upload for %s: %w", key, err)
	}
	return request.URL, nil
}

// PresignDownload returns a time-limited GET URL for the given key.
func (s *S3ObjectStore) PresignDownload(ctx context.Context, key string) (string, error) {
	request, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = downloadExpiry
	})
	if err != nil {
		return "", fmt.Errorf("failed to presign download for %s: %w", key, err)
	}
	return request.URL, nil
}
