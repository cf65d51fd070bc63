// Package storage implements the image store on top of an S3-compatible
// object storage backend (MinIO in local deployments).
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/mkurent/recipebook/internal/server/config"
)

const presignValidity = 15 * time.Minute

// ImageStore stores uploaded recipe images and hands out short-lived
// download links.
type ImageStore struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucket        string
}

// NewImageStore builds an ImageStore from the S3 settings in cfg. The
// endpoint is addressed path-style so it works against MinIO out of the box.
func NewImageStore(ctx context.Context, cfg *config.Config) (*ImageStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3RootUser, cfg.S3RootPassword, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("loading S3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return &ImageStore{
		client:        client,
		presignClient: s3.NewPresignClient(client),
		bucket:        cfg.S3Bucket,
	}, nil
}

// RandomKey generates a fresh object key, partitioned by upload date.
func RandomKey() string {
	now := time.Now().UTC()
	return fmt.Sprintf("recipes/%04d/%02d/%02d/%s", now.Year(), now.Month(), now.Day(), uuid.NewString())
}

// Put uploads the image body under a new random key and returns the key.
func (s *ImageStore) Put(ctx context.Context, body io.Reader, contentType string) (string, error) {
	key := RandomKey()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading image: %w", err)
	}

	return key, nil
}

// PresignGet returns a presigned download URL for the stored object,
// valid for 15 minutes.
func (s *ImageStore) PresignGet(ctx context.Context, key string) (string, error) {
	req, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignValidity))
	if err != nil {
		return "", fmt.Errorf("presigning image url: %w", err)
	}

	return req.URL, nil
}
