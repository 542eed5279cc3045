package blobstore

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/nikonik/mediavault/internal/server/config"
)

// presignExpiry bounds how long a download URL stays usable.
const presignExpiry = 15 * time.Minute

type S3Store struct {
	client       *s3.Client
	presign      *s3.PresignClient
	bucket       string
	baseEndpoint string
}

// NewS3Store builds a client for the configured S3-compatible backend
// (static credentials plus a base endpoint, so MinIO works out of the box).
func NewS3Store(ctx context.Context, c *sc.Config) (*S3Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(c.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.S3RootUser,
			c.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(c.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return &S3Store{
		client:       client,
		presign:      s3.NewPresignClient(client),
		bucket:       c.S3Bucket,
		baseEndpoint: c.S3BaseEndpoint,
	}, nil
}

func (s *S3Store) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        body,
		ContentType: &contentType,
	})
	if err != nil {
		return "", err
	}

	return s.objectURL(key), nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	return err
}

func (s *S3Store) PresignGet(ctx context.Context, key string) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

func (s *S3Store) objectURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.baseEndpoint, "/"), s.bucket, key)
}
