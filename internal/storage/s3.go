package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Options configures the bucket-backed store. BaseEndpoint is set when
// talking to MinIO or another S3-compatible service.
type S3Options struct {
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	BaseEndpoint  string
	PublicBaseURL string
}

// S3Store keeps recipe images in an S3 bucket.
type S3Store struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

func NewS3Store(ctx context.Context, opts S3Options) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.BaseEndpoint)
		}
		o.UsePathStyle = opts.BaseEndpoint != ""
	})

	return &S3Store{
		client:        client,
		bucket:        opts.Bucket,
		publicBaseURL: strings.TrimRight(opts.PublicBaseURL, "/"),
	}, nil
}

func (store *S3Store) Store(ext string, content io.Reader) (string, error) {
	storagePath := path.Join(recipeImagePrefix, uuid.NewString()+ext)

	_, err := store.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(storagePath),
		Body:   content,
	})
	if err != nil {
		return "", fmt.Errorf("put image object: %w", err)
	}
	return storagePath, nil
}

func (store *S3Store) Delete(storagePath string) error {
	if storagePath == "" {
		return nil
	}
	_, err := store.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(storagePath),
	})
	if err != nil {
		return fmt.Errorf("delete image object: %w", err)
	}
	return nil
}

func (store *S3Store) URL(storagePath string) string {
	if store.publicBaseURL != "" {
		return store.publicBaseURL + "/" + storagePath
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", store.bucket, storagePath)
}
