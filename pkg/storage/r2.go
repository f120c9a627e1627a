package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	internalConfig "github.com/ozgurkara/event-gallery-backend/internal/config"
)

// R2Storage stores event images in a Cloudflare R2 bucket through the S3 API.
// The object key doubles as the public identifier used for deletion.
type R2Storage struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewR2Storage(cfg *internalConfig.Config) (*R2Storage, error) {
	r2Resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2.AccountID),
		}, nil
	})

	awsCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithEndpointResolverWithOptions(r2Resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.R2.AccessKeyID,
			cfg.R2.SecretAccessKey,
			"",
		)),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &R2Storage{
		client:    s3.NewFromConfig(awsCfg),
		bucket:    cfg.R2.Bucket,
		publicURL: strings.TrimRight(cfg.R2.PublicURL, "/"),
	}, nil
}

// Upload writes the blob under a fresh key and returns its permanent reference.
func (s *R2Storage) Upload(ctx context.Context, filename string, src io.Reader) (*UploadResult, error) {
	key := fmt.Sprintf("events/%s%s", uuid.New().String(), strings.ToLower(filepath.Ext(filename)))

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}

	// PutObject needs a known content length; measure seekable sources in
	// place instead of buffering them.
	if seeker, ok := src.(io.ReadSeeker); ok {
		start, err := seeker.Seek(0, io.SeekCurrent)
		if err != nil {
			return nil, fmt.Errorf("failed to get current position: %w", err)
		}
		size, err := seeker.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, fmt.Errorf("failed to seek to end: %w", err)
		}
		if _, err := seeker.Seek(start, io.SeekStart); err != nil {
			return nil, fmt.Errorf("failed to seek back to start: %w", err)
		}

		input.Body = src
		input.ContentLength = aws.Int64(size - start)
	} else {
		buf, err := io.ReadAll(src)
		if err != nil {
			return nil, fmt.Errorf("failed to read file content: %w", err)
		}
		input.Body = bytes.NewReader(buf)
		input.ContentLength = aws.Int64(int64(len(buf)))
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to upload to R2: %w", err)
	}

	return &UploadResult{
		URL:      s.publicURL + "/" + key,
		PublicID: key,
	}, nil
}

// Delete removes the blob for the given key.
func (s *R2Storage) Delete(ctx context.Context, publicID string) error {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(publicID),
	}

	_, err := s.client.DeleteObject(ctx, input)
	return err
}
