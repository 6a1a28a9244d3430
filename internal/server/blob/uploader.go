// Package blob talks to the S3-compatible object store: object upload and
// deletion, presigned retrieval URLs, and storage-key derivation.
package blob

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/eperalta/filedrawer/internal/common"
	sc "github.com/eperalta/filedrawer/internal/server/config"
)

const presignExpiry = 15 * time.Minute

type Uploader struct {
	config *sc.Config
}

func NewUploader(config *sc.Config) *Uploader {
	return &Uploader{config: config}
}

func (u *Uploader) client(ctx context.Context) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(u.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			u.config.S3RootUser,
			u.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(u.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return client, nil
}

// Upload stores data under key with the given content type and returns the
// externally resolvable object URL. Failures map to ErrUploadRejected; the
// underlying cause is preserved for logging.
func (u *Uploader) Upload(ctx context.Context, data []byte, mimeType, key string) (string, error) {

	client, err := u.client(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrUploadRejected, err)
	}

	bucket := u.config.S3Bucket

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: &mimeType,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrUploadRejected, err)
	}

	return u.objectURL(key), nil
}

// PresignedGetURL returns a temporary retrieval URL for key.
func (u *Uploader) PresignedGetURL(ctx context.Context, key string) (string, error) {

	client, err := u.client(ctx)
	if err != nil {
		return "", err
	}

	bucket := u.config.S3Bucket

	req, err := s3.NewPresignClient(client).PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

// Delete removes objects best-effort and returns the first error seen.
// Callers run it after the owning DB transaction commits.
func (u *Uploader) Delete(ctx context.Context, keys ...string) error {

	client, err := u.client(ctx)
	if err != nil {
		return err
	}

	bucket := u.config.S3Bucket

	var firstErr error
	for _, key := range keys {
		k := key
		if _, err := client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: &bucket,
			Key:    &k,
		}); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("delete object %q: %w", key, err)
		}
	}

	return firstErr
}

func (u *Uploader) objectURL(key string) string {
	endpoint := strings.TrimSuffix(u.config.S3BaseEndpoint, "/")
	return endpoint + "/" + u.config.S3Bucket + "/" + url.PathEscape(key)
}
