package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/johnquangdev/meeting-facilitator/pkg/config"
)

// MinIOClient wraps MinIO operations used for minutes exports and audio archives
type MinIOClient struct {
	client    *minio.Client
	bucket    string
	publicURL string // e.g. https://files.example.com when MinIO sits behind a proxy
	expiry    time.Duration
}

// NewMinIOClient creates a new MinIO client and makes sure the bucket exists
func NewMinIOClient(ctx context.Context, cfg *config.StorageConfig) (*MinIOClient, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	client := &MinIOClient{
		client:    minioClient,
		bucket:    cfg.BucketName,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		expiry:    cfg.URLExpiry,
	}

	if err := client.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return client, nil
}

func (m *MinIOClient) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// UploadFile uploads a file to MinIO
func (m *MinIOClient) UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}
	return nil
}

// UploadText uploads text content with the given content type
func (m *MinIOClient) UploadText(ctx context.Context, objectName, content, contentType string) error {
	if contentType == "" {
		contentType = "text/plain; charset=utf-8"
	}
	return m.UploadFile(ctx, objectName, bytes.NewReader([]byte(content)), int64(len(content)), contentType)
}

// GetFileURL returns a presigned download URL, rewritten onto the public URL if one is configured
func (m *MinIOClient) GetFileURL(ctx context.Context, objectName string) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.bucket, objectName, m.expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return rewriteHost(u, m.publicURL)
}

// ListFiles lists object keys under prefix
func (m *MinIOClient) ListFiles(ctx context.Context, prefix string) ([]string, error) {
	var files []string

	objectCh := m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})
	for object := range objectCh {
		if object.Err != nil {
			return nil, fmt.Errorf("error listing objects: %w", object.Err)
		}
		files = append(files, object.Key)
	}

	return files, nil
}

// rewriteHost moves the path and query of u onto publicURL.
// The signature survives because it is computed over the path, not the host,
// as long as the proxy forwards the original Host header.
func rewriteHost(u *url.URL, publicURL string) (string, error) {
	if publicURL == "" {
		return u.String(), nil
	}
	base, err := url.Parse(publicURL)
	if err != nil {
		return "", fmt.Errorf("invalid public URL %q: %w", publicURL, err)
	}
	out := *u
	out.Scheme = base.Scheme
	out.Host = base.Host
	out.Path = path.Join("/", base.Path, u.Path)
	out.RawPath = ""
	return out.String(), nil
}

// MinutesObjectName is the key of a minutes export taken at the given time
func MinutesObjectName(meetingID string, at time.Time) string {
	return fmt.Sprintf("minutes/%s/%s.md", meetingID, at.UTC().Format("20060102T150405Z"))
}

// AudioObjectName is the key of an uploaded recording
func AudioObjectName(meetingID, filename string, at time.Time) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "audio"
	}
	return fmt.Sprintf("audio/%s/%s_%s", meetingID, at.UTC().Format("20060102T150405Z"), name)
}
