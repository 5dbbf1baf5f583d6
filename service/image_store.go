package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"mime"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/reco-ai/knowledge-be/config"
)

// ImageStore resolves extracted image bytes into a durable reference.
type ImageStore interface {
	// Store uploads the image unless an object with the same name already
	// exists, and returns its public URL. A pre-existing object is reused,
	// not re-uploaded.
	Store(ctx context.Context, filename string, data []byte) (string, error)
}

// MinioImageStore stores images in a MinIO/S3-compatible bucket under the
// images/ prefix.
type MinioImageStore struct {
	client   *minio.Client
	endpoint string
	bucket   string
	useSSL   bool
}

func NewMinioImageStore(cfg config.MinioConfig) (*MinioImageStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return &MinioImageStore{
		client:   client,
		endpoint: cfg.Endpoint,
		bucket:   cfg.Bucket,
		useSSL:   cfg.UseSSL,
	}, nil
}

func (s *MinioImageStore) Store(ctx context.Context, filename string, data []byte) (string, error) {
	objectName := "images/" + filename

	_, err := s.client.StatObject(ctx, s.bucket, objectName, minio.StatObjectOptions{})
	if err == nil {
		log.Printf("Image already exists in store: %s/%s", s.bucket, objectName)
		return s.publicURL(objectName), nil
	}
	errResp := minio.ToErrorResponse(err)
	if errResp.Code != "NoSuchKey" && errResp.Code != "NotFound" {
		return "", fmt.Errorf("failed to check image in store: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err = s.client.PutObject(ctx, s.bucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload image to store: %w", err)
	}
	log.Printf("Uploaded image to store: %s/%s", s.bucket, objectName)
	return s.publicURL(objectName), nil
}

func (s *MinioImageStore) publicURL(objectName string) string {
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, objectName)
}

// MockImageStore is the degraded/offline store: it performs no network I/O
// and synthesizes a deterministic reference from the filename alone.
type MockImageStore struct{}

func NewMockImageStore() *MockImageStore {
	return &MockImageStore{}
}

func (s *MockImageStore) Store(ctx context.Context, filename string, data []byte) (string, error) {
	log.Printf("Mock uploading %s", filename)
	return "https://fake-bucket.s3.amazonaws.com/images/" + filename, nil
}
