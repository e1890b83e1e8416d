package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/config"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/model"
)

// StorageProvider abstracts where uploaded files (materials, exam PDFs) end
// up. The returned URL is what gets persisted on the record.
type StorageProvider interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, objectName string) error
}

// ObjectName builds a collision-free object key under the given prefix while
// keeping the original extension.
func ObjectName(prefix, originalName string) string {
	ext := filepath.Ext(originalName)
	return fmt.Sprintf("%s/%s%s", prefix, model.GenerateUUID(), ext)
}

// ObjectNameFromURL recovers the stored object key from a persisted URL so
// the underlying file can be removed.
func ObjectNameFromURL(fileURL string) string {
	if idx := strings.Index(fileURL, "/uploads/"); idx >= 0 {
		return fileURL[idx+len("/uploads/"):]
	}
	return strings.TrimPrefix(fileURL, "/")
}

func NewStorageProvider(cfg *config.StorageConfig) (StorageProvider, error) {
	switch cfg.Type {
	case "minio":
		return NewMinioStorageProvider(cfg)
	case "local", "":
		return NewLocalStorageProvider(cfg.LocalPath), nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}

// LocalStorageProvider writes files under basePath and serves them from the
// /uploads static route.
type LocalStorageProvider struct {
	basePath string
}

func NewLocalStorageProvider(basePath string) *LocalStorageProvider {
	if basePath == "" {
		basePath = "uploads"
	}
	return &LocalStorageProvider{basePath: basePath}
}

func (p *LocalStorageProvider) Upload(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) (string, error) {
	fullPath := filepath.Join(p.basePath, objectName)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, reader); err != nil {
		os.Remove(fullPath)
		return "", err
	}

	return "/uploads/" + objectName, nil
}

func (p *LocalStorageProvider) Delete(_ context.Context, objectName string) error {
	err := os.Remove(filepath.Join(p.basePath, objectName))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// MinioStorageProvider stores objects in a MinIO (or S3-compatible) bucket.
type MinioStorageProvider struct {
	client *minio.Client
	bucket string
	useSSL bool
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}

	return &MinioStorageProvider{
		client: client,
		bucket: cfg.MinioBucket,
		useSSL: cfg.MinioUseSSL,
	}, nil
}

func (p *MinioStorageProvider) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := p.client.PutObject(ctx, p.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}

	scheme := "http"
	if p.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, p.client.EndpointURL().Host, p.bucket, objectName), nil
}

func (p *MinioStorageProvider) Delete(ctx context.Context, objectName string) error {
	return p.client.RemoveObject(ctx, p.bucket, objectName, minio.RemoveObjectOptions{})
}
