package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
	"github.com/johnquangdev/meeting-capture/internal/domain/gateways"
	"github.com/johnquangdev/meeting-capture/pkg/config"
)

const notesContentType = "text/markdown; charset=utf-8"

// MinIONotesStore writes notes pages as markdown objects
type MinIONotesStore struct {
	client        *minio.Client
	bucket        string
	presignExpiry time.Duration
}

var _ gateways.NotesStore = (*MinIONotesStore)(nil)

// NewMinIONotesStore creates a new MinIO client and makes sure the bucket exists
func NewMinIONotesStore(ctx context.Context, cfg *config.StorageConfig) (*MinIONotesStore, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	store := &MinIONotesStore{
		client:        minioClient,
		bucket:        cfg.BucketName,
		presignExpiry: cfg.PresignExpiry,
	}

	if err := store.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return store, nil
}

// ensureBucket creates the bucket if it does not exist
func (m *MinIONotesStore) ensureBucket(ctx context.Context) error {
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

// ObjectName returns where the page for key is stored
func ObjectName(page gateways.NotesPage, key string) string {
	return fmt.Sprintf("meetings/%s/notes-%s.md", page.MeetingID, key)
}

// PutPage uploads the page. Object names derive from the artifact key, so a retry overwrites
// the same object instead of creating a second page.
func (m *MinIONotesStore) PutPage(ctx context.Context, key string, page gateways.NotesPage) (*entities.PageRef, error) {
	objectName := ObjectName(page, key)
	body := []byte(page.Markdown)

	_, err := m.client.PutObject(ctx, m.bucket, objectName, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: notesContentType,
		UserMetadata: map[string]string{
			"meeting-id":   page.MeetingID.String(),
			"artifact-key": key,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload notes page: %w", err)
	}

	url, err := m.client.PresignedGetObject(ctx, m.bucket, objectName, m.presignExpiry, nil)
	if err != nil {
		return &entities.PageRef{Key: objectName}, nil
	}

	return &entities.PageRef{Key: objectName, URL: url.String()}, nil
}
