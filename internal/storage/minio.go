package storage

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/minio/minio-go/v7"
)

// MinioBackend stores files as objects in a single MinIO bucket, using the
// same folder prefixes as the local backend.
type MinioBackend struct {
	client *minio.Client
	bucket string
}

func NewMinioBackend(client *minio.Client, bucket string) *MinioBackend {
	return &MinioBackend{client: client, bucket: bucket}
}

func (b *MinioBackend) Save(ctx context.Context, r io.Reader, size int64, folder, originalName string) (string, error) {
	ref := newRef(folder, originalName)

	_, err := b.client.PutObject(ctx, b.bucket, ref, r, size, minio.PutObjectOptions{})
	if err != nil {
		return "", err
	}
	return ref, nil
}

func (b *MinioBackend) Promote(ctx context.Context, pendingRef string) (string, error) {
	dst := newRef(FolderDocuments, pendingRef)

	_, err := b.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: b.bucket, Object: dst},
		minio.CopySrcOptions{Bucket: b.bucket, Object: pendingRef},
	)
	if err != nil {
		if isNoSuchKey(err) {
			return "", ErrNotFound
		}
		return "", err
	}
	return dst, nil
}

func (b *MinioBackend) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	obj, err := b.client.GetObject(ctx, b.bucket, ref, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}

	// GetObject is lazy; Stat surfaces a missing object before the caller
	// starts streaming.
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		if isNoSuchKey(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return obj, nil
}

func (b *MinioBackend) DeleteIfExists(ctx context.Context, ref string) {
	if ref == "" {
		return
	}

	err := b.client.RemoveObject(ctx, b.bucket, ref, minio.RemoveObjectOptions{})
	if err != nil && !isNoSuchKey(err) {
		log.Printf("storage: failed to delete %s: %v", ref, err)
	}
}

func isNoSuchKey(err error) bool {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		return resp.Code == "NoSuchKey"
	}
	return false
}
