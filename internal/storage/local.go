package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// LocalBackend stores files on the local filesystem under a single root
// directory.
type LocalBackend struct {
	root string
}

func NewLocalBackend(root string) (*LocalBackend, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	for _, folder := range []string{FolderDocuments, FolderPending} {
		if err := os.MkdirAll(filepath.Join(abs, folder), 0o755); err != nil {
			return nil, fmt.Errorf("create storage folder %s: %w", folder, err)
		}
	}

	return &LocalBackend{root: abs}, nil
}

// Resolve turns a reference into an absolute path, rejecting anything that
// escapes the storage root.
func (b *LocalBackend) Resolve(ref string) (string, error) {
	abs := filepath.Clean(filepath.Join(b.root, filepath.FromSlash(ref)))
	if abs == b.root || !strings.HasPrefix(abs, b.root+string(filepath.Separator)) {
		return "", ErrInvalidPath
	}
	return abs, nil
}

func (b *LocalBackend) Save(ctx context.Context, r io.Reader, size int64, folder, originalName string) (string, error) {
	ref := newRef(folder, originalName)

	abs, err := b.Resolve(ref)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("create parent directory: %w", err)
	}

	f, err := os.Create(abs)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(abs)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(abs)
		return "", fmt.Errorf("close file: %w", err)
	}

	return ref, nil
}

func (b *LocalBackend) Promote(ctx context.Context, pendingRef string) (string, error) {
	srcAbs, err := b.Resolve(pendingRef)
	if err != nil {
		return "", err
	}

	src, err := os.Open(srcAbs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("promote %s: %w", pendingRef, ErrNotFound)
		}
		return "", fmt.Errorf("open staged file: %w", err)
	}
	defer src.Close()

	return b.Save(ctx, src, -1, FolderDocuments, pendingRef)
}

func (b *LocalBackend) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	abs, err := b.Resolve(ref)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (b *LocalBackend) DeleteIfExists(ctx context.Context, ref string) {
	if ref == "" {
		return
	}

	abs, err := b.Resolve(ref)
	if err != nil {
		log.Printf("storage: skipping delete of invalid reference %q", ref)
		return
	}

	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		log.Printf("storage: failed to delete %s: %v", ref, err)
	}
}
