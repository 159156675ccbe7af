// Package storage persists document files. References are relative paths of
// the form "folder/name.ext"; the backing store is either a local directory
// or a MinIO bucket, selected at startup.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

const (
	// FolderDocuments holds live document files.
	FolderDocuments = "documents"
	// FolderPending holds staged files waiting for a replace request to be
	// approved.
	FolderPending = "pending"
)

var (
	ErrInvalidPath = errors.New("invalid storage path")
	ErrNotFound    = errors.New("stored file not found")
)

type Backend interface {
	// Save stores the content of r under folder with a generated
	// collision-free name keeping the original extension and returns the
	// reference.
	Save(ctx context.Context, r io.Reader, size int64, folder, originalName string) (string, error)

	// Promote copies a staged file into the documents folder under a new
	// reference. The staged file is left in place; deleting it is the
	// caller's responsibility.
	Promote(ctx context.Context, pendingRef string) (string, error)

	// Open returns the content of ref for reading. ErrNotFound when the
	// file is missing.
	Open(ctx context.Context, ref string) (io.ReadCloser, error)

	// DeleteIfExists removes ref best-effort. Missing files and invalid
	// references are ignored; other failures are logged, never returned.
	DeleteIfExists(ctx context.Context, ref string)
}

// newRef builds a reference under folder from a random hex name plus the
// extension of originalName.
func newRef(folder, originalName string) string {
	ext := path.Ext(originalName)
	name := strings.ReplaceAll(uuid.New().String(), "-", "")
	return path.Join(folder, name+ext)
}
