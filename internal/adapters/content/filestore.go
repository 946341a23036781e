// Package content contains the content-addressed file store for uploaded
// document payloads. The registry keeps only an opaque reference; bytes
// live on disk under ~/.tradeflow/content, keyed by their SHA-256 digest,
// so identical uploads share storage and references never collide.
package content

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/tradeflow/internal/ports/secondary"
)

// FileStore implements secondary.ContentStore on the local filesystem.
type FileStore struct {
	root string
}

// NewFileStore creates a store rooted at the given directory, creating it
// if needed.
func NewFileStore(root string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create content directory: %w", err)
	}
	return &FileStore{root: root}, nil
}

// DefaultRoot returns the standard content directory under the user home.
func DefaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".tradeflow", "content"), nil
}

// resourceMeta is the sidecar persisted next to each blob.
type resourceMeta struct {
	Filename string `json:"filename"`
	MimeType string `json:"mime_type"`
}

// Put stores the content and returns its digest reference. Writing is
// atomic: the blob lands under a temp name and is renamed into place, so a
// crash never leaves a partial object behind a valid reference.
func (s *FileStore) Put(ctx context.Context, content []byte, spec secondary.ResourceSpec) (string, error) {
	if len(content) == 0 {
		return "", fmt.Errorf("content must not be empty")
	}

	sum := sha256.Sum256(content)
	ref := hex.EncodeToString(sum[:])
	blobPath := filepath.Join(s.root, ref)

	tmp, err := os.CreateTemp(s.root, "put-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write content: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), blobPath); err != nil {
		return "", fmt.Errorf("failed to commit content: %w", err)
	}

	meta, err := json.Marshal(resourceMeta{Filename: spec.Filename, MimeType: spec.MimeType})
	if err != nil {
		return "", fmt.Errorf("failed to encode metadata: %w", err)
	}
	if err := os.WriteFile(blobPath+".meta", meta, 0644); err != nil {
		return "", fmt.Errorf("failed to write metadata: %w", err)
	}

	return ref, nil
}

// Get retrieves the content and its resource spec by reference.
func (s *FileStore) Get(ctx context.Context, ref string) ([]byte, *secondary.ResourceSpec, error) {
	if ref == "" || ref != filepath.Base(ref) {
		return nil, nil, fmt.Errorf("invalid content reference %q", ref)
	}

	blobPath := filepath.Join(s.root, ref)
	content, err := os.ReadFile(blobPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read content %s: %w", ref, err)
	}

	spec := &secondary.ResourceSpec{}
	if metaBytes, err := os.ReadFile(blobPath + ".meta"); err == nil {
		var meta resourceMeta
		if err := json.Unmarshal(metaBytes, &meta); err != nil {
			return nil, nil, fmt.Errorf("failed to decode metadata for %s: %w", ref, err)
		}
		spec.Filename = meta.Filename
		spec.MimeType = meta.MimeType
	}

	return content, spec, nil
}

// Ensure FileStore implements the interface
var _ secondary.ContentStore = (*FileStore)(nil)
