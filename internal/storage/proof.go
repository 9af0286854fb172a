// Package storage keeps proof-of-claim images on the local filesystem.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
	"github.com/osse101/LuckyWheel_Go/internal/logger"
)

// ErrProofNotFound is returned by Open for an unknown ref
var ErrProofNotFound = errors.New(ErrMsgProofNotFound)

// ProofStore saves and serves proof images. A ref returned by Save is opaque
// to callers and is what gets attached to the spin.
type ProofStore interface {
	Save(ctx context.Context, spinID uuid.UUID, r io.Reader) (string, error)
	Open(ctx context.Context, ref string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, ref string) error
}

// FileStore implements ProofStore under a root directory.
type FileStore struct {
	root     string
	maxBytes int64
}

// NewFileStore creates the root directory if needed.
func NewFileStore(root string, maxBytes int64) (*FileStore, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if err := os.MkdirAll(root, DirPermissions); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCreateRoot, err)
	}
	return &FileStore{root: root, maxBytes: maxBytes}, nil
}

// Save sniffs the content, rejects anything that is not an allowed image or
// exceeds the size limit, and writes the file atomically.
func (s *FileStore) Save(ctx context.Context, spinID uuid.UUID, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUploadFailure, err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgEmptyProof)
	}
	if int64(len(data)) > s.maxBytes {
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgProofTooLarge)
	}

	mtype := mimetype.Detect(data)
	if !allowed(mtype) {
		return "", fmt.Errorf("%w: %s %s", domain.ErrInvalidInput, ErrMsgUnsupportedType, mtype.String())
	}

	// each upload gets its own name so a losing concurrent submission can
	// clean up without touching the winner's file
	ref := spinID.String() + "-" + uuid.NewString()[:8] + mtype.Extension()
	path := filepath.Join(s.root, ref)

	tmp, err := os.CreateTemp(s.root, TempFilePattern)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUploadFailure, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		tmp.Close()
		return "", fmt.Errorf("%w: %v", domain.ErrUploadFailure, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUploadFailure, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUploadFailure, err)
	}

	logger.FromContext(ctx).Debug(LogMsgProofSaved, "ref", ref, "mime", mtype.String(), "bytes", len(data))
	return ref, nil
}

// Open returns the stored file and its content type.
func (s *FileStore) Open(_ context.Context, ref string) (io.ReadCloser, string, error) {
	path, err := s.resolve(ref)
	if err != nil {
		return nil, "", err
	}
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", ErrProofNotFound
		}
		return nil, "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	return f, mtype.String(), nil
}

// Delete removes a stored proof. Used to clean up when attaching fails.
func (s *FileStore) Delete(_ context.Context, ref string) error {
	path, err := s.resolve(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// resolve keeps refs inside the root.
func (s *FileStore) resolve(ref string) (string, error) {
	if ref == "" || strings.ContainsAny(ref, `/\`) || ref != filepath.Base(ref) || strings.HasPrefix(ref, ".") {
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgBadRef)
	}
	return filepath.Join(s.root, ref), nil
}

func allowed(m *mimetype.MIME) bool {
	for _, t := range AllowedTypes {
		if m.Is(t) {
			return true
		}
	}
	return false
}
