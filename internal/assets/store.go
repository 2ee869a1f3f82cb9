package assets

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/craftmarket/catalog-service/internal/apperrors"
)

// Store performs all filesystem access for image assets. Every path it takes
// is relative to BaseDir; nothing outside the image tree is ever touched.
type Store struct {
	BaseDir string
}

func NewStore(baseDir string) *Store {
	return &Store{BaseDir: baseDir}
}

func (s *Store) abs(rel string) string {
	return filepath.Join(s.BaseDir, filepath.FromSlash(rel))
}

// Exists reports whether a file or directory exists at rel.
func (s *Store) Exists(rel string) bool {
	_, err := os.Stat(s.abs(rel))
	return err == nil
}

// Write stores data at rel, creating parent directories as needed.
func (s *Store) Write(rel string, data []byte) error {
	p := s.abs(rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return &apperrors.FilesystemError{Op: "mkdir", Path: filepath.Dir(p), Err: err}
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return &apperrors.FilesystemError{Op: "write", Path: p, Err: err}
	}
	return nil
}

// Delete removes the file at rel.
func (s *Store) Delete(rel string) error {
	p := s.abs(rel)
	if err := os.Remove(p); err != nil {
		return &apperrors.FilesystemError{Op: "delete", Path: p, Err: err}
	}
	return nil
}

// List returns the entry names directly under rel. A missing directory is not
// an error; it returns nil so read paths can treat it as empty.
func (s *Store) List(rel string) ([]string, error) {
	entries, err := os.ReadDir(s.abs(rel))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &apperrors.FilesystemError{Op: "list", Path: s.abs(rel), Err: err}
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// IsDir reports whether rel exists and is a directory.
func (s *Store) IsDir(rel string) bool {
	info, err := os.Stat(s.abs(rel))
	return err == nil && info.IsDir()
}

// EnsureDir creates rel and any missing parents. Idempotent.
func (s *Store) EnsureDir(rel string) error {
	if err := os.MkdirAll(s.abs(rel), 0o755); err != nil {
		return &apperrors.FilesystemError{Op: "mkdir", Path: s.abs(rel), Err: err}
	}
	return nil
}

// RemoveTree deletes rel recursively. The first return reports whether the
// directory existed at all; callers treat (false, nil) as a benign no-op.
func (s *Store) RemoveTree(rel string) (bool, error) {
	p := s.abs(rel)
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, &apperrors.FilesystemError{Op: "stat", Path: p, Err: err}
	}
	if err := os.RemoveAll(p); err != nil {
		return true, &apperrors.FilesystemError{Op: "remove", Path: p, Err: err}
	}
	return true, nil
}
