// Package fs provides file-based storage for block library documents and
// access to the local project's block sources.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fwojciec/blocklib"
)

// Ensure FileStore implements blocklib.LibraryStore at compile time.
var _ blocklib.LibraryStore = (*FileStore)(nil)

// FileStore implements blocklib.LibraryStore with atomic update semantics.
// Documents are saved to a temporary directory, then moved atomically on
// Commit, replacing the previous library.
type FileStore struct {
	baseDir string
	name    string

	reset    sync.Once
	resetErr error
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// prepare clears documents left in the temp directory by an earlier,
// interrupted run. It runs once per store.
func (s *FileStore) prepare() error {
	s.reset.Do(func() {
		if err := os.RemoveAll(s.tempDir()); err != nil {
			s.resetErr = err
			return
		}
		s.resetErr = os.MkdirAll(s.tempDir(), 0755)
	})
	return s.resetErr
}

// Save writes a document under its file name. The name must be a single
// path element. Safe for concurrent use with distinct names.
func (s *FileStore) Save(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return blocklib.Errorf(blocklib.EINVALID, "invalid document name %q: path traversal", name)
	}

	if err := s.prepare(); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.tempDir(), name), data, 0644)
}

// Commit replaces the final directory with the saved documents. A store
// with nothing saved commits an empty directory.
func (s *FileStore) Commit() error {
	if err := s.prepare(); err != nil {
		return err
	}

	// Remove existing final directory if present
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}

	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards the saved documents and leaves the final directory untouched.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
