package scores

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps a table in one file, e.g. ~/.arcade/blocks.scores.
type FileStore struct {
	path string
}

// pathLocks serializes writers of the same file within the process.
// SSH sessions each own a table but may share its file.
var pathLocks sync.Map // map[string]*sync.Mutex

// NewFileStore returns a store for path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file location.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) lock() func() {
	m, _ := pathLocks.LoadOrStore(s.path, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// Load reads the file.
func (s *FileStore) Load() ([]byte, error) {
	defer s.lock()()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("scores: cannot read %s: %w", s.path, err)
	}
	return data, nil
}

// Save writes data to a temporary file next to the target and renames it
// into place, so a failed write leaves the previous table intact.
func (s *FileStore) Save(data []byte) error {
	defer s.lock()()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("scores: cannot create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("scores: cannot create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("scores: cannot write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("scores: cannot close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("scores: cannot replace %s: %w", s.path, err)
	}
	return nil
}

// MemoryStore keeps a table in memory. Used by tests and by the web
// preview, which must not touch player files.
type MemoryStore struct {
	mu    sync.Mutex
	data  []byte
	saved bool
	err   error
	saves int
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns a copy of the saved bytes.
func (s *MemoryStore) Load() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.saved {
		return nil, fmt.Errorf("scores: memory store is empty: %w", os.ErrNotExist)
	}
	return append([]byte(nil), s.data...), nil
}

// Save stores a copy of data, or fails with the error set by FailWith.
func (s *MemoryStore) Save(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}
	s.data = append([]byte(nil), data...)
	s.saved = true
	s.saves++
	return nil
}

// FailWith makes every following Save return err; nil restores saving.
func (s *MemoryStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Saves returns how many writes succeeded.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
