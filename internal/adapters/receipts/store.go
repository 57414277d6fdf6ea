// Package receipts implements the install receipt store.
package receipts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"go.trai.ch/deps/internal/core/domain"
	"go.trai.ch/deps/internal/core/ports"
	"go.trai.ch/zerr"
)

// PathEnv overrides the location of the receipt file.
const PathEnv = "DEPS_STATE_FILE"

var _ ports.ReceiptStore = (*Store)(nil)

// Store implements ports.ReceiptStore using a flat JSON file.
type Store struct {
	path   string
	logger ports.Logger
	mu     sync.RWMutex
	cache  map[string]domain.Receipt
}

// DefaultPath returns the receipt file location: $DEPS_STATE_FILE, or
// receipts.json under the user cache directory.
func DefaultPath() (string, error) {
	if p := os.Getenv(PathEnv); p != "" {
		return p, nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", zerr.Wrap(err, "failed to locate user cache directory")
	}
	return filepath.Join(dir, "deps", "receipts.json"), nil
}

// NewStore creates a new Store backed by the file at the given path.
// A file that cannot be decoded is moved aside to CorruptPath and the store
// starts empty; an unreadable file leaves the store empty. Both are logged as
// warnings.
func NewStore(path string, logger ports.Logger) *Store {
	s := &Store{
		path:   filepath.Clean(path),
		logger: logger,
		cache:  make(map[string]domain.Receipt),
	}
	s.load()
	return s
}

// CorruptPath is where an undecodable receipt file at path is moved.
func CorruptPath(path string) string {
	return filepath.Clean(path) + ".corrupt"
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn(fmt.Sprintf("ignoring unreadable receipt store %s: %v", s.path, err))
		}
		return
	}

	if len(data) == 0 {
		return
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		s.cache = make(map[string]domain.Receipt)
		aside := CorruptPath(s.path)
		if renameErr := os.Rename(s.path, aside); renameErr != nil {
			s.logger.Warn(fmt.Sprintf("ignoring corrupt receipt store %s: %v", s.path, err))
			return
		}
		s.logger.Warn(fmt.Sprintf("corrupt receipt store moved to %s: %v", aside, err))
	}
}

// save writes the cache to a temporary file and renames it into place.
// The caller must hold s.mu.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal receipt store")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory for receipt store"), "dir", dir)
	}

	tmp, err := os.CreateTemp(dir, ".receipts-*.json")
	if err != nil {
		return zerr.Wrap(err, "failed to create temporary receipt file")
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // already renamed on success

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, "failed to write receipt store")
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, "failed to write receipt store")
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to replace receipt store"), "path", s.path)
	}

	return nil
}

// Get retrieves the receipt for a package identifier.
func (s *Store) Get(pkg string) (*domain.Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.cache[pkg]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

// Put stores the receipt and persists the store.
func (s *Store) Put(receipt domain.Receipt) error {
	if receipt.Package == "" {
		return zerr.New("receipt has no package")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache[receipt.Package] = receipt
	return s.save()
}

// All returns every receipt ordered by package identifier.
func (s *Store) All() []domain.Receipt {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Receipt, 0, len(s.cache))
	for _, k := range slices.Sorted(maps.Keys(s.cache)) {
		out = append(out, s.cache[k])
	}
	return out
}
