// Package jsonfile implements the canonical Store backend: the whole
// inventory lives in one pretty-printed JSON document on disk, and
// every mutation is a full read-modify-write of that document.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

const (
	lockTimeout   = 3 * time.Second
	lockRetryWait = 100 * time.Millisecond
)

// Store persists the inventory document as a single JSON file.
//
// Writes are serialized two ways: an in-process mutex funnels all
// mutations through one goroutine at a time, and a flock sidecar file
// guards against other processes touching the same document. Writes go
// through a temp file and rename so a crash never leaves a partial
// document behind.
type Store struct {
	path     string
	fileLock *flock.Flock
	mu       sync.Mutex
}

// New creates a Store for the given document path. The file itself is
// not created until the first write.
func New(path string) *Store {
	return &Store{
		path:     path,
		fileLock: flock.New(path + ".lock"),
	}
}

// Load returns the current document. Returns types.ErrDocumentMissing
// if the file does not exist yet.
func (s *Store) Load() (types.Inventory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := s.acquireFileLock()
	if err != nil {
		return types.Inventory{}, err
	}
	defer unlock()

	return s.read()
}

// Mutate runs a read-modify-write cycle under the store locks. A
// missing document starts as an empty inventory. If fn returns an
// error, nothing is written and the error is returned unchanged; the
// file on disk stays byte-for-byte as it was.
func (s *Store) Mutate(fn func(*types.Inventory) error) (types.Inventory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := s.acquireFileLock()
	if err != nil {
		return types.Inventory{}, err
	}
	defer unlock()

	inv, err := s.read()
	if err == types.ErrDocumentMissing {
		inv = types.NewInventory()
	} else if err != nil {
		return types.Inventory{}, err
	}

	if err := fn(&inv); err != nil {
		return types.Inventory{}, err
	}

	inv.Touch()
	if err := s.write(inv); err != nil {
		return types.Inventory{}, err
	}
	return inv, nil
}

// Replace overwrites the document wholesale.
func (s *Store) Replace(inv types.Inventory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := s.acquireFileLock()
	if err != nil {
		return err
	}
	defer unlock()

	return s.write(inv)
}

// Close removes the lock sidecar file.
func (s *Store) Close() error {
	return os.Remove(s.path + ".lock")
}

// acquireFileLock takes the cross-process lock, polling until the
// timeout. The returned func releases it.
func (s *Store) acquireFileLock() (func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	locked, err := s.fileLock.TryLockContext(ctx, lockRetryWait)
	if err != nil {
		return nil, fmt.Errorf("acquiring file lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("file lock on %s is held elsewhere", s.path)
	}
	return func() { _ = s.fileLock.Unlock() }, nil
}

// read loads and decodes the document. Caller holds the locks.
func (s *Store) read() (types.Inventory, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return types.Inventory{}, types.ErrDocumentMissing
	}
	if err != nil {
		return types.Inventory{}, fmt.Errorf("reading %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return types.Inventory{}, types.ErrDocumentMissing
	}

	var inv types.Inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return types.Inventory{}, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	if inv.Items == nil {
		inv.Items = []types.Item{}
	}
	return inv, nil
}

// write persists the document atomically with the temp-file, fsync,
// rename pattern. Caller holds the locks.
func (s *Store) write(inv types.Inventory) error {
	data, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling inventory: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".inventory-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing document: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
