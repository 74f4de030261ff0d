package history

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"sync"

	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/vmihailenco/msgpack/v5"
)

// MemoryStore keeps the list in memory only.
type MemoryStore struct {
	items []string
	mu    sync.RWMutex
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Get() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.items), nil
}

func (m *MemoryStore) Set(items []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = slices.Clone(items)
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = nil
	return nil
}

// fileRecord is the on-disk layout of a FileStore.
type fileRecord struct {
	Version int      `msgpack:"v"`
	Items   []string `msgpack:"items"`
}

const fileVersion = 1

// FileStore keeps the list in a msgpack-encoded file.
// A missing file reads as an empty list.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the file at path. The file is created on first Set.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Get() ([]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	var rec fileRecord
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("corrupt history file %s: %w", f.path, err)
	}
	if rec.Version != fileVersion {
		return nil, fmt.Errorf("history file %s has unsupported version %d", f.path, rec.Version)
	}
	if rec.Items == nil {
		rec.Items = []string{}
	}
	return rec.Items, nil
}

func (f *FileStore) Set(items []string) error {
	data, err := msgpack.Marshal(fileRecord{Version: fileVersion, Items: items})
	if err != nil {
		return err
	}
	return utils.WriteFileAtomic(f.path, data)
}

func (f *FileStore) Clear() error {
	err := os.Remove(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
