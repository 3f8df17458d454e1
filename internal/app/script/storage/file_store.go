package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"pkt.systems/pslog"

	"github.com/murkotick/production-script-editor/internal/models/m_script"
	"github.com/murkotick/production-script-editor/internal/pkg/clock"
)

// ErrUnsupportedVersion indicates the store file was written by a newer format.
var ErrUnsupportedVersion = errors.New("unsupported store file version")

// FileStore is a local-storage analogue: every entry lives in one JSON file
// that is rewritten atomically on each change.
type FileStore struct {
	mu   sync.Mutex
	path string
	clk  clock.Clock
	log  pslog.Logger
}

// NewFileStore creates a FileStore at path, creating its directory.
func NewFileStore(path string, clk clock.Clock, logger pslog.Logger) (*FileStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("store path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	if clk == nil {
		clk = clock.RealClock{}
	}
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &FileStore{path: path, clk: clk, log: logger.With("store_path", path)}, nil
}

// Get returns the value stored under key.
func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := doc.Entries[key]
	return v, ok, nil
}

// Set stores value under key.
func (s *FileStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return err
	}
	doc.Entries[key] = value
	return s.save(doc)
}

// Delete removes key.
func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := doc.Entries[key]; !ok {
		return nil
	}
	delete(doc.Entries, key)
	return s.save(doc)
}

func (s *FileStore) load() (*m_script.StoreFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log.Debug("store load miss")
			return m_script.NewStoreFile(), nil
		}
		s.log.Warn("store load failed", "err", err)
		return nil, err
	}
	doc := m_script.NewStoreFile()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	if doc.Version > m_script.StoreFileVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}
	if doc.Entries == nil {
		doc.Entries = make(map[string]string)
	}
	return doc, nil
}

func (s *FileStore) save(doc *m_script.StoreFile) error {
	doc.Version = m_script.StoreFileVersion
	doc.UpdatedAt = s.clk.Now()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	s.log.Debug("store saved", "entries", len(doc.Entries))
	return nil
}
