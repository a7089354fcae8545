package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrInvalid is returned by Save when validation reports errors.
var ErrInvalid = errors.New("settings: invalid config")

// Store is a file-backed Config with an in-process cache. The file is read
// on first Load and after every Invalidate.
type Store struct {
	path string
	now  func() time.Time

	mu     sync.RWMutex
	cached *Config
}

// NewStore returns a Store backed by the JSON file at path. The file need
// not exist.
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Load returns the current config. A missing or unreadable file yields the
// defaults.
func (s *Store) Load() Config {
	s.mu.RLock()
	if s.cached != nil {
		cfg := s.cached.Clone()
		s.mu.RUnlock()
		return cfg
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached == nil {
		cfg := s.readFile()
		s.cached = &cfg
	}
	return s.cached.Clone()
}

// Invalidate drops the cached config so the next Load rereads the file.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

// Reload invalidates the cache and loads the file again.
func (s *Store) Reload() Config {
	s.Invalidate()
	return s.Load()
}

// Save validates cfg and, when there are no errors, stamps and persists it.
// The cache is left untouched on rejection.
func (s *Store) Save(cfg Config) (ValidationResult, error) {
	res := Validate(cfg)
	if !res.Valid {
		return res, ErrInvalid
	}

	cfg = cfg.Clone()
	now := s.now().UTC()
	cfg.UpdatedAt = &now

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return res, fmt.Errorf("settings: marshal: %w", err)
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return res, err
	}
	s.Invalidate()
	return res, nil
}

// Watch invalidates the cache whenever the backing file changes on disk.
// It blocks until ctx is cancelled.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("settings: watch: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("settings: watch %s: %w", dir, err)
	}
	target := filepath.Clean(s.path)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				s.Invalidate()
				log.Printf("settings: %s changed, cache invalidated", s.path)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("settings: watcher: %v", err)
		case <-ctx.Done():
			return nil
		}
	}
}

// readFile parses the backing file, filling absent sections from Defaults.
func (s *Store) readFile() Config {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("settings: read %s: %v; using defaults", s.path, err)
		}
		return Defaults()
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Printf("settings: parse %s: %v; using defaults", s.path, err)
		return Defaults()
	}
	def := Defaults()
	if cfg.CategoryWeights == nil {
		cfg.CategoryWeights = def.CategoryWeights
	}
	if cfg.ProgressThresholds == nil {
		cfg.ProgressThresholds = def.ProgressThresholds
	}
	if cfg.MaxProgress == 0 && cfg.BaselineProgress == 0 {
		cfg.MaxProgress = def.MaxProgress
	}
	return cfg
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".progress-config-*.json")
	if err != nil {
		return fmt.Errorf("settings: create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("settings: write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("settings: close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("settings: replace %s: %w", path, err)
	}
	return nil
}
