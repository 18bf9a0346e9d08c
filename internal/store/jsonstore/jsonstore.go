package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// JSON-backed key/value document. Single file, human-readable, portable.
// Every Put rewrites the whole document through a temp file + rename so a
// crash never leaves a half-written store behind.

const DefaultFileName = "wegive.json"

// Store keeps named entries as raw JSON values inside one file.
type Store struct {
	path string
	mu   sync.Mutex
}

// New returns a store backed by path. The file is created on first Put.
func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, false, err
	}
	v, ok := doc[key]
	if !ok || string(v) == "null" {
		return nil, false, nil
	}
	return v, true, nil
}

func (s *Store) Put(_ context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("put %q: value is not valid json", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	doc[key] = json.RawMessage(value)
	return s.write(doc)
}

func (s *Store) Close() error { return nil }

func (s *Store) read() (map[string]json.RawMessage, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	doc := map[string]json.RawMessage{}
	if len(b) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return doc, nil
}

func (s *Store) write(doc map[string]json.RawMessage) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
