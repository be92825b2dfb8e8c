// Package prefs persists the last searched username.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

const (
	fileName    = "prefs.json"
	usernameKey = "github_username"
)

// Store is a single-file key-value store scoped to one state directory.
type Store struct {
	path   string
	logger *log.Logger
}

// NewStore creates the state directory when missing.
func NewStore(dir string, logger *log.Logger) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("state directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("can't create state directory: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Store{path: filepath.Join(dir, fileName), logger: logger}, nil
}

// Load returns the persisted username. ok is false when nothing was ever
// saved, which is distinct from a saved empty string.
func (s *Store) Load() (username string, ok bool, err error) {
	values, err := s.read()
	if err != nil {
		return "", false, err
	}
	username, ok = values[usernameKey]
	s.logger.Printf("Prefs: load %s (present=%t)\n", usernameKey, ok)
	return username, ok, nil
}

// Save overwrites the persisted username.
func (s *Store) Save(username string) error {
	values, err := s.read()
	if err != nil {
		// A corrupt file is replaced rather than blocking every later save.
		s.logger.Printf("Prefs: discarding unreadable %s: %v\n", s.path, err)
		values = map[string]string{}
	}
	values[usernameKey] = username
	if err := s.write(values); err != nil {
		return fmt.Errorf("can't save %s: %w", usernameKey, err)
	}
	s.logger.Printf("Prefs: saved %s\n", usernameKey)
	return nil
}

func (s *Store) read() (map[string]string, error) {
	values := map[string]string{}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return values, nil
		}
		return nil, fmt.Errorf("can't read preferences: %w", err)
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("can't decode preferences: %w", err)
	}
	return values, nil
}

// write replaces the file atomically via a temp file in the same directory.
func (s *Store) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), "prefs-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
