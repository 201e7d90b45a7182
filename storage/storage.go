package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/devcompass/compass-cli/codeblock"
	"github.com/devcompass/compass-cli/config"
)

type Kind string

const (
	KindFix   Kind = "fix"
	KindChat  Kind = "chat"
	KindLearn Kind = "learn"
)

// Entry is one model exchange kept in the local history.
type Entry struct {
	ID        string                        `json:"id"`
	Kind      Kind                          `json:"kind"`
	Model     string                        `json:"model,omitempty"`
	Prompt    string                        `json:"prompt"`
	Response  string                        `json:"response"`
	Parsed    *codeblock.ParsedCodeResponse `json:"parsed,omitempty"`
	CreatedAt time.Time                     `json:"created_at"`
}

var ErrNotFound = errors.New("not found")

// Store keeps entries in a single JSON file.
type Store struct {
	mu   sync.Mutex
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Default returns the store configured in cfg.
func Default(cfg *config.Config) *Store {
	path := config.DefaultHistoryFile
	if cfg != nil && cfg.HistoryFile != "" {
		path = cfg.HistoryFile
	}
	return New(path)
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Write(store map[string]*Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(store)
}

func (s *Store) Read() (map[string]*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Add stores e, replacing any entry with the same ID.
func (s *Store) Add(e *Entry) error {
	if e == nil || e.ID == "" {
		return errors.New("entry requires an id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.read()
	if err != nil {
		return err
	}
	store[e.ID] = e
	return s.write(store)
}

func (s *Store) ByID(id string) (*Entry, error) {
	store, err := s.Read()
	if err != nil {
		return nil, err
	}
	e, ok := store[id]
	if !ok {
		return nil, fmt.Errorf("entry %s: %w", id, ErrNotFound)
	}
	return e, nil
}

// Entries returns every entry, newest first.
func (s *Store) Entries() ([]*Entry, error) {
	store, err := s.Read()
	if err != nil {
		return nil, err
	}

	entries := make([]*Entry, 0, len(store))
	for _, e := range store {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

func (s *Store) write(store map[string]*Entry) error {
	data, err := json.Marshal(store)
	if err != nil {
		return err
	}

	f, err := s.open()
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Truncate(0); err != nil {
		return err
	}
	if _, err := f.WriteAt(data, 0); err != nil {
		return err
	}
	return nil
}

func (s *Store) read() (map[string]*Entry, error) {
	f, err := s.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	store := make(map[string]*Entry)
	if len(data) == 0 {
		return store, nil
	}
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("corrupt history file %s: %w", s.path, err)
	}
	return store, nil
}

func (s *Store) open() (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(s.path, os.O_RDWR|os.O_CREATE, 0600)
}
