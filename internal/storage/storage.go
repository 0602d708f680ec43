package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/nikbrunner/blink/internal/model"
)

var ErrNotFound = errors.New("blink not found")

// Storage defines the interface for persisting Blinks.
type Storage interface {
	List(ctx context.Context) ([]model.Blink, error)
	// Create persists a new Blink and returns it with the id the backend assigned.
	Create(ctx context.Context, b model.Blink) (model.Blink, error)
	Update(ctx context.Context, b model.Blink) error
	Delete(ctx context.Context, id string) error
	// ToggleCompletion flips IsCompleted and sets or clears CompletedAt.
	ToggleCompletion(ctx context.Context, id string) error
	Close() error
}

// JSONStorage implements Storage using a JSON array file.
type JSONStorage struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

// NewJSONStorage creates a new JSONStorage with the given file path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path, now: time.Now}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// load reads all Blinks from the file.
// Returns an empty list if the file doesn't exist.
func (s *JSONStorage) load() ([]model.Blink, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Blink{}, nil
		}
		return nil, err
	}

	var blinks []model.Blink
	if err := json.Unmarshal(data, &blinks); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	if blinks == nil {
		blinks = []model.Blink{}
	}
	return blinks, nil
}

// save writes all Blinks to the file.
// Creates the directory if it doesn't exist.
func (s *JSONStorage) save(blinks []model.Blink) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(blinks, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// modify loads, applies fn to the Blink with id, and saves.
func (s *JSONStorage) modify(id string, fn func(blinks []model.Blink, i int) []model.Blink) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blinks, err := s.load()
	if err != nil {
		return err
	}
	for i := range blinks {
		if blinks[i].ID == id {
			return s.save(fn(blinks, i))
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (s *JSONStorage) List(_ context.Context) ([]model.Blink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *JSONStorage) Create(_ context.Context, b model.Blink) (model.Blink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blinks, err := s.load()
	if err != nil {
		return model.Blink{}, err
	}
	if b.ID == "" {
		b.ID = model.GenerateID()
	}
	if model.FindByID(blinks, b.ID) != nil {
		return model.Blink{}, fmt.Errorf("blink %s already exists", b.ID)
	}
	if b.CreatedOn.IsZero() {
		b.CreatedOn = s.now()
	}
	if err := s.save(append(blinks, b)); err != nil {
		return model.Blink{}, err
	}
	return b, nil
}

func (s *JSONStorage) Update(_ context.Context, b model.Blink) error {
	return s.modify(b.ID, func(blinks []model.Blink, i int) []model.Blink {
		b.CreatedOn = blinks[i].CreatedOn
		blinks[i] = b
		return blinks
	})
}

func (s *JSONStorage) Delete(_ context.Context, id string) error {
	return s.modify(id, func(blinks []model.Blink, i int) []model.Blink {
		return append(blinks[:i], blinks[i+1:]...)
	})
}

func (s *JSONStorage) ToggleCompletion(_ context.Context, id string) error {
	return s.modify(id, func(blinks []model.Blink, i int) []model.Blink {
		toggle(&blinks[i], s.now())
		return blinks
	})
}

func (s *JSONStorage) Close() error { return nil }

// toggle flips completion, stamping or clearing CompletedAt.
func toggle(b *model.Blink, now time.Time) {
	b.IsCompleted = !b.IsCompleted
	if b.IsCompleted {
		b.CompletedAt = &now
	} else {
		b.CompletedAt = nil
	}
}
