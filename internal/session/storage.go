package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/alexanderramin/pinely/internal/repository"
)

// Storage is the key-value contract the session is persisted through.
// Get reports a missing key with an error wrapping repository.ErrNotFound.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// RepoStorage adapts a repository.KVRepo to Storage.
type RepoStorage struct {
	repo repository.KVRepo
}

func NewRepoStorage(repo repository.KVRepo) *RepoStorage {
	return &RepoStorage{repo: repo}
}

func (s *RepoStorage) Get(ctx context.Context, key string) (string, error) {
	e, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", err
	}
	return e.Value, nil
}

func (s *RepoStorage) Put(ctx context.Context, key, value string) error {
	return s.repo.Put(ctx, key, value)
}

func (s *RepoStorage) Delete(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}

// MemoryStorage keeps values for the life of the process. It stands in
// when the database cannot be opened.
type MemoryStorage struct {
	mu   sync.Mutex
	data map[string]string
	err  error
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: map[string]string{}}
}

// FailWith makes every subsequent call return err; nil restores normal
// behavior.
func (m *MemoryStorage) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MemoryStorage) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	v, ok := m.data[key]
	if !ok {
		return "", fmt.Errorf("key %q: %w", key, repository.ErrNotFound)
	}
	return v, nil
}

func (m *MemoryStorage) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.data[key] = value
	return nil
}

func (m *MemoryStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.data, key)
	return nil
}

// IsNotFound reports whether err means the key was absent.
func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
