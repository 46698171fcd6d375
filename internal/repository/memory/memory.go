package memory

import (
	"context"
	"sync"

	"github.com/mamadbah2/screenstock/internal/domain/models"
	"github.com/mamadbah2/screenstock/internal/repository"
)

// Store is an in-process implementation of repository.Store. It backs tests
// and key-value-server-less development runs; state lives only as long as the
// process. Collections round-trip through the same envelope encoding as the
// Redis store so both paths exercise identical serialization.
type Store struct {
	mu    sync.Mutex
	slots map[string][]byte
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{slots: make(map[string][]byte)}
}

func (s *Store) LoadInventory(ctx context.Context) ([]models.StockItem, error) {
	return load[models.StockItem](s, repository.KeyInventory)
}

func (s *Store) SaveInventory(ctx context.Context, items []models.StockItem) error {
	return save(s, repository.KeyInventory, items)
}

func (s *Store) LoadSales(ctx context.Context) ([]models.SaleTransaction, error) {
	return load[models.SaleTransaction](s, repository.KeySales)
}

func (s *Store) SaveSales(ctx context.Context, sales []models.SaleTransaction) error {
	return save(s, repository.KeySales, sales)
}

func (s *Store) LoadAIConnection(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.slots[repository.KeyAIConnection]) == "true", nil
}

func (s *Store) SaveAIConnection(ctx context.Context, connected bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if connected {
		s.slots[repository.KeyAIConnection] = []byte("true")
	} else {
		s.slots[repository.KeyAIConnection] = []byte("false")
	}
	return nil
}

func load[T any](s *Store, key string) ([]T, error) {
	s.mu.Lock()
	payload := s.slots[key]
	s.mu.Unlock()
	return repository.DecodeCollection[T](payload)
}

func save[T any](s *Store, key string, items []T) error {
	payload, err := repository.EncodeCollection(items)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.slots[key] = payload
	s.mu.Unlock()
	return nil
}
