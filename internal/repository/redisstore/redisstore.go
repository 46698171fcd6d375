package redisstore

import (
	"context"
	"errors"
	"fmt"

	redis "github.com/redis/go-redis/v9"

	"github.com/mamadbah2/screenstock/internal/domain/models"
	"github.com/mamadbah2/screenstock/internal/repository"
)

// Store implements repository.Store on top of a Redis key-value server.
// Each collection occupies one fixed key holding a versioned JSON envelope.
type Store struct {
	client *redis.Client
}

// New connects to Redis and verifies the connection with a ping.
func New(ctx context.Context, addr, password string, db int) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &Store{client: client}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) LoadInventory(ctx context.Context) ([]models.StockItem, error) {
	return loadSlot[models.StockItem](ctx, s, repository.KeyInventory)
}

func (s *Store) SaveInventory(ctx context.Context, items []models.StockItem) error {
	return saveSlot(ctx, s, repository.KeyInventory, items)
}

func (s *Store) LoadSales(ctx context.Context) ([]models.SaleTransaction, error) {
	return loadSlot[models.SaleTransaction](ctx, s, repository.KeySales)
}

func (s *Store) SaveSales(ctx context.Context, sales []models.SaleTransaction) error {
	return saveSlot(ctx, s, repository.KeySales, sales)
}

func (s *Store) LoadAIConnection(ctx context.Context) (bool, error) {
	val, err := s.client.Get(ctx, repository.KeyAIConnection).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load slot %s: %w", repository.KeyAIConnection, err)
	}
	return val == "true", nil
}

func (s *Store) SaveAIConnection(ctx context.Context, connected bool) error {
	val := "false"
	if connected {
		val = "true"
	}
	if err := s.client.Set(ctx, repository.KeyAIConnection, val, 0).Err(); err != nil {
		return fmt.Errorf("save slot %s: %w", repository.KeyAIConnection, err)
	}
	return nil
}

func loadSlot[T any](ctx context.Context, s *Store, key string) ([]T, error) {
	payload, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load slot %s: %w", key, err)
	}
	return repository.DecodeCollection[T](payload)
}

func saveSlot[T any](ctx context.Context, s *Store, key string, items []T) error {
	payload, err := repository.EncodeCollection(items)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, key, payload, 0).Err(); err != nil {
		return fmt.Errorf("save slot %s: %w", key, err)
	}
	return nil
}
