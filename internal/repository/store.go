package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mamadbah2/screenstock/internal/domain/models"
)

// Fixed storage slot keys. One slot per collection, read and written whole.
const (
	KeyInventory    = "screenStockProInventory"
	KeySales        = "screenStockProSales"
	KeyAIConnection = "screenStockProGeminiConnection"
)

// SchemaVersion is stamped into every written envelope so future structural
// changes of the persisted records can be migrated on read.
const SchemaVersion = 1

// Store persists the application state as whole-collection JSON slots.
// A missing slot reads back as an empty collection.
type Store interface {
	LoadInventory(ctx context.Context) ([]models.StockItem, error)
	SaveInventory(ctx context.Context, items []models.StockItem) error
	LoadSales(ctx context.Context) ([]models.SaleTransaction, error)
	SaveSales(ctx context.Context, sales []models.SaleTransaction) error
	LoadAIConnection(ctx context.Context) (bool, error)
	SaveAIConnection(ctx context.Context, connected bool) error
}

// Envelope wraps a persisted collection with its schema version.
type Envelope[T any] struct {
	Version int `json:"version"`
	Items   []T `json:"items"`
}

// EncodeCollection marshals a collection into a versioned envelope payload.
func EncodeCollection[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	payload, err := json.Marshal(Envelope[T]{Version: SchemaVersion, Items: items})
	if err != nil {
		return nil, fmt.Errorf("encode collection: %w", err)
	}
	return payload, nil
}

// DecodeCollection unmarshals a slot payload. Bare JSON arrays written before
// envelopes were introduced are still accepted.
func DecodeCollection[T any](payload []byte) ([]T, error) {
	if len(payload) == 0 {
		return nil, nil
	}

	var env Envelope[T]
	if err := json.Unmarshal(payload, &env); err == nil && env.Version > 0 {
		return env.Items, nil
	}

	var items []T
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("decode collection: %w", err)
	}
	return items, nil
}
