package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidItem marks every structural validation failure of a stock item,
// so callers can classify them with errors.Is.
var ErrInvalidItem = errors.New("invalid stock item")

// StockItem is one inventory record for a specific screen product batch.
// PurchasePrice is the per-unit cost.
type StockItem struct {
	ID                string    `json:"id" bson:"id"`
	Brand             string    `json:"brand" bson:"brand"`
	Model             string    `json:"model" bson:"model"`
	Quality           Quality   `json:"quality" bson:"quality"`
	Quantity          int       `json:"quantity" bson:"quantity"`
	PurchasePrice     float64   `json:"purchasePrice" bson:"purchase_price"`
	Supplier          string    `json:"supplier" bson:"supplier"`
	EntryDate         time.Time `json:"entryDate" bson:"entry_date"`
	Notes             string    `json:"notes,omitempty" bson:"notes,omitempty"`
	MinStockThreshold *int      `json:"minStockThreshold,omitempty" bson:"min_stock_threshold,omitempty"`
}

// Validate checks the structural invariants of a stock item. Every failure
// wraps ErrInvalidItem.
func (s StockItem) Validate() error {
	switch {
	case s.ID == "":
		return fmt.Errorf("%w: id is required", ErrInvalidItem)
	case s.Brand == "":
		return fmt.Errorf("%w: brand is required", ErrInvalidItem)
	case s.Model == "":
		return fmt.Errorf("%w: model is required", ErrInvalidItem)
	case !s.Quality.IsValid():
		return fmt.Errorf("%w: unknown quality grade %q", ErrInvalidItem, s.Quality)
	case s.Quantity < 0:
		return fmt.Errorf("%w: quantity must not be negative", ErrInvalidItem)
	case s.PurchasePrice < 0:
		return fmt.Errorf("%w: purchase price must not be negative", ErrInvalidItem)
	}
	if s.MinStockThreshold != nil && *s.MinStockThreshold < 0 {
		return fmt.Errorf("%w: minimum stock threshold must not be negative", ErrInvalidItem)
	}
	return nil
}
