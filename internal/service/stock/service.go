package stock

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/screenstock/internal/domain/models"
	"github.com/mamadbah2/screenstock/internal/repository"
)

var (
	// ErrItemNotFound is returned when a sale targets a stock item that does
	// not exist, or no item was selected at all.
	ErrItemNotFound = errors.New("no item selected")

	// ErrInvalidQuantity is returned for sale quantities <= 0.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrInsufficientStock is returned when a sale asks for more units than
	// the item currently holds. The wrapped message names the available amount.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidPrice is returned for unit sale prices <= 0.
	ErrInvalidPrice = errors.New("invalid price")

	// ErrDuplicateID is returned when adding an item whose id already exists.
	ErrDuplicateID = errors.New("duplicate stock item id")
)

// SellRequest describes one "sell N units of item X at unit price P" action.
type SellRequest struct {
	ItemID         string  `json:"itemId"`
	UnitSalePrice  float64 `json:"unitSalePrice"`
	QuantityToSell int     `json:"quantityToSell"`
	CustomerInfo   string  `json:"customerInfo"`
}

// Service owns the inventory and sales ledgers. Every successful mutation
// rewrites the touched collection in the store before it becomes visible, so
// readers never observe a sale without its inventory decrement or vice versa.
type Service struct {
	store  repository.Store
	logger *zap.Logger
	now    func() time.Time

	mu          sync.Mutex
	items       []models.StockItem
	sales       []models.SaleTransaction
	aiConnected bool

	inventoryClear *clearConfirmation
	salesClear     *clearConfirmation
}

// NewService loads both ledgers and the AI connection flag from the store.
func NewService(ctx context.Context, store repository.Store, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	items, err := store.LoadInventory(ctx)
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}
	sales, err := store.LoadSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sales: %w", err)
	}
	aiConnected, err := store.LoadAIConnection(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ai connection flag: %w", err)
	}

	logger.Info("ledgers loaded",
		zap.Int("inventory_items", len(items)),
		zap.Int("sales", len(sales)),
		zap.Bool("ai_connected", aiConnected))

	return &Service{
		store:          store,
		logger:         logger,
		now:            time.Now,
		items:          items,
		sales:          sales,
		aiConnected:    aiConnected,
		inventoryClear: newClearConfirmation(ClearInventoryPhrase),
		salesClear:     newClearConfirmation(ClearSalesPhrase),
	}, nil
}

// NewStockID generates a fresh stock item identifier.
func NewStockID() string {
	return "scr-" + uuid.NewString()
}

// Inventory returns a copy of the inventory ledger sorted by entry date,
// newest first.
func (s *Service) Inventory(ctx context.Context) []models.StockItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.StockItem, len(s.items))
	copy(out, s.items)
	sort.SliceStable(out, func(i, j int) bool { return out[i].EntryDate.After(out[j].EntryDate) })
	return out
}

// Sales returns a copy of the sales ledger sorted by sale date, newest first.
func (s *Service) Sales(ctx context.Context) []models.SaleTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.SaleTransaction, len(s.sales))
	copy(out, s.sales)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SaleDate.After(out[j].SaleDate) })
	return out
}

// AddItem appends a new stock item and persists the inventory.
func (s *Service) AddItem(ctx context.Context, item models.StockItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(item.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, item.ID)
	}

	next := append(s.copyItems(), item)
	if err := s.store.SaveInventory(ctx, next); err != nil {
		return fmt.Errorf("persist inventory: %w", err)
	}
	s.items = next

	s.logger.Info("stock item added", zap.String("id", item.ID),
		zap.String("brand", item.Brand), zap.String("model", item.Model))
	return nil
}

// UpdateItem replaces the record with a matching id. Absent ids are a no-op.
func (s *Service) UpdateItem(ctx context.Context, item models.StockItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(item.ID)
	if i < 0 {
		return nil
	}

	next := s.copyItems()
	next[i] = item
	if err := s.store.SaveInventory(ctx, next); err != nil {
		return fmt.Errorf("persist inventory: %w", err)
	}
	s.items = next
	return nil
}

// RemoveItem deletes the record with a matching id. Absent ids are a no-op.
// Historical sales referencing the item are untouched.
func (s *Service) RemoveItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}

	next := s.copyItems()
	next = append(next[:i], next[i+1:]...)
	if err := s.store.SaveInventory(ctx, next); err != nil {
		return fmt.Errorf("persist inventory: %w", err)
	}
	s.items = next

	s.logger.Info("stock item removed", zap.String("id", id))
	return nil
}

// DecrementQuantity lowers an item's unit count, clamping at zero.
func (s *Service) DecrementQuantity(ctx context.Context, id string, amount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrItemNotFound
	}

	next := s.copyItems()
	next[i].Quantity = clampZero(next[i].Quantity - amount)
	if err := s.store.SaveInventory(ctx, next); err != nil {
		return fmt.Errorf("persist inventory: %w", err)
	}
	s.items = next
	return nil
}

// Sell converts a sell request into a sale transaction plus an inventory
// decrement. Validation order is fixed: item existence, quantity, available
// stock, unit price. The operation either fully succeeds or mutates nothing.
func (s *Service) Sell(ctx context.Context, req SellRequest) (*models.SaleTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(req.ItemID)
	if i < 0 {
		return nil, ErrItemNotFound
	}
	item := s.items[i]

	if req.QuantityToSell <= 0 {
		return nil, ErrInvalidQuantity
	}
	if req.QuantityToSell > item.Quantity {
		return nil, fmt.Errorf("%w: only %d units available", ErrInsufficientStock, item.Quantity)
	}
	if req.UnitSalePrice <= 0 {
		return nil, ErrInvalidPrice
	}

	sale := models.SaleTransaction{
		ID:               "sale-" + uuid.NewString(),
		OriginalScreenID: item.ID,
		Brand:            item.Brand,
		Model:            item.Model,
		Quality:          item.Quality,
		PurchasePrice:    item.PurchasePrice,
		SalePrice:        req.UnitSalePrice * float64(req.QuantityToSell),
		Profit:           (req.UnitSalePrice - item.PurchasePrice) * float64(req.QuantityToSell),
		QuantitySold:     req.QuantityToSell,
		SaleDate:         s.now(),
		CustomerInfo:     req.CustomerInfo,
	}

	nextItems := s.copyItems()
	nextItems[i].Quantity = clampZero(nextItems[i].Quantity - req.QuantityToSell)
	nextSales := append(s.copySales(), sale)

	if err := s.store.SaveSales(ctx, nextSales); err != nil {
		return nil, fmt.Errorf("persist sales: %w", err)
	}
	if err := s.store.SaveInventory(ctx, nextItems); err != nil {
		// Undo the sales write so the stored state stays consistent.
		if rbErr := s.store.SaveSales(ctx, s.sales); rbErr != nil {
			s.logger.Error("rollback of sales slot failed", zap.Error(rbErr))
		}
		return nil, fmt.Errorf("persist inventory: %w", err)
	}

	s.items = nextItems
	s.sales = nextSales

	s.logger.Info("sale recorded",
		zap.String("sale_id", sale.ID),
		zap.String("item_id", item.ID),
		zap.Int("quantity", sale.QuantitySold),
		zap.Float64("sale_price", sale.SalePrice),
		zap.Float64("profit", sale.Profit))

	return &sale, nil
}

// RequestClearInventory starts the two-step inventory clear sequence.
func (s *Service) RequestClearInventory() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inventoryClear.request()
}

// ProceedClearInventory acknowledges the first warning.
func (s *Service) ProceedClearInventory() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inventoryClear.proceed()
}

// ConfirmClearInventory empties the inventory ledger when the typed phrase
// matches exactly. Any mismatch aborts with no mutation.
func (s *Service) ConfirmClearInventory(ctx context.Context, typed string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.inventoryClear.confirm(typed); err != nil {
		return err
	}
	if err := s.store.SaveInventory(ctx, nil); err != nil {
		return fmt.Errorf("persist inventory: %w", err)
	}
	s.items = nil

	s.logger.Warn("inventory cleared")
	return nil
}

// RequestClearSales starts the two-step sales clear sequence.
func (s *Service) RequestClearSales() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.salesClear.request()
}

// ProceedClearSales acknowledges the first warning.
func (s *Service) ProceedClearSales() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.salesClear.proceed()
}

// ConfirmClearSales empties the sales ledger when the typed phrase matches
// exactly.
func (s *Service) ConfirmClearSales(ctx context.Context, typed string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.salesClear.confirm(typed); err != nil {
		return err
	}
	if err := s.store.SaveSales(ctx, nil); err != nil {
		return fmt.Errorf("persist sales: %w", err)
	}
	s.sales = nil

	s.logger.Warn("sales history cleared")
	return nil
}

// AIConnected reports the persisted AI connection toggle.
func (s *Service) AIConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aiConnected
}

// SetAIConnected persists the AI connection toggle.
func (s *Service) SetAIConnected(ctx context.Context, connected bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SaveAIConnection(ctx, connected); err != nil {
		return fmt.Errorf("persist ai connection flag: %w", err)
	}
	s.aiConnected = connected
	return nil
}

func (s *Service) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) copyItems() []models.StockItem {
	out := make([]models.StockItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Service) copySales() []models.SaleTransaction {
	out := make([]models.SaleTransaction, len(s.sales))
	copy(out, s.sales)
	return out
}

func clampZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
