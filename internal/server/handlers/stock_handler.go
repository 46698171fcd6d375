package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/screenstock/internal/domain/models"
	"github.com/mamadbah2/screenstock/internal/service/reports"
	"github.com/mamadbah2/screenstock/internal/service/stock"
)

// StockHandler exposes the inventory and sales ledgers over HTTP.
type StockHandler struct {
	svc    *stock.Service
	logger *zap.Logger
}

// NewStockHandler constructs the HTTP handler adapter.
func NewStockHandler(svc *stock.Service, logger *zap.Logger) *StockHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockHandler{svc: svc, logger: logger}
}

type stockItemRequest struct {
	Brand             string         `json:"brand"`
	Model             string         `json:"model"`
	Quality           models.Quality `json:"quality"`
	Quantity          int            `json:"quantity"`
	PurchasePrice     float64        `json:"purchasePrice"`
	Supplier          string         `json:"supplier"`
	EntryDate         *time.Time     `json:"entryDate"`
	Notes             string         `json:"notes"`
	MinStockThreshold *int           `json:"minStockThreshold"`
}

func (r stockItemRequest) toItem(id string) models.StockItem {
	entryDate := time.Now()
	if r.EntryDate != nil {
		entryDate = *r.EntryDate
	}
	return models.StockItem{
		ID:                id,
		Brand:             r.Brand,
		Model:             r.Model,
		Quality:           r.Quality,
		Quantity:          r.Quantity,
		PurchasePrice:     r.PurchasePrice,
		Supplier:          r.Supplier,
		EntryDate:         entryDate,
		Notes:             r.Notes,
		MinStockThreshold: r.MinStockThreshold,
	}
}

// ListInventory returns the inventory ledger, newest entries first.
func (h *StockHandler) ListInventory(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Inventory(c.Request.Context()))
}

// CreateItem adds a new stock item.
func (h *StockHandler) CreateItem(c *gin.Context) {
	var req stockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid stock item payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item := req.toItem(stock.NewStockID())
	if err := h.svc.AddItem(c.Request.Context(), item); err != nil {
		respondStockError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdateItem replaces an existing stock item. Unknown ids are a no-op.
func (h *StockHandler) UpdateItem(c *gin.Context) {
	var req stockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid stock item payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item := req.toItem(c.Param("id"))
	if err := h.svc.UpdateItem(c.Request.Context(), item); err != nil {
		respondStockError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteItem removes a stock item. Unknown ids are a no-op.
func (h *StockHandler) DeleteItem(c *gin.Context) {
	if err := h.svc.RemoveItem(c.Request.Context(), c.Param("id")); err != nil {
		respondStockError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Sell converts a sell request into a sale plus an inventory decrement.
func (h *StockHandler) Sell(c *gin.Context) {
	var req stock.SellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid sell payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sale, err := h.svc.Sell(c.Request.Context(), req)
	if err != nil {
		respondStockError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sale)
}

// ListSales returns the sales ledger, newest first.
func (h *StockHandler) ListSales(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Sales(c.Request.Context()))
}

// Summary returns the derived report views: the business snapshot, the top 5
// sold products by transaction count and the low-stock items.
func (h *StockHandler) Summary(c *gin.Context) {
	ctx := c.Request.Context()
	items := h.svc.Inventory(ctx)
	sales := h.svc.Sales(ctx)

	var lowStock []models.StockItem
	for _, item := range items {
		if reports.LowStock(item) {
			lowStock = append(lowStock, item)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"snapshot": reports.Snapshot(items, sales, time.Now()),
		"topSold":  reports.TopSoldByCount(sales, 5),
		"lowStock": lowStock,
	})
}

type clearRequest struct {
	Confirmation string `json:"confirmation"`
}

// RequestClearInventory starts the two-step inventory clear sequence.
func (h *StockHandler) RequestClearInventory(c *gin.Context) {
	if err := h.svc.RequestClearInventory(); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"warning": "This permanently deletes the whole inventory. Acknowledge to continue.",
	})
}

// ProceedClearInventory acknowledges the first warning and arms the typed
// confirmation.
func (h *StockHandler) ProceedClearInventory(c *gin.Context) {
	if err := h.svc.ProceedClearInventory(); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"phrase": stock.ClearInventoryPhrase})
}

// ConfirmClearInventory completes the clear when the typed phrase matches.
func (h *StockHandler) ConfirmClearInventory(c *gin.Context) {
	var req clearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.ConfirmClearInventory(c.Request.Context(), req.Confirmation); err != nil {
		respondClearError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RequestClearSales starts the two-step sales clear sequence.
func (h *StockHandler) RequestClearSales(c *gin.Context) {
	if err := h.svc.RequestClearSales(); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"warning": "This permanently deletes the whole sales history. Acknowledge to continue.",
	})
}

// ProceedClearSales acknowledges the first warning.
func (h *StockHandler) ProceedClearSales(c *gin.Context) {
	if err := h.svc.ProceedClearSales(); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"phrase": stock.ClearSalesPhrase})
}

// ConfirmClearSales completes the clear when the typed phrase matches.
func (h *StockHandler) ConfirmClearSales(c *gin.Context) {
	var req clearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.ConfirmClearSales(c.Request.Context(), req.Confirmation); err != nil {
		respondClearError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func respondStockError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, stock.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, stock.ErrInvalidQuantity),
		errors.Is(err, stock.ErrInsufficientStock),
		errors.Is(err, stock.ErrInvalidPrice),
		errors.Is(err, stock.ErrDuplicateID),
		errors.Is(err, models.ErrInvalidItem):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func respondClearError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, stock.ErrConfirmationMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, stock.ErrConfirmationSequence):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
