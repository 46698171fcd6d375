package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/screenstock/internal/domain/models"
	"github.com/mamadbah2/screenstock/internal/service/advisor"
	"github.com/mamadbah2/screenstock/internal/service/catalog"
	"github.com/mamadbah2/screenstock/internal/service/stock"
)

// AdvisorHandler exposes the AI analyses and the catalog import flow. The
// advisor is nil when no API key is configured; every AI route is then gated
// off instead of attempted.
type AdvisorHandler struct {
	advisor *advisor.Service
	svc     *stock.Service
	logger  *zap.Logger
}

// NewAdvisorHandler constructs the HTTP handler adapter. advisorSvc may be
// nil when the API key is absent.
func NewAdvisorHandler(advisorSvc *advisor.Service, svc *stock.Service, logger *zap.Logger) *AdvisorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdvisorHandler{advisor: advisorSvc, svc: svc, logger: logger}
}

// Status reports whether the API key is configured and the connection toggle.
func (h *AdvisorHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"apiKeyAvailable": h.advisor != nil,
		"connected":       h.svc.AIConnected(),
	})
}

type connectionRequest struct {
	Connected bool `json:"connected"`
}

// SetConnection toggles the persisted AI connection flag. Connecting without
// a configured API key is rejected.
func (h *AdvisorHandler) SetConnection(c *gin.Context) {
	var req connectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.Connected && h.advisor == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Gemini API key is not configured; cannot connect"})
		return
	}

	if err := h.svc.SetAIConnected(c.Request.Context(), req.Connected); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"connected": req.Connected})
}

type analysisRequest struct {
	Type  advisor.AnalysisType `json:"type"`
	Query string               `json:"query"`
}

// Analyze runs one of the read-only text analyses over ledger snapshots and
// returns the AI reply (or a displayable error message) verbatim.
func (h *AdvisorHandler) Analyze(c *gin.Context) {
	if !h.gateAI(c) {
		return
	}

	var req analysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	content := h.advisor.Run(ctx, req.Type, req.Query, h.svc.Inventory(ctx), h.svc.Sales(ctx))

	c.JSON(http.StatusOK, gin.H{
		"type":      req.Type,
		"content":   content,
		"timestamp": time.Now(),
	})
}

// AnalyzeCatalog accepts a multipart PDF upload, ships it to the AI and
// returns the extracted records for review. Nothing is committed here.
func (h *AdvisorHandler) AnalyzeCatalog(c *gin.Context) {
	if !h.gateAI(c) {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file upload"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, advisor.MaxPDFBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file upload"})
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	records, err := h.advisor.AnalyzeCatalogPDF(c.Request.Context(), mimeType, data)
	if err != nil {
		// Rejections and parse failures are displayable messages by contract.
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": records})
}

type importRequest struct {
	Records []models.PdfExtractedRecord `json:"records"`
}

// ImportRecords normalizes reviewed catalog records into stock items and adds
// them to the inventory. This is the explicit user-triggered commit step.
func (h *AdvisorHandler) ImportRecords(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if len(req.Records) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no records to import"})
		return
	}

	ctx := c.Request.Context()
	now := time.Now()
	added := make([]models.StockItem, 0, len(req.Records))
	for _, rec := range req.Records {
		item := catalog.Normalize(rec, now)
		if err := h.svc.AddItem(ctx, item); err != nil {
			h.logger.Error("catalog import failed mid-batch",
				zap.Int("added", len(added)), zap.Error(err))
			status := http.StatusInternalServerError
			if errors.Is(err, models.ErrInvalidItem) || errors.Is(err, stock.ErrDuplicateID) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{
				"error": err.Error(),
				"added": added,
			})
			return
		}
		added = append(added, item)
	}

	c.JSON(http.StatusCreated, gin.H{"added": added})
}

// gateAI rejects AI routes when the key is absent or the connection toggle is
// off. Returns true when the request may proceed.
func (h *AdvisorHandler) gateAI(c *gin.Context) bool {
	if h.advisor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Gemini API key is not configured"})
		return false
	}
	if !h.svc.AIConnected() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Gemini connection is disabled; enable it first"})
		return false
	}
	return true
}
