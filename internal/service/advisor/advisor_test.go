package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mamadbah2/screenstock/internal/domain/models"
)

// fakeGemini records the last prompt and replies with canned content.
type fakeGemini struct {
	reply      string
	err        error
	lastPrompt string
	docCalls   int
}

func (f *fakeGemini) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.reply, f.err
}

func (f *fakeGemini) GenerateFromDocument(ctx context.Context, prompt string, mimeType string, data []byte) (string, error) {
	f.lastPrompt = prompt
	f.docCalls++
	return f.reply, f.err
}

func someSales(n int) []models.SaleTransaction {
	sales := make([]models.SaleTransaction, 0, n)
	for i := 0; i < n; i++ {
		sales = append(sales, models.SaleTransaction{
			ID:           "sale-x",
			Brand:        "Samsung",
			Model:        "A12",
			Quality:      models.QualityOEM,
			SalePrice:    35,
			Profit:       15,
			QuantitySold: 1,
			SaleDate:     time.Now(),
		})
	}
	return sales
}

func TestRunReturnsReplyVerbatim(t *testing.T) {
	client := &fakeGemini{reply: "Los modelos Samsung dominan las ventas."}
	svc := NewService(client, nil)

	got := svc.Run(context.Background(), AnalysisProfitability, "", nil, someSales(3))
	if got != client.reply {
		t.Errorf("reply = %q, want verbatim %q", got, client.reply)
	}
	if !strings.Contains(client.lastPrompt, "cantidad_vendida") {
		t.Errorf("profitability prompt missing sales data: %q", client.lastPrompt)
	}
}

func TestRunFoldsErrorsIntoMessage(t *testing.T) {
	client := &fakeGemini{err: errors.New("connection refused")}
	svc := NewService(client, nil)

	got := svc.Run(context.Background(), AnalysisTrends, "", nil, someSales(1))
	if !strings.HasPrefix(got, "Error from Gemini:") {
		t.Errorf("remote failure not folded into displayable message: %q", got)
	}
	if !strings.Contains(got, "connection refused") {
		t.Errorf("message does not carry the cause: %q", got)
	}
}

func TestRunUnknownType(t *testing.T) {
	svc := NewService(&fakeGemini{}, nil)
	got := svc.Run(context.Background(), AnalysisType("voodoo"), "", nil, nil)
	if !strings.Contains(got, "voodoo") {
		t.Errorf("unknown type message = %q", got)
	}
}

func TestQueryPromptEmbedsQuestionAndBounds(t *testing.T) {
	client := &fakeGemini{reply: "ok"}
	svc := NewService(client, nil)

	items := make([]models.StockItem, 40)
	for i := range items {
		items[i] = models.StockItem{ID: "scr-i", Brand: "B", Model: "M", Quality: models.QualityOEM}
	}

	svc.QueryNaturalLanguage(context.Background(), "¿Cuántas pantallas A12 quedan?", items, someSales(40))
	if !strings.Contains(client.lastPrompt, "¿Cuántas pantallas A12 quedan?") {
		t.Errorf("prompt missing the user question")
	}
	// 40 items must be capped at 30 context entries.
	if got := strings.Count(client.lastPrompt, `"stock_actual"`); got != maxInventoryContext {
		t.Errorf("inventory context entries = %d, want %d", got, maxInventoryContext)
	}
}

func TestAnalyzeCatalogPDFRejectsBadInput(t *testing.T) {
	client := &fakeGemini{}
	svc := NewService(client, nil)
	ctx := context.Background()

	_, err := svc.AnalyzeCatalogPDF(ctx, "image/png", []byte("x"))
	if !errors.Is(err, ErrNotPDF) {
		t.Fatalf("non-pdf: err = %v", err)
	}
	if err.Error() != "Invalid file type. Please upload a PDF document." {
		t.Errorf("non-pdf display message = %q", err.Error())
	}

	big := make([]byte, MaxPDFBytes+1)
	_, err = svc.AnalyzeCatalogPDF(ctx, PDFMimeType, big)
	if !errors.Is(err, ErrPDFTooLarge) {
		t.Fatalf("oversized: err = %v", err)
	}
	if err.Error() != "File is too large. Maximum 20MB for direct analysis." {
		t.Errorf("oversized display message = %q", err.Error())
	}

	if client.docCalls != 0 {
		t.Errorf("rejected uploads must not reach the network, got %d calls", client.docCalls)
	}
}

func TestAnalyzeCatalogPDFParsesReply(t *testing.T) {
	client := &fakeGemini{reply: `[
		{"productDescription": "Lcd+táctil", "brand": "Samsung", "model": "A03s", "quality": "Original A", "color": "Negro", "purchasePrice": 67.70, "quantity": 10, "notes": null},
		{"brand": "Xiaomi", "model": "Redmi 9A"}
	]`}
	svc := NewService(client, nil)

	records, err := svc.AnalyzeCatalogPDF(context.Background(), PDFMimeType, []byte("%PDF-"))
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	first := records[0]
	if first.Brand == nil || *first.Brand != "Samsung" {
		t.Errorf("brand = %v", first.Brand)
	}
	if first.PurchasePrice == nil || *first.PurchasePrice != 67.70 {
		t.Errorf("price = %v", first.PurchasePrice)
	}
	if first.Quantity == nil || *first.Quantity != 10 {
		t.Errorf("quantity = %v", first.Quantity)
	}
	if first.Notes != nil {
		t.Errorf("null notes should stay nil, got %v", *first.Notes)
	}
	second := records[1]
	if second.PurchasePrice != nil || second.Quantity != nil {
		t.Errorf("absent fields should stay nil: %+v", second)
	}
}
