package catalog

import (
	"strings"
	"testing"
	"time"

	"github.com/mamadbah2/screenstock/internal/domain/models"
)

func strptr(s string) *string     { return &s }
func intptr(v int) *int           { return &v }
func floatptr(v float64) *float64 { return &v }

func TestNormalizeQualityExactMatch(t *testing.T) {
	item := Normalize(models.PdfExtractedRecord{Quality: strptr("Original")}, time.Now())
	if item.Quality != models.QualityOriginal {
		t.Errorf("quality = %q, want Original", item.Quality)
	}
	if strings.Contains(item.Notes, "mapeado") {
		t.Errorf("exact match should not annotate notes: %q", item.Notes)
	}
}

func TestNormalizeQualityCaseInsensitive(t *testing.T) {
	for _, raw := range []string{"original", "ORIGINAL", "oRiGiNaL"} {
		item := Normalize(models.PdfExtractedRecord{Quality: strptr(raw)}, time.Now())
		if item.Quality != models.QualityOriginal {
			t.Errorf("quality for %q = %q, want Original", raw, item.Quality)
		}
		if strings.Contains(item.Notes, "mapeado") {
			t.Errorf("case-insensitive match should not annotate notes: %q", item.Notes)
		}
	}
}

func TestNormalizeUnknownQualityFallsBackToOther(t *testing.T) {
	item := Normalize(models.PdfExtractedRecord{Quality: strptr("Refurbished")}, time.Now())
	if item.Quality != models.QualityOther {
		t.Errorf("quality = %q, want Otro", item.Quality)
	}
	if !strings.Contains(item.Notes, "Refurbished") {
		t.Errorf("notes %q do not record the original quality string", item.Notes)
	}
}

func TestNormalizeDefaults(t *testing.T) {
	now := time.Now()
	item := Normalize(models.PdfExtractedRecord{}, now)

	if item.Brand != "N/A" || item.Model != "N/A" {
		t.Errorf("brand/model = %q/%q, want N/A placeholders", item.Brand, item.Model)
	}
	if item.Quantity != 1 {
		t.Errorf("quantity = %d, want default 1", item.Quantity)
	}
	if item.PurchasePrice != 0 {
		t.Errorf("purchase price = %v, want default 0", item.PurchasePrice)
	}
	if item.Supplier != ImportedSupplier {
		t.Errorf("supplier = %q, want %q", item.Supplier, ImportedSupplier)
	}
	if item.MinStockThreshold == nil || *item.MinStockThreshold != 1 {
		t.Errorf("threshold = %v, want 1", item.MinStockThreshold)
	}
	if !item.EntryDate.Equal(now) {
		t.Errorf("entry date = %v, want %v", item.EntryDate, now)
	}
	if item.ID == "" {
		t.Error("normalize must generate an id")
	}
}

func TestNormalizeZeroQuantityDefaultsToOne(t *testing.T) {
	item := Normalize(models.PdfExtractedRecord{Quantity: intptr(0)}, time.Now())
	if item.Quantity != 1 {
		t.Errorf("quantity = %d, want 1", item.Quantity)
	}
}

func TestNormalizeNotesComposition(t *testing.T) {
	rec := models.PdfExtractedRecord{
		ProductDescription: strptr("Lcd+táctil con marco"),
		Color:              strptr("Negro"),
		Quality:            strptr("Original A"),
		Notes:              strptr("Número de item: 1"),
	}
	item := Normalize(rec, time.Now())

	notes := item.Notes
	descIdx := strings.Index(notes, "Lcd+táctil con marco")
	colorIdx := strings.Index(notes, "Negro")
	mappedIdx := strings.Index(notes, "mapeado a Otro")
	extraIdx := strings.Index(notes, "Número de item: 1")

	for name, idx := range map[string]int{"description": descIdx, "color": colorIdx, "mapped": mappedIdx, "extra": extraIdx} {
		if idx < 0 {
			t.Fatalf("notes %q missing %s fragment", notes, name)
		}
	}
	if !(descIdx < colorIdx && colorIdx < mappedIdx && mappedIdx < extraIdx) {
		t.Errorf("notes fragments out of order: %q", notes)
	}
}

func TestNormalizeCarriesValues(t *testing.T) {
	rec := models.PdfExtractedRecord{
		Brand:         strptr("Xiaomi"),
		Model:         strptr("Redmi 9A"),
		Quality:       strptr("Incell"),
		PurchasePrice: floatptr(72.10),
		Quantity:      intptr(3),
	}
	item := Normalize(rec, time.Now())

	if item.Brand != "Xiaomi" || item.Model != "Redmi 9A" {
		t.Errorf("brand/model = %q/%q", item.Brand, item.Model)
	}
	if item.Quality != models.QualityIncell {
		t.Errorf("quality = %q", item.Quality)
	}
	if item.PurchasePrice != 72.10 || item.Quantity != 3 {
		t.Errorf("price/quantity = %v/%d", item.PurchasePrice, item.Quantity)
	}
	if err := item.Validate(); err != nil {
		t.Errorf("normalized item invalid: %v", err)
	}
}

func TestNormalizeForPreviewLeavesIDBlank(t *testing.T) {
	item := NormalizeForPreview(models.PdfExtractedRecord{}, time.Now())
	if item.ID != "" {
		t.Errorf("preview id = %q, want empty", item.ID)
	}
}
