package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/mamadbah2/screenstock/internal/domain/models"
	"github.com/mamadbah2/screenstock/internal/service/stock"
)

// ImportedSupplier marks stock items created from catalog imports.
const ImportedSupplier = "Importado PDF"

// defaultMinStockThreshold applies to every imported item.
const defaultMinStockThreshold = 1

// Normalize converts one untrusted catalog record into a valid stock item
// with a freshly generated id, ready for insertion after user confirmation.
func Normalize(rec models.PdfExtractedRecord, now time.Time) models.StockItem {
	item := normalize(rec, now)
	item.ID = stock.NewStockID()
	return item
}

// NormalizeForPreview builds the same item with a blank id, for
// edit-before-commit flows where the caller assigns the id on commit.
func NormalizeForPreview(rec models.PdfExtractedRecord, now time.Time) models.StockItem {
	return normalize(rec, now)
}

func normalize(rec models.PdfExtractedRecord, now time.Time) models.StockItem {
	quality, originalQuality := resolveQuality(rec.Quality)

	var fragments []string
	if rec.ProductDescription != nil && *rec.ProductDescription != "" {
		fragments = append(fragments, "Desc. Catálogo: "+*rec.ProductDescription)
	}
	if rec.Color != nil && *rec.Color != "" {
		fragments = append(fragments, "Color Catálogo: "+*rec.Color)
	}
	if originalQuality != "" && quality == models.QualityOther {
		fragments = append(fragments, fmt.Sprintf("Calidad Catálogo: %q (mapeado a Otro)", originalQuality))
	}
	if rec.Notes != nil && *rec.Notes != "" {
		fragments = append(fragments, "Notas Catálogo: "+*rec.Notes)
	}

	quantity := 1
	if rec.Quantity != nil && *rec.Quantity > 0 {
		quantity = *rec.Quantity
	}

	var purchasePrice float64
	if rec.PurchasePrice != nil {
		purchasePrice = *rec.PurchasePrice
	}

	threshold := defaultMinStockThreshold
	return models.StockItem{
		Brand:             stringOr(rec.Brand, "N/A"),
		Model:             stringOr(rec.Model, "N/A"),
		Quality:           quality,
		Quantity:          quantity,
		PurchasePrice:     purchasePrice,
		Supplier:          ImportedSupplier,
		EntryDate:         now,
		Notes:             strings.TrimSpace(strings.Join(fragments, ". ")),
		MinStockThreshold: &threshold,
	}
}

// resolveQuality maps the free-form catalog quality string onto the
// enumeration: exact match first, then case-insensitive, else Other. The
// second return value carries the original string when it did not match
// exactly, so the caller can record it.
func resolveQuality(raw *string) (models.Quality, string) {
	if raw == nil || *raw == "" {
		return models.QualityOther, ""
	}

	candidate := models.Quality(*raw)
	if candidate.IsValid() {
		return candidate, ""
	}

	for _, known := range models.AllQualities() {
		if strings.EqualFold(string(known), *raw) {
			return known, *raw
		}
	}
	return models.QualityOther, *raw
}

func stringOr(v *string, fallback string) string {
	if v != nil && *v != "" {
		return *v
	}
	return fallback
}
