package models

// PdfExtractedRecord is the untrusted shape of one catalog line item as
// returned by the AI document analysis. Every field may be absent; it only
// exists between receiving the AI reply and normalization into a StockItem.
type PdfExtractedRecord struct {
	ProductDescription *string  `json:"productDescription"`
	Brand              *string  `json:"brand"`
	Model              *string  `json:"model"`
	Quality            *string  `json:"quality"`
	Color              *string  `json:"color"`
	PurchasePrice      *float64 `json:"purchasePrice"`
	Quantity           *int     `json:"quantity"`
	Notes              *string  `json:"notes"`
}
