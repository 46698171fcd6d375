package models

import "time"

// SaleTransaction is one completed sale event. Brand, model, quality and the
// per-unit purchase price are copied from the stock item at sale time; the
// record stays frozen even when the item is later edited or deleted.
// SalePrice and Profit are totals for the whole transaction, not per unit.
type SaleTransaction struct {
	ID               string    `json:"id" bson:"id"`
	OriginalScreenID string    `json:"originalScreenId" bson:"original_screen_id"`
	Brand            string    `json:"brand" bson:"brand"`
	Model            string    `json:"model" bson:"model"`
	Quality          Quality   `json:"quality" bson:"quality"`
	PurchasePrice    float64   `json:"purchasePrice" bson:"purchase_price"`
	SalePrice        float64   `json:"salePrice" bson:"sale_price"`
	Profit           float64   `json:"profit" bson:"profit"`
	QuantitySold     int       `json:"quantitySold" bson:"quantity_sold"`
	SaleDate         time.Time `json:"saleDate" bson:"sale_date"`
	CustomerInfo     string    `json:"customerInfo,omitempty" bson:"customer_info,omitempty"`
}
