package models

import "time"

// BusinessSnapshot represents the aggregated business state archived daily.
type BusinessSnapshot struct {
	Date           time.Time `bson:"date" json:"date"`
	InventoryValue float64   `bson:"inventory_value" json:"inventoryValue"`
	TotalUnits     int       `bson:"total_units" json:"totalUnits"`
	TotalRevenue   float64   `bson:"total_revenue" json:"totalRevenue"`
	TotalProfit    float64   `bson:"total_profit" json:"totalProfit"`
	UnitsSold      int       `bson:"units_sold" json:"unitsSold"`
	LowStockCount  int       `bson:"low_stock_count" json:"lowStockCount"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
}
