package reports

import (
	"fmt"
	"sort"
	"time"

	"github.com/mamadbah2/screenstock/internal/domain/models"
)

// ProductCount is one (brand, model, quality) group with its sales count.
type ProductCount struct {
	Key     string         `json:"key"`
	Brand   string         `json:"brand"`
	Model   string         `json:"model"`
	Quality models.Quality `json:"quality"`
	Count   int            `json:"count"`
}

// InventoryValue sums quantity * per-unit purchase price over the item set.
func InventoryValue(items []models.StockItem) float64 {
	var total float64
	for _, item := range items {
		total += float64(item.Quantity) * item.PurchasePrice
	}
	return total
}

// TotalUnits sums the unit counts currently in stock.
func TotalUnits(items []models.StockItem) int {
	var total int
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

// TopSoldByCount groups sales by (brand, model, quality) and ranks the groups
// by number of transactions, descending, returning at most n. Each sale counts
// once regardless of quantitySold; a bulk sale of 50 units weighs the same as
// a single-unit sale. Ties keep first-encountered-group order.
func TopSoldByCount(sales []models.SaleTransaction, n int) []ProductCount {
	if n <= 0 {
		return nil
	}

	index := make(map[string]int)
	var groups []ProductCount

	for _, sale := range sales {
		key := productKey(sale.Brand, sale.Model, sale.Quality)
		if i, ok := index[key]; ok {
			groups[i].Count++
			continue
		}
		index[key] = len(groups)
		groups = append(groups, ProductCount{
			Key:     key,
			Brand:   sale.Brand,
			Model:   sale.Model,
			Quality: sale.Quality,
			Count:   1,
		})
	}

	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Count > groups[j].Count })

	if len(groups) > n {
		groups = groups[:n]
	}
	return groups
}

// RecentSalesTotal sums the units sold for one product whose sale date falls
// within windowDays of now.
func RecentSalesTotal(sales []models.SaleTransaction, brand, model string, quality models.Quality, windowDays int, now time.Time) int {
	cutoff := now.AddDate(0, 0, -windowDays)

	var total int
	for _, sale := range sales {
		if sale.Brand != brand || sale.Model != model || sale.Quality != quality {
			continue
		}
		if sale.SaleDate.After(cutoff) {
			total += sale.QuantitySold
		}
	}
	return total
}

// LowStock reports whether the item has a configured minimum threshold and
// its quantity has fallen to or below it.
func LowStock(item models.StockItem) bool {
	return item.MinStockThreshold != nil && item.Quantity <= *item.MinStockThreshold
}

// OutOfStock reports whether the item has no units left.
func OutOfStock(item models.StockItem) bool {
	return item.Quantity <= 0
}

// TotalRevenue sums transaction sale prices over the whole sales ledger.
func TotalRevenue(sales []models.SaleTransaction) float64 {
	var total float64
	for _, sale := range sales {
		total += sale.SalePrice
	}
	return total
}

// TotalProfit sums transaction profits over the whole sales ledger.
func TotalProfit(sales []models.SaleTransaction) float64 {
	var total float64
	for _, sale := range sales {
		total += sale.Profit
	}
	return total
}

// TotalUnitsSold sums the units moved across all transactions.
func TotalUnitsSold(sales []models.SaleTransaction) int {
	var total int
	for _, sale := range sales {
		total += sale.QuantitySold
	}
	return total
}

// Snapshot aggregates both ledgers into one business snapshot.
func Snapshot(items []models.StockItem, sales []models.SaleTransaction, now time.Time) models.BusinessSnapshot {
	var lowStock int
	for _, item := range items {
		if LowStock(item) {
			lowStock++
		}
	}

	return models.BusinessSnapshot{
		Date:           now,
		InventoryValue: InventoryValue(items),
		TotalUnits:     TotalUnits(items),
		TotalRevenue:   TotalRevenue(sales),
		TotalProfit:    TotalProfit(sales),
		UnitsSold:      TotalUnitsSold(sales),
		LowStockCount:  lowStock,
		CreatedAt:      now,
	}
}

func productKey(brand, model string, quality models.Quality) string {
	return fmt.Sprintf("%s %s (%s)", brand, model, quality)
}
