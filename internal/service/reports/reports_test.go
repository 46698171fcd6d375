package reports

import (
	"testing"
	"time"

	"github.com/mamadbah2/screenstock/internal/domain/models"
)

func item(brand, model string, quality models.Quality, quantity int, price float64) models.StockItem {
	return models.StockItem{
		ID:            "scr-" + brand + "-" + model,
		Brand:         brand,
		Model:         model,
		Quality:       quality,
		Quantity:      quantity,
		PurchasePrice: price,
	}
}

func sale(brand, model string, quality models.Quality, quantitySold int, when time.Time) models.SaleTransaction {
	return models.SaleTransaction{
		ID:           "sale-" + brand + "-" + model,
		Brand:        brand,
		Model:        model,
		Quality:      quality,
		QuantitySold: quantitySold,
		SaleDate:     when,
	}
}

func TestInventoryValueAndUnits(t *testing.T) {
	items := []models.StockItem{
		item("Samsung", "A12", models.QualityOEM, 10, 20),
		item("Xiaomi", "Redmi 9A", models.QualityOriginal, 3, 72.10),
	}

	if got := InventoryValue(items); got != 10*20+3*72.10 {
		t.Errorf("inventory value = %v", got)
	}
	if got := TotalUnits(items); got != 13 {
		t.Errorf("total units = %d, want 13", got)
	}
	if got := InventoryValue(nil); got != 0 {
		t.Errorf("empty inventory value = %v, want 0", got)
	}
}

func TestInventoryValueIsLinear(t *testing.T) {
	a := []models.StockItem{item("Samsung", "A12", models.QualityOEM, 10, 20)}
	b := []models.StockItem{
		item("Xiaomi", "Redmi 9A", models.QualityOriginal, 3, 72.10),
		item("Apple", "iPhone 11", models.QualityIncell, 2, 45),
	}

	union := append(append([]models.StockItem{}, a...), b...)
	if InventoryValue(union) != InventoryValue(a)+InventoryValue(b) {
		t.Error("inventory value is not linear over disjoint sets")
	}
}

func TestTopSoldCountsTransactionsNotUnits(t *testing.T) {
	now := time.Now()

	// One bulk sale of 5 units of X versus five single-unit sales of Y.
	sales := []models.SaleTransaction{
		sale("Samsung", "X", models.QualityOEM, 5, now),
	}
	for i := 0; i < 5; i++ {
		sales = append(sales, sale("Samsung", "Y", models.QualityOEM, 1, now))
	}

	top := TopSoldByCount(sales, 5)
	if len(top) != 2 {
		t.Fatalf("got %d groups, want 2", len(top))
	}
	if top[0].Model != "Y" || top[0].Count != 5 {
		t.Errorf("top group = %+v, want Y with count 5", top[0])
	}
	if top[1].Model != "X" || top[1].Count != 1 {
		t.Errorf("second group = %+v, want X with count 1", top[1])
	}
}

func TestTopSoldLimitAndTies(t *testing.T) {
	now := time.Now()
	var sales []models.SaleTransaction
	for _, model := range []string{"A", "B", "C", "D"} {
		sales = append(sales, sale("Samsung", model, models.QualityOEM, 1, now))
	}

	top := TopSoldByCount(sales, 2)
	if len(top) != 2 {
		t.Fatalf("got %d groups, want 2", len(top))
	}
	// All counts tie at 1; insertion order decides.
	if top[0].Model != "A" || top[1].Model != "B" {
		t.Errorf("tie order broken: %+v", top)
	}

	if got := TopSoldByCount(sales, 0); got != nil {
		t.Errorf("n=0 should return nil, got %+v", got)
	}
	if got := TopSoldByCount(nil, 5); len(got) != 0 {
		t.Errorf("no sales should return empty, got %+v", got)
	}
}

func TestTopSoldGroupsByQuality(t *testing.T) {
	now := time.Now()
	sales := []models.SaleTransaction{
		sale("Samsung", "A12", models.QualityOEM, 1, now),
		sale("Samsung", "A12", models.QualityOriginal, 1, now),
		sale("Samsung", "A12", models.QualityOEM, 1, now),
	}

	top := TopSoldByCount(sales, 5)
	if len(top) != 2 {
		t.Fatalf("got %d groups, want 2 (quality splits the group)", len(top))
	}
	if top[0].Quality != models.QualityOEM || top[0].Count != 2 {
		t.Errorf("top group = %+v", top[0])
	}
}

func TestRecentSalesTotal(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	sales := []models.SaleTransaction{
		sale("Samsung", "A12", models.QualityOEM, 3, now.AddDate(0, 0, -5)),
		sale("Samsung", "A12", models.QualityOEM, 2, now.AddDate(0, 0, -29)),
		sale("Samsung", "A12", models.QualityOEM, 7, now.AddDate(0, 0, -31)), // outside window
		sale("Samsung", "A12", models.QualityOriginal, 4, now.AddDate(0, 0, -1)), // different quality
		sale("Xiaomi", "A12", models.QualityOEM, 9, now.AddDate(0, 0, -1)),       // different brand
	}

	if got := RecentSalesTotal(sales, "Samsung", "A12", models.QualityOEM, 30, now); got != 5 {
		t.Errorf("recent sales total = %d, want 5", got)
	}
}

func TestLowStockAndOutOfStock(t *testing.T) {
	threshold := 3

	noThreshold := item("Samsung", "A12", models.QualityOEM, 0, 20)
	if LowStock(noThreshold) {
		t.Error("low stock without a configured threshold")
	}
	if !OutOfStock(noThreshold) {
		t.Error("quantity 0 should be out of stock")
	}

	atThreshold := item("Samsung", "A12", models.QualityOEM, 3, 20)
	atThreshold.MinStockThreshold = &threshold
	if !LowStock(atThreshold) {
		t.Error("quantity equal to threshold should be low stock")
	}

	aboveThreshold := item("Samsung", "A12", models.QualityOEM, 4, 20)
	aboveThreshold.MinStockThreshold = &threshold
	if LowStock(aboveThreshold) {
		t.Error("quantity above threshold flagged as low stock")
	}
	if OutOfStock(aboveThreshold) {
		t.Error("positive quantity flagged out of stock")
	}
}

func TestLedgerTotals(t *testing.T) {
	sales := []models.SaleTransaction{
		{SalePrice: 105, Profit: 45, QuantitySold: 3},
		{SalePrice: 30, Profit: 10, QuantitySold: 1},
	}

	if got := TotalRevenue(sales); got != 135 {
		t.Errorf("revenue = %v, want 135", got)
	}
	if got := TotalProfit(sales); got != 55 {
		t.Errorf("profit = %v, want 55", got)
	}
	if got := TotalUnitsSold(sales); got != 4 {
		t.Errorf("units sold = %d, want 4", got)
	}
}

func TestSnapshot(t *testing.T) {
	threshold := 5
	items := []models.StockItem{
		item("Samsung", "A12", models.QualityOEM, 10, 20),
	}
	items[0].MinStockThreshold = &threshold
	low := item("Xiaomi", "Redmi 9A", models.QualityOriginal, 1, 72.10)
	low.MinStockThreshold = &threshold
	items = append(items, low)

	sales := []models.SaleTransaction{{SalePrice: 105, Profit: 45, QuantitySold: 3}}

	now := time.Now()
	snap := Snapshot(items, sales, now)
	if snap.TotalUnits != 11 {
		t.Errorf("total units = %d, want 11", snap.TotalUnits)
	}
	if snap.LowStockCount != 1 {
		t.Errorf("low stock count = %d, want 1", snap.LowStockCount)
	}
	if snap.TotalRevenue != 105 || snap.TotalProfit != 45 || snap.UnitsSold != 3 {
		t.Errorf("snapshot totals wrong: %+v", snap)
	}
	if !snap.Date.Equal(now) {
		t.Errorf("snapshot date = %v, want %v", snap.Date, now)
	}
}
