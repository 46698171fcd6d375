package advisor

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mamadbah2/screenstock/internal/domain/models"
)

// timeNow is swapped in tests.
var timeNow = time.Now

// Prompt context bounds. The gateway never ships the full ledgers; slices are
// capped so prompts stay inside sane token budgets.
const (
	maxInventoryContext = 30
	maxSalesContext     = 30
	maxSalesHistory     = 50
	maxKeyInventory     = 15
)

// saleForPrompt mirrors the JSON shape the original analysis prompts used:
// Spanish keys, totals plus derived per-unit figures.
type saleForPrompt struct {
	IDVenta                    string  `json:"id_venta"`
	Marca                      string  `json:"marca"`
	Modelo                     string  `json:"modelo"`
	Calidad                    string  `json:"calidad"`
	PrecioCompraUnitario       float64 `json:"precio_compra_unitario"`
	PrecioVentaTotalTransaccon float64 `json:"precio_venta_total_transaccion"`
	CantidadVendida            int     `json:"cantidad_vendida"`
	BeneficioTotalTransaccion  float64 `json:"beneficio_total_transaccion"`
	Fecha                      string  `json:"fecha"`
	PrecioVentaUnitario        float64 `json:"precio_venta_unitario"`
	BeneficioUnitario          float64 `json:"beneficio_unitario"`
}

func profitabilityPrompt(sales []models.SaleTransaction) string {
	data := make([]saleForPrompt, 0, len(sales))
	for _, s := range sales {
		entry := saleForPrompt{
			IDVenta:                    s.ID,
			Marca:                      s.Brand,
			Modelo:                     s.Model,
			Calidad:                    string(s.Quality),
			PrecioCompraUnitario:       s.PurchasePrice,
			PrecioVentaTotalTransaccon: s.SalePrice,
			CantidadVendida:            s.QuantitySold,
			BeneficioTotalTransaccion:  s.Profit,
			Fecha:                      s.SaleDate.Format(time.RFC3339),
		}
		if s.QuantitySold > 0 {
			entry.PrecioVentaUnitario = s.SalePrice / float64(s.QuantitySold)
			entry.BeneficioUnitario = s.Profit / float64(s.QuantitySold)
		}
		data = append(data, entry)
	}

	return fmt.Sprintf(`Analiza los siguientes datos de ventas de pantallas de móviles:
%s

Basándote en estos datos, identifica:
1. Los 5 modelos más vendidos en cantidad total (sumando cantidad_vendida).
2. Los 5 modelos que generan mayor ingreso total.
3. Los 5 modelos con mayor margen de beneficio unitario promedio.
4. Los 5 modelos con mayor rentabilidad total.
5. Cualquier patrón o tendencia interesante en las ventas.
6. Sugerencias para optimizar el enfoque de ventas y maximizar la rentabilidad.
Presenta la información de forma clara y concisa.`, mustJSON(data))
}

func inventoryOptimizationPrompt(items []models.StockItem, sales []models.SaleTransaction) string {
	type invEntry struct {
		Modelo             string `json:"modelo"`
		Marca              string `json:"marca"`
		Calidad            string `json:"calidad"`
		StockActual        int    `json:"stock_actual"`
		StockMinimoDeseado int    `json:"stock_minimo_deseado"`
		VentasUltimos30    int    `json:"ventas_ultimos_30_dias"`
	}

	inventory := make([]invEntry, 0, len(items))
	for _, item := range items {
		threshold := 0
		if item.MinStockThreshold != nil {
			threshold = *item.MinStockThreshold
		}
		inventory = append(inventory, invEntry{
			Modelo:             item.Model,
			Marca:              item.Brand,
			Calidad:            string(item.Quality),
			StockActual:        item.Quantity,
			StockMinimoDeseado: threshold,
			VentasUltimos30:    thirtyDayVelocity(item, sales),
		})
	}

	type saleEntry struct {
		Marca           string  `json:"marca"`
		Modelo          string  `json:"modelo"`
		Calidad         string  `json:"calidad"`
		CantidadVendida int     `json:"cantidad_vendida"`
		PrecioVenta     float64 `json:"precio_venta_total_transaccion"`
		Fecha           string  `json:"fecha"`
	}
	history := make([]saleEntry, 0, maxSalesHistory)
	for _, s := range lastN(sales, maxSalesHistory) {
		history = append(history, saleEntry{
			Marca:           s.Brand,
			Modelo:          s.Model,
			Calidad:         string(s.Quality),
			CantidadVendida: s.QuantitySold,
			PrecioVenta:     s.SalePrice,
			Fecha:           s.SaleDate.Format(time.RFC3339),
		})
	}

	return fmt.Sprintf(`Analiza el siguiente inventario y el historial de ventas:
Inventario: %s
Historial de Ventas (últimos relevantes): %s

Basándote en esto:
1. Identifica pantallas con riesgo de agotarse pronto (alta demanda reciente y bajo stock actual).
2. Identifica pantallas con "stock muerto" o baja rotación.
3. Sugiere cantidades a reponer para las pantallas más demandadas.
4. Ofrece consejos para gestionar el inventario de forma más eficiente.
Presenta la información de forma clara y concisa.`, mustJSON(inventory), mustJSON(history))
}

func trendsPrompt(sales []models.SaleTransaction) string {
	type saleEntry struct {
		Marca           string `json:"marca"`
		Modelo          string `json:"modelo"`
		Calidad         string `json:"calidad"`
		CantidadVendida int    `json:"cantidad_vendida"`
		Fecha           string `json:"fecha"`
	}
	history := make([]saleEntry, 0, len(sales))
	for _, s := range sales {
		history = append(history, saleEntry{
			Marca:           s.Brand,
			Modelo:          s.Model,
			Calidad:         string(s.Quality),
			CantidadVendida: s.QuantitySold,
			Fecha:           s.SaleDate.Format(time.RFC3339),
		})
	}

	return fmt.Sprintf(`Analiza el historial de ventas %s y destaca cualquier modelo, marca o calidad de pantalla cuya demanda haya aumentado o disminuido significativamente en las últimas semanas o meses. Identifica también productos consistentemente populares.
Presenta la información de forma clara y concisa.`, mustJSON(history))
}

func naturalLanguagePrompt(query string, items []models.StockItem, sales []models.SaleTransaction) string {
	type invEntry struct {
		Modelo       string  `json:"modelo"`
		Marca        string  `json:"marca"`
		StockActual  int     `json:"stock_actual"`
		PrecioCompra float64 `json:"precio_compra"`
		Calidad      string  `json:"calidad"`
	}
	inventory := make([]invEntry, 0, maxInventoryContext)
	for _, item := range firstN(items, maxInventoryContext) {
		inventory = append(inventory, invEntry{
			Modelo:       item.Model,
			Marca:        item.Brand,
			StockActual:  item.Quantity,
			PrecioCompra: item.PurchasePrice,
			Calidad:      string(item.Quality),
		})
	}

	type saleEntry struct {
		Modelo          string  `json:"modelo"`
		Marca           string  `json:"marca"`
		CantidadVendida int     `json:"cantidad_vendida"`
		PrecioVenta     float64 `json:"precio_venta_total_transaccion"`
		Beneficio       float64 `json:"beneficio_total_transaccion"`
		Fecha           string  `json:"fecha"`
		Calidad         string  `json:"calidad"`
	}
	recent := make([]saleEntry, 0, maxSalesContext)
	for _, s := range lastN(sales, maxSalesContext) {
		recent = append(recent, saleEntry{
			Modelo:          s.Model,
			Marca:           s.Brand,
			CantidadVendida: s.QuantitySold,
			PrecioVenta:     s.SalePrice,
			Beneficio:       s.Profit,
			Fecha:           s.SaleDate.Format(time.RFC3339),
			Calidad:         string(s.Quality),
		})
	}

	return fmt.Sprintf(`Eres un asistente de IA para una aplicación de gestión de inventario y ventas de pantallas de móviles.
Debes responder la pregunta del usuario ESTRICTAMENTE basándote ÚNICAMENTE en el siguiente contexto de datos proporcionado.
No inventes información ni uses conocimiento externo. Si la información no está en el contexto, indícalo claramente.
Sé conciso y directo en tu respuesta.

Contexto de datos (resumen limitado):
Inventario Actual (hasta %d items): %s
Ventas Recientes (hasta %d transacciones): %s

Pregunta del usuario: %q

Respuesta basada en el contexto:`, maxInventoryContext, mustJSON(inventory), maxSalesContext, mustJSON(recent), query)
}

func proactivePrompt(items []models.StockItem, sales []models.SaleTransaction) string {
	type invEntry struct {
		Modelo       string  `json:"modelo"`
		Stock        int     `json:"stock"`
		StockMinimo  *int    `json:"stock_minimo"`
		PrecioCompra float64 `json:"precio_compra_unitario"`
	}
	inventory := make([]invEntry, 0, maxKeyInventory)
	for _, item := range firstN(items, maxKeyInventory) {
		inventory = append(inventory, invEntry{
			Modelo:       item.Model,
			Stock:        item.Quantity,
			StockMinimo:  item.MinStockThreshold,
			PrecioCompra: item.PurchasePrice,
		})
	}

	type saleEntry struct {
		Modelo          string  `json:"modelo"`
		CantidadVendida int     `json:"cantidad_vendida"`
		PrecioVenta     float64 `json:"precio_venta_total"`
		Beneficio       float64 `json:"beneficio_total"`
		Fecha           string  `json:"fecha"`
	}
	recent := make([]saleEntry, 0, maxSalesContext)
	for _, s := range lastN(sales, maxSalesContext) {
		recent = append(recent, saleEntry{
			Modelo:          s.Model,
			CantidadVendida: s.QuantitySold,
			PrecioVenta:     s.SalePrice,
			Beneficio:       s.Profit,
			Fecha:           s.SaleDate.Format(time.RFC3339),
		})
	}

	return fmt.Sprintf(`Este es un resumen del estado actual del negocio de pantallas:
Inventario Clave: %s
Ventas Recientes (últimas %d): %s

Identifica el hallazgo más importante o la sugerencia más urgente que el dueño debería conocer ahora mismo. Sé breve y directo (1-2 frases).`, mustJSON(inventory), maxSalesContext, mustJSON(recent))
}

func firstN[T any](in []T, n int) []T {
	if len(in) > n {
		return in[:n]
	}
	return in
}

func lastN[T any](in []T, n int) []T {
	if len(in) > n {
		return in[len(in)-n:]
	}
	return in
}

func mustJSON(v any) string {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(payload)
}
