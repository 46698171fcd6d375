package advisor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/screenstock/internal/domain/models"
	"github.com/mamadbah2/screenstock/internal/service/reports"
	"github.com/mamadbah2/screenstock/pkg/clients/gemini"
)

// AnalysisType enumerates the read-only AI analyses.
type AnalysisType string

const (
	AnalysisProfitability         AnalysisType = "profitability"
	AnalysisInventoryOptimization AnalysisType = "inventory_optimization"
	AnalysisTrends                AnalysisType = "trends"
	AnalysisQuery                 AnalysisType = "query"
	AnalysisProactive             AnalysisType = "proactive"
)

// Service formats ledger snapshots into prompts for the generative AI and
// returns the replies. Remote failures never cross the boundary as Go errors
// on the text analyses; they come back as displayable message strings. The
// service performs no retries, no caching and never mutates ledger state.
type Service struct {
	client gemini.Client
	logger *zap.Logger
}

// NewService wires the advisor around a Gemini client.
func NewService(client gemini.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, logger: logger}
}

// Run dispatches one text analysis by type. The query argument is only used
// by the natural-language analysis.
func (s *Service) Run(ctx context.Context, kind AnalysisType, query string, items []models.StockItem, sales []models.SaleTransaction) string {
	switch kind {
	case AnalysisProfitability:
		return s.AnalyzeProfitability(ctx, sales)
	case AnalysisInventoryOptimization:
		return s.SuggestInventoryOptimization(ctx, items, sales)
	case AnalysisTrends:
		return s.IdentifyTrends(ctx, sales)
	case AnalysisQuery:
		return s.QueryNaturalLanguage(ctx, query, items, sales)
	case AnalysisProactive:
		return s.ProactiveSuggestion(ctx, items, sales)
	default:
		return fmt.Sprintf("Tipo de análisis desconocido: %s", kind)
	}
}

// AnalyzeProfitability asks for top sellers, margins and sales patterns over
// the full sales history.
func (s *Service) AnalyzeProfitability(ctx context.Context, sales []models.SaleTransaction) string {
	return s.generate(ctx, profitabilityPrompt(sales))
}

// SuggestInventoryOptimization asks for restock and dead-stock advice using
// the inventory plus 30-day per-product sales velocity.
func (s *Service) SuggestInventoryOptimization(ctx context.Context, items []models.StockItem, sales []models.SaleTransaction) string {
	return s.generate(ctx, inventoryOptimizationPrompt(items, sales))
}

// IdentifyTrends asks for demand shifts across brands, models and qualities.
func (s *Service) IdentifyTrends(ctx context.Context, sales []models.SaleTransaction) string {
	return s.generate(ctx, trendsPrompt(sales))
}

// QueryNaturalLanguage answers a free-text question strictly from a bounded
// context of both ledgers.
func (s *Service) QueryNaturalLanguage(ctx context.Context, query string, items []models.StockItem, sales []models.SaleTransaction) string {
	return s.generate(ctx, naturalLanguagePrompt(query, items, sales))
}

// ProactiveSuggestion asks for the single most urgent finding.
func (s *Service) ProactiveSuggestion(ctx context.Context, items []models.StockItem, sales []models.SaleTransaction) string {
	return s.generate(ctx, proactivePrompt(items, sales))
}

func (s *Service) generate(ctx context.Context, prompt string) string {
	reply, err := s.client.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.Warn("gemini text analysis failed", zap.Error(err))
		return fmt.Sprintf("Error from Gemini: %v", err)
	}
	return reply
}

// thirtyDayVelocity returns the units sold in the last 30 days for one item.
func thirtyDayVelocity(item models.StockItem, sales []models.SaleTransaction) int {
	return reports.RecentSalesTotal(sales, item.Brand, item.Model, item.Quality, 30, timeNow())
}
