package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/screenstock/internal/config"
	"github.com/mamadbah2/screenstock/internal/repository/mongodb"
	"github.com/mamadbah2/screenstock/internal/service/reports"
	"github.com/mamadbah2/screenstock/internal/service/stock"
)

// Scheduler runs the daily snapshot job. The job only reads ledger snapshots;
// it never mutates them. It logs low-stock alerts and, when the archive is
// configured, stores the aggregated business snapshot.
type Scheduler struct {
	cron    *cron.Cron
	svc     *stock.Service
	archive mongodb.Archive
	cfg     config.SnapshotConfig
	logger  *zap.Logger
}

// NewScheduler creates a new scheduler instance. archive may be nil.
func NewScheduler(cfg config.SnapshotConfig, svc *stock.Service, archive mongodb.Archive, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:    cron.New(),
		svc:     svc,
		archive: archive,
		cfg:     cfg,
		logger:  logger,
	}
}

// Start registers and starts the daily snapshot job.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runDailySnapshot); err != nil {
		s.logger.Error("failed to schedule daily snapshot", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runDailySnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	items := s.svc.Inventory(ctx)
	sales := s.svc.Sales(ctx)

	for _, item := range items {
		if reports.LowStock(item) {
			s.logger.Warn("low stock alert",
				zap.String("id", item.ID),
				zap.String("brand", item.Brand),
				zap.String("model", item.Model),
				zap.Int("quantity", item.Quantity))
		}
	}

	snapshot := reports.Snapshot(items, sales, time.Now())
	s.logger.Info("daily business snapshot",
		zap.Float64("inventory_value", snapshot.InventoryValue),
		zap.Int("total_units", snapshot.TotalUnits),
		zap.Float64("total_revenue", snapshot.TotalRevenue),
		zap.Float64("total_profit", snapshot.TotalProfit),
		zap.Int("low_stock_count", snapshot.LowStockCount))

	if s.archive == nil {
		return
	}
	if err := s.archive.SaveSnapshot(ctx, snapshot); err != nil {
		s.logger.Error("failed to archive business snapshot", zap.Error(err))
	}
}
