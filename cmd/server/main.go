package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/screenstock/internal/config"
	"github.com/mamadbah2/screenstock/internal/repository"
	"github.com/mamadbah2/screenstock/internal/repository/memory"
	"github.com/mamadbah2/screenstock/internal/repository/mongodb"
	"github.com/mamadbah2/screenstock/internal/repository/redisstore"
	"github.com/mamadbah2/screenstock/internal/scheduler"
	"github.com/mamadbah2/screenstock/internal/server/handlers"
	"github.com/mamadbah2/screenstock/internal/server/router"
	advisorsvc "github.com/mamadbah2/screenstock/internal/service/advisor"
	stocksvc "github.com/mamadbah2/screenstock/internal/service/stock"
	"github.com/mamadbah2/screenstock/pkg/clients/gemini"
	"github.com/mamadbah2/screenstock/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx := context.Background()

	var store repository.Store
	if cfg.Redis.Addr != "" {
		redisStore, err := redisstore.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			baseLogger.Fatal("failed to init redis store", zap.Error(err))
		}
		defer func() {
			if err := redisStore.Close(); err != nil {
				baseLogger.Error("failed to close redis connection", zap.Error(err))
			}
		}()
		store = redisStore
		baseLogger.Info("redis store enabled", zap.String("addr", cfg.Redis.Addr))
	} else {
		store = memory.New()
		baseLogger.Warn("REDIS_ADDR not set, state will not survive restarts")
	}

	stockService, err := stocksvc.NewService(ctx, store, baseLogger.Named("svc.stock"))
	if err != nil {
		baseLogger.Fatal("failed to init stock service", zap.Error(err))
	}

	// Initialize AI advisor
	var advisorService *advisorsvc.Service
	if cfg.AI.Enabled() {
		aiClient := gemini.NewClient(cfg.AI.GeminiKey, cfg.AI.Model)
		advisorService = advisorsvc.NewService(aiClient, baseLogger.Named("svc.advisor"))
		baseLogger.Info("gemini ai client enabled", zap.String("model", cfg.AI.Model))
	} else {
		baseLogger.Warn("gemini api key missing, ai analyses disabled")
		// The persisted toggle cannot stay on without a key.
		if stockService.AIConnected() {
			if err := stockService.SetAIConnected(ctx, false); err != nil {
				baseLogger.Error("failed to reset ai connection flag", zap.Error(err))
			}
		}
	}

	var archive mongodb.Archive
	if cfg.MongoDB.URI != "" {
		mongoArchive, err := mongodb.NewMongoDBArchive(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb archive", zap.Error(err))
		}
		defer func() {
			if err := mongoArchive.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		archive = mongoArchive
		baseLogger.Info("snapshot archive enabled")
	}

	stockHandler := handlers.NewStockHandler(stockService, baseLogger.Named("handlers.stock"))
	advisorHandler := handlers.NewAdvisorHandler(advisorService, stockService, baseLogger.Named("handlers.advisor"))
	engine := router.New(stockHandler, advisorHandler, baseLogger.Named("router"))

	// Initialize Scheduler
	sched := scheduler.NewScheduler(cfg.Snapshot, stockService, archive, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute, // AI analyses can take a while
		IdleTimeout:  60 * time.Second,
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-runCtx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
