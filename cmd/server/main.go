package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/junyi/vocabflash/internal/api"
	"github.com/junyi/vocabflash/internal/config"
	"github.com/junyi/vocabflash/internal/db"
	"github.com/junyi/vocabflash/internal/elo"
	"github.com/junyi/vocabflash/internal/jobs"
	"github.com/junyi/vocabflash/internal/logger"
	"github.com/junyi/vocabflash/internal/queue"
	"github.com/junyi/vocabflash/internal/repository/sqlite"
	"github.com/junyi/vocabflash/internal/scheduler"
	"github.com/junyi/vocabflash/internal/services"
	"github.com/junyi/vocabflash/internal/srs"
	"github.com/junyi/vocabflash/internal/vocab"
	"github.com/junyi/vocabflash/internal/vocabsource"
	"github.com/junyi/vocabflash/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("VocabFlash Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("vocab_dir=%s", cfg.VocabDir)
	log.Debug("vocab_source_url=%s", cfg.VocabSourceURL)
	log.Debug("import_worker_count=%d", cfg.ImportWorkerCount)
	log.Debug("import_queue_size=%d", cfg.ImportQueueSize)
	log.Debug("max_new_per_session=%d", cfg.MaxNewPerSession)
	log.Debug("max_review_per_session=%d", cfg.MaxReviewPerSession)
	log.Debug("elo_k_factor=%g", cfg.EloKFactor)
	log.Debug("target_success_rate=%g", cfg.TargetSuccessRate)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Repositories
	userRepo := sqlite.NewUserRepository(database.DB)
	vocabRepo := sqlite.NewVocabularyRepository(database.DB)
	recordRepo := sqlite.NewRecordRepository(database.DB)
	sessionRepo := sqlite.NewSessionRepository(database.DB)
	notebookRepo := sqlite.NewNotebookRepository(database.DB)
	statsRepo := sqlite.NewStatsRepository(database.DB)

	// Core engines
	engine := srs.NewEngine()
	adapter := elo.NewAdapter(cfg.EloKFactor, cfg.TargetSuccessRate)
	builder := queue.NewBuilder(engine, adapter, cfg.TargetSuccessRate)

	// Background import pipeline
	loader := vocab.NewLoader(cfg.VocabDir)
	importPool := worker.NewPool(cfg.ImportWorkerCount, cfg.ImportQueueSize)
	jobQueue := jobs.NewWorkerQueue(importPool, loader, vocabRepo)

	var source vocabsource.ClientInterface
	if cfg.VocabSourceURL != "" {
		source = vocabsource.New(cfg.VocabSourceURL)
	}

	// Services
	userService := services.NewUserService(userRepo)
	studyService := services.NewStudyService(userRepo, vocabRepo, recordRepo, sessionRepo, notebookRepo, statsRepo, engine, adapter, builder, cfg.MaxNewPerSession, cfg.MaxReviewPerSession)
	quizService := services.NewQuizService(userRepo, vocabRepo, adapter)
	vocabService := services.NewVocabService(vocabRepo, loader, source, jobQueue)

	srv := &api.Server{
		DB:                  database,
		Users:               userService,
		Study:               studyService,
		Quiz:                quizService,
		Vocabs:              vocabService,
		ImportPool:          importPool,
		MaxNewPerSession:    cfg.MaxNewPerSession,
		MaxReviewPerSession: cfg.MaxReviewPerSession,
		ForecastDays:        cfg.ForecastDays,
	}

	ctx, cancel := context.WithCancel(context.Background())
	importPool.Start(ctx)

	// Review reminder
	reminder := scheduler.New(userRepo, recordRepo, engine, time.Duration(cfg.ReminderIntervalMinutes)*time.Minute)
	if err := reminder.Start(); err != nil {
		log.Error("failed to start review reminder: %v", err)
		os.Exit(1)
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Cancel worker context
	log.Debug("stopping background workers")
	cancel()

	// Shutdown HTTP server
	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping review reminder")
	reminder.Stop()

	log.Debug("stopping import pool")
	importPool.Stop()

	log.Info("===========================================")
	log.Info("VocabFlash Server Stopped")
	log.Info("===========================================")
}
