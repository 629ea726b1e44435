package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"fintrack/internal/amqp"
	"fintrack/internal/config"
	apphttp "fintrack/internal/http"
	applog "fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/storage"
	"fintrack/internal/store"
	"fintrack/internal/store/memory"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.ComponentApp)
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.ErrAttr(err))
		os.Exit(1)
	}

	var (
		incomeStore  store.IncomeStore
		expenseStore store.ExpenseStore
	)

	switch cfg.DataBackend {
	case "sqlite":
		repo, err := storage.NewRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite repository",
				applog.ErrAttr(err), "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer repo.Close()
		incomeStore, expenseStore = repo, repo
		logger.Info("Initialized SQLite backend", "path", cfg.SQLiteDBPath)
	default:
		st := memory.New()
		incomeStore, expenseStore = st, st
		logger.Info("Initialized memory backend")
	}

	// The sync queue is optional: without it rows stay local until the
	// worker's periodic sweep picks them up.
	var queue services.SyncPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", applog.ErrAttr(err))
			os.Exit(1)
		}
		defer client.Close()
		queue = client
		logger.Info("AMQP sync queue connected", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	incomes := services.NewIncomeService(incomeStore, queue, logger)
	expenses := services.NewExpenseService(expenseStore, queue, logger)
	reports := services.NewReportService(incomeStore, expenseStore, logger)

	srv := apphttp.NewServer(":"+cfg.Port, incomes, expenses, reports, logger)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.ErrAttr(err))
		}
		cancel()
	}()

	logger.Info("Starting fintrack server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.ErrAttr(err), "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
