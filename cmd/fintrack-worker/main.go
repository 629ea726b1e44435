package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"fintrack/internal/amqp"
	"fintrack/internal/config"
	"fintrack/internal/email"
	applog "fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/sheets"
	"fintrack/internal/storage"
	"fintrack/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.ComponentWorker)
	applog.SetDefault(logger)

	logger.Info("Starting fintrack-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.ErrAttr(err))
		os.Exit(1)
	}

	repo, err := storage.NewRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository",
			applog.ErrAttr(err), "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	// Remote table store is optional: without it rows simply stay local.
	var remote *sheets.Client
	if cfg.SpreadsheetID != "" {
		remote, err = sheets.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize sheets client", applog.ErrAttr(err))
			os.Exit(1)
		}
		logger.Info("Sheets client initialized", "spreadsheet_id", cfg.SpreadsheetID)
	} else {
		logger.Info("Remote sync disabled - no SPREADSHEET_ID provided")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var syncWorker *worker.SyncWorker
	if remote != nil {
		syncWorker = worker.NewSyncWorker(repo, remote, cfg.SyncBatchSize, logger)

		// Drain anything that queued up while the worker was down.
		logger.Info("Performing startup sync sweep...")
		if err := syncWorker.ProcessPending(ctx); err != nil {
			logger.Error("Startup sync sweep failed", applog.ErrAttr(err))
			// Don't exit - continue with normal operation
		}

		if cfg.AMQPURL != "" {
			amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
			if err != nil {
				logger.Error("Failed to initialize AMQP client", applog.ErrAttr(err))
				os.Exit(1)
			}
			defer amqpClient.Close()

			go func() {
				if err := amqpClient.ConsumeRecordSync(ctx, syncWorker.HandleSyncMessage); err != nil {
					if err != context.Canceled {
						logger.Error("Message consumption failed", applog.ErrAttr(err))
					}
					cancel()
				}
			}()
		} else {
			logger.Info("AMQP disabled - relying on the periodic sweep only")
		}
	} else {
		logger.Info("Skipping sync operations - no remote store available")
	}

	scheduler := cron.New()

	if syncWorker != nil {
		// Periodic sweep catches rows whose queue message was lost.
		_, err := scheduler.AddFunc("@every "+cfg.SyncInterval.String(), func() {
			if err := syncWorker.ProcessPending(ctx); err != nil {
				logger.Error("Periodic sync failed", applog.ErrAttr(err))
			}
		})
		if err != nil {
			logger.Error("Invalid sync interval", applog.ErrAttr(err), "interval", cfg.SyncInterval)
			os.Exit(1)
		}
	}

	// Daily installment reminders by email, on the configured cron spec.
	if cfg.SMTPHost != "" && cfg.ReminderTo != "" {
		sender := email.NewSender(cfg, logger)
		reminders := services.NewReminderService(repo, sender, cfg.ReminderDays, logger)

		_, err := scheduler.AddFunc(cfg.ReminderCron, func() {
			sent, err := reminders.Run(ctx, time.Now())
			if err != nil {
				logger.Error("Reminder run failed", applog.ErrAttr(err))
				return
			}
			logger.Info("Reminder run complete", applog.FieldCount, sent)
		})
		if err != nil {
			logger.Error("Invalid reminder cron spec",
				applog.ErrAttr(err), "spec", cfg.ReminderCron)
			os.Exit(1)
		}
		logger.Info("Reminders scheduled", "spec", cfg.ReminderCron, "window_days", cfg.ReminderDays)
	} else {
		logger.Info("Reminders disabled - SMTP_HOST or REMINDER_TO not set")
	}

	scheduler.Start()
	defer scheduler.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	logger.Info("Shutting down worker...")
	cancel()

	// Give in-flight handlers a moment to settle before exiting.
	time.Sleep(2 * time.Second)
	logger.Info("Worker shutdown complete")
}
