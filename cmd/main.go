package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/buttercrumb/cakeflow/internal/config"
	"github.com/buttercrumb/cakeflow/internal/db"
	"github.com/buttercrumb/cakeflow/internal/kafka"
	"github.com/buttercrumb/cakeflow/internal/logger"
	"github.com/buttercrumb/cakeflow/internal/order"
	"github.com/buttercrumb/cakeflow/internal/quote"
	"github.com/buttercrumb/cakeflow/internal/receipt"
	"github.com/buttercrumb/cakeflow/internal/repository/postgresql"
	"github.com/buttercrumb/cakeflow/internal/schedule"
	"github.com/buttercrumb/cakeflow/internal/server"
	"github.com/buttercrumb/cakeflow/internal/session"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zlog := logger.New()
	defer func() { _ = zlog.Sync() }()

	cfg := config.Load()

	database, err := db.NewDb(ctx, cfg)
	if err != nil {
		fmt.Println("Database init error:", err)
		return
	}
	defer database.GetPool().Close()

	requestRepo := postgresql.NewRequestRepo(database)
	historyRepo := postgresql.NewHistoryRepo(database)
	receiptRepo := postgresql.NewReceiptRepo(database)
	sessionRepo := postgresql.NewSessionRepo(database)
	outboxRepo := postgresql.NewOutboxTaskRepo()
	userRepo := postgresql.NewUserRepo(database)

	if err := userRepo.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		zlog.Fatal("Failed to ensure admin user", zap.Error(err))
	}

	machine := order.NewMachine(database, requestRepo, historyRepo, outboxRepo, cfg.NotificationTopic, zlog)
	calculator := quote.NewCalculator(quote.DefaultRates())
	orderService := order.NewService(database, machine, requestRepo, historyRepo, receiptRepo, calculator, zlog)
	ledger := receipt.NewLedger(database, machine, requestRepo, receiptRepo, zlog)
	scheduler := schedule.NewScheduler(machine, requestRepo, &schedule.MaxPerDayPolicy{
		Requests:  requestRepo,
		MaxPerDay: cfg.MaxPickupsPerDay,
	}, zlog)

	broker := session.NewBroker(sessionRepo, cfg.SessionTTL, cfg.EditorBaseURL, cfg.SessionSweep, zlog)

	producer := newProducer(cfg)
	publisher := kafka.NewPublisher(database, outboxRepo, producer, kafka.PublisherConfig{
		PollInterval: cfg.OutboxPollInterval,
		BatchSize:    cfg.OutboxBatchSize,
		MaxAttempts:  cfg.OutboxMaxAttempts,
	})

	srv := server.New(broker, orderService, ledger, scheduler, userRepo, zlog)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx, cfg.HTTPPort)
	})
	g.Go(func() error {
		broker.RunSweeper(gctx)
		return nil
	})
	g.Go(func() error {
		publisher.Run(gctx)
		return nil
	})

	zlog.Info("cakeflow started", zap.String("port", cfg.HTTPPort))

	<-gctx.Done()
	zlog.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Server shutdown failed", zap.Error(err))
	}
	broker.Shutdown()
	publisher.Shutdown()

	if err := g.Wait(); err != nil {
		zlog.Error("Background worker failed", zap.Error(err))
	}

	zlog.Info("Stopped")
}

func newProducer(cfg config.Config) kafka.Producer {
	if os.Getenv("KAFKA_CONSOLE") == "true" {
		return kafka.NewConsoleProducer()
	}
	return kafka.NewWriterProducer(cfg.KafkaBrokers)
}
