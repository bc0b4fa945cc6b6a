package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CodiWebSite/poni-connect-sub002/internal/auth"
	"github.com/CodiWebSite/poni-connect-sub002/internal/department"
	"github.com/CodiWebSite/poni-connect-sub002/internal/employee"
	"github.com/CodiWebSite/poni-connect-sub002/internal/leaverequest"
	"github.com/CodiWebSite/poni-connect-sub002/internal/messaging/kafka"
	"github.com/CodiWebSite/poni-connect-sub002/internal/messaging/kafka/producer"
	"github.com/CodiWebSite/poni-connect-sub002/internal/notification"
	"github.com/CodiWebSite/poni-connect-sub002/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker hosts the outbox publisher and the daily reminder sweep in
// one process.
func RunWorker() error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	sweeper := notification.NewReminderSweeper(
		leaverequest.NewRepository(gormDB),
		employee.NewRepository(gormDB),
		department.NewRepository(gormDB),
		auth.NewRepository(gormDB),
		notification.NewRepository(gormDB),
		buildMailer(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		3*time.Second,
	)

	go runReminderLoop(ctx, sweeper, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}

// runReminderLoop sweeps once at startup and then every 24 hours. The
// sweep itself dedups per day, so a restart never double-notifies.
func runReminderLoop(ctx context.Context, sweeper *notification.ReminderSweeper, logger *zap.Logger) {
	if err := sweeper.Run(ctx); err != nil {
		logger.Error("reminder sweep failed", zap.Error(err))
	}

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := sweeper.Run(ctx); err != nil {
				logger.Error("reminder sweep failed", zap.Error(err))
			}
		}
	}
}
