package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/CodiWebSite/poni-connect-sub002/internal/auth"
	"github.com/CodiWebSite/poni-connect-sub002/internal/department"
	"github.com/CodiWebSite/poni-connect-sub002/internal/events"
	"github.com/CodiWebSite/poni-connect-sub002/internal/notification"
	"github.com/CodiWebSite/poni-connect-sub002/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer reads lifecycle events off Kafka and turns them into
// notifications.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

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

	notificationService := notification.NewService(
		notification.NewRepository(gormDB),
		auth.NewRepository(gormDB),
		department.NewRepository(gormDB),
		buildMailer(),
	)
	consumer := notification.NewConsumer(notificationService)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.LeaveRequestLifecycleTopic,
		GroupID:        "portal-notifications",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumeLifecycle(ctx, reader, consumer, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}

func consumeLifecycle(ctx context.Context, reader *kafkago.Reader, consumer *notification.Consumer, logger *zap.Logger) {
	log := logger.Named("kafka.consumer.leave_request_lifecycle")
	log.Info("leave request lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave request lifecycle consumer stopped")
				return
			}
			log.Error("fetch lifecycle message failed", zap.Error(err))
			continue
		}

		if err := consumer.HandleLifecycleMessage(ctx, msg.Value); err != nil {
			// leave the offset uncommitted so the message is retried
			log.Error("handle lifecycle message failed", zap.Error(err))
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit lifecycle message failed", zap.Error(err))
		}
	}
}
