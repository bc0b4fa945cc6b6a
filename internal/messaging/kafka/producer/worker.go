package producer

import (
	"context"
	"time"

	"github.com/CodiWebSite/poni-connect-sub002/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	batchSize     = 50
	purgeInterval = time.Hour
	purgeAge      = 7 * 24 * time.Hour
)

// ProcessOutboxEvents drains the outbox on every tick until the context
// is cancelled. Delivered rows are purged periodically.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer *kafkago.Writer,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	log := logger.Named("kafka.producer.worker")
	log.Info("outbox worker started", zap.Duration("poll_interval", pollInterval))

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	purge := time.NewTicker(purgeInterval)
	defer purge.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
			if err := drainBatch(ctx, repo, writer, log); err != nil {
				log.Error("drain outbox batch failed", zap.Error(err))
			}
		case <-purge.C:
			deleted, err := repo.PurgeSent(ctx, purgeAge)
			if err != nil {
				log.Error("purge sent outbox events failed", zap.Error(err))
			} else if deleted > 0 {
				log.Info("purged sent outbox events", zap.Int64("deleted", deleted))
			}
		}
	}
}

func drainBatch(ctx context.Context, repo kafka.OutboxRepository, writer *kafkago.Writer, log *zap.Logger) error {
	events, err := repo.ListPending(ctx, batchSize)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	log.Info("processing pending outbox events", zap.Int("count", len(events)))

	for _, event := range events {
		fields := []zap.Field{
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		}

		if err := publishEvent(ctx, writer, event); err != nil {
			log.Error("publish outbox event failed", append(fields, zap.Error(err))...)
			_ = repo.MarkFailed(ctx, event.ID, err.Error())
			continue
		}
		if err := repo.MarkSent(ctx, event.ID); err != nil {
			log.Error("mark outbox sent failed", append(fields, zap.Error(err))...)
			continue
		}
		log.Info("outbox event sent", fields...)
	}

	return nil
}
