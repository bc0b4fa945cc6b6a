package notification

import (
	"context"
	"encoding/json"

	"github.com/CodiWebSite/poni-connect-sub002/internal/events"

	"go.uber.org/zap"
)

// Consumer turns leave request lifecycle messages into notifications.
// Dispatch errors are returned so the Kafka reader can decide whether to
// commit the offset.
type Consumer struct {
	service Service
	logger  *zap.Logger
}

func NewConsumer(service Service, logger ...*zap.Logger) *Consumer {
	l := zap.L().Named("notification.consumer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.consumer")
	}
	return &Consumer{service: service, logger: l}
}

func (c *Consumer) HandleLifecycleMessage(ctx context.Context, payload []byte) error {
	var evt events.LeaveRequestLifecycleEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		// poison messages are dropped, replaying them cannot succeed
		c.logger.Error("undecodable lifecycle message", zap.Error(err))
		return nil
	}

	c.logger.Debug("lifecycle message",
		zap.String("event_type", evt.EventType),
		zap.String("request_id", evt.RequestID),
	)

	switch evt.EventType {
	case events.LeaveRequestSubmitted:
		return c.service.NotifySubmitted(ctx, evt)
	case events.LeaveRequestApproved, events.LeaveRequestRejected:
		return c.service.NotifyDecided(ctx, evt)
	default:
		c.logger.Warn("unknown lifecycle event type", zap.String("event_type", evt.EventType))
		return nil
	}
}
