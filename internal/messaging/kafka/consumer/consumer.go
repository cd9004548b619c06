package consumer

import (
	"context"
	"encoding/json"
	"errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-leaveflow/internal/events"
	"go-leaveflow/internal/notification"
)

// ConsumeLeaveDecisions reads decision events off the leave decision
// topic and records each as a pending notification. Offsets commit only
// after the record lands, so a crash replays the message; the unique
// constraint on the notification table absorbs the replay.
func ConsumeLeaveDecisions(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_decision")
	log.Info("leave decision consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave decision consumer stopped")
				return
			}
			log.Error("fetch leave decision message failed", zap.Error(err))
			continue
		}

		var event events.LeaveDecisionEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave decision event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := notificationService.RecordDecision(ctx, event); err != nil {
			if errors.Is(err, notification.ErrAlreadyRecorded) {
				log.Warn("leave decision already recorded, skipping",
					zap.String("request_id", event.RequestID),
					zap.String("event_type", event.EventType),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("record leave decision failed",
				zap.String("request_id", event.RequestID),
				zap.String("event_type", event.EventType),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave decision message failed", zap.Error(err))
			continue
		}

		log.Info("leave decision consumed",
			zap.String("request_id", event.RequestID),
			zap.String("event_type", event.EventType),
			zap.String("status", string(event.Status)),
		)
	}
}
