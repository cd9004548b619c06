package producer

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"

	"go-leaveflow/internal/messaging/kafka"
)

// publishEvent relays one outbox row to its topic. The aggregate id is
// the message key so every transition of a leave request lands on the
// same partition and consumers see them in order.
func publishEvent(ctx context.Context, writer *kafkago.Writer, event kafka.OutboxEvent) error {
	msg := kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(event.AggregateID),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "aggregate_type", Value: []byte(event.AggregateType)},
		},
	}
	if event.RequestID != "" {
		msg.Headers = append(msg.Headers, kafkago.Header{
			Key:   "request_id",
			Value: []byte(event.RequestID),
		})
	}

	return writer.WriteMessages(ctx, msg)
}
