package service

import (
	"context"
	"encoding/json"
	"time"

	"notefiber-editor/internal/dto"
	"notefiber-editor/internal/pkg/logger"
	"notefiber-editor/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

const (
	consumerModule = "NoteChangeConsumer"
	forwardTimeout = 5 * time.Second
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// EventPublisher forwards domain events off-process. *nats.Publisher satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type consumerService struct {
	subscriber     message.Subscriber
	topicName      string
	eventPublisher EventPublisher
	logger         logger.ILogger
}

// NewConsumerService wires the change consumer. eventPublisher may be nil, in
// which case changes are only logged.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	eventPublisher EventPublisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:     subscriber,
		topicName:      topicName,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var payload dto.NoteChangedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error(consumerModule, "Failed to unmarshal message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	cs.logger.Info(consumerModule, "Note changed", map[string]interface{}{
		"note_id": payload.NoteId,
		"type":    payload.Type,
	})

	if cs.eventPublisher == nil {
		return
	}

	evt := events.BaseEvent{
		Type: payload.Type,
		Data: map[string]interface{}{
			"note_id": payload.NoteId,
			"title":   payload.Title,
		},
		OccurredAt: payload.OccurredAt,
	}
	pubCtx, cancel := context.WithTimeout(ctx, forwardTimeout)
	defer cancel()
	if err := cs.eventPublisher.Publish(pubCtx, evt); err != nil {
		cs.logger.Warn(consumerModule, "Failed to forward event", map[string]interface{}{
			"note_id": payload.NoteId,
			"type":    payload.Type,
			"error":   err.Error(),
		})
	}
}
