package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"ai-docgen-be/internal/pkg/logger"
	"ai-docgen-be/pkg/events"
)

// EventDelivery pushes events to connected clients. Implemented by the
// WebSocket Hub.
type EventDelivery interface {
	Deliver(event events.Event)
}

type IBroadcastService interface {
	Consume(ctx context.Context) error
}

type broadcastService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	delivery  EventDelivery
	logger    logger.ILogger
}

func NewBroadcastService(pubSub *gochannel.GoChannel, topicName string, delivery EventDelivery, log logger.ILogger) IBroadcastService {
	return &broadcastService{
		pubSub:    pubSub,
		topicName: topicName,
		delivery:  delivery,
		logger:    log,
	}
}

// Consume drains the session event topic and forwards every event to the
// delivery layer.
func (bs *broadcastService) Consume(ctx context.Context) error {
	messages, err := bs.pubSub.Subscribe(ctx, bs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			bs.processMessage(msg)
		}
	}()

	return nil
}

func (bs *broadcastService) processMessage(msg *message.Message) {
	var event events.BaseEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		bs.logger.Error("BroadcastService", "failed to unmarshal event", map[string]interface{}{
			"error": err,
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if bs.delivery != nil {
		bs.delivery.Deliver(event)
	}
	msg.Ack()
}
