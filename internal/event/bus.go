package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/oklog/ulid/v2"
	"github.com/sourcegraph/conc/panics"
)

type PubSub interface {
	message.Publisher
	message.Subscriber
}

// EventBus manages event publishing and subscription. Topics are event
// types; delivery is in-process via watermill's gochannel pub/sub.
type EventBus struct {
	pubSub PubSub
	router *message.Router
	logger watermill.LoggerAdapter
}

// EventHandler is a function that handles typed events
type EventHandler[T any] func(ctx context.Context, event *Event[T]) error

// NewEventBus creates a new event bus
func NewEventBus() (*EventBus, error) {
	logger := watermill.NewStdLogger(false, false)

	pubSub := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer: 256,
		},
		logger,
	)

	router, err := message.NewRouter(message.RouterConfig{}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create router: %w", err)
	}

	return &EventBus{
		pubSub: pubSub,
		router: router,
		logger: logger,
	}, nil
}

// Start runs the router until ctx is cancelled. Subscriptions must be
// registered before Start.
func (eb *EventBus) Start(ctx context.Context) error {
	go func() {
		if err := eb.router.Run(ctx); err != nil {
			eb.logger.Error("router stopped", err, nil)
		}
	}()
	return nil
}

// Running returns a channel closed once the router handles messages.
func (eb *EventBus) Running() <-chan struct{} {
	return eb.router.Running()
}

// Stop stops the event bus
func (eb *EventBus) Stop() error {
	return eb.router.Close()
}

// Publish serializes the payload into an EventMessage envelope and
// publishes it on the topic inferred from the payload type.
func (eb *EventBus) Publish(ctx context.Context, source string, data any) error {
	rawData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}
	eventMsg := &EventMessage{
		ID:        ulid.Make().String(),
		Type:      inferEventType(data),
		Timestamp: time.Now(),
		Source:    source,
		Data:      rawData,
	}

	payload, err := json.Marshal(eventMsg)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)

	if err := eb.pubSub.Publish(string(eventMsg.Type), msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// SubscribeAsync registers a handler for one event type. A panicking
// handler is recovered and surfaced as an error so one bad subscriber
// cannot take down the router.
func (eb *EventBus) SubscribeAsync(eventType EventType, handlerName string, handler func(msg *EventMessage) error) error {
	eb.router.AddNoPublisherHandler(
		handlerName,
		string(eventType),
		eb.pubSub,
		func(msg *message.Message) error {
			var eventMsg EventMessage
			if err := json.Unmarshal(msg.Payload, &eventMsg); err != nil {
				return fmt.Errorf("failed to unmarshal event message: %w", err)
			}

			var catcher panics.Catcher
			var err error
			catcher.Try(func() {
				err = handler(&eventMsg)
			})
			if err != nil {
				return err
			}
			return catcher.Recovered().AsError()
		},
	)

	return nil
}

// SubscribeTyped subscribes a typed handler (helper function)
func SubscribeTyped[T any](eb *EventBus, eventType EventType, handlerName string, handler EventHandler[T]) error {
	return eb.SubscribeAsync(eventType, handlerName, func(msg *EventMessage) error {
		e, err := FromMessage[T](msg)
		if err != nil {
			return fmt.Errorf("failed to convert message to event: %w", err)
		}
		return handler(context.Background(), e)
	})
}
