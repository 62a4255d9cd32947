package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

const TopicInteractions = "career.interactions"

// InteractionEvent is the payload published for every recorded interaction.
type InteractionEvent struct {
	InteractionID uint      `json:"interaction_id"`
	UserID        uint      `json:"user_id"`
	Type          string    `json:"type"`
	TargetType    string    `json:"target_type"`
	TargetID      uint      `json:"target_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// EventPublisher pushes domain events to the message broker.
type EventPublisher interface {
	PublishInteraction(ctx context.Context, event *InteractionEvent) error
	Close() error
}

// ===== KAFKA PUBLISHER =====

type kafkaEventPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
}

// NewKafkaEventPublisher creates a publisher backed by a Kafka cluster.
func NewKafkaEventPublisher(brokers []string, logger *slog.Logger) (EventPublisher, error) {
	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}

	return &kafkaEventPublisher{
		publisher: publisher,
		logger:    logger,
	}, nil
}

func (p *kafkaEventPublisher) PublishInteraction(ctx context.Context, event *InteractionEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal interaction event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)

	if err := p.publisher.Publish(TopicInteractions, msg); err != nil {
		return fmt.Errorf("failed to publish interaction event: %w", err)
	}

	p.logger.Debug("Published interaction event",
		"interaction_id", event.InteractionID,
		"type", event.Type,
		"target_type", event.TargetType)

	return nil
}

func (p *kafkaEventPublisher) Close() error {
	return p.publisher.Close()
}

// ===== MOCK PUBLISHER =====

// MockEventPublisher records events in memory. Used in tests and as the
// fallback when no broker is configured.
type MockEventPublisher struct {
	logger *slog.Logger

	mu     sync.Mutex
	events []*InteractionEvent
}

func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{logger: logger}
}

func (p *MockEventPublisher) PublishInteraction(_ context.Context, event *InteractionEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)
	p.logger.Debug("Recorded interaction event (no broker)",
		"interaction_id", event.InteractionID,
		"type", event.Type)

	return nil
}

// GetPublishedEvents returns a copy of everything published so far.
func (p *MockEventPublisher) GetPublishedEvents() []*InteractionEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]*InteractionEvent, len(p.events))
	copy(out, p.events)
	return out
}

func (p *MockEventPublisher) Close() error {
	return nil
}
