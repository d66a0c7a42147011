package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Publisher defines the interface for publishing interview lifecycle events
type Publisher interface {
	PublishInterviewEvent(ctx context.Context, event *InterviewEvent) error
	Close() error
}

// KafkaPublisher implements Publisher using Watermill with Kafka
type KafkaPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
	topicName string
}

// PublisherConfig holds configuration for the event publisher
type PublisherConfig struct {
	KafkaBrokers []string
	TopicName    string
	Logger       *slog.Logger
}

// NewKafkaPublisher creates a new Kafka-based event publisher using Watermill
func NewKafkaPublisher(config PublisherConfig) (*KafkaPublisher, error) {
	logger := watermill.NewSlogLogger(config.Logger)

	publisherConfig := kafka.PublisherConfig{
		Brokers:   config.KafkaBrokers,
		Marshaler: kafka.DefaultMarshaler{},
	}

	publisher, err := kafka.NewPublisher(publisherConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka publisher: %w", err)
	}

	return &KafkaPublisher{
		publisher: publisher,
		logger:    config.Logger,
		topicName: config.TopicName,
	}, nil
}

// PublishInterviewEvent publishes an interview lifecycle event to Kafka
func (p *KafkaPublisher) PublishInterviewEvent(ctx context.Context, event *InterviewEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal interview event: %w", err)
	}

	msg := message.NewMessage(event.ID, eventBytes)
	msg.Metadata.Set("event_type", string(event.Type))
	msg.Metadata.Set("source", event.Source)
	msg.Metadata.Set("version", event.Version)
	msg.Metadata.Set("timestamp", event.Timestamp.Format(time.RFC3339))

	if err := p.publisher.Publish(p.topicName, msg); err != nil {
		p.logger.Error("Failed to publish interview event",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err)
		return fmt.Errorf("failed to publish interview event: %w", err)
	}

	p.logger.Info("Published interview event",
		"event_id", event.ID,
		"event_type", event.Type,
		"topic", p.topicName)

	return nil
}

// Close closes the publisher and releases resources
func (p *KafkaPublisher) Close() error {
	return p.publisher.Close()
}

// MockPublisher is a mock implementation for testing
type MockPublisher struct {
	Events []InterviewEvent
	Logger *slog.Logger
}

// NewMockPublisher creates a new mock event publisher
func NewMockPublisher(logger *slog.Logger) *MockPublisher {
	return &MockPublisher{
		Events: make([]InterviewEvent, 0),
		Logger: logger,
	}
}

// PublishInterviewEvent stores the event in memory (for testing)
func (m *MockPublisher) PublishInterviewEvent(ctx context.Context, event *InterviewEvent) error {
	m.Events = append(m.Events, *event)
	m.Logger.Debug("Mock: Published interview event",
		"event_id", event.ID,
		"event_type", event.Type)
	return nil
}

// Close is a no-op for the mock publisher
func (m *MockPublisher) Close() error {
	return nil
}

// PublishedEvents returns all published events (for testing)
func (m *MockPublisher) PublishedEvents() []InterviewEvent {
	return m.Events
}

// ClearEvents clears all published events (for testing)
func (m *MockPublisher) ClearEvents() {
	m.Events = make([]InterviewEvent, 0)
}
