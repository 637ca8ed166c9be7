package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// Event types published for downstream collaborators (rendering and export
// pipelines consume these instead of polling the API).
const (
	EventCatalogIngested    = "catalog.ingested"
	EventCatalogRegenerated = "catalog.regenerated"
	EventStocktakeVerified  = "stocktake.verified"
	EventStocktakeReset     = "stocktake.reset"
)

// StockEvent is the wire payload for warehouse activity.
type StockEvent struct {
	Type      string                 `json:"type"`
	Key       string                 `json:"key"`
	Timestamp time.Time              `json:"timestamp"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
}

type EventProducer interface {
	PublishStockEvent(ctx context.Context, event *StockEvent) error
	Close() error
}

type kafkaProducer struct {
	writer *kafka.Writer
}

// NewKafkaProducer builds a producer against the given brokers and topic.
func NewKafkaProducer(brokers []string, topic string) EventProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Compression:  kafka.Snappy,
	}

	return &kafkaProducer{writer: writer}
}

func (p *kafkaProducer) PublishStockEvent(ctx context.Context, event *StockEvent) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal stock event: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(event.Key),
		Value: eventJSON,
		Time:  event.Timestamp,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write stock event to kafka: %w", err)
	}

	return nil
}

func (p *kafkaProducer) Close() error {
	return p.writer.Close()
}

// noopProducer keeps the core single-process when no brokers are configured.
type noopProducer struct{}

func NewNoopProducer() EventProducer { return noopProducer{} }

func (noopProducer) PublishStockEvent(context.Context, *StockEvent) error { return nil }
func (noopProducer) Close() error                                         { return nil }
