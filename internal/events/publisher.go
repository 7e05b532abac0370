package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"checkout-core/internal/model"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// MessageWriter is the subset of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// PurchasePublisher is a BuyBookProcess that publishes PurchaseRecorded events keyed by ISBN.
type PurchasePublisher struct {
	writer MessageWriter
	topic  string
	now    func() time.Time
	logger zerolog.Logger
}

// NewKafkaWriter creates a kafka-go writer for topic.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           100 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
	}
}

// NewPurchasePublisher creates a publisher over writer.
func NewPurchasePublisher(writer MessageWriter, topic string, logger zerolog.Logger) *PurchasePublisher {
	return &PurchasePublisher{
		writer: writer,
		topic:  topic,
		now:    time.Now,
		logger: logger.With().Str("component", "purchase-publisher").Str("topic", topic).Logger(),
	}
}

// BuyBook publishes a PurchaseRecorded event for the purchase.
func (p *PurchasePublisher) BuyBook(ctx context.Context, book model.Book, quantity int) error {
	event := NewPurchaseRecorded(book, quantity, p.now())

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode purchase event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(book.ISBN),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte("PurchaseRecorded")},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error().Err(err).Str("isbn", book.ISBN).Msg("failed to publish purchase event")
		return fmt.Errorf("failed to publish purchase event: %w", err)
	}

	p.logger.Debug().
		Str("event_id", event.EventID.String()).
		Str("isbn", book.ISBN).
		Int("quantity", quantity).
		Msg("purchase event published")

	return nil
}

// Close flushes pending messages and closes the writer.
func (p *PurchasePublisher) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer: %w", err)
	}
	return nil
}
