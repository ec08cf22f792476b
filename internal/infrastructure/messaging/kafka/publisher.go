package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"

	"github.com/devstore/sales-api/internal/domain/event"
)

// Publisher delivers sale events to a Kafka topic, keyed by sale ID so all
// events for one sale land on the same partition in order.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *log.Entry
}

// NewPublisher creates a Kafka-backed event publisher
func NewPublisher(brokers []string, topic string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll // Wait for all in-sync replicas
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Idempotent = true
	config.Net.MaxOpenRequests = 1 // Required for idempotence

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &Publisher{
		producer: producer,
		topic:    topic,
		logger:   log.WithField("component", "kafka-publisher"),
	}, nil
}

// NewPublisherFromClient builds a publisher around an existing producer.
// Used by tests to inject a mock producer.
func NewPublisherFromClient(producer sarama.SyncProducer, topic string) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
		logger:   log.WithField("component", "kafka-publisher"),
	}
}

// Publish sends the event to the configured topic
func (p *Publisher) Publish(ctx context.Context, ev event.SaleEvent) error {
	eventData, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(ev.SaleID.String()),
		Value:     sarama.ByteEncoder(eventData),
		Timestamp: time.Now(),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.logger.WithError(err).WithFields(log.Fields{
			"topic":      p.topic,
			"event_type": ev.Type,
			"sale_id":    ev.SaleID,
		}).Error("failed to send message to kafka")
		return fmt.Errorf("failed to send message: %w", err)
	}

	p.logger.WithFields(log.Fields{
		"topic":      p.topic,
		"event_type": ev.Type,
		"sale_id":    ev.SaleID,
		"partition":  partition,
		"offset":     offset,
	}).Debug("message sent to kafka")

	return nil
}

// Close closes the underlying producer
func (p *Publisher) Close() error {
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka producer: %w", err)
	}
	return nil
}

// LogPublisher writes events to the application log instead of a broker.
// Used when Kafka is not configured so event flow stays visible locally.
type LogPublisher struct {
	logger *log.Entry
}

// NewLogPublisher creates a log-only event publisher
func NewLogPublisher() *LogPublisher {
	return &LogPublisher{logger: log.WithField("component", "log-publisher")}
}

// Publish logs the event and always succeeds
func (p *LogPublisher) Publish(ctx context.Context, ev event.SaleEvent) error {
	p.logger.WithFields(log.Fields{
		"event_type":   ev.Type,
		"sale_id":      ev.SaleID,
		"sale_number":  ev.SaleNumber,
		"total_amount": ev.TotalAmount,
		"status":       ev.Status,
	}).Info("sale event")
	return nil
}
