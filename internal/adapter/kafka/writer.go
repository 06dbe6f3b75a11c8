// Package kafka publishes prediction audit records to a Kafka topic.
// Publishing is optional and best-effort: the prediction API never blocks on
// or fails because of the audit stream.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/airsight/pm25-forecast/internal/config"
	"github.com/airsight/pm25-forecast/internal/predict"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces audit records to the configured Kafka topic.
// It implements predict.AuditPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured audit topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaAuditTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishPrediction serializes and publishes one audit record.
func (w *Writer) PublishPrediction(ctx context.Context, rec predict.AuditRecord) error {
	msg, err := serializeToMessage(rec)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an audit record into a Kafka message. The key
// is the generation timestamp so records from one burst spread across
// partitions deterministically.
func serializeToMessage(rec predict.AuditRecord) (kafkago.Message, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize audit record: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(rec.GeneratedAt.Format(time.RFC3339Nano)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "category", Value: []byte(rec.Category)},
			{Key: "generated_at", Value: []byte(rec.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
