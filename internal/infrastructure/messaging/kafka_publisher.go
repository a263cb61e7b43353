package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"

	"github.com/segmentio/kafka-go"
)

// KafkaAlertPublisher writes alert events to a Kafka topic keyed by alert id.
type KafkaAlertPublisher struct {
	writer *kafka.Writer
}

func NewKafkaAlertPublisher(brokers []string, topic string) *KafkaAlertPublisher {
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers:      brokers,
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: int(kafka.RequireOne),
	})
	return &KafkaAlertPublisher{writer: writer}
}

func (p *KafkaAlertPublisher) Publish(ctx context.Context, event entity.AlertEvent) error {
	msg, err := alertMessage(event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write alert %d to kafka: %w", event.AlertID, err)
	}
	return nil
}

func (p *KafkaAlertPublisher) Close() error {
	return p.writer.Close()
}

func alertMessage(event entity.AlertEvent) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal alert event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(strconv.Itoa(event.AlertID)),
		Value: value,
		Time:  event.PublishedAt,
		Headers: []kafka.Header{
			{Key: "severity", Value: []byte(event.Severity)},
			{Key: "alert_type", Value: []byte(event.AlertType)},
		},
	}, nil
}
