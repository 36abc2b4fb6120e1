package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"eventhub/internal/config"
	"eventhub/internal/models"
)

// Producer publishes notification messages. Topics come from config so
// the notifier worker and the API agree on names. When kafka is disabled
// the producer is constructed with a nil writer and every publish is a
// no-op, which keeps local development honest about fire-and-forget.
type Producer struct {
	Writer *kafka.Writer
	Topics config.TopicConfig
}

func NewProducer(brokers []string, topics config.TopicConfig) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Balancer: &kafka.LeastBytes{},
	}
	return &Producer{Writer: writer, Topics: topics}
}

func (p *Producer) publish(topic, key string, n models.Notification) error {
	if p.Writer == nil {
		return nil
	}
	msgBytes, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(context.Background(), kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: msgBytes,
	})
}

func (p *Producer) PublishApplicationDecided(n models.Notification) error {
	return p.publish(p.Topics.ApplicationDecided, n.ApplicationID, n)
}

func (p *Producer) PublishBookingConfirmed(n models.Notification) error {
	return p.publish(p.Topics.BookingConfirmed, n.BookingID, n)
}

func (p *Producer) PublishBookingCheckedIn(n models.Notification) error {
	return p.publish(p.Topics.BookingCheckedIn, n.BookingID, n)
}

func (p *Producer) Close() error {
	if p.Writer == nil {
		return nil
	}
	return p.Writer.Close()
}
