package kafka

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"

	"eventhub/internal/models"
)

type Consumer struct {
	reader *kafka.Reader
}

// NewConsumer creates a consumer group over the notification topics.
func NewConsumer(brokers []string, topics []string, groupID string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		GroupTopics: topics,
		GroupID:     groupID,
		MinBytes:    10e3, // 10KB
		MaxBytes:    10e6, // 10MB
	})
	return &Consumer{reader: reader}
}

// Start consumes notifications until ctx is cancelled, invoking handler
// for each one. Malformed messages are logged and skipped.
func (c *Consumer) Start(ctx context.Context, handler func(n models.Notification)) {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("Error reading message: %v", err)
			continue
		}

		var n models.Notification
		if err := json.Unmarshal(msg.Value, &n); err != nil {
			log.Printf("Failed to unmarshal message on %s: %v", msg.Topic, err)
			continue
		}

		handler(n)
	}
}

// Close gracefully shuts down the reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
