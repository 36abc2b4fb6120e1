package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"eventhub/internal/config"
	"eventhub/internal/kafka"
	"eventhub/internal/logger"
	"eventhub/internal/models"
)

// The notifier consumes the notification topics and delivers to the
// recipient. Actual email/push delivery is a stub: each notification is
// logged where a mail client call would go.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.NewLogger("notifier")
	defer log.Close()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, []string{
		cfg.Kafka.Topics.ApplicationDecided,
		cfg.Kafka.Topics.BookingConfirmed,
		cfg.Kafka.Topics.BookingCheckedIn,
	}, cfg.Kafka.GroupID)
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("NOTIFIER", "Shutdown signal received")
		cancel()
	}()

	log.Info("NOTIFIER", "Notification worker started")
	consumer.Start(ctx, func(n models.Notification) {
		switch n.Type {
		case models.NotifyApplicationDecided:
			log.Info("NOTIFIER", fmt.Sprintf(
				"Would email volunteer %s: application %s for event %s was %s",
				n.RecipientID, n.ApplicationID, n.EventID, n.Decision))
		case models.NotifyBookingConfirmed:
			log.Info("NOTIFIER", fmt.Sprintf(
				"Would email attendee %s: booking %s for event %s confirmed",
				n.RecipientID, n.BookingID, n.EventID))
		case models.NotifyBookingCheckedIn:
			log.Info("NOTIFIER", fmt.Sprintf(
				"Would email attendee %s: checked in to event %s",
				n.RecipientID, n.EventID))
		default:
			log.Warn("NOTIFIER", fmt.Sprintf("Unknown notification type: %s", n.Type))
		}
	})

	log.Info("NOTIFIER", "Notification worker stopped")
}
