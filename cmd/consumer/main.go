package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
)

const groupID = "cake-notification-consumer-group"

// notificationEvent mirrors the payload the outbox publisher writes for every
// status transition.
type notificationEvent struct {
	TrackingCode  string    `json:"tracking_code"`
	FromStatus    string    `json:"from_status"`
	ToStatus      string    `json:"to_status"`
	CustomerPhone string    `json:"customer_phone"`
	CustomerEmail string    `json:"customer_email"`
	Notes         string    `json:"notes"`
	ChangedAt     time.Time `json:"changed_at"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	brokers := getEnv("KAFKA_BROKERS", "localhost:9092")
	topic := getEnv("NOTIFICATION_TOPIC", "cake_notifications")

	log.Println("Starting notification consumer...")

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        strings.Split(brokers, ","),
		GroupID:        groupID,
		Topic:          topic,
		MinBytes:       10e3,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		MaxWait:        3 * time.Second,
	})
	defer func() {
		log.Println("Closing Kafka reader...")
		if err := r.Close(); err != nil {
			log.Printf("Error closing Kafka reader: %v", err)
		}
	}()

	log.Printf("Consumer connected to topic '%s' on brokers %s", topic, brokers)

	for {
		select {
		case <-ctx.Done():
			log.Println("Shutdown signal received, stopping consumer.")
			return
		default:
			m, err := r.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					log.Println("Context cancelled, exiting message loop.")
					return
				}
				log.Printf("Error reading message: %v", err)
				time.Sleep(5 * time.Second)
				continue
			}

			var event notificationEvent
			if err := json.Unmarshal(m.Value, &event); err != nil {
				log.Printf("Skipping malformed notification at offset %d: %v", m.Offset, err)
				continue
			}

			// A real deployment would fan this out to SMS or email. Here the
			// consumer prints the message a customer would receive.
			fmt.Printf("\n--- CAKE NOTIFICATION ---\n")
			fmt.Printf("Order:     %s\n", event.TrackingCode)
			fmt.Printf("Change:    %s -> %s\n", event.FromStatus, event.ToStatus)
			if event.CustomerPhone != "" {
				fmt.Printf("SMS to:    %s\n", event.CustomerPhone)
			}
			if event.CustomerEmail != "" {
				fmt.Printf("Email to:  %s\n", event.CustomerEmail)
			}
			if event.Notes != "" {
				fmt.Printf("Notes:     %s\n", event.Notes)
			}
			fmt.Printf("At:        %s\n", event.ChangedAt.Format(time.RFC3339))
			fmt.Printf("Offset:    %d\n", m.Offset)
			fmt.Println("--- END NOTIFICATION ---")
		}
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
