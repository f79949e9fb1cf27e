package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/sanketpawarr68-jpg/gavran-magic/internal/app"
	"github.com/sanketpawarr68-jpg/gavran-magic/internal/events"
)

// The notifier tails shop.events and turns order events into shopper
// notifications. Delivery is just a log line until an SMS gateway lands.

type orderPayload struct {
	UserID     string  `json:"user_id"`
	OrderID    string  `json:"order_id"`
	TotalPrice float64 `json:"total_price"`
	Reason     string  `json:"reason"`
}

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()
	logger = logger.Named("notifier")

	broker := os.Getenv("KAFKA_BROKER")
	if broker == "" {
		logger.Fatal("KAFKA_BROKER is required")
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{broker},
		Topic:   app.EventsTopic,
		GroupID: "notifier-group",
	})
	defer reader.Close()
	logger.Info("kafka reader initialized", zap.String("broker", broker))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumeMessages(ctx, reader, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	cancel()
}

func consumeMessages(ctx context.Context, reader *kafka.Reader, logger *zap.Logger) {
	logger.Info("started consuming messages")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("error fetching message", zap.Error(err))
			continue
		}

		eventType := getHeader(msg.Headers, "event_type")

		switch eventType {
		case events.TypeOrderPlaced, events.TypeOrderCancelled:
			if err := notify(eventType, msg.Value, logger); err != nil {
				logger.Error("error handling event", zap.String("event_type", eventType), zap.Error(err))
				continue
			}
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			logger.Error("error committing message", zap.Error(err))
		}
	}
}

func notify(eventType string, payload []byte, logger *zap.Logger) error {
	var data orderPayload
	if err := json.Unmarshal(payload, &data); err != nil {
		return err
	}

	logger.Info("notifying shopper",
		zap.String("event_type", eventType),
		zap.String("user_id", data.UserID),
		zap.String("order_id", data.OrderID),
	)
	return nil
}

func getHeader(headers []kafka.Header, key string) string {
	for _, h := range headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
