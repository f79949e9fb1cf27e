package producer

import (
	"context"

	"github.com/segmentio/kafka-go"

	"github.com/sanketpawarr68-jpg/gavran-magic/internal/events"
)

type Publisher struct {
	writer *kafka.Writer
}

func New(writer *kafka.Writer) *Publisher {
	return &Publisher{writer: writer}
}

func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	msg := kafka.Message{
		Key:   []byte(event.AggregateID),
		Value: event.Payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "aggregate_type", Value: []byte(event.AggregateType)},
		},
	}

	return p.writer.WriteMessages(ctx, msg)
}
