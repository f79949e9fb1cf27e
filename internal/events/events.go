package events

import "context"

// Event types published to the shop.events topic.
const (
	TypeCartItemAdded  = "CART_ITEM_ADDED"
	TypeOrderPlaced    = "ORDER_PLACED"
	TypeOrderCancelled = "ORDER_CANCELLED"
)

type Event struct {
	Type          string
	AggregateType string
	AggregateID   string
	Payload       []byte
}

//go:generate mockgen -source=events.go -destination=../mock/events/publisher_mock.go -package=mock
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type nopPublisher struct{}

func (nopPublisher) Publish(ctx context.Context, event Event) error { return nil }

// NewNopPublisher is used when no broker is configured and in tests.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}
