package tracking

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sanketpawarr68-jpg/gavran-magic/internal/events"
	"github.com/sanketpawarr68-jpg/gavran-magic/internal/geo"
	"github.com/sanketpawarr68-jpg/gavran-magic/internal/order"
)

// session is the tracking state for one order id. Fetch and cancel are not
// serialized with each other, so every load carries a tag and a completion
// whose tag is stale gets discarded. A slow fetch can never overwrite the
// state a newer completed cancel produced, and sessions for different
// orders never interfere.
type session struct {
	mu      sync.Mutex
	seq     uint64
	current *order.Order
}

// Coordinator drives order tracking: it fetches orders, derives the
// progress view, cancels, and builds the map route. State is scoped per
// order id, concurrent shoppers tracking different orders do not share it.
type Coordinator struct {
	orders    order.Client
	router    geo.Router
	locator   geo.Locator
	geocoder  *geo.Geocoder
	publisher events.Publisher
	logger    *zap.Logger
	source    geo.Coord
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

type Deps struct {
	Orders    order.Client
	Router    geo.Router
	Locator   geo.Locator
	Geocoder  *geo.Geocoder
	Publisher events.Publisher
	Logger    *zap.Logger

	// fixed dispatch origin shown on the map
	Source geo.Coord
	Now    func() time.Time
}

func NewCoordinator(deps Deps) *Coordinator {
	if deps.Orders == nil {
		panic("order client cannot be nil")
	}
	if deps.Locator == nil {
		deps.Locator = geo.NewDeniedLocator()
	}
	if deps.Publisher == nil {
		deps.Publisher = events.NewNopPublisher()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	return &Coordinator{
		orders:    deps.Orders,
		router:    deps.Router,
		locator:   deps.Locator,
		geocoder:  deps.Geocoder,
		publisher: deps.Publisher,
		logger:    deps.Logger.Named("tracking.coordinator"),
		source:    deps.Source,
		now:       deps.Now,
		sessions:  make(map[string]*session),
	}
}

func (c *Coordinator) session(orderID string) *session {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[orderID]
	if !ok {
		s = &session{}
		c.sessions[orderID] = s
	}
	return s
}

func (c *Coordinator) view(o order.Order) TrackingResponse {
	res := TrackingResponse{
		Order:     o,
		Steps:     order.Steps(),
		StepIndex: order.StepIndex(o.Status),
	}
	if !order.IsTerminal(o.Status) {
		res.EstimatedDelivery = order.EstimatedDelivery(o.CreatedAt, c.now()).Format("2006-01-02")
	}
	return res
}

// LoadOrder fetches the order record. Success replaces the cached copy for
// this id; failure clears the stale "found" state so the shopper can
// correct the id and retry.
func (c *Coordinator) LoadOrder(ctx context.Context, orderID string) (TrackingResponse, error) {
	s := c.session(orderID)

	s.mu.Lock()
	s.seq++
	tag := s.seq
	s.mu.Unlock()

	o, err := c.orders.Get(ctx, orderID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if tag != s.seq {
		return TrackingResponse{}, ErrRequestSuperseded
	}

	if err != nil {
		s.current = nil
		return TrackingResponse{}, err
	}

	s.current = &o
	return c.view(o), nil
}

// Cancel transitions the given order to Cancelled. The guard runs on the
// cached copy: an unloaded order is rejected, a terminal order is rejected
// locally and the network is never asked.
func (c *Coordinator) Cancel(ctx context.Context, orderID, reason string) (TrackingResponse, error) {
	if reason == "" {
		return TrackingResponse{}, ErrReasonRequired
	}

	s := c.session(orderID)

	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return TrackingResponse{}, ErrNoOrderLoaded
	}
	if !order.CanCancel(s.current.Status) {
		s.mu.Unlock()
		return TrackingResponse{}, order.ErrOrderNotCancellable
	}
	s.mu.Unlock()

	if err := c.orders.Cancel(ctx, orderID, reason); err != nil {
		// nothing changed locally, the order keeps its prior state
		return TrackingResponse{}, err
	}

	// the cancel completed: supersede any in-flight fetch for this order so
	// a stale pre-cancel snapshot cannot come back, then refresh our copy
	s.mu.Lock()
	s.seq++
	s.mu.Unlock()

	c.publishOrderCancelled(ctx, orderID, reason)

	return c.LoadOrder(ctx, orderID)
}

func (c *Coordinator) publishOrderCancelled(ctx context.Context, orderID, reason string) {
	payload, _ := json.Marshal(map[string]string{
		"order_id": orderID,
		"reason":   reason,
	})

	if err := c.publisher.Publish(ctx, events.Event{
		Type:          events.TypeOrderCancelled,
		AggregateType: "order",
		AggregateID:   orderID,
		Payload:       payload,
	}); err != nil {
		c.logger.Warn("failed to publish order cancelled event",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
	}
}

// RecentOrders is a convenience for the quick-pick list; failures are
// logged and swallowed, never surfaced.
func (c *Coordinator) RecentOrders(ctx context.Context, userID string) []order.Order {
	orders, err := c.orders.ListByUser(ctx, userID)
	if err != nil {
		c.logger.Warn("failed to fetch recent orders",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return []order.Order{}
	}
	if orders == nil {
		orders = []order.Order{}
	}
	return orders
}

// BuildRoute asks the routing collaborator for a driving path and degrades
// to the direct two-point line on any failure. It never errors.
func (c *Coordinator) BuildRoute(ctx context.Context, dst geo.Coord) []geo.Coord {
	if c.router == nil {
		return []geo.Coord{c.source, dst}
	}

	path, err := c.router.Route(ctx, c.source, dst)
	if err != nil || len(path) == 0 {
		if err != nil {
			c.logger.Warn("routing failed, falling back to straight line", zap.Error(err))
		}
		return []geo.Coord{c.source, dst}
	}
	return path
}

// ResolveUserLocation asks the locator for the shopper's position, builds
// the route to it and reverse-geocodes the address label. Denial leaves
// everything unset; a failed reverse lookup just leaves the label empty.
func (c *Coordinator) ResolveUserLocation(ctx context.Context) (geo.Coord, []geo.Coord, geo.Place, error) {
	pos, err := c.locator.Current(ctx)
	if err != nil {
		return geo.Coord{}, nil, geo.Place{}, geo.ErrLocationUnavailable
	}

	var place geo.Place
	if c.geocoder != nil {
		if p, err := c.geocoder.Reverse(ctx, pos); err == nil {
			place = p
		}
	}

	return pos, c.BuildRoute(ctx, pos), place, nil
}

// Source is the fixed dispatch origin.
func (c *Coordinator) Source() geo.Coord {
	return c.source
}

// Current returns the cached copy of the given order, nil when none is
// loaded.
func (c *Coordinator) Current(orderID string) *order.Order {
	s := c.session(orderID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	o := *s.current
	return &o
}
