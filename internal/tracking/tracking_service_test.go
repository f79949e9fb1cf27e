package tracking_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/sanketpawarr68-jpg/gavran-magic/internal/events"
	"github.com/sanketpawarr68-jpg/gavran-magic/internal/geo"
	eventsmock "github.com/sanketpawarr68-jpg/gavran-magic/internal/mock/events"
	geomock "github.com/sanketpawarr68-jpg/gavran-magic/internal/mock/geo"
	ordermock "github.com/sanketpawarr68-jpg/gavran-magic/internal/mock/order"
	"github.com/sanketpawarr68-jpg/gavran-magic/internal/order"
	"github.com/sanketpawarr68-jpg/gavran-magic/internal/tracking"
)

var source = geo.Coord{Lat: 18.6186, Lng: 74.6975}

func fixedNow() time.Time {
	return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
}

func newCoordinator(orders order.Client, router geo.Router) *tracking.Coordinator {
	return tracking.NewCoordinator(tracking.Deps{
		Orders: orders,
		Router: router,
		Source: source,
		Now:    fixedNow,
	})
}

func TestCoordinator_LoadOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orders := ordermock.NewMockClient(ctrl)
	coord := newCoordinator(orders, nil)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		orders.EXPECT().Get(ctx, "ord-1").Return(order.Order{
			ID:        "ord-1",
			Status:    order.StatusShipped,
			CreatedAt: "2026-03-01T10:00:00Z",
		}, nil)

		res, err := coord.LoadOrder(ctx, "ord-1")
		assert.NoError(t, err)
		assert.Equal(t, 1, res.StepIndex)
		assert.Equal(t, order.Steps(), res.Steps)
		assert.Equal(t, "2026-03-05", res.EstimatedDelivery)
	})

	t.Run("terminal_order_has_no_estimate", func(t *testing.T) {
		orders.EXPECT().Get(ctx, "ord-2").Return(order.Order{
			ID:     "ord-2",
			Status: order.StatusDelivered,
		}, nil)

		res, err := coord.LoadOrder(ctx, "ord-2")
		assert.NoError(t, err)
		assert.Equal(t, 3, res.StepIndex)
		assert.Empty(t, res.EstimatedDelivery)
	})

	t.Run("cancelled_order_has_no_position", func(t *testing.T) {
		orders.EXPECT().Get(ctx, "ord-3").Return(order.Order{
			ID:     "ord-3",
			Status: order.StatusCancelled,
		}, nil)

		res, err := coord.LoadOrder(ctx, "ord-3")
		assert.NoError(t, err)
		assert.Equal(t, -1, res.StepIndex)
		assert.Empty(t, res.EstimatedDelivery)
	})

	t.Run("failure_clears_cached_order", func(t *testing.T) {
		orders.EXPECT().Get(ctx, "nope").Return(order.Order{}, order.ErrOrderNotFound)

		_, err := coord.LoadOrder(ctx, "nope")
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
		assert.Nil(t, coord.Current("nope"))
	})

	t.Run("retry_after_failure_succeeds", func(t *testing.T) {
		orders.EXPECT().Get(ctx, "ord-4").Return(order.Order{}, order.ErrOrderUpstream)
		orders.EXPECT().Get(ctx, "ord-4").Return(order.Order{
			ID:     "ord-4",
			Status: order.StatusPlaced,
		}, nil)

		_, err := coord.LoadOrder(ctx, "ord-4")
		assert.ErrorIs(t, err, order.ErrOrderUpstream)

		res, err := coord.LoadOrder(ctx, "ord-4")
		assert.NoError(t, err)
		assert.Equal(t, 0, res.StepIndex)
	})
}

func TestCoordinator_StaleFetchDiscarded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orders := ordermock.NewMockClient(ctrl)
	coord := newCoordinator(orders, nil)
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})

	// the first fetch of ord-1 stalls until a second fetch of the same
	// order has fully completed
	gomock.InOrder(
		orders.EXPECT().
			Get(ctx, "ord-1").
			DoAndReturn(func(context.Context, string) (order.Order, error) {
				close(entered)
				<-release
				return order.Order{ID: "ord-1", Status: order.StatusPlaced}, nil
			}),
		orders.EXPECT().
			Get(ctx, "ord-1").
			Return(order.Order{ID: "ord-1", Status: order.StatusShipped}, nil),
	)

	slowErr := make(chan error, 1)
	go func() {
		_, err := coord.LoadOrder(ctx, "ord-1")
		slowErr <- err
	}()
	<-entered

	res, err := coord.LoadOrder(ctx, "ord-1")
	assert.NoError(t, err)
	assert.Equal(t, 1, res.StepIndex)

	close(release)
	assert.ErrorIs(t, <-slowErr, tracking.ErrRequestSuperseded)

	// the slow completion must not have overwritten the newer status
	cur := coord.Current("ord-1")
	assert.NotNil(t, cur)
	assert.Equal(t, order.StatusShipped, cur.Status)
}

func TestCoordinator_SessionsAreIndependent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orders := ordermock.NewMockClient(ctrl)
	coord := newCoordinator(orders, nil)
	ctx := context.Background()

	t.Run("loading_another_order_does_not_supersede", func(t *testing.T) {
		entered := make(chan struct{})
		release := make(chan struct{})

		orders.EXPECT().
			Get(ctx, "ord-a").
			DoAndReturn(func(context.Context, string) (order.Order, error) {
				close(entered)
				<-release
				return order.Order{ID: "ord-a", Status: order.StatusPlaced}, nil
			})
		orders.EXPECT().
			Get(ctx, "ord-b").
			Return(order.Order{ID: "ord-b", Status: order.StatusShipped}, nil)

		aErr := make(chan error, 1)
		go func() {
			_, err := coord.LoadOrder(ctx, "ord-a")
			aErr <- err
		}()
		<-entered

		// another shopper tracking a different order in the meantime
		_, err := coord.LoadOrder(ctx, "ord-b")
		assert.NoError(t, err)

		close(release)
		assert.NoError(t, <-aErr)

		assert.Equal(t, "ord-a", coord.Current("ord-a").ID)
		assert.Equal(t, "ord-b", coord.Current("ord-b").ID)
	})

	t.Run("cancel_lands_on_the_named_order_only", func(t *testing.T) {
		orders.EXPECT().Get(ctx, "ord-b2").Return(order.Order{
			ID:     "ord-b2",
			Status: order.StatusPlaced,
		}, nil)
		orders.EXPECT().Get(ctx, "ord-a2").Return(order.Order{
			ID:     "ord-a2",
			Status: order.StatusPlaced,
		}, nil)
		orders.EXPECT().Cancel(ctx, "ord-b2", "changed my mind").Return(nil)
		orders.EXPECT().Get(ctx, "ord-b2").Return(order.Order{
			ID:     "ord-b2",
			Status: order.StatusCancelled,
		}, nil)

		_, err := coord.LoadOrder(ctx, "ord-b2")
		assert.NoError(t, err)

		// someone else loads a different order before the cancel lands
		_, err = coord.LoadOrder(ctx, "ord-a2")
		assert.NoError(t, err)

		res, err := coord.Cancel(ctx, "ord-b2", "changed my mind")
		assert.NoError(t, err)
		assert.Equal(t, order.StatusCancelled, res.Order.Status)

		// the other shopper's order is untouched
		assert.Equal(t, order.StatusPlaced, coord.Current("ord-a2").Status)
	})
}

func TestCoordinator_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orders := ordermock.NewMockClient(ctrl)
	publisher := eventsmock.NewMockPublisher(ctrl)
	coord := tracking.NewCoordinator(tracking.Deps{
		Orders:    orders,
		Publisher: publisher,
		Source:    source,
		Now:       fixedNow,
	})
	ctx := context.Background()

	t.Run("order_not_loaded", func(t *testing.T) {
		_, err := coord.Cancel(ctx, "ord-unseen", "changed my mind")
		assert.ErrorIs(t, err, tracking.ErrNoOrderLoaded)
	})

	t.Run("empty_reason_rejected", func(t *testing.T) {
		_, err := coord.Cancel(ctx, "ord-1", "")
		assert.ErrorIs(t, err, tracking.ErrReasonRequired)
	})

	t.Run("terminal_order_rejected_without_network", func(t *testing.T) {
		orders.EXPECT().Get(ctx, "ord-done").Return(order.Order{
			ID:     "ord-done",
			Status: order.StatusDelivered,
		}, nil)
		// no Cancel expectation: the guard fires before any request

		_, err := coord.LoadOrder(ctx, "ord-done")
		assert.NoError(t, err)

		_, err = coord.Cancel(ctx, "ord-done", "too late")
		assert.ErrorIs(t, err, order.ErrOrderNotCancellable)
	})

	t.Run("success_refreshes_and_publishes", func(t *testing.T) {
		orders.EXPECT().Get(ctx, "ord-1").Return(order.Order{
			ID:        "ord-1",
			Status:    order.StatusPlaced,
			CreatedAt: "2026-03-01T10:00:00Z",
		}, nil)
		orders.EXPECT().Cancel(ctx, "ord-1", "Ordered by mistake").Return(nil)
		publisher.EXPECT().
			Publish(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e events.Event) error {
				assert.Equal(t, events.TypeOrderCancelled, e.Type)
				assert.Equal(t, "ord-1", e.AggregateID)
				return nil
			})
		orders.EXPECT().Get(ctx, "ord-1").Return(order.Order{
			ID:                 "ord-1",
			Status:             order.StatusCancelled,
			CancellationReason: "Ordered by mistake",
		}, nil)

		_, err := coord.LoadOrder(ctx, "ord-1")
		assert.NoError(t, err)

		res, err := coord.Cancel(ctx, "ord-1", "Ordered by mistake")
		assert.NoError(t, err)
		assert.Equal(t, order.StatusCancelled, res.Order.Status)
		assert.Equal(t, -1, res.StepIndex)
		assert.Empty(t, res.EstimatedDelivery)
	})

	t.Run("upstream_failure_keeps_prior_state_and_publishes_nothing", func(t *testing.T) {
		orders.EXPECT().Get(ctx, "ord-2").Return(order.Order{
			ID:     "ord-2",
			Status: order.StatusPlaced,
		}, nil)
		orders.EXPECT().Cancel(ctx, "ord-2", "reason").Return(order.ErrOrderUpstream)
		// no Publish expectation: a failed cancel emits no event

		_, err := coord.LoadOrder(ctx, "ord-2")
		assert.NoError(t, err)

		_, err = coord.Cancel(ctx, "ord-2", "reason")
		assert.ErrorIs(t, err, order.ErrOrderUpstream)

		cur := coord.Current("ord-2")
		assert.NotNil(t, cur)
		assert.Equal(t, order.StatusPlaced, cur.Status)
	})
}

func TestCoordinator_RecentOrders(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orders := ordermock.NewMockClient(ctrl)
	coord := newCoordinator(orders, nil)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		orders.EXPECT().ListByUser(ctx, "u1").Return([]order.Order{{ID: "ord-1"}}, nil)

		got := coord.RecentOrders(ctx, "u1")
		assert.Len(t, got, 1)
	})

	t.Run("failure_is_silent", func(t *testing.T) {
		orders.EXPECT().ListByUser(ctx, "u1").Return(nil, order.ErrOrderUpstream)

		got := coord.RecentOrders(ctx, "u1")
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestCoordinator_BuildRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orders := ordermock.NewMockClient(ctrl)
	router := geomock.NewMockRouter(ctrl)
	coord := newCoordinator(orders, router)
	ctx := context.Background()

	dst := geo.Coord{Lat: 18.52, Lng: 73.85}

	t.Run("uses_routed_path", func(t *testing.T) {
		path := []geo.Coord{source, {Lat: 18.57, Lng: 74.2}, dst}
		router.EXPECT().Route(ctx, source, dst).Return(path, nil)

		assert.Equal(t, path, coord.BuildRoute(ctx, dst))
	})

	t.Run("routing_failure_falls_back_to_straight_line", func(t *testing.T) {
		router.EXPECT().Route(ctx, source, dst).Return(nil, geo.ErrRoutingUpstream)

		assert.Equal(t, []geo.Coord{source, dst}, coord.BuildRoute(ctx, dst))
	})

	t.Run("empty_path_falls_back_to_straight_line", func(t *testing.T) {
		router.EXPECT().Route(ctx, source, dst).Return([]geo.Coord{}, nil)

		assert.Equal(t, []geo.Coord{source, dst}, coord.BuildRoute(ctx, dst))
	})

	t.Run("nil_router_falls_back_to_straight_line", func(t *testing.T) {
		noRouter := newCoordinator(orders, nil)

		assert.Equal(t, []geo.Coord{source, dst}, noRouter.BuildRoute(ctx, dst))
	})
}

func TestCoordinator_ResolveUserLocation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orders := ordermock.NewMockClient(ctrl)
	ctx := context.Background()

	t.Run("denied_locator", func(t *testing.T) {
		coord := tracking.NewCoordinator(tracking.Deps{
			Orders:  orders,
			Locator: geo.NewDeniedLocator(),
			Source:  source,
		})

		_, _, _, err := coord.ResolveUserLocation(ctx)
		assert.ErrorIs(t, err, geo.ErrLocationUnavailable)
	})

	t.Run("fixed_locator_routes_to_position", func(t *testing.T) {
		pos := geo.Coord{Lat: 18.52, Lng: 73.85}
		coord := tracking.NewCoordinator(tracking.Deps{
			Orders:  orders,
			Locator: geo.NewFixedLocator(pos),
			Source:  source,
		})

		got, path, _, err := coord.ResolveUserLocation(ctx)
		assert.NoError(t, err)
		assert.Equal(t, pos, got)
		assert.Equal(t, []geo.Coord{source, pos}, path)
	})

	t.Run("nil_locator_defaults_to_denied", func(t *testing.T) {
		coord := tracking.NewCoordinator(tracking.Deps{
			Orders: orders,
			Source: source,
		})

		_, _, _, err := coord.ResolveUserLocation(ctx)
		assert.ErrorIs(t, err, geo.ErrLocationUnavailable)
	})
}
