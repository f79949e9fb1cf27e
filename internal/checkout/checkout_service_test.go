package checkout_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/sanketpawarr68-jpg/gavran-magic/internal/cart"
	"github.com/sanketpawarr68-jpg/gavran-magic/internal/checkout"
	"github.com/sanketpawarr68-jpg/gavran-magic/internal/events"
	cartmock "github.com/sanketpawarr68-jpg/gavran-magic/internal/mock/cart"
	eventsmock "github.com/sanketpawarr68-jpg/gavran-magic/internal/mock/events"
	ordermock "github.com/sanketpawarr68-jpg/gavran-magic/internal/mock/order"
	shippingmock "github.com/sanketpawarr68-jpg/gavran-magic/internal/mock/shipping"
	"github.com/sanketpawarr68-jpg/gavran-magic/internal/order"
)

func validRequest() checkout.CheckoutRequest {
	return checkout.CheckoutRequest{
		Name:          "Sanket",
		Phone:         "9876543210",
		Address:       "Main Road",
		City:          "Shrigonda",
		Pincode:       "413701",
		PaymentMethod: "COD",
	}
}

func TestCheckoutService_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cartSvc := cartmock.NewMockService(ctrl)
	orders := ordermock.NewMockClient(ctrl)
	svc := checkout.NewService(checkout.Deps{CartSvc: cartSvc, Orders: orders})
	ctx := context.Background()

	t.Run("reports_every_invalid_field_at_once", func(t *testing.T) {
		req := checkout.CheckoutRequest{
			Name:          "",
			Phone:         "123",
			Address:       "Main Road",
			City:          "Shrigonda",
			Pincode:       "999999",
			PaymentMethod: "COD",
		}

		_, err := svc.Checkout(ctx, "u1", req)

		var verr *checkout.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "Required", verr.Fields["name"])
		assert.Equal(t, "Must be 10 digits", verr.Fields["phone"])
		assert.Contains(t, verr.Fields["pincode"], "Must start with 4")
	})

	t.Run("missing_payment_method", func(t *testing.T) {
		req := validRequest()
		req.PaymentMethod = ""

		_, err := svc.Checkout(ctx, "u1", req)

		var verr *checkout.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "Please select a payment method", verr.Fields["paymentMethod"])
	})

	t.Run("pincode_outside_region", func(t *testing.T) {
		req := validRequest()
		req.Pincode = "560001"

		_, err := svc.Checkout(ctx, "u1", req)

		var verr *checkout.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "pincode")
		assert.Len(t, verr.Fields, 1)
	})
}

func TestCheckoutService_Checkout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cartSvc := cartmock.NewMockService(ctrl)
	orders := ordermock.NewMockClient(ctrl)
	courier := shippingmock.NewMockServiceability(ctrl)
	publisher := eventsmock.NewMockPublisher(ctrl)
	svc := checkout.NewService(checkout.Deps{
		CartSvc:   cartSvc,
		Orders:    orders,
		Courier:   courier,
		Publisher: publisher,
	})
	ctx := context.Background()

	cartDetail := cart.CartResponse{
		Items: []cart.LineItem{
			{ProductID: "100", UnitPrice: 100, Quantity: 2},
		},
		Subtotal:  200,
		ItemCount: 2,
	}

	t.Run("success", func(t *testing.T) {
		cartSvc.EXPECT().Detail(ctx, "u1").Return(cartDetail, nil)
		courier.EXPECT().Check(ctx, "411001", "413701").Return(true, nil)
		orders.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, sub order.Submission) (string, error) {
				assert.Equal(t, "u1", sub.UserID)
				assert.Equal(t, []order.Line{{ProductID: "100", Quantity: 2, Price: 100}}, sub.Products)
				assert.Equal(t, 200.0, sub.TotalPrice)
				return "ord-1", nil
			})
		cartSvc.EXPECT().Clear(ctx, "u1").Return(nil)
		publisher.EXPECT().
			Publish(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e events.Event) error {
				assert.Equal(t, events.TypeOrderPlaced, e.Type)
				assert.Equal(t, "ord-1", e.AggregateID)
				return nil
			})

		res, err := svc.Checkout(ctx, "u1", validRequest())
		assert.NoError(t, err)
		assert.Equal(t, "ord-1", res.OrderID)
		assert.Equal(t, 200.0, res.TotalPrice)
	})

	t.Run("empty_cart", func(t *testing.T) {
		cartSvc.EXPECT().Detail(ctx, "u1").Return(cart.CartResponse{Items: []cart.LineItem{}}, nil)

		_, err := svc.Checkout(ctx, "u1", validRequest())
		assert.ErrorIs(t, err, checkout.ErrCartEmpty)
	})

	t.Run("submission_failure_leaves_cart_untouched", func(t *testing.T) {
		cartSvc.EXPECT().Detail(ctx, "u1").Return(cartDetail, nil)
		courier.EXPECT().Check(ctx, "411001", "413701").Return(true, nil)
		orders.EXPECT().Create(ctx, gomock.Any()).Return("", order.ErrSubmissionFailed)
		// no Clear expectation: the cart must survive a failed submission

		_, err := svc.Checkout(ctx, "u1", validRequest())
		assert.ErrorIs(t, err, order.ErrSubmissionFailed)
	})

	t.Run("no_courier_blocks_with_pincode_error", func(t *testing.T) {
		cartSvc.EXPECT().Detail(ctx, "u1").Return(cartDetail, nil)
		courier.EXPECT().Check(ctx, "411001", "413701").Return(false, nil)

		_, err := svc.Checkout(ctx, "u1", validRequest())

		var verr *checkout.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "pincode")
	})

	t.Run("errored_courier_check_proceeds", func(t *testing.T) {
		cartSvc.EXPECT().Detail(ctx, "u1").Return(cartDetail, nil)
		courier.EXPECT().Check(ctx, "411001", "413701").Return(false, errors.New("shiprocket timeout"))
		orders.EXPECT().Create(ctx, gomock.Any()).Return("ord-2", nil)
		cartSvc.EXPECT().Clear(ctx, "u1").Return(nil)
		publisher.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

		res, err := svc.Checkout(ctx, "u1", validRequest())
		assert.NoError(t, err)
		assert.Equal(t, "ord-2", res.OrderID)
	})

	t.Run("clear_failure_does_not_fail_checkout", func(t *testing.T) {
		cartSvc.EXPECT().Detail(ctx, "u1").Return(cartDetail, nil)
		courier.EXPECT().Check(ctx, "411001", "413701").Return(true, nil)
		orders.EXPECT().Create(ctx, gomock.Any()).Return("ord-3", nil)
		cartSvc.EXPECT().Clear(ctx, "u1").Return(errors.New("redis down"))
		publisher.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

		res, err := svc.Checkout(ctx, "u1", validRequest())
		assert.NoError(t, err)
		assert.Equal(t, "ord-3", res.OrderID)
	})
}
