package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sanketpawarr68-jpg/gavran-magic/internal/cart"
	"github.com/sanketpawarr68-jpg/gavran-magic/internal/events"
	"github.com/sanketpawarr68-jpg/gavran-magic/internal/order"
	"github.com/sanketpawarr68-jpg/gavran-magic/internal/shipping"
)

//go:generate mockgen -source=checkout_service.go -destination=../mock/checkout/checkout_service_mock.go -package=mock
type Service interface {
	Checkout(ctx context.Context, userID string, req CheckoutRequest) (CheckoutResponse, error)
}

type service struct {
	cartSvc   cart.Service
	orders    order.Client
	courier   shipping.Serviceability
	publisher events.Publisher
	validate  *validator.Validate
	logger    *zap.Logger

	pincodePrefix string
	pickupPincode string
}

type Deps struct {
	CartSvc   cart.Service
	Orders    order.Client
	Courier   shipping.Serviceability
	Publisher events.Publisher
	Logger    *zap.Logger

	// leading digit of serviceable pincodes, "4" covers Maharashtra
	PincodePrefix string
	PickupPincode string
}

func NewService(deps Deps) Service {
	if deps.CartSvc == nil {
		panic("cart service cannot be nil")
	}
	if deps.Orders == nil {
		panic("order client cannot be nil")
	}
	if deps.Courier == nil {
		deps.Courier = shipping.NewAllowAll()
	}
	if deps.Publisher == nil {
		deps.Publisher = events.NewNopPublisher()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.PincodePrefix == "" {
		deps.PincodePrefix = "4"
	}
	if deps.PickupPincode == "" {
		deps.PickupPincode = "411001"
	}

	return &service{
		cartSvc:       deps.CartSvc,
		orders:        deps.Orders,
		courier:       deps.Courier,
		publisher:     deps.Publisher,
		validate:      validator.New(),
		logger:        deps.Logger.Named("checkout.service"),
		pincodePrefix: deps.PincodePrefix,
		pickupPincode: deps.PickupPincode,
	}
}

// validateShipping collects one message per invalid field so the form can
// surface everything at once.
func (s *service) validateShipping(req CheckoutRequest) map[string]string {
	fields := map[string]string{}

	if err := s.validate.Struct(req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				switch fe.Field() {
				case "Name":
					fields["name"] = "Required"
				case "Phone":
					fields["phone"] = "Must be 10 digits"
				case "Address":
					fields["address"] = "Required"
				case "City":
					fields["city"] = "Required"
				case "Pincode":
					fields["pincode"] = fmt.Sprintf("Must start with %s and be 6 digits", s.pincodePrefix)
				case "PaymentMethod":
					fields["paymentMethod"] = "Please select a payment method"
				}
			}
		}
	}

	// region rule on top of the shape check
	if _, bad := fields["pincode"]; !bad && !strings.HasPrefix(req.Pincode, s.pincodePrefix) {
		fields["pincode"] = fmt.Sprintf("Must start with %s and be 6 digits", s.pincodePrefix)
	}

	return fields
}

func (s *service) Checkout(ctx context.Context, userID string, req CheckoutRequest) (CheckoutResponse, error) {
	logger := s.logger.With(zap.String("user_id", userID))

	if fields := s.validateShipping(req); len(fields) > 0 {
		return CheckoutResponse{}, &ValidationError{Fields: fields}
	}

	cartData, err := s.cartSvc.Detail(ctx, userID)
	if err != nil {
		logger.Error("failed to fetch cart detail", zap.Error(err))
		return CheckoutResponse{}, err
	}
	if len(cartData.Items) == 0 {
		return CheckoutResponse{}, ErrCartEmpty
	}

	// Advisory courier check: a definitive "no courier" blocks, an errored
	// check is logged and the order proceeds.
	if ok, err := s.courier.Check(ctx, s.pickupPincode, req.Pincode); err != nil {
		logger.Warn("serviceability check errored, proceeding", zap.Error(err))
	} else if !ok {
		return CheckoutResponse{}, &ValidationError{Fields: map[string]string{
			"pincode": "Delivery is not available for this pincode",
		}}
	}

	lines := make([]order.Line, 0, len(cartData.Items))
	total := decimal.Zero
	for _, item := range cartData.Items {
		lines = append(lines, order.Line{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.UnitPrice,
		})
		total = total.Add(decimal.NewFromFloat(item.UnitPrice).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	totalPrice, _ := total.Float64()

	sub := order.Submission{
		UserID:        userID,
		Name:          req.Name,
		Phone:         req.Phone,
		Address:       req.Address,
		City:          req.City,
		Pincode:       req.Pincode,
		PaymentMethod: req.PaymentMethod,
		Products:      lines,
		TotalPrice:    totalPrice,
	}

	// single atomic submission, any failure leaves the cart untouched
	orderID, err := s.orders.Create(ctx, sub)
	if err != nil {
		logger.Warn("order submission failed", zap.Error(err))
		return CheckoutResponse{}, err
	}

	logger = logger.With(zap.String("order_id", orderID))

	if err := s.cartSvc.Clear(ctx, userID); err != nil {
		// the order exists, a lingering cart is an annoyance not a failure
		logger.Warn("failed to clear cart after checkout", zap.Error(err))
	}

	s.publishOrderPlaced(ctx, userID, orderID, totalPrice)

	logger.Info("order placed", zap.Float64("total_price", totalPrice))

	return CheckoutResponse{OrderID: orderID, TotalPrice: totalPrice}, nil
}

func (s *service) publishOrderPlaced(ctx context.Context, userID, orderID string, totalPrice float64) {
	payload, _ := json.Marshal(map[string]any{
		"user_id":     userID,
		"order_id":    orderID,
		"total_price": totalPrice,
	})

	if err := s.publisher.Publish(ctx, events.Event{
		Type:          events.TypeOrderPlaced,
		AggregateType: "order",
		AggregateID:   orderID,
		Payload:       payload,
	}); err != nil {
		s.logger.Warn("failed to publish order placed event", zap.Error(err))
	}
}
