package checkout

// CheckoutRequest carries the shipping details the shopper typed. It lives
// only for the duration of the checkout call.
type CheckoutRequest struct {
	Name          string `json:"name" validate:"required"`
	Phone         string `json:"phone" validate:"required,len=10,numeric"`
	Address       string `json:"address" validate:"required"`
	City          string `json:"city" validate:"required"`
	Pincode       string `json:"pincode" validate:"required,len=6,numeric"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=COD UPI CARD"`
}

type CheckoutResponse struct {
	OrderID    string  `json:"orderId"`
	TotalPrice float64 `json:"totalPrice"`
}
