package order

// Wire types for the order API. Field names follow the backend's JSON
// (mongo-style _id, snake_case) so decoding stays a straight mapping.

type Line struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order is the server-owned record; this service only ever holds a
// read-only copy per fetch.
type Order struct {
	ID                 string  `json:"_id"`
	UserID             string  `json:"user_id"`
	Status             string  `json:"order_status"`
	CreatedAt          string  `json:"created_at"`
	Products           []Line  `json:"products"`
	TotalPrice         float64 `json:"total_price"`
	Name               string  `json:"name"`
	Phone              string  `json:"phone"`
	Address            string  `json:"address"`
	City               string  `json:"city"`
	Pincode            string  `json:"pincode"`
	TrackingID         string  `json:"tracking_id,omitempty"`
	CancellationReason string  `json:"cancellation_reason,omitempty"`
}

// Submission is the validated, immutable payload sent to create an order.
type Submission struct {
	UserID        string  `json:"user_id"`
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	Address       string  `json:"address"`
	City          string  `json:"city"`
	Pincode       string  `json:"pincode"`
	PaymentMethod string  `json:"payment_method"`
	Products      []Line  `json:"products"`
	TotalPrice    float64 `json:"total_price"`
}
