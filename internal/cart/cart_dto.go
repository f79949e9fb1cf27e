package cart

// ==================== REQUEST STRUCTS ====================

type AddItemRequest struct {
	ProductID string  `json:"productId" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	Price     float64 `json:"price" validate:"gte=0"`
	Weight    string  `json:"weight"`
	Image     string  `json:"image"`
}

type UpdateQtyRequest struct {
	Qty int `json:"qty"`
}

// ==================== RESPONSE STRUCTS ====================

type CartResponse struct {
	Items     []LineItem `json:"items"`
	Subtotal  float64    `json:"subtotal"`
	ItemCount int        `json:"itemCount"`
}
