package cart

import "github.com/shopspring/decimal"

// LineItem is one product entry in a cart. A cart holds at most one line
// per product id, quantity never drops below 1 (removal happens instead).
type LineItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Weight    string  `json:"weight"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"imageUrl"`
}

// Cart keeps lines in insertion order for display.
type Cart struct {
	Items []LineItem `json:"items"`
}

func (c *Cart) find(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Add increments the quantity when the product is already in the cart,
// otherwise appends a new line with quantity 1. Reports whether the line
// already existed.
func (c *Cart) Add(item LineItem) bool {
	if i := c.find(item.ProductID); i >= 0 {
		c.Items[i].Quantity++
		return true
	}
	item.Quantity = 1
	c.Items = append(c.Items, item)
	return false
}

// Remove deletes the matching line, no-op when absent.
func (c *Cart) Remove(productID string) {
	if i := c.find(productID); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
}

// SetQuantity updates the line's quantity. Anything below 1 removes the
// line, matching the storefront behavior of decrementing to zero.
func (c *Cart) SetQuantity(productID string, qty int) {
	if qty < 1 {
		c.Remove(productID)
		return
	}
	if i := c.find(productID); i >= 0 {
		c.Items[i].Quantity = qty
	}
}

// Subtotal is recomputed from the current lines on every call.
func (c *Cart) Subtotal() float64 {
	sum := decimal.Zero
	for _, item := range c.Items {
		line := decimal.NewFromFloat(item.UnitPrice).Mul(decimal.NewFromInt(int64(item.Quantity)))
		sum = sum.Add(line)
	}
	f, _ := sum.Float64()
	return f
}

// ItemCount is the sum of all line quantities.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}
