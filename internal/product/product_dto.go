package product

// Product is the subset of the upstream catalog record the storefront
// uses; fields the upstream adds are dropped on decode.
type Product struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Weight      string  `json:"weight,omitempty"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	Category    string  `json:"category,omitempty"`
	InStock     bool    `json:"in_stock"`
}

type ListResponse struct {
	Products []Product `json:"products"`
	// true when the upstream was unreachable and a cached copy was served
	Stale bool `json:"stale,omitempty"`
}
