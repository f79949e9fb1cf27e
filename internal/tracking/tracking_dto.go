package tracking

import (
	"github.com/sanketpawarr68-jpg/gavran-magic/internal/geo"
	"github.com/sanketpawarr68-jpg/gavran-magic/internal/order"
)

// ==================== REQUEST STRUCTS ====================

type CancelRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type RouteRequest struct {
	Destination geo.Coord `json:"destination" binding:"required"`
}

// ==================== RESPONSE STRUCTS ====================

type TrackingResponse struct {
	Order     order.Order `json:"order"`
	Steps     []string    `json:"steps"`
	StepIndex int         `json:"stepIndex"`
	// heuristic estimate (creation + 4 days), omitted once terminal
	EstimatedDelivery string `json:"estimatedDelivery,omitempty"`
}

type RouteResponse struct {
	Source      geo.Coord   `json:"source"`
	Destination geo.Coord   `json:"destination"`
	Path        []geo.Coord `json:"path"`
}

type LocationResponse struct {
	Location geo.Coord   `json:"location"`
	Path     []geo.Coord `json:"path"`
	Place    geo.Place   `json:"place"`
}
