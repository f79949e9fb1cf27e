package geo

import (
	"net/http"

	"github.com/sanketpawarr68-jpg/gavran-magic/internal/pkg/apperror"
)

// Coord is a latitude/longitude pair.
type Coord struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

var (
	ErrNoRoute = apperror.New(
		apperror.CodeNotFound,
		"No driving route found",
		http.StatusNotFound,
	)

	ErrRoutingUpstream = apperror.New(
		apperror.CodeUpstream,
		"Routing service is unreachable",
		http.StatusBadGateway,
	)

	ErrLocationUnavailable = apperror.New(
		apperror.CodeForbidden,
		"Unable to retrieve your location. Please allow location access.",
		http.StatusForbidden,
	)
)
