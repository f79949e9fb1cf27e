package geo

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"encoding/json"

	"go.uber.org/zap"
)

//go:generate mockgen -source=routing.go -destination=../mock/geo/router_mock.go -package=mock
type Router interface {
	Route(ctx context.Context, src, dst Coord) ([]Coord, error)
}

type osrmRouter struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewOSRMRouter talks to an OSRM instance (the public
// router.project-osrm.org by default).
func NewOSRMRouter(baseURL string, logger *zap.Logger) Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &osrmRouter{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  logger.Named("geo.osrm"),
	}
}

type osrmResponse struct {
	Routes []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

func (r *osrmRouter) Route(ctx context.Context, src, dst Coord) ([]Coord, error) {
	// OSRM wants {lon},{lat} pairs
	url := fmt.Sprintf(
		"%s/route/v1/driving/%f,%f;%f,%f?overview=full&geometries=geojson",
		r.baseURL, src.Lng, src.Lat, dst.Lng, dst.Lat,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, ErrRoutingUpstream
	}

	resp, err := r.http.Do(req)
	if err != nil {
		r.logger.Warn("routing request failed", zap.Error(err))
		return nil, ErrRoutingUpstream
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrRoutingUpstream
	}

	var out osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, ErrRoutingUpstream
	}

	if len(out.Routes) == 0 {
		return nil, ErrNoRoute
	}

	coords := out.Routes[0].Geometry.Coordinates
	path := make([]Coord, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			continue
		}
		path = append(path, Coord{Lat: c[1], Lng: c[0]})
	}

	if len(path) == 0 {
		return nil, ErrNoRoute
	}
	return path, nil
}
