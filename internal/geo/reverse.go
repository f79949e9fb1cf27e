package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Place is a reverse-geocoded address.
type Place struct {
	DisplayName string `json:"displayName"`
	City        string `json:"city"`
	Pincode     string `json:"pincode"`
}

type Geocoder struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewGeocoder talks to a Nominatim instance for reverse lookups.
func NewGeocoder(baseURL string, logger *zap.Logger) *Geocoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Geocoder{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  logger.Named("geo.geocoder"),
	}
}

func (g *Geocoder) Reverse(ctx context.Context, pos Coord) (Place, error) {
	url := fmt.Sprintf("%s/reverse?lat=%f&lon=%f&format=json", g.baseURL, pos.Lat, pos.Lng)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Place{}, ErrRoutingUpstream
	}
	// Nominatim's usage policy requires an identifying agent
	req.Header.Set("User-Agent", "gavran-magic-shop")

	resp, err := g.http.Do(req)
	if err != nil {
		g.logger.Warn("reverse geocode failed", zap.Error(err))
		return Place{}, ErrRoutingUpstream
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Place{}, ErrRoutingUpstream
	}

	var out struct {
		DisplayName string `json:"display_name"`
		Address     struct {
			City     string `json:"city"`
			Town     string `json:"town"`
			Village  string `json:"village"`
			Postcode string `json:"postcode"`
		} `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Place{}, ErrRoutingUpstream
	}

	city := out.Address.City
	if city == "" {
		city = out.Address.Town
	}
	if city == "" {
		city = out.Address.Village
	}

	return Place{
		DisplayName: out.DisplayName,
		City:        city,
		Pincode:     out.Address.Postcode,
	}, nil
}
