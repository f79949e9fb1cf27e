package geo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sanketpawarr68-jpg/gavran-magic/internal/geo"
)

func TestOSRMRouter_Route(t *testing.T) {
	ctx := context.Background()
	src := geo.Coord{Lat: 18.6186, Lng: 74.6975}
	dst := geo.Coord{Lat: 18.52, Lng: 73.85}

	t.Run("decodes_geojson_lon_lat_pairs", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// OSRM path is /route/v1/driving/{lng},{lat};{lng},{lat}
			assert.Contains(t, r.URL.Path, "/route/v1/driving/")
			assert.Equal(t, "full", r.URL.Query().Get("overview"))
			assert.Equal(t, "geojson", r.URL.Query().Get("geometries"))

			w.Write([]byte(`{"routes":[{"geometry":{"coordinates":[[74.6975,18.6186],[74.2,18.57],[73.85,18.52]]}}]}`))
		}))
		defer srv.Close()

		router := geo.NewOSRMRouter(srv.URL, nil)
		path, err := router.Route(ctx, src, dst)
		assert.NoError(t, err)
		assert.Equal(t, []geo.Coord{
			{Lat: 18.6186, Lng: 74.6975},
			{Lat: 18.57, Lng: 74.2},
			{Lat: 18.52, Lng: 73.85},
		}, path)
	})

	t.Run("no_routes_in_response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"routes":[]}`))
		}))
		defer srv.Close()

		router := geo.NewOSRMRouter(srv.URL, nil)
		_, err := router.Route(ctx, src, dst)
		assert.ErrorIs(t, err, geo.ErrNoRoute)
	})

	t.Run("upstream_error_status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		router := geo.NewOSRMRouter(srv.URL, nil)
		_, err := router.Route(ctx, src, dst)
		assert.ErrorIs(t, err, geo.ErrRoutingUpstream)
	})

	t.Run("unreachable_upstream", func(t *testing.T) {
		router := geo.NewOSRMRouter("http://127.0.0.1:1", nil)
		_, err := router.Route(ctx, src, dst)
		assert.ErrorIs(t, err, geo.ErrRoutingUpstream)
	})
}

func TestGeocoder_Reverse(t *testing.T) {
	ctx := context.Background()
	pos := geo.Coord{Lat: 18.6186, Lng: 74.6975}

	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/reverse", r.URL.Path)
			assert.Equal(t, "json", r.URL.Query().Get("format"))
			assert.NotEmpty(t, r.Header.Get("User-Agent"))

			w.Write([]byte(`{"display_name":"Shrigonda, Ahmednagar","address":{"town":"Shrigonda","postcode":"413701"}}`))
		}))
		defer srv.Close()

		g := geo.NewGeocoder(srv.URL, nil)
		place, err := g.Reverse(ctx, pos)
		assert.NoError(t, err)
		assert.Equal(t, "Shrigonda, Ahmednagar", place.DisplayName)
		assert.Equal(t, "Shrigonda", place.City)
		assert.Equal(t, "413701", place.Pincode)
	})

	t.Run("city_falls_back_through_town_and_village", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"display_name":"somewhere","address":{"village":"Pimpalgaon"}}`))
		}))
		defer srv.Close()

		g := geo.NewGeocoder(srv.URL, nil)
		place, err := g.Reverse(ctx, pos)
		assert.NoError(t, err)
		assert.Equal(t, "Pimpalgaon", place.City)
	})

	t.Run("unreachable_upstream", func(t *testing.T) {
		g := geo.NewGeocoder("http://127.0.0.1:1", nil)
		_, err := g.Reverse(ctx, pos)
		assert.ErrorIs(t, err, geo.ErrRoutingUpstream)
	})
}
