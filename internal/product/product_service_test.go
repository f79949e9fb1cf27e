package product_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sanketpawarr68-jpg/gavran-magic/internal/product"
)

func newService(baseURL string) product.Service {
	return product.NewService(product.Deps{BaseURL: baseURL})
}

func TestProductService_List(t *testing.T) {
	ctx := context.Background()
	catalog := []product.Product{
		{ID: "p1", Name: "Ghee", Price: 450},
		{ID: "p2", Name: "Honey", Price: 300},
	}

	t.Run("bare_array_response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/products/", r.URL.Path)
			json.NewEncoder(w).Encode(catalog)
		}))
		defer srv.Close()

		res, err := newService(srv.URL).List(ctx)
		assert.NoError(t, err)
		assert.Len(t, res.Products, 2)
		assert.False(t, res.Stale)
	})

	t.Run("wrapped_response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"products": catalog})
		}))
		defer srv.Close()

		res, err := newService(srv.URL).List(ctx)
		assert.NoError(t, err)
		assert.Len(t, res.Products, 2)
	})

	t.Run("upstream_down_without_cache", func(t *testing.T) {
		res, err := newService("http://127.0.0.1:1").List(ctx)
		assert.ErrorIs(t, err, product.ErrCatalogUnavailable)
		assert.Empty(t, res.Products)
	})

	t.Run("upstream_error_status_without_cache", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := newService(srv.URL).List(ctx)
		assert.ErrorIs(t, err, product.ErrCatalogUnavailable)
	})
}

func TestProductService_Get(t *testing.T) {
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]product.Product{{ID: "p1", Name: "Ghee", Price: 450}})
	}))
	defer srv.Close()

	svc := newService(srv.URL)

	t.Run("found", func(t *testing.T) {
		p, err := svc.Get(ctx, "p1")
		assert.NoError(t, err)
		assert.Equal(t, "Ghee", p.Name)
	})

	t.Run("not_found", func(t *testing.T) {
		_, err := svc.Get(ctx, "nope")
		assert.ErrorIs(t, err, product.ErrProductNotFound)
	})
}
