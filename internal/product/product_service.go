package product

//go:generate mockgen -source=product_service.go -destination=../mock/product/product_service_mock.go -package=mock

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	cacheKey = "products_cache"
	cacheTTL = 10 * time.Minute
)

type Service interface {
	// List returns the catalog, serving the cached copy when the
	// upstream is down.
	List(ctx context.Context) (ListResponse, error)
	Get(ctx context.Context, productID string) (Product, error)
}

type service struct {
	baseURL string
	client  *http.Client
	rdb     *redis.Client
	logger  *zap.Logger
}

type Deps struct {
	BaseURL string
	Client  *http.Client
	Redis   *redis.Client
	Logger  *zap.Logger
}

func NewService(deps Deps) Service {
	if deps.BaseURL == "" {
		panic("product upstream base URL cannot be empty")
	}
	if deps.Client == nil {
		deps.Client = &http.Client{Timeout: 15 * time.Second}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &service{
		baseURL: deps.BaseURL,
		client:  deps.Client,
		rdb:     deps.Redis,
		logger:  deps.Logger.Named("product.service"),
	}
}

// normalizeProductList accepts both shapes the upstream has shipped over
// time: a bare array and an object wrapping it under "products".
func normalizeProductList(raw []byte) ([]Product, error) {
	var list []Product
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var wrapped struct {
		Products []Product `json:"products"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("unexpected catalog payload: %w", err)
	}
	return wrapped.Products, nil
}

func (s *service) fetchUpstream(ctx context.Context) ([]Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/products/", nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog upstream returned %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return normalizeProductList(raw)
}

func (s *service) readCache(ctx context.Context) ([]Product, bool) {
	if s.rdb == nil {
		return nil, false
	}

	raw, err := s.rdb.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("product cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var list []Product
	if err := json.Unmarshal(raw, &list); err != nil {
		s.logger.Warn("product cache corrupted, dropping", zap.Error(err))
		s.rdb.Del(ctx, cacheKey)
		return nil, false
	}
	return list, true
}

func (s *service) writeCache(ctx context.Context, list []Product) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, cacheKey, raw, cacheTTL).Err(); err != nil {
		s.logger.Warn("product cache write failed", zap.Error(err))
	}
}

func (s *service) List(ctx context.Context) (ListResponse, error) {
	list, err := s.fetchUpstream(ctx)
	if err == nil {
		if list == nil {
			list = []Product{}
		}
		s.writeCache(ctx, list)
		return ListResponse{Products: list}, nil
	}

	s.logger.Warn("catalog upstream unavailable, trying cache", zap.Error(err))

	if cached, ok := s.readCache(ctx); ok {
		return ListResponse{Products: cached, Stale: true}, nil
	}
	return ListResponse{}, ErrCatalogUnavailable
}

func (s *service) Get(ctx context.Context, productID string) (Product, error) {
	res, err := s.List(ctx)
	if err != nil {
		return Product{}, err
	}
	for _, p := range res.Products {
		if p.ID == productID {
			return p, nil
		}
	}
	return Product{}, ErrProductNotFound
}
