package order

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

//go:generate mockgen -source=order_client.go -destination=../mock/order/order_client_mock.go -package=mock
type Client interface {
	Create(ctx context.Context, sub Submission) (string, error)
	Get(ctx context.Context, orderID string) (Order, error)
	Cancel(ctx context.Context, orderID, reason string) error
	ListByUser(ctx context.Context, userID string) ([]Order, error)
}

type httpClient struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, logger *zap.Logger) Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 20 * time.Second},
		logger:  logger.Named("order.client"),
	}
}

func (c *httpClient) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.http.Do(req)
}

// Create submits the order payload. Success means the response carries an
// order identifier; anything else is a submission failure and the caller's
// cart stays untouched.
func (c *httpClient) Create(ctx context.Context, sub Submission) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/orders/", sub)
	if err != nil {
		c.logger.Error("order submission failed", zap.Error(err))
		return "", ErrSubmissionFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("order submission rejected", zap.Int("status", resp.StatusCode))
		return "", ErrSubmissionFailed
	}

	var out struct {
		OrderID    string `json:"order_id"`
		TrackingID string `json:"tracking_id"`
		Message    string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.OrderID == "" {
		c.logger.Warn("order submission returned no order id", zap.Error(err))
		return "", ErrSubmissionFailed
	}

	return out.OrderID, nil
}

func (c *httpClient) Get(ctx context.Context, orderID string) (Order, error) {
	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/orders/%s", orderID), nil)
	if err != nil {
		return Order{}, ErrOrderUpstream
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var o Order
		if err := json.NewDecoder(resp.Body).Decode(&o); err != nil {
			return Order{}, ErrOrderUpstream
		}
		return o, nil
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusBadRequest:
		// the backend answers 400 for malformed ids, to the shopper both
		// cases read as "no such order"
		return Order{}, ErrOrderNotFound
	default:
		return Order{}, ErrOrderUpstream
	}
}

func (c *httpClient) Cancel(ctx context.Context, orderID, reason string) error {
	body := map[string]string{"reason": reason}

	resp, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/orders/%s/cancel", orderID), body)
	if err != nil {
		return ErrOrderUpstream
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return ErrOrderNotFound
	case http.StatusBadRequest:
		return ErrOrderNotCancellable
	default:
		return ErrOrderUpstream
	}
}

func (c *httpClient) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/orders/user/%s", userID), nil)
	if err != nil {
		return nil, ErrOrderUpstream
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrOrderUpstream
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ErrOrderUpstream
	}

	return normalizeOrderList(raw)
}

// normalizeOrderList accepts both shapes the backend has shipped over time:
// a bare array and an {"orders": [...]} wrapper.
func normalizeOrderList(raw []byte) ([]Order, error) {
	var list []Order
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var wrapped struct {
		Orders []Order `json:"orders"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Orders != nil {
		return wrapped.Orders, nil
	}

	return nil, ErrOrderUpstream
}
