package shipping

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Serviceability answers whether any courier covers a delivery pincode.
// The check is advisory: checkout blocks only on a definitive "no courier",
// an errored check is logged and the order goes through.
//
//go:generate mockgen -source=shiprocket.go -destination=../mock/shipping/serviceability_mock.go -package=mock
type Serviceability interface {
	Check(ctx context.Context, pickupPincode, deliveryPincode string) (bool, error)
}

type Config struct {
	BaseURL  string
	Email    string
	Password string
}

type shiprocketClient struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger

	mu    sync.Mutex
	token string
}

func NewShiprocketClient(cfg Config, logger *zap.Logger) Serviceability {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &shiprocketClient{
		cfg:    Config{BaseURL: strings.TrimRight(cfg.BaseURL, "/"), Email: cfg.Email, Password: cfg.Password},
		http:   &http.Client{Timeout: 15 * time.Second},
		logger: logger.Named("shipping.shiprocket"),
	}
}

func (c *shiprocketClient) authenticate(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" {
		return c.token, nil
	}

	payload, _ := json.Marshal(map[string]string{
		"email":    c.cfg.Email,
		"password": c.cfg.Password,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/auth/login", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("shiprocket auth failed: status %d", resp.StatusCode)
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.Token == "" {
		return "", fmt.Errorf("shiprocket auth returned no token")
	}

	c.token = out.Token
	return c.token, nil
}

func (c *shiprocketClient) Check(ctx context.Context, pickupPincode, deliveryPincode string) (bool, error) {
	token, err := c.authenticate(ctx)
	if err != nil {
		return false, err
	}

	url := fmt.Sprintf(
		"%s/courier/serviceability?pickup_postcode=%s&delivery_postcode=%s&cod=1&weight=0.5",
		c.cfg.BaseURL, pickupPincode, deliveryPincode,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("serviceability check failed: status %d", resp.StatusCode)
	}

	var out struct {
		Data struct {
			AvailableCourierCompanies []json.RawMessage `json:"available_courier_companies"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, err
	}

	return len(out.Data.AvailableCourierCompanies) > 0, nil
}

type allowAll struct{}

// NewAllowAll is used when no Shiprocket credentials are configured.
func NewAllowAll() Serviceability {
	return allowAll{}
}

func (allowAll) Check(ctx context.Context, pickupPincode, deliveryPincode string) (bool, error) {
	return true, nil
}
