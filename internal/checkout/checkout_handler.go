package checkout

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sanketpawarr68-jpg/gavran-magic/internal/middleware"
	"github.com/sanketpawarr68-jpg/gavran-magic/internal/pkg/apperror"
	"github.com/sanketpawarr68-jpg/gavran-magic/internal/pkg/response"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(svc Service, rdb *redis.Client, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: svc, rdb: rdb, logger: logger.Named("checkout.handler")}
}

// Checkout validates shipping details and submits the order.
// POST /checkout
func (h *Handler) Checkout(c *gin.Context) {
	userID := middleware.UserID(c)

	lockKey, _ := c.Get("idempotency_lock_key")
	defer func() {
		if lockKey != nil && h.rdb != nil {
			h.rdb.Del(c.Request.Context(), lockKey.(string))
		}
	}()

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("checkout bind failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", err.Error())
		return
	}

	res, err := h.service.Checkout(c.Request.Context(), userID, req)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid shipping details", verr.Fields)
			return
		}

		h.logger.Error("checkout failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	// a replayed request is served these exact envelope bytes, so the cache
	// must hold the rendered envelope, not the bare payload
	envelope := response.Payload(c, res, nil)
	if cacheKey, exists := c.Get("idempotency_cache_key"); exists && h.rdb != nil {
		jsonData, _ := json.Marshal(envelope)
		h.rdb.Set(c.Request.Context(), cacheKey.(string), jsonData, 24*time.Hour)
	}

	c.JSON(http.StatusCreated, envelope)
}
