package tracking

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sanketpawarr68-jpg/gavran-magic/internal/middleware"
	"github.com/sanketpawarr68-jpg/gavran-magic/internal/order"
	"github.com/sanketpawarr68-jpg/gavran-magic/internal/pkg/apperror"
	"github.com/sanketpawarr68-jpg/gavran-magic/internal/pkg/response"
)

type Handler struct {
	coordinator *Coordinator
	logger      *zap.Logger
}

func NewHandler(coordinator *Coordinator, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{coordinator: coordinator, logger: logger.Named("tracking.handler")}
}

// TrackOrder loads an order and returns the progress view.
// GET /tracking/orders/:orderId
func (h *Handler) TrackOrder(c *gin.Context) {
	orderID := c.Param("orderId")
	if orderID == "" {
		httpErr := apperror.ToHTTP(order.ErrInvalidOrderID)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	res, err := h.coordinator.LoadOrder(c.Request.Context(), orderID)
	if err != nil {
		h.logger.Warn("order lookup failed",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}

// CancelOrder cancels the order and returns the refreshed view.
// POST /tracking/orders/:orderId/cancel
func (h *Handler) CancelOrder(c *gin.Context) {
	orderID := c.Param("orderId")

	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(ErrReasonRequired)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	// load the order first so the cancel guard runs on a fresh copy
	if h.coordinator.Current(orderID) == nil {
		if _, err := h.coordinator.LoadOrder(c.Request.Context(), orderID); err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			return
		}
	}

	res, err := h.coordinator.Cancel(c.Request.Context(), orderID, req.Reason)
	if err != nil {
		h.logger.Warn("cancel failed",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}

// RecentOrders lists the caller's orders for the quick-pick list.
// GET /tracking/orders
func (h *Handler) RecentOrders(c *gin.Context) {
	userID := middleware.UserID(c)
	orders := h.coordinator.RecentOrders(c.Request.Context(), userID)
	response.Success(c, http.StatusOK, orders, nil)
}

// Route builds the driving path from the dispatch origin to a destination.
// POST /tracking/route
func (h *Handler) Route(c *gin.Context) {
	var req RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", err.Error())
		return
	}

	path := h.coordinator.BuildRoute(c.Request.Context(), req.Destination)
	response.Success(c, http.StatusOK, RouteResponse{
		Source:      h.coordinator.Source(),
		Destination: req.Destination,
		Path:        path,
	}, nil)
}

// Location resolves the shopper's position and routes to it.
// GET /tracking/location
func (h *Handler) Location(c *gin.Context) {
	pos, path, place, err := h.coordinator.ResolveUserLocation(c.Request.Context())
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, LocationResponse{Location: pos, Path: path, Place: place}, nil)
}
