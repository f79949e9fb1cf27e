package cart

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sanketpawarr68-jpg/gavran-magic/internal/middleware"
	"github.com/sanketpawarr68-jpg/gavran-magic/internal/pkg/apperror"
	"github.com/sanketpawarr68-jpg/gavran-magic/internal/pkg/response"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Detail(c *gin.Context) {
	userID := middleware.UserID(c)

	res, err := h.service.Detail(c.Request.Context(), userID)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) AddItem(c *gin.Context) {
	userID := middleware.UserID(c)

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", err.Error())
		return
	}

	res, err := h.service.AddItem(c.Request.Context(), userID, req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusCreated, res, nil)
}

func (h *Handler) UpdateQty(c *gin.Context) {
	userID := middleware.UserID(c)
	productID := c.Param("productId")

	var req UpdateQtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", err.Error())
		return
	}

	res, err := h.service.SetQuantity(c.Request.Context(), userID, productID, req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) RemoveItem(c *gin.Context) {
	userID := middleware.UserID(c)
	productID := c.Param("productId")

	res, err := h.service.RemoveItem(c.Request.Context(), userID, productID)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Clear(c *gin.Context) {
	userID := middleware.UserID(c)

	if err := h.service.Clear(c.Request.Context(), userID); err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, nil, nil)
}
