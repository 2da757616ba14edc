package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/arnelectric/storefront-backend/internal/adapters/repository"
	"github.com/arnelectric/storefront-backend/internal/models"
	ordersvc "github.com/arnelectric/storefront-backend/internal/services/orders"
	"github.com/arnelectric/storefront-backend/utils"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	Service *ordersvc.Service
}

func NewOrderHandler(service *ordersvc.Service) *OrderHandler {
	return &OrderHandler{Service: service}
}

// GetUserOrders returns the caller's order history.
func (h *OrderHandler) GetUserOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	orders, err := h.Service.ListByUser(ctx, currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to fetch orders"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Orders fetched successfully", gin.H{"orders": orders}))
}

func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	order, err := h.Service.Get(ctx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, utils.ErrorResponse("Order not found"))
		return
	}

	role, _ := c.Get("role")
	if role != "admin" && order.UserID != currentUserID(c) {
		c.JSON(http.StatusForbidden, utils.ErrorResponse("You do not have permission to view this order"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Order fetched successfully", gin.H{"order": order}))
}

// GetAllOrders is the admin view of every order.
func (h *OrderHandler) GetAllOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	orders, err := h.Service.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to fetch orders"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Orders fetched successfully", gin.H{"orders": orders}))
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var input struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid status provided"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	order, err := h.Service.UpdateStatus(ctx, c.Param("id"), input.Status)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Order status updated", gin.H{"order": order}))
}

// MarkPaymentPaid confirms a pending UPI payment from the admin panel.
func (h *OrderHandler) MarkPaymentPaid(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	order, err := h.Service.MarkPaymentPaid(ctx, c.Param("id"))
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Payment marked as paid", gin.H{"order": order}))
}

func (h *OrderHandler) GetDashboardStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	stats, err := h.Service.DashboardStats(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to fetch dashboard stats"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Stats fetched successfully", gin.H{"stats": stats}))
}

func respondOrderError(c *gin.Context, err error) {
	var ve *models.ValidationError
	var te *models.InvalidTransitionError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(ve.Error()))
	case errors.As(err, &te):
		c.JSON(http.StatusConflict, utils.ErrorResponse(te.Error()))
	case errors.Is(err, repository.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, utils.ErrorResponse("Order not found"))
	case errors.Is(err, repository.ErrStaleStatus):
		c.JSON(http.StatusConflict, utils.ErrorResponse("Order was modified concurrently, please retry"))
	default:
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to update order"))
	}
}
