package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/arnelectric/storefront-backend/internal/adapters/repository"
	"github.com/arnelectric/storefront-backend/internal/models"
	cartsvc "github.com/arnelectric/storefront-backend/internal/services/cart"
	"github.com/arnelectric/storefront-backend/utils"
	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	Service *cartsvc.Service
}

func NewCartHandler(service *cartsvc.Service) *CartHandler {
	return &CartHandler{Service: service}
}

func currentUserID(c *gin.Context) string {
	userID, _ := c.Get("userId")
	id, _ := userID.(string)
	return id
}

func (h *CartHandler) GetCart(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	cart, err := h.Service.Get(ctx, currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to fetch cart"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Cart fetched successfully", gin.H{"cart": cart}))
}

func (h *CartHandler) AddToCart(c *gin.Context) {
	var input struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request body"))
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	cart, err := h.Service.AddItem(ctx, currentUserID(c), input.ProductID, input.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to update cart"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Item added to cart", gin.H{"cart": cart}))
}

func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	cart, err := h.Service.SetQuantity(ctx, currentUserID(c), c.Param("id"), input.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to update cart"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Cart updated", gin.H{"cart": cart}))
}

func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	cart, err := h.Service.RemoveItem(ctx, currentUserID(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to update cart"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Item removed from cart", gin.H{"cart": cart}))
}

// Checkout converts the cart into an order.
func (h *CartHandler) Checkout(c *gin.Context) {
	var input models.CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	result, err := h.Service.Checkout(ctx, currentUserID(c), input)
	if err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, utils.ErrorResponse(ve.Error()))
			return
		}
		if errors.Is(err, repository.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utils.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to place order"))
		return
	}

	payload := gin.H{
		"order":        result.Order,
		"whatsappLink": result.WhatsAppLink,
	}
	if result.Warning != "" {
		payload["warning"] = result.Warning
	}
	c.JSON(http.StatusCreated, utils.SuccessResponse("Order placed successfully", payload))
}
