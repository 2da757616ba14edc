package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/arnelectric/storefront-backend/internal/adapters/repository"
	"github.com/arnelectric/storefront-backend/internal/models"
	returnsvc "github.com/arnelectric/storefront-backend/internal/services/returns"
	"github.com/arnelectric/storefront-backend/utils"
	"github.com/gin-gonic/gin"
)

type ReturnHandler struct {
	Service *returnsvc.Service
}

func NewReturnHandler(service *returnsvc.Service) *ReturnHandler {
	return &ReturnHandler{Service: service}
}

// CreateReturn opens a return request against one of the caller's orders.
func (h *ReturnHandler) CreateReturn(c *gin.Context) {
	var input returnsvc.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	req, err := h.Service.Create(ctx, currentUserID(c), input)
	if err != nil {
		respondReturnError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.SuccessResponse("Return request submitted", gin.H{"returnRequest": req}))
}

func (h *ReturnHandler) GetUserReturns(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	requests, err := h.Service.ListByUser(ctx, currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to fetch return requests"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Return requests fetched successfully", gin.H{"returnRequests": requests}))
}

func (h *ReturnHandler) GetAllReturns(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	requests, err := h.Service.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to fetch return requests"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Return requests fetched successfully", gin.H{"returnRequests": requests}))
}

func (h *ReturnHandler) GetReturnByID(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	req, err := h.Service.Get(ctx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, utils.ErrorResponse("Return request not found"))
		return
	}

	role, _ := c.Get("role")
	if role != "admin" && req.UserID != currentUserID(c) {
		c.JSON(http.StatusForbidden, utils.ErrorResponse("You do not have permission to view this return request"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Return request fetched successfully", gin.H{"returnRequest": req}))
}

func (h *ReturnHandler) ApproveReturn(c *gin.Context) {
	h.transition(c, h.Service.Approve, "Return request approved")
}

func (h *ReturnHandler) RejectReturn(c *gin.Context) {
	h.transition(c, h.Service.Reject, "Return request rejected")
}

func (h *ReturnHandler) MarkReceived(c *gin.Context) {
	h.transition(c, h.Service.MarkReceived, "Return marked as received")
}

func (h *ReturnHandler) ProcessRefund(c *gin.Context) {
	h.transition(c, h.Service.ProcessRefund, "Refund processed")
}

func (h *ReturnHandler) CancelReturn(c *gin.Context) {
	h.transition(c, h.Service.Cancel, "Return request cancelled")
}

func (h *ReturnHandler) transition(c *gin.Context, fn func(context.Context, string) (models.ReturnRequest, error), message string) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	req, err := fn(ctx, c.Param("id"))
	if err != nil {
		respondReturnError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(message, gin.H{"returnRequest": req}))
}

func respondReturnError(c *gin.Context, err error) {
	var ve *models.ValidationError
	var te *models.InvalidTransitionError
	switch {
	case errors.Is(err, returnsvc.ErrNoItemsSelected), errors.Is(err, returnsvc.ErrReasonRequired):
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(err.Error()))
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(ve.Error()))
	case errors.As(err, &te):
		c.JSON(http.StatusConflict, utils.ErrorResponse(te.Error()))
	case errors.Is(err, repository.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, utils.ErrorResponse("Order not found"))
	case errors.Is(err, repository.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, utils.ErrorResponse("Return request not found"))
	case errors.Is(err, repository.ErrStaleStatus):
		c.JSON(http.StatusConflict, utils.ErrorResponse("Return request was modified concurrently, please retry"))
	default:
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to process return request"))
	}
}
