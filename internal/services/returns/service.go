// Package returns handles return requests: creation against a prior
// order, the approval pipeline, and refund settlement.
package returns

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/arnelectric/storefront-backend/internal/adapters/repository"
	"github.com/arnelectric/storefront-backend/internal/models"
	"github.com/arnelectric/storefront-backend/internal/notify"
)

var (
	ErrNoItemsSelected = errors.New("no items selected for return")
	ErrReasonRequired  = errors.New("a return reason is required")
)

type Service struct {
	Returns  repository.ReturnRepository
	Orders   repository.OrderRepository
	Notifier notify.Notifier
}

func NewService(returns repository.ReturnRepository, orders repository.OrderRepository, notifier notify.Notifier) *Service {
	return &Service{Returns: returns, Orders: orders, Notifier: notifier}
}

// CreateInput is the customer's return form. ItemIndexes refer to
// positions in the order's item list.
type CreateInput struct {
	OrderID         string              `json:"orderId" binding:"required"`
	ItemIndexes     []int               `json:"itemIndexes" binding:"required"`
	Reason          models.ReturnReason `json:"reason" binding:"required"`
	AdditionalNotes string              `json:"additionalNotes"`
}

// Create opens a return request against an existing order. The refund
// amount is the sum of the selected line totals, plus the delivery
// charge when every line of the order is being sent back. It is fixed
// here and never recalculated.
func (s *Service) Create(ctx context.Context, userID string, input CreateInput) (models.ReturnRequest, error) {
	order, err := s.Orders.GetOrderByID(ctx, input.OrderID)
	if err != nil {
		return models.ReturnRequest{}, err
	}

	if len(input.ItemIndexes) == 0 {
		return models.ReturnRequest{}, ErrNoItemsSelected
	}
	if strings.TrimSpace(string(input.Reason)) == "" {
		return models.ReturnRequest{}, ErrReasonRequired
	}
	if !input.Reason.IsValid() {
		return models.ReturnRequest{}, &models.ValidationError{Field: "reason", Message: "unknown return reason"}
	}

	// Dedupe the selection first so duplicated indexes neither double a
	// line's refund nor disqualify the delivery-charge refund.
	seen := make(map[int]bool, len(input.ItemIndexes))
	selected := make([]int, 0, len(input.ItemIndexes))
	for _, idx := range input.ItemIndexes {
		if idx < 0 || idx >= len(order.Items) {
			return models.ReturnRequest{}, &models.ValidationError{Field: "itemIndexes", Message: "item selection out of range"}
		}
		if seen[idx] {
			continue
		}
		seen[idx] = true
		selected = append(selected, idx)
	}

	items := make([]models.OrderItem, 0, len(selected))
	var refund float64
	for _, idx := range selected {
		items = append(items, order.Items[idx])
		refund += order.Items[idx].LineTotal
	}
	if order.FullyCovers(selected) {
		refund += order.Summary.DeliveryCharge
	}

	now := time.Now()
	req := models.ReturnRequest{
		ID:              models.NewReturnID(now),
		OrderID:         order.ID,
		UserID:          userID,
		Customer:        order.Customer,
		Items:           items,
		Reason:          input.Reason,
		AdditionalNotes: input.AdditionalNotes,
		RefundAmount:    refund,
		Status:          models.ReturnRequested,
		RequestedAt:     now,
		UpdatedAt:       now,
	}
	if err := s.Returns.InsertReturn(ctx, req); err != nil {
		return models.ReturnRequest{}, err
	}
	return req, nil
}

func (s *Service) Get(ctx context.Context, returnID string) (models.ReturnRequest, error) {
	return s.Returns.GetReturnByID(ctx, returnID)
}

func (s *Service) List(ctx context.Context) ([]models.ReturnRequest, error) {
	return s.Returns.ListReturns(ctx)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]models.ReturnRequest, error) {
	return s.Returns.ListReturnsByUser(ctx, userID)
}

func (s *Service) Approve(ctx context.Context, returnID string) (models.ReturnRequest, error) {
	req, err := s.transition(ctx, returnID, models.ReturnApproved, nil)
	if err != nil {
		return models.ReturnRequest{}, err
	}
	if s.Notifier != nil {
		s.Notifier.ReturnApproved(req)
	}
	return req, nil
}

func (s *Service) Reject(ctx context.Context, returnID string) (models.ReturnRequest, error) {
	req, err := s.transition(ctx, returnID, models.ReturnRejected, nil)
	if err != nil {
		return models.ReturnRequest{}, err
	}
	if s.Notifier != nil {
		s.Notifier.ReturnRejected(req)
	}
	return req, nil
}

func (s *Service) MarkReceived(ctx context.Context, returnID string) (models.ReturnRequest, error) {
	return s.transition(ctx, returnID, models.ReturnReceived, nil)
}

// ProcessRefund settles an inspected return. The amount paid out is the
// RefundAmount fixed at creation; RefundDate records the settlement time.
func (s *Service) ProcessRefund(ctx context.Context, returnID string) (models.ReturnRequest, error) {
	now := time.Now()
	req, err := s.transition(ctx, returnID, models.ReturnRefunded, &now)
	if err != nil {
		return models.ReturnRequest{}, err
	}
	if s.Notifier != nil {
		s.Notifier.RefundProcessed(req)
	}
	return req, nil
}

func (s *Service) Cancel(ctx context.Context, returnID string) (models.ReturnRequest, error) {
	return s.transition(ctx, returnID, models.ReturnCancelled, nil)
}

func (s *Service) transition(ctx context.Context, returnID string, target models.ReturnStatus, refundDate *time.Time) (models.ReturnRequest, error) {
	req, err := s.Returns.GetReturnByID(ctx, returnID)
	if err != nil {
		return models.ReturnRequest{}, err
	}
	if !req.Status.CanTransitionTo(target) {
		return models.ReturnRequest{}, &models.InvalidTransitionError{
			Entity: "return",
			From:   req.Status.String(),
			To:     target.String(),
		}
	}
	return s.Returns.UpdateReturn(ctx, returnID, req.Status, repository.ReturnUpdate{
		Status:     &target,
		RefundDate: refundDate,
	})
}
