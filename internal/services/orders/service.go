// Package orders implements the admin-side order lifecycle and the
// revenue rollups shown on the dashboard.
package orders

import (
	"context"
	"time"

	"github.com/arnelectric/storefront-backend/internal/adapters/repository"
	"github.com/arnelectric/storefront-backend/internal/models"
	"github.com/arnelectric/storefront-backend/internal/notify"
)

type Service struct {
	Orders   repository.OrderRepository
	Returns  repository.ReturnRepository
	Products repository.ProductRepository
	Notifier notify.Notifier
}

func NewService(orders repository.OrderRepository, returns repository.ReturnRepository, products repository.ProductRepository, notifier notify.Notifier) *Service {
	return &Service{Orders: orders, Returns: returns, Products: products, Notifier: notifier}
}

func (s *Service) Get(ctx context.Context, orderID string) (models.Order, error) {
	return s.Orders.GetOrderByID(ctx, orderID)
}

func (s *Service) List(ctx context.Context) ([]models.Order, error) {
	return s.Orders.ListOrders(ctx)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.Orders.ListOrdersByUser(ctx, userID)
}

// UpdateStatus moves an order along its lifecycle. Illegal moves are
// rejected before any write. Marking a cash-on-delivery order delivered
// settles its payment in the same update, since cash changes hands at
// the door.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, target models.OrderStatus) (models.Order, error) {
	if !target.IsValid() {
		return models.Order{}, &models.ValidationError{Field: "status", Message: "unknown order status"}
	}

	order, err := s.Orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return models.Order{}, err
	}
	if !order.Status.CanTransitionTo(target) {
		return models.Order{}, &models.InvalidTransitionError{
			Entity: "order",
			From:   order.Status.String(),
			To:     target.String(),
		}
	}

	update := repository.OrderUpdate{Status: &target}
	if target == models.StatusDelivered &&
		order.Payment.Method == models.PaymentCashOnDelivery &&
		order.Payment.Status == models.PaymentPending {
		paid := models.PaymentPaid
		now := time.Now()
		update.PaymentStatus = &paid
		update.PaidAt = &now
	}

	updated, err := s.Orders.UpdateOrder(ctx, orderID, order.Status, update)
	if err != nil {
		return models.Order{}, err
	}

	if s.Notifier != nil {
		s.Notifier.OrderStatusChanged(updated)
	}
	return updated, nil
}

// MarkPaymentPaid confirms a pending UPI payment. Cash orders settle via
// delivery, never through this path.
func (s *Service) MarkPaymentPaid(ctx context.Context, orderID string) (models.Order, error) {
	order, err := s.Orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return models.Order{}, err
	}
	if order.Payment.Method == models.PaymentCashOnDelivery || order.Payment.Status != models.PaymentPending {
		return models.Order{}, &models.InvalidTransitionError{
			Entity: "payment",
			From:   string(order.Payment.Status),
			To:     string(models.PaymentPaid),
		}
	}

	paid := models.PaymentPaid
	now := time.Now()
	return s.Orders.UpdateOrder(ctx, orderID, order.Status, repository.OrderUpdate{
		PaymentStatus: &paid,
		PaidAt:        &now,
	})
}

// TotalPaidRevenue sums the totals of paid orders and subtracts refunds
// that were actually processed against those paid orders. Refunds on
// orders that never reached paid do not dent revenue.
func (s *Service) TotalPaidRevenue(ctx context.Context) (float64, error) {
	allOrders, err := s.Orders.ListOrders(ctx)
	if err != nil {
		return 0, err
	}

	paid := make(map[string]bool, len(allOrders))
	var revenue float64
	for _, order := range allOrders {
		if order.Payment.Status == models.PaymentPaid {
			paid[order.ID] = true
			revenue += order.Summary.Total
		}
	}

	returns, err := s.Returns.ListReturns(ctx)
	if err != nil {
		return 0, err
	}
	for _, req := range returns {
		if req.Status == models.ReturnRefunded && paid[req.OrderID] {
			revenue -= req.RefundAmount
		}
	}
	return revenue, nil
}

// Stats is the admin dashboard headline block.
type Stats struct {
	TotalOrders   int     `json:"totalOrders"`
	TotalProducts int     `json:"totalProducts"`
	TotalRevenue  float64 `json:"totalRevenue"`
}

func (s *Service) DashboardStats(ctx context.Context) (Stats, error) {
	allOrders, err := s.Orders.ListOrders(ctx)
	if err != nil {
		return Stats{}, err
	}
	products, err := s.Products.ListProducts(ctx, "")
	if err != nil {
		return Stats{}, err
	}
	revenue, err := s.TotalPaidRevenue(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		TotalOrders:   len(allOrders),
		TotalProducts: len(products),
		TotalRevenue:  revenue,
	}, nil
}
