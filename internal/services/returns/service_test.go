package returns

import (
	"context"
	"testing"
	"time"

	"github.com/arnelectric/storefront-backend/internal/adapters/repository"
	"github.com/arnelectric/storefront-backend/internal/adapters/repository/localstore"
	"github.com/arnelectric/storefront-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, repository.OrderRepository) {
	t.Helper()
	store, err := localstore.New(t.TempDir())
	require.NoError(t, err)

	orders := localstore.NewOrderStore(store)
	svc := NewService(localstore.NewReturnStore(store), orders, nil)
	return svc, orders
}

func seedOrder(t *testing.T, orders repository.OrderRepository) models.Order {
	t.Helper()
	order := models.Order{
		ID:     "ARN-1",
		UserID: "u1",
		Customer: models.CustomerInfo{
			Name:    "Ravi Kumar",
			Phone:   "9876543210",
			Address: "12 MG Road",
			Pincode: "600001",
		},
		Items: []models.OrderItem{
			{Name: "Ceiling Fan", Quantity: 2, UnitPrice: 120, LineTotal: 240},
			{Name: "Switch Board", Quantity: 1, UnitPrice: 120, LineTotal: 120},
		},
		Summary:   models.OrderSummary{Subtotal: 360, DeliveryCharge: 50, Total: 410},
		Status:    models.StatusDelivered,
		Payment:   models.PaymentInfo{Method: models.PaymentUPI, Status: models.PaymentPaid},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, orders.InsertOrder(context.Background(), order))
	return order
}

func TestCreateFullReturnRefundsDelivery(t *testing.T) {
	svc, orders := newTestService(t)
	ctx := context.Background()
	seedOrder(t, orders)

	req, err := svc.Create(ctx, "u1", CreateInput{
		OrderID:     "ARN-1",
		ItemIndexes: []int{0, 1},
		Reason:      models.ReasonDefective,
	})
	require.NoError(t, err)

	// All lines plus the delivery charge: 240 + 120 + 50.
	assert.Equal(t, 410.0, req.RefundAmount)
	assert.Equal(t, models.ReturnRequested, req.Status)
	assert.Contains(t, req.ID, "RET-")
	assert.Equal(t, "Ravi Kumar", req.Customer.Name)
	assert.Len(t, req.Items, 2)
}

func TestCreatePartialReturnExcludesDelivery(t *testing.T) {
	svc, orders := newTestService(t)
	ctx := context.Background()
	seedOrder(t, orders)

	req, err := svc.Create(ctx, "u1", CreateInput{
		OrderID:     "ARN-1",
		ItemIndexes: []int{1},
		Reason:      models.ReasonWrongItem,
	})
	require.NoError(t, err)
	assert.Equal(t, 120.0, req.RefundAmount)
	assert.Len(t, req.Items, 1)
	assert.Equal(t, "Switch Board", req.Items[0].Name)
}

func TestCreateDeduplicatesItemIndexes(t *testing.T) {
	svc, orders := newTestService(t)
	ctx := context.Background()
	seedOrder(t, orders)

	// A duplicated index neither doubles the line's refund nor
	// disqualifies the delivery-charge refund for full coverage.
	req, err := svc.Create(ctx, "u1", CreateInput{
		OrderID:     "ARN-1",
		ItemIndexes: []int{0, 1, 1},
		Reason:      models.ReasonDefective,
	})
	require.NoError(t, err)
	assert.Equal(t, 410.0, req.RefundAmount)
	assert.Len(t, req.Items, 2)
}

func TestCreateUnknownOrder(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", CreateInput{
		OrderID:     "ARN-missing",
		ItemIndexes: []int{0},
		Reason:      models.ReasonDefective,
	})
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)

	// No record was created for the failed request.
	reqs, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, reqs)
}

func TestCreateValidation(t *testing.T) {
	svc, orders := newTestService(t)
	ctx := context.Background()
	seedOrder(t, orders)

	_, err := svc.Create(ctx, "u1", CreateInput{OrderID: "ARN-1", Reason: models.ReasonDefective})
	assert.ErrorIs(t, err, ErrNoItemsSelected)

	_, err = svc.Create(ctx, "u1", CreateInput{OrderID: "ARN-1", ItemIndexes: []int{0}})
	assert.ErrorIs(t, err, ErrReasonRequired)

	_, err = svc.Create(ctx, "u1", CreateInput{
		OrderID: "ARN-1", ItemIndexes: []int{5}, Reason: models.ReasonDefective,
	})
	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "itemIndexes", ve.Field)

	_, err = svc.Create(ctx, "u1", CreateInput{
		OrderID: "ARN-1", ItemIndexes: []int{0}, Reason: "changed-my-mind",
	})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "reason", ve.Field)
}

func TestReturnLifecycleToRefund(t *testing.T) {
	svc, orders := newTestService(t)
	ctx := context.Background()
	seedOrder(t, orders)

	req, err := svc.Create(ctx, "u1", CreateInput{
		OrderID: "ARN-1", ItemIndexes: []int{0, 1}, Reason: models.ReasonDefective,
	})
	require.NoError(t, err)

	// Refund is only reachable once the items are back.
	_, err = svc.ProcessRefund(ctx, req.ID)
	var te *models.InvalidTransitionError
	require.ErrorAs(t, err, &te)

	req, err = svc.Approve(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReturnApproved, req.Status)

	_, err = svc.ProcessRefund(ctx, req.ID)
	require.ErrorAs(t, err, &te)

	req, err = svc.MarkReceived(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReturnReceived, req.Status)

	req, err = svc.ProcessRefund(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReturnRefunded, req.Status)
	require.NotNil(t, req.RefundDate)
	assert.Equal(t, 410.0, req.RefundAmount)
}

func TestRejectFromRequestedOnly(t *testing.T) {
	svc, orders := newTestService(t)
	ctx := context.Background()
	seedOrder(t, orders)

	req, err := svc.Create(ctx, "u1", CreateInput{
		OrderID: "ARN-1", ItemIndexes: []int{0}, Reason: models.ReasonDefective,
	})
	require.NoError(t, err)

	req, err = svc.Approve(ctx, req.ID)
	require.NoError(t, err)

	_, err = svc.Reject(ctx, req.ID)
	var te *models.InvalidTransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "return", te.Entity)
	assert.Equal(t, "approved", te.From)
	assert.Equal(t, "rejected", te.To)
}

func TestCancelFromAnyActiveState(t *testing.T) {
	svc, orders := newTestService(t)
	ctx := context.Background()
	seedOrder(t, orders)

	req, err := svc.Create(ctx, "u1", CreateInput{
		OrderID: "ARN-1", ItemIndexes: []int{0}, Reason: models.ReasonOther,
	})
	require.NoError(t, err)

	req, err = svc.Cancel(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReturnCancelled, req.Status)

	// Terminal states stay put.
	_, err = svc.Approve(ctx, req.ID)
	var te *models.InvalidTransitionError
	assert.ErrorAs(t, err, &te)
}
