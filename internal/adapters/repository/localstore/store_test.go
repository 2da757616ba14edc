package localstore

import (
	"context"
	"testing"
	"time"

	"github.com/arnelectric/storefront-backend/internal/adapters/repository"
	"github.com/arnelectric/storefront-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder(id, userID string, status models.OrderStatus) models.Order {
	return models.Order{
		ID:        id,
		UserID:    userID,
		Status:    status,
		Summary:   models.OrderSummary{Subtotal: 360, DeliveryCharge: 50, Total: 410},
		Payment:   models.PaymentInfo{Method: models.PaymentCashOnDelivery, Status: models.PaymentPending},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestOrdersSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := New(dir)
	require.NoError(t, err)
	orders := NewOrderStore(store)
	require.NoError(t, orders.InsertOrder(ctx, testOrder("ARN-1", "u1", models.StatusPending)))

	// A fresh store over the same directory sees the same records.
	store2, err := New(dir)
	require.NoError(t, err)
	orders2 := NewOrderStore(store2)

	got, err := orders2.GetOrderByID(ctx, "ARN-1")
	require.NoError(t, err)
	assert.Equal(t, 410.0, got.Summary.Total)
}

func TestUpdateOrderStaleStatus(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	orders := NewOrderStore(store)
	ctx := context.Background()

	require.NoError(t, orders.InsertOrder(ctx, testOrder("ARN-1", "u1", models.StatusPending)))

	confirmed := models.StatusConfirmed
	_, err = orders.UpdateOrder(ctx, "ARN-1", models.StatusPending, repository.OrderUpdate{Status: &confirmed})
	require.NoError(t, err)

	// A writer still assuming pending loses the race.
	cancelled := models.StatusCancelled
	_, err = orders.UpdateOrder(ctx, "ARN-1", models.StatusPending, repository.OrderUpdate{Status: &cancelled})
	assert.ErrorIs(t, err, repository.ErrStaleStatus)

	_, err = orders.UpdateOrder(ctx, "ARN-missing", models.StatusPending, repository.OrderUpdate{Status: &confirmed})
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func TestUpdateOrderMirrorsUserCopy(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	orders := NewOrderStore(store)
	ctx := context.Background()

	order := testOrder("ARN-1", "u1", models.StatusPending)
	require.NoError(t, orders.InsertOrder(ctx, order))
	require.NoError(t, orders.InsertUserOrder(ctx, order))

	confirmed := models.StatusConfirmed
	_, err = orders.UpdateOrder(ctx, "ARN-1", models.StatusPending, repository.OrderUpdate{Status: &confirmed})
	require.NoError(t, err)

	userOrders, err := orders.ListOrdersByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, userOrders, 1)
	assert.Equal(t, models.StatusConfirmed, userOrders[0].Status)
}

func TestGetCartDefaultsToEmpty(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	carts := NewCartStore(store)

	cart, err := carts.GetCart(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, "nobody", cart.UserID)
	assert.Empty(t, cart.Items)
}

func TestUserStoreRejectsDuplicateEmail(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	users := NewUserStore(store)
	ctx := context.Background()

	user := models.User{ID: "u1", Name: "Ravi", Email: "ravi@example.com", PasswordHash: "x", Role: "customer"}
	require.NoError(t, users.CreateUser(ctx, user))

	dup := models.User{ID: "u2", Name: "Other", Email: "ravi@example.com", PasswordHash: "y", Role: "customer"}
	assert.ErrorIs(t, users.CreateUser(ctx, dup), repository.ErrEmailTaken)

	got, err := users.GetUserByEmail(ctx, "ravi@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
}

func TestReturnStoreCAS(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	returns := NewReturnStore(store)
	ctx := context.Background()

	require.NoError(t, returns.InsertReturn(ctx, models.ReturnRequest{
		ID: "RET-1", OrderID: "ARN-1", Status: models.ReturnRequested, RefundAmount: 410,
	}))

	approved := models.ReturnApproved
	req, err := returns.UpdateReturn(ctx, "RET-1", models.ReturnRequested, repository.ReturnUpdate{Status: &approved})
	require.NoError(t, err)
	assert.Equal(t, models.ReturnApproved, req.Status)

	rejected := models.ReturnRejected
	_, err = returns.UpdateReturn(ctx, "RET-1", models.ReturnRequested, repository.ReturnUpdate{Status: &rejected})
	assert.ErrorIs(t, err, repository.ErrStaleStatus)
}

func TestWatchReportsUnsupported(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	orders, ok := NewOrderStore(store).(repository.OrderWatcher)
	require.True(t, ok)
	err = orders.WatchOrders(ctx, func(repository.OrderEvent) {})
	assert.ErrorIs(t, err, repository.ErrWatchUnsupported)

	returns, ok := NewReturnStore(store).(repository.ReturnWatcher)
	require.True(t, ok)
	err = returns.WatchReturns(ctx, func(repository.ReturnEvent) {})
	assert.ErrorIs(t, err, repository.ErrWatchUnsupported)
}
