package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/arnelectric/storefront-backend/internal/adapters/repository"
	"github.com/arnelectric/storefront-backend/internal/adapters/repository/localstore"
	"github.com/arnelectric/storefront-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, repository.ProductRepository) {
	t.Helper()
	store, err := localstore.New(t.TempDir())
	require.NoError(t, err)

	products := localstore.NewProductStore(store)
	svc := NewService(
		localstore.NewCartStore(store),
		products,
		localstore.NewOrderStore(store),
		nil,
	)
	return svc, products
}

func seedProduct(t *testing.T, products repository.ProductRepository, id, name string, price float64) {
	t.Helper()
	_, err := products.CreateProduct(context.Background(), models.Product{
		ID:       id,
		Name:     name,
		Category: "fans",
		Price:    price,
		IsActive: true,
	})
	require.NoError(t, err)
}

func validCustomer() models.CustomerInfo {
	return models.CustomerInfo{
		Name:    "Ravi Kumar",
		Phone:   "9876543210",
		Address: "12 MG Road",
		Pincode: "600001",
	}
}

func TestAddRemoveRoundTrip(t *testing.T) {
	svc, products := newTestService(t)
	ctx := context.Background()
	seedProduct(t, products, "p1", "Ceiling Fan", 120)

	cart, err := svc.AddItem(ctx, "u1", "p1", 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 120.0, cart.Items[0].UnitPrice)

	cart, err = svc.RemoveItem(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	// Round trip leaves the persisted cart empty too.
	cart, err = svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestAddUnknownProductIsNoOp(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "u1", "ghost", 1)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestAddExistingLineIncrements(t *testing.T) {
	svc, products := newTestService(t)
	ctx := context.Background()
	seedProduct(t, products, "p1", "Ceiling Fan", 120)

	_, err := svc.AddItem(ctx, "u1", "p1", 2)
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, "u1", "p1", 3)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestQuantityClamping(t *testing.T) {
	svc, products := newTestService(t)
	ctx := context.Background()
	seedProduct(t, products, "p1", "Ceiling Fan", 120)

	cart, err := svc.AddItem(ctx, "u1", "p1", 50)
	require.NoError(t, err)
	assert.Equal(t, models.MaxCartQuantity, cart.Items[0].Quantity)

	cart, err = svc.SetQuantity(ctx, "u1", "p1", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, cart.Items[0].Quantity)

	// Below the minimum means removal.
	cart, err = svc.SetQuantity(ctx, "u1", "p1", 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestSummarize(t *testing.T) {
	cart := models.Cart{Items: []models.CartItem{
		{ProductID: "p1", UnitPrice: 120, Quantity: 3},
	}}

	summary := Summarize(cart, models.DeliveryHome)
	assert.Equal(t, 360.0, summary.Subtotal)
	assert.Equal(t, 50.0, summary.DeliveryCharge)
	assert.Equal(t, 410.0, summary.Total)

	cart.Items[0].Quantity = 5
	summary = Summarize(cart, models.DeliveryHome)
	assert.Equal(t, 600.0, summary.Subtotal)
	assert.Equal(t, 0.0, summary.DeliveryCharge)
	assert.Equal(t, 600.0, summary.Total)

	summary = Summarize(cart, models.DeliveryPickup)
	assert.Equal(t, 0.0, summary.DeliveryCharge)
}

func TestCheckoutBelowThresholdAddsDelivery(t *testing.T) {
	svc, products := newTestService(t)
	ctx := context.Background()
	seedProduct(t, products, "p1", "Ceiling Fan", 120)

	_, err := svc.AddItem(ctx, "u1", "p1", 3)
	require.NoError(t, err)

	result, err := svc.Checkout(ctx, "u1", models.CheckoutInput{
		Customer:       validCustomer(),
		DeliveryMethod: models.DeliveryHome,
		PaymentMethod:  models.PaymentCashOnDelivery,
	})
	require.NoError(t, err)

	order := result.Order
	assert.Equal(t, 360.0, order.Summary.Subtotal)
	assert.Equal(t, 50.0, order.Summary.DeliveryCharge)
	assert.Equal(t, 410.0, order.Summary.Total)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, models.PaymentPending, order.Payment.Status)
	assert.Contains(t, order.ID, "ARN-")
	assert.Empty(t, result.Warning)

	// Cart is cleared once the order stands.
	cart, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCheckoutAboveThresholdFreeDelivery(t *testing.T) {
	svc, products := newTestService(t)
	ctx := context.Background()
	seedProduct(t, products, "p1", "Table Fan", 200)

	_, err := svc.AddItem(ctx, "u1", "p1", 3)
	require.NoError(t, err)

	result, err := svc.Checkout(ctx, "u1", models.CheckoutInput{
		Customer:       validCustomer(),
		DeliveryMethod: models.DeliveryHome,
		PaymentMethod:  models.PaymentUPI,
	})
	require.NoError(t, err)
	assert.Equal(t, 600.0, result.Order.Summary.Subtotal)
	assert.Equal(t, 0.0, result.Order.Summary.DeliveryCharge)
	assert.Equal(t, 600.0, result.Order.Summary.Total)
}

func TestCheckoutValidationLeavesCartIntact(t *testing.T) {
	svc, products := newTestService(t)
	ctx := context.Background()
	seedProduct(t, products, "p1", "Ceiling Fan", 120)

	_, err := svc.AddItem(ctx, "u1", "p1", 1)
	require.NoError(t, err)

	input := models.CheckoutInput{
		Customer:       validCustomer(),
		DeliveryMethod: models.DeliveryHome,
		PaymentMethod:  models.PaymentCashOnDelivery,
	}
	input.Customer.Phone = ""

	_, err = svc.Checkout(ctx, "u1", input)
	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "phone", ve.Field)

	cart, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Checkout(ctx, "u1", models.CheckoutInput{
		Customer:       validCustomer(),
		DeliveryMethod: models.DeliveryHome,
		PaymentMethod:  models.PaymentCashOnDelivery,
	})
	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "cart", ve.Field)
}

func TestCheckoutWritesBothOrderCopies(t *testing.T) {
	store, err := localstore.New(t.TempDir())
	require.NoError(t, err)
	orderRepo := localstore.NewOrderStore(store)
	products := localstore.NewProductStore(store)
	svc := NewService(localstore.NewCartStore(store), products, orderRepo, nil)

	ctx := context.Background()
	seedProduct(t, products, "p1", "Ceiling Fan", 120)
	_, err = svc.AddItem(ctx, "u1", "p1", 1)
	require.NoError(t, err)

	result, err := svc.Checkout(ctx, "u1", models.CheckoutInput{
		Customer:       validCustomer(),
		DeliveryMethod: models.DeliveryHome,
		PaymentMethod:  models.PaymentCashOnDelivery,
	})
	require.NoError(t, err)

	adminOrders, err := orderRepo.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, adminOrders, 1)
	assert.Equal(t, result.Order.ID, adminOrders[0].ID)

	userOrders, err := orderRepo.ListOrdersByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, userOrders, 1)
	assert.Equal(t, result.Order.ID, userOrders[0].ID)
}

// faultyOrderRepo wraps a real repository and fails selected writes so
// the two halves of the dual write can break independently.
type faultyOrderRepo struct {
	repository.OrderRepository
	failInsert     bool
	failUserInsert bool
}

func (r *faultyOrderRepo) InsertOrder(ctx context.Context, order models.Order) error {
	if r.failInsert {
		return errors.New("disk full")
	}
	return r.OrderRepository.InsertOrder(ctx, order)
}

func (r *faultyOrderRepo) InsertUserOrder(ctx context.Context, order models.Order) error {
	if r.failUserInsert {
		return errors.New("disk full")
	}
	return r.OrderRepository.InsertUserOrder(ctx, order)
}

func TestCheckoutUserCopyFailureKeepsOrderWithWarning(t *testing.T) {
	store, err := localstore.New(t.TempDir())
	require.NoError(t, err)
	orderRepo := &faultyOrderRepo{
		OrderRepository: localstore.NewOrderStore(store),
		failUserInsert:  true,
	}
	products := localstore.NewProductStore(store)
	svc := NewService(localstore.NewCartStore(store), products, orderRepo, nil)

	ctx := context.Background()
	seedProduct(t, products, "p1", "Ceiling Fan", 120)
	_, err = svc.AddItem(ctx, "u1", "p1", 1)
	require.NoError(t, err)

	result, err := svc.Checkout(ctx, "u1", models.CheckoutInput{
		Customer:       validCustomer(),
		DeliveryMethod: models.DeliveryHome,
		PaymentMethod:  models.PaymentCashOnDelivery,
	})
	require.NoError(t, err)

	// The order stands and the failure is surfaced, not swallowed.
	require.NotEmpty(t, result.Warning)
	assert.Contains(t, result.Warning, result.Order.ID)
	assert.Contains(t, result.Warning, "customer copy")

	adminOrders, err := orderRepo.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, adminOrders, 1)

	userOrders, err := orderRepo.ListOrdersByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, userOrders)

	cart, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCheckoutAdminWriteFailureKeepsCart(t *testing.T) {
	store, err := localstore.New(t.TempDir())
	require.NoError(t, err)
	orderRepo := &faultyOrderRepo{
		OrderRepository: localstore.NewOrderStore(store),
		failInsert:      true,
	}
	products := localstore.NewProductStore(store)
	svc := NewService(localstore.NewCartStore(store), products, orderRepo, nil)

	ctx := context.Background()
	seedProduct(t, products, "p1", "Ceiling Fan", 120)
	_, err = svc.AddItem(ctx, "u1", "p1", 1)
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, "u1", models.CheckoutInput{
		Customer:       validCustomer(),
		DeliveryMethod: models.DeliveryHome,
		PaymentMethod:  models.PaymentCashOnDelivery,
	})
	require.Error(t, err)

	adminOrders, err := orderRepo.ListOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, adminOrders)

	// No order means the customer keeps their cart.
	cart, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p1", cart.Items[0].ProductID)
}
