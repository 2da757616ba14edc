// Package cart owns the session cart and the checkout step that turns it
// into an immutable order.
package cart

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/arnelectric/storefront-backend/internal/adapters/repository"
	"github.com/arnelectric/storefront-backend/internal/models"
	"github.com/arnelectric/storefront-backend/internal/notify"
	"github.com/sirupsen/logrus"
)

type Service struct {
	Carts    repository.CartRepository
	Products repository.ProductRepository
	Orders   repository.OrderRepository
	Notifier notify.Notifier
}

func NewService(carts repository.CartRepository, products repository.ProductRepository, orders repository.OrderRepository, notifier notify.Notifier) *Service {
	return &Service{Carts: carts, Products: products, Orders: orders, Notifier: notifier}
}

func (s *Service) Get(ctx context.Context, userID string) (models.Cart, error) {
	return s.Carts.GetCart(ctx, userID)
}

// AddItem puts a product in the cart, or bumps the quantity of an
// existing line. An unresolvable product id leaves the cart untouched.
func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int) (models.Cart, error) {
	if quantity < models.MinCartQuantity {
		quantity = models.MinCartQuantity
	}

	cart, err := s.Carts.GetCart(ctx, userID)
	if err != nil {
		return models.Cart{}, err
	}

	product, err := s.Products.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return cart, nil
		}
		return models.Cart{}, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = clampQuantity(cart.Items[i].Quantity + quantity)
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  clampQuantity(quantity),
		})
	}

	if err := s.Carts.SaveCart(ctx, cart); err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

func (s *Service) RemoveItem(ctx context.Context, userID, productID string) (models.Cart, error) {
	cart, err := s.Carts.GetCart(ctx, userID)
	if err != nil {
		return models.Cart{}, err
	}

	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			if err := s.Carts.SaveCart(ctx, cart); err != nil {
				return models.Cart{}, err
			}
			break
		}
	}
	return cart, nil
}

// SetQuantity clamps to the allowed range; anything below the minimum is
// treated as removal, matching the storefront's quantity stepper.
func (s *Service) SetQuantity(ctx context.Context, userID, productID string, quantity int) (models.Cart, error) {
	if quantity < models.MinCartQuantity {
		return s.RemoveItem(ctx, userID, productID)
	}

	cart, err := s.Carts.GetCart(ctx, userID)
	if err != nil {
		return models.Cart{}, err
	}

	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = clampQuantity(quantity)
			if err := s.Carts.SaveCart(ctx, cart); err != nil {
				return models.Cart{}, err
			}
			break
		}
	}
	return cart, nil
}

func clampQuantity(q int) int {
	if q < models.MinCartQuantity {
		return models.MinCartQuantity
	}
	if q > models.MaxCartQuantity {
		return models.MaxCartQuantity
	}
	return q
}

// Summarize is the pure pricing function over cart lines.
func Summarize(cart models.Cart, method models.DeliveryMethod) models.OrderSummary {
	subtotal := cart.Subtotal()
	delivery := models.DeliveryChargeFor(subtotal, method)
	return models.OrderSummary{
		Subtotal:       subtotal,
		DeliveryCharge: delivery,
		Total:          subtotal + delivery,
	}
}

type CheckoutResult struct {
	Order models.Order
	// Warning is set when the order was placed but the per-customer
	// copy could not be written; the caller must surface it.
	Warning string
	// WhatsAppLink is the pre-filled shop notification the storefront opens.
	WhatsAppLink string
}

// Checkout validates the form and the cart, snapshots an immutable
// order, writes it to the admin-global and per-customer collections,
// and only then clears the cart. On any validation failure nothing is
// mutated and the cart is kept.
func (s *Service) Checkout(ctx context.Context, userID string, input models.CheckoutInput) (CheckoutResult, error) {
	if err := validateCheckout(input); err != nil {
		return CheckoutResult{}, err
	}

	cart, err := s.Carts.GetCart(ctx, userID)
	if err != nil {
		return CheckoutResult{}, err
	}
	if len(cart.Items) == 0 {
		return CheckoutResult{}, &models.ValidationError{Field: "cart", Message: "your cart is empty"}
	}

	now := time.Now()
	summary := Summarize(cart, input.DeliveryMethod)
	order := models.Order{
		ID:       models.NewOrderID(now),
		UserID:   userID,
		Customer: input.Customer,
		Items:    cart.ToOrderItems(),
		Summary:  summary,
		Status:   models.StatusPending,
		Payment: models.PaymentInfo{
			Method: input.PaymentMethod,
			Status: models.PaymentPending,
		},
		Delivery: models.DeliveryInfo{
			Method:  input.DeliveryMethod,
			Charges: summary.DeliveryCharge,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	// The admin-global write is authoritative: if it fails the order was
	// not placed and the cart must survive for a retry.
	if err := s.Orders.InsertOrder(ctx, order); err != nil {
		return CheckoutResult{}, err
	}

	result := CheckoutResult{Order: order}
	if err := s.Orders.InsertUserOrder(ctx, order); err != nil {
		dw := &models.DualWriteError{OrderID: order.ID, Err: err}
		logrus.Warn(dw.Error())
		result.Warning = dw.Error()
	}

	if err := s.Carts.ClearCart(ctx, userID); err != nil {
		logrus.Warnf("order %s placed but cart for %s was not cleared: %v", order.ID, userID, err)
	}

	if s.Notifier != nil {
		result.WhatsAppLink = s.Notifier.OrderPlaced(order)
	}
	return result, nil
}

func validateCheckout(input models.CheckoutInput) error {
	c := input.Customer
	switch {
	case strings.TrimSpace(c.Name) == "":
		return &models.ValidationError{Field: "name", Message: "name is required"}
	case strings.TrimSpace(c.Phone) == "":
		return &models.ValidationError{Field: "phone", Message: "phone is required"}
	case strings.TrimSpace(c.Address) == "":
		return &models.ValidationError{Field: "address", Message: "address is required"}
	case strings.TrimSpace(c.Pincode) == "":
		return &models.ValidationError{Field: "pincode", Message: "pincode is required"}
	}
	if !input.DeliveryMethod.IsValid() {
		return &models.ValidationError{Field: "deliveryMethod", Message: "unknown delivery method"}
	}
	if !input.PaymentMethod.IsValid() {
		return &models.ValidationError{Field: "paymentMethod", Message: "unknown payment method"}
	}
	return nil
}
