package models

import "time"

// Quantity per cart line is clamped to this range.
const (
	MinCartQuantity = 1
	MaxCartQuantity = 10
)

type CartItem struct {
	ProductID string  `json:"productId" bson:"product_id"`
	Name      string  `json:"name" bson:"name"`
	UnitPrice float64 `json:"price" bson:"unit_price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
}

// Cart is the session-scoped mutable state behind checkout. It is
// persisted on every mutation so a page reload resumes the same cart.
type Cart struct {
	UserID    string     `json:"userId" bson:"user_id"`
	Items     []CartItem `json:"items" bson:"items"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updated_at"`
}

// Subtotal sums quantity x unit price over the cart lines.
func (c Cart) Subtotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

// ToOrderItems snapshots the cart lines into immutable order items.
func (c Cart) ToOrderItems() []OrderItem {
	items := make([]OrderItem, 0, len(c.Items))
	for _, line := range c.Items {
		items = append(items, OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.UnitPrice * float64(line.Quantity),
		})
	}
	return items
}

// CheckoutInput is the customer-facing checkout form.
type CheckoutInput struct {
	Customer       CustomerInfo   `json:"customer"`
	DeliveryMethod DeliveryMethod `json:"deliveryMethod"`
	PaymentMethod  PaymentMethod  `json:"paymentMethod"`
}
