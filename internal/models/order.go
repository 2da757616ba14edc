package models

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// orderTransitions defines the legal forward path plus the cancel exit
// from pending. Admin actions outside this map are rejected.
var orderTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusProcessing},
	StatusProcessing: {StatusShipped},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cod"
	PaymentUPI            PaymentMethod = "upi"
)

func (m PaymentMethod) IsValid() bool {
	return m == PaymentCashOnDelivery || m == PaymentUPI
}

// DisplayName returns the label the storefront shows for a payment method.
func (m PaymentMethod) DisplayName() string {
	if m == PaymentCashOnDelivery {
		return "Cash on Delivery"
	}
	return "UPI Payment"
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

type DeliveryMethod string

const (
	DeliveryHome   DeliveryMethod = "home"
	DeliveryPickup DeliveryMethod = "pickup"
)

func (m DeliveryMethod) IsValid() bool {
	return m == DeliveryHome || m == DeliveryPickup
}

func (m DeliveryMethod) DisplayName() string {
	if m == DeliveryPickup {
		return "Pick-up from Shop"
	}
	return "Home Delivery"
}

// Free home delivery above this subtotal, flat fee at or below it.
const (
	FreeDeliveryThreshold = 500.0
	FlatDeliveryCharge    = 50.0
)

// DeliveryChargeFor computes the delivery charge for a cart subtotal.
// Shop pickup is always free; home delivery is free only above the threshold.
func DeliveryChargeFor(subtotal float64, method DeliveryMethod) float64 {
	if method == DeliveryPickup {
		return 0
	}
	if subtotal > FreeDeliveryThreshold {
		return 0
	}
	return FlatDeliveryCharge
}

type CustomerInfo struct {
	Name    string `json:"name" bson:"customer_name"`
	Phone   string `json:"phone" bson:"customer_phone"`
	Email   string `json:"email,omitempty" bson:"customer_email,omitempty"`
	Address string `json:"address" bson:"customer_address"`
	Pincode string `json:"pincode" bson:"customer_pincode"`
}

type OrderItem struct {
	ProductID string  `json:"productId,omitempty" bson:"product_id,omitempty"`
	Name      string  `json:"name" bson:"name"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	UnitPrice float64 `json:"price" bson:"unit_price"`
	LineTotal float64 `json:"total" bson:"line_total"`
}

type OrderSummary struct {
	Subtotal       float64 `json:"subtotal" bson:"subtotal"`
	DeliveryCharge float64 `json:"delivery" bson:"delivery_charge"`
	Total          float64 `json:"total" bson:"total_amount"`
}

type PaymentInfo struct {
	Method PaymentMethod `json:"method" bson:"payment_method"`
	Status PaymentStatus `json:"status" bson:"payment_status"`
	PaidAt *time.Time    `json:"paidAt,omitempty" bson:"paid_at,omitempty"`
}

type DeliveryInfo struct {
	Method  DeliveryMethod `json:"method" bson:"delivery_method"`
	Charges float64        `json:"charges" bson:"delivery_charges"`
}

// Order is a customer's finalized purchase. Items and summary are a
// snapshot taken at checkout and never mutated afterwards; only status,
// payment state and UpdatedAt change over the order's life.
type Order struct {
	ID        string       `json:"orderId" bson:"order_id"`
	UserID    string       `json:"userId,omitempty" bson:"user_id,omitempty"`
	Customer  CustomerInfo `json:"customer" bson:"customer"`
	Items     []OrderItem  `json:"items" bson:"items"`
	Summary   OrderSummary `json:"summary" bson:"summary"`
	Status    OrderStatus  `json:"status" bson:"status"`
	Payment   PaymentInfo  `json:"payment" bson:"payment"`
	Delivery  DeliveryInfo `json:"delivery" bson:"delivery"`
	CreatedAt time.Time    `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time    `json:"updatedAt" bson:"updated_at"`
}

// NewOrderID generates the storefront's human-facing order id, e.g. ARN-1717171717171.
func NewOrderID(now time.Time) string {
	return fmt.Sprintf("ARN-%d", now.UnixMilli())
}

// FullyCovers reports whether the given item selection covers every line
// of the order. Used for the delivery-charge part of refund calculation.
func (o Order) FullyCovers(selected []int) bool {
	if len(selected) != len(o.Items) {
		return false
	}
	seen := make(map[int]bool, len(selected))
	for _, idx := range selected {
		if idx < 0 || idx >= len(o.Items) || seen[idx] {
			return false
		}
		seen[idx] = true
	}
	return true
}

// InvalidTransitionError reports a lifecycle action attempted from the
// wrong state. The record is left untouched when it is returned.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid %s transition: %s -> %s", e.Entity, e.From, e.To)
}
