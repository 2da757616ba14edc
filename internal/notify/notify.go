// Package notify is the outbound customer-notification relay. WhatsApp
// "notifications" are pre-filled wa.me links (fire-and-forget, no delivery
// guarantee); email is sent when the customer left an address. Neither
// channel may fail the operation that triggered it.
package notify

import (
	"github.com/arnelectric/storefront-backend/internal/models"
)

type Notifier interface {
	// OrderPlaced returns the wa.me link the storefront opens so the
	// shop receives the order details on WhatsApp.
	OrderPlaced(order models.Order) string
	OrderStatusChanged(order models.Order)
	ReturnApproved(req models.ReturnRequest)
	ReturnRejected(req models.ReturnRequest)
	RefundProcessed(req models.ReturnRequest)
}

// Relay composes the WhatsApp link builder with optional email delivery.
type Relay struct {
	// ShopPhone is the shop's WhatsApp number in international format
	// without the plus sign, e.g. 919084984045.
	ShopPhone string
	Mail      *MailSender
}

func NewRelay(shopPhone string, mail *MailSender) *Relay {
	return &Relay{ShopPhone: shopPhone, Mail: mail}
}

func (r *Relay) OrderPlaced(order models.Order) string {
	link := WhatsAppLink(r.ShopPhone, OrderMessage(order))
	if r.Mail != nil && order.Customer.Email != "" {
		r.Mail.sendAsync(order.Customer.Email,
			"Order "+order.ID+" received",
			orderConfirmationHTML(order))
	}
	return link
}

func (r *Relay) OrderStatusChanged(order models.Order) {
	if r.Mail != nil && order.Customer.Email != "" {
		r.Mail.sendAsync(order.Customer.Email,
			"Order "+order.ID+" update",
			statusUpdateHTML(order))
	}
}

func (r *Relay) ReturnApproved(req models.ReturnRequest) {
	r.notifyReturn(req, returnApprovedText(req))
}

func (r *Relay) ReturnRejected(req models.ReturnRequest) {
	r.notifyReturn(req, returnRejectedText(req))
}

func (r *Relay) RefundProcessed(req models.ReturnRequest) {
	r.notifyReturn(req, refundProcessedText(req))
}
