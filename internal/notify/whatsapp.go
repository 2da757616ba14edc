package notify

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/arnelectric/storefront-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// WhatsAppLink builds a pre-filled wa.me message link for the given phone
// number. Opening it is up to the caller; there is no delivery guarantee.
func WhatsAppLink(phone, text string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(text))
}

// OrderMessage renders the shop's WhatsApp order notification, matching
// the storefront's message layout.
func OrderMessage(order models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🛍️ *NEW ORDER - %s*\n\n", order.ID)

	b.WriteString("👤 *CUSTOMER DETAILS:*\n")
	fmt.Fprintf(&b, "• Name: %s\n", order.Customer.Name)
	fmt.Fprintf(&b, "• Phone: %s\n", order.Customer.Phone)
	if order.Customer.Email != "" {
		fmt.Fprintf(&b, "• Email: %s\n", order.Customer.Email)
	}
	fmt.Fprintf(&b, "• Address: %s, %s\n\n", order.Customer.Address, order.Customer.Pincode)

	fmt.Fprintf(&b, "🚚 *DELIVERY:* %s\n", order.Delivery.Method.DisplayName())
	fmt.Fprintf(&b, "💳 *PAYMENT:* %s\n", order.Payment.Method.DisplayName())
	fmt.Fprintf(&b, "📊 *PAYMENT STATUS:* %s\n\n", order.Payment.Status)

	if order.Payment.Method == models.PaymentUPI {
		b.WriteString("📱 *UPI INSTRUCTIONS:*\n")
		b.WriteString("• UPI ID: arn.electric@okhdfcbank\n")
		fmt.Fprintf(&b, "• Amount: ₹%.0f\n", order.Summary.Total)
		b.WriteString("• Please share payment screenshot\n\n")
	}

	b.WriteString("📦 *ORDER ITEMS:*\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "• %s (Qty: %d) - ₹%.0f\n", item.Name, item.Quantity, item.LineTotal)
	}

	b.WriteString("\n💰 *ORDER SUMMARY:*\n")
	fmt.Fprintf(&b, "• Subtotal: ₹%.0f\n", order.Summary.Subtotal)
	fmt.Fprintf(&b, "• Delivery: ₹%.0f\n", order.Summary.DeliveryCharge)
	fmt.Fprintf(&b, "• *Total: ₹%.0f*\n\n", order.Summary.Total)

	fmt.Fprintf(&b, "📅 Order Date: %s\n", order.CreatedAt.Format("2 January 2006, 03:04 PM"))
	fmt.Fprintf(&b, "🆔 Order ID: %s\n", order.ID)

	return b.String()
}

func returnApprovedText(req models.ReturnRequest) string {
	return fmt.Sprintf("✅ Your return request #%s has been approved! Please ship the item to our address or visit our store. We'll process your refund once we receive the items.", req.ID)
}

func returnRejectedText(req models.ReturnRequest) string {
	return fmt.Sprintf("❌ Your return request #%s has been rejected. Please contact support for more details.", req.ID)
}

func refundProcessedText(req models.ReturnRequest) string {
	return fmt.Sprintf("💰 Refund of ₹%.0f for return #%s has been processed! It will reflect in your account within 3-5 business days.", req.RefundAmount, req.ID)
}

// notifyReturn logs the customer-facing link (the admin panel surfaces it)
// and mirrors the message over email when possible.
func (r *Relay) notifyReturn(req models.ReturnRequest, text string) {
	link := WhatsAppLink(req.Customer.Phone, text)
	logrus.WithFields(logrus.Fields{
		"returnId": req.ID,
		"status":   req.Status,
	}).Info("customer notification ready: ", link)

	if r.Mail != nil && req.Customer.Email != "" {
		r.Mail.sendAsync(req.Customer.Email, "Return "+req.ID+" update", "<p>"+text+"</p>")
	}
}
