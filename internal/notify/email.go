package notify

import (
	"fmt"
	"strings"

	"github.com/arnelectric/storefront-backend/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"
)

// MailSender delivers transactional emails over SMTP.
type MailSender struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func NewMailSender(host string, port int, username, password, from string) *MailSender {
	return &MailSender{Host: host, Port: port, Username: username, Password: password, From: from}
}

func (m *MailSender) Send(to, subject, htmlBody string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.From); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(m.Host,
		mail.WithPort(m.Port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(m.Username),
		mail.WithPassword(m.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}
	return client.DialAndSend(msg)
}

// sendAsync fires the email off without blocking the caller; failures
// are logged and never propagate to the triggering operation.
func (m *MailSender) sendAsync(to, subject, htmlBody string) {
	go func() {
		if err := m.Send(to, subject, htmlBody); err != nil {
			logrus.Warnf("failed to send email to %s: %v", to, err)
		}
	}()
}

func orderConfirmationHTML(order models.Order) string {
	var rows strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&rows, `<tr><td>%s</td><td>%d</td><td>₹%.0f</td><td>₹%.0f</td></tr>`,
			item.Name, item.Quantity, item.UnitPrice, item.LineTotal)
	}

	return fmt.Sprintf(`<html><body style="font-family: Arial, sans-serif;">
<h2>Thank you for your order, %s!</h2>
<p>Your order <strong>%s</strong> has been received and is pending confirmation.</p>
<table border="1" cellpadding="6" cellspacing="0">
<tr><th>Product</th><th>Qty</th><th>Price</th><th>Total</th></tr>
%s
</table>
<p>Subtotal: ₹%.0f<br>Delivery: ₹%.0f<br><strong>Total: ₹%.0f</strong></p>
<p>Payment: %s &middot; Delivery: %s</p>
<p>ARN Electric Solutions</p>
</body></html>`,
		order.Customer.Name, order.ID, rows.String(),
		order.Summary.Subtotal, order.Summary.DeliveryCharge, order.Summary.Total,
		order.Payment.Method.DisplayName(), order.Delivery.Method.DisplayName())
}

func statusUpdateHTML(order models.Order) string {
	return fmt.Sprintf(`<html><body style="font-family: Arial, sans-serif;">
<h2>Order %s update</h2>
<p>Your order is now <strong>%s</strong>.</p>
<p>ARN Electric Solutions</p>
</body></html>`, order.ID, order.Status)
}
