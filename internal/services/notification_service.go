// internal/services/notification_service.go
package services

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mobileshop/backend/internal/config"
	"github.com/mobileshop/backend/internal/models"
)

// NotificationService sends transactional email. Failures are logged, not
// surfaced: a lost confirmation email never fails a checkout.
type NotificationService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewNotificationService(db *gorm.DB, cfg *config.Config) *NotificationService {
	return &NotificationService{db: db, cfg: cfg}
}

const orderConfirmationTemplate = `
<html>
<body>
	<h2>Thank you for your order, {{.Username}}!</h2>
	<p>Your order <strong>{{.OrderNumber}}</strong> has been received.</p>
	<table border="1" cellpadding="5" cellspacing="0">
		<tr><th>SKU</th><th>Quantity</th><th>Price</th></tr>
		{{range .Items}}
		<tr><td>{{.SKU}}</td><td>{{.Quantity}}</td><td>{{printf "%.2f" .Price}}</td></tr>
		{{end}}
	</table>
	<p>Subtotal: {{printf "%.2f" .Subtotal}}</p>
	<p>Shipping: {{printf "%.2f" .ShippingFee}}</p>
	<p><strong>Total: {{printf "%.2f" .Total}}</strong></p>
</body>
</html>
`

type orderEmailItem struct {
	SKU      string
	Quantity int
	Price    float64
}

type orderEmailData struct {
	Username    string
	OrderNumber string
	Items       []orderEmailItem
	Subtotal    float64
	ShippingFee float64
	Total       float64
}

// SendOrderConfirmation emails the order summary to the buyer. Intended to
// run in its own goroutine after the checkout commits.
func (s *NotificationService) SendOrderConfirmation(order *models.Order) {
	if s.cfg.Email.SMTPUsername == "" {
		logrus.Debug("SMTP not configured, skipping order confirmation email")
		return
	}

	var user models.User
	if err := s.db.First(&user, order.UserID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithError(err).Warn("Failed to load user for order confirmation")
		}
		return
	}

	data := orderEmailData{
		Username:    user.Username,
		OrderNumber: order.OrderNumber,
		Subtotal:    order.Subtotal,
		ShippingFee: order.ShippingFee,
		Total:       order.TotalAmount,
	}
	for _, item := range order.Items {
		data.Items = append(data.Items, orderEmailItem{
			SKU:      item.Product.SKU,
			Quantity: item.Quantity,
			Price:    item.PriceAtPurchase,
		})
	}

	tmpl, err := template.New("order_confirmation").Parse(orderConfirmationTemplate)
	if err != nil {
		logrus.WithError(err).Error("Failed to parse order confirmation template")
		return
	}
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		logrus.WithError(err).Error("Failed to render order confirmation template")
		return
	}

	subject := fmt.Sprintf("Order confirmation %s", order.OrderNumber)
	if err := s.send(user.Email, subject, body.String()); err != nil {
		logrus.WithError(err).WithField("order_number", order.OrderNumber).
			Warn("Failed to send order confirmation email")
		return
	}

	logrus.WithFields(logrus.Fields{
		"order_number": order.OrderNumber,
		"to":           user.Email,
	}).Info("Order confirmation email sent")
}

func (s *NotificationService) send(to, subject, htmlBody string) error {
	cfg := s.cfg.Email
	auth := smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)

	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		cfg.FromName, cfg.FromEmail, to, subject, htmlBody)

	addr := fmt.Sprintf("%s:%s", cfg.SMTPHost, cfg.SMTPPort)
	return smtp.SendMail(addr, auth, cfg.FromEmail, []string{to}, []byte(msg))
}
