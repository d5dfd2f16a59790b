package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/pedrohsouza/marmitex/models"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func emailConfigFromEnv() EmailConfig {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 587
	}
	return EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

// SendEmail sends an HTML email via SMTP
func SendEmail(to, subject, body string) error {
	config := emailConfigFromEnv()

	m := gomail.NewMessage()
	m.SetHeader("From", config.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}

// SendOrderConfirmationEmail notifies the customer that the payment was
// approved and the kitchen has the order.
func SendOrderConfirmationEmail(order *models.Order) error {
	if order.CustomerEmail == "" {
		return nil
	}

	subject := fmt.Sprintf("Order %s confirmed - Marmitex", order.Number)
	body := fmt.Sprintf(`
		<h2>Your payment was confirmed!</h2>
		<p>Thank you, %s. Order <strong>%s</strong> is now with our kitchen.</p>
		%s
		%s
		%s
	`, order.CustomerName, order.Number, renderOrderItemsHTML(order), renderOrderTotalsHTML(order), renderScheduleHTML(order))

	return SendEmail(order.CustomerEmail, subject, body)
}

// SendKitchenAlertEmail notifies the kitchen/ops mailbox about a newly paid order.
func SendKitchenAlertEmail(order *models.Order) error {
	kitchenEmail := os.Getenv("KITCHEN_EMAIL")
	if kitchenEmail == "" {
		return nil
	}

	subject := fmt.Sprintf("New paid order %s", order.Number)
	body := fmt.Sprintf(`
		<h2>New order to prepare</h2>
		<p>Order <strong>%s</strong> - %s (%s)</p>
		<p>Type: %s</p>
		%s
		%s
	`, order.Number, order.CustomerName, order.CustomerPhone, order.DeliveryType,
		renderOrderItemsHTML(order), renderScheduleHTML(order))

	return SendEmail(kitchenEmail, subject, body)
}

// SendStatusUpdateEmail notifies the customer about a manual status change.
func SendStatusUpdateEmail(order *models.Order, newStatus string) error {
	if order.CustomerEmail == "" {
		return nil
	}

	subject := fmt.Sprintf("Order %s update - Marmitex", order.Number)
	body := fmt.Sprintf(`
		<h2>Order update</h2>
		<p>Hi %s, your order <strong>%s</strong> is now: <strong>%s</strong>.</p>
		%s
		%s
	`, order.CustomerName, order.Number, statusLabel(newStatus), renderOrderTotalsHTML(order), renderScheduleHTML(order))

	return SendEmail(order.CustomerEmail, subject, body)
}

func renderOrderItemsHTML(order *models.Order) string {
	var rows strings.Builder
	for _, item := range order.OrderItems {
		rows.WriteString(fmt.Sprintf(
			"<tr><td>%dx</td><td>%s</td><td>R$ %.2f</td></tr>",
			item.Quantity, item.Name, item.Total,
		))
	}
	return fmt.Sprintf(`<table border="0" cellpadding="4">%s</table>`, rows.String())
}

func renderOrderTotalsHTML(order *models.Order) string {
	return fmt.Sprintf(`
		<p>
			Subtotal: R$ %.2f<br>
			Discount: R$ %.2f<br>
			Delivery fee: R$ %.2f<br>
			<strong>Total: R$ %.2f</strong>
		</p>
	`, order.Subtotal, order.CouponDiscount, order.DeliveryFee, order.Total)
}

func renderScheduleHTML(order *models.Order) string {
	if order.ScheduledDate == "" {
		return ""
	}
	when := order.ScheduledDate
	if order.ScheduledTime != "" {
		when += " at " + order.ScheduledTime
	}
	if order.DeliveryType == models.DeliveryTypePickup {
		return fmt.Sprintf("<p>Pickup scheduled for %s.</p>", when)
	}
	return fmt.Sprintf("<p>Delivery scheduled for %s.<br>%s %s, %s - %s</p>",
		when, order.AddressStreet, order.AddressNumber, order.AddressCity, order.AddressState)
}

func statusLabel(status string) string {
	switch status {
	case models.OrderStatusPaymentPending:
		return "Awaiting payment"
	case models.OrderStatusPending:
		return "Received"
	case models.OrderStatusPreparing:
		return "In preparation"
	case models.OrderStatusDelivering:
		return "Out for delivery"
	case models.OrderStatusDelivered:
		return "Delivered"
	case models.OrderStatusCancelled:
		return "Cancelled"
	default:
		return status
	}
}
