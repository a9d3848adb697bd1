package notifications

import (
	"fmt"

	"go.uber.org/zap"

	"quickbite/entity"
)

// Sender is the delivery side-channel contract: fire-and-forget email.
type Sender interface {
	Send(to, subject, text, html string) error
}

// Service builds the marketplace's notification messages and dispatches
// them best-effort. Every method swallows delivery failures after logging
// them; an order or payment operation must never fail because an email
// could not be sent.
type Service struct {
	sender Sender
	logger *zap.Logger
}

func NewService(sender Sender, logger *zap.Logger) *Service {
	return &Service{sender: sender, logger: logger}
}

func (s *Service) send(to, subject, text, html string) {
	if to == "" {
		return
	}
	if err := s.sender.Send(to, subject, text, html); err != nil {
		s.logger.Error("failed to send email",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err))
		return
	}
	s.logger.Info("email sent", zap.String("to", to), zap.String("subject", subject))
}

func (s *Service) OrderConfirmation(order *entity.Order, user *entity.User) {
	subject := fmt.Sprintf("Order Confirmation - Order #%s", order.Reference)
	text := fmt.Sprintf("Your order has been confirmed! Order ID: %s", order.Reference)
	html := fmt.Sprintf(`<h1>Order Confirmation</h1>
<p>Dear %s,</p>
<p>Your order #%s has been confirmed and is being processed.</p>
<p>Total Amount: %s</p>
<p>Thank you for choosing our service!</p>`,
		user.Name, order.Reference, formatAmount(order.TotalAmount))
	s.send(user.Email, subject, text, html)
}

func (s *Service) NewOrderAlert(order *entity.Order, ownerEmail, customerName string) {
	subject := fmt.Sprintf("New Order #%s", order.Reference)
	text := fmt.Sprintf("You have received a new order from %s", customerName)
	html := fmt.Sprintf(`<h1>New Order Received</h1>
<p>Order #%s</p>
<p>Customer: %s</p>
<p>Total Amount: %s</p>`,
		order.Reference, customerName, formatAmount(order.TotalAmount))
	s.send(ownerEmail, subject, text, html)
}

func (s *Service) OrderStatusUpdate(order *entity.Order, user *entity.User, status entity.OrderStatus) {
	subject := fmt.Sprintf("Order Status Update - Order #%s", order.Reference)
	text := fmt.Sprintf("Your order status has been updated to: %s", status)
	html := fmt.Sprintf(`<h1>Order Status Update</h1>
<p>Dear %s,</p>
<p>Your order #%s has been updated to: <strong>%s</strong></p>
<p>Thank you for your patience!</p>`,
		user.Name, order.Reference, status)
	s.send(user.Email, subject, text, html)
}

func (s *Service) FeedbackRequest(order *entity.Order, user *entity.User) {
	subject := fmt.Sprintf("Feedback Request - Order #%s", order.Reference)
	text := "Please share your feedback about your recent order"
	html := fmt.Sprintf(`<h1>How was your order?</h1>
<p>Dear %s,</p>
<p>We hope you enjoyed your order! Please take a moment to share your feedback.</p>
<p>Order #%s</p>`,
		user.Name, order.Reference)
	s.send(user.Email, subject, text, html)
}

func (s *Service) OrderCancelled(order *entity.Order, to, customerName, reason string) {
	subject := fmt.Sprintf("Order Cancelled - Order #%s", order.Reference)
	text := fmt.Sprintf("Order #%s has been cancelled. Reason: %s", order.Reference, reason)
	html := fmt.Sprintf(`<h1>Order Cancellation</h1>
<p>Order #%s has been cancelled.</p>
<p>Customer: %s</p>
<p>Reason: %s</p>`,
		order.Reference, customerName, reason)
	s.send(to, subject, text, html)
}

func (s *Service) PaymentInitiated(to string, amount int64, currency, intentID string) {
	subject := "Payment Initiated"
	text := fmt.Sprintf("A payment of %s %s has been initiated.", formatAmount(amount), currency)
	html := fmt.Sprintf(`<h1>Payment Initiated</h1>
<p>A payment has been initiated with the following details:</p>
<ul><li>Amount: %s %s</li><li>Payment ID: %s</li></ul>
<p>You will receive a confirmation email once the payment is completed.</p>`,
		formatAmount(amount), currency, intentID)
	s.send(to, subject, text, html)
}

func (s *Service) PaymentReceipt(to string, amount int64, currency, intentID string) {
	subject := "Payment Successful"
	text := fmt.Sprintf("Your payment of %s %s was successful.", formatAmount(amount), currency)
	html := fmt.Sprintf(`<h1>Payment Successful</h1>
<p>Thank you for your payment! Here are the details:</p>
<ul><li>Amount: %s %s</li><li>Payment ID: %s</li></ul>
<p>This email serves as your payment receipt.</p>`,
		formatAmount(amount), currency, intentID)
	s.send(to, subject, text, html)
}

func (s *Service) PaymentFailed(to string, amount int64, currency, intentID string) {
	subject := "Payment Failed"
	text := fmt.Sprintf("Your payment of %s %s was unsuccessful.", formatAmount(amount), currency)
	html := fmt.Sprintf(`<h1>Payment Failed</h1>
<p>Unfortunately, your payment could not be processed.</p>
<ul><li>Amount: %s %s</li><li>Payment ID: %s</li></ul>
<p>Please try again or contact support if you continue to experience issues.</p>`,
		formatAmount(amount), currency, intentID)
	s.send(to, subject, text, html)
}

func (s *Service) RefundProcessed(to string, amount int64, currency, refundID, intentID string) {
	subject := "Refund Processed"
	text := fmt.Sprintf("Your refund of %s %s has been processed.", formatAmount(amount), currency)
	html := fmt.Sprintf(`<h1>Refund Processed</h1>
<p>Your refund has been processed successfully.</p>
<ul><li>Refund Amount: %s %s</li><li>Refund ID: %s</li><li>Original Payment ID: %s</li></ul>
<p>The refunded amount should appear in your account within 5-10 business days.</p>`,
		formatAmount(amount), currency, refundID, intentID)
	s.send(to, subject, text, html)
}

func (s *Service) AddressAdded(to string, addr *entity.Address) {
	subject := "New Delivery Address Added"
	text := fmt.Sprintf("Your new delivery address has been added: %s, %s, %s, %s - %s",
		addr.Street, addr.City, addr.State, addr.Country, addr.ZipCode)
	html := fmt.Sprintf(`<h2>New Delivery Address Added</h2>
<p><strong>Street:</strong> %s</p>
<p><strong>City:</strong> %s</p>
<p><strong>State:</strong> %s</p>
<p><strong>Country:</strong> %s</p>
<p><strong>Zip Code:</strong> %s</p>`,
		addr.Street, addr.City, addr.State, addr.Country, addr.ZipCode)
	s.send(to, subject, text, html)
}

// formatAmount renders minor units as a decimal string, e.g. 40000 -> 400.00.
func formatAmount(minor int64) string {
	return fmt.Sprintf("%d.%02d", minor/100, minor%100)
}
