package services

import (
	"strconv"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"quickbite/entity"
	"quickbite/notifications"
	"quickbite/pkg/apperr"
	"quickbite/pkg/gateway"
	"quickbite/repository"
)

// PaymentService reconciles local Payment records with the external
// gateway. The webhook path is verify-then-act: nothing is read or
// written before the signature check passes.
type PaymentService struct {
	DB        *gorm.DB
	Repo      *repository.PaymentRepository
	OrderRepo *repository.OrderRepository
	UserRepo  *repository.UserRepository
	Gateway   gateway.Gateway
	Notify    *notifications.Service
	logger    *zap.Logger
}

func NewPaymentService(
	db *gorm.DB,
	repo *repository.PaymentRepository,
	orderRepo *repository.OrderRepository,
	userRepo *repository.UserRepository,
	gw gateway.Gateway,
	notify *notifications.Service,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		DB: db, Repo: repo, OrderRepo: orderRepo, UserRepo: userRepo,
		Gateway: gw, Notify: notify, logger: logger,
	}
}

type CreateIntentOut struct {
	PaymentID    uint   `json:"paymentId"`
	IntentID     string `json:"intentId"`
	ClientSecret string `json:"clientSecret"`
}

// CreateIntent opens a gateway payment intent for an order the user owns.
// The local Payment row exists (pending) before the gateway call so the
// intent metadata can carry its id for webhook correlation.
func (s *PaymentService) CreateIntent(userID, orderID uint, currency string) (*CreateIntentOut, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	order, err := s.OrderRepo.GetForUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperr.NotFound("order not found")
	}

	payment, err := s.Repo.GetByOrderID(order.ID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		payment = &entity.Payment{
			UserID:  userID,
			OrderID: order.ID,
			Method:  entity.MethodCreditCard,
			Amount:  order.TotalAmount,
			Status:  entity.PaymentPending,
		}
		if err := s.Repo.Create(s.DB, payment); err != nil {
			return nil, err
		}
	}

	if currency == "" {
		currency = payment.Currency
	}

	metadata := map[string]string{
		"paymentId": strconv.FormatUint(uint64(payment.ID), 10),
		"userId":    strconv.FormatUint(uint64(userID), 10),
		"userEmail": user.Email,
		"orderRef":  order.Reference,
	}

	intent, err := s.Gateway.CreateIntent(payment.Amount, currency, metadata)
	if err != nil {
		return nil, err
	}

	payment.StripePaymentIntentID = intent.ID
	payment.Currency = currency
	if err := s.Repo.Save(s.DB, payment); err != nil {
		return nil, err
	}

	s.Notify.PaymentInitiated(user.Email, payment.Amount, currency, intent.ID)

	return &CreateIntentOut{
		PaymentID:    payment.ID,
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

// HandleWebhook verifies the gateway callback and syncs the correlated
// Payment. An invalid signature rejects before any state is touched.
// Unrecognized event types are acknowledged and ignored.
func (s *PaymentService) HandleWebhook(payload []byte, signature string) (*gateway.Event, error) {
	event, err := s.Gateway.VerifySignature(payload, signature)
	if err != nil {
		return nil, err
	}

	switch event.Type {
	case gateway.EventPaymentSucceeded:
		s.applyIntentOutcome(event, entity.PaymentSuccess)
	case gateway.EventPaymentFailed:
		s.applyIntentOutcome(event, entity.PaymentFailed)
	default:
		s.logger.Debug("ignoring webhook event", zap.String("type", event.Type))
	}

	return event, nil
}

// applyIntentOutcome updates the Payment named by the intent metadata.
// Correlation failures are logged and acknowledged; erroring would only
// make the gateway retry an event we can never apply.
func (s *PaymentService) applyIntentOutcome(event *gateway.Event, status entity.PaymentStatus) {
	intent := event.Intent
	if intent == nil {
		return
	}

	id, err := strconv.ParseUint(intent.Metadata["paymentId"], 10, 64)
	if err != nil {
		s.logger.Warn("webhook intent without usable paymentId metadata",
			zap.String("intent_id", intent.ID), zap.String("event_id", event.ID))
		return
	}

	payment, err := s.Repo.Get(uint(id))
	if err != nil {
		s.logger.Warn("webhook references unknown payment",
			zap.Uint64("payment_id", id), zap.String("intent_id", intent.ID))
		return
	}

	payment.Status = status
	if payment.StripePaymentIntentID == "" {
		payment.StripePaymentIntentID = intent.ID
	}
	if err := s.Repo.Save(s.DB, payment); err != nil {
		s.logger.Error("failed to update payment from webhook",
			zap.Uint("payment_id", payment.ID), zap.Error(err))
		return
	}

	email := intent.Metadata["userEmail"]
	switch status {
	case entity.PaymentSuccess:
		s.Notify.PaymentReceipt(email, intent.Amount, intent.Currency, intent.ID)
	case entity.PaymentFailed:
		s.Notify.PaymentFailed(email, intent.Amount, intent.Currency, intent.ID)
	}
}

// InitiateRefund refunds a succeeded gateway intent owned by the caller
// and marks the local Payment refunded.
func (s *PaymentService) InitiateRefund(intentID string, userID uint) (*gateway.Refund, error) {
	payment, err := s.Repo.GetByIntentForUser(intentID, userID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperr.NotFound("payment not found or unauthorized")
	}

	intent, err := s.Gateway.RetrieveIntent(intentID)
	if err != nil {
		return nil, err
	}
	if intent.Status != gateway.IntentSucceeded {
		return nil, apperr.NotEligible("payment not eligible for refund")
	}

	refund, err := s.Gateway.CreateRefund(intentID)
	if err != nil {
		return nil, err
	}

	payment.Status = entity.PaymentRefunded
	payment.RefundID = refund.ID
	if err := s.Repo.Save(s.DB, payment); err != nil {
		return nil, err
	}

	if user, err := s.UserRepo.FindByID(userID); err == nil {
		s.Notify.RefundProcessed(user.Email, refund.Amount, refund.Currency, refund.ID, intentID)
	}

	return refund, nil
}

// History lists the user's payments newest-first.
func (s *PaymentService) History(userID uint) ([]entity.Payment, error) {
	return s.Repo.ListForUser(userID)
}
