package gateway

import (
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"github.com/stripe/stripe-go/v81/refund"
	"github.com/stripe/stripe-go/v81/webhook"
	"go.uber.org/zap"

	"quickbite/pkg/apperr"
)

// StripeGateway implements Gateway against the Stripe API.
type StripeGateway struct {
	webhookSecret string
	logger        *zap.Logger
}

func NewStripeGateway(secretKey, webhookSecret string, logger *zap.Logger) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{webhookSecret: webhookSecret, logger: logger}
}

func (g *StripeGateway) CreateIntent(amount int64, currency string, metadata map[string]string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Metadata = metadata

	pi, err := paymentintent.New(params)
	if err != nil {
		g.logger.Error("failed to create payment intent",
			zap.Int64("amount", amount),
			zap.String("currency", currency),
			zap.Error(err))
		return nil, fmt.Errorf("stripe: create intent: %w", err)
	}

	g.logger.Info("created payment intent",
		zap.String("intent_id", pi.ID),
		zap.Int64("amount", amount))
	return fromStripeIntent(pi), nil
}

func (g *StripeGateway) VerifySignature(payload []byte, signature string) (*Event, error) {
	event, err := webhook.ConstructEvent(payload, signature, g.webhookSecret)
	if err != nil {
		g.logger.Error("webhook signature verification failed", zap.Error(err))
		return nil, apperr.InvalidSignature("webhook signature verification failed")
	}

	out := &Event{ID: event.ID, Type: string(event.Type)}
	switch out.Type {
	case EventPaymentSucceeded, EventPaymentFailed:
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return nil, fmt.Errorf("stripe: unmarshal payment intent: %w", err)
		}
		out.Intent = fromStripeIntent(&pi)
	}
	return out, nil
}

func (g *StripeGateway) RetrieveIntent(id string) (*Intent, error) {
	pi, err := paymentintent.Get(id, nil)
	if err != nil {
		return nil, fmt.Errorf("stripe: retrieve intent: %w", err)
	}
	return fromStripeIntent(pi), nil
}

func (g *StripeGateway) CreateRefund(intentID string) (*Refund, error) {
	r, err := refund.New(&stripe.RefundParams{PaymentIntent: stripe.String(intentID)})
	if err != nil {
		g.logger.Error("failed to create refund",
			zap.String("intent_id", intentID),
			zap.Error(err))
		return nil, fmt.Errorf("stripe: create refund: %w", err)
	}

	g.logger.Info("refund created",
		zap.String("refund_id", r.ID),
		zap.String("intent_id", intentID))
	return &Refund{ID: r.ID, Amount: r.Amount, Currency: string(r.Currency)}, nil
}

func fromStripeIntent(pi *stripe.PaymentIntent) *Intent {
	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Metadata:     pi.Metadata,
	}
}
