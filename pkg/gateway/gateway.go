package gateway

// Event types the reconciliation layer reacts to. Anything else is
// acknowledged and ignored.
const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
)

// IntentSucceeded is the gateway-side status required for a refund.
const IntentSucceeded = "succeeded"

// Intent is a provider-neutral view of a payment intent.
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
	Amount       int64
	Currency     string
	Metadata     map[string]string
}

// Refund is a provider-neutral view of a refund.
type Refund struct {
	ID       string
	Amount   int64
	Currency string
}

// Event is a verified webhook event. Intent is populated for the payment
// intent event types above and nil otherwise.
type Event struct {
	ID     string
	Type   string
	Intent *Intent
}

// Gateway abstracts the payment provider so services and tests never
// touch the provider SDK directly.
type Gateway interface {
	CreateIntent(amount int64, currency string, metadata map[string]string) (*Intent, error)
	VerifySignature(payload []byte, signature string) (*Event, error)
	RetrieveIntent(id string) (*Intent, error)
	CreateRefund(intentID string) (*Refund, error)
}
