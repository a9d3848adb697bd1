package entity

import (
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentSuccess  PaymentStatus = "success"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

const (
	MethodCreditCard     = "credit_card"
	MethodDebitCard      = "debit_card"
	MethodUPI            = "upi"
	MethodCashOnDelivery = "cash_on_delivery"
)

type Payment struct {
	gorm.Model
	UserID uint `gorm:"index" json:"userId"`
	User   User `json:"-"`

	OrderID uint  `gorm:"index" json:"orderId"`
	Order   Order `gorm:"foreignKey:OrderID" json:"-"`

	Method   string        `json:"method"`
	Amount   int64         `json:"amount"`
	Currency string        `gorm:"default:inr" json:"currency"`
	Status   PaymentStatus `gorm:"type:varchar(16);default:pending" json:"status"`

	// External gateway ids; empty until the gateway assigns them.
	StripePaymentIntentID string `gorm:"index" json:"stripePaymentIntentId,omitempty"`
	RefundID              string `json:"refundId,omitempty"`
}
