package controllers

import (
	"io"

	"github.com/gin-gonic/gin"

	"quickbite/pkg/resp"
	"quickbite/services"
	"quickbite/utils"
)

// Stripe webhooks are small; anything bigger than this is not ours.
const maxWebhookPayloadSize = 65536

type PaymentController struct{ Svc *services.PaymentService }

func NewPaymentController(svc *services.PaymentService) *PaymentController {
	return &PaymentController{Svc: svc}
}

type createIntentReq struct {
	OrderID  uint   `json:"orderId" binding:"required"`
	Currency string `json:"currency"`
}

// POST /payments/create-intent
func (h *PaymentController) CreateIntent(c *gin.Context) {
	var req createIntentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.ValidationError(c, err)
		return
	}

	out, err := h.Svc.CreateIntent(utils.CurrentUserID(c), req.OrderID, req.Currency)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, out)
}

// POST /payments/webhook, called by the gateway without auth. The raw
// body is required for signature verification.
func (h *PaymentController) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookPayloadSize+1))
	if err != nil {
		resp.BadRequest(c, "failed to read request body")
		return
	}
	if len(payload) > maxWebhookPayloadSize {
		resp.BadRequest(c, "payload too large")
		return
	}

	event, err := h.Svc.HandleWebhook(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"received": true, "eventId": event.ID, "eventType": event.Type})
}

type refundReq struct {
	PaymentIntentID string `json:"paymentIntentId" binding:"required"`
}

// POST /payments/refund
func (h *PaymentController) Refund(c *gin.Context) {
	var req refundReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.ValidationError(c, err)
		return
	}

	refund, err := h.Svc.InitiateRefund(req.PaymentIntentID, utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, refund)
}

// GET /payments
func (h *PaymentController) History(c *gin.Context) {
	payments, err := h.Svc.History(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, payments)
}
