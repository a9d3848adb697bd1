package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"quickbite/pkg/apperr"
	"quickbite/pkg/resp"
	"quickbite/services"
	"quickbite/utils"
)

type OrderController struct{ Svc *services.OrderService }

func NewOrderController(svc *services.OrderService) *OrderController {
	return &OrderController{Svc: svc}
}

// POST /orders
func (h *OrderController) Create(c *gin.Context) {
	var req services.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.ValidationError(c, err)
		return
	}

	order, err := h.Svc.Create(utils.CurrentUserID(c), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, order)
}

// GET /orders?status=&page=&limit=
func (h *OrderController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	out, err := h.Svc.List(utils.CurrentUserID(c), c.Query("status"), page, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /orders/:id
func (h *OrderController) Detail(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}

	order, err := h.Svc.GetByID(uint(orderID), utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	if order == nil {
		resp.Error(c, apperr.NotFound("order not found"))
		return
	}
	resp.OK(c, order)
}

type updateStatusReq struct {
	Status string `json:"status" binding:"required"`
}

// PUT /orders/:id
func (h *OrderController) UpdateStatus(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}

	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.ValidationError(c, err)
		return
	}

	order, err := h.Svc.UpdateStatus(uint(orderID), req.Status, utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, order)
}

type cancelReq struct {
	Reason string `json:"reason" binding:"required"`
}

// DELETE /orders/:id  (cancel; body carries the reason)
func (h *OrderController) Cancel(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}

	var req cancelReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.ValidationError(c, err)
		return
	}

	order, err := h.Svc.Cancel(uint(orderID), utils.CurrentUserID(c), req.Reason)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, order)
}
