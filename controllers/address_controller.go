package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"quickbite/pkg/resp"
	"quickbite/services"
	"quickbite/utils"
)

type AddressController struct{ Svc *services.AddressService }

func NewAddressController(svc *services.AddressService) *AddressController {
	return &AddressController{Svc: svc}
}

// POST /addresses
func (h *AddressController) Create(c *gin.Context) {
	var req services.AddressIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.ValidationError(c, err)
		return
	}

	addr, err := h.Svc.Create(utils.CurrentUserID(c), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, addr)
}

// GET /addresses
func (h *AddressController) List(c *gin.Context) {
	addrs, err := h.Svc.List(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, addrs)
}

// GET /addresses/:id
func (h *AddressController) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid address id")
		return
	}

	addr, err := h.Svc.Get(uint(id), utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, addr)
}

// PUT /addresses/:id
func (h *AddressController) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid address id")
		return
	}

	var req services.AddressIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.ValidationError(c, err)
		return
	}

	addr, err := h.Svc.Update(uint(id), utils.CurrentUserID(c), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, addr)
}

// DELETE /addresses/:id
func (h *AddressController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid address id")
		return
	}

	if err := h.Svc.Delete(uint(id), utils.CurrentUserID(c)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}
