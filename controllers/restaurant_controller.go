package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"quickbite/entity"
	"quickbite/pkg/resp"
	"quickbite/services"
	"quickbite/utils"
)

type RestaurantController struct {
	Svc       *services.RestaurantService
	ReviewSvc *services.ReviewService
}

func NewRestaurantController(svc *services.RestaurantService, reviewSvc *services.ReviewService) *RestaurantController {
	return &RestaurantController{Svc: svc, ReviewSvc: reviewSvc}
}

// GET /restaurants?search=&open=&page=&limit=
func (h *RestaurantController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	openOnly := c.Query("open") == "true"

	out, err := h.Svc.List(c.Query("search"), openOnly, page, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /restaurants/:id
func (h *RestaurantController) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}

	rest, err := h.Svc.Get(c.Request.Context(), uint(id))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rest)
}

// POST /restaurants (owner/admin)
func (h *RestaurantController) Create(c *gin.Context) {
	var req services.RestaurantIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.ValidationError(c, err)
		return
	}

	rest, err := h.Svc.Create(utils.CurrentUserID(c), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, rest)
}

// PUT /restaurants/:id
func (h *RestaurantController) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}

	var req services.RestaurantIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.ValidationError(c, err)
		return
	}

	rest, err := h.Svc.Update(c.Request.Context(), uint(id), utils.CurrentUserID(c), isAdmin(c), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rest)
}

// DELETE /restaurants/:id
func (h *RestaurantController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), uint(id), utils.CurrentUserID(c), isAdmin(c)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}

// POST /restaurants/:id/menu
func (h *RestaurantController) AddMenuItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}

	var req services.MenuItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.ValidationError(c, err)
		return
	}

	item, err := h.Svc.AddMenuItem(c.Request.Context(), uint(id), utils.CurrentUserID(c), isAdmin(c), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, item)
}

// PUT /restaurants/:id/menu/:itemId
func (h *RestaurantController) UpdateMenuItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}
	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid menu item id")
		return
	}

	var req services.MenuItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.ValidationError(c, err)
		return
	}

	item, err := h.Svc.UpdateMenuItem(c.Request.Context(), uint(id), uint(itemID), utils.CurrentUserID(c), isAdmin(c), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, item)
}

// DELETE /restaurants/:id/menu/:itemId
func (h *RestaurantController) DeleteMenuItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}
	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid menu item id")
		return
	}

	if err := h.Svc.DeleteMenuItem(c.Request.Context(), uint(id), uint(itemID), utils.CurrentUserID(c), isAdmin(c)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}

// GET /restaurants/:id/reviews
func (h *RestaurantController) Reviews(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	out, err := h.ReviewSvc.ListByRestaurant(uint(id), page, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

func isAdmin(c *gin.Context) bool {
	return utils.CurrentRole(c) == entity.RoleAdmin
}
