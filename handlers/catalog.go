package handlers

import (
	"net/http"

	"homeserve/models"
	"homeserve/services/marketplace"
	"homeserve/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves service categories, time slots and subscription plans.
type CatalogHandler struct {
	Svc marketplace.Service
}

func NewCatalogHandler(svc marketplace.Service) *CatalogHandler {
	return &CatalogHandler{Svc: svc}
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.Svc.GetServiceCategories(c.Request.Context())
	if err != nil {
		utils.ActorError(c, "Failed to load service categories", err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if !bindJSON(c, &req) {
		return
	}
	id, err := h.Svc.CreateServiceCategory(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		utils.ActorError(c, "Failed to create service category", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// ListSlots handles GET /api/categories/:id/slots.
func (h *CatalogHandler) ListSlots(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	slots, err := h.Svc.GetAvailableTimeSlots(c.Request.Context(), models.ServiceCategoryID(id))
	if err != nil {
		utils.ActorError(c, "Failed to load time slots", err)
		return
	}
	if slots == nil {
		slots = []string{}
	}
	c.JSON(http.StatusOK, slots)
}

func (h *CatalogHandler) ListPlans(c *gin.Context) {
	plans, err := h.Svc.GetSubscriptionPlans(c.Request.Context())
	if err != nil {
		utils.ActorError(c, "Failed to load subscription plans", err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (h *CatalogHandler) CreatePlan(c *gin.Context) {
	var req struct {
		Name  string  `json:"name" binding:"required"`
		Price *uint64 `json:"price" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	id, err := h.Svc.CreateSubscriptionPlan(c.Request.Context(), req.Name, *req.Price)
	if err != nil {
		utils.ActorError(c, "Failed to create subscription plan", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}
