package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/inexss/crm-backend/internal/metrics"
	"github.com/inexss/crm-backend/internal/middleware"
	"github.com/inexss/crm-backend/internal/services"
	"github.com/inexss/crm-backend/pkg/response"
	"gorm.io/gorm"
)

type BrandHandler struct {
	brandService *services.BrandService
}

func NewBrandHandler(db *gorm.DB) *BrandHandler {
	return &BrandHandler{
		brandService: services.NewBrandService(db),
	}
}

// List returns paginated brands
// GET /api/brands
func (h *BrandHandler) List(c *gin.Context) {
	var req services.BrandListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	actor := middleware.GetActor(c)
	resp, err := h.brandService.List(actor, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, resp)
}

// GetByID returns a brand by ID
// GET /api/brands/:id
func (h *BrandHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid brand id")
		return
	}

	actor := middleware.GetActor(c)
	brand, err := h.brandService.GetByID(actor, uint(id))
	if err != nil {
		recordDenial(err, "brand")
		response.Error(c, err)
		return
	}

	response.Success(c, brand)
}

// Create creates a new brand
// POST /api/brands
func (h *BrandHandler) Create(c *gin.Context) {
	var req services.CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	actor := middleware.GetActor(c)
	brand, err := h.brandService.Create(actor, &req)
	if err != nil {
		recordDenial(err, "brand")
		response.Error(c, err)
		return
	}

	metrics.RecordEntityOperation("brand", "create")
	response.Created(c, brand)
}

// Update updates a brand
// PUT /api/brands/:id
func (h *BrandHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid brand id")
		return
	}

	var req services.UpdateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	actor := middleware.GetActor(c)
	brand, err := h.brandService.Update(actor, uint(id), &req)
	if err != nil {
		recordDenial(err, "brand")
		response.Error(c, err)
		return
	}

	metrics.RecordEntityOperation("brand", "update")
	response.Success(c, brand)
}

// Delete deletes a brand
// DELETE /api/brands/:id
func (h *BrandHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid brand id")
		return
	}

	actor := middleware.GetActor(c)
	if err := h.brandService.Delete(actor, uint(id)); err != nil {
		recordDenial(err, "brand")
		response.Error(c, err)
		return
	}

	metrics.RecordEntityOperation("brand", "delete")
	response.Success(c, gin.H{"message": "brand deleted successfully"})
}
