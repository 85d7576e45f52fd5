package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/stitchline/atelier/internal/atelier/service"
)

// CatalogHandler exposes the material and attribute reference catalogs.
type CatalogHandler struct {
	svc *service.CatalogService
}

func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// ListMaterials
// GET /api/v1/materials
func (h *CatalogHandler) ListMaterials(c *gin.Context) {
	items, err := h.svc.ListMaterials(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, items)
}

// CreateMaterial
// POST /api/v1/materials
func (h *CatalogHandler) CreateMaterial(c *gin.Context) {
	var req service.MaterialReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	material, err := h.svc.CreateMaterial(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, material)
}

// ListAttributes
// GET /api/v1/attributes?category=FIT
func (h *CatalogHandler) ListAttributes(c *gin.Context) {
	items, err := h.svc.ListAttributes(c.Request.Context(), c.Query("category"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, items)
}

// CreateAttribute
// POST /api/v1/attributes
func (h *CatalogHandler) CreateAttribute(c *gin.Context) {
	var req service.AttributeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	attribute, err := h.svc.CreateAttribute(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, attribute)
}

// ListIncompatibilities
// GET /api/v1/attributes/incompatibilities
func (h *CatalogHandler) ListIncompatibilities(c *gin.Context) {
	rules, err := h.svc.ListIncompatibilities(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, rules)
}

// CreateIncompatibility
// POST /api/v1/attributes/incompatibilities
func (h *CatalogHandler) CreateIncompatibility(c *gin.Context) {
	var req service.IncompatibilityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	rule, err := h.svc.CreateIncompatibility(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, rule)
}
