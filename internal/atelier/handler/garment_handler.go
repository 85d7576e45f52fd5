package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stitchline/atelier/internal/atelier/service"
)

// GarmentHandler exposes the garment aggregate and its composition.
type GarmentHandler struct {
	garmentSvc     *service.GarmentService
	compositionSvc *service.CompositionService
}

func NewGarmentHandler(garmentSvc *service.GarmentService, compositionSvc *service.CompositionService) *GarmentHandler {
	return &GarmentHandler{garmentSvc: garmentSvc, compositionSvc: compositionSvc}
}

// ListGarments
// GET /api/v1/garments?stage=CONCEPT&search=tee
func (h *GarmentHandler) ListGarments(c *gin.Context) {
	items, err := h.garmentSvc.List(c.Request.Context(), c.Query("stage"), c.Query("search"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, items)
}

// CreateGarment
// POST /api/v1/garments
func (h *GarmentHandler) CreateGarment(c *gin.Context) {
	var req service.CreateGarmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	garment, err := h.garmentSvc.Create(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, garment)
}

// GetGarmentDetail
// GET /api/v1/garments/:id
func (h *GarmentHandler) GetGarmentDetail(c *gin.Context) {
	detail, err := h.garmentSvc.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, detail)
}

// UpdateGarment
// PUT /api/v1/garments/:id
func (h *GarmentHandler) UpdateGarment(c *gin.Context) {
	var req service.UpdateGarmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	garment, err := h.garmentSvc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, garment)
}

// DeleteGarment
// DELETE /api/v1/garments/:id
func (h *GarmentHandler) DeleteGarment(c *gin.Context) {
	if err := h.garmentSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	NoContent(c)
}

// TransitionGarment
// POST /api/v1/garments/:id/transition
func (h *GarmentHandler) TransitionGarment(c *gin.Context) {
	var req service.TransitionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	garment, err := h.garmentSvc.Transition(c.Request.Context(), c.Param("id"), req.TargetStage)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, garment)
}

// CreateVariation
// POST /api/v1/garments/:id/variations
func (h *GarmentHandler) CreateVariation(c *gin.Context) {
	var req service.CreateGarmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	variation, err := h.garmentSvc.CreateVariation(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, variation)
}

// AddMaterial
// POST /api/v1/garments/:id/materials
func (h *GarmentHandler) AddMaterial(c *gin.Context) {
	var req service.AddMaterialReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	link, err := h.compositionSvc.AddMaterial(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, link)
}

// RemoveMaterial
// DELETE /api/v1/garments/:id/materials/:materialId
func (h *GarmentHandler) RemoveMaterial(c *gin.Context) {
	err := h.compositionSvc.RemoveMaterial(c.Request.Context(), c.Param("id"), c.Param("materialId"))
	if err != nil {
		RespondError(c, err)
		return
	}
	NoContent(c)
}

// AddAttribute
// POST /api/v1/garments/:id/attributes
func (h *GarmentHandler) AddAttribute(c *gin.Context) {
	var req service.AddAttributeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	link, err := h.compositionSvc.AddAttribute(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, link)
}

// RemoveAttribute
// DELETE /api/v1/garments/:id/attributes/:attributeId
func (h *GarmentHandler) RemoveAttribute(c *gin.Context) {
	err := h.compositionSvc.RemoveAttribute(c.Request.Context(), c.Param("id"), c.Param("attributeId"))
	if err != nil {
		RespondError(c, err)
		return
	}
	NoContent(c)
}

// ExportGarments
// GET /api/v1/garments/export?stage=...&search=...
func (h *GarmentHandler) ExportGarments(c *gin.Context) {
	f, filename, err := h.garmentSvc.Export(c.Request.Context(), c.Query("stage"), c.Query("search"))
	if err != nil {
		RespondError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
