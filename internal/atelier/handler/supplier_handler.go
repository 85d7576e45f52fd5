package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/stitchline/atelier/internal/atelier/service"
)

// SupplierHandler exposes the supplier catalog, garment-supplier
// relationships and their sample sets.
type SupplierHandler struct {
	svc *service.SupplierService
}

func NewSupplierHandler(svc *service.SupplierService) *SupplierHandler {
	return &SupplierHandler{svc: svc}
}

// ListSuppliers
// GET /api/v1/suppliers
func (h *SupplierHandler) ListSuppliers(c *gin.Context) {
	items, err := h.svc.ListSuppliers(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, items)
}

// GetSupplier
// GET /api/v1/suppliers/:id
func (h *SupplierHandler) GetSupplier(c *gin.Context) {
	supplier, err := h.svc.GetSupplier(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, supplier)
}

// CreateSupplier
// POST /api/v1/suppliers
func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	var req service.SupplierReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	supplier, err := h.svc.CreateSupplier(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, supplier)
}

// UpdateSupplier
// PUT /api/v1/suppliers/:id
func (h *SupplierHandler) UpdateSupplier(c *gin.Context) {
	var req service.SupplierReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	supplier, err := h.svc.UpdateSupplier(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, supplier)
}

// DeleteSupplier
// DELETE /api/v1/suppliers/:id
func (h *SupplierHandler) DeleteSupplier(c *gin.Context) {
	if err := h.svc.DeleteSupplier(c.Request.Context(), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	NoContent(c)
}

// AssociateSupplier
// POST /api/v1/garments/:id/suppliers
func (h *SupplierHandler) AssociateSupplier(c *gin.Context) {
	var req service.AssociateSupplierReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	rel, err := h.svc.Associate(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, rel)
}

// TransitionSupplier
// POST /api/v1/garments/:id/suppliers/:supplierId/transition
func (h *SupplierHandler) TransitionSupplier(c *gin.Context) {
	var req service.SupplierTransitionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	rel, err := h.svc.TransitionStatus(c.Request.Context(), c.Param("id"), c.Param("supplierId"), req.TargetStatus)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, rel)
}

// ListSampleSets
// GET /api/v1/garments/:id/suppliers/:supplierId/samples
func (h *SupplierHandler) ListSampleSets(c *gin.Context) {
	items, err := h.svc.ListSampleSets(c.Request.Context(), c.Param("id"), c.Param("supplierId"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, items)
}

// CreateSampleSet
// POST /api/v1/garments/:id/suppliers/:supplierId/samples
func (h *SupplierHandler) CreateSampleSet(c *gin.Context) {
	var req service.SampleSetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	sample, err := h.svc.CreateSampleSet(c.Request.Context(), c.Param("id"), c.Param("supplierId"), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, sample)
}

// UpdateSampleSet
// PUT /api/v1/garments/:id/suppliers/:supplierId/samples/:sampleId
func (h *SupplierHandler) UpdateSampleSet(c *gin.Context) {
	var req service.SampleSetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	sample, err := h.svc.UpdateSampleSet(c.Request.Context(), c.Param("id"), c.Param("supplierId"), c.Param("sampleId"), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, sample)
}
