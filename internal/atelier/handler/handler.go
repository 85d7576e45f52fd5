package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stitchline/atelier/internal/atelier/apperr"
	"github.com/stitchline/atelier/internal/atelier/service"
)

// Handlers bundles the HTTP handlers of the garment domain.
type Handlers struct {
	Garment  *GarmentHandler
	Supplier *SupplierHandler
	Catalog  *CatalogHandler
}

func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Garment:  NewGarmentHandler(svc.Garment, svc.Composition),
		Supplier: NewSupplierHandler(svc.Supplier),
		Catalog:  NewCatalogHandler(svc.Catalog),
	}
}

// RegisterRoutes wires all endpoints under /api/v1.
func RegisterRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1")

	garments := api.Group("/garments")
	{
		garments.GET("", h.Garment.ListGarments)
		garments.POST("", h.Garment.CreateGarment)
		garments.GET("/export", h.Garment.ExportGarments)
		garments.GET("/:id", h.Garment.GetGarmentDetail)
		garments.PUT("/:id", h.Garment.UpdateGarment)
		garments.DELETE("/:id", h.Garment.DeleteGarment)
		garments.POST("/:id/transition", h.Garment.TransitionGarment)
		garments.POST("/:id/variations", h.Garment.CreateVariation)

		garments.POST("/:id/materials", h.Garment.AddMaterial)
		garments.DELETE("/:id/materials/:materialId", h.Garment.RemoveMaterial)
		garments.POST("/:id/attributes", h.Garment.AddAttribute)
		garments.DELETE("/:id/attributes/:attributeId", h.Garment.RemoveAttribute)

		garments.POST("/:id/suppliers", h.Supplier.AssociateSupplier)
		garments.POST("/:id/suppliers/:supplierId/transition", h.Supplier.TransitionSupplier)
		garments.GET("/:id/suppliers/:supplierId/samples", h.Supplier.ListSampleSets)
		garments.POST("/:id/suppliers/:supplierId/samples", h.Supplier.CreateSampleSet)
		garments.PUT("/:id/suppliers/:supplierId/samples/:sampleId", h.Supplier.UpdateSampleSet)
	}

	suppliers := api.Group("/suppliers")
	{
		suppliers.GET("", h.Supplier.ListSuppliers)
		suppliers.POST("", h.Supplier.CreateSupplier)
		suppliers.GET("/:id", h.Supplier.GetSupplier)
		suppliers.PUT("/:id", h.Supplier.UpdateSupplier)
		suppliers.DELETE("/:id", h.Supplier.DeleteSupplier)
	}

	api.GET("/materials", h.Catalog.ListMaterials)
	api.POST("/materials", h.Catalog.CreateMaterial)
	api.GET("/attributes", h.Catalog.ListAttributes)
	api.POST("/attributes", h.Catalog.CreateAttribute)
	api.GET("/attributes/incompatibilities", h.Catalog.ListIncompatibilities)
	api.POST("/attributes/incompatibilities", h.Catalog.CreateIncompatibility)
}

// ErrorResponse is the wire shape for every 4xx/5xx: a machine-readable
// code and a human-readable detail.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest reports a structurally invalid request body or parameter.
func BadRequest(c *gin.Context, detail string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: apperr.CodeValidation, Detail: detail})
}

// RespondError translates a typed domain error into its HTTP shape. The
// core never chooses status codes; this is the only place that mapping
// lives.
func RespondError(c *gin.Context, err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "INTERNAL", Detail: "internal server error"})
		return
	}
	c.JSON(statusFor(ae.Code), ErrorResponse{Error: ae.Code, Detail: ae.Detail})
}

func statusFor(code string) int {
	switch code {
	case apperr.CodeInvalidTransition, apperr.CodeDeletionBlocked, apperr.CodeIncompatibleAttribute:
		return http.StatusConflict
	case apperr.CodeNotFound, apperr.CodeUnknownReference:
		return http.StatusNotFound
	case apperr.CodeDuplicateAssociation, apperr.CodeCompositionExceeded,
		apperr.CodeInvalidPercentage, apperr.CodeValidation:
		return http.StatusBadRequest
	case apperr.CodeStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
