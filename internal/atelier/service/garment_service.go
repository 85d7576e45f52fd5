package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/stitchline/atelier/internal/atelier/apperr"
	"github.com/stitchline/atelier/internal/atelier/entity"
	"github.com/stitchline/atelier/internal/atelier/lifecycle"
	"github.com/stitchline/atelier/internal/atelier/repository"
)

// GarmentService is the aggregate manager: it owns every mutation of a
// garment and its owned collections, runs each one in a single transaction
// with the garment row locked, and consults the lifecycle graph for stage
// changes.
type GarmentService struct {
	garmentRepo *repository.GarmentRepository
	db          *gorm.DB
	logger      *zap.Logger
}

func NewGarmentService(repos *repository.Repositories, db *gorm.DB, logger *zap.Logger) *GarmentService {
	return &GarmentService{
		garmentRepo: repos.Garment,
		db:          db,
		logger:      logger,
	}
}

type CreateGarmentReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateGarmentReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type TransitionReq struct {
	TargetStage string `json:"target_stage" binding:"required"`
}

// GarmentDetail is the assembled read model: garment core fields plus
// joined composition, supplier summaries and direct variations.
type GarmentDetail struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	LifecycleStage  string            `json:"lifecycle_stage"`
	ParentGarmentID *string           `json:"parent_garment_id"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	Materials       []MaterialLine    `json:"materials"`
	Attributes      []AttributeLine   `json:"attributes"`
	Suppliers       []SupplierSummary `json:"suppliers"`
	Variations      []VariationLine   `json:"variations"`
}

type MaterialLine struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Percentage decimal.Decimal `json:"percentage"`
}

type AttributeLine struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

type SupplierSummary struct {
	SupplierID   string           `json:"supplier_id"`
	SupplierName string           `json:"supplier_name"`
	Status       string           `json:"status"`
	OfferPrice   *decimal.Decimal `json:"offer_price"`
}

type VariationLine struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	LifecycleStage string `json:"lifecycle_stage"`
}

// List returns lightweight garment summaries, optionally filtered by exact
// stage and case-insensitive name substring.
func (s *GarmentService) List(ctx context.Context, stage, search string) ([]entity.Garment, error) {
	items, err := s.garmentRepo.FindAll(ctx, stage, search)
	if err != nil {
		return nil, apperr.Store(err)
	}
	return items, nil
}

// Detail assembles the full read model from one consistent snapshot.
func (s *GarmentService) Detail(ctx context.Context, id string) (*GarmentDetail, error) {
	garment, err := s.garmentRepo.FindDetail(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperr.NewNotFound("garment", id)
		}
		return nil, apperr.Store(err)
	}

	detail := &GarmentDetail{
		ID:              garment.ID,
		Name:            garment.Name,
		Description:     garment.Description,
		LifecycleStage:  garment.LifecycleStage,
		ParentGarmentID: garment.ParentGarmentID,
		CreatedAt:       garment.CreatedAt,
		UpdatedAt:       garment.UpdatedAt,
		Materials:       []MaterialLine{},
		Attributes:      []AttributeLine{},
		Suppliers:       []SupplierSummary{},
		Variations:      []VariationLine{},
	}
	for _, gm := range garment.Materials {
		line := MaterialLine{ID: gm.MaterialID, Percentage: gm.Percentage}
		if gm.Material != nil {
			line.Name = gm.Material.Name
		}
		detail.Materials = append(detail.Materials, line)
	}
	for _, ga := range garment.Attributes {
		line := AttributeLine{ID: ga.AttributeID}
		if ga.Attribute != nil {
			line.Name = ga.Attribute.Name
			line.Category = ga.Attribute.Category
		}
		detail.Attributes = append(detail.Attributes, line)
	}
	for _, gs := range garment.Suppliers {
		summary := SupplierSummary{
			SupplierID: gs.SupplierID,
			Status:     gs.Status,
			OfferPrice: gs.OfferPrice,
		}
		if gs.Supplier != nil {
			summary.SupplierName = gs.Supplier.Name
		}
		detail.Suppliers = append(detail.Suppliers, summary)
	}
	for _, v := range garment.Variations {
		detail.Variations = append(detail.Variations, VariationLine{
			ID:             v.ID,
			Name:           v.Name,
			LifecycleStage: v.LifecycleStage,
		})
	}
	return detail, nil
}

// Create starts a new garment at CONCEPT with no parent.
func (s *GarmentService) Create(ctx context.Context, req CreateGarmentReq) (*entity.Garment, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.NewValidation("name must not be empty")
	}

	garment := &entity.Garment{
		ID:             newID(),
		Name:           name,
		Description:    req.Description,
		LifecycleStage: entity.StageConcept,
	}
	if err := s.garmentRepo.Create(ctx, garment); err != nil {
		return nil, apperr.Store(err)
	}
	return garment, nil
}

// Update changes name/description. Garments in PRODUCTION are frozen.
func (s *GarmentService) Update(ctx context.Context, id string, req UpdateGarmentReq) (*entity.Garment, error) {
	var updated *entity.Garment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		garment, err := lockGarment(tx, id)
		if err != nil {
			return err
		}
		if garment.LifecycleStage == entity.StageProduction {
			return apperr.NewValidation(fmt.Sprintf("garment %q is in PRODUCTION and cannot be updated", garment.Name))
		}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return apperr.NewValidation("name must not be empty")
			}
			garment.Name = name
		}
		if req.Description != nil {
			garment.Description = *req.Description
		}
		if err := tx.Save(garment).Error; err != nil {
			return apperr.Store(err)
		}
		updated = garment
		return nil
	})
	if err != nil {
		return nil, wrapStore(err)
	}
	return updated, nil
}

// Delete removes a garment and cascades over its owned collections.
// Garments in PRODUCTION are protected. Direct variations survive with
// their parent reference cleared.
func (s *GarmentService) Delete(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		garment, err := lockGarment(tx, id)
		if err != nil {
			return err
		}
		if garment.LifecycleStage == entity.StageProduction {
			return apperr.NewDeletionBlocked(garment.Name)
		}

		var relIDs []string
		if err := tx.Model(&entity.GarmentSupplier{}).
			Where("garment_id = ?", id).
			Pluck("id", &relIDs).Error; err != nil {
			return apperr.Store(err)
		}
		if len(relIDs) > 0 {
			if err := tx.Where("garment_supplier_id IN ?", relIDs).Delete(&entity.SampleSet{}).Error; err != nil {
				return apperr.Store(err)
			}
		}
		if err := tx.Where("garment_id = ?", id).Delete(&entity.GarmentSupplier{}).Error; err != nil {
			return apperr.Store(err)
		}
		if err := tx.Where("garment_id = ?", id).Delete(&entity.GarmentMaterial{}).Error; err != nil {
			return apperr.Store(err)
		}
		if err := tx.Where("garment_id = ?", id).Delete(&entity.GarmentAttribute{}).Error; err != nil {
			return apperr.Store(err)
		}
		if err := tx.Model(&entity.Garment{}).
			Where("parent_garment_id = ?", id).
			Update("parent_garment_id", nil).Error; err != nil {
			return apperr.Store(err)
		}
		if err := tx.Where("id = ?", id).Delete(&entity.Garment{}).Error; err != nil {
			return apperr.Store(err)
		}

		s.logger.Info("garment deleted",
			zap.String("garment_id", id),
			zap.String("stage", garment.LifecycleStage),
		)
		return nil
	})
	return wrapStore(err)
}

// Transition moves a garment to targetStage when the lifecycle graph
// permits it from the currently committed stage.
func (s *GarmentService) Transition(ctx context.Context, id, targetStage string) (*entity.Garment, error) {
	var updated *entity.Garment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		garment, err := lockGarment(tx, id)
		if err != nil {
			return err
		}
		next, err := lifecycle.AttemptTransition(lifecycle.GarmentStages, garment.LifecycleStage, targetStage)
		if err != nil {
			return err
		}
		garment.LifecycleStage = next
		if err := tx.Save(garment).Error; err != nil {
			return apperr.Store(err)
		}
		updated = garment
		return nil
	})
	if err != nil {
		return nil, wrapStore(err)
	}
	return updated, nil
}

// CreateVariation derives a child garment from parentID. The variation
// starts at CONCEPT with an empty composition: variations are divergent
// designs, not snapshots of the parent.
func (s *GarmentService) CreateVariation(ctx context.Context, parentID string, req CreateGarmentReq) (*entity.Garment, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.NewValidation("name must not be empty")
	}

	var variation *entity.Garment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the parent so a concurrent delete cannot race the link.
		parent, err := lockGarment(tx, parentID)
		if err != nil {
			return err
		}
		variation = &entity.Garment{
			ID:              newID(),
			Name:            name,
			Description:     req.Description,
			LifecycleStage:  entity.StageConcept,
			ParentGarmentID: &parent.ID,
		}
		if err := tx.Create(variation).Error; err != nil {
			return apperr.Store(err)
		}
		return nil
	})
	if err != nil {
		return nil, wrapStore(err)
	}
	return variation, nil
}

var exportHeaders = []string{"ID", "Name", "Stage", "Parent", "Description", "Created At"}

// Export renders the (optionally filtered) garment list as an xlsx
// workbook.
func (s *GarmentService) Export(ctx context.Context, stage, search string) (*excelize.File, string, error) {
	items, err := s.List(ctx, stage, search)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "Garments"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	for i, h := range exportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for i, g := range items {
		row := i + 2
		parent := ""
		if g.ParentGarmentID != nil {
			parent = *g.ParentGarmentID
		}
		values := []interface{}{g.ID, g.Name, g.LifecycleStage, parent, g.Description, g.CreatedAt.Format(time.RFC3339)}
		for j, v := range values {
			col, _ := excelize.ColumnNumberToName(j + 1)
			f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, row), v)
		}
	}

	filename := fmt.Sprintf("garments_%s.xlsx", time.Now().Format("20060102_150405"))
	return f, filename, nil
}
