package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/stitchline/atelier/internal/atelier/apperr"
	"github.com/stitchline/atelier/internal/atelier/composition"
	"github.com/stitchline/atelier/internal/atelier/entity"
	"github.com/stitchline/atelier/internal/atelier/repository"
)

// CompositionService mutates a garment's materials and attributes. Every
// operation locks the garment row first, re-reads the owned links inside
// the same transaction and runs all invariant checks before touching
// anything, so either every check passes and the mutation commits, or
// nothing changes.
type CompositionService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewCompositionService(repos *repository.Repositories, db *gorm.DB, logger *zap.Logger) *CompositionService {
	return &CompositionService{
		db:     db,
		logger: logger,
	}
}

type AddMaterialReq struct {
	MaterialID string          `json:"material_id" binding:"required"`
	Percentage decimal.Decimal `json:"percentage" binding:"required"`
}

type AddAttributeReq struct {
	AttributeID string `json:"attribute_id" binding:"required"`
}

// AddMaterial links a catalog material to the garment at the given
// percentage share.
func (s *CompositionService) AddMaterial(ctx context.Context, garmentID string, req AddMaterialReq) (*entity.GarmentMaterial, error) {
	var link *entity.GarmentMaterial
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockGarment(tx, garmentID); err != nil {
			return err
		}
		if err := composition.CheckPercentage(req.Percentage); err != nil {
			return err
		}

		var material entity.Material
		if err := tx.Where("id = ?", req.MaterialID).First(&material).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewUnknownReference("material", req.MaterialID)
			}
			return apperr.Store(err)
		}

		var links []entity.GarmentMaterial
		if err := tx.Where("garment_id = ?", garmentID).Find(&links).Error; err != nil {
			return apperr.Store(err)
		}
		if composition.HasMaterial(links, req.MaterialID) {
			return apperr.NewDuplicateAssociation("material", garmentID, req.MaterialID)
		}
		if err := composition.CheckAddition(links, req.Percentage); err != nil {
			return err
		}

		link = &entity.GarmentMaterial{
			ID:         newID(),
			GarmentID:  garmentID,
			MaterialID: req.MaterialID,
			Percentage: req.Percentage,
			Material:   &material,
		}
		if err := tx.Omit("Material").Create(link).Error; err != nil {
			return apperr.Store(err)
		}
		return nil
	})
	if err != nil {
		return nil, wrapStore(err)
	}
	return link, nil
}

// RemoveMaterial drops the material link. No lifecycle gating: materials
// may be edited at any stage.
func (s *CompositionService) RemoveMaterial(ctx context.Context, garmentID, materialID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockGarment(tx, garmentID); err != nil {
			return err
		}
		result := tx.Where("garment_id = ? AND material_id = ?", garmentID, materialID).
			Delete(&entity.GarmentMaterial{})
		if result.Error != nil {
			return apperr.Store(result.Error)
		}
		if result.RowsAffected == 0 {
			return apperr.NewNotFound("material link", materialID)
		}
		return nil
	})
	return wrapStore(err)
}

// AddAttribute links a catalog attribute, refusing duplicates and
// combinations the incompatibility rules forbid.
func (s *CompositionService) AddAttribute(ctx context.Context, garmentID string, req AddAttributeReq) (*entity.GarmentAttribute, error) {
	var link *entity.GarmentAttribute
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockGarment(tx, garmentID); err != nil {
			return err
		}

		var attribute entity.Attribute
		if err := tx.Where("id = ?", req.AttributeID).First(&attribute).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewUnknownReference("attribute", req.AttributeID)
			}
			return apperr.Store(err)
		}

		var links []entity.GarmentAttribute
		if err := tx.Where("garment_id = ?", garmentID).Find(&links).Error; err != nil {
			return apperr.Store(err)
		}
		if composition.HasAttribute(links, req.AttributeID) {
			return apperr.NewDuplicateAssociation("attribute", garmentID, req.AttributeID)
		}

		existingIDs := make([]string, 0, len(links))
		for _, l := range links {
			existingIDs = append(existingIDs, l.AttributeID)
		}
		if err := s.checkCompatibility(tx, attribute, existingIDs); err != nil {
			return err
		}

		link = &entity.GarmentAttribute{
			ID:          newID(),
			GarmentID:   garmentID,
			AttributeID: req.AttributeID,
			Attribute:   &attribute,
		}
		if err := tx.Omit("Attribute").Create(link).Error; err != nil {
			return apperr.Store(err)
		}
		return nil
	})
	if err != nil {
		return nil, wrapStore(err)
	}
	return link, nil
}

// RemoveAttribute drops the attribute link.
func (s *CompositionService) RemoveAttribute(ctx context.Context, garmentID, attributeID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockGarment(tx, garmentID); err != nil {
			return err
		}
		result := tx.Where("garment_id = ? AND attribute_id = ?", garmentID, attributeID).
			Delete(&entity.GarmentAttribute{})
		if result.Error != nil {
			return apperr.Store(result.Error)
		}
		if result.RowsAffected == 0 {
			return apperr.NewNotFound("attribute link", attributeID)
		}
		return nil
	})
	return wrapStore(err)
}

// checkCompatibility rejects the new attribute when an incompatibility
// rule pairs it with any attribute already on the garment.
func (s *CompositionService) checkCompatibility(tx *gorm.DB, attribute entity.Attribute, existingIDs []string) error {
	if len(existingIDs) == 0 {
		return nil
	}
	var rules []entity.AttributeIncompatibility
	err := tx.Preload("Attribute1").Preload("Attribute2").
		Where("(attribute_id_1 = ? AND attribute_id_2 IN ?) OR (attribute_id_2 = ? AND attribute_id_1 IN ?)",
			attribute.ID, existingIDs, attribute.ID, existingIDs).
		Find(&rules).Error
	if err != nil {
		return apperr.Store(err)
	}
	if len(rules) == 0 {
		return nil
	}

	conflicts := make([]string, 0, len(rules))
	for _, rule := range rules {
		switch {
		case rule.AttributeID1 == attribute.ID && rule.Attribute2 != nil:
			conflicts = append(conflicts, rule.Attribute2.Name)
		case rule.Attribute1 != nil:
			conflicts = append(conflicts, rule.Attribute1.Name)
		}
	}
	return apperr.NewIncompatibleAttribute(attribute.Name, conflicts)
}
