package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stitchline/atelier/internal/atelier/apperr"
	"github.com/stitchline/atelier/internal/atelier/entity"
	"github.com/stitchline/atelier/internal/atelier/lifecycle"
	"github.com/stitchline/atelier/internal/atelier/repository"
)

// SupplierService manages the supplier catalog, garment-supplier
// relationships with their status pipeline, and the sample sets owned by
// those relationships.
type SupplierService struct {
	supplierRepo *repository.SupplierRepository
	sampleRepo   *repository.SampleSetRepository
	db           *gorm.DB
	logger       *zap.Logger
}

func NewSupplierService(repos *repository.Repositories, db *gorm.DB, logger *zap.Logger) *SupplierService {
	return &SupplierService{
		supplierRepo: repos.Supplier,
		sampleRepo:   repos.SampleSet,
		db:           db,
		logger:       logger,
	}
}

type SupplierReq struct {
	Name        string `json:"name" binding:"required"`
	ContactInfo string `json:"contact_info"`
}

type AssociateSupplierReq struct {
	SupplierID   string           `json:"supplier_id" binding:"required"`
	OfferPrice   *decimal.Decimal `json:"offer_price"`
	LeadTimeDays *int             `json:"lead_time_days"`
	Notes        string           `json:"notes"`
}

type SupplierTransitionReq struct {
	TargetStatus string `json:"target_status" binding:"required"`
}

// SampleSetReq uses pointers so an omitted field stays untouched on update
// while an explicit empty string clears it.
type SampleSetReq struct {
	Status        *string    `json:"status"`
	Notes         *string    `json:"notes"`
	SubmittedDate *time.Time `json:"submitted_date"`
}

// --- supplier catalog ---

func (s *SupplierService) ListSuppliers(ctx context.Context) ([]entity.Supplier, error) {
	items, err := s.supplierRepo.FindAll(ctx)
	if err != nil {
		return nil, apperr.Store(err)
	}
	return items, nil
}

func (s *SupplierService) GetSupplier(ctx context.Context, id string) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperr.NewNotFound("supplier", id)
		}
		return nil, apperr.Store(err)
	}
	return supplier, nil
}

func (s *SupplierService) CreateSupplier(ctx context.Context, req SupplierReq) (*entity.Supplier, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.NewValidation("name must not be empty")
	}
	supplier := &entity.Supplier{
		ID:          newID(),
		Name:        name,
		ContactInfo: req.ContactInfo,
	}
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, apperr.Store(err)
	}
	return supplier, nil
}

func (s *SupplierService) UpdateSupplier(ctx context.Context, id string, req SupplierReq) (*entity.Supplier, error) {
	supplier, err := s.GetSupplier(ctx, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.NewValidation("name must not be empty")
	}
	supplier.Name = name
	supplier.ContactInfo = req.ContactInfo
	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, apperr.Store(err)
	}
	return supplier, nil
}

// DeleteSupplier removes a catalog entry. Suppliers linked to garments
// cannot be deleted; the check runs in the delete transaction and the FK
// constraint backs it up against races.
func (s *SupplierService) DeleteSupplier(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var supplier entity.Supplier
		if err := tx.Where("id = ?", id).First(&supplier).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("supplier", id)
			}
			return apperr.Store(err)
		}

		var count int64
		if err := tx.Model(&entity.GarmentSupplier{}).
			Where("supplier_id = ?", id).
			Count(&count).Error; err != nil {
			return apperr.Store(err)
		}
		if count > 0 {
			return apperr.NewValidation(fmt.Sprintf("supplier %q is associated with garments and cannot be deleted", supplier.Name))
		}

		if err := tx.Where("id = ?", id).Delete(&entity.Supplier{}).Error; err != nil {
			if isPGViolation(err, pgForeignKeyViolation) {
				return apperr.NewValidation(fmt.Sprintf("supplier %q is associated with garments and cannot be deleted", supplier.Name))
			}
			return apperr.Store(err)
		}
		return nil
	})
	return wrapStore(err)
}

// --- garment-supplier relationships ---

// Associate links a supplier to a garment, starting the relationship at
// OFFERED.
func (s *SupplierService) Associate(ctx context.Context, garmentID string, req AssociateSupplierReq) (*entity.GarmentSupplier, error) {
	if req.OfferPrice != nil && req.OfferPrice.IsNegative() {
		return nil, apperr.NewValidation("offer_price must not be negative")
	}
	if req.LeadTimeDays != nil && *req.LeadTimeDays < 1 {
		return nil, apperr.NewValidation("lead_time_days must be at least 1")
	}

	var rel *entity.GarmentSupplier
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockGarment(tx, garmentID); err != nil {
			return err
		}

		var supplier entity.Supplier
		if err := tx.Where("id = ?", req.SupplierID).First(&supplier).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewUnknownReference("supplier", req.SupplierID)
			}
			return apperr.Store(err)
		}

		var count int64
		if err := tx.Model(&entity.GarmentSupplier{}).
			Where("garment_id = ? AND supplier_id = ?", garmentID, req.SupplierID).
			Count(&count).Error; err != nil {
			return apperr.Store(err)
		}
		if count > 0 {
			return apperr.NewDuplicateAssociation("supplier", garmentID, req.SupplierID)
		}

		rel = &entity.GarmentSupplier{
			ID:           newID(),
			GarmentID:    garmentID,
			SupplierID:   req.SupplierID,
			Status:       entity.SupplierStatusOffered,
			OfferPrice:   req.OfferPrice,
			LeadTimeDays: req.LeadTimeDays,
			Notes:        req.Notes,
		}
		if err := tx.Create(rel).Error; err != nil {
			return apperr.Store(err)
		}
		rel.SupplierName = supplier.Name
		return nil
	})
	if err != nil {
		return nil, wrapStore(err)
	}
	return rel, nil
}

// TransitionStatus moves the relationship along the supplier pipeline. The
// relationship row is locked so concurrent transitions serialize and the
// second request is judged against the first's committed result.
func (s *SupplierService) TransitionStatus(ctx context.Context, garmentID, supplierID, targetStatus string) (*entity.GarmentSupplier, error) {
	var updated *entity.GarmentSupplier
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rel entity.GarmentSupplier
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("garment_id = ? AND supplier_id = ?", garmentID, supplierID).
			First(&rel).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("supplier relationship", supplierID)
			}
			return apperr.Store(err)
		}

		next, err := lifecycle.AttemptTransition(lifecycle.SupplierStatuses, rel.Status, targetStatus)
		if err != nil {
			return err
		}
		rel.Status = next
		if err := tx.Save(&rel).Error; err != nil {
			return apperr.Store(err)
		}

		var supplier entity.Supplier
		if err := tx.Where("id = ?", rel.SupplierID).First(&supplier).Error; err != nil {
			return apperr.Store(err)
		}
		rel.SupplierName = supplier.Name
		updated = &rel
		return nil
	})
	if err != nil {
		return nil, wrapStore(err)
	}
	return updated, nil
}

// --- sample sets ---

func (s *SupplierService) relationship(ctx context.Context, garmentID, supplierID string) (*entity.GarmentSupplier, error) {
	rel, err := s.supplierRepo.FindRelationship(ctx, garmentID, supplierID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperr.NewNotFound("supplier relationship", supplierID)
		}
		return nil, apperr.Store(err)
	}
	return rel, nil
}

func (s *SupplierService) ListSampleSets(ctx context.Context, garmentID, supplierID string) ([]entity.SampleSet, error) {
	rel, err := s.relationship(ctx, garmentID, supplierID)
	if err != nil {
		return nil, err
	}
	items, err := s.sampleRepo.FindByRelationship(ctx, rel.ID)
	if err != nil {
		return nil, apperr.Store(err)
	}
	return items, nil
}

func (s *SupplierService) CreateSampleSet(ctx context.Context, garmentID, supplierID string, req SampleSetReq) (*entity.SampleSet, error) {
	rel, err := s.relationship(ctx, garmentID, supplierID)
	if err != nil {
		return nil, err
	}
	status := entity.SampleStatusPending
	if req.Status != nil && *req.Status != "" {
		status = *req.Status
	}
	sample := &entity.SampleSet{
		ID:                newID(),
		GarmentSupplierID: rel.ID,
		Status:            status,
		SubmittedDate:     req.SubmittedDate,
	}
	if req.Notes != nil {
		sample.Notes = *req.Notes
	}
	if err := s.sampleRepo.Create(ctx, sample); err != nil {
		return nil, apperr.Store(err)
	}
	return sample, nil
}

func (s *SupplierService) UpdateSampleSet(ctx context.Context, garmentID, supplierID, sampleID string, req SampleSetReq) (*entity.SampleSet, error) {
	rel, err := s.relationship(ctx, garmentID, supplierID)
	if err != nil {
		return nil, err
	}
	sample, err := s.sampleRepo.FindByID(ctx, sampleID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperr.NewNotFound("sample set", sampleID)
		}
		return nil, apperr.Store(err)
	}
	if sample.GarmentSupplierID != rel.ID {
		return nil, apperr.NewNotFound("sample set", sampleID)
	}

	if req.Status != nil {
		sample.Status = *req.Status
	}
	if req.Notes != nil {
		sample.Notes = *req.Notes
	}
	if req.SubmittedDate != nil {
		sample.SubmittedDate = req.SubmittedDate
	}
	if err := s.sampleRepo.Update(ctx, sample); err != nil {
		return nil, apperr.Store(err)
	}
	return sample, nil
}
