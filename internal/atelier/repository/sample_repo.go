package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/stitchline/atelier/internal/atelier/entity"
)

// SampleSetRepository serves sample sets owned by garment-supplier
// relationships.
type SampleSetRepository struct {
	db *gorm.DB
}

func NewSampleSetRepository(db *gorm.DB) *SampleSetRepository {
	return &SampleSetRepository{db: db}
}

func (r *SampleSetRepository) FindByRelationship(ctx context.Context, garmentSupplierID string) ([]entity.SampleSet, error) {
	var items []entity.SampleSet
	err := r.db.WithContext(ctx).
		Where("garment_supplier_id = ?", garmentSupplierID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *SampleSetRepository) FindByID(ctx context.Context, id string) (*entity.SampleSet, error) {
	var sample entity.SampleSet
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&sample).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sample, nil
}

func (r *SampleSetRepository) Create(ctx context.Context, sample *entity.SampleSet) error {
	return r.db.WithContext(ctx).Create(sample).Error
}

func (r *SampleSetRepository) Update(ctx context.Context, sample *entity.SampleSet) error {
	return r.db.WithContext(ctx).Save(sample).Error
}
