package repository

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"github.com/stitchline/atelier/internal/atelier/entity"
)

// GarmentRepository reads and writes garments. Aggregate mutations that
// need locking run through the service layer's transactions; the methods
// here are single-row or read-only.
type GarmentRepository struct {
	db *gorm.DB
}

func NewGarmentRepository(db *gorm.DB) *GarmentRepository {
	return &GarmentRepository{db: db}
}

// FindAll lists garments without nested collections. stage is an exact
// match on lifecycle_stage, search a case-insensitive substring on name;
// both optional.
func (r *GarmentRepository) FindAll(ctx context.Context, stage, search string) ([]entity.Garment, error) {
	var items []entity.Garment
	query := r.db.WithContext(ctx).Model(&entity.Garment{})
	if stage != "" {
		query = query.Where("lifecycle_stage = ?", stage)
	}
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}
	err := query.Order("created_at DESC").Find(&items).Error
	return items, err
}

// FindByID loads a garment without its collections.
func (r *GarmentRepository) FindByID(ctx context.Context, id string) (*entity.Garment, error) {
	var garment entity.Garment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&garment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &garment, nil
}

// FindDetail loads a garment with its full composition, supplier
// relationships and direct variations. The root query and each preload run
// as separate statements, so the whole read happens inside a REPEATABLE
// READ transaction: every statement sees the same snapshot and a
// concurrently committing mutation cannot produce a mixed projection.
func (r *GarmentRepository) FindDetail(ctx context.Context, id string) (*entity.Garment, error) {
	var garment entity.Garment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.
			Preload("Materials.Material").
			Preload("Attributes.Attribute").
			Preload("Suppliers.Supplier").
			Preload("Variations").
			Where("id = ?", id).
			First(&garment).Error
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &garment, nil
}

func (r *GarmentRepository) Create(ctx context.Context, garment *entity.Garment) error {
	return r.db.WithContext(ctx).Create(garment).Error
}

func (r *GarmentRepository) Update(ctx context.Context, garment *entity.Garment) error {
	return r.db.WithContext(ctx).Save(garment).Error
}
