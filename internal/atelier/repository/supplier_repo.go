package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/stitchline/atelier/internal/atelier/entity"
)

// SupplierRepository serves the supplier catalog and the garment-supplier
// relationships hanging off it.
type SupplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

func (r *SupplierRepository) FindAll(ctx context.Context) ([]entity.Supplier, error) {
	var items []entity.Supplier
	err := r.db.WithContext(ctx).Order("name ASC").Find(&items).Error
	return items, err
}

func (r *SupplierRepository) FindByID(ctx context.Context, id string) (*entity.Supplier, error) {
	var supplier entity.Supplier
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&supplier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

func (r *SupplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	return r.db.WithContext(ctx).Create(supplier).Error
}

func (r *SupplierRepository) Update(ctx context.Context, supplier *entity.Supplier) error {
	return r.db.WithContext(ctx).Save(supplier).Error
}

func (r *SupplierRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Supplier{}).Error
}

// FindRelationship loads the garment-supplier link for a pair.
func (r *SupplierRepository) FindRelationship(ctx context.Context, garmentID, supplierID string) (*entity.GarmentSupplier, error) {
	var rel entity.GarmentSupplier
	err := r.db.WithContext(ctx).
		Where("garment_id = ? AND supplier_id = ?", garmentID, supplierID).
		First(&rel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rel, nil
}

func (r *SupplierRepository) UpdateRelationship(ctx context.Context, rel *entity.GarmentSupplier) error {
	return r.db.WithContext(ctx).Save(rel).Error
}
