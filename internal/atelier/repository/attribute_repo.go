package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/stitchline/atelier/internal/atelier/entity"
)

// AttributeRepository serves the attribute catalog and its incompatibility
// rules.
type AttributeRepository struct {
	db *gorm.DB
}

func NewAttributeRepository(db *gorm.DB) *AttributeRepository {
	return &AttributeRepository{db: db}
}

// FindAll lists attributes, optionally filtered by category.
func (r *AttributeRepository) FindAll(ctx context.Context, category string) ([]entity.Attribute, error) {
	var items []entity.Attribute
	query := r.db.WithContext(ctx).Model(&entity.Attribute{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Order("category ASC, name ASC").Find(&items).Error
	return items, err
}

func (r *AttributeRepository) FindByID(ctx context.Context, id string) (*entity.Attribute, error) {
	var attribute entity.Attribute
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&attribute).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &attribute, nil
}

func (r *AttributeRepository) Create(ctx context.Context, attribute *entity.Attribute) error {
	return r.db.WithContext(ctx).Create(attribute).Error
}

// FindIncompatibilities lists all rules with both attributes preloaded.
func (r *AttributeRepository) FindIncompatibilities(ctx context.Context) ([]entity.AttributeIncompatibility, error) {
	var rules []entity.AttributeIncompatibility
	err := r.db.WithContext(ctx).
		Preload("Attribute1").
		Preload("Attribute2").
		Find(&rules).Error
	return rules, err
}

func (r *AttributeRepository) CreateIncompatibility(ctx context.Context, rule *entity.AttributeIncompatibility) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

// FindConflicts returns the incompatibility rules that pair attributeID
// with any of existingIDs. Rules store ordered pairs, so both orientations
// are checked.
func (r *AttributeRepository) FindConflicts(ctx context.Context, attributeID string, existingIDs []string) ([]entity.AttributeIncompatibility, error) {
	if len(existingIDs) == 0 {
		return nil, nil
	}
	var rules []entity.AttributeIncompatibility
	err := r.db.WithContext(ctx).
		Preload("Attribute1").
		Preload("Attribute2").
		Where("(attribute_id_1 = ? AND attribute_id_2 IN ?) OR (attribute_id_2 = ? AND attribute_id_1 IN ?)",
			attributeID, existingIDs, attributeID, existingIDs).
		Find(&rules).Error
	return rules, err
}
