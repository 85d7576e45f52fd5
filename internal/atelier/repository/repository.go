package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is the repository-level miss sentinel. Services translate it
// into the typed NOT_FOUND / UNKNOWN_REFERENCE errors with entity context.
var ErrNotFound = errors.New("record not found")

// Repositories bundles all repositories of the garment domain.
type Repositories struct {
	Garment   *GarmentRepository
	Material  *MaterialRepository
	Attribute *AttributeRepository
	Supplier  *SupplierRepository
	SampleSet *SampleSetRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Garment:   NewGarmentRepository(db),
		Material:  NewMaterialRepository(db),
		Attribute: NewAttributeRepository(db),
		Supplier:  NewSupplierRepository(db),
		SampleSet: NewSampleSetRepository(db),
	}
}
