package entity

import "github.com/shopspring/decimal"

// Material is reference-catalog data, referenced by id only.
type Material struct {
	ID   string `json:"id" gorm:"primaryKey;size:32"`
	Name string `json:"name" gorm:"size:100;not null;uniqueIndex"`
}

func (Material) TableName() string {
	return "materials"
}

// GarmentMaterial links a garment to a catalog material with a percentage
// share of the composition. Percentages are two-decimal values in (0, 100];
// the sum over one garment may never exceed 100.
type GarmentMaterial struct {
	ID         string          `json:"id" gorm:"primaryKey;size:32"`
	GarmentID  string          `json:"garment_id" gorm:"size:32;not null;uniqueIndex:uq_garment_material"`
	MaterialID string          `json:"material_id" gorm:"size:32;not null;uniqueIndex:uq_garment_material"`
	Percentage decimal.Decimal `json:"percentage" gorm:"type:decimal(5,2);not null"`

	Material *Material `json:"material,omitempty" gorm:"foreignKey:MaterialID"`
}

func (GarmentMaterial) TableName() string {
	return "garment_materials"
}
