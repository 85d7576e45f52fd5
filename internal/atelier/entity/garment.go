package entity

import "time"

// Garment is the aggregate root. Its composition (materials, attributes,
// supplier relationships) and direct variations hang off it; all mutation
// goes through the service layer.
type Garment struct {
	ID              string  `json:"id" gorm:"primaryKey;size:32"`
	Name            string  `json:"name" gorm:"size:200;not null"`
	Description     string  `json:"description" gorm:"type:text"`
	LifecycleStage  string  `json:"lifecycle_stage" gorm:"size:20;not null;default:CONCEPT;index"`
	ParentGarmentID *string `json:"parent_garment_id" gorm:"size:32;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Materials  []GarmentMaterial  `json:"materials,omitempty" gorm:"foreignKey:GarmentID"`
	Attributes []GarmentAttribute `json:"attributes,omitempty" gorm:"foreignKey:GarmentID"`
	Suppliers  []GarmentSupplier  `json:"suppliers,omitempty" gorm:"foreignKey:GarmentID"`
	Variations []Garment          `json:"variations,omitempty" gorm:"foreignKey:ParentGarmentID"`
}

func (Garment) TableName() string {
	return "garments"
}

// Lifecycle stages. ParentGarmentID is assigned once at creation and never
// reassigned, so parent chains stay acyclic by construction.
const (
	StageConcept     = "CONCEPT"
	StageDesign      = "DESIGN"
	StageDevelopment = "DEVELOPMENT"
	StageSampling    = "SAMPLING"
	StageProduction  = "PRODUCTION" // terminal, garment cannot be deleted
)
