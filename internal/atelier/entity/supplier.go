package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier is reference-catalog data.
type Supplier struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	Name        string    `json:"name" gorm:"size:200;not null"`
	ContactInfo string    `json:"contact_info" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Supplier) TableName() string {
	return "suppliers"
}

// GarmentSupplier tracks one supplier's engagement on one garment. It has
// its own status pipeline, independent of the garment lifecycle, and owns
// the sample sets submitted under it.
type GarmentSupplier struct {
	ID           string           `json:"id" gorm:"primaryKey;size:32"`
	GarmentID    string           `json:"garment_id" gorm:"size:32;not null;uniqueIndex:uq_garment_supplier"`
	SupplierID   string           `json:"supplier_id" gorm:"size:32;not null;uniqueIndex:uq_garment_supplier"`
	Status       string           `json:"status" gorm:"size:20;not null;default:OFFERED"`
	OfferPrice   *decimal.Decimal `json:"offer_price" gorm:"type:decimal(10,2)"`
	LeadTimeDays *int             `json:"lead_time_days"`
	Notes        string           `json:"notes" gorm:"type:text"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`

	SupplierName string `json:"supplier_name,omitempty" gorm:"-"`

	Supplier   *Supplier   `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	SampleSets []SampleSet `json:"sample_sets,omitempty" gorm:"foreignKey:GarmentSupplierID"`
}

func (GarmentSupplier) TableName() string {
	return "garment_suppliers"
}

// Supplier relationship statuses. REJECTED and IN_STORE are terminal;
// rejection is final within a relationship.
const (
	SupplierStatusOffered      = "OFFERED"
	SupplierStatusSampling     = "SAMPLING"
	SupplierStatusApproved     = "APPROVED"
	SupplierStatusRejected     = "REJECTED"
	SupplierStatusInProduction = "IN_PRODUCTION"
	SupplierStatusInStore      = "IN_STORE"
)
