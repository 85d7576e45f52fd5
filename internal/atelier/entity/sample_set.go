package entity

import "time"

// SampleSet is one batch of physical samples submitted under a
// garment-supplier relationship. Status is a free-form string; the
// constants below are the conventional values, not an enforced machine.
type SampleSet struct {
	ID                string     `json:"id" gorm:"primaryKey;size:32"`
	GarmentSupplierID string     `json:"garment_supplier_id" gorm:"size:32;not null;index"`
	Status            string     `json:"status" gorm:"size:20;not null;default:PENDING"`
	Notes             string     `json:"notes" gorm:"type:text"`
	SubmittedDate     *time.Time `json:"submitted_date"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (SampleSet) TableName() string {
	return "sample_sets"
}

// Conventional sample statuses
const (
	SampleStatusPending  = "PENDING"
	SampleStatusReceived = "RECEIVED"
	SampleStatusApproved = "APPROVED"
	SampleStatusRejected = "REJECTED"
)
