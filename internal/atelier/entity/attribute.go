package entity

// Attribute is reference-catalog data describing a garment trait.
type Attribute struct {
	ID       string `json:"id" gorm:"primaryKey;size:32"`
	Name     string `json:"name" gorm:"size:100;not null;uniqueIndex:uq_attribute_name_category"`
	Category string `json:"category" gorm:"size:30;not null;uniqueIndex:uq_attribute_name_category"`
}

func (Attribute) TableName() string {
	return "attributes"
}

// Attribute categories
const (
	AttributeCategorySleeveType      = "SLEEVE_TYPE"
	AttributeCategoryNeckline        = "NECKLINE"
	AttributeCategoryGarmentCategory = "GARMENT_CATEGORY"
	AttributeCategoryFit             = "FIT"
	AttributeCategoryFeature         = "FEATURE"
)

// GarmentAttribute links a garment to a catalog attribute. Unique per pair.
type GarmentAttribute struct {
	ID          string `json:"id" gorm:"primaryKey;size:32"`
	GarmentID   string `json:"garment_id" gorm:"size:32;not null;uniqueIndex:uq_garment_attribute"`
	AttributeID string `json:"attribute_id" gorm:"size:32;not null;uniqueIndex:uq_garment_attribute"`

	Attribute *Attribute `json:"attribute,omitempty" gorm:"foreignKey:AttributeID"`
}

func (GarmentAttribute) TableName() string {
	return "garment_attributes"
}

// AttributeIncompatibility declares that two attributes may not coexist on
// one garment. Pairs are stored ordered (AttributeID1 < AttributeID2) so
// each rule exists exactly once.
type AttributeIncompatibility struct {
	ID           string `json:"id" gorm:"primaryKey;size:32"`
	AttributeID1 string `json:"attribute_id_1" gorm:"column:attribute_id_1;size:32;not null;uniqueIndex:uq_incompatibility_pair"`
	AttributeID2 string `json:"attribute_id_2" gorm:"column:attribute_id_2;size:32;not null;uniqueIndex:uq_incompatibility_pair"`

	Attribute1 *Attribute `json:"attribute_1,omitempty" gorm:"foreignKey:AttributeID1"`
	Attribute2 *Attribute `json:"attribute_2,omitempty" gorm:"foreignKey:AttributeID2"`
}

func (AttributeIncompatibility) TableName() string {
	return "attribute_incompatibilities"
}
