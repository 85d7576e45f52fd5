// Package composition holds the stateless invariant checks run before any
// composition mutation commits: percentage bounds, the 100% sum cap, and
// duplicate detection. All functions are pure; the service layer calls them
// against freshly locked state and applies nothing on failure.
package composition

import (
	"github.com/shopspring/decimal"

	"github.com/stitchline/atelier/internal/atelier/apperr"
	"github.com/stitchline/atelier/internal/atelier/entity"
)

var hundred = decimal.NewFromInt(100)

// CheckPercentage validates 0 < p <= 100, independent of the sum cap.
func CheckPercentage(p decimal.Decimal) error {
	if p.LessThanOrEqual(decimal.Zero) || p.GreaterThan(hundred) {
		return apperr.NewInvalidPercentage(p)
	}
	return nil
}

// Total sums the percentages of the given material links.
func Total(links []entity.GarmentMaterial) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range links {
		sum = sum.Add(l.Percentage)
	}
	return sum
}

// CheckAddition validates that adding a link with the given percentage to
// the existing set keeps the total at or below 100.
func CheckAddition(links []entity.GarmentMaterial, adding decimal.Decimal) error {
	current := Total(links)
	if current.Add(adding).GreaterThan(hundred) {
		return apperr.NewCompositionExceeded(current, adding)
	}
	return nil
}

// HasMaterial reports whether materialID is already linked.
func HasMaterial(links []entity.GarmentMaterial, materialID string) bool {
	for _, l := range links {
		if l.MaterialID == materialID {
			return true
		}
	}
	return false
}

// HasAttribute reports whether attributeID is already linked.
func HasAttribute(links []entity.GarmentAttribute, attributeID string) bool {
	for _, l := range links {
		if l.AttributeID == attributeID {
			return true
		}
	}
	return false
}
