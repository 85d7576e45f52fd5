package composition

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/stitchline/atelier/internal/atelier/apperr"
	"github.com/stitchline/atelier/internal/atelier/entity"
)

func links(percentages ...float64) []entity.GarmentMaterial {
	out := make([]entity.GarmentMaterial, 0, len(percentages))
	for i, p := range percentages {
		out = append(out, entity.GarmentMaterial{
			MaterialID: string(rune('a' + i)),
			Percentage: decimal.NewFromFloat(p),
		})
	}
	return out
}

func TestCheckPercentage(t *testing.T) {
	valid := []float64{0.01, 1, 50, 99.99, 100}
	for _, p := range valid {
		if err := CheckPercentage(decimal.NewFromFloat(p)); err != nil {
			t.Errorf("percentage %v: expected valid, got %v", p, err)
		}
	}

	invalid := []float64{0, -1, -0.01, 100.01, 150}
	for _, p := range invalid {
		err := CheckPercentage(decimal.NewFromFloat(p))
		if !apperr.Is(err, apperr.CodeInvalidPercentage) {
			t.Errorf("percentage %v: expected INVALID_PERCENTAGE, got %v", p, err)
		}
	}
}

func TestCheckAddition(t *testing.T) {
	// 60 + 40 = exactly 100 is allowed
	if err := CheckAddition(links(60), decimal.NewFromInt(40)); err != nil {
		t.Errorf("expected 60+40 to pass, got %v", err)
	}

	// 60 + 50 exceeds
	err := CheckAddition(links(60), decimal.NewFromInt(50))
	if !apperr.Is(err, apperr.CodeCompositionExceeded) {
		t.Errorf("expected COMPOSITION_EXCEEDED, got %v", err)
	}

	// empty set accepts up to 100
	if err := CheckAddition(nil, decimal.NewFromInt(100)); err != nil {
		t.Errorf("expected 100 on empty set to pass, got %v", err)
	}

	// fractional values must not trip float rounding: 33.33 * 3 = 99.99
	set := links(33.33, 33.33)
	if err := CheckAddition(set, decimal.NewFromFloat(33.33)); err != nil {
		t.Errorf("expected 33.33*3 to pass, got %v", err)
	}
	if err := CheckAddition(set, decimal.NewFromFloat(33.35)); !apperr.Is(err, apperr.CodeCompositionExceeded) {
		t.Errorf("expected COMPOSITION_EXCEEDED for 33.33+33.33+33.35, got %v", err)
	}
}

func TestTotal(t *testing.T) {
	got := Total(links(10.5, 20.25, 30))
	want := decimal.NewFromFloat(60.75)
	if !got.Equal(want) {
		t.Errorf("expected total %s, got %s", want, got)
	}
	if !Total(nil).Equal(decimal.Zero) {
		t.Errorf("expected empty total to be zero, got %s", Total(nil))
	}
}

func TestHasMaterial(t *testing.T) {
	set := links(40, 60)
	if !HasMaterial(set, "a") {
		t.Error("expected material a to be present")
	}
	if HasMaterial(set, "z") {
		t.Error("expected material z to be absent")
	}
}

func TestHasAttribute(t *testing.T) {
	set := []entity.GarmentAttribute{{AttributeID: "attr-1"}}
	if !HasAttribute(set, "attr-1") {
		t.Error("expected attr-1 to be present")
	}
	if HasAttribute(set, "attr-2") {
		t.Error("expected attr-2 to be absent")
	}
}

// TestAdditionSequenceInvariant simulates random add sequences and checks the
// accepted set never sums above 100.
func TestAdditionSequenceInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 200; trial++ {
		var set []entity.GarmentMaterial
		for step := 0; step < 10; step++ {
			p := decimal.NewFromFloat(float64(rng.Intn(12000)) / 100.0)
			if CheckPercentage(p) != nil {
				continue
			}
			if CheckAddition(set, p) != nil {
				continue
			}
			set = append(set, entity.GarmentMaterial{Percentage: p})
		}
		if Total(set).GreaterThan(decimal.NewFromInt(100)) {
			t.Fatalf("trial %d: accepted set sums to %s", trial, Total(set))
		}
	}
}
