package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/stitchline/atelier/internal/atelier/entity"
	"github.com/stitchline/atelier/internal/atelier/repository"
	"github.com/stitchline/atelier/internal/atelier/service"
	"github.com/stitchline/atelier/internal/atelier/testutil"
)

func setupGarmentTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, db, nil, zap.NewNop())
	handlers := NewHandlers(services)

	router := testutil.SetupRouter()
	RegisterRoutes(router, handlers)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

// TestGarmentLifecycleScenario walks a garment from creation through
// production, exercising stage gating, composition limits and deletion
// protection along the way.
func TestGarmentLifecycleScenario(t *testing.T) {
	env := setupGarmentTest(t)

	testutil.SeedMaterial(t, env.DB, "mat-cotton", "cotton")
	testutil.SeedMaterial(t, env.DB, "mat-lycra", "lycra")

	// Create: starts at CONCEPT
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/garments",
		map[string]interface{}{"name": "Tee", "description": "basic tee"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	created := testutil.ParseResponse(w)
	if created["lifecycle_stage"] != "CONCEPT" {
		t.Fatalf("expected stage CONCEPT, got %v", created["lifecycle_stage"])
	}
	garmentID := created["id"].(string)

	// CONCEPT -> DESIGN is allowed
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/garments/"+garmentID+"/transition",
		map[string]interface{}{"target_stage": "DESIGN"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// DESIGN -> PRODUCTION skips stages and must be rejected
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/garments/"+garmentID+"/transition",
		map[string]interface{}{"target_stage": "PRODUCTION"})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
	if resp := testutil.ParseResponse(w); resp["error"] != "INVALID_TRANSITION" {
		t.Fatalf("expected INVALID_TRANSITION, got %v", resp["error"])
	}

	// Walk forward to SAMPLING
	for _, stage := range []string{"DEVELOPMENT", "SAMPLING"} {
		w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/garments/"+garmentID+"/transition",
			map[string]interface{}{"target_stage": stage})
		if w.Code != http.StatusOK {
			t.Fatalf("transition to %s: expected 200, got %d: %s", stage, w.Code, w.Body.String())
		}
	}

	// Add cotton at 60%
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/garments/"+garmentID+"/materials",
		map[string]interface{}{"material_id": "mat-cotton", "percentage": "60"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// Adding cotton again is a duplicate
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/garments/"+garmentID+"/materials",
		map[string]interface{}{"material_id": "mat-cotton", "percentage": "10"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if resp := testutil.ParseResponse(w); resp["error"] != "DUPLICATE_ASSOCIATION" {
		t.Fatalf("expected DUPLICATE_ASSOCIATION, got %v", resp["error"])
	}

	// 60 + 50 exceeds 100
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/garments/"+garmentID+"/materials",
		map[string]interface{}{"material_id": "mat-lycra", "percentage": "50"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if resp := testutil.ParseResponse(w); resp["error"] != "COMPOSITION_EXCEEDED" {
		t.Fatalf("expected COMPOSITION_EXCEEDED, got %v", resp["error"])
	}

	// 60 + 40 = exactly 100 is fine
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/garments/"+garmentID+"/materials",
		map[string]interface{}{"material_id": "mat-lycra", "percentage": "40"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// SAMPLING -> PRODUCTION
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/garments/"+garmentID+"/transition",
		map[string]interface{}{"target_stage": "PRODUCTION"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Deletion is blocked in PRODUCTION
	w = testutil.DoRequest(env.Router, http.MethodDelete, "/api/v1/garments/"+garmentID, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
	if resp := testutil.ParseResponse(w); resp["error"] != "DELETION_BLOCKED" {
		t.Fatalf("expected DELETION_BLOCKED, got %v", resp["error"])
	}

	// PRODUCTION is terminal
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/garments/"+garmentID+"/transition",
		map[string]interface{}{"target_stage": "SAMPLING"})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGarmentCreateValidation(t *testing.T) {
	env := setupGarmentTest(t)

	// Missing name
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/garments",
		map[string]interface{}{"description": "no name"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	// Whitespace-only name
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/garments",
		map[string]interface{}{"name": "   "})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGarmentNotFound(t *testing.T) {
	env := setupGarmentTest(t)

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/garments/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
	if resp := testutil.ParseResponse(w); resp["error"] != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %v", resp["error"])
	}

	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/garments/nope/transition",
		map[string]interface{}{"target_stage": "DESIGN"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAddMaterialUnknownReference(t *testing.T) {
	env := setupGarmentTest(t)
	testutil.SeedGarment(t, env.DB, "g-1", "Jacket", entity.StageConcept)

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/garments/g-1/materials",
		map[string]interface{}{"material_id": "mat-ghost", "percentage": "10"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
	if resp := testutil.ParseResponse(w); resp["error"] != "UNKNOWN_REFERENCE" {
		t.Fatalf("expected UNKNOWN_REFERENCE, got %v", resp["error"])
	}
}

func TestInvalidPercentage(t *testing.T) {
	env := setupGarmentTest(t)
	testutil.SeedGarment(t, env.DB, "g-1", "Jacket", entity.StageConcept)
	testutil.SeedMaterial(t, env.DB, "mat-wool", "wool")

	for _, p := range []string{"0", "-5", "100.01"} {
		w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/garments/g-1/materials",
			map[string]interface{}{"material_id": "mat-wool", "percentage": p})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("percentage %s: expected 400, got %d: %s", p, w.Code, w.Body.String())
		}
		if resp := testutil.ParseResponse(w); resp["error"] != "INVALID_PERCENTAGE" {
			t.Fatalf("percentage %s: expected INVALID_PERCENTAGE, got %v", p, resp["error"])
		}
	}
}

// TestRemoveMaterialRestoresHeadroom verifies that removing a link frees its
// share of the 100% budget.
func TestRemoveMaterialRestoresHeadroom(t *testing.T) {
	env := setupGarmentTest(t)
	testutil.SeedGarment(t, env.DB, "g-1", "Dress", entity.StageDesign)
	testutil.SeedMaterial(t, env.DB, "mat-silk", "silk")
	testutil.SeedMaterial(t, env.DB, "mat-viscose", "viscose")

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/garments/g-1/materials",
		map[string]interface{}{"material_id": "mat-silk", "percentage": "80"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/garments/g-1/materials",
		map[string]interface{}{"material_id": "mat-viscose", "percentage": "30"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, http.MethodDelete, "/api/v1/garments/g-1/materials/mat-silk", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/garments/g-1/materials",
		map[string]interface{}{"material_id": "mat-viscose", "percentage": "30"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 after removal, got %d: %s", w.Code, w.Body.String())
	}

	// Removing an unlinked material is NOT_FOUND
	w = testutil.DoRequest(env.Router, http.MethodDelete, "/api/v1/garments/g-1/materials/mat-silk", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestIncompatibleAttributeRejected(t *testing.T) {
	env := setupGarmentTest(t)
	testutil.SeedGarment(t, env.DB, "g-1", "Tank", entity.StageDesign)
	long := testutil.SeedAttribute(t, env.DB, "attr-long", "long sleeve", entity.AttributeCategorySleeveType)
	sleeveless := testutil.SeedAttribute(t, env.DB, "attr-none", "sleeveless", entity.AttributeCategorySleeveType)

	low, high := long.ID, sleeveless.ID
	if high < low {
		low, high = high, low
	}
	if err := env.DB.Create(&entity.AttributeIncompatibility{
		ID: "inc-1", AttributeID1: low, AttributeID2: high,
	}).Error; err != nil {
		t.Fatalf("Failed to seed incompatibility: %v", err)
	}

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/garments/g-1/attributes",
		map[string]interface{}{"attribute_id": sleeveless.ID})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/garments/g-1/attributes",
		map[string]interface{}{"attribute_id": long.ID})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
	if resp := testutil.ParseResponse(w); resp["error"] != "INCOMPATIBLE_ATTRIBUTE" {
		t.Fatalf("expected INCOMPATIBLE_ATTRIBUTE, got %v", resp["error"])
	}

	// Same attribute twice is a duplicate
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/garments/g-1/attributes",
		map[string]interface{}{"attribute_id": sleeveless.ID})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

// TestVariationStartsFresh derives a variation and checks it begins at
// CONCEPT with an empty composition regardless of the parent's state.
func TestVariationStartsFresh(t *testing.T) {
	env := setupGarmentTest(t)
	testutil.SeedGarment(t, env.DB, "g-parent", "Parka", entity.StageSampling)
	testutil.SeedMaterial(t, env.DB, "mat-nylon", "nylon")

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/garments/g-parent/materials",
		map[string]interface{}{"material_id": "mat-nylon", "percentage": "100"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/garments/g-parent/variations",
		map[string]interface{}{"name": "Parka - Red"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	variation := testutil.ParseResponse(w)
	if variation["lifecycle_stage"] != "CONCEPT" {
		t.Fatalf("expected CONCEPT, got %v", variation["lifecycle_stage"])
	}
	if variation["parent_garment_id"] != "g-parent" {
		t.Fatalf("expected parent g-parent, got %v", variation["parent_garment_id"])
	}

	// Variation composition is empty
	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/garments/"+variation["id"].(string), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	detail := testutil.ParseResponse(w)
	if materials := detail["materials"].([]interface{}); len(materials) != 0 {
		t.Fatalf("expected empty composition, got %d materials", len(materials))
	}

	// Variations of a missing parent fail
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/garments/nope/variations",
		map[string]interface{}{"name": "Orphan"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

// TestDeleteCascade deletes a garment and checks its links go with it while
// variations survive detached.
func TestDeleteCascade(t *testing.T) {
	env := setupGarmentTest(t)
	testutil.SeedGarment(t, env.DB, "g-1", "Coat", entity.StageDesign)
	testutil.SeedMaterial(t, env.DB, "mat-wool", "wool")
	testutil.SeedSupplier(t, env.DB, "sup-1", "Fabric Co Ltd")

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/garments/g-1/materials",
		map[string]interface{}{"material_id": "mat-wool", "percentage": "100"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/garments/g-1/suppliers",
		map[string]interface{}{"supplier_id": "sup-1"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/garments/g-1/suppliers/sup-1/samples",
		map[string]interface{}{"notes": "first proto"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/garments/g-1/variations",
		map[string]interface{}{"name": "Coat - Navy"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	childID := testutil.ParseResponse(w)["id"].(string)

	w = testutil.DoRequest(env.Router, http.MethodDelete, "/api/v1/garments/g-1", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	env.DB.Model(&entity.GarmentMaterial{}).Where("garment_id = ?", "g-1").Count(&count)
	if count != 0 {
		t.Fatalf("expected material links deleted, found %d", count)
	}
	env.DB.Model(&entity.GarmentSupplier{}).Where("garment_id = ?", "g-1").Count(&count)
	if count != 0 {
		t.Fatalf("expected supplier links deleted, found %d", count)
	}
	env.DB.Model(&entity.SampleSet{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected sample sets deleted, found %d", count)
	}

	// The supplier catalog entry survives
	env.DB.Model(&entity.Supplier{}).Where("id = ?", "sup-1").Count(&count)
	if count != 1 {
		t.Fatal("expected supplier catalog entry to survive")
	}

	// The variation survives with its parent reference cleared
	var child entity.Garment
	if err := env.DB.Where("id = ?", childID).First(&child).Error; err != nil {
		t.Fatalf("expected variation to survive: %v", err)
	}
	if child.ParentGarmentID != nil {
		t.Fatalf("expected parent reference cleared, got %v", *child.ParentGarmentID)
	}

	// Deleting twice is NOT_FOUND
	w = testutil.DoRequest(env.Router, http.MethodDelete, "/api/v1/garments/g-1", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

// TestUpdateFrozenInProduction checks name/description edits are rejected
// once a garment reaches PRODUCTION.
func TestUpdateFrozenInProduction(t *testing.T) {
	env := setupGarmentTest(t)
	testutil.SeedGarment(t, env.DB, "g-1", "Blazer", entity.StageDesign)

	w := testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/garments/g-1",
		map[string]interface{}{"name": "Blazer v2"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if resp := testutil.ParseResponse(w); resp["name"] != "Blazer v2" {
		t.Fatalf("expected updated name, got %v", resp["name"])
	}

	env.DB.Model(&entity.Garment{}).Where("id = ?", "g-1").Update("lifecycle_stage", entity.StageProduction)

	w = testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/garments/g-1",
		map[string]interface{}{"name": "Blazer v3"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestListGarmentsFilter(t *testing.T) {
	env := setupGarmentTest(t)
	testutil.SeedGarment(t, env.DB, "g-1", "Summer Tee", entity.StageConcept)
	testutil.SeedGarment(t, env.DB, "g-2", "Winter Coat", entity.StageDesign)
	testutil.SeedGarment(t, env.DB, "g-3", "Spring Tee", entity.StageDesign)

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/garments?stage=DESIGN", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var list []interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to parse list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 garments in DESIGN, got %d", len(list))
	}

	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/garments?search=tee", nil)
	list = nil
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to parse list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 garments matching 'tee', got %d", len(list))
	}

	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/garments?stage=DESIGN&search=tee", nil)
	list = nil
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to parse list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 garment, got %d", len(list))
	}
}

// TestFailedOperationsIdempotent replays failed requests with identical
// inputs and checks each retry yields the same error kind and leaves state
// untouched. Deterministic rejections must recur, not resolve.
func TestFailedOperationsIdempotent(t *testing.T) {
	env := setupGarmentTest(t)
	testutil.SeedGarment(t, env.DB, "g-1", "Anorak", entity.StageDesign)
	testutil.SeedMaterial(t, env.DB, "mat-a", "polyester")
	testutil.SeedMaterial(t, env.DB, "mat-b", "elastane")

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/garments/g-1/materials",
		map[string]interface{}{"material_id": "mat-a", "percentage": "60"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// Over-cap addition fails the same way every time
	for attempt := 0; attempt < 3; attempt++ {
		w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/garments/g-1/materials",
			map[string]interface{}{"material_id": "mat-b", "percentage": "50"})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("attempt %d: expected 400, got %d: %s", attempt, w.Code, w.Body.String())
		}
		if resp := testutil.ParseResponse(w); resp["error"] != "COMPOSITION_EXCEEDED" {
			t.Fatalf("attempt %d: expected COMPOSITION_EXCEEDED, got %v", attempt, resp["error"])
		}
	}
	var linkCount int64
	env.DB.Model(&entity.GarmentMaterial{}).Where("garment_id = ?", "g-1").Count(&linkCount)
	if linkCount != 1 {
		t.Fatalf("expected 1 committed link after retries, got %d", linkCount)
	}

	// An illegal transition fails the same way every time
	for attempt := 0; attempt < 3; attempt++ {
		w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/garments/g-1/transition",
			map[string]interface{}{"target_stage": "PRODUCTION"})
		if w.Code != http.StatusConflict {
			t.Fatalf("attempt %d: expected 409, got %d: %s", attempt, w.Code, w.Body.String())
		}
		if resp := testutil.ParseResponse(w); resp["error"] != "INVALID_TRANSITION" {
			t.Fatalf("attempt %d: expected INVALID_TRANSITION, got %v", attempt, resp["error"])
		}
	}
	var g entity.Garment
	env.DB.Where("id = ?", "g-1").First(&g)
	if g.LifecycleStage != entity.StageDesign {
		t.Fatalf("expected stage DESIGN after failed retries, got %s", g.LifecycleStage)
	}
}

func TestExportGarments(t *testing.T) {
	env := setupGarmentTest(t)
	testutil.SeedGarment(t, env.DB, "g-1", "Export Me", entity.StageConcept)

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/garments/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if w.Body.Len() == 0 {
		t.Fatal("expected non-empty workbook")
	}
}
