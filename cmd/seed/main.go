// Command seed populates the reference catalogs (materials, attributes,
// incompatibility rules, suppliers) and a couple of demo garments. It is
// idempotent: a non-empty material catalog means the database is already
// seeded.
package main

import (
	"log"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stitchline/atelier/internal/atelier/entity"
	"github.com/stitchline/atelier/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&entity.Material{},
		&entity.Attribute{},
		&entity.AttributeIncompatibility{},
		&entity.Supplier{},
		&entity.Garment{},
		&entity.GarmentMaterial{},
		&entity.GarmentAttribute{},
		&entity.GarmentSupplier{},
		&entity.SampleSet{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := seed(db); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
	log.Println("Seed complete")
}

func newID() string {
	return uuid.New().String()[:32]
}

func seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.Material{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Catalogs already seeded, nothing to do")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		materialNames := []string{
			"denim", "cotton", "lycra", "polyester", "silk",
			"wool", "linen", "nylon", "viscose", "cashmere",
		}
		materials := map[string]*entity.Material{}
		for _, name := range materialNames {
			m := &entity.Material{ID: newID(), Name: name}
			if err := tx.Create(m).Error; err != nil {
				return err
			}
			materials[name] = m
		}

		attributeDefs := []struct {
			name     string
			category string
		}{
			{"long sleeve", entity.AttributeCategorySleeveType},
			{"short sleeve", entity.AttributeCategorySleeveType},
			{"sleeveless", entity.AttributeCategorySleeveType},
			{"crew neck", entity.AttributeCategoryNeckline},
			{"v-neck", entity.AttributeCategoryNeckline},
			{"mock neck", entity.AttributeCategoryNeckline},
			{"nightwear", entity.AttributeCategoryGarmentCategory},
			{"activewear", entity.AttributeCategoryGarmentCategory},
			{"casual", entity.AttributeCategoryGarmentCategory},
			{"formal", entity.AttributeCategoryGarmentCategory},
			{"slim", entity.AttributeCategoryFit},
			{"regular", entity.AttributeCategoryFit},
			{"oversized", entity.AttributeCategoryFit},
			{"with logo", entity.AttributeCategoryFeature},
			{"with pocket", entity.AttributeCategoryFeature},
			{"with zipper", entity.AttributeCategoryFeature},
		}
		attributes := map[string]*entity.Attribute{}
		for _, def := range attributeDefs {
			a := &entity.Attribute{ID: newID(), Name: def.name, Category: def.category}
			if err := tx.Create(a).Error; err != nil {
				return err
			}
			attributes[def.name] = a
		}

		incompatiblePairs := [][2]string{
			{"nightwear", "activewear"},
			{"formal", "activewear"},
			{"sleeveless", "long sleeve"},
			{"short sleeve", "long sleeve"},
			{"short sleeve", "sleeveless"},
		}
		for _, pair := range incompatiblePairs {
			low, high := attributes[pair[0]].ID, attributes[pair[1]].ID
			if high < low {
				low, high = high, low
			}
			rule := &entity.AttributeIncompatibility{ID: newID(), AttributeID1: low, AttributeID2: high}
			if err := tx.Create(rule).Error; err != nil {
				return err
			}
		}

		suppliers := []*entity.Supplier{
			{ID: newID(), Name: "Fabric Co Ltd", ContactInfo: "contact@fabricco.com"},
			{ID: newID(), Name: "Budget Textiles", ContactInfo: "sales@budgettextiles.com"},
			{ID: newID(), Name: "Premium Mills", ContactInfo: "info@premiummills.com"},
		}
		for _, s := range suppliers {
			if err := tx.Create(s).Error; err != nil {
				return err
			}
		}

		tee := &entity.Garment{
			ID:             newID(),
			Name:           "Classic Tee",
			Description:    "Short-sleeve crew neck staple",
			LifecycleStage: entity.StageDesign,
		}
		if err := tx.Create(tee).Error; err != nil {
			return err
		}
		teeCotton := &entity.GarmentMaterial{
			ID:         newID(),
			GarmentID:  tee.ID,
			MaterialID: materials["cotton"].ID,
			Percentage: decimal.NewFromInt(95),
		}
		teeLycra := &entity.GarmentMaterial{
			ID:         newID(),
			GarmentID:  tee.ID,
			MaterialID: materials["lycra"].ID,
			Percentage: decimal.NewFromInt(5),
		}
		for _, gm := range []*entity.GarmentMaterial{teeCotton, teeLycra} {
			if err := tx.Create(gm).Error; err != nil {
				return err
			}
		}
		for _, attrName := range []string{"short sleeve", "crew neck", "casual", "regular"} {
			ga := &entity.GarmentAttribute{
				ID:          newID(),
				GarmentID:   tee.ID,
				AttributeID: attributes[attrName].ID,
			}
			if err := tx.Create(ga).Error; err != nil {
				return err
			}
		}

		hoodie := &entity.Garment{
			ID:             newID(),
			Name:           "Zip Hoodie",
			Description:    "Fleece-lined hoodie with full zipper",
			LifecycleStage: entity.StageConcept,
		}
		if err := tx.Create(hoodie).Error; err != nil {
			return err
		}

		offer := decimal.NewFromFloat(4.50)
		leadTime := 21
		rel := &entity.GarmentSupplier{
			ID:           newID(),
			GarmentID:    tee.ID,
			SupplierID:   suppliers[0].ID,
			Status:       entity.SupplierStatusOffered,
			OfferPrice:   &offer,
			LeadTimeDays: &leadTime,
			Notes:        "initial quote for first run",
		}
		return tx.Create(rel).Error
	})
}
