package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stitchline/atelier/internal/atelier/apperr"
	"github.com/stitchline/atelier/internal/atelier/entity"
	"github.com/stitchline/atelier/internal/atelier/repository"
)

// postgres SQLSTATE codes for deterministic constraint violations
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isPGViolation(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// Services bundles all services of the garment domain.
type Services struct {
	Garment     *GarmentService
	Composition *CompositionService
	Supplier    *SupplierService
	Catalog     *CatalogService
}

func NewServices(repos *repository.Repositories, db *gorm.DB, rdb *redis.Client, logger *zap.Logger) *Services {
	return &Services{
		Garment:     NewGarmentService(repos, db, logger),
		Composition: NewCompositionService(repos, db, logger),
		Supplier:    NewSupplierService(repos, db, logger),
		Catalog:     NewCatalogService(repos, rdb, logger),
	}
}

func newID() string {
	return uuid.New().String()[:32]
}

// lockGarment loads a garment inside tx under FOR UPDATE, serializing all
// concurrent mutations of the same aggregate. Invariant checks that follow
// therefore see the latest committed state, never a stale snapshot.
func lockGarment(tx *gorm.DB, id string) (*entity.Garment, error) {
	var garment entity.Garment
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&garment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("garment", id)
		}
		return nil, apperr.Store(err)
	}
	return &garment, nil
}

// wrapStore passes typed domain errors through untouched and classifies
// anything else (driver failures, commit errors) as STORE_UNAVAILABLE.
func wrapStore(err error) error {
	if err == nil {
		return nil
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	return apperr.Store(err)
}
