package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/stitchline/atelier/internal/atelier/apperr"
	"github.com/stitchline/atelier/internal/atelier/entity"
	"github.com/stitchline/atelier/internal/atelier/repository"
)

const catalogCacheTTL = 5 * time.Minute

// CatalogService serves the material and attribute reference catalogs.
// List reads go through a redis edge cache when one is configured; the
// cache sits strictly in front of the read endpoints and is dropped on
// every catalog write, so the invariant core always reads committed state
// directly.
type CatalogService struct {
	materialRepo  *repository.MaterialRepository
	attributeRepo *repository.AttributeRepository
	rdb           *redis.Client
	logger        *zap.Logger
}

func NewCatalogService(repos *repository.Repositories, rdb *redis.Client, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		materialRepo:  repos.Material,
		attributeRepo: repos.Attribute,
		rdb:           rdb,
		logger:        logger,
	}
}

type MaterialReq struct {
	Name string `json:"name" binding:"required"`
}

type AttributeReq struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category" binding:"required"`
}

type IncompatibilityReq struct {
	AttributeID1 string `json:"attribute_id_1" binding:"required"`
	AttributeID2 string `json:"attribute_id_2" binding:"required"`
}

func (s *CatalogService) ListMaterials(ctx context.Context) ([]entity.Material, error) {
	var cached []entity.Material
	if s.cacheGet(ctx, "catalog:materials", &cached) {
		return cached, nil
	}
	items, err := s.materialRepo.FindAll(ctx)
	if err != nil {
		return nil, apperr.Store(err)
	}
	s.cacheSet(ctx, "catalog:materials", items)
	return items, nil
}

func (s *CatalogService) CreateMaterial(ctx context.Context, req MaterialReq) (*entity.Material, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.NewValidation("name must not be empty")
	}
	material := &entity.Material{ID: newID(), Name: name}
	if err := s.materialRepo.Create(ctx, material); err != nil {
		if isPGViolation(err, pgUniqueViolation) {
			return nil, apperr.NewValidation(fmt.Sprintf("material %q already exists", name))
		}
		return nil, apperr.Store(err)
	}
	s.cacheDrop(ctx, "catalog:materials")
	return material, nil
}

func (s *CatalogService) ListAttributes(ctx context.Context, category string) ([]entity.Attribute, error) {
	key := "catalog:attributes:" + category
	var cached []entity.Attribute
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}
	items, err := s.attributeRepo.FindAll(ctx, category)
	if err != nil {
		return nil, apperr.Store(err)
	}
	s.cacheSet(ctx, key, items)
	return items, nil
}

func (s *CatalogService) CreateAttribute(ctx context.Context, req AttributeReq) (*entity.Attribute, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.NewValidation("name must not be empty")
	}
	attribute := &entity.Attribute{ID: newID(), Name: name, Category: req.Category}
	if err := s.attributeRepo.Create(ctx, attribute); err != nil {
		if isPGViolation(err, pgUniqueViolation) {
			return nil, apperr.NewValidation(fmt.Sprintf("attribute %q already exists in category %s", name, req.Category))
		}
		return nil, apperr.Store(err)
	}
	s.dropAttributeCaches(ctx, req.Category)
	return attribute, nil
}

func (s *CatalogService) ListIncompatibilities(ctx context.Context) ([]entity.AttributeIncompatibility, error) {
	rules, err := s.attributeRepo.FindIncompatibilities(ctx)
	if err != nil {
		return nil, apperr.Store(err)
	}
	return rules, nil
}

// CreateIncompatibility stores the rule as an ordered pair so each pair
// exists at most once regardless of argument order.
func (s *CatalogService) CreateIncompatibility(ctx context.Context, req IncompatibilityReq) (*entity.AttributeIncompatibility, error) {
	if req.AttributeID1 == req.AttributeID2 {
		return nil, apperr.NewValidation("an attribute cannot be incompatible with itself")
	}
	for _, id := range []string{req.AttributeID1, req.AttributeID2} {
		if _, err := s.attributeRepo.FindByID(ctx, id); err != nil {
			if err == repository.ErrNotFound {
				return nil, apperr.NewUnknownReference("attribute", id)
			}
			return nil, apperr.Store(err)
		}
	}

	low, high := req.AttributeID1, req.AttributeID2
	if high < low {
		low, high = high, low
	}
	rule := &entity.AttributeIncompatibility{ID: newID(), AttributeID1: low, AttributeID2: high}
	if err := s.attributeRepo.CreateIncompatibility(ctx, rule); err != nil {
		if isPGViolation(err, pgUniqueViolation) {
			return nil, apperr.NewValidation("incompatibility rule for this attribute pair already exists")
		}
		return nil, apperr.Store(err)
	}
	return rule, nil
}

// --- cache helpers; all best-effort, the catalog works without redis ---

func (s *CatalogService) cacheGet(ctx context.Context, key string, out interface{}) bool {
	if s.rdb == nil {
		return false
	}
	payload, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(payload, out) == nil
}

func (s *CatalogService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.rdb == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, payload, catalogCacheTTL).Err(); err != nil {
		s.logger.Warn("catalog cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *CatalogService) cacheDrop(ctx context.Context, keys ...string) {
	if s.rdb == nil || len(keys) == 0 {
		return
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}

func (s *CatalogService) dropAttributeCaches(ctx context.Context, category string) {
	s.cacheDrop(ctx, "catalog:attributes:", "catalog:attributes:"+category)
}
