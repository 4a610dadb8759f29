package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/talleraustral/taller/internal/clock"
	"github.com/talleraustral/taller/internal/inventory/domain"
	"github.com/talleraustral/taller/internal/querycache"
	"github.com/talleraustral/taller/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const cacheItemList = "inventory.list"

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
	Cache *querycache.Store
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
	cache *querycache.Store
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("inventory.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
		cache: p.Cache,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateItemRequest) (domain.Item, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Item{}, domain.ErrInvalidName
	}

	now := s.clock.Now()
	item := domain.Item{
		ID:           s.genID.Generate(),
		Name:         name,
		Category:     strings.TrimSpace(req.Category),
		Quantity:     req.Quantity,
		MinimumStock: req.MinimumStock,
		CostPrice:    req.CostPrice,
		SalePrice:    req.SalePrice,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if sku := strings.TrimSpace(req.SKU); sku != "" {
		item.SKU = &sku
	}

	if provider := strings.TrimSpace(req.ProviderID); provider != "" {
		providerID, err := snowflake.ParseString(provider)
		if err != nil {
			return domain.Item{}, domain.ErrInvalidID
		}
		item.ProviderID = &providerID
	}

	if err := s.repo.Insert(ctx, s.db, &item); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Item{}, domain.ErrDuplicateSKU
		}
		return domain.Item{}, err
	}

	s.cache.Invalidate(cacheItemList)
	return item, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Item, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return domain.Item{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Item{}, err
	}
	if item == nil {
		return domain.Item{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateItemRequest) (domain.Item, error) {
	parsed, err := s.parseID(req.ID)
	if err != nil {
		return domain.Item{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Item{}, err
	}
	if item == nil {
		return domain.Item{}, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Item{}, domain.ErrInvalidName
		}
		item.Name = name
	}
	if req.SKU != nil {
		if sku := strings.TrimSpace(*req.SKU); sku != "" {
			item.SKU = &sku
		} else {
			item.SKU = nil
		}
	}
	if req.Category != nil {
		item.Category = strings.TrimSpace(*req.Category)
	}
	if req.MinimumStock != nil {
		item.MinimumStock = req.MinimumStock
	}
	if req.CostPrice != nil {
		item.CostPrice = *req.CostPrice
	}
	if req.SalePrice != nil {
		item.SalePrice = *req.SalePrice
	}
	if req.ProviderID != nil {
		if provider := strings.TrimSpace(*req.ProviderID); provider != "" {
			providerID, err := snowflake.ParseString(provider)
			if err != nil {
				return domain.Item{}, domain.ErrInvalidID
			}
			item.ProviderID = &providerID
		} else {
			item.ProviderID = nil
		}
	}
	item.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Item{}, domain.ErrDuplicateSKU
		}
		return domain.Item{}, err
	}

	s.cache.Invalidate(cacheItemList)
	return *item, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	parsed, err := s.parseID(id)
	if err != nil {
		return err
	}

	item, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	if err := s.repo.Delete(ctx, s.db, parsed); err != nil {
		return err
	}

	s.cache.Invalidate(cacheItemList)
	return nil
}

func (s *Service) List(ctx context.Context, req domain.ListItemRequest) ([]domain.Item, error) {
	filter := domain.ListItemFilter{
		Category: strings.TrimSpace(req.Category),
		Search:   strings.TrimSpace(req.Search),
	}
	params := []string{filter.Category, filter.Search, strconv.FormatBool(req.LowStock)}

	if cached, ok := s.cache.Get(cacheItemList, params...); ok {
		if out, ok := cached.([]domain.Item); ok {
			return out, nil
		}
	}

	items, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		if req.LowStock && !item.IsLowStock() {
			continue
		}
		out = append(out, *item)
	}

	s.cache.Set(cacheItemList, out, params...)
	return out, nil
}

func (s *Service) AdjustStock(ctx context.Context, req domain.AdjustStockRequest) (domain.Item, error) {
	parsed, err := s.parseID(req.ID)
	if err != nil {
		return domain.Item{}, err
	}
	if req.Quantity <= 0 {
		return domain.Item{}, domain.ErrInvalidQuantity
	}

	var delta int
	switch req.Operation {
	case domain.AdjustAdd:
		delta = req.Quantity
	case domain.AdjustSubtract:
		delta = -req.Quantity
	default:
		return domain.Item{}, domain.ErrInvalidOperation
	}

	var updated domain.Item
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		affected, err := s.repo.ApplyDelta(ctx, tx, parsed, delta)
		if err != nil {
			return err
		}
		if affected == 0 {
			return domain.ErrNotFound
		}

		item, err := s.repo.FindByID(ctx, tx, parsed)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		updated = *item
		return nil
	})
	if err != nil {
		return domain.Item{}, err
	}

	if updated.IsLowStock() {
		s.log.Warn("stock at or below minimum",
			zap.String("item_id", updated.ID.String()),
			zap.String("name", updated.Name),
			zap.Int("quantity", updated.Quantity))
	}

	s.cache.Invalidate(cacheItemList)
	return updated, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
