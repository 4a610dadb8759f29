package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/talleraustral/taller/internal/provider/domain"
	"github.com/talleraustral/taller/internal/querycache"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const cacheProviderList = "providers.list"

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
	Cache *querycache.Store
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
	cache *querycache.Store
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("provider.service"),
		genID: p.GenID,
		repo:  p.Repo,
		cache: p.Cache,
	}
}

// validate enforces the type discriminator: company providers must carry
// business and contact names, personas only need the display name.
func validate(providerType, name, businessName, contactName string) error {
	switch providerType {
	case domain.TypePersona:
	case domain.TypeCompany:
		if businessName == "" {
			return domain.ErrMissingBusinessName
		}
		if contactName == "" {
			return domain.ErrMissingContactName
		}
	default:
		return domain.ErrInvalidType
	}
	if name == "" {
		return domain.ErrInvalidName
	}
	return nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateProviderRequest) (domain.Provider, error) {
	providerType := strings.TrimSpace(req.Type)
	name := strings.TrimSpace(req.Name)
	businessName := strings.TrimSpace(req.BusinessName)
	contactName := strings.TrimSpace(req.ContactName)

	if err := validate(providerType, name, businessName, contactName); err != nil {
		return domain.Provider{}, err
	}

	now := time.Now().UTC()
	provider := domain.Provider{
		ID:           s.genID.Generate(),
		Type:         providerType,
		Name:         name,
		BusinessName: businessName,
		ContactName:  contactName,
		CUIT:         strings.TrimSpace(req.CUIT),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		Address:      strings.TrimSpace(req.Address),
		Notes:        strings.TrimSpace(req.Notes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, &provider); err != nil {
		return domain.Provider{}, err
	}

	s.cache.Invalidate(cacheProviderList)
	return provider, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Provider, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return domain.Provider{}, err
	}

	provider, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Provider{}, err
	}
	if provider == nil {
		return domain.Provider{}, domain.ErrNotFound
	}
	return *provider, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateProviderRequest) (domain.Provider, error) {
	parsed, err := s.parseID(req.ID)
	if err != nil {
		return domain.Provider{}, err
	}

	provider, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Provider{}, err
	}
	if provider == nil {
		return domain.Provider{}, domain.ErrNotFound
	}

	if req.Type != nil {
		provider.Type = strings.TrimSpace(*req.Type)
	}
	if req.Name != nil {
		provider.Name = strings.TrimSpace(*req.Name)
	}
	if req.BusinessName != nil {
		provider.BusinessName = strings.TrimSpace(*req.BusinessName)
	}
	if req.ContactName != nil {
		provider.ContactName = strings.TrimSpace(*req.ContactName)
	}
	if req.CUIT != nil {
		provider.CUIT = strings.TrimSpace(*req.CUIT)
	}
	if req.Email != nil {
		provider.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		provider.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		provider.Address = strings.TrimSpace(*req.Address)
	}
	if req.Notes != nil {
		provider.Notes = strings.TrimSpace(*req.Notes)
	}

	if err := validate(provider.Type, provider.Name, provider.BusinessName, provider.ContactName); err != nil {
		return domain.Provider{}, err
	}
	provider.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, provider); err != nil {
		return domain.Provider{}, err
	}

	s.cache.Invalidate(cacheProviderList)
	return *provider, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	parsed, err := s.parseID(id)
	if err != nil {
		return err
	}

	provider, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return err
	}
	if provider == nil {
		return domain.ErrNotFound
	}

	if err := s.repo.Delete(ctx, s.db, parsed); err != nil {
		return err
	}

	s.cache.Invalidate(cacheProviderList)
	return nil
}

func (s *Service) List(ctx context.Context, req domain.ListProviderRequest) ([]domain.Provider, error) {
	providerType := strings.TrimSpace(req.Type)

	if cached, ok := s.cache.Get(cacheProviderList, providerType); ok {
		if providers, ok := cached.([]domain.Provider); ok {
			return providers, nil
		}
	}

	items, err := s.repo.List(ctx, s.db, domain.ListProviderFilter{Type: providerType})
	if err != nil {
		return nil, err
	}

	providers := make([]domain.Provider, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		providers = append(providers, *item)
	}

	s.cache.Set(cacheProviderList, providers, providerType)
	return providers, nil
}

func (s *Service) Search(ctx context.Context, query string) ([]domain.Provider, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.List(ctx, domain.ListProviderRequest{})
	}

	items, err := s.repo.Search(ctx, s.db, query)
	if err != nil {
		return nil, err
	}

	providers := make([]domain.Provider, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		providers = append(providers, *item)
	}
	return providers, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
