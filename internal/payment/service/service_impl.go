package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/talleraustral/taller/internal/clock"
	"github.com/talleraustral/taller/internal/payment/domain"
	"github.com/talleraustral/taller/internal/querycache"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const cachePaymentList = "payments.list"

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
		log:   p.Log.Named("payment.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
		cache: p.Cache,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreatePaymentRequest) (domain.Payment, error) {
	clientID, err := snowflake.ParseString(strings.TrimSpace(req.ClientID))
	if err != nil || clientID == 0 {
		return domain.Payment{}, domain.ErrInvalidClient
	}
	if req.Amount <= 0 {
		return domain.Payment{}, domain.ErrInvalidAmount
	}

	now := s.clock.Now()
	paymentDate := now
	if req.PaymentDate != nil {
		paymentDate = req.PaymentDate.UTC()
	}

	payment := domain.Payment{
		ID:          s.genID.Generate(),
		ClientID:    clientID,
		Amount:      req.Amount,
		Method:      strings.TrimSpace(req.Method),
		PaymentDate: paymentDate,
		Notes:       strings.TrimSpace(req.Notes),
		CreatedAt:   now,
	}

	if doc := strings.TrimSpace(req.DocumentID); doc != "" {
		docID, err := snowflake.ParseString(doc)
		if err != nil {
			return domain.Payment{}, domain.ErrInvalidID
		}
		payment.DocumentID = &docID
	}

	if err := s.repo.Insert(ctx, s.db, &payment); err != nil {
		return domain.Payment{}, err
	}

	s.cache.Invalidate(cachePaymentList)
	return payment, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Payment, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return domain.Payment{}, err
	}

	payment, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Payment{}, err
	}
	if payment == nil {
		return domain.Payment{}, domain.ErrNotFound
	}
	return *payment, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	parsed, err := s.parseID(id)
	if err != nil {
		return err
	}

	payment, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return err
	}
	if payment == nil {
		return domain.ErrNotFound
	}

	if err := s.repo.Delete(ctx, s.db, parsed); err != nil {
		return err
	}

	s.cache.Invalidate(cachePaymentList)
	return nil
}

func (s *Service) List(ctx context.Context, req domain.ListPaymentRequest) ([]domain.Payment, error) {
	filter := domain.ListPaymentFilter{
		ClientID: strings.TrimSpace(req.ClientID),
		From:     req.From,
		To:       req.To,
	}
	params := []string{filter.ClientID, querycache.TimeParam(filter.From), querycache.TimeParam(filter.To)}

	if cached, ok := s.cache.Get(cachePaymentList, params...); ok {
		if payments, ok := cached.([]domain.Payment); ok {
			return payments, nil
		}
	}

	items, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	payments := make([]domain.Payment, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		payments = append(payments, *item)
	}

	s.cache.Set(cachePaymentList, payments, params...)
	return payments, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
