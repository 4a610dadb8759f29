package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/talleraustral/taller/internal/clock"
	"github.com/talleraustral/taller/internal/querycache"
	"github.com/talleraustral/taller/internal/ticket/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const cacheTicketList = "tickets.list"

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
		log:   p.Log.Named("ticket.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
		cache: p.Cache,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateTicketRequest) (domain.Ticket, error) {
	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		return domain.Ticket{}, domain.ErrInvalidSubject
	}

	priority := strings.TrimSpace(req.Priority)
	if priority == "" {
		priority = domain.PriorityMedia
	}

	now := s.clock.Now()
	ticket := domain.Ticket{
		ID:        s.genID.Generate(),
		Subject:   subject,
		Detail:    strings.TrimSpace(req.Detail),
		Status:    domain.StatusAbierto,
		Priority:  priority,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if client := strings.TrimSpace(req.ClientID); client != "" {
		clientID, err := snowflake.ParseString(client)
		if err != nil {
			return domain.Ticket{}, domain.ErrInvalidID
		}
		ticket.ClientID = &clientID
	}

	if err := s.repo.Insert(ctx, s.db, &ticket); err != nil {
		return domain.Ticket{}, err
	}

	s.cache.Invalidate(cacheTicketList)
	return ticket, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Ticket, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return domain.Ticket{}, err
	}

	ticket, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Ticket{}, err
	}
	if ticket == nil {
		return domain.Ticket{}, domain.ErrNotFound
	}
	return *ticket, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateTicketRequest) (domain.Ticket, error) {
	parsed, err := s.parseID(req.ID)
	if err != nil {
		return domain.Ticket{}, err
	}

	ticket, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Ticket{}, err
	}
	if ticket == nil {
		return domain.Ticket{}, domain.ErrNotFound
	}

	if req.Subject != nil && strings.TrimSpace(*req.Subject) != "" {
		ticket.Subject = strings.TrimSpace(*req.Subject)
	}
	if req.Detail != nil {
		ticket.Detail = strings.TrimSpace(*req.Detail)
	}
	if req.Priority != nil && strings.TrimSpace(*req.Priority) != "" {
		ticket.Priority = strings.TrimSpace(*req.Priority)
	}
	if req.Status != nil && strings.TrimSpace(*req.Status) != "" {
		status := strings.TrimSpace(*req.Status)
		wasResolved := ticket.IsResolved()
		ticket.Status = status
		// resolved_at stamps on the first transition into a terminal
		// status and stays put afterwards.
		if ticket.IsResolved() && !wasResolved && ticket.ResolvedAt == nil {
			now := s.clock.Now()
			ticket.ResolvedAt = &now
		}
	}
	ticket.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, ticket); err != nil {
		return domain.Ticket{}, err
	}

	s.cache.Invalidate(cacheTicketList)
	return *ticket, nil
}

func (s *Service) List(ctx context.Context, req domain.ListTicketRequest) ([]domain.Ticket, error) {
	filter := domain.ListTicketFilter{
		Status:   strings.TrimSpace(req.Status),
		Priority: strings.TrimSpace(req.Priority),
		From:     req.From,
		To:       req.To,
	}
	params := []string{filter.Status, filter.Priority, querycache.TimeParam(filter.From), querycache.TimeParam(filter.To)}

	if cached, ok := s.cache.Get(cacheTicketList, params...); ok {
		if tickets, ok := cached.([]domain.Ticket); ok {
			return tickets, nil
		}
	}

	items, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	tickets := make([]domain.Ticket, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		tickets = append(tickets, *item)
	}

	s.cache.Set(cacheTicketList, tickets, params...)
	return tickets, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
