package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/talleraustral/taller/internal/clock"
	"github.com/talleraustral/taller/internal/querycache"
	"github.com/talleraustral/taller/internal/repairorder/domain"
	"github.com/talleraustral/taller/internal/sysconfig"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const cacheOrderList = "repair_orders.list"

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Repo     domain.Repository
	Cache    *querycache.Store
	Settings sysconfig.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     domain.Repository
	cache    *querycache.Store
	settings sysconfig.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("repairorder.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		cache:    p.Cache,
		settings: p.Settings,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRepairOrderRequest) (domain.RepairOrder, error) {
	clientID, err := snowflake.ParseString(strings.TrimSpace(req.ClientID))
	if err != nil || clientID == 0 {
		return domain.RepairOrder{}, domain.ErrInvalidClient
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = domain.StatusIngresado
	}

	now := s.clock.Now()
	entryDate := now
	if req.EntryDate != nil {
		entryDate = req.EntryDate.UTC()
	}

	number, err := s.repo.NextOrderNumber(ctx, s.db)
	if err != nil {
		return domain.RepairOrder{}, err
	}

	order := domain.RepairOrder{
		ID:                 s.genID.Generate(),
		OrderNumber:        number,
		ClientID:           clientID,
		EquipmentType:      strings.TrimSpace(req.EquipmentType),
		EquipmentBrand:     strings.TrimSpace(req.EquipmentBrand),
		EquipmentModel:     strings.TrimSpace(req.EquipmentModel),
		ReportedIssue:      strings.TrimSpace(req.ReportedIssue),
		Status:             status,
		AssignedTechnician: strings.TrimSpace(req.AssignedTechnician),
		PartsCost:          req.PartsCost,
		LaborCost:          req.LaborCost,
		TotalCost:          req.TotalCost,
		EntryDate:          entryDate,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if tech := strings.TrimSpace(req.AssignedTechnicianID); tech != "" {
		techID, err := snowflake.ParseString(tech)
		if err != nil {
			return domain.RepairOrder{}, domain.ErrInvalidID
		}
		order.AssignedTechnicianID = &techID
	}

	if err := s.repo.Insert(ctx, s.db, &order); err != nil {
		return domain.RepairOrder{}, err
	}

	s.cache.Invalidate(cacheOrderList)
	return order, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.RepairOrder, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return domain.RepairOrder{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.RepairOrder{}, err
	}
	if item == nil {
		return domain.RepairOrder{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRepairOrderRequest) (domain.RepairOrder, error) {
	parsed, err := s.parseID(req.ID)
	if err != nil {
		return domain.RepairOrder{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.RepairOrder{}, err
	}
	if item == nil {
		return domain.RepairOrder{}, domain.ErrNotFound
	}

	if req.EquipmentType != nil {
		item.EquipmentType = strings.TrimSpace(*req.EquipmentType)
	}
	if req.EquipmentBrand != nil {
		item.EquipmentBrand = strings.TrimSpace(*req.EquipmentBrand)
	}
	if req.EquipmentModel != nil {
		item.EquipmentModel = strings.TrimSpace(*req.EquipmentModel)
	}
	if req.ReportedIssue != nil {
		item.ReportedIssue = strings.TrimSpace(*req.ReportedIssue)
	}
	if req.Status != nil && strings.TrimSpace(*req.Status) != "" {
		item.Status = strings.TrimSpace(*req.Status)
	}
	if req.AssignedTechnician != nil {
		item.AssignedTechnician = strings.TrimSpace(*req.AssignedTechnician)
	}
	if req.AssignedTechnicianID != nil {
		if tech := strings.TrimSpace(*req.AssignedTechnicianID); tech != "" {
			techID, err := snowflake.ParseString(tech)
			if err != nil {
				return domain.RepairOrder{}, domain.ErrInvalidID
			}
			item.AssignedTechnicianID = &techID
		} else {
			item.AssignedTechnicianID = nil
		}
	}
	if req.PartsCost != nil {
		item.PartsCost = *req.PartsCost
	}
	if req.LaborCost != nil {
		item.LaborCost = *req.LaborCost
	}
	if req.TotalCost != nil {
		item.TotalCost = *req.TotalCost
	}
	if req.CompletionDate != nil {
		completion := req.CompletionDate.UTC()
		if completion.Before(item.EntryDate) {
			return domain.RepairOrder{}, domain.ErrInvalidDates
		}
		item.CompletionDate = &completion
	}
	item.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return domain.RepairOrder{}, err
	}

	s.cache.Invalidate(cacheOrderList)
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

	s.cache.Invalidate(cacheOrderList)
	return nil
}

func (s *Service) List(ctx context.Context, req domain.ListRepairOrderRequest) ([]domain.RepairOrder, error) {
	filter := domain.ListRepairOrderFilter{
		ClientID:  strings.TrimSpace(req.ClientID),
		Status:    strings.TrimSpace(req.Status),
		EntryFrom: req.EntryFrom,
		EntryTo:   req.EntryTo,
	}
	params := []string{filter.ClientID, filter.Status, querycache.TimeParam(filter.EntryFrom), querycache.TimeParam(filter.EntryTo)}

	if cached, ok := s.cache.Get(cacheOrderList, params...); ok {
		if orders, ok := cached.([]domain.RepairOrder); ok {
			return orders, nil
		}
	}

	items, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	orders := make([]domain.RepairOrder, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		orders = append(orders, *item)
	}

	s.cache.Set(cacheOrderList, orders, params...)
	return orders, nil
}

func (s *Service) ListOverdue(ctx context.Context, thresholdDays int) ([]domain.OverdueOrder, error) {
	if thresholdDays <= 0 {
		thresholdDays = s.settings.OverdueThresholdDays(ctx)
	}

	now := s.clock.Now()
	cutoff := now.AddDate(0, 0, -thresholdDays)

	items, err := s.repo.ListOverdue(ctx, s.db, cutoff)
	if err != nil {
		return nil, err
	}

	overdue := make([]domain.OverdueOrder, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		overdue = append(overdue, domain.OverdueOrder{
			RepairOrder: *item,
			DaysOpen:    int(now.Sub(item.EntryDate).Hours() / 24),
		})
	}
	return overdue, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
