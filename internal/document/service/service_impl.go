package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/talleraustral/taller/internal/clock"
	"github.com/talleraustral/taller/internal/document/domain"
	"github.com/talleraustral/taller/internal/querycache"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const cacheDocumentList = "documents.list"

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
		log:   p.Log.Named("document.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
		cache: p.Cache,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateDocumentRequest) (domain.Document, error) {
	docType := strings.TrimSpace(req.DocType)
	switch docType {
	case domain.DocTypeFacturaA, domain.DocTypeFacturaB, domain.DocTypeFacturaC,
		domain.DocTypeRecibo, domain.DocTypePresupuesto:
	default:
		return domain.Document{}, domain.ErrInvalidDocType
	}

	clientID, err := snowflake.ParseString(strings.TrimSpace(req.ClientID))
	if err != nil || clientID == 0 {
		return domain.Document{}, domain.ErrInvalidClient
	}

	now := s.clock.Now()
	issueDate := now
	if req.IssueDate != nil {
		issueDate = req.IssueDate.UTC()
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = domain.StatusPendiente
	}

	// Recibos carry the collected amount untaxed; everything else gets IVA.
	tax := 0.0
	if docType != domain.DocTypeRecibo {
		tax = req.Subtotal * domain.TaxRate
	}

	doc := domain.Document{
		ID:        s.genID.Generate(),
		DocType:   docType,
		ClientID:  clientID,
		IssueDate: issueDate,
		DueDate:   req.DueDate,
		Subtotal:  req.Subtotal,
		Tax:       tax,
		Total:     req.Subtotal + tax,
		Status:    status,
		Items:     datatypes.NewJSONSlice(req.Items),
		Notes:     strings.TrimSpace(req.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if order := strings.TrimSpace(req.RepairOrderID); order != "" {
		orderID, err := snowflake.ParseString(order)
		if err != nil {
			return domain.Document{}, domain.ErrInvalidID
		}
		doc.RepairOrderID = &orderID
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := s.repo.NextNumber(ctx, tx, docType)
		if err != nil {
			return err
		}
		doc.InvoiceNumber = number
		return s.repo.Insert(ctx, tx, &doc)
	})
	if err != nil {
		return domain.Document{}, err
	}

	s.cache.Invalidate(cacheDocumentList)
	return doc, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Document, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return domain.Document{}, err
	}

	doc, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Document{}, err
	}
	if doc == nil {
		return domain.Document{}, domain.ErrNotFound
	}
	return *doc, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateDocumentRequest) (domain.Document, error) {
	parsed, err := s.parseID(req.ID)
	if err != nil {
		return domain.Document{}, err
	}

	doc, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Document{}, err
	}
	if doc == nil {
		return domain.Document{}, domain.ErrNotFound
	}

	// Status is a direct field write: there is no transition table.
	if req.Status != nil && strings.TrimSpace(*req.Status) != "" {
		doc.Status = strings.TrimSpace(*req.Status)
	}
	if req.DueDate != nil {
		due := req.DueDate.UTC()
		doc.DueDate = &due
	}
	if req.Notes != nil {
		doc.Notes = strings.TrimSpace(*req.Notes)
	}
	doc.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, doc); err != nil {
		return domain.Document{}, err
	}

	s.cache.Invalidate(cacheDocumentList)
	return *doc, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	parsed, err := s.parseID(id)
	if err != nil {
		return err
	}

	doc, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return err
	}
	if doc == nil {
		return domain.ErrNotFound
	}

	if err := s.repo.Delete(ctx, s.db, parsed); err != nil {
		return err
	}

	s.cache.Invalidate(cacheDocumentList)
	return nil
}

func (s *Service) List(ctx context.Context, req domain.ListDocumentRequest) ([]domain.Document, error) {
	filter := domain.ListDocumentFilter{
		DocType:   strings.TrimSpace(req.DocType),
		Status:    strings.TrimSpace(req.Status),
		ClientID:  strings.TrimSpace(req.ClientID),
		IssueFrom: req.IssueFrom,
		IssueTo:   req.IssueTo,
	}
	params := []string{filter.DocType, filter.Status, filter.ClientID, querycache.TimeParam(filter.IssueFrom), querycache.TimeParam(filter.IssueTo)}

	if cached, ok := s.cache.Get(cacheDocumentList, params...); ok {
		if docs, ok := cached.([]domain.Document); ok {
			return docs, nil
		}
	}

	items, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	docs := make([]domain.Document, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		docs = append(docs, *item)
	}

	s.cache.Set(cacheDocumentList, docs, params...)
	return docs, nil
}

func (s *Service) ConvertPresupuesto(ctx context.Context, req domain.ConvertPresupuestoRequest) (domain.Document, error) {
	parsed, err := s.parseID(req.ID)
	if err != nil {
		return domain.Document{}, err
	}

	targetType := strings.TrimSpace(req.TargetType)
	if targetType == "" {
		targetType = domain.DocTypeFacturaB
	}
	switch targetType {
	case domain.DocTypeFacturaA, domain.DocTypeFacturaB, domain.DocTypeFacturaC:
	default:
		return domain.Document{}, domain.ErrInvalidDocType
	}

	var factura domain.Document
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		source, err := s.repo.FindByID(ctx, tx, parsed)
		if err != nil {
			return err
		}
		if source == nil {
			return domain.ErrNotFound
		}
		if source.DocType != domain.DocTypePresupuesto {
			return domain.ErrNotPresupuesto
		}
		if source.Status == domain.StatusFacturado {
			return domain.ErrAlreadyConverted
		}

		now := s.clock.Now()
		factura = domain.Document{
			ID:            s.genID.Generate(),
			DocType:       targetType,
			ClientID:      source.ClientID,
			RepairOrderID: source.RepairOrderID,
			IssueDate:     now,
			Subtotal:      source.Subtotal,
			Tax:           source.Tax,
			Total:         source.Total,
			Status:        domain.StatusPendiente,
			Items:         source.Items,
			Notes:         source.Notes,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		number, err := s.repo.NextNumber(ctx, tx, targetType)
		if err != nil {
			return err
		}
		factura.InvoiceNumber = number

		if err := s.repo.Insert(ctx, tx, &factura); err != nil {
			return err
		}

		source.Status = domain.StatusFacturado
		source.UpdatedAt = now
		return s.repo.Update(ctx, tx, source)
	})
	if err != nil {
		return domain.Document{}, err
	}

	s.cache.Invalidate(cacheDocumentList)
	return factura, nil
}

func (s *Service) GenerateAFIP(ctx context.Context, id string) (domain.Document, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return domain.Document{}, err
	}

	doc, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Document{}, err
	}
	if doc == nil {
		return domain.Document{}, domain.ErrNotFound
	}
	if !doc.IsFactura() {
		return domain.Document{}, domain.ErrNotFactura
	}
	if doc.AFIPStatus == domain.AFIPStatusAprobado {
		return domain.Document{}, domain.ErrAFIPAlreadyIssued
	}

	// Simulated authorization: real CAE issuance would call the AFIP
	// web service here.
	now := s.clock.Now()
	expiration := now.AddDate(0, 0, 30)
	doc.AFIPStatus = domain.AFIPStatusAprobado
	doc.AFIPCAE = fmt.Sprintf("%014d", int64(doc.ID)%100000000000000)
	doc.AFIPExpiration = &expiration
	doc.Status = domain.StatusEmitida
	doc.UpdatedAt = now

	if err := s.repo.Update(ctx, s.db, doc); err != nil {
		return domain.Document{}, err
	}

	s.cache.Invalidate(cacheDocumentList)
	return *doc, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
