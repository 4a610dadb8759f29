package domain

import (
	"context"
	"errors"
	"time"
)

type CreateDocumentRequest struct {
	DocType       string
	ClientID      string
	RepairOrderID string
	IssueDate     *time.Time
	DueDate       *time.Time
	Subtotal      float64
	Items         []LineItem
	Notes         string
	Status        string
}

type UpdateDocumentRequest struct {
	ID      string
	Status  *string
	DueDate *time.Time
	Notes   *string
}

type ListDocumentRequest struct {
	DocType   string
	Status    string
	ClientID  string
	IssueFrom *time.Time
	IssueTo   *time.Time
}

type ListDocumentFilter struct {
	DocType   string
	Status    string
	ClientID  string
	IssueFrom *time.Time
	IssueTo   *time.Time
}

type ConvertPresupuestoRequest struct {
	ID         string
	TargetType string // defaults to factura_b
}

type Service interface {
	Create(ctx context.Context, req CreateDocumentRequest) (Document, error)
	GetByID(ctx context.Context, id string) (Document, error)
	Update(ctx context.Context, req UpdateDocumentRequest) (Document, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, req ListDocumentRequest) ([]Document, error)
	// ConvertPresupuesto creates the factura and marks the source
	// presupuesto Facturado inside one transaction.
	ConvertPresupuesto(ctx context.Context, req ConvertPresupuestoRequest) (Document, error)
	// GenerateAFIP simulates the tax-authority call: deterministic CAE,
	// 30-day expiration, status aprobado.
	GenerateAFIP(ctx context.Context, id string) (Document, error)
}

var (
	ErrInvalidDocType    = errors.New("invalid_doc_type")
	ErrInvalidClient     = errors.New("invalid_client")
	ErrInvalidID         = errors.New("invalid_id")
	ErrNotFound          = errors.New("not_found")
	ErrNotPresupuesto    = errors.New("not_presupuesto")
	ErrAlreadyConverted  = errors.New("already_converted")
	ErrNotFactura        = errors.New("not_factura")
	ErrAFIPAlreadyIssued = errors.New("afip_already_issued")
)
