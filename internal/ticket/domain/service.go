package domain

import (
	"context"
	"errors"
	"time"
)

type CreateTicketRequest struct {
	Subject  string
	Detail   string
	Priority string
	ClientID string
}

type UpdateTicketRequest struct {
	ID       string
	Subject  *string
	Detail   *string
	Status   *string
	Priority *string
}

type ListTicketRequest struct {
	Status   string
	Priority string
	From     *time.Time
	To       *time.Time
}

type ListTicketFilter struct {
	Status   string
	Priority string
	From     *time.Time
	To       *time.Time
}

type Service interface {
	Create(ctx context.Context, req CreateTicketRequest) (Ticket, error)
	GetByID(ctx context.Context, id string) (Ticket, error)
	Update(ctx context.Context, req UpdateTicketRequest) (Ticket, error)
	List(ctx context.Context, req ListTicketRequest) ([]Ticket, error)
}

var (
	ErrInvalidSubject = errors.New("invalid_subject")
	ErrInvalidID      = errors.New("invalid_id")
	ErrNotFound       = errors.New("not_found")
)
