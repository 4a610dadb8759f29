package domain

import (
	"context"
	"errors"
)

type CreateClientRequest struct {
	Name     string
	Email    string
	Phone    string
	Address  string
	Document string
	Notes    string
}

type UpdateClientRequest struct {
	ID       string
	Name     *string
	Email    *string
	Phone    *string
	Address  *string
	Document *string
	Notes    *string
}

type ListClientRequest struct {
	Search string
}

type ListClientFilter struct {
	Search string
}

type Service interface {
	Create(ctx context.Context, req CreateClientRequest) (Client, error)
	GetByID(ctx context.Context, id string) (Client, error)
	Update(ctx context.Context, req UpdateClientRequest) (Client, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, req ListClientRequest) ([]Client, error)
	GetBalance(ctx context.Context, id string) (Balance, error)
	WhatsAppLink(ctx context.Context, id string, message string) (string, error)
}

var (
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidID    = errors.New("invalid_id")
	ErrMissingPhone = errors.New("missing_phone")
	ErrNotFound     = errors.New("not_found")
)
