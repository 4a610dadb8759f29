package domain

import (
	"context"
	"errors"
)

type CreateProviderRequest struct {
	Type         string
	Name         string
	BusinessName string
	ContactName  string
	CUIT         string
	Email        string
	Phone        string
	Address      string
	Notes        string
}

type UpdateProviderRequest struct {
	ID           string
	Type         *string
	Name         *string
	BusinessName *string
	ContactName  *string
	CUIT         *string
	Email        *string
	Phone        *string
	Address      *string
	Notes        *string
}

type ListProviderRequest struct {
	Type string
}

type ListProviderFilter struct {
	Type string
}

type Service interface {
	Create(ctx context.Context, req CreateProviderRequest) (Provider, error)
	GetByID(ctx context.Context, id string) (Provider, error)
	Update(ctx context.Context, req UpdateProviderRequest) (Provider, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, req ListProviderRequest) ([]Provider, error)
	// Search mirrors the search_providers(search_query) stored function:
	// matches name, business name, contact name, cuit and email.
	Search(ctx context.Context, query string) ([]Provider, error)
}

var (
	ErrInvalidType         = errors.New("invalid_type")
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidID           = errors.New("invalid_id")
	ErrMissingBusinessName = errors.New("missing_business_name")
	ErrMissingContactName  = errors.New("missing_contact_name")
	ErrNotFound            = errors.New("not_found")
)
