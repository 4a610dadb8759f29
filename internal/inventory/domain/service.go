package domain

import (
	"context"
	"errors"
)

const (
	AdjustAdd      = "add"
	AdjustSubtract = "subtract"
)

type CreateItemRequest struct {
	Name         string
	SKU          string
	Category     string
	Quantity     int
	MinimumStock *int
	CostPrice    float64
	SalePrice    float64
	ProviderID   string
}

type UpdateItemRequest struct {
	ID           string
	Name         *string
	SKU          *string
	Category     *string
	MinimumStock *int
	CostPrice    *float64
	SalePrice    *float64
	ProviderID   *string
}

type ListItemRequest struct {
	Category string
	LowStock bool
	Search   string
}

type ListItemFilter struct {
	Category string
	Search   string
}

type AdjustStockRequest struct {
	ID        string
	Quantity  int
	Operation string // add | subtract
}

type Service interface {
	Create(ctx context.Context, req CreateItemRequest) (Item, error)
	GetByID(ctx context.Context, id string) (Item, error)
	Update(ctx context.Context, req UpdateItemRequest) (Item, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, req ListItemRequest) ([]Item, error)
	// AdjustStock applies the delta atomically in one transaction. The
	// result may go negative: the store does not clamp, the form layer
	// only warns.
	AdjustStock(ctx context.Context, req AdjustStockRequest) (Item, error)
}

var (
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidQuantity  = errors.New("invalid_quantity")
	ErrInvalidOperation = errors.New("invalid_operation")
	ErrDuplicateSKU     = errors.New("duplicate_sku")
	ErrNotFound         = errors.New("not_found")
)
