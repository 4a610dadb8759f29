package domain

import (
	"context"
	"errors"
	"time"
)

type CreatePaymentRequest struct {
	ClientID    string
	DocumentID  string
	Amount      float64
	Method      string
	PaymentDate *time.Time
	Notes       string
}

type ListPaymentRequest struct {
	ClientID string
	From     *time.Time
	To       *time.Time
}

type ListPaymentFilter struct {
	ClientID string
	From     *time.Time
	To       *time.Time
}

type Service interface {
	Create(ctx context.Context, req CreatePaymentRequest) (Payment, error)
	GetByID(ctx context.Context, id string) (Payment, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, req ListPaymentRequest) ([]Payment, error)
}

var (
	ErrInvalidClient = errors.New("invalid_client")
	ErrInvalidAmount = errors.New("invalid_amount")
	ErrInvalidID     = errors.New("invalid_id")
	ErrNotFound      = errors.New("not_found")
)
