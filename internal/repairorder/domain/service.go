package domain

import (
	"context"
	"errors"
	"time"
)

type CreateRepairOrderRequest struct {
	ClientID             string
	EquipmentType        string
	EquipmentBrand       string
	EquipmentModel       string
	ReportedIssue        string
	Status               string
	AssignedTechnician   string
	AssignedTechnicianID string
	PartsCost            float64
	LaborCost            float64
	TotalCost            float64
	EntryDate            *time.Time
}

type UpdateRepairOrderRequest struct {
	ID                   string
	EquipmentType        *string
	EquipmentBrand       *string
	EquipmentModel       *string
	ReportedIssue        *string
	Status               *string
	AssignedTechnician   *string
	AssignedTechnicianID *string
	PartsCost            *float64
	LaborCost            *float64
	TotalCost            *float64
	CompletionDate       *time.Time
}

type ListRepairOrderRequest struct {
	ClientID  string
	Status    string
	EntryFrom *time.Time
	EntryTo   *time.Time
}

type ListRepairOrderFilter struct {
	ClientID  string
	Status    string
	EntryFrom *time.Time
	EntryTo   *time.Time
}

type OverdueOrder struct {
	RepairOrder
	DaysOpen int `json:"days_open"`
}

type Service interface {
	Create(ctx context.Context, req CreateRepairOrderRequest) (RepairOrder, error)
	GetByID(ctx context.Context, id string) (RepairOrder, error)
	Update(ctx context.Context, req UpdateRepairOrderRequest) (RepairOrder, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, req ListRepairOrderRequest) ([]RepairOrder, error)
	// ListOverdue mirrors the get_overdue_orders(threshold_days) stored
	// function: non-delivered orders open longer than the threshold. A
	// zero threshold falls back to the configured value.
	ListOverdue(ctx context.Context, thresholdDays int) ([]OverdueOrder, error)
}

var (
	ErrInvalidClient = errors.New("invalid_client")
	ErrInvalidID     = errors.New("invalid_id")
	ErrInvalidDates  = errors.New("completion_before_entry")
	ErrNotFound      = errors.New("not_found")
)
