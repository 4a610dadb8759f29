package domain

import (
	"context"
	"errors"
)

// Date range inputs are inclusive yyyy-MM-dd calendar dates. Both bounds
// are interpreted as UTC: the start at midnight, the end extended to the
// last instant of that day, so the whole end date is covered regardless
// of the server timezone.

type RangeRequest struct {
	StartDate string // optional: empty means all-time
	EndDate   string
}

type MonthlySalesSummary struct {
	Month        int     `json:"month"`
	Year         int     `json:"year"`
	InvoiceTotal float64 `json:"invoice_total"`
	InvoiceCount int     `json:"invoice_count"`
	ReceiptTotal float64 `json:"receipt_total"`
}

type MonthCount struct {
	Month string `json:"month"` // yyyy-MM
	Count int    `json:"count"`
}

type ClientActivity struct {
	ClientID     string  `json:"client_id"`
	ClientName   string  `json:"client_name"`
	OrderCount   int     `json:"order_count"`
	InvoiceTotal float64 `json:"invoice_total"`
}

type StockStatusRequest struct {
	Category string
	LowOnly  bool
}

type StockStatusRow struct {
	ItemID       string  `json:"item_id"`
	Name         string  `json:"name"`
	Category     string  `json:"category,omitempty"`
	Quantity     int     `json:"quantity"`
	MinimumStock int     `json:"minimum_stock"`
	TotalValue   float64 `json:"total_value"`
	IsLowStock   bool    `json:"is_low_stock"`
}

const (
	GroupByEquipmentType  = "equipment_type"
	GroupByEquipmentBrand = "equipment_brand"
)

type OrdersByEquipmentRequest struct {
	RangeRequest
	GroupBy string // equipment_type | equipment_brand
}

type GroupCount struct {
	Group string `json:"group"`
	Count int    `json:"count"`
}

type TechnicianPerformance struct {
	TechnicianID   string  `json:"technician_id"`
	TechnicianName string  `json:"technician_name,omitempty"`
	CompletedCount int     `json:"completed_count"`
	AverageDays    float64 `json:"average_days"`
}

type AverageRepairTimeRequest struct {
	RangeRequest
	GroupByEquipment bool
}

type GroupAverage struct {
	Group       string  `json:"group"`
	Count       int     `json:"count"`
	AverageDays float64 `json:"average_days"`
}

type AverageRepairTimeResponse struct {
	Count       int            `json:"count"`
	AverageDays float64        `json:"average_days"`
	Groups      []GroupAverage `json:"groups,omitempty"`
}

type ClientSales struct {
	ClientID   string  `json:"client_id"`
	ClientName string  `json:"client_name"`
	Total      float64 `json:"total"`
}

type AgingBucket struct {
	Bucket string  `json:"bucket"`
	Total  float64 `json:"total"`
	Count  int     `json:"count"`
}

type GroupRevenue struct {
	Group string  `json:"group"`
	Total float64 `json:"total"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type TicketReportRequest struct {
	RangeRequest
	Status   string
	Priority string
}

type TicketReport struct {
	TotalCount            int           `json:"total_count"`
	ByStatus              []StatusCount `json:"by_status"`
	ByPriority            []StatusCount `json:"by_priority"`
	ResolvedCount         int           `json:"resolved_count"`
	AverageResolutionDays float64       `json:"average_resolution_days"`
}

type Service interface {
	MonthlySalesSummary(ctx context.Context, month, year int) (MonthlySalesSummary, error)
	NewClientCount(ctx context.Context, startDate, endDate string) ([]MonthCount, error)
	ClientActivitySummary(ctx context.Context, startDate, endDate string) ([]ClientActivity, error)
	StockStatus(ctx context.Context, req StockStatusRequest) ([]StockStatusRow, error)
	OrdersByEquipment(ctx context.Context, req OrdersByEquipmentRequest) ([]GroupCount, error)
	TechnicianPerformance(ctx context.Context, req RangeRequest) ([]TechnicianPerformance, error)
	AverageRepairTime(ctx context.Context, req AverageRepairTimeRequest) (AverageRepairTimeResponse, error)
	SalesByClient(ctx context.Context, startDate, endDate string) ([]ClientSales, error)
	InvoiceAging(ctx context.Context, asOfDate string) ([]AgingBucket, error)
	RevenueByServiceType(ctx context.Context, startDate, endDate string) ([]GroupRevenue, error)
	OrderStatusCounts(ctx context.Context, req RangeRequest) ([]StatusCount, error)
	TicketVolumeAndResolution(ctx context.Context, req TicketReportRequest) (TicketReport, error)
}

var (
	ErrInvalidDate    = errors.New("invalid_date")
	ErrInvalidRange   = errors.New("invalid_range")
	ErrInvalidMonth   = errors.New("invalid_month")
	ErrInvalidGroupBy = errors.New("invalid_group_by")
)
