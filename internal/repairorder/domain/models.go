package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Statuses offered by the intake form. The column itself is free-form: the
// store never enforces a transition table, so historical rows may carry
// values outside this list.
const (
	StatusIngresado    = "Ingresado"
	StatusEnReparacion = "En Reparación"
	StatusEsperaRepuesto = "Esperando Repuesto"
	StatusListo        = "Listo"
	StatusEntregado    = "Entregado"
	StatusCancelado    = "Cancelado"
)

type RepairOrder struct {
	ID                   snowflake.ID  `gorm:"primaryKey" json:"id"`
	OrderNumber          string        `gorm:"uniqueIndex" json:"order_number"`
	ClientID             snowflake.ID  `gorm:"not null;index" json:"client_id"`
	EquipmentType        string        `json:"equipment_type,omitempty"`
	EquipmentBrand       string        `json:"equipment_brand,omitempty"`
	EquipmentModel       string        `json:"equipment_model,omitempty"`
	ReportedIssue        string        `json:"reported_issue,omitempty"`
	Status               string        `gorm:"not null;index" json:"status"`
	AssignedTechnician   string        `json:"assigned_technician,omitempty"`
	AssignedTechnicianID *snowflake.ID `gorm:"index" json:"assigned_technician_id,omitempty"`
	PartsCost            float64       `json:"parts_cost"`
	LaborCost            float64       `json:"labor_cost"`
	TotalCost            float64       `json:"total_cost"`
	EntryDate            time.Time     `gorm:"not null;index" json:"entry_date"`
	CompletionDate       *time.Time    `json:"completion_date,omitempty"`
	CreatedAt            time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt            time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (RepairOrder) TableName() string { return "repair_orders" }
