package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

const (
	DocTypeFacturaA    = "factura_a"
	DocTypeFacturaB    = "factura_b"
	DocTypeFacturaC    = "factura_c"
	DocTypeRecibo      = "recibo"
	DocTypePresupuesto = "presupuesto"
)

const (
	StatusPendiente = "Pendiente"
	StatusEmitida   = "Emitida"
	StatusPagada    = "Pagada"
	StatusCancelada = "Cancelada"

	// Presupuesto vocabulary.
	StatusEnviado   = "Enviado"
	StatusAceptado  = "Aceptado"
	StatusRechazado = "Rechazado"
	StatusFacturado = "Facturado"
)

const (
	AFIPStatusPendiente = "pendiente"
	AFIPStatusAprobado  = "aprobado"
)

// TaxRate is the IVA rate applied to every taxed document.
const TaxRate = 0.21

type LineItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount"`
}

type Document struct {
	ID             snowflake.ID                  `gorm:"primaryKey" json:"id"`
	DocType        string                        `gorm:"not null;index" json:"doc_type"`
	InvoiceNumber  string                        `gorm:"uniqueIndex" json:"invoice_number,omitempty"`
	ClientID       snowflake.ID                  `gorm:"not null;index" json:"client_id"`
	RepairOrderID  *snowflake.ID                 `gorm:"index" json:"repair_order_id,omitempty"`
	IssueDate      time.Time                     `gorm:"not null;index" json:"issue_date"`
	DueDate        *time.Time                    `json:"due_date,omitempty"`
	Subtotal       float64                       `json:"subtotal"`
	Tax            float64                       `json:"tax"`
	Total          float64                       `json:"total"`
	Status         string                        `gorm:"not null;index" json:"status"`
	Items          datatypes.JSONSlice[LineItem] `json:"items,omitempty"`
	Notes          string                        `json:"notes,omitempty"`
	AFIPStatus     string                        `gorm:"column:afip_status" json:"afip_status,omitempty"`
	AFIPCAE        string                        `gorm:"column:afip_cae" json:"afip_cae,omitempty"`
	AFIPExpiration *time.Time                    `gorm:"column:afip_expiration" json:"afip_expiration,omitempty"`
	CreatedAt      time.Time                     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time                     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Document) TableName() string { return "documents" }

func (d Document) IsFactura() bool {
	switch d.DocType {
	case DocTypeFacturaA, DocTypeFacturaB, DocTypeFacturaC:
		return true
	default:
		return false
	}
}
