package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	MethodEfectivo      = "efectivo"
	MethodTarjeta       = "tarjeta"
	MethodTransferencia = "transferencia"
	MethodMercadoPago   = "mercadopago"
)

type Payment struct {
	ID          snowflake.ID  `gorm:"primaryKey" json:"id"`
	ClientID    snowflake.ID  `gorm:"not null;index" json:"client_id"`
	DocumentID  *snowflake.ID `gorm:"index" json:"document_id,omitempty"`
	Amount      float64       `gorm:"not null" json:"amount"`
	Method      string        `json:"method,omitempty"`
	PaymentDate time.Time     `gorm:"not null;index" json:"payment_date"`
	Notes       string        `json:"notes,omitempty"`
	CreatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Payment) TableName() string { return "payments" }
