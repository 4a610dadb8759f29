package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	StatusAbierto    = "abierto"
	StatusEnProgreso = "en_progreso"
	StatusResuelto   = "resuelto"
	StatusCerrado    = "cerrado"
)

const (
	PriorityBaja    = "baja"
	PriorityMedia   = "media"
	PriorityAlta    = "alta"
	PriorityUrgente = "urgente"
)

type Ticket struct {
	ID         snowflake.ID  `gorm:"primaryKey" json:"id"`
	Subject    string        `gorm:"not null" json:"subject"`
	Detail     string        `json:"detail,omitempty"`
	Status     string        `gorm:"not null;index" json:"status"`
	Priority   string        `gorm:"not null;index" json:"priority"`
	ClientID   *snowflake.ID `gorm:"index" json:"client_id,omitempty"`
	CreatedAt  time.Time     `gorm:"not null;index" json:"created_at"`
	ResolvedAt *time.Time    `json:"resolved_at,omitempty"`
	UpdatedAt  time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Ticket) TableName() string { return "tickets" }

// IsResolved covers both terminal statuses the resolution report counts.
func (t Ticket) IsResolved() bool {
	return t.Status == StatusResuelto || t.Status == StatusCerrado
}
