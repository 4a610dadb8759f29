package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	TypePersona = "persona"
	TypeCompany = "company"
)

type Provider struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	Type         string       `gorm:"not null;index" json:"type"`
	Name         string       `gorm:"not null" json:"name"`
	BusinessName string       `json:"business_name,omitempty"`
	ContactName  string       `json:"contact_name,omitempty"`
	CUIT         string       `gorm:"column:cuit" json:"cuit,omitempty"`
	Email        string       `json:"email,omitempty"`
	Phone        string       `json:"phone,omitempty"`
	Address      string       `json:"address,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Provider) TableName() string { return "providers" }
