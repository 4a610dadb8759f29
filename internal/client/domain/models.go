package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Client struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"not null" json:"name"`
	Email     string       `json:"email,omitempty"`
	Phone     string       `json:"phone,omitempty"`
	Address   string       `json:"address,omitempty"`
	Document  string       `gorm:"column:document" json:"document,omitempty"`
	Notes     string       `json:"notes,omitempty"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Client) TableName() string { return "clients" }

// Balance mirrors the client_balances view: total invoiced minus total paid.
type Balance struct {
	ClientID     snowflake.ID `json:"client_id"`
	ClientName   string       `json:"client_name"`
	TotalBilled  float64      `json:"total_billed"`
	TotalPaid    float64      `json:"total_paid"`
	BalanceOwed  float64      `json:"balance_owed"`
	InvoiceCount int          `json:"invoice_count"`
}
