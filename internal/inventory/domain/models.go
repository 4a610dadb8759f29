package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Item struct {
	ID           snowflake.ID  `gorm:"primaryKey" json:"id"`
	Name         string        `gorm:"not null" json:"name"`
	// SKU is optional; NULL rows stay out of the unique index.
	SKU          *string       `gorm:"uniqueIndex" json:"sku,omitempty"`
	Category     string        `gorm:"index" json:"category,omitempty"`
	Quantity     int           `gorm:"not null" json:"quantity"`
	MinimumStock *int          `json:"minimum_stock,omitempty"`
	CostPrice    float64       `json:"cost_price"`
	SalePrice    float64       `json:"sale_price"`
	ProviderID   *snowflake.ID `gorm:"index" json:"provider_id,omitempty"`
	CreatedAt    time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Item) TableName() string { return "inventory" }

// IsLowStock treats a missing minimum as zero, so items with no configured
// minimum only flag at zero or below.
func (i Item) IsLowStock() bool {
	minimum := 0
	if i.MinimumStock != nil {
		minimum = *i.MinimumStock
	}
	return i.Quantity <= minimum
}
