package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, ticket *Ticket) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Ticket, error)
	Update(ctx context.Context, db *gorm.DB, ticket *Ticket) error
	List(ctx context.Context, db *gorm.DB, filter ListTicketFilter) ([]*Ticket, error)
}
