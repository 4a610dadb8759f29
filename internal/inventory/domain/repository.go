package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, item *Item) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Item, error)
	Update(ctx context.Context, db *gorm.DB, item *Item) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	List(ctx context.Context, db *gorm.DB, filter ListItemFilter) ([]*Item, error)
	// ApplyDelta issues a single relative UPDATE so concurrent adjusters
	// cannot lose each other's writes.
	ApplyDelta(ctx context.Context, db *gorm.DB, id snowflake.ID, delta int) (int64, error)
}
