package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, order *RepairOrder) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*RepairOrder, error)
	Update(ctx context.Context, db *gorm.DB, order *RepairOrder) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	List(ctx context.Context, db *gorm.DB, filter ListRepairOrderFilter) ([]*RepairOrder, error)
	ListOverdue(ctx context.Context, db *gorm.DB, cutoff time.Time) ([]*RepairOrder, error)
	NextOrderNumber(ctx context.Context, db *gorm.DB) (string, error)
}
