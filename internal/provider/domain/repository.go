package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, provider *Provider) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Provider, error)
	Update(ctx context.Context, db *gorm.DB, provider *Provider) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	List(ctx context.Context, db *gorm.DB, filter ListProviderFilter) ([]*Provider, error)
	Search(ctx context.Context, db *gorm.DB, query string) ([]*Provider, error)
}
