package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/talleraustral/taller/internal/inventory/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, item *domain.Item) error {
	return db.WithContext(ctx).Create(item).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Item, error) {
	var item domain.Item
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&item).Error
	if err != nil {
		return nil, err
	}
	if item.ID == 0 {
		return nil, nil
	}
	return &item, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, item *domain.Item) error {
	return db.WithContext(ctx).Save(item).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Item{}, "id = ?", id).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListItemFilter) ([]*domain.Item, error) {
	var items []*domain.Item
	stmt := db.WithContext(ctx).Model(&domain.Item{})
	if filter.Category != "" {
		stmt = stmt.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		stmt = stmt.Where("name LIKE ? OR sku LIKE ?", like, like)
	}
	err := stmt.
		Order("name asc, id asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ApplyDelta(ctx context.Context, db *gorm.DB, id snowflake.ID, delta int) (int64, error) {
	result := db.WithContext(ctx).Exec(
		`UPDATE inventory SET quantity = quantity + ?, updated_at = ? WHERE id = ?`,
		delta,
		time.Now().UTC(),
		id,
	)
	return result.RowsAffected, result.Error
}
