package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/talleraustral/taller/internal/provider/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, provider *domain.Provider) error {
	return db.WithContext(ctx).Create(provider).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Provider, error) {
	var provider domain.Provider
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&provider).Error
	if err != nil {
		return nil, err
	}
	if provider.ID == 0 {
		return nil, nil
	}
	return &provider, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, provider *domain.Provider) error {
	return db.WithContext(ctx).Save(provider).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Provider{}, "id = ?", id).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListProviderFilter) ([]*domain.Provider, error) {
	var providers []*domain.Provider
	stmt := db.WithContext(ctx).Model(&domain.Provider{})
	if filter.Type != "" {
		stmt = stmt.Where("type = ?", filter.Type)
	}
	err := stmt.
		Order("name asc, id asc").
		Find(&providers).Error
	if err != nil {
		return nil, err
	}
	return providers, nil
}

func (r *repo) Search(ctx context.Context, db *gorm.DB, query string) ([]*domain.Provider, error) {
	var providers []*domain.Provider
	like := "%" + query + "%"
	err := db.WithContext(ctx).
		Model(&domain.Provider{}).
		Where("name LIKE ? OR business_name LIKE ? OR contact_name LIKE ? OR cuit LIKE ? OR email LIKE ?",
			like, like, like, like, like).
		Order("name asc").
		Find(&providers).Error
	if err != nil {
		return nil, err
	}
	return providers, nil
}
