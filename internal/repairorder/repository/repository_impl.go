package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/talleraustral/taller/internal/repairorder/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, order *domain.RepairOrder) error {
	return db.WithContext(ctx).Create(order).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.RepairOrder, error) {
	var order domain.RepairOrder
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&order).Error
	if err != nil {
		return nil, err
	}
	if order.ID == 0 {
		return nil, nil
	}
	return &order, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, order *domain.RepairOrder) error {
	return db.WithContext(ctx).Save(order).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.RepairOrder{}, "id = ?", id).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListRepairOrderFilter) ([]*domain.RepairOrder, error) {
	var orders []*domain.RepairOrder
	stmt := db.WithContext(ctx).Model(&domain.RepairOrder{})
	if filter.ClientID != "" {
		stmt = stmt.Where("client_id = ?", filter.ClientID)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.EntryFrom != nil {
		stmt = stmt.Where("entry_date >= ?", *filter.EntryFrom)
	}
	if filter.EntryTo != nil {
		stmt = stmt.Where("entry_date <= ?", *filter.EntryTo)
	}
	err := stmt.
		Order("entry_date desc, id desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repo) ListOverdue(ctx context.Context, db *gorm.DB, cutoff time.Time) ([]*domain.RepairOrder, error) {
	var orders []*domain.RepairOrder
	err := db.WithContext(ctx).
		Model(&domain.RepairOrder{}).
		Where("entry_date < ?", cutoff).
		Where("status NOT IN ?", []string{domain.StatusEntregado, domain.StatusCancelado}).
		Order("entry_date asc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// NextOrderNumber derives the next sequence from the highest order number
// issued so far; deletions never cause a number to be handed out twice.
func (r *repo) NextOrderNumber(ctx context.Context, db *gorm.DB) (string, error) {
	var last string
	if err := db.WithContext(ctx).
		Model(&domain.RepairOrder{}).
		Select("COALESCE(MAX(order_number), '')").
		Scan(&last).Error; err != nil {
		return "", err
	}

	var seq int64
	if last != "" {
		if _, err := fmt.Sscanf(last, "OR-%d", &seq); err != nil {
			seq = 0
		}
	}
	return fmt.Sprintf("OR-%06d", seq+1), nil
}
