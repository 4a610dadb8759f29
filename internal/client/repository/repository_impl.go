package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/talleraustral/taller/internal/client/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, client *domain.Client) error {
	return db.WithContext(ctx).Create(client).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Client, error) {
	var client domain.Client
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&client).Error
	if err != nil {
		return nil, err
	}
	if client.ID == 0 {
		return nil, nil
	}
	return &client, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, client *domain.Client) error {
	return db.WithContext(ctx).Save(client).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Client{}, "id = ?", id).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListClientFilter) ([]*domain.Client, error) {
	var clients []*domain.Client
	stmt := db.WithContext(ctx).Model(&domain.Client{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		stmt = stmt.Where("name LIKE ? OR email LIKE ? OR phone LIKE ?", like, like, like)
	}
	err := stmt.
		Order("created_at desc, id desc").
		Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *repo) Balance(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Balance, error) {
	var balance domain.Balance
	err := db.WithContext(ctx).Raw(
		`SELECT c.id AS client_id,
		        c.name AS client_name,
		        COALESCE(inv.total_billed, 0) AS total_billed,
		        COALESCE(inv.invoice_count, 0) AS invoice_count,
		        COALESCE(pay.total_paid, 0) AS total_paid,
		        COALESCE(inv.total_billed, 0) - COALESCE(pay.total_paid, 0) AS balance_owed
		 FROM clients c
		 LEFT JOIN (
		     SELECT client_id, SUM(total) AS total_billed, COUNT(*) AS invoice_count
		     FROM documents
		     WHERE doc_type IN ('factura_a', 'factura_b', 'factura_c')
		       AND status <> 'Cancelada'
		     GROUP BY client_id
		 ) inv ON inv.client_id = c.id
		 LEFT JOIN (
		     SELECT client_id, SUM(amount) AS total_paid
		     FROM payments
		     GROUP BY client_id
		 ) pay ON pay.client_id = c.id
		 WHERE c.id = ?`,
		id,
	).Scan(&balance).Error
	if err != nil {
		return nil, err
	}
	if balance.ClientID == 0 {
		return nil, nil
	}
	return &balance, nil
}
