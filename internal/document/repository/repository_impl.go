package repository

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/talleraustral/taller/internal/document/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, doc *domain.Document) error {
	return db.WithContext(ctx).Create(doc).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Document, error) {
	var doc domain.Document
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&doc).Error
	if err != nil {
		return nil, err
	}
	if doc.ID == 0 {
		return nil, nil
	}
	return &doc, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, doc *domain.Document) error {
	return db.WithContext(ctx).Save(doc).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Document{}, "id = ?", id).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListDocumentFilter) ([]*domain.Document, error) {
	var docs []*domain.Document
	stmt := db.WithContext(ctx).Model(&domain.Document{})
	if filter.DocType != "" {
		stmt = stmt.Where("doc_type = ?", filter.DocType)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.ClientID != "" {
		stmt = stmt.Where("client_id = ?", filter.ClientID)
	}
	if filter.IssueFrom != nil {
		stmt = stmt.Where("issue_date >= ?", *filter.IssueFrom)
	}
	if filter.IssueTo != nil {
		stmt = stmt.Where("issue_date <= ?", *filter.IssueTo)
	}
	err := stmt.
		Order("issue_date desc, id desc").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

var numberPrefixes = map[string]string{
	domain.DocTypeFacturaA:    "FA",
	domain.DocTypeFacturaB:    "FB",
	domain.DocTypeFacturaC:    "FC",
	domain.DocTypeRecibo:      "RC",
	domain.DocTypePresupuesto: "PR",
}

// NextNumber derives the next sequence from the highest number already
// issued for the doc type. Zero-padded fixed-width numbers sort
// lexicographically, so MAX works and deletions never reissue a number.
// The unique index on invoice_number backstops concurrent creates.
func (r *repo) NextNumber(ctx context.Context, db *gorm.DB, docType string) (string, error) {
	prefix, ok := numberPrefixes[docType]
	if !ok {
		return "", domain.ErrInvalidDocType
	}

	var last string
	if err := db.WithContext(ctx).
		Model(&domain.Document{}).
		Where("doc_type = ?", docType).
		Select("COALESCE(MAX(invoice_number), '')").
		Scan(&last).Error; err != nil {
		return "", err
	}

	var seq int64
	if last != "" {
		if _, err := fmt.Sscanf(last, prefix+"-0001-%d", &seq); err != nil {
			seq = 0
		}
	}
	return fmt.Sprintf("%s-0001-%08d", prefix, seq+1), nil
}
