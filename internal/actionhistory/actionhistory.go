package actionhistory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/talleraustral/taller/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Module provides the action history recorder.
var Module = fx.Module("actionhistory.service",
	fx.Provide(New),
)

// Entry is one row of the action_history table.
type Entry struct {
	ID         snowflake.ID      `gorm:"primaryKey" json:"id"`
	Actor      string            `json:"actor,omitempty"`
	Action     string            `gorm:"not null;index" json:"action"`
	TargetType string            `gorm:"not null;index" json:"target_type"`
	TargetID   string            `gorm:"index" json:"target_id,omitempty"`
	Metadata   datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt  time.Time         `gorm:"not null;index" json:"created_at"`
}

func (Entry) TableName() string { return "action_history" }

var ErrInvalidPageToken = errors.New("invalid_page_token")

type ListRequest struct {
	pagination.Pagination

	Action     string
	TargetType string
}

type ListResponse struct {
	Entries []Entry `json:"entries"`
	pagination.PageInfo
}

type Service interface {
	// Record never fails the caller: history writes are best-effort and
	// logged on error.
	Record(ctx context.Context, actor, action, targetType, targetID string, metadata map[string]any)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
}

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
}

func New(p Params) Service {
	return &service{
		db:    p.DB,
		log:   p.Log.Named("actionhistory.service"),
		genID: p.GenID,
	}
}

func (s *service) Record(ctx context.Context, actor, action, targetType, targetID string, metadata map[string]any) {
	action = strings.TrimSpace(action)
	if action == "" {
		return
	}

	targetType = strings.TrimSpace(targetType)
	if targetType == "" {
		targetType = "unknown"
	}

	payload := datatypes.JSONMap{}
	for key, value := range metadata {
		if key == "" {
			continue
		}
		payload[key] = value
	}

	entry := Entry{
		ID:         s.genID.Generate(),
		Actor:      strings.TrimSpace(actor),
		Action:     action,
		TargetType: targetType,
		TargetID:   strings.TrimSpace(targetID),
		Metadata:   payload,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		s.log.Warn("failed to write action history", zap.String("action", action), zap.Error(err))
	}
}

func (s *service) List(ctx context.Context, req ListRequest) (ListResponse, error) {
	type cursor struct {
		createdAt time.Time
		id        snowflake.ID
	}

	var after *cursor
	if strings.TrimSpace(req.PageToken) != "" {
		decoded, err := pagination.DecodeCursor(req.PageToken)
		if err != nil {
			return ListResponse{}, ErrInvalidPageToken
		}
		createdAt, err := time.Parse(time.RFC3339Nano, decoded.CreatedAt)
		if err != nil {
			return ListResponse{}, ErrInvalidPageToken
		}
		id, err := snowflake.ParseString(strings.TrimSpace(decoded.ID))
		if err != nil || id == 0 {
			return ListResponse{}, ErrInvalidPageToken
		}
		after = &cursor{createdAt: createdAt, id: id}
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}
	if pageSize > 250 {
		pageSize = 250
	}

	stmt := s.db.WithContext(ctx).Model(&Entry{})
	if action := strings.TrimSpace(req.Action); action != "" {
		stmt = stmt.Where("action = ?", action)
	}
	if targetType := strings.TrimSpace(req.TargetType); targetType != "" {
		stmt = stmt.Where("target_type = ?", targetType)
	}
	if after != nil {
		stmt = stmt.Where("created_at < ? OR (created_at = ? AND id < ?)",
			after.createdAt, after.createdAt, after.id)
	}

	var items []*Entry
	err := stmt.
		Order("created_at desc, id desc").
		Limit(pageSize + 1).
		Find(&items).Error
	if err != nil {
		return ListResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(item *Entry) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        item.ID.String(),
			CreatedAt: item.CreatedAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		entries = append(entries, *item)
	}
	return ListResponse{Entries: entries, PageInfo: *pageInfo}, nil
}
