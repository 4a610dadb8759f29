package sysconfig

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/talleraustral/taller/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Module provides the system configuration store.
var Module = fx.Module("sysconfig.service",
	fx.Provide(New),
)

const (
	KeyOverdueThresholdDays = "overdue_threshold_days"
	KeySMTPSettings         = "smtp_settings"
)

// Setting is one row of the system_configuration key/value table.
type Setting struct {
	Key       string    `gorm:"primaryKey;column:key" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Setting) TableName() string { return "system_configuration" }

// SMTPSettings is the JSON blob stored under smtp_settings.
type SMTPSettings struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	From     string `json:"from"`
}

var (
	ErrInvalidKey = errors.New("invalid_key")
	ErrNotFound   = errors.New("not_found")
)

type Service interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	OverdueThresholdDays(ctx context.Context) int
	SMTPSettings(ctx context.Context) (SMTPSettings, error)
}

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
	Cfg config.Config
}

type service struct {
	db  *gorm.DB
	log *zap.Logger
	cfg config.Config
}

func New(p Params) Service {
	return &service{
		db:  p.DB,
		log: p.Log.Named("sysconfig.service"),
		cfg: p.Cfg,
	}
}

func (s *service) Get(ctx context.Context, key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrInvalidKey
	}

	var setting Setting
	err := s.db.WithContext(ctx).
		Where("key = ?", key).
		Limit(1).
		Find(&setting).Error
	if err != nil {
		return "", err
	}
	if setting.Key == "" {
		return "", ErrNotFound
	}
	return setting.Value, nil
}

func (s *service) Set(ctx context.Context, key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrInvalidKey
	}

	setting := Setting{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	return s.db.WithContext(ctx).Save(&setting).Error
}

// OverdueThresholdDays reads the configured threshold, falling back to the
// env default when the row is missing or malformed.
func (s *service) OverdueThresholdDays(ctx context.Context) int {
	value, err := s.Get(ctx, KeyOverdueThresholdDays)
	if err != nil {
		return s.cfg.DefaultOverdueThresholdDays
	}

	days, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || days <= 0 {
		s.log.Warn("malformed overdue threshold setting", zap.String("value", value))
		return s.cfg.DefaultOverdueThresholdDays
	}
	return days
}

func (s *service) SMTPSettings(ctx context.Context) (SMTPSettings, error) {
	value, err := s.Get(ctx, KeySMTPSettings)
	if err != nil {
		return SMTPSettings{}, err
	}

	var settings SMTPSettings
	if err := json.Unmarshal([]byte(value), &settings); err != nil {
		return SMTPSettings{}, err
	}
	return settings, nil
}
