package sysconfig

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/talleraustral/taller/internal/config"
	"github.com/talleraustral/taller/pkg/db"
	"go.uber.org/zap"
)

func setupSysconfig(t *testing.T) Service {
	t.Helper()

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(&Setting{}))

	return New(Params{
		DB:  dbConn,
		Log: zap.NewNop(),
		Cfg: config.Config{DefaultOverdueThresholdDays: 15},
	})
}

func TestSetGetRoundTrip(t *testing.T) {
	svc := setupSysconfig(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, "shop_name")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Set(ctx, "shop_name", "Taller Austral"))
	value, err := svc.Get(ctx, "shop_name")
	require.NoError(t, err)
	require.Equal(t, "Taller Austral", value)

	// Save upserts on the key.
	require.NoError(t, svc.Set(ctx, "shop_name", "Taller Sur"))
	value, err = svc.Get(ctx, "shop_name")
	require.NoError(t, err)
	require.Equal(t, "Taller Sur", value)

	require.ErrorIs(t, svc.Set(ctx, "  ", "x"), ErrInvalidKey)
}

func TestOverdueThresholdFallsBackToDefault(t *testing.T) {
	svc := setupSysconfig(t)
	ctx := context.Background()

	require.Equal(t, 15, svc.OverdueThresholdDays(ctx))

	require.NoError(t, svc.Set(ctx, KeyOverdueThresholdDays, "not-a-number"))
	require.Equal(t, 15, svc.OverdueThresholdDays(ctx))

	require.NoError(t, svc.Set(ctx, KeyOverdueThresholdDays, "-3"))
	require.Equal(t, 15, svc.OverdueThresholdDays(ctx))

	require.NoError(t, svc.Set(ctx, KeyOverdueThresholdDays, "30"))
	require.Equal(t, 30, svc.OverdueThresholdDays(ctx))
}

func TestSMTPSettings(t *testing.T) {
	svc := setupSysconfig(t)
	ctx := context.Background()

	_, err := svc.SMTPSettings(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Set(ctx, KeySMTPSettings,
		`{"host":"smtp.example.com","port":587,"username":"taller","password":"secret","from":"taller@example.com"}`))

	settings, err := svc.SMTPSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, "smtp.example.com", settings.Host)
	require.Equal(t, 587, settings.Port)
	require.Equal(t, "taller@example.com", settings.From)
}
