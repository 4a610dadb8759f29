package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"github.com/talleraustral/taller/internal/clock"
	"github.com/talleraustral/taller/internal/config"
	"github.com/talleraustral/taller/internal/querycache"
	"github.com/talleraustral/taller/internal/repairorder/domain"
	"github.com/talleraustral/taller/internal/repairorder/repository"
	"github.com/talleraustral/taller/internal/sysconfig"
	"github.com/talleraustral/taller/pkg/db"
	"go.uber.org/zap"
)

func setupRepairOrderService(t *testing.T) (domain.Service, *snowflake.Node, *clock.FakeClock) {
	t.Helper()

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(&domain.RepairOrder{}, &sysconfig.Setting{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2024, time.May, 20, 10, 0, 0, 0, time.UTC))
	settings := sysconfig.New(sysconfig.Params{
		DB:  dbConn,
		Log: zap.NewNop(),
		Cfg: config.Config{DefaultOverdueThresholdDays: 15},
	})

	svc := New(Params{
		DB:       dbConn,
		Log:      zap.NewNop(),
		GenID:    node,
		Clock:    fake,
		Repo:     repository.Provide(),
		Cache:    querycache.NewWithClock(fake, time.Minute),
		Settings: settings,
	})
	return svc, node, fake
}

func TestCreateAssignsSequentialOrderNumbers(t *testing.T) {
	svc, node, _ := setupRepairOrderService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, domain.CreateRepairOrderRequest{ClientID: node.Generate().String()})
	require.NoError(t, err)
	require.Equal(t, "OR-000001", first.OrderNumber)
	require.Equal(t, domain.StatusIngresado, first.Status)

	second, err := svc.Create(ctx, domain.CreateRepairOrderRequest{ClientID: node.Generate().String()})
	require.NoError(t, err)
	require.Equal(t, "OR-000002", second.OrderNumber)

	// Deleting an order must not recycle its number for the next create.
	require.NoError(t, svc.Delete(ctx, first.ID.String()))
	third, err := svc.Create(ctx, domain.CreateRepairOrderRequest{ClientID: node.Generate().String()})
	require.NoError(t, err)
	require.Equal(t, "OR-000003", third.OrderNumber)
}

func TestUpdateRejectsCompletionBeforeEntry(t *testing.T) {
	svc, node, _ := setupRepairOrderService(t)
	ctx := context.Background()

	entry := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)
	order, err := svc.Create(ctx, domain.CreateRepairOrderRequest{
		ClientID:  node.Generate().String(),
		EntryDate: &entry,
	})
	require.NoError(t, err)

	early := entry.AddDate(0, 0, -1)
	_, err = svc.Update(ctx, domain.UpdateRepairOrderRequest{
		ID:             order.ID.String(),
		CompletionDate: &early,
	})
	require.ErrorIs(t, err, domain.ErrInvalidDates)

	valid := entry.AddDate(0, 0, 3)
	updated, err := svc.Update(ctx, domain.UpdateRepairOrderRequest{
		ID:             order.ID.String(),
		CompletionDate: &valid,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.CompletionDate)
}

func TestListOverdueUsesConfiguredThreshold(t *testing.T) {
	svc, node, fake := setupRepairOrderService(t)
	ctx := context.Background()

	old := fake.Now().AddDate(0, 0, -20)
	recent := fake.Now().AddDate(0, 0, -3)

	stale, err := svc.Create(ctx, domain.CreateRepairOrderRequest{
		ClientID:  node.Generate().String(),
		EntryDate: &old,
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateRepairOrderRequest{
		ClientID:  node.Generate().String(),
		EntryDate: &recent,
	})
	require.NoError(t, err)

	// Delivered orders never show up as overdue regardless of age.
	delivered := domain.StatusEntregado
	done, err := svc.Create(ctx, domain.CreateRepairOrderRequest{
		ClientID:  node.Generate().String(),
		EntryDate: &old,
		Status:    delivered,
	})
	require.NoError(t, err)
	_ = done

	// Zero threshold falls back to the configured 15 days.
	overdue, err := svc.ListOverdue(ctx, 0)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	require.Equal(t, stale.ID, overdue[0].ID)
	require.Equal(t, 20, overdue[0].DaysOpen)

	// An explicit threshold overrides the setting.
	overdue, err = svc.ListOverdue(ctx, 2)
	require.NoError(t, err)
	require.Len(t, overdue, 2)
}
