package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"github.com/talleraustral/taller/internal/clock"
	"github.com/talleraustral/taller/internal/inventory/domain"
	"github.com/talleraustral/taller/internal/inventory/repository"
	"github.com/talleraustral/taller/internal/querycache"
	"github.com/talleraustral/taller/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupInventoryService(t *testing.T) (domain.Service, *gorm.DB, *clock.FakeClock) {
	t.Helper()

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(&domain.Item{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC))
	svc := New(Params{
		DB:    dbConn,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fake,
		Repo:  repository.Provide(),
		Cache: querycache.NewWithClock(fake, time.Minute),
	})
	return svc, dbConn, fake
}

func TestAdjustStockSubtract(t *testing.T) {
	svc, _, _ := setupInventoryService(t)
	ctx := context.Background()

	minimum := 5
	item, err := svc.Create(ctx, domain.CreateItemRequest{
		Name:         "Pantalla",
		SKU:          "PAN-001",
		Quantity:     10,
		MinimumStock: &minimum,
	})
	require.NoError(t, err)

	adjusted, err := svc.AdjustStock(ctx, domain.AdjustStockRequest{
		ID:        item.ID.String(),
		Quantity:  3,
		Operation: domain.AdjustSubtract,
	})
	require.NoError(t, err)
	require.Equal(t, 7, adjusted.Quantity)
	require.False(t, adjusted.IsLowStock())
}

func TestAdjustStockAllowsNegativeResult(t *testing.T) {
	svc, _, _ := setupInventoryService(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, domain.CreateItemRequest{
		Name:     "Cable",
		SKU:      "CAB-001",
		Quantity: 3,
	})
	require.NoError(t, err)

	// The store never clamps: oversubtraction goes negative and is the
	// caller's problem to surface.
	adjusted, err := svc.AdjustStock(ctx, domain.AdjustStockRequest{
		ID:        item.ID.String(),
		Quantity:  10,
		Operation: domain.AdjustSubtract,
	})
	require.NoError(t, err)
	require.Equal(t, -7, adjusted.Quantity)
	require.True(t, adjusted.IsLowStock())
}

func TestAdjustStockValidation(t *testing.T) {
	svc, _, _ := setupInventoryService(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, domain.CreateItemRequest{
		Name:     "Teclado",
		SKU:      "TEC-001",
		Quantity: 5,
	})
	require.NoError(t, err)

	_, err = svc.AdjustStock(ctx, domain.AdjustStockRequest{
		ID:        item.ID.String(),
		Quantity:  0,
		Operation: domain.AdjustAdd,
	})
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = svc.AdjustStock(ctx, domain.AdjustStockRequest{
		ID:        item.ID.String(),
		Quantity:  1,
		Operation: "set",
	})
	require.ErrorIs(t, err, domain.ErrInvalidOperation)

	_, err = svc.AdjustStock(ctx, domain.AdjustStockRequest{
		ID:        "not-a-number",
		Quantity:  1,
		Operation: domain.AdjustAdd,
	})
	require.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestCreateDuplicateSKU(t *testing.T) {
	svc, _, _ := setupInventoryService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateItemRequest{Name: "Uno", SKU: "DUP-001", Quantity: 1})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreateItemRequest{Name: "Dos", SKU: "DUP-001", Quantity: 1})
	require.ErrorIs(t, err, domain.ErrDuplicateSKU)
}

func TestCreateAllowsRepeatedBlankSKU(t *testing.T) {
	svc, _, _ := setupInventoryService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, domain.CreateItemRequest{Name: "Sin SKU uno", Quantity: 1})
	require.NoError(t, err)
	require.Nil(t, first.SKU)

	second, err := svc.Create(ctx, domain.CreateItemRequest{Name: "Sin SKU dos", SKU: "  ", Quantity: 1})
	require.NoError(t, err)
	require.Nil(t, second.SKU)
}

func TestUpdateClearsSKU(t *testing.T) {
	svc, _, _ := setupInventoryService(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, domain.CreateItemRequest{Name: "Con SKU", SKU: "CLR-001", Quantity: 1})
	require.NoError(t, err)
	require.NotNil(t, item.SKU)

	blank := ""
	updated, err := svc.Update(ctx, domain.UpdateItemRequest{ID: item.ID.String(), SKU: &blank})
	require.NoError(t, err)
	require.Nil(t, updated.SKU)
}

func TestListServesCachedResultsUntilWrite(t *testing.T) {
	svc, dbConn, _ := setupInventoryService(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, domain.CreateItemRequest{Name: "Memoria", Quantity: 4})
	require.NoError(t, err)

	all, err := svc.List(ctx, domain.ListItemRequest{})
	require.NoError(t, err)
	require.Len(t, all, 1)

	// An out-of-band delete stays invisible while the cached entry lives.
	require.NoError(t, dbConn.Delete(&domain.Item{}, "id = ?", item.ID).Error)
	cached, err := svc.List(ctx, domain.ListItemRequest{})
	require.NoError(t, err)
	require.Len(t, cached, 1)

	// Any service write invalidates and the next read hits the database.
	_, err = svc.Create(ctx, domain.CreateItemRequest{Name: "Disco", Quantity: 2})
	require.NoError(t, err)
	fresh, err := svc.List(ctx, domain.ListItemRequest{})
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	require.Equal(t, "Disco", fresh[0].Name)
}

func TestTimestampsComeFromClock(t *testing.T) {
	svc, _, fake := setupInventoryService(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, domain.CreateItemRequest{Name: "Reloj", Quantity: 1})
	require.NoError(t, err)
	require.Equal(t, fake.Now(), item.CreatedAt)

	fake.Advance(2 * time.Hour)
	name := "Reloj pared"
	updated, err := svc.Update(ctx, domain.UpdateItemRequest{ID: item.ID.String(), Name: &name})
	require.NoError(t, err)
	require.Equal(t, fake.Now(), updated.UpdatedAt)
	require.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}

func TestListLowStockFilter(t *testing.T) {
	svc, _, _ := setupInventoryService(t)
	ctx := context.Background()

	minimum := 5
	_, err := svc.Create(ctx, domain.CreateItemRequest{Name: "Bajo", SKU: "LOW-001", Quantity: 2, MinimumStock: &minimum})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateItemRequest{Name: "Alto", SKU: "HIGH-001", Quantity: 50, MinimumStock: &minimum})
	require.NoError(t, err)

	low, err := svc.List(ctx, domain.ListItemRequest{LowStock: true})
	require.NoError(t, err)
	require.Len(t, low, 1)
	require.Equal(t, "Bajo", low[0].Name)

	all, err := svc.List(ctx, domain.ListItemRequest{})
	require.NoError(t, err)
	require.Len(t, all, 2)
}
