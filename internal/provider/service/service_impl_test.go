package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"github.com/talleraustral/taller/internal/clock"
	"github.com/talleraustral/taller/internal/provider/domain"
	"github.com/talleraustral/taller/internal/provider/repository"
	"github.com/talleraustral/taller/internal/querycache"
	"github.com/talleraustral/taller/pkg/db"
	"go.uber.org/zap"
)

func setupProviderService(t *testing.T) domain.Service {
	t.Helper()

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(&domain.Provider{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    dbConn,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
		Cache: querycache.NewWithClock(clock.NewFakeClock(time.Now()), time.Minute),
	})
}

func TestCreatePersonaOnlyNeedsName(t *testing.T) {
	svc := setupProviderService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateProviderRequest{
		Type: domain.TypePersona,
		Name: "Carlos Gómez",
	})
	require.NoError(t, err)
	require.Equal(t, domain.TypePersona, created.Type)
	require.Equal(t, "Carlos Gómez", created.Name)
}

func TestCreateCompanyRequiresBusinessAndContact(t *testing.T) {
	svc := setupProviderService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateProviderRequest{
		Type: domain.TypeCompany,
		Name: "Repuestos del Sur",
	})
	require.ErrorIs(t, err, domain.ErrMissingBusinessName)

	_, err = svc.Create(ctx, domain.CreateProviderRequest{
		Type:         domain.TypeCompany,
		Name:         "Repuestos del Sur",
		BusinessName: "Repuestos del Sur S.R.L.",
	})
	require.ErrorIs(t, err, domain.ErrMissingContactName)

	created, err := svc.Create(ctx, domain.CreateProviderRequest{
		Type:         domain.TypeCompany,
		Name:         "Repuestos del Sur",
		BusinessName: "Repuestos del Sur S.R.L.",
		ContactName:  "María López",
		CUIT:         "30-71234567-9",
	})
	require.NoError(t, err)
	require.Equal(t, "María López", created.ContactName)
}

func TestCreateRejectsUnknownType(t *testing.T) {
	svc := setupProviderService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateProviderRequest{Type: "cooperative", Name: "X"})
	require.ErrorIs(t, err, domain.ErrInvalidType)
}

func TestSearchMatchesAcrossFields(t *testing.T) {
	svc := setupProviderService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateProviderRequest{
		Type:         domain.TypeCompany,
		Name:         "Distribuidora Norte",
		BusinessName: "Norte S.A.",
		ContactName:  "Pedro Ruiz",
		CUIT:         "30-55555555-5",
		Email:        "ventas@norte.com",
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateProviderRequest{
		Type: domain.TypePersona,
		Name: "Lucía Fernández",
	})
	require.NoError(t, err)

	byContact, err := svc.Search(ctx, "Pedro")
	require.NoError(t, err)
	require.Len(t, byContact, 1)
	require.Equal(t, "Distribuidora Norte", byContact[0].Name)

	byCUIT, err := svc.Search(ctx, "30-55555555-5")
	require.NoError(t, err)
	require.Len(t, byCUIT, 1)

	// Empty query behaves like an unfiltered listing.
	all, err := svc.Search(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
}
