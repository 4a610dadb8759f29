package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"github.com/talleraustral/taller/internal/clock"
	"github.com/talleraustral/taller/internal/payment/domain"
	"github.com/talleraustral/taller/internal/payment/repository"
	"github.com/talleraustral/taller/internal/querycache"
	"github.com/talleraustral/taller/pkg/db"
	"go.uber.org/zap"
)

func setupPaymentService(t *testing.T) (domain.Service, *snowflake.Node, *clock.FakeClock) {
	t.Helper()

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(&domain.Payment{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC))

	svc := New(Params{
		DB:    dbConn,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fake,
		Repo:  repository.Provide(),
		Cache: querycache.NewWithClock(fake, time.Minute),
	})
	return svc, node, fake
}

func TestCreateDefaultsPaymentDateToClock(t *testing.T) {
	svc, node, fake := setupPaymentService(t)
	ctx := context.Background()

	clientID := node.Generate()
	created, err := svc.Create(ctx, domain.CreatePaymentRequest{
		ClientID: clientID.String(),
		Amount:   500,
		Method:   "  efectivo  ",
	})
	require.NoError(t, err)
	require.Equal(t, fake.Now(), created.PaymentDate)
	require.Equal(t, "efectivo", created.Method)

	explicit := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	dated, err := svc.Create(ctx, domain.CreatePaymentRequest{
		ClientID:    clientID.String(),
		Amount:      200,
		PaymentDate: &explicit,
	})
	require.NoError(t, err)
	require.Equal(t, explicit, dated.PaymentDate)
}

func TestCreateValidation(t *testing.T) {
	svc, node, _ := setupPaymentService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreatePaymentRequest{ClientID: "abc", Amount: 100})
	require.ErrorIs(t, err, domain.ErrInvalidClient)

	_, err = svc.Create(ctx, domain.CreatePaymentRequest{ClientID: node.Generate().String(), Amount: 0})
	require.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.Create(ctx, domain.CreatePaymentRequest{ClientID: node.Generate().String(), Amount: -10})
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestListFiltersByClientAndDateRange(t *testing.T) {
	svc, node, _ := setupPaymentService(t)
	ctx := context.Background()

	carla := node.Generate()
	bruno := node.Generate()

	for _, seed := range []struct {
		client snowflake.ID
		amount float64
		date   time.Time
	}{
		{carla, 100, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)},
		{carla, 200, time.Date(2024, time.April, 5, 0, 0, 0, 0, time.UTC)},
		{bruno, 300, time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC)},
	} {
		date := seed.date
		_, err := svc.Create(ctx, domain.CreatePaymentRequest{
			ClientID:    seed.client.String(),
			Amount:      seed.amount,
			PaymentDate: &date,
		})
		require.NoError(t, err)
	}

	from := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	march, err := svc.List(ctx, domain.ListPaymentRequest{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, march, 2)

	onlyCarla, err := svc.List(ctx, domain.ListPaymentRequest{ClientID: carla.String()})
	require.NoError(t, err)
	require.Len(t, onlyCarla, 2)
	for _, p := range onlyCarla {
		require.Equal(t, carla, p.ClientID)
	}
}

func TestDeleteRemovesPayment(t *testing.T) {
	svc, node, _ := setupPaymentService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreatePaymentRequest{
		ClientID: node.Generate().String(),
		Amount:   150,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID.String()))
	require.ErrorIs(t, svc.Delete(ctx, created.ID.String()), domain.ErrNotFound)

	_, err = svc.GetByID(ctx, created.ID.String())
	require.ErrorIs(t, err, domain.ErrNotFound)
}
