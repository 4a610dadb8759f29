package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"github.com/talleraustral/taller/internal/clock"
	"github.com/talleraustral/taller/internal/querycache"
	"github.com/talleraustral/taller/internal/ticket/domain"
	"github.com/talleraustral/taller/internal/ticket/repository"
	"github.com/talleraustral/taller/pkg/db"
	"go.uber.org/zap"
)

func setupTicketService(t *testing.T) (domain.Service, *clock.FakeClock) {
	t.Helper()

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(&domain.Ticket{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC))
	svc := New(Params{
		DB:    dbConn,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fake,
		Repo:  repository.Provide(),
		Cache: querycache.NewWithClock(fake, time.Minute),
	})
	return svc, fake
}

func TestCreateDefaultsToOpenMediumPriority(t *testing.T) {
	svc, _ := setupTicketService(t)
	ctx := context.Background()

	ticket, err := svc.Create(ctx, domain.CreateTicketRequest{Subject: "Impresora sin tóner"})
	require.NoError(t, err)
	require.Equal(t, domain.StatusAbierto, ticket.Status)
	require.Equal(t, domain.PriorityMedia, ticket.Priority)
	require.Nil(t, ticket.ResolvedAt)

	_, err = svc.Create(ctx, domain.CreateTicketRequest{Subject: "   "})
	require.ErrorIs(t, err, domain.ErrInvalidSubject)
}

func TestResolvedAtStampsOnFirstTerminalTransition(t *testing.T) {
	svc, fake := setupTicketService(t)
	ctx := context.Background()

	ticket, err := svc.Create(ctx, domain.CreateTicketRequest{Subject: "Sin internet"})
	require.NoError(t, err)

	fake.Advance(48 * time.Hour)
	resolved := domain.StatusResuelto
	updated, err := svc.Update(ctx, domain.UpdateTicketRequest{
		ID:     ticket.ID.String(),
		Status: &resolved,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.ResolvedAt)
	firstStamp := *updated.ResolvedAt

	// Moving between terminal statuses keeps the original stamp.
	fake.Advance(24 * time.Hour)
	closed := domain.StatusCerrado
	updated, err = svc.Update(ctx, domain.UpdateTicketRequest{
		ID:     ticket.ID.String(),
		Status: &closed,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.ResolvedAt)
	require.Equal(t, firstStamp.Unix(), updated.ResolvedAt.Unix())
}
