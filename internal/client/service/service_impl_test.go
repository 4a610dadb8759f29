package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"github.com/talleraustral/taller/internal/client/domain"
	"github.com/talleraustral/taller/internal/client/repository"
	"github.com/talleraustral/taller/internal/clock"
	documentdomain "github.com/talleraustral/taller/internal/document/domain"
	paymentdomain "github.com/talleraustral/taller/internal/payment/domain"
	"github.com/talleraustral/taller/internal/querycache"
	"github.com/talleraustral/taller/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupClientService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(
		&domain.Client{},
		&documentdomain.Document{},
		&paymentdomain.Payment{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    dbConn,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
		Cache: querycache.NewWithClock(clock.NewFakeClock(time.Now()), time.Minute),
	})
	return svc, dbConn, node
}

func TestCreateRequiresName(t *testing.T) {
	svc, _, _ := setupClientService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateClientRequest{Name: "   "})
	require.ErrorIs(t, err, domain.ErrInvalidName)

	created, err := svc.Create(ctx, domain.CreateClientRequest{Name: "  Carla Núñez  "})
	require.NoError(t, err)
	require.Equal(t, "Carla Núñez", created.Name)
}

func TestGetBalance(t *testing.T) {
	svc, dbConn, node := setupClientService(t)
	ctx := context.Background()

	cli, err := svc.Create(ctx, domain.CreateClientRequest{Name: "Carla"})
	require.NoError(t, err)

	now := time.Now().UTC()
	docs := []documentdomain.Document{
		{ID: node.Generate(), DocType: documentdomain.DocTypeFacturaB, ClientID: cli.ID, IssueDate: now, Total: 1000, Status: documentdomain.StatusEmitida},
		{ID: node.Generate(), DocType: documentdomain.DocTypeFacturaA, ClientID: cli.ID, IssueDate: now, Total: 500, Status: documentdomain.StatusPagada},
		// Cancelled invoices and receipts stay out of the billed total.
		{ID: node.Generate(), DocType: documentdomain.DocTypeFacturaB, ClientID: cli.ID, IssueDate: now, Total: 9999, Status: documentdomain.StatusCancelada},
		{ID: node.Generate(), DocType: documentdomain.DocTypeRecibo, ClientID: cli.ID, IssueDate: now, Total: 300, Status: documentdomain.StatusEmitida},
	}
	for i := range docs {
		docs[i].InvoiceNumber = "DOC-" + docs[i].ID.String()
		require.NoError(t, dbConn.Create(&docs[i]).Error)
	}

	payment := paymentdomain.Payment{
		ID:          node.Generate(),
		ClientID:    cli.ID,
		Amount:      600,
		Method:      paymentdomain.MethodEfectivo,
		PaymentDate: now,
	}
	require.NoError(t, dbConn.Create(&payment).Error)

	balance, err := svc.GetBalance(ctx, cli.ID.String())
	require.NoError(t, err)
	require.Equal(t, "Carla", balance.ClientName)
	require.Equal(t, 1500.0, balance.TotalBilled)
	require.Equal(t, 2, balance.InvoiceCount)
	require.Equal(t, 600.0, balance.TotalPaid)
	require.Equal(t, 900.0, balance.BalanceOwed)
}

func TestWhatsAppLink(t *testing.T) {
	svc, _, _ := setupClientService(t)
	ctx := context.Background()

	withPhone, err := svc.Create(ctx, domain.CreateClientRequest{
		Name:  "Carla",
		Phone: "+54 11 5555-0101",
	})
	require.NoError(t, err)

	link, err := svc.WhatsAppLink(ctx, withPhone.ID.String(), "Su equipo está listo")
	require.NoError(t, err)
	require.Contains(t, link, "https://wa.me/541155550101")
	require.Contains(t, link, "?text=")

	noPhone, err := svc.Create(ctx, domain.CreateClientRequest{Name: "Sin Teléfono"})
	require.NoError(t, err)

	_, err = svc.WhatsAppLink(ctx, noPhone.ID.String(), "hola")
	require.ErrorIs(t, err, domain.ErrMissingPhone)
}

func TestListSearchesNameEmailPhone(t *testing.T) {
	svc, _, _ := setupClientService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateClientRequest{Name: "Carla", Email: "carla@example.com"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateClientRequest{Name: "Bruno", Phone: "1155550101"})
	require.NoError(t, err)

	byEmail, err := svc.List(ctx, domain.ListClientRequest{Search: "carla@"})
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	require.Equal(t, "Carla", byEmail[0].Name)

	byPhone, err := svc.List(ctx, domain.ListClientRequest{Search: "5555"})
	require.NoError(t, err)
	require.Len(t, byPhone, 1)
	require.Equal(t, "Bruno", byPhone[0].Name)
}
