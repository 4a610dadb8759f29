package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"github.com/talleraustral/taller/internal/clock"
	"github.com/talleraustral/taller/internal/document/domain"
	"github.com/talleraustral/taller/internal/document/repository"
	"github.com/talleraustral/taller/internal/querycache"
	"github.com/talleraustral/taller/pkg/db"
	"go.uber.org/zap"
)

func setupDocumentService(t *testing.T) (domain.Service, *snowflake.Node, *clock.FakeClock) {
	t.Helper()

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(&domain.Document{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC))
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

func TestCreateFacturaAppliesIVA(t *testing.T) {
	svc, node, _ := setupDocumentService(t)
	ctx := context.Background()

	doc, err := svc.Create(ctx, domain.CreateDocumentRequest{
		DocType:  domain.DocTypeFacturaB,
		ClientID: node.Generate().String(),
		Subtotal: 1000,
		Items: []domain.LineItem{
			{Description: "Reparación", Quantity: 1, UnitPrice: 1000, Amount: 1000},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1000.0, doc.Subtotal)
	require.Equal(t, 210.0, doc.Tax)
	require.Equal(t, 1210.0, doc.Total)
	require.Equal(t, domain.StatusPendiente, doc.Status)
	require.Regexp(t, `^FB-0001-\d{8}$`, doc.InvoiceNumber)
}

func TestNumbersAreNeverReissuedAfterDelete(t *testing.T) {
	svc, node, _ := setupDocumentService(t)
	ctx := context.Background()
	clientID := node.Generate().String()

	create := func() domain.Document {
		doc, err := svc.Create(ctx, domain.CreateDocumentRequest{
			DocType:  domain.DocTypeFacturaB,
			ClientID: clientID,
			Subtotal: 100,
		})
		require.NoError(t, err)
		return doc
	}

	first := create()
	second := create()
	require.Equal(t, "FB-0001-00000001", first.InvoiceNumber)
	require.Equal(t, "FB-0001-00000002", second.InvoiceNumber)

	require.NoError(t, svc.Delete(ctx, first.ID.String()))

	third := create()
	require.Equal(t, "FB-0001-00000003", third.InvoiceNumber)
	require.NotEqual(t, second.InvoiceNumber, third.InvoiceNumber)
}

func TestCreateReciboIsUntaxed(t *testing.T) {
	svc, node, _ := setupDocumentService(t)
	ctx := context.Background()

	doc, err := svc.Create(ctx, domain.CreateDocumentRequest{
		DocType:  domain.DocTypeRecibo,
		ClientID: node.Generate().String(),
		Subtotal: 500,
	})
	require.NoError(t, err)
	require.Equal(t, 0.0, doc.Tax)
	require.Equal(t, 500.0, doc.Total)
	require.Regexp(t, `^RC-0001-\d{8}$`, doc.InvoiceNumber)
}

func TestCreateRejectsUnknownDocType(t *testing.T) {
	svc, node, _ := setupDocumentService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateDocumentRequest{
		DocType:  "nota_de_credito",
		ClientID: node.Generate().String(),
	})
	require.ErrorIs(t, err, domain.ErrInvalidDocType)
}

func TestConvertPresupuesto(t *testing.T) {
	svc, node, _ := setupDocumentService(t)
	ctx := context.Background()

	source, err := svc.Create(ctx, domain.CreateDocumentRequest{
		DocType:  domain.DocTypePresupuesto,
		ClientID: node.Generate().String(),
		Subtotal: 1000,
		Items: []domain.LineItem{
			{Description: "Cambio de pantalla", Quantity: 1, UnitPrice: 1000, Amount: 1000},
		},
	})
	require.NoError(t, err)

	factura, err := svc.ConvertPresupuesto(ctx, domain.ConvertPresupuestoRequest{ID: source.ID.String()})
	require.NoError(t, err)
	require.Equal(t, domain.DocTypeFacturaB, factura.DocType)
	require.Equal(t, source.Subtotal, factura.Subtotal)
	require.Equal(t, source.Tax, factura.Tax)
	require.Equal(t, source.Total, factura.Total)
	require.Equal(t, domain.StatusPendiente, factura.Status)
	require.Len(t, factura.Items, 1)
	require.NotEqual(t, source.InvoiceNumber, factura.InvoiceNumber)
	require.Regexp(t, `^FB-0001-\d{8}$`, factura.InvoiceNumber)

	// The source flips to Facturado inside the same transaction.
	reloaded, err := svc.GetByID(ctx, source.ID.String())
	require.NoError(t, err)
	require.Equal(t, domain.StatusFacturado, reloaded.Status)

	// A second conversion must refuse.
	_, err = svc.ConvertPresupuesto(ctx, domain.ConvertPresupuestoRequest{ID: source.ID.String()})
	require.ErrorIs(t, err, domain.ErrAlreadyConverted)
}

func TestConvertRejectsNonPresupuesto(t *testing.T) {
	svc, node, _ := setupDocumentService(t)
	ctx := context.Background()

	factura, err := svc.Create(ctx, domain.CreateDocumentRequest{
		DocType:  domain.DocTypeFacturaA,
		ClientID: node.Generate().String(),
		Subtotal: 100,
	})
	require.NoError(t, err)

	_, err = svc.ConvertPresupuesto(ctx, domain.ConvertPresupuestoRequest{ID: factura.ID.String()})
	require.ErrorIs(t, err, domain.ErrNotPresupuesto)
}

func TestGenerateAFIP(t *testing.T) {
	svc, node, fake := setupDocumentService(t)
	ctx := context.Background()

	doc, err := svc.Create(ctx, domain.CreateDocumentRequest{
		DocType:  domain.DocTypeFacturaB,
		ClientID: node.Generate().String(),
		Subtotal: 100,
	})
	require.NoError(t, err)

	issued, err := svc.GenerateAFIP(ctx, doc.ID.String())
	require.NoError(t, err)
	require.Equal(t, domain.AFIPStatusAprobado, issued.AFIPStatus)
	require.Len(t, issued.AFIPCAE, 14)
	require.Equal(t, domain.StatusEmitida, issued.Status)
	require.NotNil(t, issued.AFIPExpiration)
	require.Equal(t, fake.Now().AddDate(0, 0, 30), issued.AFIPExpiration.UTC())

	// Idempotence guard: a second issuance refuses.
	_, err = svc.GenerateAFIP(ctx, doc.ID.String())
	require.ErrorIs(t, err, domain.ErrAFIPAlreadyIssued)

	// Authorization is deterministic per document.
	reloaded, err := svc.GetByID(ctx, doc.ID.String())
	require.NoError(t, err)
	require.Equal(t, issued.AFIPCAE, reloaded.AFIPCAE)
}

func TestGenerateAFIPRejectsNonFactura(t *testing.T) {
	svc, node, _ := setupDocumentService(t)
	ctx := context.Background()

	recibo, err := svc.Create(ctx, domain.CreateDocumentRequest{
		DocType:  domain.DocTypeRecibo,
		ClientID: node.Generate().String(),
		Subtotal: 100,
	})
	require.NoError(t, err)

	_, err = svc.GenerateAFIP(ctx, recibo.ID.String())
	require.ErrorIs(t, err, domain.ErrNotFactura)
}
