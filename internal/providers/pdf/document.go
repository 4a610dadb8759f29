package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	documentdomain "github.com/talleraustral/taller/internal/document/domain"
	"go.uber.org/fx"
)

// Module provides the PDF renderer.
var Module = fx.Module("pdf.provider",
	fx.Provide(New),
)

type Provider interface {
	RenderDocument(ctx context.Context, doc documentdomain.Document, clientName string) (io.Reader, error)
}

type renderer struct{}

func New() Provider {
	return &renderer{}
}

var docTitles = map[string]string{
	documentdomain.DocTypeFacturaA:    "Factura A",
	documentdomain.DocTypeFacturaB:    "Factura B",
	documentdomain.DocTypeFacturaC:    "Factura C",
	documentdomain.DocTypeRecibo:      "Recibo",
	documentdomain.DocTypePresupuesto: "Presupuesto",
}

func (r *renderer) RenderDocument(ctx context.Context, doc documentdomain.Document, clientName string) (io.Reader, error) {
	title, ok := docTitles[doc.DocType]
	if !ok {
		title = doc.DocType
	}

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(16,
		text.NewCol(6, title, props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		text.NewCol(6, doc.InvoiceNumber, props.Text{
			Size:  12,
			Align: align.Right,
			Top:   4,
		}),
	)

	m.AddRow(14,
		col.New(6).Add(
			text.New("Cliente: "+clientName, props.Text{Top: 0}),
			text.New("Fecha: "+doc.IssueDate.Format("02/01/2006"), props.Text{Top: 5}),
		),
		col.New(6).Add(
			text.New("Estado: "+doc.Status, props.Text{Top: 0, Align: align.Right}),
		),
	)

	if doc.AFIPCAE != "" {
		m.AddRow(8,
			text.NewCol(12, "CAE: "+doc.AFIPCAE, props.Text{Size: 9}),
		)
	}

	m.AddRow(4, line.NewCol(12))

	m.AddRow(8,
		text.NewCol(6, "Descripción", props.Text{Style: fontstyle.Bold}),
		text.NewCol(2, "Cant.", props.Text{Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Precio", props.Text{Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Importe", props.Text{Style: fontstyle.Bold, Align: align.Right}),
	)

	for _, item := range doc.Items {
		m.AddRow(7,
			text.NewCol(6, item.Description),
			text.NewCol(2, fmt.Sprintf("%d", item.Quantity), props.Text{Align: align.Right}),
			text.NewCol(2, formatAmount(item.UnitPrice), props.Text{Align: align.Right}),
			text.NewCol(2, formatAmount(item.Amount), props.Text{Align: align.Right}),
		)
	}

	m.AddRow(4, line.NewCol(12))

	m.AddRow(7,
		col.New(8),
		text.NewCol(2, "Subtotal", props.Text{Align: align.Right}),
		text.NewCol(2, formatAmount(doc.Subtotal), props.Text{Align: align.Right}),
	)
	m.AddRow(7,
		col.New(8),
		text.NewCol(2, "IVA 21%", props.Text{Align: align.Right}),
		text.NewCol(2, formatAmount(doc.Tax), props.Text{Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, formatAmount(doc.Total), props.Text{Style: fontstyle.Bold, Align: align.Right}),
	)

	result, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate pdf: %w", err)
	}
	return bytes.NewReader(result.GetBytes()), nil
}

func formatAmount(value float64) string {
	return fmt.Sprintf("$ %.2f", value)
}
