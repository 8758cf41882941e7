// Package pdf implementa el estado de cuenta de una sesión de carga con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Conductor + Tipo de aceite  │  N° Sesión + Fecha   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Cargado / Cargas plegadas / Estado                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | N° | Tipo | Sucursal | Litros                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Total cargado / Total descontado / SALDO           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/onedelivery/onedelivery-api/internal/application/report"
	"github.com/onedelivery/onedelivery-api/internal/domain/entity"
)

var _ report.StatementPDFGenerator = (*MarotoStatementGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoStatementGenerator implementa report.StatementPDFGenerator usando Maroto v2.
type MarotoStatementGenerator struct{}

// NewMarotoStatementGenerator construye el generador.
func NewMarotoStatementGenerator() *MarotoStatementGenerator { return &MarotoStatementGenerator{} }

// Generate genera el PDF del estado de cuenta y devuelve sus bytes.
func (g *MarotoStatementGenerator) Generate(
	_ context.Context,
	session *entity.LoadSession,
	txs []*entity.Transaction,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estado de cuenta de sesión de carga", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(session))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(session))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(txs) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(session, txs))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: conductor + tipo de aceite (izq) y N° de sesión + fecha (der).
func headerRow(session *entity.LoadSession) core.Row {
	fecha := session.CreatedAt.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(session.DriverName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Aceite: "+session.OilTypeName, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ESTADO DE CUENTA DE SESIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(session.ID, props.Text{
				Size: 8, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// summaryRow: cargado, cargas plegadas y estado actual de la sesión.
func summaryRow(session *entity.LoadSession) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("RESUMEN DE LA SESIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Cargado: %s L   |   Cargas: %d   |   Estado: %s",
				session.TotalLoadedLiters.String(), session.LoadCount, session.Status,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de transacciones.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("N° Transacción", 3, align.Left),
		h("Tipo", 2, align.Center),
		h("Sucursal", 3, align.Left),
		h("Litros", 2, align.Right),
	)
}

// tableRows: una fila por transacción de la sesión, en orden cronológico.
// Las cantidades de supply/delivery se muestran con signo negativo: descuentan saldo.
func tableRows(txs []*entity.Transaction) []core.Row {
	result := make([]core.Row, 0, len(txs))
	for _, t := range txs {
		qty := t.Quantity()
		if t.Consumes() {
			qty = qty.Neg()
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				t.CreatedAt.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				t.TransactionNo,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				txTypeLabel(t.Type),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				t.BranchName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				qty.String()+" L",
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: total cargado, total descontado y saldo derivado.
// El saldo en rojo cuando la sesión está sobregirada.
func totalsRow(session *entity.LoadSession, txs []*entity.Transaction) core.Row {
	consumed := decimal.Zero
	for _, t := range txs {
		if t.Consumes() {
			consumed = consumed.Add(t.Quantity())
		}
	}

	balanceColor := colorPrimary
	if session.Overdrawn() {
		balanceColor = colorAlert
	}

	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}

	return row.New(26).Add(
		col.New(3),
		col.New(4).Add(
			label("Total cargado:"),
			label("Total descontado:"),
			text.New("SALDO RESTANTE:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: balanceColor, Right: 2,
			}),
		),
		col.New(3).Add(
			value(session.TotalLoadedLiters.String()+" L"),
			value(consumed.String()+" L"),
			text.New(session.RemainingLiters.String()+" L", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: balanceColor, Right: 1,
			}),
		),
		col.New(2),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func txTypeLabel(t string) string {
	switch t {
	case entity.TxTypeLoading:
		return "Carga"
	case entity.TxTypeSupply:
		return "Suministro"
	case entity.TxTypeDelivery:
		return "Entrega"
	}
	return t
}
