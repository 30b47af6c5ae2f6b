// Package pdf genera el informe de pedidos (Laporan Pesanan) con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  POR PEDIDO: id / customer / fecha / status                  │
//	│     TABLA: Produk | Qty | Harga | Subtotal                   │
//	│     total_amount del pedido                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: número de pedidos + total general                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jhoicas/backoffice-umkm/internal/application/report"
	"github.com/jhoicas/backoffice-umkm/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ report.OrderReportGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa report.OrderReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	author string
}

// NewMarotoPDFGenerator construye el generador. author aparece en los metadatos del PDF.
func NewMarotoPDFGenerator(author string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{author: nonEmpty(author, "Back Office")}
}

// GenerateOrderReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateOrderReport(_ context.Context, r *report.OrderReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Laporan Pesanan", true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if len(r.Orders) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Belum ada pesanan.", props.Text{Size: 9, Align: align.Center, Top: 3, Color: colorGray}),
		)))
	}
	for _, s := range r.Orders {
		m.AddRows(orderRows(s)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(r))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r *report.OrderReport) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("LAPORAN PESANAN", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Dibuat: "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

// orderRows cabecera del pedido, una fila por línea y el total del pedido.
func orderRows(s report.OrderSummary) []core.Row {
	o := s.Order
	rows := []core.Row{
		row.New(8).Add(
			col.New(6).Add(text.New("Pesanan "+o.OrderID.String(), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 2,
			})),
			col.New(6).Add(text.New(
				fmt.Sprintf("Customer: %s   |   Tanggal: %s   |   Status: %s",
					nonEmpty(o.CustomerID.String(), "-"), nonEmpty(o.OrderDate, "-"), nonEmpty(string(o.Status), "-")),
				props.Text{Size: 8, Align: align.Right, Top: 3, Color: colorGray},
			)),
		),
		tableHeaderRow(),
	}

	for _, l := range s.Lines {
		rows = append(rows, row.New(6).Add(
			col.New(6).Add(text.New(l.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(strconv.Itoa(l.Item.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(money.Rupiah(l.Item.Price), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(3).Add(text.New(money.Rupiah(l.Subtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}

	rows = append(rows, row.New(7).Add(
		col.New(6),
		col.New(3).Add(text.New("Total pesanan:", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1})),
		col.New(3).Add(text.New(money.Rupiah(o.TotalAmount), props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1})),
	))
	if !s.ItemsTotal.Equal(o.TotalAmount) && len(s.Lines) > 0 {
		rows = append(rows, row.New(5).Add(
			col.New(12).Add(text.New("Jumlah item: "+money.Rupiah(s.ItemsTotal), props.Text{
				Size: 7, Align: align.Right, Color: colorGray, Right: 1,
			})),
		))
	}
	return rows
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Produk", 6, align.Left),
		h("Qty", 1, align.Center),
		h("Harga", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func totalsRow(r *report.OrderReport) core.Row {
	return row.New(14).Add(
		col.New(6).Add(text.New(fmt.Sprintf("Jumlah pesanan: %d", len(r.Orders)), props.Text{
			Size: 9, Top: 2, Color: colorGray,
		})),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New(money.Rupiah(r.GrandTotal), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
