// Package pdf genera la hoja de producción de un pedido.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Taller + título     │  N° Pedido + Estado          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + documento + contacto                     │
//	│  FECHAS: Registro / Entrega / Tiempo restante               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Prendas / TOTAL                                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  AVANCE: % + conteos  │  QR con el ID del pedido            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/Confecciones-api/internal/application/reports"
	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
	"github.com/jhoicas/Confecciones-api/internal/domain/production"
)

var _ reports.OrderSheetPDFGenerator = (*MarotoOrderSheetGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoOrderSheetGenerator implementa reports.OrderSheetPDFGenerator usando Maroto v2.
type MarotoOrderSheetGenerator struct {
	shopName string
}

// NewMarotoOrderSheetGenerator construye el generador; shopName va en el encabezado.
func NewMarotoOrderSheetGenerator(shopName string) *MarotoOrderSheetGenerator {
	return &MarotoOrderSheetGenerator{shopName: shopName}
}

// GenerateOrderSheet genera el PDF y devuelve sus bytes.
func (g *MarotoOrderSheetGenerator) GenerateOrderSheet(_ context.Context, sheet reports.OrderSheet) ([]byte, error) {
	if sheet.Order == nil {
		return nil, fmt.Errorf("pdf: pedido requerido")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Hoja de producción", true).
		WithAuthor(g.shopName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.shopName, sheet.Order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(sheet.Order, sheet.Customer))
	m.AddRows(datesRow(sheet))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(itemRows(sheet.Order.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(sheet.Order))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(progressRow(sheet.Order.ID, sheet.Progress))
	m.AddRows(footerRow(sheet))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(shopName string, o *entity.Order) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(shopName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("HOJA DE PRODUCCIÓN", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PEDIDO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(o.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Estado: "+o.Status.Label(), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func customerRow(o *entity.Order, c *entity.Customer) core.Row {
	name := nonEmpty(o.CustomerName, "—")
	detail := "—"
	if c != nil {
		name = c.Name
		detail = fmt.Sprintf("%s %s   |   Email: %s   |   Tel: %s",
			c.DocumentType, c.DocumentNumber,
			nonEmpty(c.Email, "—"),
			nonEmpty(c.Phone, "—"),
		)
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(detail, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func datesRow(sheet reports.OrderSheet) core.Row {
	o := sheet.Order
	remaining := formatRemaining(sheet.Progress.Remaining)
	remainingColor := colorGray
	if sheet.Progress.Overdue {
		remaining = "VENCIDO (" + remaining + ")"
		remainingColor = colorAlert
	}
	cell := func(label, value string, c *props.Color) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 7, Color: colorPrimary, Top: 1}),
			text.New(value, props.Text{Size: 9, Top: 5, Color: c}),
		)
	}
	return row.New(11).Add(
		cell("REGISTRO", o.RegisteredAt.Format("02/01/2006"), colorGray),
		cell("ENTREGA", o.DueDate.Format("02/01/2006 15:04"), colorGray),
		cell("TIEMPO RESTANTE", remaining, remainingColor),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// itemRows una fila por línea del pedido.
func itemRows(items []entity.OrderItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				nonEmpty(it.ProductName, it.ProductID),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(it.UnitPrice.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"$"+formatMoney(it.Subtotal().StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func totalsRow(o *entity.Order) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	grand := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 6,
		})
	}
	return row.New(16).Add(
		col.New(6),
		col.New(3).Add(
			label("Prendas:"),
			text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 6}),
		),
		col.New(3).Add(
			text.New(fmt.Sprintf("%d", o.ItemCount()), props.Text{Size: 9, Align: align.Right, Right: 1}),
			grand("$"+formatMoney(o.Total().StringFixed(0))),
		),
	)
}

// progressRow avance de producción a la izquierda y QR del pedido a la derecha.
func progressRow(orderID string, p production.Progress) core.Row {
	return row.New(40).Add(
		col.New(8).Add(
			text.New("AVANCE DE PRODUCCIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(p.PercentComplete.StringFixed(2)+"%", props.Text{
				Style: fontstyle.Bold, Size: 18, Top: 7, Color: colorPrimary,
			}),
			text.New(fmt.Sprintf("Asignaciones: %d   |   Completadas: %d   |   En progreso: %d   |   Pendientes: %d",
				p.Total, p.Completed, p.InProgress, p.Pending,
			), props.Text{Size: 8, Top: 20, Color: colorGray}),
		),
		col.New(4).Add(code.NewQr(orderID, props.Rect{Percent: 90, Center: true})),
	)
}

func footerRow(sheet reports.OrderSheet) core.Row {
	notes := ""
	if sheet.Order.Notes != "" {
		notes = "Notas: " + sheet.Order.Notes + "   |   "
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(notes+"Generado: "+sheet.GeneratedAt.Format("02/01/2006 15:04"),
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "-1000000" → "-1.000.000"
func formatMoney(s string) string {
	sign := ""
	if len(s) > 0 && s[0] == '-' {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}

func formatRemaining(t production.TimeRemaining) string {
	return fmt.Sprintf("%dd %dh %dm", t.Days, t.Hours, t.Minutes)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
