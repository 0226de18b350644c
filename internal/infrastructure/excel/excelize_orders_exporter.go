// Package excel exporta el listado de pedidos a un libro .xlsx.
package excel

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Confecciones-api/internal/application/reports"
	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
)

var _ reports.OrdersExcelExporter = (*OrdersExporter)(nil)

const (
	ordersSheet  = "Pedidos"
	summarySheet = "Resumen"
)

var orderColumns = []struct {
	title string
	width float64
}{
	{"Pedido", 38},
	{"Cliente", 32},
	{"Registro", 12},
	{"Entrega", 12},
	{"Estado", 15},
	{"Prendas", 10},
	{"Total", 16},
	{"% Avance", 10},
	{"Vencido", 9},
}

// OrdersExporter implementa reports.OrdersExcelExporter con excelize.
type OrdersExporter struct{}

// NewOrdersExporter construye el exportador.
func NewOrdersExporter() *OrdersExporter { return &OrdersExporter{} }

// ExportOrders escribe una fila por pedido en la hoja Pedidos y los conteos por
// estado en la hoja Resumen.
func (e *OrdersExporter) ExportOrders(_ context.Context, rows []reports.OrderRow, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", ordersSheet); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}
	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	for i, c := range orderColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(ordersSheet, cell, c.title); err != nil {
			return nil, fmt.Errorf("excel: encabezado: %w", err)
		}
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(ordersSheet, name, name, c.width); err != nil {
			return nil, fmt.Errorf("excel: ancho de columna: %w", err)
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(orderColumns))
	if err := f.SetCellStyle(ordersSheet, "A1", lastCol+"1", st.header); err != nil {
		return nil, fmt.Errorf("excel: estilo encabezado: %w", err)
	}
	if err := f.SetPanes(ordersSheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("excel: fijar encabezado: %w", err)
	}

	byStatus := make(map[entity.OrderStatus]int)
	for i, r := range rows {
		o := r.Order
		byStatus[o.Status]++
		overdue := "No"
		if r.Progress.Overdue {
			overdue = "Sí"
		}
		values := []any{
			o.ID,
			o.CustomerName,
			o.RegisteredAt,
			o.DueDate,
			o.Status.Label(),
			o.ItemCount(),
			o.Total().InexactFloat64(),
			r.Progress.PercentComplete.InexactFloat64(),
			overdue,
		}
		rowNum := i + 2
		start, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(ordersSheet, start, &values); err != nil {
			return nil, fmt.Errorf("excel: fila %d: %w", rowNum, err)
		}
		if err := applyRowStyles(f, rowNum, st); err != nil {
			return nil, err
		}
	}

	if len(rows) > 0 {
		if err := f.AutoFilter(ordersSheet, fmt.Sprintf("A1:%s%d", lastCol, len(rows)+1), nil); err != nil {
			return nil, fmt.Errorf("excel: autofiltro: %w", err)
		}
	}

	if err := writeSummary(f, st, byStatus, len(rows), generatedAt); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

type styles struct {
	header, date, money, percent int
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error
	if st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"00467F"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return st, fmt.Errorf("excel: estilo encabezado: %w", err)
	}
	dateFmt := "dd/mm/yyyy"
	if st.date, err = f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt}); err != nil {
		return st, fmt.Errorf("excel: estilo fecha: %w", err)
	}
	moneyFmt := "$#,##0"
	if st.money, err = f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt}); err != nil {
		return st, fmt.Errorf("excel: estilo moneda: %w", err)
	}
	pctFmt := "0.00"
	if st.percent, err = f.NewStyle(&excelize.Style{CustomNumFmt: &pctFmt}); err != nil {
		return st, fmt.Errorf("excel: estilo porcentaje: %w", err)
	}
	return st, nil
}

func applyRowStyles(f *excelize.File, rowNum int, st styles) error {
	for _, s := range []struct {
		from, to string
		id       int
	}{
		{"C", "D", st.date},
		{"G", "G", st.money},
		{"H", "H", st.percent},
	} {
		if err := f.SetCellStyle(ordersSheet, fmt.Sprintf("%s%d", s.from, rowNum), fmt.Sprintf("%s%d", s.to, rowNum), s.id); err != nil {
			return fmt.Errorf("excel: estilo fila %d: %w", rowNum, err)
		}
	}
	return nil
}

func writeSummary(f *excelize.File, st styles, byStatus map[entity.OrderStatus]int, total int, generatedAt time.Time) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("excel: hoja resumen: %w", err)
	}
	set := func(cell string, v any) error {
		if err := f.SetCellValue(summarySheet, cell, v); err != nil {
			return fmt.Errorf("excel: resumen %s: %w", cell, err)
		}
		return nil
	}
	if err := set("A1", "Generado"); err != nil {
		return err
	}
	if err := set("B1", generatedAt.Format("02/01/2006 15:04")); err != nil {
		return err
	}
	if err := set("A3", "Estado"); err != nil {
		return err
	}
	if err := set("B3", "Pedidos"); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "A3", "B3", st.header); err != nil {
		return fmt.Errorf("excel: estilo resumen: %w", err)
	}
	rowNum := 4
	for _, s := range entity.AllOrderStatuses {
		if err := set(fmt.Sprintf("A%d", rowNum), s.Label()); err != nil {
			return err
		}
		if err := set(fmt.Sprintf("B%d", rowNum), byStatus[s]); err != nil {
			return err
		}
		rowNum++
	}
	if err := set(fmt.Sprintf("A%d", rowNum), "Total"); err != nil {
		return err
	}
	return set(fmt.Sprintf("B%d", rowNum), total)
}
