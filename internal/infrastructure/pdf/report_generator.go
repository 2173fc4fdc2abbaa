// Package pdf implementa la exportación de reportes a PDF con Maroto v2.
//
// Layout de la página A4 (horizontal):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte       │  Fecha de generación     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: registros / valor / indicadores                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: detalle, una fila por registro                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: por producto o por categoría                       │
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
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/deliveryops-api/internal/application/dto"
	"github.com/jhoicas/deliveryops-api/internal/application/ports"
	"github.com/jhoicas/deliveryops-api/internal/infrastructure/export"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorHeader  = &props.Color{Red: 225, Green: 235, Blue: 245}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// ReportGenerator implementa ports.ReportExporter usando Maroto v2.
type ReportGenerator struct {
	author string
}

// NewReportGenerator construye el generador; author va en los metadatos del PDF.
func NewReportGenerator(author string) *ReportGenerator { return &ReportGenerator{author: author} }

func (g *ReportGenerator) Format() ports.ExportFormat { return ports.FormatPDF }

func (g *ReportGenerator) ContentType() string { return "application/pdf" }

// column describe una columna de la tabla de detalle (ancho en la grilla de 12).
type column struct {
	label string
	size  int
	align align.Type
}

var deliveryColumns = []column{
	{"Cliente", 2, align.Left},
	{"Produto", 2, align.Left},
	{"Qtd.", 1, align.Center},
	{"Valor", 1, align.Right},
	{"Data", 1, align.Center},
	{"Horário", 1, align.Center},
	{"Status", 1, align.Center},
	{"Motorista", 1, align.Left},
	{"Veículo", 2, align.Left},
}

var expenseColumns = []column{
	{"Nome", 3, align.Left},
	{"Categoria", 3, align.Left},
	{"Valor", 2, align.Right},
	{"Data", 1, align.Center},
	{"Observações", 3, align.Left},
}

var summaryColumns = []column{
	{"", 4, align.Left},
	{"Registros", 2, align.Center},
	{"Quantidade", 2, align.Right},
	{"Total", 2, align.Right},
	{"Média", 2, align.Right},
}

// ExportDeliveries genera el PDF del reporte de entregas.
func (g *ReportGenerator) ExportDeliveries(_ context.Context, rep *dto.DeliveryReportDTO) ([]byte, error) {
	m := g.newDocument("Relatório de Protocolos")

	m.AddRows(headerRow("RELATÓRIO DE PROTOCOLOS", rep.GeneratedOn))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(totalsRow([][2]string{
		{"Protocolos", strconv.Itoa(rep.Count)},
		{"Valor total", export.BRL(rep.TotalValue)},
		{"Quantidade", export.Number(rep.TotalQuantity)},
		{"Entregues", strconv.Itoa(rep.Delivered)},
		{"Pendentes", strconv.Itoa(rep.Pending)},
		{"Taxa de entrega", fmt.Sprintf("%d%%", rep.DeliveryRate)},
	}))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(deliveryColumns))
	for _, r := range rep.Rows {
		m.AddRows(tableRow(deliveryColumns, []string{
			r.ClientName, r.Products, export.Number(r.Quantity), export.BRL(r.Value),
			r.Date, r.Time, r.StatusLabel, r.Driver, r.Vehicle,
		}))
	}

	m.AddRows(summaryRows("Resumo por produto", rep.ByProduct)...)
	return generate(m)
}

// ExportExpenses genera el PDF del reporte de gastos.
func (g *ReportGenerator) ExportExpenses(_ context.Context, rep *dto.ExpenseReportDTO) ([]byte, error) {
	m := g.newDocument("Relatório de Despesas")

	m.AddRows(headerRow("RELATÓRIO DE DESPESAS", rep.GeneratedOn))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(totalsRow([][2]string{
		{"Despesas", strconv.Itoa(rep.Count)},
		{"Valor total", export.BRL(rep.TotalValue)},
		{"Média", export.BRL(rep.Average)},
	}))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(expenseColumns))
	for _, r := range rep.Rows {
		m.AddRows(tableRow(expenseColumns, []string{
			r.Name, r.Category, export.BRL(r.Value), r.Date, r.Notes,
		}))
	}

	m.AddRows(summaryRows("Resumo por categoria", rep.ByCategory)...)
	return generate(m)
}

func (g *ReportGenerator) newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(title, true).
		WithAuthor(nonEmpty(g.author, "deliveryops"), true).
		Build()
	return maroto.New(cfg)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación (der).
func headerRow(title, generatedOn string) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Gerado em: "+generatedOn, props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

// totalsRow: indicadores en bloques de igual ancho (máx. 6).
func totalsRow(items [][2]string) core.Row {
	if len(items) > 6 {
		items = items[:6]
	}
	size := 12 / max(len(items), 1)
	cols := make([]core.Col, 0, len(items))
	for _, it := range items {
		cols = append(cols, col.New(size).Add(
			text.New(it[0], props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(it[1], props.Text{Style: fontstyle.Bold, Size: 10, Top: 5, Align: align.Center}),
		))
	}
	return row.New(14).Add(cols...)
}

// tableHeaderRow: cabecera de la tabla con fondo claro.
func tableHeaderRow(columns []column) core.Row {
	cols := make([]core.Col, 0, len(columns))
	for _, c := range columns {
		cols = append(cols, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorHeader})
}

// tableRow: una fila de detalle; values sigue el orden de columns.
func tableRow(columns []column, values []string) core.Row {
	cols := make([]core.Col, 0, len(columns))
	for i, c := range columns {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		cols = append(cols, col.New(c.size).Add(text.New(v, props.Text{
			Size: 7.5, Align: c.align, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(7).Add(cols...)
}

// summaryRows: tabla de resumen por clave.
func summaryRows(title string, summary []dto.KeySummaryDTO) []core.Row {
	rows := []core.Row{
		row.New(4),
		line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}),
		row.New(8).Add(col.New(12).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
		)),
	}
	if len(summary) == 0 {
		return append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Nenhum registro no período.", props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	}
	rows = append(rows, tableHeaderRow(summaryColumns))
	for _, s := range summary {
		rows = append(rows, tableRow(summaryColumns, []string{
			s.Key, strconv.Itoa(s.Count), export.Number(s.Quantity), export.BRL(s.TotalValue), export.BRL(s.Average),
		}))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
