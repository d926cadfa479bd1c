// Package pdf genera el reporte de inventario en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Stock | Mínimo | Precio | Estado   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: total de productos y unidades                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"time"

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

	"github.com/stockyhq/stocky-api/internal/application/reporting"
	"github.com/stockyhq/stocky-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 40, Blue: 40}
)

var _ reporting.ReportGenerator = (*InventoryReportGenerator)(nil)

// InventoryReportGenerator implementa reporting.ReportGenerator con Maroto v2.
type InventoryReportGenerator struct{}

// NewInventoryReportGenerator construye el generador.
func NewInventoryReportGenerator() *InventoryReportGenerator { return &InventoryReportGenerator{} }

// InventoryReport genera el PDF del catálogo completo y devuelve sus bytes.
func (g *InventoryReportGenerator) InventoryReport(products []*entity.Product) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, p := range products {
		m.AddRows(productRow(p))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(summaryRow(products))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow() core.Row {
	fecha := time.Now().Format("02/01/2006 15:04")
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Reporte de Inventario", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Top: 5, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(size int, label string, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 1,
		}))
	}
	return row.New(7).Add(
		header(2, "SKU", align.Left),
		header(4, "Producto", align.Left),
		header(1, "Stock", align.Right),
		header(1, "Mínimo", align.Right),
		header(2, "Precio", align.Right),
		header(2, "Estado", align.Center),
	)
}

func productRow(p *entity.Product) core.Row {
	cell := func(size int, value string, a align.Type, color *props.Color) core.Col {
		return col.New(size).Add(text.New(value, props.Text{
			Size: 8, Align: a, Color: color, Top: 1,
		}))
	}
	statusColor := colorGray
	if p.Status == entity.StatusLowStock {
		statusColor = colorAlert
	}
	return row.New(6).Add(
		cell(2, p.SKU, align.Left, nil),
		cell(4, p.Name, align.Left, nil),
		cell(1, strconv.Itoa(p.Stock), align.Right, nil),
		cell(1, strconv.Itoa(p.MinStock), align.Right, nil),
		cell(2, p.Price.StringFixed(2), align.Right, nil),
		cell(2, p.Status, align.Center, statusColor),
	)
}

func summaryRow(products []*entity.Product) core.Row {
	totalUnits := 0
	for _, p := range products {
		totalUnits += p.Stock
	}
	resumen := fmt.Sprintf("%d productos · %d unidades en stock", len(products), totalUnits)
	return row.New(8).Add(
		col.New(12).Add(text.New(resumen, props.Text{
			Size: 9, Style: fontstyle.Bold, Top: 2, Align: align.Right,
		})),
	)
}
