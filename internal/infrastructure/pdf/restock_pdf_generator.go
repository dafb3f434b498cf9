// Package pdf genera la lista de reposición (compra) en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Lista de la compra  │  Fecha + N° de artículos     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Artículo | Categoría | Hay | Mín | Comprar       │
//	│         código de barras bajo cada artículo que lo tenga     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de unidades a comprar                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

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

	"github.com/jhoicas/home-inventory/internal/application/inventory"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ inventory.RestockPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa inventory.RestockPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	now func() time.Time
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator {
	return &MarotoPDFGenerator{now: time.Now}
}

// GenerateRestockPDF genera el PDF y devuelve sus bytes. Una lista vacía produce el documento
// con la leyenda "nada que reponer".
func (g *MarotoPDFGenerator) GenerateRestockPDF(_ context.Context, list []inventory.RestockSuggestion) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Lista de reposición", true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(g.now(), len(list)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if len(list) == 0 {
		m.AddRows(row.New(12).Add(col.New(12).Add(text.New("Nada que reponer.", props.Text{
			Size: 10, Top: 4, Align: align.Center, Color: colorGray,
		}))))
	} else {
		m.AddRows(tableHeaderRow())
		for _, s := range list {
			m.AddRows(itemRows(s)...)
		}
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(totalRow(list))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(now time.Time, count int) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("LISTA DE LA COMPRA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Artículos por debajo de su mínimo", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Fecha: "+now.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(fmt.Sprintf("%d artículo(s)", count), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 8,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Artículo", 4, align.Left),
		h("Categoría", 3, align.Left),
		h("Hay", 1, align.Center),
		h("Mín.", 1, align.Center),
		h("Comprar", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// itemRows fila del artículo y, si tiene código, una fila con el código de barras.
func itemRows(s inventory.RestockSuggestion) []core.Row {
	name := s.ItemName
	if name == "" {
		name = "(sin nombre)"
	}
	category := "-"
	if s.CategoryName != nil && *s.CategoryName != "" {
		category = *s.CategoryName
	}
	cell := func(v string, size int, a align.Type, bold bool) core.Col {
		p := props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}
		if bold {
			p.Style = fontstyle.Bold
		}
		return col.New(size).Add(text.New(v, p))
	}
	rows := []core.Row{row.New(7).Add(
		cell(strconv.Itoa(s.Priority), 1, align.Center, false),
		cell(name, 4, align.Left, true),
		cell(category, 3, align.Left, false),
		cell(strconv.FormatInt(s.Quantity, 10), 1, align.Center, false),
		cell(strconv.FormatInt(s.MinThreshold, 10), 1, align.Center, false),
		cell(strconv.FormatInt(s.SuggestedQty, 10), 2, align.Right, true),
	)}
	if s.Barcode != nil && *s.Barcode != "" {
		rows = append(rows, row.New(12).Add(
			col.New(1),
			col.New(4).Add(code.NewBar(*s.Barcode, props.Barcode{Percent: 90})),
			col.New(7).Add(text.New(*s.Barcode, props.Text{Size: 7, Top: 4, Left: 2, Color: colorGray})),
		))
	}
	return rows
}

func totalRow(list []inventory.RestockSuggestion) core.Row {
	var total int64
	for _, s := range list {
		total += s.SuggestedQty
	}
	return row.New(10).Add(
		col.New(10).Add(text.New("Total de unidades a comprar", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Right: 2,
		})),
		col.New(2).Add(text.New(strconv.FormatInt(total, 10), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2, Right: 1, Color: colorPrimary,
		})),
	)
}
