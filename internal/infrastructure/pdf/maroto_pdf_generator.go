// Package pdf genera el documento PDF de una factura con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa emisora      │  INVOICE N° + Fecha + Vence  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FROM: datos del emisor       │  BILL TO: datos del cliente  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Descripción | Cant. | Tarifa | Importe               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Impuesto / TOTAL                        │
//	│  NOTAS y CONDICIONES                                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	"github.com/jhoicas/Facturador-api/internal/application/export"
	domainbilling "github.com/jhoicas/Facturador-api/internal/domain/billing"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/pkg/currency"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ export.Renderer = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa export.Renderer para el formato pdf.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// ContentType tipo MIME del documento.
func (g *MarotoPDFGenerator) ContentType() string { return "application/pdf" }

// Render genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) Render(_ context.Context, invoice *entity.Invoice) ([]byte, error) {
	if invoice == nil {
		return nil, fmt.Errorf("pdf: factura nula")
	}
	cur := domainbilling.ResolveCurrency(invoice)

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+invoice.InvoiceNumber, true).
		WithAuthor(nonEmpty(invoice.Company.Name, "Facturador"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(invoice.Items, cur)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(invoice, cur))

	if rows := footerRows(invoice); len(rows) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(rows...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del emisor (izq) y número + fechas (der).
func headerRow(invoice *entity.Invoice) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New(nonEmpty(invoice.Company.Name, "-"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(taxLine(invoice.Company), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(invoice.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New("Fecha: "+invoice.Date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
			text.New("Vence: "+invoice.DueDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 17, Color: colorGray,
			}),
		),
	)
}

// partiesRow: bloques FROM (emisor) y BILL TO (cliente).
func partiesRow(invoice *entity.Invoice) core.Row {
	c := invoice.Company
	cl := invoice.Client
	return row.New(26).Add(
		col.New(6).Add(addressBlock("FROM", c.Name, c.Address, c.City, c.PostalCode, c.Country, c.Email)...),
		col.New(6).Add(addressBlock("BILL TO", cl.Name, cl.Address, cl.City, cl.PostalCode, cl.Country, cl.Email)...),
	)
}

func addressBlock(title, name, address, city, postal, country, email string) []core.Component {
	cityLine := strings.TrimSpace(strings.Join(nonBlank(postal, city), " "))
	return []core.Component{
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(nonEmpty(name, "-"), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		text.New(nonEmpty(address, "-"), props.Text{Size: 8, Top: 12, Color: colorGray}),
		text.New(strings.Join(nonBlank(cityLine, country), ", "), props.Text{Size: 8, Top: 16, Color: colorGray}),
		text.New(email, props.Text{Size: 8, Top: 20, Color: colorGray}),
	}
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Descripción", 6, align.Left),
		h("Cant.", 1, align.Center),
		h("Tarifa", 2, align.Right),
		h("Importe", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por línea de la factura.
func tableDetailRows(items []entity.InvoiceItem, cur string) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(6).Add(text.New(
				nonEmpty(it.Description, "-"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				it.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				currency.Format(it.Rate, cur),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				currency.Format(domainbilling.LineAmount(it), cur),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(invoice *entity.Invoice, cur string) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grand := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: top,
		})
	}

	subtotal := domainbilling.Subtotal(invoice.Items)
	tax := domainbilling.Tax(subtotal, invoice.TaxRate)
	taxLabel := "Impuesto (" + invoice.TaxRate.String() + "%):"

	labels := col.New(3).Add(
		label("Subtotal:"),
		text.New(taxLabel, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 6}),
		text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 12}),
	)
	values := col.New(3).Add(
		value(currency.Format(subtotal, cur), 0),
		value(currency.Format(tax, cur), 6),
		grand(currency.Format(domainbilling.GrandTotal(subtotal, invoice.TaxRate), cur), 12),
	)
	return row.New(20).Add(col.New(6), labels, values)
}

// footerRows: notas y condiciones de pago, si existen.
func footerRows(invoice *entity.Invoice) []core.Row {
	var rows []core.Row
	add := func(title, body string) {
		if strings.TrimSpace(body) == "" {
			return
		}
		rows = append(rows,
			row.New(6).Add(col.New(12).Add(text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}))),
			row.New(10).Add(col.New(12).Add(text.New(body, props.Text{
				Size: 8, Color: colorGray, Top: 1,
			}))),
		)
	}
	add("NOTAS", invoice.Notes)
	add("CONDICIONES", invoice.Terms)
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func taxLine(c entity.CompanyTemplate) string {
	if c.TaxID == "" {
		return c.Email
	}
	return "Tax ID: " + c.TaxID
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func nonBlank(parts ...string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}
