// Package pdf implementa la representación imprimible de una factura de
// venta del salón.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del salón  │  N° Factura + Fecha            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + Teléfono + Dirección                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SERVICIOS: Servicio | Precio | Descuento | Final           │
//	│  PRODUCTOS: Cant | Producto | P.Unit | Subtotal             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Servicios / Descuento / Productos / TOTAL         │
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
	"github.com/shopspring/decimal"

	appbilling "github.com/jhoicas/salon-pos-api/internal/application/billing"
	"github.com/jhoicas/salon-pos-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 128, Green: 0, Blue: 96}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoInvoiceGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoInvoiceGenerator struct {
	salonName string
}

// NewMarotoInvoiceGenerator construye el generador con el nombre del salón
// que encabeza el documento.
func NewMarotoInvoiceGenerator(salonName string) *MarotoInvoiceGenerator {
	return &MarotoInvoiceGenerator{salonName: salonName}
}

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoInvoiceGenerator) GenerateInvoicePDF(
	_ context.Context,
	invoice *entity.Invoice,
	customer *entity.Customer,
	services []*entity.InvoiceServiceLine,
	items []appbilling.InvoiceItemForPDF,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura de venta", true).
		WithAuthor(g.salonName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(invoice, g.salonName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if len(services) > 0 {
		m.AddRows(sectionTitleRow("SERVICIOS"))
		m.AddRows(serviceHeaderRow())
		for _, r := range serviceDetailRows(services) {
			m.AddRows(r)
		}
	}

	if len(items) > 0 {
		m.AddRows(sectionTitleRow("PRODUCTOS"))
		m.AddRows(itemHeaderRow())
		for _, r := range itemDetailRows(items) {
			m.AddRows(r)
		}
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(invoice))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del salón (izq) y N° Factura + Fecha (der).
func headerRow(invoice *entity.Invoice, salonName string) core.Row {
	fecha := invoice.Date.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(salonName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("FACTURA DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(invoice.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// customerRow: datos del cliente.
func customerRow(customer *entity.Customer) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(customer.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Tel: %s   |   Dirección: %s",
				nonEmpty(customer.Phone, "—"),
				nonEmpty(customer.Address, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		}),
	))
}

// serviceHeaderRow: cabecera de la tabla de servicios.
func serviceHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorGray, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Servicio", 6, align.Left),
		h("Precio", 2, align.Right),
		h("Descuento", 2, align.Right),
		h("Final", 2, align.Right),
	)
}

// serviceDetailRows: una fila por servicio facturado.
func serviceDetailRows(services []*entity.InvoiceServiceLine) []core.Row {
	result := make([]core.Row, 0, len(services))
	for _, s := range services {
		result = append(result, row.New(6).Add(
			col.New(6).Add(text.New(s.ServiceName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(money(s.Price),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(money(s.DiscountAmount),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(money(s.FinalPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// itemHeaderRow: cabecera de la tabla de productos.
func itemHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorGray, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("P.Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// itemDetailRows: una fila por producto vendido.
func itemDetailRows(items []appbilling.InvoiceItemForPDF) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		name := it.ProductName
		if name == "" {
			name = it.Line.ProductID
		}
		if it.Brand != "" {
			name += " (" + it.Brand + ")"
		}
		result = append(result, row.New(6).Add(
			col.New(1).Add(text.New(it.Line.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(money(it.Line.SellingUnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(money(it.Line.Subtotal),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(invoice *entity.Invoice) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(34).Add(
		col.New(3), // espacio izquierdo
		col.New(4).Add(
			label("Subtotal servicios:"),
			label("Descuento:"),
			label("Total servicios:"),
			label("Total productos:"),
			grandLabel("TOTAL:"),
		),
		col.New(3).Add(
			value(money(invoice.ServiceSubtotal)),
			value(money(invoice.ServiceDiscountAmount)),
			value(money(invoice.ServiceTotal)),
			value(money(invoice.ProductTotal)),
			grandValue(money(invoice.GrandTotal)),
		),
		col.New(2), // espacio derecho
	)
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("Gracias por su visita. Conserve este documento como soporte de su compra.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2, Align: align.Center}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// shortID recorta un UUID a su primer bloque para mostrarlo como número de factura.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return strings.ToUpper(id[:i])
	}
	return id
}
