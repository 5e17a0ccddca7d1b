package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/salon-pos-api/internal/domain"
	"github.com/jhoicas/salon-pos-api/internal/domain/entity"
	"github.com/jhoicas/salon-pos-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, customer_id, invoice_date, service_subtotal, service_discount_percent,
	service_discount_amount, service_total, product_total, grand_total, created_at`

// InvoiceRepo implementación de InvoiceRepository sobre PostgreSQL.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador de facturas. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create inserta la cabecera de la factura.
func (r *InvoiceRepo) Create(inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.CustomerID, inv.Date, inv.ServiceSubtotal, inv.ServiceDiscountPercent,
		inv.ServiceDiscountAmount, inv.ServiceTotal, inv.ProductTotal, inv.GrandTotal, inv.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateServiceLine inserta una línea de servicio.
func (r *InvoiceRepo) CreateServiceLine(line *entity.InvoiceServiceLine) error {
	query := `
		INSERT INTO invoice_services (id, invoice_id, service_name, price, discount_amount, final_price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.InvoiceID, line.ServiceName, line.Price, line.DiscountAmount, line.FinalPrice,
	)
	if err != nil {
		return fmt.Errorf("insert invoice service line: %w", err)
	}
	return nil
}

// CreateItemLine inserta una línea de producto.
func (r *InvoiceRepo) CreateItemLine(line *entity.InvoiceItemLine) error {
	query := `
		INSERT INTO invoice_items (id, invoice_id, product_id, quantity, selling_unit_price, actual_unit_cost, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.InvoiceID, line.ProductID, line.Quantity,
		line.SellingUnitPrice, line.ActualUnitCost, line.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert invoice item line: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una factura.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// GetServiceLines lista las líneas de servicio de una factura.
func (r *InvoiceRepo) GetServiceLines(invoiceID string) ([]*entity.InvoiceServiceLine, error) {
	query := `
		SELECT id, invoice_id, service_name, price, discount_amount, final_price
		FROM invoice_services WHERE invoice_id = $1 ORDER BY id ASC`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice service lines: %w", err)
	}
	defer rows.Close()

	var lines []*entity.InvoiceServiceLine
	for rows.Next() {
		var l entity.InvoiceServiceLine
		err := rows.Scan(&l.ID, &l.InvoiceID, &l.ServiceName, &l.Price, &l.DiscountAmount, &l.FinalPrice)
		if err != nil {
			return nil, fmt.Errorf("scan invoice service line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// GetItemLines lista las líneas de producto de una factura.
func (r *InvoiceRepo) GetItemLines(invoiceID string) ([]*entity.InvoiceItemLine, error) {
	query := `
		SELECT id, invoice_id, product_id, quantity, selling_unit_price, actual_unit_cost, subtotal
		FROM invoice_items WHERE invoice_id = $1 ORDER BY id ASC`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice item lines: %w", err)
	}
	defer rows.Close()

	var lines []*entity.InvoiceItemLine
	for rows.Next() {
		var l entity.InvoiceItemLine
		err := rows.Scan(&l.ID, &l.InvoiceID, &l.ProductID, &l.Quantity,
			&l.SellingUnitPrice, &l.ActualUnitCost, &l.Subtotal)
		if err != nil {
			return nil, fmt.Errorf("scan invoice item line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// List lista facturas paginadas, más recientes primero.
func (r *InvoiceRepo) List(limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices
		ORDER BY invoice_date DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.CustomerID, &inv.Date, &inv.ServiceSubtotal, &inv.ServiceDiscountPercent,
		&inv.ServiceDiscountAmount, &inv.ServiceTotal, &inv.ProductTotal, &inv.GrandTotal, &inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
