package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/salon-pos-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo agregados de solo lectura sobre lotes, movimientos y facturas.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica. Pasar pool o tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// StockSummary agrega recibido/consumido/disponible por producto desde los
// lotes y, en paralelo, las salidas registradas en el libro. La columna
// ledger_outflow permite detectar deriva entre ambas fuentes.
func (r *AnalyticsRepo) StockSummary(ctx context.Context) ([]repository.StockSummaryRow, error) {
	query := `
		SELECT p.id, p.name, p.brand,
			COALESCE(SUM(l.quantity_received), 0) AS total_received,
			COALESCE(SUM(l.quantity_consumed), 0) AS total_consumed,
			COALESCE(SUM(CASE WHEN l.status = 'RUNNING'
				THEN l.quantity_received - l.quantity_consumed ELSE 0 END), 0) AS available,
			COALESCE((
				SELECT SUM(ABS(m.quantity_changed)) FROM stock_movements m
				WHERE m.product_id = p.id AND m.quantity_changed < 0
			), 0) AS ledger_outflow
		FROM products p
		LEFT JOIN stock_lots l ON l.product_id = p.id
		GROUP BY p.id, p.name, p.brand
		ORDER BY p.name ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("stock summary: %w", err)
	}
	defer rows.Close()

	var result []repository.StockSummaryRow
	for rows.Next() {
		var row repository.StockSummaryRow
		err := rows.Scan(&row.ProductID, &row.ProductName, &row.Brand,
			&row.TotalReceived, &row.TotalConsumed, &row.Available, &row.LedgerOutflow)
		if err != nil {
			return nil, fmt.Errorf("scan stock summary: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// Revenue totaliza la facturación en el rango [from, to].
func (r *AnalyticsRepo) Revenue(ctx context.Context, from, to time.Time) (*repository.RevenueSummary, error) {
	query := `
		SELECT COALESCE(SUM(service_total), 0), COALESCE(SUM(product_total), 0),
			COALESCE(SUM(grand_total), 0), COUNT(*)
		FROM invoices WHERE invoice_date >= $1 AND invoice_date <= $2`
	summary := &repository.RevenueSummary{From: from, To: to}
	err := r.q.QueryRow(ctx, query, from, to).Scan(
		&summary.ServiceTotal, &summary.ProductTotal, &summary.GrandTotal, &summary.InvoiceCount,
	)
	if err != nil {
		return nil, fmt.Errorf("revenue summary: %w", err)
	}
	return summary, nil
}

// TopProducts productos más vendidos por cantidad en el rango.
func (r *AnalyticsRepo) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]repository.TopProductRow, error) {
	query := `
		SELECT it.product_id, p.name, p.brand,
			COALESCE(SUM(it.quantity), 0) AS quantity_sold,
			COALESCE(SUM(it.subtotal), 0) AS revenue
		FROM invoice_items it
		JOIN invoices i ON i.id = it.invoice_id
		JOIN products p ON p.id = it.product_id
		WHERE i.invoice_date >= $1 AND i.invoice_date <= $2
		GROUP BY it.product_id, p.name, p.brand
		ORDER BY quantity_sold DESC
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()

	var result []repository.TopProductRow
	for rows.Next() {
		var row repository.TopProductRow
		err := rows.Scan(&row.ProductID, &row.ProductName, &row.Brand, &row.QuantitySold, &row.Revenue)
		if err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
