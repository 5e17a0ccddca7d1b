package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/salon-pos-api/internal/domain"
	"github.com/jhoicas/salon-pos-api/internal/domain/entity"
	"github.com/jhoicas/salon-pos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.LotRepository = (*LotRepo)(nil)

const lotColumns = `id, product_id, received_date, quantity_received, quantity_consumed,
	actual_unit_cost, selling_unit_price, status, notes, created_at`

// Orden FIFO: fecha de recepción ascendente con desempate por id para que
// el recorrido sea total y estable aunque dos lotes compartan fecha.
const lotFIFOOrder = ` ORDER BY received_date ASC, id ASC`

// LotRepo implementación de LotRepository sobre PostgreSQL (usable con pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

// Create inserta un lote nuevo.
func (r *LotRepo) Create(lot *entity.Lot) error {
	query := `
		INSERT INTO stock_lots (` + lotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.ProductID, lot.ReceivedDate, lot.QuantityReceived, lot.QuantityConsumed,
		lot.ActualUnitCost, lot.SellingUnitPrice, lot.Status, lot.Notes, lot.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *LotRepo) GetByID(id string) (*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM stock_lots WHERE id = $1`
	lot, err := scanLot(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return lot, nil
}

// ListRunning lista los lotes RUNNING de un producto en orden FIFO.
func (r *LotRepo) ListRunning(productID string) ([]*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM stock_lots
		WHERE product_id = $1 AND status = 'RUNNING'` + lotFIFOOrder
	return r.list(query, productID)
}

// ListRunningForUpdate lista los lotes RUNNING en orden FIFO bloqueando las
// filas (SELECT FOR UPDATE) para serializar el consumo por producto.
func (r *LotRepo) ListRunningForUpdate(productID string) ([]*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM stock_lots
		WHERE product_id = $1 AND status = 'RUNNING'` + lotFIFOOrder + ` FOR UPDATE`
	return r.list(query, productID)
}

// LatestPrices devuelve los precios del lote más reciente del producto sin
// filtrar por estado. Nil si el producto no tiene lotes.
func (r *LotRepo) LatestPrices(productID string) (*entity.LotPrices, error) {
	query := `
		SELECT actual_unit_cost, selling_unit_price
		FROM stock_lots WHERE product_id = $1
		ORDER BY received_date DESC, id DESC LIMIT 1`
	var p entity.LotPrices
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&p.ActualUnitCost, &p.SellingUnitPrice,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest prices: %w", err)
	}
	return &p, nil
}

// MarkConsumed actualiza cantidad consumida y estado del lote. La cláusula
// BETWEEN protege el invariante 0 <= consumed <= received a nivel de fila.
func (r *LotRepo) MarkConsumed(lotID string, consumed decimal.Decimal, status string) error {
	query := `
		UPDATE stock_lots SET quantity_consumed = $2, status = $3
		WHERE id = $1 AND $2 BETWEEN 0 AND quantity_received`
	tag, err := r.q.Exec(context.Background(), query, lotID, consumed, status)
	if err != nil {
		return fmt.Errorf("mark consumed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("mark consumed %s: %w", lotID, domain.ErrConflict)
	}
	return nil
}

// AvailableStock suma lo no consumido de todos los lotes del producto.
func (r *LotRepo) AvailableStock(productID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity_received - quantity_consumed), 0)
		FROM stock_lots WHERE product_id = $1 AND status = 'RUNNING'`
	var total decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, productID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("available stock: %w", err)
	}
	return total, nil
}

// ListByProduct lista todos los lotes de un producto (cualquier estado) en orden FIFO.
func (r *LotRepo) ListByProduct(productID string) ([]*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM stock_lots WHERE product_id = $1` + lotFIFOOrder
	return r.list(query, productID)
}

// ListAll lista lotes paginados, más recientes primero.
func (r *LotRepo) ListAll(limit, offset int) ([]*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM stock_lots
		ORDER BY received_date DESC, id DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// ListRecent lista los n lotes más recientes.
func (r *LotRepo) ListRecent(n int) ([]*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM stock_lots
		ORDER BY received_date DESC, id DESC LIMIT $1`
	return r.list(query, n)
}

func (r *LotRepo) list(query string, args ...any) ([]*entity.Lot, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()

	var lots []*entity.Lot
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		lots = append(lots, lot)
	}
	return lots, rows.Err()
}

func scanLot(row pgx.Row) (*entity.Lot, error) {
	var l entity.Lot
	err := row.Scan(
		&l.ID, &l.ProductID, &l.ReceivedDate, &l.QuantityReceived, &l.QuantityConsumed,
		&l.ActualUnitCost, &l.SellingUnitPrice, &l.Status, &l.Notes, &l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
