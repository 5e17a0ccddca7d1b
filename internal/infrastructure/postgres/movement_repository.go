package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/salon-pos-api/internal/domain/entity"
	"github.com/jhoicas/salon-pos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, product_id, movement_date, quantity_changed, movement_type,
	reference_id, actor_id, remarks`

// MovementRepo implementación de MovementRepository sobre PostgreSQL.
// El libro es append-only: no hay UPDATE ni DELETE aquí.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de movimientos. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Append escribe una entrada nueva en el libro.
func (r *MovementRepo) Append(m *entity.Movement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ProductID, m.MovementDate, m.QuantityChanged, m.Type,
		nullIfEmpty(m.ReferenceID), nullIfEmpty(m.ActorID), m.Remarks,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// ListAll lista movimientos paginados, más recientes primero.
func (r *MovementRepo) ListAll(limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements
		ORDER BY movement_date DESC, id DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// ListByType filtra por tipo de movimiento.
func (r *MovementRepo) ListByType(movementType string, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements
		WHERE movement_type = $1
		ORDER BY movement_date DESC, id DESC LIMIT $2 OFFSET $3`
	return r.list(query, movementType, limit, offset)
}

// ListByProduct filtra por producto.
func (r *MovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements
		WHERE product_id = $1
		ORDER BY movement_date DESC, id DESC LIMIT $2 OFFSET $3`
	return r.list(query, productID, limit, offset)
}

// OutflowTotal suma el valor absoluto de todas las salidas del producto.
// Cuenta cualquier entrada negativa del libro: SALE, USAGE y ajustes a la
// baja consumen lotes por igual, así que todos entran en la conciliación.
func (r *MovementRepo) OutflowTotal(productID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(ABS(quantity_changed)), 0)
		FROM stock_movements
		WHERE product_id = $1 AND quantity_changed < 0`
	var total decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, productID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("outflow total: %w", err)
	}
	return total, nil
}

func (r *MovementRepo) list(query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var movements []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var referenceID, actorID *string
		err := rows.Scan(
			&m.ID, &m.ProductID, &m.MovementDate, &m.QuantityChanged, &m.Type,
			&referenceID, &actorID, &m.Remarks,
		)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if referenceID != nil {
			m.ReferenceID = *referenceID
		}
		if actorID != nil {
			m.ActorID = *actorID
		}
		movements = append(movements, &m)
	}
	return movements, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
