package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/salon-pos-api/internal/domain"
	"github.com/jhoicas/salon-pos-api/internal/domain/entity"
	"github.com/jhoicas/salon-pos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para probar el motor de stock sin base de datos.
// ──────────────────────────────────────────────────────────────────────────────

type fakeLotRepo struct {
	lots []*entity.Lot
}

func newFakeLotRepo(lots ...*entity.Lot) *fakeLotRepo {
	return &fakeLotRepo{lots: lots}
}

func (r *fakeLotRepo) Create(lot *entity.Lot) error {
	copied := *lot
	r.lots = append(r.lots, &copied)
	return nil
}

func (r *fakeLotRepo) GetByID(id string) (*entity.Lot, error) {
	for _, lot := range r.lots {
		if lot.ID == id {
			return lot, nil
		}
	}
	return nil, nil
}

func (r *fakeLotRepo) fifo(productID string, onlyRunning bool) []*entity.Lot {
	var result []*entity.Lot
	for _, lot := range r.lots {
		if lot.ProductID != productID {
			continue
		}
		if onlyRunning && lot.Status != entity.LotStatusRunning {
			continue
		}
		result = append(result, lot)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].ReceivedDate.Equal(result[j].ReceivedDate) {
			return result[i].ReceivedDate.Before(result[j].ReceivedDate)
		}
		return result[i].ID < result[j].ID
	})
	return result
}

func (r *fakeLotRepo) ListRunning(productID string) ([]*entity.Lot, error) {
	return r.fifo(productID, true), nil
}

func (r *fakeLotRepo) ListRunningForUpdate(productID string) ([]*entity.Lot, error) {
	return r.fifo(productID, true), nil
}

func (r *fakeLotRepo) LatestPrices(productID string) (*entity.LotPrices, error) {
	all := r.fifo(productID, false)
	if len(all) == 0 {
		return nil, nil
	}
	last := all[len(all)-1]
	return &entity.LotPrices{
		ActualUnitCost:   last.ActualUnitCost,
		SellingUnitPrice: last.SellingUnitPrice,
	}, nil
}

func (r *fakeLotRepo) MarkConsumed(lotID string, consumed decimal.Decimal, status string) error {
	for _, lot := range r.lots {
		if lot.ID == lotID {
			if consumed.LessThan(decimal.Zero) || consumed.GreaterThan(lot.QuantityReceived) {
				return domain.ErrConflict
			}
			lot.QuantityConsumed = consumed
			lot.Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeLotRepo) AvailableStock(productID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, lot := range r.fifo(productID, true) {
		total = total.Add(lot.Available())
	}
	return total, nil
}

func (r *fakeLotRepo) ListByProduct(productID string) ([]*entity.Lot, error) {
	return r.fifo(productID, false), nil
}

func (r *fakeLotRepo) ListAll(limit, offset int) ([]*entity.Lot, error) {
	return r.lots, nil
}

func (r *fakeLotRepo) ListRecent(n int) ([]*entity.Lot, error) {
	if n > len(r.lots) {
		n = len(r.lots)
	}
	return r.lots[len(r.lots)-n:], nil
}

type fakeMovementRepo struct {
	movements []*entity.Movement
}

func (r *fakeMovementRepo) Append(m *entity.Movement) error {
	copied := *m
	r.movements = append(r.movements, &copied)
	return nil
}

func (r *fakeMovementRepo) ListAll(limit, offset int) ([]*entity.Movement, error) {
	return r.movements, nil
}

func (r *fakeMovementRepo) ListByType(movementType string, limit, offset int) ([]*entity.Movement, error) {
	var result []*entity.Movement
	for _, m := range r.movements {
		if m.Type == movementType {
			result = append(result, m)
		}
	}
	return result, nil
}

func (r *fakeMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Movement, error) {
	var result []*entity.Movement
	for _, m := range r.movements {
		if m.ProductID == productID {
			result = append(result, m)
		}
	}
	return result, nil
}

func (r *fakeMovementRepo) OutflowTotal(productID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, m := range r.movements {
		if m.ProductID == productID && m.QuantityChanged.LessThan(decimal.Zero) {
			total = total.Add(m.QuantityChanged.Abs())
		}
	}
	return total, nil
}

type fakeProductRepo struct {
	products  map[string]*entity.Product
	revisions map[string]int
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{
		products:  make(map[string]*entity.Product),
		revisions: make(map[string]int),
	}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) List(includeDiscontinued bool) ([]*entity.Product, error) {
	var result []*entity.Product
	for _, p := range r.products {
		if !includeDiscontinued && p.Discontinued {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) BumpRevision(id string) error {
	r.revisions[id]++
	if p, ok := r.products[id]; ok {
		p.Revision++
	}
	return nil
}

// fakeTxRunner ejecuta el callback directamente sobre los fakes. No hay
// rollback real: los tests de atomicidad verifican el error devuelto.
type fakeTxRunner struct {
	lotRepo     *fakeLotRepo
	movRepo     *fakeMovementRepo
	productRepo *fakeProductRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	lotRepo repository.LotRepository,
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(r.lotRepo, r.movRepo, r.productRepo)
}

func lotOn(id, productID string, day int, received, consumed float64, status string) *entity.Lot {
	return &entity.Lot{
		ID:               id,
		ProductID:        productID,
		ReceivedDate:     time.Date(2026, 8, day, 0, 0, 0, 0, time.UTC),
		QuantityReceived: decimal.NewFromFloat(received),
		QuantityConsumed: decimal.NewFromFloat(consumed),
		ActualUnitCost:   decimal.NewFromInt(10),
		SellingUnitPrice: decimal.NewFromInt(25),
		Status:           status,
	}
}
