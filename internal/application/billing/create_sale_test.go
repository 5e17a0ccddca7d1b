package billing

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/jhoicas/salon-pos-api/internal/application/dto"
	appinventory "github.com/jhoicas/salon-pos-api/internal/application/inventory"
	"github.com/jhoicas/salon-pos-api/internal/domain"
	"github.com/jhoicas/salon-pos-api/internal/domain/entity"
	"github.com/jhoicas/salon-pos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. El runner de transacciones simula el rollback
// restaurando un snapshot cuando el callback devuelve error, para poder
// verificar la atomicidad de la venta.
// ──────────────────────────────────────────────────────────────────────────────

type memLotRepo struct {
	lots []*entity.Lot
}

func (r *memLotRepo) Create(lot *entity.Lot) error {
	copied := *lot
	r.lots = append(r.lots, &copied)
	return nil
}

func (r *memLotRepo) GetByID(id string) (*entity.Lot, error) {
	for _, lot := range r.lots {
		if lot.ID == id {
			return lot, nil
		}
	}
	return nil, nil
}

func (r *memLotRepo) fifo(productID string, onlyRunning bool) []*entity.Lot {
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

func (r *memLotRepo) ListRunning(productID string) ([]*entity.Lot, error) {
	return r.fifo(productID, true), nil
}

func (r *memLotRepo) ListRunningForUpdate(productID string) ([]*entity.Lot, error) {
	return r.fifo(productID, true), nil
}

func (r *memLotRepo) LatestPrices(productID string) (*entity.LotPrices, error) {
	all := r.fifo(productID, false)
	if len(all) == 0 {
		return nil, nil
	}
	last := all[len(all)-1]
	return &entity.LotPrices{ActualUnitCost: last.ActualUnitCost, SellingUnitPrice: last.SellingUnitPrice}, nil
}

func (r *memLotRepo) MarkConsumed(lotID string, consumed decimal.Decimal, status string) error {
	for _, lot := range r.lots {
		if lot.ID == lotID {
			lot.QuantityConsumed = consumed
			lot.Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memLotRepo) AvailableStock(productID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, lot := range r.fifo(productID, true) {
		total = total.Add(lot.Available())
	}
	return total, nil
}

func (r *memLotRepo) ListByProduct(productID string) ([]*entity.Lot, error) {
	return r.fifo(productID, false), nil
}

func (r *memLotRepo) ListAll(limit, offset int) ([]*entity.Lot, error) { return r.lots, nil }
func (r *memLotRepo) ListRecent(n int) ([]*entity.Lot, error)          { return r.lots, nil }

type memMovementRepo struct {
	movements []*entity.Movement
}

func (r *memMovementRepo) Append(m *entity.Movement) error {
	copied := *m
	r.movements = append(r.movements, &copied)
	return nil
}

func (r *memMovementRepo) ListAll(limit, offset int) ([]*entity.Movement, error) {
	return r.movements, nil
}

func (r *memMovementRepo) ListByType(movementType string, limit, offset int) ([]*entity.Movement, error) {
	return r.movements, nil
}

func (r *memMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Movement, error) {
	return r.movements, nil
}

func (r *memMovementRepo) OutflowTotal(productID string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type memProductRepo struct {
	products  map[string]*entity.Product
	revisions map[string]int
}

func (r *memProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *memProductRepo) List(includeDiscontinued bool) ([]*entity.Product, error) { return nil, nil }
func (r *memProductRepo) Update(p *entity.Product) error                           { r.products[p.ID] = p; return nil }
func (r *memProductRepo) BumpRevision(id string) error {
	r.revisions[id]++
	return nil
}

type memCustomerRepo struct {
	customers map[string]*entity.Customer
}

func (r *memCustomerRepo) Create(c *entity.Customer) error { r.customers[c.ID] = c; return nil }
func (r *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.customers[id], nil
}
func (r *memCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) { return nil, nil }
func (r *memCustomerRepo) Update(c *entity.Customer) error                    { r.customers[c.ID] = c; return nil }

type memServiceRepo struct {
	services map[string]*entity.Service
}

func (r *memServiceRepo) Create(s *entity.Service) error { r.services[s.ID] = s; return nil }
func (r *memServiceRepo) GetByID(id string) (*entity.Service, error) {
	return r.services[id], nil
}
func (r *memServiceRepo) List(onlyActive bool) ([]*entity.Service, error) { return nil, nil }
func (r *memServiceRepo) Update(s *entity.Service) error                  { r.services[s.ID] = s; return nil }

type memMembershipRepo struct {
	plans map[string]*entity.MembershipPlan
}

func (r *memMembershipRepo) Create(p *entity.MembershipPlan) error { r.plans[p.ID] = p; return nil }
func (r *memMembershipRepo) GetByID(id string) (*entity.MembershipPlan, error) {
	return r.plans[id], nil
}
func (r *memMembershipRepo) List() ([]*entity.MembershipPlan, error) { return nil, nil }

type memInvoiceRepo struct {
	invoices     []*entity.Invoice
	serviceLines []*entity.InvoiceServiceLine
	itemLines    []*entity.InvoiceItemLine
}

func (r *memInvoiceRepo) Create(inv *entity.Invoice) error {
	copied := *inv
	r.invoices = append(r.invoices, &copied)
	return nil
}

func (r *memInvoiceRepo) CreateServiceLine(line *entity.InvoiceServiceLine) error {
	copied := *line
	r.serviceLines = append(r.serviceLines, &copied)
	return nil
}

func (r *memInvoiceRepo) CreateItemLine(line *entity.InvoiceItemLine) error {
	copied := *line
	r.itemLines = append(r.itemLines, &copied)
	return nil
}

func (r *memInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, nil
}

func (r *memInvoiceRepo) GetServiceLines(invoiceID string) ([]*entity.InvoiceServiceLine, error) {
	var result []*entity.InvoiceServiceLine
	for _, line := range r.serviceLines {
		if line.InvoiceID == invoiceID {
			result = append(result, line)
		}
	}
	return result, nil
}

func (r *memInvoiceRepo) GetItemLines(invoiceID string) ([]*entity.InvoiceItemLine, error) {
	var result []*entity.InvoiceItemLine
	for _, line := range r.itemLines {
		if line.InvoiceID == invoiceID {
			result = append(result, line)
		}
	}
	return result, nil
}

func (r *memInvoiceRepo) List(limit, offset int) ([]*entity.Invoice, error) {
	return r.invoices, nil
}

// memTxRunner toma un snapshot antes de ejecutar el callback y lo restaura
// si este devuelve error, imitando el rollback de una transacción real.
type memTxRunner struct {
	lotRepo     *memLotRepo
	movRepo     *memMovementRepo
	productRepo *memProductRepo
	invoiceRepo *memInvoiceRepo
}

func (r *memTxRunner) RunBilling(ctx context.Context, fn func(
	lotRepo repository.LotRepository,
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	lotSnap := make([]*entity.Lot, len(r.lotRepo.lots))
	for i, lot := range r.lotRepo.lots {
		copied := *lot
		lotSnap[i] = &copied
	}
	movSnap := len(r.movRepo.movements)
	invSnap := len(r.invoiceRepo.invoices)
	svcSnap := len(r.invoiceRepo.serviceLines)
	itemSnap := len(r.invoiceRepo.itemLines)
	revSnap := make(map[string]int, len(r.productRepo.revisions))
	for k, v := range r.productRepo.revisions {
		revSnap[k] = v
	}

	err := fn(r.lotRepo, r.movRepo, r.productRepo, r.invoiceRepo)
	if err != nil {
		r.lotRepo.lots = lotSnap
		r.movRepo.movements = r.movRepo.movements[:movSnap]
		r.invoiceRepo.invoices = r.invoiceRepo.invoices[:invSnap]
		r.invoiceRepo.serviceLines = r.invoiceRepo.serviceLines[:svcSnap]
		r.invoiceRepo.itemLines = r.invoiceRepo.itemLines[:itemSnap]
		r.productRepo.revisions = revSnap
	}
	return err
}

type saleFixture struct {
	uc      *CreateSaleUseCase
	lots    *memLotRepo
	movs    *memMovementRepo
	invs    *memInvoiceRepo
	custs   *memCustomerRepo
	revs    *memProductRepo
	runner  *memTxRunner
	context context.Context
}

func newSaleFixture(lots ...*entity.Lot) *saleFixture {
	lotRepo := &memLotRepo{lots: lots}
	movRepo := &memMovementRepo{}
	productRepo := &memProductRepo{
		products: map[string]*entity.Product{
			"prod-1": {ID: "prod-1", Name: "Shampoo Keratina", Brand: "Kativa"},
		},
		revisions: map[string]int{},
	}
	customerRepo := &memCustomerRepo{
		customers: map[string]*entity.Customer{
			"cust-1": {ID: "cust-1", Name: "Ana Gómez"},
		},
	}
	serviceRepo := &memServiceRepo{
		services: map[string]*entity.Service{
			"svc-1": {ID: "svc-1", Name: "Corte", Price: decimal.NewFromInt(40), Active: true},
			"svc-2": {ID: "svc-2", Name: "Manicure", Price: decimal.NewFromInt(60), Active: true},
		},
	}
	membershipRepo := &memMembershipRepo{
		plans: map[string]*entity.MembershipPlan{
			"plan-1": {ID: "plan-1", Name: "Oro", DiscountPercent: decimal.NewFromInt(20)},
		},
	}
	invoiceRepo := &memInvoiceRepo{}
	runner := &memTxRunner{lotRepo: lotRepo, movRepo: movRepo, productRepo: productRepo, invoiceRepo: invoiceRepo}

	depleter := appinventory.NewStockUseCase(nil, nil, nil)
	uc := NewCreateSaleUseCase(runner, depleter, lotRepo, customerRepo, serviceRepo, productRepo, membershipRepo, invoiceRepo)
	return &saleFixture{
		uc:      uc,
		lots:    lotRepo,
		movs:    movRepo,
		invs:    invoiceRepo,
		custs:   customerRepo,
		revs:    productRepo,
		runner:  runner,
		context: context.Background(),
	}
}

func saleLot(id string, day int, received, consumed float64, cost, price int64) *entity.Lot {
	return &entity.Lot{
		ID:               id,
		ProductID:        "prod-1",
		ReceivedDate:     time.Date(2026, 8, day, 0, 0, 0, 0, time.UTC),
		QuantityReceived: decimal.NewFromFloat(received),
		QuantityConsumed: decimal.NewFromFloat(consumed),
		ActualUnitCost:   decimal.NewFromInt(cost),
		SellingUnitPrice: decimal.NewFromInt(price),
		Status:           entity.LotStatusRunning,
	}
}

func TestCreateSale_ServiciosYProductosConDescuento(t *testing.T) {
	f := newSaleFixture(saleLot("lote-a", 10, 10, 0, 10, 25))

	resp, err := f.uc.CreateSale(f.context, "user-1", dto.CreateSaleRequest{
		CustomerID:             "cust-1",
		Services:               []dto.SaleServiceInput{{ServiceID: "svc-1"}, {ServiceID: "svc-2"}},
		Products:               []dto.SaleProductInput{{ProductID: "prod-1", Quantity: decimal.NewFromInt(2)}},
		ServiceDiscountPercent: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	// Servicios: 100 - 10% = 90. Productos: 2 x 25 = 50. Total 140.
	assert.True(t, resp.ServiceSubtotal.Equal(decimal.NewFromInt(100)))
	assert.True(t, resp.ServiceDiscountAmount.Equal(decimal.NewFromInt(10)))
	assert.True(t, resp.ServiceTotal.Equal(decimal.NewFromInt(90)))
	assert.True(t, resp.ProductTotal.Equal(decimal.NewFromInt(50)))
	assert.True(t, resp.GrandTotal.Equal(decimal.NewFromInt(140)))
	assert.Equal(t, "Ana Gómez", resp.CustomerName)

	// El lote quedó consumido y el movimiento SALE referencia la factura.
	lotA, _ := f.lots.GetByID("lote-a")
	assert.True(t, lotA.QuantityConsumed.Equal(decimal.NewFromInt(2)))
	require.Len(t, f.movs.movements, 1)
	mov := f.movs.movements[0]
	assert.Equal(t, entity.MovementTypeSale, mov.Type)
	assert.True(t, mov.QuantityChanged.Equal(decimal.NewFromInt(-2)))
	assert.Equal(t, resp.ID, mov.ReferenceID)
	assert.Equal(t, 1, f.revs.revisions["prod-1"])
}

func TestCreateSale_PreciosSalenDelLoteNoDelRequest(t *testing.T) {
	f := newSaleFixture(saleLot("lote-a", 10, 10, 0, 12, 30))

	resp, err := f.uc.CreateSale(f.context, "user-1", dto.CreateSaleRequest{
		CustomerID: "cust-1",
		Products:   []dto.SaleProductInput{{ProductID: "prod-1", Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)

	require.Len(t, resp.Products, 1)
	assert.True(t, resp.Products[0].SellingUnitPrice.Equal(decimal.NewFromInt(30)))
	require.Len(t, f.invs.itemLines, 1)
	assert.True(t, f.invs.itemLines[0].ActualUnitCost.Equal(decimal.NewFromInt(12)))
}

func TestCreateSale_DescuentoDePlanCuandoNoHayExplicito(t *testing.T) {
	f := newSaleFixture()
	f.custs.customers["cust-1"].MembershipPlanID = "plan-1"

	resp, err := f.uc.CreateSale(f.context, "user-1", dto.CreateSaleRequest{
		CustomerID: "cust-1",
		Services:   []dto.SaleServiceInput{{ServiceID: "svc-1"}},
	})
	require.NoError(t, err)

	// 40 - 20% del plan Oro = 32.
	assert.True(t, resp.ServiceDiscountPercent.Equal(decimal.NewFromInt(20)))
	assert.True(t, resp.GrandTotal.Equal(decimal.NewFromInt(32)))
}

func TestCreateSale_DescuentoExplicitoMandaSobreElPlan(t *testing.T) {
	f := newSaleFixture()
	f.custs.customers["cust-1"].MembershipPlanID = "plan-1"

	resp, err := f.uc.CreateSale(f.context, "user-1", dto.CreateSaleRequest{
		CustomerID:             "cust-1",
		Services:               []dto.SaleServiceInput{{ServiceID: "svc-1"}},
		ServiceDiscountPercent: decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	assert.True(t, resp.GrandTotal.Equal(decimal.NewFromInt(20)))
}

func TestCreateSale_StockInsuficienteRechazaTodaLaVenta(t *testing.T) {
	f := newSaleFixture(saleLot("lote-a", 10, 10, 9, 10, 25))

	_, err := f.uc.CreateSale(f.context, "user-1", dto.CreateSaleRequest{
		CustomerID: "cust-1",
		Services:   []dto.SaleServiceInput{{ServiceID: "svc-1"}},
		Products:   []dto.SaleProductInput{{ProductID: "prod-1", Quantity: decimal.NewFromInt(5)}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada persistido: ni factura, ni líneas, ni movimientos, ni consumo.
	assert.Empty(t, f.invs.invoices)
	assert.Empty(t, f.invs.serviceLines)
	assert.Empty(t, f.invs.itemLines)
	assert.Empty(t, f.movs.movements)
	lotA, _ := f.lots.GetByID("lote-a")
	assert.True(t, lotA.QuantityConsumed.Equal(decimal.NewFromInt(9)))
	assert.Equal(t, 0, f.revs.revisions["prod-1"])
}

// optimistLotRepo reporta más disponible del real para forzar el camino
// donde el pre-chequeo pasa pero el consumo dentro de la tx queda corto
// (carrera entre terminales).
type optimistLotRepo struct {
	*memLotRepo
}

func (r *optimistLotRepo) AvailableStock(productID string) (decimal.Decimal, error) {
	real, _ := r.memLotRepo.AvailableStock(productID)
	return real.Add(decimal.NewFromInt(100)), nil
}

func TestCreateSale_FaltanteDentroDeLaTxRevierteTodo(t *testing.T) {
	f := newSaleFixture(saleLot("lote-a", 10, 10, 9, 10, 25))
	lying := &optimistLotRepo{memLotRepo: f.lots}
	f.uc.lotRepo = lying

	_, err := f.uc.CreateSale(f.context, "user-1", dto.CreateSaleRequest{
		CustomerID: "cust-1",
		Products:   []dto.SaleProductInput{{ProductID: "prod-1", Quantity: decimal.NewFromInt(5)}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Rollback completo: el consumo parcial dentro de la tx se deshace.
	assert.Empty(t, f.invs.invoices)
	assert.Empty(t, f.movs.movements)
	lotA, _ := f.lots.GetByID("lote-a")
	assert.True(t, lotA.QuantityConsumed.Equal(decimal.NewFromInt(9)))
	assert.Equal(t, entity.LotStatusRunning, lotA.Status)
}

func TestCreateSale_ProductoSinLotesRechaza(t *testing.T) {
	f := newSaleFixture()

	_, err := f.uc.CreateSale(f.context, "user-1", dto.CreateSaleRequest{
		CustomerID: "cust-1",
		Products:   []dto.SaleProductInput{{ProductID: "prod-1", Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestCreateSale_VentaCruzaVariosLotes(t *testing.T) {
	f := newSaleFixture(
		saleLot("lote-a", 10, 10, 0, 10, 25),
		saleLot("lote-b", 20, 10, 0, 10, 25),
	)

	_, err := f.uc.CreateSale(f.context, "user-1", dto.CreateSaleRequest{
		CustomerID: "cust-1",
		Products:   []dto.SaleProductInput{{ProductID: "prod-1", Quantity: decimal.NewFromInt(15)}},
	})
	require.NoError(t, err)

	lotA, _ := f.lots.GetByID("lote-a")
	lotB, _ := f.lots.GetByID("lote-b")
	assert.Equal(t, entity.LotStatusCompleted, lotA.Status)
	assert.Equal(t, entity.LotStatusRunning, lotB.Status)
	assert.True(t, lotB.QuantityConsumed.Equal(decimal.NewFromInt(5)))
}

func TestCreateSale_SinClienteNiLineasRechaza(t *testing.T) {
	f := newSaleFixture()

	_, err := f.uc.CreateSale(f.context, "user-1", dto.CreateSaleRequest{CustomerID: "cust-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.CreateSale(f.context, "user-1", dto.CreateSaleRequest{
		Services: []dto.SaleServiceInput{{ServiceID: "svc-1"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetInvoice_DevuelveLineas(t *testing.T) {
	f := newSaleFixture(saleLot("lote-a", 10, 10, 0, 10, 25))

	created, err := f.uc.CreateSale(f.context, "user-1", dto.CreateSaleRequest{
		CustomerID: "cust-1",
		Services:   []dto.SaleServiceInput{{ServiceID: "svc-1"}},
		Products:   []dto.SaleProductInput{{ProductID: "prod-1", Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)

	fetched, err := f.uc.GetInvoice(f.context, created.ID)
	require.NoError(t, err)
	assert.Len(t, fetched.Services, 1)
	assert.Len(t, fetched.Products, 1)
	assert.True(t, fetched.GrandTotal.Equal(created.GrandTotal))
}
