package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/salon-pos-api/internal/application/dto"
	"github.com/jhoicas/salon-pos-api/internal/domain"
	"github.com/jhoicas/salon-pos-api/internal/domain/entity"
	"github.com/jhoicas/salon-pos-api/internal/domain/inventory"
	"github.com/jhoicas/salon-pos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// CreateSaleUseCase crea una factura (servicios con descuento + productos
// desde lotes) y consume el stock FIFO en una sola transacción. Si algún
// producto no alcanza a cubrirse, la venta completa se rechaza: no queda
// cabecera, ni líneas, ni entradas del libro, ni consumo de lotes.
type CreateSaleUseCase struct {
	txRunner       BillingTxRunner
	depleter       Depleter
	lotRepo        repository.LotRepository
	customerRepo   repository.CustomerRepository
	serviceRepo    repository.ServiceRepository
	productRepo    repository.ProductRepository
	membershipRepo repository.MembershipRepository
	invoiceRepo    repository.InvoiceRepository
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(
	txRunner BillingTxRunner,
	depleter Depleter,
	lotRepo repository.LotRepository,
	customerRepo repository.CustomerRepository,
	serviceRepo repository.ServiceRepository,
	productRepo repository.ProductRepository,
	membershipRepo repository.MembershipRepository,
	invoiceRepo repository.InvoiceRepository,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner:       txRunner,
		depleter:       depleter,
		lotRepo:        lotRepo,
		customerRepo:   customerRepo,
		serviceRepo:    serviceRepo,
		productRepo:    productRepo,
		membershipRepo: membershipRepo,
		invoiceRepo:    invoiceRepo,
	}
}

var oneHundred = decimal.NewFromInt(100)

// CreateSale valida cliente, servicios y productos; calcula totales; y
// persiste cabecera, líneas, movimientos SALE y consumo FIFO atómicamente.
// Los precios de producto salen siempre del lote más reciente, nunca del
// request. Devuelve la factura con sus totales.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, actorID string, in dto.CreateSaleRequest) (*dto.InvoiceResponse, error) {
	if in.CustomerID == "" || (len(in.Services) == 0 && len(in.Products) == 0) {
		return nil, domain.ErrInvalidInput
	}
	if in.ServiceDiscountPercent.LessThan(decimal.Zero) || in.ServiceDiscountPercent.GreaterThan(oneHundred) {
		return nil, domain.ErrInvalidInput
	}

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}

	// Descuento: el explícito manda; si es cero y el cliente tiene plan,
	// se usa el del plan de membresía.
	discountPct := in.ServiceDiscountPercent
	if discountPct.IsZero() && customer.MembershipPlanID != "" {
		plan, err := uc.membershipRepo.GetByID(customer.MembershipPlanID)
		if err == nil && plan != nil {
			discountPct = plan.DiscountPercent
		}
	}

	// Resolver servicios del catálogo (fuera de la tx, solo lectura).
	services := make([]*entity.Service, 0, len(in.Services))
	for _, s := range in.Services {
		if s.ServiceID == "" {
			return nil, domain.ErrInvalidInput
		}
		svc, err := uc.serviceRepo.GetByID(s.ServiceID)
		if err != nil || svc == nil {
			return nil, domain.ErrNotFound
		}
		services = append(services, svc)
	}

	// Validar productos, resolver precios desde lotes y pre-chequear stock
	// por producto agregado (la defensa definitiva es el consumo en la tx).
	type productLine struct {
		product *entity.Product
		prices  *entity.LotPrices
		qty     decimal.Decimal
	}
	lines := make([]productLine, 0, len(in.Products))
	qtyByProduct := make(map[string]decimal.Decimal)
	for _, p := range in.Products {
		if p.ProductID == "" || !p.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(p.ProductID)
		if err != nil || product == nil {
			return nil, domain.ErrNotFound
		}
		prices, err := uc.lotRepo.LatestPrices(p.ProductID)
		if err != nil {
			return nil, err
		}
		if prices == nil {
			// Producto sin lotes: no hay precio con qué vender.
			return nil, domain.ErrInsufficientStock
		}
		lines = append(lines, productLine{product: product, prices: prices, qty: p.Quantity})
		qtyByProduct[p.ProductID] = qtyByProduct[p.ProductID].Add(p.Quantity)
	}
	for productID, total := range qtyByProduct {
		available, err := uc.lotRepo.AvailableStock(productID)
		if err != nil {
			return nil, err
		}
		if available.LessThan(total) {
			return nil, domain.ErrInsufficientStock
		}
	}

	// Totales: subtotal servicios, descuento porcentual, total productos.
	var serviceSubtotal decimal.Decimal
	for _, svc := range services {
		serviceSubtotal = serviceSubtotal.Add(svc.Price)
	}
	discountAmount := serviceSubtotal.Mul(discountPct).Div(oneHundred)
	serviceTotal := serviceSubtotal.Sub(discountAmount)

	var productTotal decimal.Decimal
	for _, line := range lines {
		productTotal = productTotal.Add(line.qty.Mul(line.prices.SellingUnitPrice))
	}
	grandTotal := serviceTotal.Add(productTotal)

	now := time.Now()
	invoiceID := uuid.New().String() // referencia de los movimientos SALE

	inv := &entity.Invoice{
		ID:                     invoiceID,
		CustomerID:             in.CustomerID,
		Date:                   now,
		ServiceSubtotal:        serviceSubtotal,
		ServiceDiscountPercent: discountPct,
		ServiceDiscountAmount:  discountAmount,
		ServiceTotal:           serviceTotal,
		ProductTotal:           productTotal,
		GrandTotal:             grandTotal,
		CreatedAt:              now,
	}

	var serviceLines []*entity.InvoiceServiceLine
	for _, svc := range services {
		discount := svc.Price.Mul(discountPct).Div(oneHundred)
		serviceLines = append(serviceLines, &entity.InvoiceServiceLine{
			ID:             uuid.New().String(),
			InvoiceID:      invoiceID,
			ServiceName:    svc.Name,
			Price:          svc.Price,
			DiscountAmount: discount,
			FinalPrice:     svc.Price.Sub(discount),
		})
	}
	var itemLines []*entity.InvoiceItemLine
	for _, line := range lines {
		itemLines = append(itemLines, &entity.InvoiceItemLine{
			ID:               uuid.New().String(),
			InvoiceID:        invoiceID,
			ProductID:        line.product.ID,
			Quantity:         line.qty,
			SellingUnitPrice: line.prices.SellingUnitPrice,
			ActualUnitCost:   line.prices.ActualUnitCost,
			Subtotal:         line.qty.Mul(line.prices.SellingUnitPrice),
		})
	}

	err = uc.txRunner.RunBilling(ctx, func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		// 1) Cabecera y líneas.
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for _, line := range serviceLines {
			if err := invoiceRepo.CreateServiceLine(line); err != nil {
				return err
			}
		}
		for _, line := range itemLines {
			if err := invoiceRepo.CreateItemLine(line); err != nil {
				return err
			}
		}

		// 2) Una entrada SALE negativa por línea de producto, con la
		// factura como referencia.
		for _, line := range itemLines {
			mov := &entity.Movement{
				ID:              uuid.New().String(),
				ProductID:       line.ProductID,
				MovementDate:    now,
				QuantityChanged: line.Quantity.Neg(),
				Type:            entity.MovementTypeSale,
				ReferenceID:     invoiceID,
				ActorID:         actorID,
				Remarks:         "venta a " + customer.Name,
			}
			if err := movRepo.Append(mov); err != nil {
				return err
			}
		}

		// 3) Consumo FIFO por producto agregado. Cualquier faltante
		// aborta la venta completa (rollback de todo lo anterior).
		for productID, total := range qtyByProduct {
			remaining, err := uc.depleter.DepleteInTx(lotRepo, productID, total)
			if err != nil {
				return err
			}
			if remaining.GreaterThan(inventory.Epsilon) {
				return domain.ErrInsufficientStock
			}
			if err := productRepo.BumpRevision(productID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toInvoiceResponse(inv, customer.Name, serviceLines, itemLines), nil
}

// GetInvoice devuelve una factura con todas sus líneas.
func (uc *CreateSaleUseCase) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil || inv == nil {
		return nil, domain.ErrNotFound
	}
	serviceLines, err := uc.invoiceRepo.GetServiceLines(id)
	if err != nil {
		return nil, err
	}
	itemLines, err := uc.invoiceRepo.GetItemLines(id)
	if err != nil {
		return nil, err
	}
	customerName := ""
	if customer, _ := uc.customerRepo.GetByID(inv.CustomerID); customer != nil {
		customerName = customer.Name
	}
	return toInvoiceResponse(inv, customerName, serviceLines, itemLines), nil
}

// ListInvoices lista cabeceras de factura paginadas, sin líneas.
func (uc *CreateSaleUseCase) ListInvoices(ctx context.Context, limit, offset int) ([]*dto.InvoiceResponse, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	invoices, err := uc.invoiceRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		result = append(result, toInvoiceResponse(inv, "", nil, nil))
	}
	return result, nil
}

func toInvoiceResponse(inv *entity.Invoice, customerName string, serviceLines []*entity.InvoiceServiceLine, itemLines []*entity.InvoiceItemLine) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:                     inv.ID,
		CustomerID:             inv.CustomerID,
		CustomerName:           customerName,
		Date:                   inv.Date,
		ServiceSubtotal:        inv.ServiceSubtotal,
		ServiceDiscountPercent: inv.ServiceDiscountPercent,
		ServiceDiscountAmount:  inv.ServiceDiscountAmount,
		ServiceTotal:           inv.ServiceTotal,
		ProductTotal:           inv.ProductTotal,
		GrandTotal:             inv.GrandTotal,
		Services:               make([]dto.InvoiceServiceLineResponse, 0, len(serviceLines)),
		Products:               make([]dto.InvoiceItemLineResponse, 0, len(itemLines)),
	}
	for _, line := range serviceLines {
		resp.Services = append(resp.Services, dto.InvoiceServiceLineResponse{
			ServiceName:    line.ServiceName,
			Price:          line.Price,
			DiscountAmount: line.DiscountAmount,
			FinalPrice:     line.FinalPrice,
		})
	}
	for _, line := range itemLines {
		resp.Products = append(resp.Products, dto.InvoiceItemLineResponse{
			ProductID:        line.ProductID,
			Quantity:         line.Quantity,
			SellingUnitPrice: line.SellingUnitPrice,
			Subtotal:         line.Subtotal,
		})
	}
	return resp
}
