package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/salon-pos-api/internal/application/dto"
	appinventory "github.com/jhoicas/salon-pos-api/internal/application/inventory"
	"github.com/jhoicas/salon-pos-api/internal/domain"
	"github.com/jhoicas/salon-pos-api/internal/domain/entity"
	"github.com/jhoicas/salon-pos-api/internal/domain/inventory"
)

// StockHandler maneja lotes, consumos y el libro de movimientos (protegido).
type StockHandler struct {
	stock *appinventory.StockUseCase
	query *appinventory.StockQueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(stock *appinventory.StockUseCase, query *appinventory.StockQueryUseCase) *StockHandler {
	return &StockHandler{stock: stock, query: query}
}

// CreateLot godoc
// @Summary      Registrar entrada de lote (restock)
// @Description  Valida los precios propuestos contra los históricos del producto.
//
//	Si difieren en más de la tolerancia y no se envió
//	confirm_historical_prices, responde 409 PRICE_MISMATCH con ambos
//	pares; reintentar con confirm_historical_prices=true conserva los
//	precios históricos.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLotRequest  true  "product_id, quantity (> 0), actual_unit_cost, selling_unit_price"
// @Success      201   {object}  dto.LotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.PriceMismatchResponse
// @Router       /api/stock/lots [post]
func (h *StockHandler) CreateLot(c *fiber.Ctx) error {
	var in dto.CreateLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := appinventory.RestockInput{
		ProductID:               in.ProductID,
		Quantity:                in.Quantity,
		ActualUnitCost:          in.ActualUnitCost,
		SellingUnitPrice:        in.SellingUnitPrice,
		Notes:                   in.Notes,
		ConfirmHistoricalPrices: in.ConfirmHistoricalPrices,
	}
	if in.ReceivedDate != nil {
		input.ReceivedDate = *in.ReceivedDate
	}
	lot, err := h.stock.Restock(c.Context(), GetUserID(c), input)
	if err != nil {
		var mismatch *inventory.PriceMismatchError
		if errors.As(err, &mismatch) {
			return c.Status(fiber.StatusConflict).JSON(dto.PriceMismatchResponse{
				Code:            "PRICE_MISMATCH",
				Message:         "los precios difieren de los históricos del producto",
				ProductID:       mismatch.ProductID,
				HistoricalCost:  mismatch.HistoricalCost,
				HistoricalPrice: mismatch.HistoricalPrice,
				ProposedCost:    mismatch.ProposedCost,
				ProposedPrice:   mismatch.ProposedPrice,
			})
		}
		return mapStockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toLotResponse(lot))
}

// ListLots godoc
// @Summary      Listar lotes
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "filtrar por producto (orden FIFO)"
// @Param        recent      query  int     false  "solo los n más recientes"
// @Param        limit       query  int     false  "máximo de filas (default 100)"
// @Param        offset      query  int     false  "desplazamiento"
// @Success      200  {array}  dto.LotResponse
// @Router       /api/stock/lots [get]
func (h *StockHandler) ListLots(c *fiber.Ctx) error {
	var (
		lots []*entity.Lot
		err  error
	)
	switch {
	case c.Query("product_id") != "":
		lots, err = h.query.ListLotsByProduct(c.Query("product_id"))
	case c.QueryInt("recent", 0) > 0:
		lots, err = h.query.ListRecentLots(c.QueryInt("recent", 0))
	default:
		lots, err = h.query.ListAllLots(c.QueryInt("limit", 100), c.QueryInt("offset", 0))
	}
	if err != nil {
		return mapStockError(c, err)
	}
	result := make([]dto.LotResponse, 0, len(lots))
	for _, lot := range lots {
		result = append(result, toLotResponse(lot))
	}
	return c.JSON(result)
}

// AvailableStock godoc
// @Summary      Disponibilidad de un producto (derivada de lotes)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  map[string]string
// @Router       /api/stock/products/{id}/available [get]
func (h *StockHandler) AvailableStock(c *fiber.Ctx) error {
	available, err := h.query.AvailableStock(c.Params("id"))
	if err != nil {
		return mapStockError(c, err)
	}
	return c.JSON(fiber.Map{"product_id": c.Params("id"), "available": available})
}

// RecordUsage godoc
// @Summary      Registrar consumo interno (USAGE)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordUsageRequest  true  "product_id, quantity (> 0), remarks"
// @Success      201   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/usage [post]
func (h *StockHandler) RecordUsage(c *fiber.Ctx) error {
	var in dto.RecordUsageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.stock.RecordUsage(c.Context(), GetUserID(c), in.ProductID, in.Quantity, in.Remarks); err != nil {
		return mapStockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "consumo registrado"})
}

// RecordAdjustment godoc
// @Summary      Registrar ajuste manual (solo admin)
// @Description  Cantidad negativa consume lotes FIFO; positiva crea un lote de
//
//	corrección con los precios históricos del producto.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordAdjustmentRequest  true  "product_id, quantity (signada, != 0), remarks"
// @Success      201   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/adjustments [post]
func (h *StockHandler) RecordAdjustment(c *fiber.Ctx) error {
	var in dto.RecordAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.stock.RecordAdjustment(c.Context(), GetUserID(c), in.ProductID, in.Quantity, in.Remarks); err != nil {
		return mapStockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "ajuste registrado"})
}

// ListMovements godoc
// @Summary      Consultar el libro de movimientos
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        type        query  string  false  "SALE | USAGE | RESTOCK | ADJUSTMENT"
// @Param        product_id  query  string  false  "filtrar por producto"
// @Param        limit       query  int     false  "máximo de filas (default 100)"
// @Param        offset      query  int     false  "desplazamiento"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	var (
		movements []*entity.Movement
		err       error
	)
	limit, offset := c.QueryInt("limit", 100), c.QueryInt("offset", 0)
	if productID := c.Query("product_id"); productID != "" {
		movements, err = h.query.ListMovementsByProduct(productID, limit, offset)
	} else {
		movements, err = h.query.ListMovements(c.Query("type"), limit, offset)
	}
	if err != nil {
		return mapStockError(c, err)
	}
	result := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		result = append(result, dto.MovementResponse{
			ID:              m.ID,
			ProductID:       m.ProductID,
			MovementDate:    m.MovementDate,
			QuantityChanged: m.QuantityChanged,
			Type:            m.Type,
			ReferenceID:     m.ReferenceID,
			ActorID:         m.ActorID,
			Remarks:         m.Remarks,
		})
	}
	return c.JSON(result)
}

// StockSummary godoc
// @Summary      Resumen de stock por producto (recibido / usado / disponible)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockSummaryRowDTO
// @Router       /api/stock/summary [get]
func (h *StockHandler) StockSummary(c *fiber.Ctx) error {
	rows, err := h.query.StockSummary(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	result := make([]dto.StockSummaryRowDTO, 0, len(rows))
	for _, row := range rows {
		result = append(result, dto.StockSummaryRowDTO{
			ProductID:     row.ProductID,
			ProductName:   row.ProductName,
			Brand:         row.Brand,
			TotalReceived: row.TotalReceived,
			TotalConsumed: row.TotalConsumed,
			Available:     row.Available,
		})
	}
	return c.JSON(result)
}

func mapStockError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	if errors.Is(err, domain.ErrInsufficientStock) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	}
	if errors.Is(err, domain.ErrConflict) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "operación en conflicto con el estado del producto"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func toLotResponse(lot *entity.Lot) dto.LotResponse {
	return dto.LotResponse{
		ID:               lot.ID,
		ProductID:        lot.ProductID,
		ReceivedDate:     lot.ReceivedDate.Format("2006-01-02"),
		QuantityReceived: lot.QuantityReceived,
		QuantityConsumed: lot.QuantityConsumed,
		Available:        lot.Available(),
		ActualUnitCost:   lot.ActualUnitCost,
		SellingUnitPrice: lot.SellingUnitPrice,
		Status:           lot.Status,
		Notes:            lot.Notes,
	}
}
