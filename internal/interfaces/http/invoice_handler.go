package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/salon-pos-api/internal/application/billing"
	"github.com/jhoicas/salon-pos-api/internal/application/dto"
	"github.com/jhoicas/salon-pos-api/internal/domain"
)

// InvoiceHandler maneja ventas y facturas (protegido).
type InvoiceHandler struct {
	sale *billing.CreateSaleUseCase
	pdf  *billing.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(sale *billing.CreateSaleUseCase, pdf *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{sale: sale, pdf: pdf}
}

// Create godoc
// @Summary      Crear venta (factura + consumo FIFO de stock, atómico)
// @Description  Los precios de producto salen del lote vigente, nunca del
//
//	request. Si algún producto no alcanza a cubrirse, la venta
//	completa se rechaza con 409 INSUFFICIENT_STOCK y no queda
//	ningún efecto persistido.
//
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "customer_id, services, products, service_discount_percent"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.sale.CreateSale(c.Context(), GetUserID(c), in)
	if err != nil {
		return mapInvoiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID godoc
// @Summary      Obtener factura con sus líneas
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.sale.GetInvoice(c.Context(), c.Params("id"))
	if err != nil {
		return mapInvoiceError(c, err)
	}
	return c.JSON(resp)
}

// List godoc
// @Summary      Listar facturas (cabeceras)
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo de filas (default 100)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.InvoiceResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	invoices, err := h.sale.ListInvoices(c.Context(), c.QueryInt("limit", 100), c.QueryInt("offset", 0))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(invoices)
}

// GetPDF godoc
// @Summary      Descargar la factura en PDF
// @Tags         invoices
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) GetPDF(c *fiber.Ctx) error {
	data, err := h.pdf.GenerateInvoicePDF(c.Context(), c.Params("id"))
	if err != nil {
		return mapInvoiceError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="factura-`+c.Params("id")+`.pdf"`)
	return c.Send(data)
}

func mapInvoiceError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "factura, cliente o servicio no encontrado"})
	}
	if errors.Is(err, domain.ErrInsufficientStock) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente para completar la venta"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
