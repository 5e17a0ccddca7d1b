package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/salon-pos-api/internal/application/analytics"
	"github.com/jhoicas/salon-pos-api/internal/application/dto"
	"github.com/jhoicas/salon-pos-api/internal/domain"
)

// AnalyticsHandler maneja los reportes del tablero (solo admin).
type AnalyticsHandler struct {
	uc *analytics.DashboardUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.DashboardUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Revenue godoc
// @Summary      Totales de facturación en un rango de fechas
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "fecha inicial YYYY-MM-DD (default: hace 30 días)"
// @Param        to    query  string  false  "fecha final YYYY-MM-DD (default: hoy)"
// @Success      200  {object}  dto.RevenueResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/revenue [get]
func (h *AnalyticsHandler) Revenue(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fechas inválidas, formato YYYY-MM-DD"})
	}
	summary, err := h.uc.Revenue(c.Context(), from, to)
	if err != nil {
		return mapAnalyticsError(c, err)
	}
	return c.JSON(dto.RevenueResponse{
		From:         summary.From,
		To:           summary.To,
		ServiceTotal: summary.ServiceTotal,
		ProductTotal: summary.ProductTotal,
		GrandTotal:   summary.GrandTotal,
		InvoiceCount: summary.InvoiceCount,
	})
}

// TopProducts godoc
// @Summary      Productos más vendidos por cantidad en un rango
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        from   query  string  false  "fecha inicial YYYY-MM-DD (default: hace 30 días)"
// @Param        to     query  string  false  "fecha final YYYY-MM-DD (default: hoy)"
// @Param        limit  query  int     false  "máximo de filas (default 10)"
// @Success      200  {array}  dto.TopProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/top-products [get]
func (h *AnalyticsHandler) TopProducts(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fechas inválidas, formato YYYY-MM-DD"})
	}
	rows, err := h.uc.TopProducts(c.Context(), from, to, c.QueryInt("limit", 10))
	if err != nil {
		return mapAnalyticsError(c, err)
	}
	result := make([]dto.TopProductResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, dto.TopProductResponse{
			ProductID:    row.ProductID,
			ProductName:  row.ProductName,
			Brand:        row.Brand,
			QuantitySold: row.QuantitySold,
			Revenue:      row.Revenue,
		})
	}
	return c.JSON(result)
}

// parseDateRange lee from/to de la query; por defecto últimos 30 días.
func parseDateRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now
	if s := c.Query("from"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	if s := c.Query("to"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		// Fin de día inclusivo.
		to = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, nil
}

func mapAnalyticsError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
