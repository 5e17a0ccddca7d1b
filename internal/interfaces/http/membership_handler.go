package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/salon-pos-api/internal/application/dto"
	"github.com/jhoicas/salon-pos-api/internal/application/usecase"
	"github.com/jhoicas/salon-pos-api/internal/domain"
	"github.com/jhoicas/salon-pos-api/internal/domain/entity"
)

// MembershipHandler maneja planes de membresía (protegido).
type MembershipHandler struct {
	uc *usecase.MembershipUseCase
}

// NewMembershipHandler construye el handler.
func NewMembershipHandler(uc *usecase.MembershipUseCase) *MembershipHandler {
	return &MembershipHandler{uc: uc}
}

// Create godoc
// @Summary      Crear plan de membresía (solo admin)
// @Tags         memberships
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMembershipRequest  true  "name, discount_percent (0..100), duration_days"
// @Success      201   {object}  dto.MembershipResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/memberships [post]
func (h *MembershipHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMembershipRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	plan, err := h.uc.Create(c.Context(), usecase.MembershipInput{
		Name: in.Name, DiscountPercent: in.DiscountPercent, DurationDays: in.DurationDays,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toMembershipResponse(plan))
}

// List godoc
// @Summary      Listar planes de membresía
// @Tags         memberships
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MembershipResponse
// @Router       /api/memberships [get]
func (h *MembershipHandler) List(c *fiber.Ctx) error {
	plans, err := h.uc.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	result := make([]dto.MembershipResponse, 0, len(plans))
	for _, p := range plans {
		result = append(result, toMembershipResponse(p))
	}
	return c.JSON(result)
}

func toMembershipResponse(p *entity.MembershipPlan) dto.MembershipResponse {
	return dto.MembershipResponse{
		ID:              p.ID,
		Name:            p.Name,
		DiscountPercent: p.DiscountPercent,
		DurationDays:    p.DurationDays,
		CreatedAt:       p.CreatedAt,
	}
}
