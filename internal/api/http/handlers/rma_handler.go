package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/api/dto"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/auth"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/service"
	apperrors "github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/pkg/util/errorutil"
)

// RmaHandler manages the RMA checklist endpoints.
type RmaHandler struct {
	service *service.RmaService
}

// NewRmaHandler constructs handler.
func NewRmaHandler(rmaService *service.RmaService) *RmaHandler {
	return &RmaHandler{service: rmaService}
}

// RequestRma POST /tickets/:id/rma opens the checklist on a ticket.
func (h *RmaHandler) RequestRma(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	req, steps, err := h.service.RequestRma(c.Context(), principal.Profile, c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.ToRmaDetail(req, steps)})
}

// GetRma GET /rma/:id returns the request with its ordered checklist.
func (h *RmaHandler) GetRma(c *fiber.Ctx) error {
	req, steps, err := h.service.GetRma(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ToRmaDetail(req, steps)})
}

// SetStepCompletion PATCH /rma/:id/steps/:order toggles one checklist step.
func (h *RmaHandler) SetStepCompletion(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	stepOrder, err := strconv.Atoi(c.Params("order"))
	if err != nil {
		return apperrors.NewValidationError("invalid step order", nil)
	}
	var req dto.SetStepCompletionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	step, err := h.service.SetStepCompletion(c.Context(), principal.Profile, c.Params("id"), stepOrder, service.StepCompletionInput{
		Completed:          req.Completed,
		RmaNumber:          req.RmaNumber,
		FunctionalityNotes: req.FunctionalityNotes,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ToRmaStep(step)})
}

// SaveFunctionalityNotes PUT /rma/:id/notes persists final-check notes
// without toggling the step.
func (h *RmaHandler) SaveFunctionalityNotes(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.SaveFunctionalityNotesRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	step, err := h.service.SaveFunctionalityNotes(c.Context(), principal.Profile, c.Params("id"), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ToRmaStep(step)})
}

// DeleteRma DELETE /rma/:id removes the checklist and its request.
func (h *RmaHandler) DeleteRma(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.DeleteRma(c.Context(), principal.Profile, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
