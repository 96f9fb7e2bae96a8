package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/api/dto"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/auth"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/repository"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/service"
	apperrors "github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/pkg/util/errorutil"
)

// TrashHandler exposes the soft-delete grace window.
type TrashHandler struct {
	service *service.RecycleService
}

// NewTrashHandler constructs handler.
func NewTrashHandler(recycleService *service.RecycleService) *TrashHandler {
	return &TrashHandler{service: recycleService}
}

// List GET /trash/:scope lists soft-deleted records of one type.
func (h *TrashHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	items, err := h.service.ListTrash(c.Context(), principal.Profile, repository.RecycleScope(c.Params("scope")))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ToTrashItems(items)})
}

// SoftDelete DELETE /trash/:scope/:id moves a record into the trash.
func (h *TrashHandler) SoftDelete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.SoftDelete(c.Context(), principal.Profile, repository.RecycleScope(c.Params("scope")), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Restore POST /trash/:scope/:id/restore brings a trashed record back.
func (h *TrashHandler) Restore(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.Restore(c.Context(), principal.Profile, repository.RecycleScope(c.Params("scope")), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Purge POST /trash/purge removes records past the grace window.
func (h *TrashHandler) Purge(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	purged, err := h.service.PurgeExpired(c.Context(), principal.Profile)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"purged": purged}})
}
