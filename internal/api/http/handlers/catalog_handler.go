package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/api/dto"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/auth"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/service"
	apperrors "github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/pkg/util/errorutil"
)

// CatalogHandler manages companies, contacts and equipment models.
type CatalogHandler struct {
	service *service.CatalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: catalogService}
}

// CreateCompany POST /companies.
func (h *CatalogHandler) CreateCompany(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	company, err := h.service.CreateCompany(c.Context(), principal.Profile, service.CompanyInput{
		Name:    req.Name,
		Country: req.Country,
		Notes:   req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.ToCompany(company)})
}

// UpdateCompany PATCH /companies/:id.
func (h *CatalogHandler) UpdateCompany(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	company, err := h.service.UpdateCompany(c.Context(), principal.Profile, c.Params("id"), service.CompanyInput{
		Name:    req.Name,
		Country: req.Country,
		Notes:   req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ToCompany(company)})
}

// GetCompany GET /companies/:id.
func (h *CatalogHandler) GetCompany(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	company, err := h.service.GetCompany(c.Context(), principal.Profile, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ToCompany(company)})
}

// ListCompanies GET /companies.
func (h *CatalogHandler) ListCompanies(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)
	companies, err := h.service.ListCompanies(c.Context(), principal.Profile, c.Query("search"), pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	items := make([]dto.CompanyResponse, 0, len(companies))
	for i := range companies {
		items = append(items, dto.ToCompany(&companies[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateContact POST /contacts.
func (h *CatalogHandler) CreateContact(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	contact, err := h.service.CreateContact(c.Context(), principal.Profile, service.ContactInput{
		CompanyID: req.CompanyID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Position:  req.Position,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.ToContact(contact)})
}

// UpdateContact PATCH /contacts/:id.
func (h *CatalogHandler) UpdateContact(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	contact, err := h.service.UpdateContact(c.Context(), principal.Profile, c.Params("id"), service.ContactInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Position: req.Position,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ToContact(contact)})
}

// ListContacts GET /companies/:id/contacts.
func (h *CatalogHandler) ListContacts(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	contacts, err := h.service.ListContacts(c.Context(), principal.Profile, c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.ContactResponse, 0, len(contacts))
	for i := range contacts {
		items = append(items, dto.ToContact(&contacts[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateEquipmentModel POST /equipment-models.
func (h *CatalogHandler) CreateEquipmentModel(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.EquipmentModelRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	model, err := h.service.CreateEquipmentModel(c.Context(), principal.Profile, service.EquipmentInput{
		ModelCode: req.ModelCode,
		Name:      req.Name,
		Category:  req.Category,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.ToEquipmentModel(model)})
}

// UpdateEquipmentModel PATCH /equipment-models/:id.
func (h *CatalogHandler) UpdateEquipmentModel(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.EquipmentModelRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	model, err := h.service.UpdateEquipmentModel(c.Context(), principal.Profile, c.Params("id"), service.EquipmentInput{
		ModelCode: req.ModelCode,
		Name:      req.Name,
		Category:  req.Category,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ToEquipmentModel(model)})
}

// ListEquipmentModels GET /equipment-models.
func (h *CatalogHandler) ListEquipmentModels(c *fiber.Ctx) error {
	models, err := h.service.ListEquipmentModels(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.EquipmentModelResponse, 0, len(models))
	for i := range models {
		items = append(items, dto.ToEquipmentModel(&models[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
