package service

import (
	"context"
	"strings"

	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/domain"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/repository"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/pkg/util/errorutil"
)

// CatalogService manages companies, their contacts and the equipment model
// catalog. All mutations are agent-only; requesters read their own company.
type CatalogService struct {
	companies repository.CompanyRepository
	contacts  repository.ContactRepository
	equipment repository.EquipmentRepository
}

// CatalogDependencies bundles the catalog repositories.
type CatalogDependencies struct {
	CompanyRepo   repository.CompanyRepository
	ContactRepo   repository.ContactRepository
	EquipmentRepo repository.EquipmentRepository
}

// NewCatalogService builds the service.
func NewCatalogService(deps CatalogDependencies) *CatalogService {
	return &CatalogService{
		companies: deps.CompanyRepo,
		contacts:  deps.ContactRepo,
		equipment: deps.EquipmentRepo,
	}
}

// CompanyInput carries the writable company fields.
type CompanyInput struct {
	Name    string
	Country string
	Notes   string
}

func (s *CatalogService) CreateCompany(ctx context.Context, actor *domain.UserProfile, input CompanyInput) (*domain.Company, error) {
	if !actor.IsAgent() {
		return nil, errorutil.NewForbidden("only support agents can manage companies")
	}
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, errorutil.NewValidationError("company name is required", nil)
	}
	company := &domain.Company{Name: input.Name, Country: input.Country, Notes: input.Notes}
	if err := s.companies.Create(ctx, company); err != nil {
		return nil, errorutil.MapError(err)
	}
	return company, nil
}

func (s *CatalogService) UpdateCompany(ctx context.Context, actor *domain.UserProfile, id string, input CompanyInput) (*domain.Company, error) {
	if !actor.IsAgent() {
		return nil, errorutil.NewForbidden("only support agents can manage companies")
	}
	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, errorutil.MapError(err)
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		company.Name = name
	}
	company.Country = input.Country
	company.Notes = input.Notes
	if err := s.companies.Update(ctx, company); err != nil {
		return nil, errorutil.MapError(err)
	}
	return company, nil
}

// GetCompany returns a company. Requesters may only read their own.
func (s *CatalogService) GetCompany(ctx context.Context, actor *domain.UserProfile, id string) (*domain.Company, error) {
	if !actor.IsAgent() && (actor.CompanyID == nil || *actor.CompanyID != id) {
		return nil, errorutil.NewForbidden("access denied")
	}
	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, errorutil.MapError(err)
	}
	return company, nil
}

func (s *CatalogService) ListCompanies(ctx context.Context, actor *domain.UserProfile, search string, limit, offset int) ([]domain.Company, error) {
	if !actor.IsAgent() {
		return nil, errorutil.NewForbidden("only support agents can list companies")
	}
	result, err := s.companies.List(ctx, search, limit, offset)
	if err != nil {
		return nil, errorutil.MapError(err)
	}
	return result, nil
}

// ContactInput carries the writable contact fields.
type ContactInput struct {
	CompanyID string
	Name      string
	Email     string
	Phone     string
	Position  string
}

func (s *CatalogService) CreateContact(ctx context.Context, actor *domain.UserProfile, input ContactInput) (*domain.Contact, error) {
	if !actor.IsAgent() {
		return nil, errorutil.NewForbidden("only support agents can manage contacts")
	}
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, errorutil.NewValidationError("contact name is required", nil)
	}
	if input.CompanyID == "" {
		return nil, errorutil.NewValidationError("company is required", nil)
	}
	if _, err := s.companies.GetByID(ctx, input.CompanyID); err != nil {
		return nil, errorutil.MapError(err)
	}
	contact := &domain.Contact{
		CompanyID: input.CompanyID,
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Position:  input.Position,
	}
	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, errorutil.MapError(err)
	}
	return contact, nil
}

func (s *CatalogService) UpdateContact(ctx context.Context, actor *domain.UserProfile, id string, input ContactInput) (*domain.Contact, error) {
	if !actor.IsAgent() {
		return nil, errorutil.NewForbidden("only support agents can manage contacts")
	}
	contact, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, errorutil.MapError(err)
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		contact.Name = name
	}
	contact.Email = input.Email
	contact.Phone = input.Phone
	contact.Position = input.Position
	if err := s.contacts.Update(ctx, contact); err != nil {
		return nil, errorutil.MapError(err)
	}
	return contact, nil
}

func (s *CatalogService) ListContacts(ctx context.Context, actor *domain.UserProfile, companyID string) ([]domain.Contact, error) {
	if !actor.IsAgent() && (actor.CompanyID == nil || *actor.CompanyID != companyID) {
		return nil, errorutil.NewForbidden("access denied")
	}
	result, err := s.contacts.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, errorutil.MapError(err)
	}
	return result, nil
}

// EquipmentInput carries the writable equipment model fields.
type EquipmentInput struct {
	ModelCode string
	Name      string
	Category  string
}

func (s *CatalogService) CreateEquipmentModel(ctx context.Context, actor *domain.UserProfile, input EquipmentInput) (*domain.EquipmentModel, error) {
	if !actor.IsAgent() {
		return nil, errorutil.NewForbidden("only support agents can manage equipment models")
	}
	input.ModelCode = strings.TrimSpace(input.ModelCode)
	input.Name = strings.TrimSpace(input.Name)
	if input.ModelCode == "" || input.Name == "" {
		return nil, errorutil.NewValidationError("model code and name are required", nil)
	}
	model := &domain.EquipmentModel{ModelCode: input.ModelCode, Name: input.Name, Category: input.Category}
	if err := s.equipment.Create(ctx, model); err != nil {
		return nil, errorutil.MapError(err)
	}
	return model, nil
}

func (s *CatalogService) UpdateEquipmentModel(ctx context.Context, actor *domain.UserProfile, id string, input EquipmentInput) (*domain.EquipmentModel, error) {
	if !actor.IsAgent() {
		return nil, errorutil.NewForbidden("only support agents can manage equipment models")
	}
	model, err := s.equipment.GetByID(ctx, id)
	if err != nil {
		return nil, errorutil.MapError(err)
	}
	if code := strings.TrimSpace(input.ModelCode); code != "" {
		model.ModelCode = code
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		model.Name = name
	}
	model.Category = input.Category
	if err := s.equipment.Update(ctx, model); err != nil {
		return nil, errorutil.MapError(err)
	}
	return model, nil
}

// ListEquipmentModels is readable by any authenticated profile; requesters
// pick a model when opening tickets.
func (s *CatalogService) ListEquipmentModels(ctx context.Context) ([]domain.EquipmentModel, error) {
	result, err := s.equipment.List(ctx)
	if err != nil {
		return nil, errorutil.MapError(err)
	}
	return result, nil
}
