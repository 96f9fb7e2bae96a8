package dto

import (
	"time"

	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/domain"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/repository"
)

// CompanyRequest payload for create and update.
type CompanyRequest struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	Notes   string `json:"notes"`
}

// CompanyResponse representation.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContactRequest payload for create and update.
type ContactRequest struct {
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Position  string `json:"position"`
}

// ContactResponse representation.
type ContactResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Position  string    `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EquipmentModelRequest payload for create and update.
type EquipmentModelRequest struct {
	ModelCode string `json:"model_code"`
	Name      string `json:"name"`
	Category  string `json:"category"`
}

// EquipmentModelResponse representation.
type EquipmentModelResponse struct {
	ID        string    `json:"id"`
	ModelCode string    `json:"model_code"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TrashItemResponse is one soft-deleted record awaiting restore or purge.
type TrashItemResponse struct {
	Scope     string    `json:"scope"`
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	DeletedAt time.Time `json:"deleted_at"`
}

// ToCompany maps a domain company.
func ToCompany(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Country:   c.Country,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToContact maps a domain contact.
func ToContact(c *domain.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Position:  c.Position,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToEquipmentModel maps a domain equipment model.
func ToEquipmentModel(m *domain.EquipmentModel) EquipmentModelResponse {
	return EquipmentModelResponse{
		ID:        m.ID,
		ModelCode: m.ModelCode,
		Name:      m.Name,
		Category:  m.Category,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ToTrashItems maps trash listings.
func ToTrashItems(items []repository.TrashItem) []TrashItemResponse {
	result := make([]TrashItemResponse, 0, len(items))
	for _, item := range items {
		result = append(result, TrashItemResponse{
			Scope:     string(item.Scope),
			ID:        item.ID,
			Label:     item.Label,
			DeletedAt: item.DeletedAt,
		})
	}
	return result
}
