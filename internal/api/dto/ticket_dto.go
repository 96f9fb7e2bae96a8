package dto

import (
	"time"

	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	CompanyID        *string               `json:"company_id"`
	ContactID        *string               `json:"contact_id"`
	EquipmentModelID *string               `json:"equipment_model_id"`
	Title            string                `json:"title"`
	Description      string                `json:"description"`
	Priority         domain.TicketPriority `json:"priority"`
	SerialNumber     *string               `json:"serial_number"`
}

// UpdateTicketRequest carries partial edits; nil fields are untouched.
type UpdateTicketRequest struct {
	Title            *string                `json:"title"`
	Description      *string                `json:"description"`
	EquipmentModelID *string                `json:"equipment_model_id"`
	SerialNumber     *string                `json:"serial_number"`
	Priority         *domain.TicketPriority `json:"priority"`
}

// UpdateTicketStatusRequest payload.
type UpdateTicketStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// AssignTicketRequest payload; a nil assignee clears the assignment.
type AssignTicketRequest struct {
	AssigneeID *string `json:"assignee_id"`
}

// TicketListQuery captures query filters for listing endpoints.
type TicketListQuery struct {
	CompanyID        *string
	AssigneeID       *string
	EquipmentModelID *string
	Statuses         []domain.TicketStatus
	Priorities       []domain.TicketPriority
	Search           *string
	CreatedFrom      *time.Time
	CreatedTo        *time.Time
	Page             int
	PageSize         int
}

// TicketSummary response.
type TicketSummary struct {
	ID               string                `json:"id"`
	TicketNumber     string                `json:"ticket_number"`
	CompanyID        *string               `json:"company_id"`
	EquipmentModelID *string               `json:"equipment_model_id"`
	AssigneeID       *string               `json:"assignee_id"`
	Title            string                `json:"title"`
	Status           domain.TicketStatus   `json:"status"`
	Priority         domain.TicketPriority `json:"priority"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// TicketDetailResponse provides full ticket info.
type TicketDetailResponse struct {
	ID               string                `json:"id"`
	TicketNumber     string                `json:"ticket_number"`
	RequesterID      string                `json:"requester_id"`
	CompanyID        *string               `json:"company_id"`
	ContactID        *string               `json:"contact_id"`
	EquipmentModelID *string               `json:"equipment_model_id"`
	AssigneeID       *string               `json:"assignee_id"`
	Title            string                `json:"title"`
	Description      string                `json:"description"`
	Status           domain.TicketStatus   `json:"status"`
	Priority         domain.TicketPriority `json:"priority"`
	SerialNumber     *string               `json:"serial_number"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
	ClosedAt         *time.Time            `json:"closed_at"`
}

// ToTicketSummary maps a domain ticket onto the list representation.
func ToTicketSummary(t *domain.Ticket) TicketSummary {
	return TicketSummary{
		ID:               t.ID,
		TicketNumber:     t.TicketNumber,
		CompanyID:        t.CompanyID,
		EquipmentModelID: t.EquipmentModelID,
		AssigneeID:       t.AssigneeID,
		Title:            t.Title,
		Status:           t.Status,
		Priority:         t.Priority,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

// ToTicketDetail maps a domain ticket onto the detail representation. The
// raw activity log text is not exposed; clients read the merged timeline.
func ToTicketDetail(t *domain.Ticket) TicketDetailResponse {
	return TicketDetailResponse{
		ID:               t.ID,
		TicketNumber:     t.TicketNumber,
		RequesterID:      t.RequesterID,
		CompanyID:        t.CompanyID,
		ContactID:        t.ContactID,
		EquipmentModelID: t.EquipmentModelID,
		AssigneeID:       t.AssigneeID,
		Title:            t.Title,
		Description:      t.Description,
		Status:           t.Status,
		Priority:         t.Priority,
		SerialNumber:     t.SerialNumber,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
		ClosedAt:         t.ClosedAt,
	}
}
