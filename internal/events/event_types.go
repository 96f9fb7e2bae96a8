package events

import (
	"time"

	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketAssigned      EventType = "ticket_assigned"
	EventTicketMessageAdded  EventType = "ticket_message_added"
	EventRmaRequested        EventType = "rma_requested"
	EventRmaNumberAssigned   EventType = "rma_number_assigned"
	EventRmaStepToggled      EventType = "rma_step_toggled"
	EventRmaCompleted        EventType = "rma_completed"
	EventRmaDeleted          EventType = "rma_deleted"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	ProfileID string      `json:"profile_id,omitempty"`
	Role      domain.Role `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketNumber string                `json:"ticket_number"`
	CompanyID    *string               `json:"company_id,omitempty"`
	Priority     domain.TicketPriority `json:"priority"`
	Title        string                `json:"title"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	AssigneeID *string `json:"assignee_id,omitempty"`
}

// TicketMessageAddedPayload payload.
type TicketMessageAddedPayload struct {
	MessageID   string            `json:"message_id"`
	SenderType  domain.SenderType `json:"sender_type"`
	IsInternal  bool              `json:"is_internal"`
	BodyPreview string            `json:"body_preview"`
}

// RmaRequestedPayload payload.
type RmaRequestedPayload struct {
	RmaRequestID string `json:"rma_request_id"`
	StepCount    int    `json:"step_count"`
}

// RmaNumberAssignedPayload payload.
type RmaNumberAssignedPayload struct {
	RmaRequestID string `json:"rma_request_id"`
	RmaNumber    string `json:"rma_number"`
}

// RmaStepToggledPayload payload.
type RmaStepToggledPayload struct {
	RmaRequestID string `json:"rma_request_id"`
	StepOrder    int    `json:"step_order"`
	IsCompleted  bool   `json:"is_completed"`
}

// RmaCompletedPayload payload.
type RmaCompletedPayload struct {
	RmaRequestID string  `json:"rma_request_id"`
	RmaNumber    *string `json:"rma_number,omitempty"`
}

// RmaDeletedPayload payload.
type RmaDeletedPayload struct {
	RmaRequestID string  `json:"rma_request_id"`
	RmaNumber    *string `json:"rma_number,omitempty"`
}
