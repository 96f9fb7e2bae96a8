package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen            TicketStatus = "open"
	TicketStatusInProgress      TicketStatus = "in_progress"
	TicketStatusWaitingCustomer TicketStatus = "waiting_customer"
	TicketStatusResolved        TicketStatus = "resolved"
	TicketStatusClosed          TicketStatus = "closed"
)

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// Ticket is the aggregate for support requests. TicketLog is a plain text
// field holding newline-separated "[DD/MM/YYYY HH:MM:SS] text" entries;
// every state-changing write appends one line before updating the row. The
// bracketed grammar is shared with previously stored logs and must be
// preserved byte-for-byte.
type Ticket struct {
	ID               string
	TicketNumber     string
	RequesterID      string
	CompanyID        *string
	ContactID        *string
	EquipmentModelID *string
	AssigneeID       *string
	Title            string
	Description      string
	Status           TicketStatus
	Priority         TicketPriority
	SerialNumber     *string
	TicketLog        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	ClosedAt         *time.Time
	DeletedAt        *time.Time
}
