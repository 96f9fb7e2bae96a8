package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/domain"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/events"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/repository"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/ticketlog"
	apperrors "github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/pkg/util/errorutil"
)

// TicketService coordinates ticket workflows. Every state-changing write
// appends one activity log line to the ticket before the row update, so the
// legacy bracketed log stays the authoritative audit trail.
type TicketService struct {
	tickets    repository.TicketRepository
	profiles   repository.ProfileRepository
	companies  repository.CompanyRepository
	equipment  repository.EquipmentRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// TicketDependencies bundles repositories for ticket service.
type TicketDependencies struct {
	TicketRepo    repository.TicketRepository
	ProfileRepo   repository.ProfileRepository
	CompanyRepo   repository.CompanyRepository
	EquipmentRepo repository.EquipmentRepository
	Dispatcher    events.Dispatcher
	Now           func() time.Time
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	CompanyID        *string
	ContactID        *string
	EquipmentModelID *string
	Title            string
	Description      string
	Priority         domain.TicketPriority
	SerialNumber     *string
}

// TicketUpdateInput carries editable ticket fields.
type TicketUpdateInput struct {
	Title            *string
	Description      *string
	EquipmentModelID *string
	SerialNumber     *string
	Priority         *domain.TicketPriority
}

// TicketListFilter describes listing filters.
type TicketListFilter struct {
	CompanyID        *string
	AssigneeID       *string
	EquipmentModelID *string
	Statuses         []domain.TicketStatus
	Priorities       []domain.TicketPriority
	SearchTerm       *string
	CreatedFrom      *time.Time
	CreatedTo        *time.Time
	Limit            int
	Offset           int
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		profiles:   deps.ProfileRepo,
		companies:  deps.CompanyRepo,
		equipment:  deps.EquipmentRepo,
		dispatcher: deps.Dispatcher,
		now:        now,
	}
}

// CreateTicket creates a ticket for the acting requester or agent.
func (s *TicketService) CreateTicket(ctx context.Context, actor *domain.UserProfile, input TicketCreateInput) (*domain.Ticket, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}
	if input.CompanyID != nil {
		if _, err := s.companies.GetByID(ctx, *input.CompanyID); err != nil {
			return nil, apperrors.MapError(err)
		}
	}
	if input.EquipmentModelID != nil {
		if _, err := s.equipment.GetByID(ctx, *input.EquipmentModelID); err != nil {
			return nil, apperrors.MapError(err)
		}
	}

	companyID := input.CompanyID
	if companyID == nil && actor.CompanyID != nil {
		companyID = actor.CompanyID
	}

	ticket := &domain.Ticket{
		TicketNumber:     generateTicketNumber(),
		RequesterID:      actor.ID,
		CompanyID:        companyID,
		ContactID:        input.ContactID,
		EquipmentModelID: input.EquipmentModelID,
		Title:            title,
		Description:      strings.TrimSpace(input.Description),
		Status:           domain.TicketStatusOpen,
		Priority:         input.Priority,
		SerialNumber:     input.SerialNumber,
		TicketLog:        ticketlog.FormatLine(s.now(), "Ticket criado"),
	}
	if ticket.Priority == "" {
		ticket.Priority = domain.TicketPriorityMedium
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, actor, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			TicketNumber: ticket.TicketNumber,
			CompanyID:    ticket.CompanyID,
			Priority:     ticket.Priority,
			Title:        ticket.Title,
		},
	})
	return ticket, nil
}

// ListTickets returns tickets visible to the viewer: agents see everything
// matching the filter, requesters only their own.
func (s *TicketService) ListTickets(ctx context.Context, viewer *domain.UserProfile, filter TicketListFilter) ([]domain.Ticket, error) {
	if viewer == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	repoFilter := repository.TicketFilter{
		CompanyID:        filter.CompanyID,
		AssigneeID:       filter.AssigneeID,
		EquipmentModelID: filter.EquipmentModelID,
		Statuses:         filter.Statuses,
		Priorities:       filter.Priorities,
		SearchTerm:       filter.SearchTerm,
		CreatedFrom:      filter.CreatedFrom,
		CreatedTo:        filter.CreatedTo,
		Limit:            filter.Limit,
		Offset:           filter.Offset,
	}
	if !viewer.IsAgent() {
		viewerID := viewer.ID
		repoFilter.RequesterID = &viewerID
	}
	return s.tickets.ListWithFilter(ctx, repoFilter)
}

// GetTicket fetches a ticket, enforcing requester ownership.
func (s *TicketService) GetTicket(ctx context.Context, viewer *domain.UserProfile, ticketID string) (*domain.Ticket, error) {
	if viewer == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !viewer.IsAgent() && ticket.RequesterID != viewer.ID {
		return nil, apperrors.NewForbidden("access denied")
	}
	return ticket, nil
}

// UpdateStatus transitions a ticket's status as an agent, logging the
// change before the row write.
func (s *TicketService) UpdateStatus(ctx context.Context, actor *domain.UserProfile, ticketID string, newStatus domain.TicketStatus) (*domain.Ticket, error) {
	if !actor.IsAgent() {
		return nil, apperrors.NewForbidden("agent role required")
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !isValidTransition(ticket.Status, newStatus) {
		return nil, apperrors.NewConflict("invalid status transition", map[string]any{
			"from": ticket.Status,
			"to":   newStatus,
		})
	}
	return s.applyStatus(ctx, actor, ticket, newStatus)
}

// CloseTicketAsRequester lets the requester close their own resolved or
// waiting ticket.
func (s *TicketService) CloseTicketAsRequester(ctx context.Context, actor *domain.UserProfile, ticketID string) (*domain.Ticket, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if ticket.RequesterID != actor.ID {
		return nil, apperrors.NewForbidden("access denied")
	}
	if ticket.Status != domain.TicketStatusResolved && ticket.Status != domain.TicketStatusWaitingCustomer {
		return nil, apperrors.NewConflict("ticket cannot be closed in current status", nil)
	}
	return s.applyStatus(ctx, actor, ticket, domain.TicketStatusClosed)
}

func (s *TicketService) applyStatus(ctx context.Context, actor *domain.UserProfile, ticket *domain.Ticket, newStatus domain.TicketStatus) (*domain.Ticket, error) {
	now := s.now()
	oldStatus := ticket.Status
	ticket.Status = newStatus
	if newStatus == domain.TicketStatusClosed {
		ticket.ClosedAt = &now
	} else {
		ticket.ClosedAt = nil
	}
	line := ticketlog.FormatLine(now, ticketlog.StatusChangedLine(oldStatus, newStatus))
	ticket.TicketLog = ticketlog.Append(ticket.TicketLog, line)

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, actor, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return ticket, nil
}

// AssignTicket sets or clears the assignee, logging the change.
func (s *TicketService) AssignTicket(ctx context.Context, actor *domain.UserProfile, ticketID string, assigneeID *string) (*domain.Ticket, error) {
	if !actor.IsAgent() {
		return nil, apperrors.NewForbidden("agent role required")
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	var line string
	if assigneeID != nil {
		assignee, err := s.profiles.GetByID(ctx, *assigneeID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		if !assignee.IsAgent() {
			return nil, apperrors.NewValidationError("assignee must have agent role", nil)
		}
		line = ticketlog.AssigneeChangedLine(assignee.FullName)
	} else {
		line = ticketlog.AssigneeClearedLine()
	}

	now := s.now()
	ticket.AssigneeID = assigneeID
	ticket.TicketLog = ticketlog.Append(ticket.TicketLog, ticketlog.FormatLine(now, line))

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, actor, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		Payload:  events.TicketAssignedPayload{AssigneeID: assigneeID},
	})
	return ticket, nil
}

// UpdateTicket edits the ticket's descriptive fields, logging the edit.
func (s *TicketService) UpdateTicket(ctx context.Context, actor *domain.UserProfile, ticketID string, input TicketUpdateInput) (*domain.Ticket, error) {
	if !actor.IsAgent() {
		return nil, apperrors.NewForbidden("agent role required")
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, apperrors.NewValidationError("title required", nil)
		}
		ticket.Title = title
	}
	if input.Description != nil {
		ticket.Description = strings.TrimSpace(*input.Description)
	}
	if input.EquipmentModelID != nil {
		if _, err := s.equipment.GetByID(ctx, *input.EquipmentModelID); err != nil {
			return nil, apperrors.MapError(err)
		}
		ticket.EquipmentModelID = input.EquipmentModelID
	}
	if input.SerialNumber != nil {
		ticket.SerialNumber = input.SerialNumber
	}
	if input.Priority != nil {
		ticket.Priority = *input.Priority
	}

	now := s.now()
	ticket.TicketLog = ticketlog.Append(ticket.TicketLog, ticketlog.FormatLine(now, ticketlog.TicketEditedLine()))

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func generateTicketNumber() string {
	return "TKT-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func (s *TicketService) publish(ctx context.Context, actor *domain.UserProfile, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	if actor != nil {
		event.Actor = events.Actor{ProfileID: actor.ID, Role: actor.Role}
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	runes := []rune(body)
	if len(runes) <= max {
		return body
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

var allowedTransitions = map[domain.TicketStatus][]domain.TicketStatus{
	domain.TicketStatusOpen:            {domain.TicketStatusInProgress, domain.TicketStatusClosed},
	domain.TicketStatusInProgress:      {domain.TicketStatusWaitingCustomer, domain.TicketStatusResolved, domain.TicketStatusClosed},
	domain.TicketStatusWaitingCustomer: {domain.TicketStatusInProgress, domain.TicketStatusResolved, domain.TicketStatusClosed},
	domain.TicketStatusResolved:        {domain.TicketStatusClosed, domain.TicketStatusInProgress},
	domain.TicketStatusClosed:          {},
}

func isValidTransition(current, next domain.TicketStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
