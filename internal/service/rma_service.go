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

// RmaService drives the fixed 9-step checklist bound to an RMA request.
type RmaService struct {
	rmas       repository.RmaRepository
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// RmaDependencies bundles collaborators for the RMA service.
type RmaDependencies struct {
	RmaRepo    repository.RmaRepository
	TicketRepo repository.TicketRepository
	Dispatcher events.Dispatcher
	Now        func() time.Time
}

// NewRmaService constructs the service.
func NewRmaService(deps RmaDependencies) *RmaService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &RmaService{
		rmas:       deps.RmaRepo,
		tickets:    deps.TicketRepo,
		dispatcher: deps.Dispatcher,
		now:        now,
	}
}

// StepCompletionInput carries the toggle target plus the extra data the
// special-cased steps demand.
type StepCompletionInput struct {
	Completed bool
	// RmaNumber is consumed only when completing the numbering step.
	RmaNumber string
	// FunctionalityNotes is consumed only when un-completing the closing
	// step; an empty string is allowed there, pending a later save.
	FunctionalityNotes string
}

// RequestRma opens an RMA process on a ticket: the request row plus its
// batch of nine checklist steps, then a log line on the owning ticket.
func (s *RmaService) RequestRma(ctx context.Context, actor *domain.UserProfile, ticketID string) (*domain.RmaRequest, []domain.RmaStep, error) {
	if !actor.IsAgent() {
		return nil, nil, apperrors.NewForbidden("agent role required")
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}

	actorID := actor.ID
	req := &domain.RmaRequest{
		TicketID:    ticket.ID,
		Status:      domain.RmaStatusOpen,
		RequestedBy: &actorID,
	}
	steps := make([]domain.RmaStep, domain.StepCount)
	for i := range steps {
		steps[i] = domain.RmaStep{
			StepOrder: i + 1,
			StepName:  domain.DefaultStepNames[i],
		}
	}
	if err := s.rmas.CreateRequest(ctx, req, steps); err != nil {
		return nil, nil, apperrors.MapError(err)
	}

	now := s.now()
	if err := s.tickets.AppendLog(ctx, ticket.ID, ticketlog.FormatLine(now, ticketlog.RmaRequestedLine())); err != nil {
		return nil, nil, apperrors.MapError(err)
	}

	s.publish(ctx, actor, events.Event{
		Type:     events.EventRmaRequested,
		TicketID: ticket.ID,
		Payload: events.RmaRequestedPayload{
			RmaRequestID: req.ID,
			StepCount:    len(steps),
		},
	})
	return req, steps, nil
}

// GetRma returns the request with its ordered checklist.
func (s *RmaService) GetRma(ctx context.Context, rmaID string) (*domain.RmaRequest, []domain.RmaStep, error) {
	req, err := s.rmas.GetRequest(ctx, rmaID)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	steps, err := s.rmas.ListSteps(ctx, rmaID)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	return req, steps, nil
}

// SetStepCompletion toggles one checklist step. Standard steps only stamp
// or clear the completion pair. The numbering step additionally assigns the
// RMA number to the parent and logs it on the ticket; the closing step
// collects functionality notes while incomplete and completes the parent
// request when done. Each write applies its field group atomically: on
// failure nothing is considered changed and the caller re-fetches.
func (s *RmaService) SetStepCompletion(ctx context.Context, actor *domain.UserProfile, rmaID string, stepOrder int, input StepCompletionInput) (*domain.RmaStep, error) {
	if !actor.IsAgent() {
		return nil, apperrors.NewForbidden("agent role required")
	}
	if stepOrder < 1 || stepOrder > domain.StepCount {
		return nil, apperrors.NewValidationError("step order out of range", map[string]any{"step_order": stepOrder})
	}

	req, err := s.rmas.GetRequest(ctx, rmaID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	step, err := s.rmas.GetStep(ctx, rmaID, stepOrder)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	now := s.now()
	if input.Completed {
		actorID := actor.ID
		step.IsCompleted = true
		step.CompletedAt = &now
		step.CompletedBy = &actorID
	} else {
		step.IsCompleted = false
		step.CompletedAt = nil
		step.CompletedBy = nil
	}

	switch step.Kind() {
	case domain.StepRequiresRmaNumber:
		if input.Completed {
			return s.completeNumberStep(ctx, actor, req, step, input.RmaNumber, now)
		}
		// Un-completing never retracts an already assigned number.
		if err := s.rmas.UpdateStep(ctx, step); err != nil {
			return nil, apperrors.MapError(err)
		}

	case domain.StepRequiresClosingNotes:
		if input.Completed {
			step.FunctionalityNotes = nil
			if err := s.rmas.CompleteStepCloseRequest(ctx, step); err != nil {
				return nil, apperrors.MapError(err)
			}
			s.publish(ctx, actor, events.Event{
				Type:     events.EventRmaCompleted,
				TicketID: req.TicketID,
				Payload:  events.RmaCompletedPayload{RmaRequestID: req.ID, RmaNumber: req.RmaNumber},
			})
		} else {
			notes := input.FunctionalityNotes
			step.FunctionalityNotes = &notes
			if err := s.rmas.UpdateStep(ctx, step); err != nil {
				return nil, apperrors.MapError(err)
			}
		}

	default:
		if err := s.rmas.UpdateStep(ctx, step); err != nil {
			return nil, apperrors.MapError(err)
		}
	}

	s.publish(ctx, actor, events.Event{
		Type:     events.EventRmaStepToggled,
		TicketID: req.TicketID,
		Payload: events.RmaStepToggledPayload{
			RmaRequestID: req.ID,
			StepOrder:    step.StepOrder,
			IsCompleted:  step.IsCompleted,
		},
	})
	return step, nil
}

func (s *RmaService) completeNumberStep(ctx context.Context, actor *domain.UserProfile, req *domain.RmaRequest, step *domain.RmaStep, rawNumber string, now time.Time) (*domain.RmaStep, error) {
	number := strings.TrimSpace(rawNumber)
	if number == "" {
		return nil, apperrors.NewValidationError("RMA number required", nil)
	}
	if err := s.rmas.CompleteStepAssignNumber(ctx, step, number); err != nil {
		return nil, apperrors.MapError(err)
	}
	req.RmaNumber = &number

	line := ticketlog.FormatLine(now, ticketlog.RmaNumberAssignedLine(number, now))
	if err := s.tickets.AppendLog(ctx, req.TicketID, line); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, actor, events.Event{
		Type:     events.EventRmaNumberAssigned,
		TicketID: req.TicketID,
		Payload:  events.RmaNumberAssignedPayload{RmaRequestID: req.ID, RmaNumber: number},
	})
	s.publish(ctx, actor, events.Event{
		Type:     events.EventRmaStepToggled,
		TicketID: req.TicketID,
		Payload: events.RmaStepToggledPayload{
			RmaRequestID: req.ID,
			StepOrder:    step.StepOrder,
			IsCompleted:  true,
		},
	})
	return step, nil
}

// SaveFunctionalityNotes persists notes on the closing step independently
// of any completion toggle.
func (s *RmaService) SaveFunctionalityNotes(ctx context.Context, actor *domain.UserProfile, rmaID, text string) (*domain.RmaStep, error) {
	if !actor.IsAgent() {
		return nil, apperrors.NewForbidden("agent role required")
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, apperrors.NewValidationError("functionality notes required", nil)
	}

	step, err := s.rmas.GetStep(ctx, rmaID, domain.StepCount)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	step.FunctionalityNotes = &trimmed
	if err := s.rmas.UpdateStep(ctx, step); err != nil {
		return nil, apperrors.MapError(err)
	}
	return step, nil
}

// DeleteRma removes the checklist and then the request, in that order to
// satisfy referential constraints, and records the removal on the owning
// ticket. The two deletes are independent remote writes: when the second
// fails the first is not compensated, the caller sees a single error and
// storage may be left without steps.
func (s *RmaService) DeleteRma(ctx context.Context, actor *domain.UserProfile, rmaID string) error {
	if !actor.IsAgent() {
		return apperrors.NewForbidden("agent role required")
	}
	req, err := s.rmas.GetRequest(ctx, rmaID)
	if err != nil {
		return apperrors.MapError(err)
	}

	if err := s.rmas.DeleteSteps(ctx, rmaID); err != nil {
		return apperrors.MapError(err)
	}
	if err := s.rmas.DeleteRequest(ctx, rmaID); err != nil {
		return apperrors.MapError(err)
	}

	now := s.now()
	line := ticketlog.FormatLine(now, ticketlog.RmaDeletedLine(req.RmaNumber, now))
	if err := s.tickets.AppendLog(ctx, req.TicketID, line); err != nil {
		return apperrors.MapError(err)
	}

	s.publish(ctx, actor, events.Event{
		Type:     events.EventRmaDeleted,
		TicketID: req.TicketID,
		Payload:  events.RmaDeletedPayload{RmaRequestID: req.ID, RmaNumber: req.RmaNumber},
	})
	return nil
}

func (s *RmaService) publish(ctx context.Context, actor *domain.UserProfile, event events.Event) {
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
