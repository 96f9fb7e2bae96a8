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

// ActivityService produces the merged activity feed for a ticket and
// appends conversation messages to it.
type ActivityService struct {
	tickets     repository.TicketRepository
	messages    repository.TicketMessageRepository
	attachments repository.AttachmentRepository
	dispatcher  events.Dispatcher
	now         func() time.Time
}

// ActivityDependencies bundles collaborators for the activity service.
type ActivityDependencies struct {
	TicketRepo     repository.TicketRepository
	MessageRepo    repository.TicketMessageRepository
	AttachmentRepo repository.AttachmentRepository
	Dispatcher     events.Dispatcher
	Now            func() time.Time
}

// AttachmentInput is the metadata for one file already placed in external
// storage; only the reference is recorded here.
type AttachmentInput struct {
	StorageKey string
	FileName   string
	MimeType   string
	SizeBytes  int64
}

// NewActivityService constructs the service.
func NewActivityService(deps ActivityDependencies) *ActivityService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &ActivityService{
		tickets:     deps.TicketRepo,
		messages:    deps.MessageRepo,
		attachments: deps.AttachmentRepo,
		dispatcher:  deps.Dispatcher,
		now:         now,
	}
}

// Timeline returns the ticket's combined feed: structured messages merged
// with parsed log lines, ordered oldest first. Requester-capability viewers
// only see their own tickets and never receive internal notes; the ticket's
// creation time anchors log lines without a usable timestamp.
func (s *ActivityService) Timeline(ctx context.Context, viewer *domain.UserProfile, ticketID string) ([]domain.ActivityEntry, error) {
	if viewer == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.checkAccess(viewer, ticket); err != nil {
		return nil, err
	}

	msgs, err := s.messages.ListByTicket(ctx, ticket.ID, viewer.IsAgent())
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.loadAttachments(ctx, msgs); err != nil {
		return nil, apperrors.MapError(err)
	}
	logEntries := ticketlog.Parse(ticket.TicketLog, ticket.CreatedAt)
	return ticketlog.Merge(logEntries, msgs), nil
}

func (s *ActivityService) loadAttachments(ctx context.Context, msgs []domain.TicketMessage) error {
	if s.attachments == nil {
		return nil
	}
	for i := range msgs {
		attachments, err := s.attachments.ListByMessage(ctx, msgs[i].ID)
		if err != nil {
			return err
		}
		msgs[i].Attachments = attachments
	}
	return nil
}

// SendMessage appends a public conversation message and returns the
// refetched feed so the caller sees authoritative server state, including
// any log lines written concurrently. A nil actor is a silent no-op. This
// entry point never creates internal notes.
func (s *ActivityService) SendMessage(ctx context.Context, actor *domain.UserProfile, ticketID, text string, attachments []AttachmentInput) ([]domain.ActivityEntry, error) {
	if actor == nil {
		return nil, nil
	}
	content := strings.TrimSpace(text)
	if content == "" {
		return nil, apperrors.NewValidationError("message text required", nil)
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.checkAccess(actor, ticket); err != nil {
		return nil, err
	}

	senderType := domain.SenderTypeRequester
	if actor.IsAgent() {
		senderType = domain.SenderTypeAgent
	}
	actorID := actor.ID
	msg := &domain.TicketMessage{
		TicketID:    ticket.ID,
		Content:     content,
		SenderType:  senderType,
		SenderName:  actor.FullName,
		SenderEmail: actor.Email,
		IsInternal:  false,
		Channel:     domain.ChannelManual,
		CreatedBy:   &actorID,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.storeAttachments(ctx, msg.ID, attachments); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishMessageAdded(ctx, actor, ticket.ID, msg)
	return s.Timeline(ctx, actor, ticketID)
}

func (s *ActivityService) storeAttachments(ctx context.Context, messageID string, attachments []AttachmentInput) error {
	if s.attachments == nil {
		return nil
	}
	for _, att := range attachments {
		ref := &domain.AttachmentReference{
			TicketMessageID: messageID,
			StorageKey:      att.StorageKey,
			FileName:        att.FileName,
			MimeType:        att.MimeType,
			SizeBytes:       att.SizeBytes,
		}
		if err := s.attachments.Create(ctx, ref); err != nil {
			return err
		}
	}
	return nil
}

// AddInternalNote records an agent-only note invisible to requesters.
func (s *ActivityService) AddInternalNote(ctx context.Context, actor *domain.UserProfile, ticketID, text string) (*domain.TicketMessage, error) {
	if !actor.IsAgent() {
		return nil, apperrors.NewForbidden("agent role required")
	}
	content := strings.TrimSpace(text)
	if content == "" {
		return nil, apperrors.NewValidationError("note text required", nil)
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	actorID := actor.ID
	msg := &domain.TicketMessage{
		TicketID:    ticket.ID,
		Content:     content,
		SenderType:  domain.SenderTypeAgent,
		SenderName:  actor.FullName,
		SenderEmail: actor.Email,
		IsInternal:  true,
		Channel:     domain.ChannelManual,
		CreatedBy:   &actorID,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishMessageAdded(ctx, actor, ticket.ID, msg)
	return msg, nil
}

func (s *ActivityService) checkAccess(viewer *domain.UserProfile, ticket *domain.Ticket) error {
	if viewer.IsAgent() {
		return nil
	}
	if ticket.RequesterID != viewer.ID {
		return apperrors.NewForbidden("access denied")
	}
	return nil
}

func (s *ActivityService) publishMessageAdded(ctx context.Context, actor *domain.UserProfile, ticketID string, msg *domain.TicketMessage) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketMessageAdded,
		TicketID:  ticketID,
		Actor:     events.Actor{ProfileID: actor.ID, Role: actor.Role},
		Timestamp: s.now(),
		Payload: events.TicketMessageAddedPayload{
			MessageID:   msg.ID,
			SenderType:  msg.SenderType,
			IsInternal:  msg.IsInternal,
			BodyPreview: stringPreview(msg.Content, 120),
		},
	})
}
