package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/domain"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/events"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/ticketlog"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/pkg/util/errorutil"
)

func newActivityFixture(tickets *ticketRepoMock, messages *messageRepoMock, attachments *attachmentRepoMock) (*ActivityService, *dispatcherRecorder) {
	recorder := &dispatcherRecorder{}
	svc := NewActivityService(ActivityDependencies{
		TicketRepo:     tickets,
		MessageRepo:    messages,
		AttachmentRepo: attachments,
		Dispatcher:     recorder,
		Now:            func() time.Time { return fixedNow },
	})
	return svc, recorder
}

func ticketWithLog(log string) *domain.Ticket {
	return &domain.Ticket{
		ID:          "tk-1",
		RequesterID: "req-1",
		TicketLog:   log,
		CreatedAt:   time.Date(2025, 1, 1, 8, 0, 0, 0, time.Local),
	}
}

func TestTimeline_MergesLogAndMessagesChronologically(t *testing.T) {
	log := ticketlog.FormatLine(time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local), "Status alterado de open para in_progress")
	tickets := &ticketRepoMock{
		GetByIDFunc: func(_ context.Context, _ string) (*domain.Ticket, error) {
			return ticketWithLog(log), nil
		},
	}
	messages := &messageRepoMock{
		ListByTicketFunc: func(_ context.Context, _ string, includeInternal bool) ([]domain.TicketMessage, error) {
			assert.True(t, includeInternal, "agent viewers receive internal notes")
			return []domain.TicketMessage{
				{ID: "msg-1", Content: "Bom dia", CreatedAt: time.Date(2025, 3, 10, 10, 0, 0, 0, time.Local)},
			}, nil
		},
	}
	svc, _ := newActivityFixture(tickets, messages, &attachmentRepoMock{})

	entries, err := svc.Timeline(context.Background(), agentProfile(), "tk-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, domain.EntryTypeLog, entries[0].Type)
	assert.Equal(t, domain.ActionStatusChange, entries[0].Action)
	assert.Equal(t, domain.EntryTypeMessage, entries[1].Type)
	assert.Equal(t, "Bom dia", entries[1].Content)
}

func TestTimeline_RequesterNeverReceivesInternalNotes(t *testing.T) {
	tickets := &ticketRepoMock{
		GetByIDFunc: func(_ context.Context, _ string) (*domain.Ticket, error) {
			return ticketWithLog(""), nil
		},
	}
	messages := &messageRepoMock{
		ListByTicketFunc: func(_ context.Context, _ string, includeInternal bool) ([]domain.TicketMessage, error) {
			assert.False(t, includeInternal)
			return nil, nil
		},
	}
	svc, _ := newActivityFixture(tickets, messages, &attachmentRepoMock{})

	_, err := svc.Timeline(context.Background(), requesterProfile(), "tk-1")
	require.NoError(t, err)
}

func TestTimeline_RequesterCannotReadForeignTicket(t *testing.T) {
	tickets := &ticketRepoMock{
		GetByIDFunc: func(_ context.Context, _ string) (*domain.Ticket, error) {
			ticket := ticketWithLog("")
			ticket.RequesterID = "someone-else"
			return ticket, nil
		},
	}
	svc, _ := newActivityFixture(tickets, &messageRepoMock{}, &attachmentRepoMock{})

	_, err := svc.Timeline(context.Background(), requesterProfile(), "tk-1")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", errorutil.ToDomainError(err).Code)
}

func TestTimeline_HydratesAttachments(t *testing.T) {
	tickets := &ticketRepoMock{
		GetByIDFunc: func(_ context.Context, _ string) (*domain.Ticket, error) {
			return ticketWithLog(""), nil
		},
	}
	messages := &messageRepoMock{
		ListByTicketFunc: func(_ context.Context, _ string, _ bool) ([]domain.TicketMessage, error) {
			return []domain.TicketMessage{{ID: "msg-1", CreatedAt: fixedNow}}, nil
		},
	}
	attachments := &attachmentRepoMock{
		ListByMessageFunc: func(_ context.Context, messageID string) ([]domain.AttachmentReference, error) {
			return []domain.AttachmentReference{{ID: "att-1", TicketMessageID: messageID, FileName: "laudo.pdf"}}, nil
		},
	}
	svc, _ := newActivityFixture(tickets, messages, attachments)

	entries, err := svc.Timeline(context.Background(), agentProfile(), "tk-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].Message)
	require.Len(t, entries[0].Message.Attachments, 1)
	assert.Equal(t, "laudo.pdf", entries[0].Message.Attachments[0].FileName)
}

func TestSendMessage_NilActorIsSilentNoop(t *testing.T) {
	messages := &messageRepoMock{
		CreateFunc: func(_ context.Context, _ *domain.TicketMessage) error {
			t.Fatal("no message should be written without an actor")
			return nil
		},
	}
	svc, recorder := newActivityFixture(&ticketRepoMock{}, messages, &attachmentRepoMock{})

	entries, err := svc.SendMessage(context.Background(), nil, "tk-1", "oi", nil)
	require.NoError(t, err)
	assert.Nil(t, entries)
	assert.Empty(t, recorder.published)
}

func TestSendMessage_BlankTextRejected(t *testing.T) {
	svc, _ := newActivityFixture(&ticketRepoMock{}, &messageRepoMock{}, &attachmentRepoMock{})

	_, err := svc.SendMessage(context.Background(), agentProfile(), "tk-1", "   \n  ", nil)
	require.Error(t, err)
	assert.True(t, errorutil.IsValidation(err))
}

func TestSendMessage_SnapshotsSenderAndRefetches(t *testing.T) {
	var created *domain.TicketMessage
	listCalls := 0

	tickets := &ticketRepoMock{
		GetByIDFunc: func(_ context.Context, _ string) (*domain.Ticket, error) {
			return ticketWithLog(""), nil
		},
	}
	messages := &messageRepoMock{
		CreateFunc: func(_ context.Context, msg *domain.TicketMessage) error {
			msg.ID = "msg-1"
			msg.CreatedAt = fixedNow
			created = msg
			return nil
		},
		ListByTicketFunc: func(_ context.Context, _ string, _ bool) ([]domain.TicketMessage, error) {
			listCalls++
			if created == nil {
				return nil, nil
			}
			return []domain.TicketMessage{*created}, nil
		},
	}
	svc, recorder := newActivityFixture(tickets, messages, &attachmentRepoMock{})

	actor := requesterProfile()
	entries, err := svc.SendMessage(context.Background(), actor, "tk-1", "  Equipamento chegou  ", nil)
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, domain.SenderTypeRequester, created.SenderType)
	assert.Equal(t, actor.FullName, created.SenderName)
	assert.Equal(t, actor.Email, created.SenderEmail)
	assert.False(t, created.IsInternal)
	assert.Equal(t, domain.ChannelManual, created.Channel)
	require.NotNil(t, created.CreatedBy)
	assert.Equal(t, actor.ID, *created.CreatedBy)
	assert.Equal(t, "Equipamento chegou", created.Content)

	assert.Equal(t, 1, listCalls, "feed is refetched after the write")
	require.Len(t, entries, 1)
	assert.True(t, entries[0].OwnedBy(actor.ID))
	assert.Equal(t, []events.EventType{events.EventTicketMessageAdded}, recorder.typesSeen())
}

func TestSendMessage_StoresAttachmentMetadata(t *testing.T) {
	var stored []domain.AttachmentReference
	tickets := &ticketRepoMock{
		GetByIDFunc: func(_ context.Context, _ string) (*domain.Ticket, error) {
			return ticketWithLog(""), nil
		},
	}
	messages := &messageRepoMock{
		CreateFunc: func(_ context.Context, msg *domain.TicketMessage) error {
			msg.ID = "msg-1"
			return nil
		},
		ListByTicketFunc: func(_ context.Context, _ string, _ bool) ([]domain.TicketMessage, error) {
			return nil, nil
		},
	}
	attachments := &attachmentRepoMock{
		CreateFunc: func(_ context.Context, att *domain.AttachmentReference) error {
			stored = append(stored, *att)
			return nil
		},
	}
	svc, _ := newActivityFixture(tickets, messages, attachments)

	_, err := svc.SendMessage(context.Background(), agentProfile(), "tk-1", "segue laudo", []AttachmentInput{
		{StorageKey: "s3://bucket/laudo.pdf", FileName: "laudo.pdf", MimeType: "application/pdf", SizeBytes: 1024},
	})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "msg-1", stored[0].TicketMessageID)
	assert.Equal(t, "laudo.pdf", stored[0].FileName)
}

func TestAddInternalNote_AgentOnly(t *testing.T) {
	svc, _ := newActivityFixture(&ticketRepoMock{}, &messageRepoMock{}, &attachmentRepoMock{})

	_, err := svc.AddInternalNote(context.Background(), requesterProfile(), "tk-1", "nota")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", errorutil.ToDomainError(err).Code)
}

func TestAddInternalNote_MarksInternal(t *testing.T) {
	var created *domain.TicketMessage
	tickets := &ticketRepoMock{
		GetByIDFunc: func(_ context.Context, _ string) (*domain.Ticket, error) {
			return ticketWithLog(""), nil
		},
	}
	messages := &messageRepoMock{
		CreateFunc: func(_ context.Context, msg *domain.TicketMessage) error {
			created = msg
			return nil
		},
	}
	svc, _ := newActivityFixture(tickets, messages, &attachmentRepoMock{})

	msg, err := svc.AddInternalNote(context.Background(), agentProfile(), "tk-1", "cliente difícil, tratar com calma")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.True(t, msg.IsInternal)
	assert.Equal(t, domain.SenderTypeAgent, msg.SenderType)
}
