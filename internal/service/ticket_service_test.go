package service

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/domain"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/events"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/repository"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/pkg/util/errorutil"
)

func newTicketFixture(tickets *ticketRepoMock, profiles *profileRepoMock) (*TicketService, *dispatcherRecorder) {
	recorder := &dispatcherRecorder{}
	svc := NewTicketService(TicketDependencies{
		TicketRepo:  tickets,
		ProfileRepo: profiles,
		CompanyRepo: &companyRepoMock{
			GetByIDFunc: func(_ context.Context, id string) (*domain.Company, error) {
				return &domain.Company{ID: id, Name: "Oceanix"}, nil
			},
		},
		EquipmentRepo: &equipmentRepoMock{
			GetByIDFunc: func(_ context.Context, id string) (*domain.EquipmentModel, error) {
				return &domain.EquipmentModel{ID: id, ModelCode: "AQ-500"}, nil
			},
		},
		Dispatcher: recorder,
		Now:        func() time.Time { return fixedNow },
	})
	return svc, recorder
}

func TestCreateTicket_DefaultsAndInitialLog(t *testing.T) {
	var created *domain.Ticket
	tickets := &ticketRepoMock{
		CreateFunc: func(_ context.Context, ticket *domain.Ticket) error {
			ticket.ID = "tk-1"
			created = ticket
			return nil
		},
	}
	svc, recorder := newTicketFixture(tickets, &profileRepoMock{})

	companyID := "co-1"
	actor := requesterProfile()
	actor.CompanyID = &companyID

	ticket, err := svc.CreateTicket(context.Background(), actor, TicketCreateInput{
		Title:       "  ADCP sem leitura  ",
		Description: "perda de sinal em 20m",
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, "ADCP sem leitura", ticket.Title)
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Equal(t, domain.TicketPriorityMedium, ticket.Priority)
	assert.Equal(t, actor.ID, ticket.RequesterID)
	require.NotNil(t, ticket.CompanyID)
	assert.Equal(t, companyID, *ticket.CompanyID, "company falls back to the actor's own")
	assert.True(t, strings.HasPrefix(ticket.TicketNumber, "TKT-"))
	assert.Contains(t, ticket.TicketLog, "Ticket criado")
	assert.True(t, strings.HasPrefix(ticket.TicketLog, "[14/03/2025 15:30:00]"))
	assert.Equal(t, []events.EventType{events.EventTicketCreated}, recorder.typesSeen())
}

func TestCreateTicket_TitleRequired(t *testing.T) {
	svc, _ := newTicketFixture(&ticketRepoMock{}, &profileRepoMock{})

	_, err := svc.CreateTicket(context.Background(), requesterProfile(), TicketCreateInput{Title: "   "})
	require.Error(t, err)
	assert.True(t, errorutil.IsValidation(err))
}

func TestListTickets_RequesterScopedToOwn(t *testing.T) {
	var captured repository.TicketFilter
	tickets := &ticketRepoMock{
		ListWithFilterFunc: func(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
			captured = filter
			return nil, nil
		},
	}
	svc, _ := newTicketFixture(tickets, &profileRepoMock{})

	_, err := svc.ListTickets(context.Background(), requesterProfile(), TicketListFilter{})
	require.NoError(t, err)
	require.NotNil(t, captured.RequesterID)
	assert.Equal(t, "req-1", *captured.RequesterID)

	_, err = svc.ListTickets(context.Background(), agentProfile(), TicketListFilter{})
	require.NoError(t, err)
	assert.Nil(t, captured.RequesterID, "agents see everything")
}

func TestUpdateStatus_ValidTransitionLogsBeforeWrite(t *testing.T) {
	var updated *domain.Ticket
	tickets := &ticketRepoMock{
		GetByIDFunc: func(_ context.Context, id string) (*domain.Ticket, error) {
			return &domain.Ticket{ID: id, Status: domain.TicketStatusOpen, RequesterID: "req-1"}, nil
		},
		UpdateFunc: func(_ context.Context, ticket *domain.Ticket) error {
			updated = ticket
			return nil
		},
	}
	svc, recorder := newTicketFixture(tickets, &profileRepoMock{})

	ticket, err := svc.UpdateStatus(context.Background(), agentProfile(), "tk-1", domain.TicketStatusInProgress)
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, domain.TicketStatusInProgress, ticket.Status)
	assert.Contains(t, updated.TicketLog, "Status alterado de open para in_progress")
	assert.Equal(t, []events.EventType{events.EventTicketStatusChanged}, recorder.typesSeen())
}

func TestUpdateStatus_InvalidTransitionConflicts(t *testing.T) {
	tickets := &ticketRepoMock{
		GetByIDFunc: func(_ context.Context, id string) (*domain.Ticket, error) {
			return &domain.Ticket{ID: id, Status: domain.TicketStatusClosed}, nil
		},
	}
	svc, _ := newTicketFixture(tickets, &profileRepoMock{})

	_, err := svc.UpdateStatus(context.Background(), agentProfile(), "tk-1", domain.TicketStatusOpen)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", errorutil.ToDomainError(err).Code)
}

func TestCloseTicketAsRequester(t *testing.T) {
	cases := []struct {
		name    string
		status  domain.TicketStatus
		ownerID string
		wantErr string
	}{
		{name: "resolved own ticket closes", status: domain.TicketStatusResolved, ownerID: "req-1"},
		{name: "waiting own ticket closes", status: domain.TicketStatusWaitingCustomer, ownerID: "req-1"},
		{name: "open ticket conflicts", status: domain.TicketStatusOpen, ownerID: "req-1", wantErr: "CONFLICT"},
		{name: "foreign ticket forbidden", status: domain.TicketStatusResolved, ownerID: "other", wantErr: "FORBIDDEN"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tickets := &ticketRepoMock{
				GetByIDFunc: func(_ context.Context, id string) (*domain.Ticket, error) {
					return &domain.Ticket{ID: id, Status: tc.status, RequesterID: tc.ownerID}, nil
				},
				UpdateFunc: func(_ context.Context, _ *domain.Ticket) error { return nil },
			}
			svc, _ := newTicketFixture(tickets, &profileRepoMock{})

			ticket, err := svc.CloseTicketAsRequester(context.Background(), requesterProfile(), "tk-1")
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tc.wantErr, errorutil.ToDomainError(err).Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.TicketStatusClosed, ticket.Status)
			require.NotNil(t, ticket.ClosedAt)
			assert.Equal(t, fixedNow, *ticket.ClosedAt)
		})
	}
}

func TestAssignTicket_LogsAssigneeName(t *testing.T) {
	var updated *domain.Ticket
	tickets := &ticketRepoMock{
		GetByIDFunc: func(_ context.Context, id string) (*domain.Ticket, error) {
			return &domain.Ticket{ID: id, Status: domain.TicketStatusOpen}, nil
		},
		UpdateFunc: func(_ context.Context, ticket *domain.Ticket) error {
			updated = ticket
			return nil
		},
	}
	profiles := &profileRepoMock{
		GetByIDFunc: func(_ context.Context, id string) (*domain.UserProfile, error) {
			return &domain.UserProfile{ID: id, FullName: "Beatriz Ramos", Role: domain.RoleSupportAgent}, nil
		},
	}
	svc, _ := newTicketFixture(tickets, profiles)

	assigneeID := "agent-2"
	ticket, err := svc.AssignTicket(context.Background(), agentProfile(), "tk-1", &assigneeID)
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.NotNil(t, ticket.AssigneeID)
	assert.Contains(t, updated.TicketLog, "Responsável alterado para Beatriz Ramos")
}

func TestAssignTicket_ClearingLogsRemoval(t *testing.T) {
	var updated *domain.Ticket
	tickets := &ticketRepoMock{
		GetByIDFunc: func(_ context.Context, id string) (*domain.Ticket, error) {
			assignee := "agent-2"
			return &domain.Ticket{ID: id, AssigneeID: &assignee}, nil
		},
		UpdateFunc: func(_ context.Context, ticket *domain.Ticket) error {
			updated = ticket
			return nil
		},
	}
	svc, _ := newTicketFixture(tickets, &profileRepoMock{})

	ticket, err := svc.AssignTicket(context.Background(), agentProfile(), "tk-1", nil)
	require.NoError(t, err)
	assert.Nil(t, ticket.AssigneeID)
	assert.Contains(t, updated.TicketLog, "Responsável removido")
}

func TestAssignTicket_RejectsNonAgentAssignee(t *testing.T) {
	tickets := &ticketRepoMock{
		GetByIDFunc: func(_ context.Context, id string) (*domain.Ticket, error) {
			return &domain.Ticket{ID: id}, nil
		},
	}
	profiles := &profileRepoMock{
		GetByIDFunc: func(_ context.Context, id string) (*domain.UserProfile, error) {
			return &domain.UserProfile{ID: id, Role: domain.RoleRequester}, nil
		},
	}
	svc, _ := newTicketFixture(tickets, profiles)

	assigneeID := "req-9"
	_, err := svc.AssignTicket(context.Background(), agentProfile(), "tk-1", &assigneeID)
	require.Error(t, err)
	assert.True(t, errorutil.IsValidation(err))
}

func TestUpdateTicket_AppendsEditLine(t *testing.T) {
	var updated *domain.Ticket
	tickets := &ticketRepoMock{
		GetByIDFunc: func(_ context.Context, id string) (*domain.Ticket, error) {
			return &domain.Ticket{ID: id, Title: "antigo", TicketLog: "[01/01/2025 08:00:00] Ticket criado"}, nil
		},
		UpdateFunc: func(_ context.Context, ticket *domain.Ticket) error {
			updated = ticket
			return nil
		},
	}
	svc, _ := newTicketFixture(tickets, &profileRepoMock{})

	title := "novo título"
	ticket, err := svc.UpdateTicket(context.Background(), agentProfile(), "tk-1", TicketUpdateInput{Title: &title})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, "novo título", ticket.Title)
	lines := strings.Split(updated.TicketLog, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "Ticket editado")
}

func TestStringPreview_TruncatesOnRuneBoundary(t *testing.T) {
	assert.Equal(t, "não recebi", stringPreview("  não recebi  ", 20))

	accented := strings.Repeat("çã", 50)
	got := stringPreview(accented, 21)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("çã", 9)+"...", got)

	assert.Equal(t, "çã", stringPreview("çãé", 2))
}
