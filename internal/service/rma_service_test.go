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

var fixedNow = time.Date(2025, 3, 14, 15, 30, 0, 0, time.Local)

func agentProfile() *domain.UserProfile {
	return &domain.UserProfile{ID: "agent-1", FullName: "Ana Souza", Email: "ana@nortekbr.example", Role: domain.RoleSupportAgent, IsActive: true}
}

func requesterProfile() *domain.UserProfile {
	return &domain.UserProfile{ID: "req-1", FullName: "Carlos Lima", Email: "carlos@cliente.example", Role: domain.RoleRequester, IsActive: true}
}

func newRmaFixture(rmas *rmaRepoMock, tickets *ticketRepoMock) (*RmaService, *dispatcherRecorder) {
	recorder := &dispatcherRecorder{}
	svc := NewRmaService(RmaDependencies{
		RmaRepo:    rmas,
		TicketRepo: tickets,
		Dispatcher: recorder,
		Now:        func() time.Time { return fixedNow },
	})
	return svc, recorder
}

func TestRequestRma_CreatesNineStepsAndLogsTicket(t *testing.T) {
	var createdSteps []domain.RmaStep
	var appendedLine string

	rmas := &rmaRepoMock{
		CreateRequestFunc: func(_ context.Context, req *domain.RmaRequest, steps []domain.RmaStep) error {
			req.ID = "rma-1"
			createdSteps = steps
			return nil
		},
	}
	tickets := &ticketRepoMock{
		GetByIDFunc: func(_ context.Context, id string) (*domain.Ticket, error) {
			return &domain.Ticket{ID: id, RequesterID: "req-1"}, nil
		},
		AppendLogFunc: func(_ context.Context, _ string, line string) error {
			appendedLine = line
			return nil
		},
	}
	svc, recorder := newRmaFixture(rmas, tickets)

	req, steps, err := svc.RequestRma(context.Background(), agentProfile(), "tk-1")
	require.NoError(t, err)
	require.Len(t, steps, domain.StepCount)
	require.Len(t, createdSteps, domain.StepCount)

	assert.Equal(t, domain.RmaStatusOpen, req.Status)
	assert.Nil(t, req.RmaNumber)
	for i, step := range steps {
		assert.Equal(t, i+1, step.StepOrder)
		assert.Equal(t, domain.DefaultStepNames[i], step.StepName)
		assert.False(t, step.IsCompleted)
	}
	assert.Equal(t, ticketlog.FormatLine(fixedNow, "RMA solicitado"), appendedLine)
	assert.Equal(t, []events.EventType{events.EventRmaRequested}, recorder.typesSeen())
}

func TestRequestRma_RequesterForbidden(t *testing.T) {
	svc, _ := newRmaFixture(&rmaRepoMock{}, &ticketRepoMock{})

	_, _, err := svc.RequestRma(context.Background(), requesterProfile(), "tk-1")
	require.Error(t, err)
	domainErr := errorutil.ToDomainError(err)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

func TestSetStepCompletion_StandardStepStampsPair(t *testing.T) {
	var updated *domain.RmaStep
	rmas := &rmaRepoMock{
		GetRequestFunc: func(_ context.Context, id string) (*domain.RmaRequest, error) {
			return &domain.RmaRequest{ID: id, TicketID: "tk-1", Status: domain.RmaStatusOpen}, nil
		},
		GetStepFunc: func(_ context.Context, _ string, stepOrder int) (*domain.RmaStep, error) {
			return &domain.RmaStep{ID: "step-5", StepOrder: stepOrder, StepName: domain.DefaultStepNames[stepOrder-1]}, nil
		},
		UpdateStepFunc: func(_ context.Context, step *domain.RmaStep) error {
			updated = step
			return nil
		},
	}
	svc, recorder := newRmaFixture(rmas, &ticketRepoMock{})

	step, err := svc.SetStepCompletion(context.Background(), agentProfile(), "rma-1", 5, StepCompletionInput{Completed: true})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.True(t, step.IsCompleted)
	require.NotNil(t, step.CompletedAt)
	assert.Equal(t, fixedNow, *step.CompletedAt)
	require.NotNil(t, step.CompletedBy)
	assert.Equal(t, "agent-1", *step.CompletedBy)
	assert.Equal(t, []events.EventType{events.EventRmaStepToggled}, recorder.typesSeen())
}

func TestSetStepCompletion_UncompleteClearsPair(t *testing.T) {
	completedAt := fixedNow.Add(-time.Hour)
	completedBy := "agent-2"
	rmas := &rmaRepoMock{
		GetRequestFunc: func(_ context.Context, id string) (*domain.RmaRequest, error) {
			return &domain.RmaRequest{ID: id, TicketID: "tk-1"}, nil
		},
		GetStepFunc: func(_ context.Context, _ string, stepOrder int) (*domain.RmaStep, error) {
			return &domain.RmaStep{
				StepOrder:   stepOrder,
				IsCompleted: true,
				CompletedAt: &completedAt,
				CompletedBy: &completedBy,
			}, nil
		},
		UpdateStepFunc: func(_ context.Context, _ *domain.RmaStep) error { return nil },
	}
	svc, _ := newRmaFixture(rmas, &ticketRepoMock{})

	step, err := svc.SetStepCompletion(context.Background(), agentProfile(), "rma-1", 3, StepCompletionInput{Completed: false})
	require.NoError(t, err)
	assert.False(t, step.IsCompleted)
	assert.Nil(t, step.CompletedAt)
	assert.Nil(t, step.CompletedBy)
}

func TestSetStepCompletion_UncompleteNumberingStepKeepsNumber(t *testing.T) {
	number := "RMA-1001"
	completedAt := fixedNow.Add(-2 * time.Hour)
	completedBy := "agent-2"
	req := &domain.RmaRequest{ID: "rma-1", TicketID: "tk-1", RmaNumber: &number}
	var updated *domain.RmaStep
	rmas := &rmaRepoMock{
		GetRequestFunc: func(_ context.Context, _ string) (*domain.RmaRequest, error) {
			return req, nil
		},
		GetStepFunc: func(_ context.Context, _ string, stepOrder int) (*domain.RmaStep, error) {
			return &domain.RmaStep{
				StepOrder:   stepOrder,
				IsCompleted: true,
				CompletedAt: &completedAt,
				CompletedBy: &completedBy,
			}, nil
		},
		UpdateStepFunc: func(_ context.Context, step *domain.RmaStep) error {
			updated = step
			return nil
		},
		CompleteStepAssignNumberFunc: func(_ context.Context, _ *domain.RmaStep, _ string) error {
			t.Fatal("un-completing the numbering step must not touch the number assignment")
			return nil
		},
	}
	tickets := &ticketRepoMock{
		AppendLogFunc: func(_ context.Context, _, _ string) error {
			t.Fatal("un-completing the numbering step must not log")
			return nil
		},
	}
	svc, recorder := newRmaFixture(rmas, tickets)

	step, err := svc.SetStepCompletion(context.Background(), agentProfile(), "rma-1", 1, StepCompletionInput{Completed: false})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.False(t, step.IsCompleted)
	assert.Nil(t, step.CompletedAt)
	assert.Nil(t, step.CompletedBy)
	require.NotNil(t, req.RmaNumber, "assigned number survives the toggle")
	assert.Equal(t, "RMA-1001", *req.RmaNumber)
	assert.Equal(t, []events.EventType{events.EventRmaStepToggled}, recorder.typesSeen())
}

func TestSetStepCompletion_NumberingStepRequiresNumber(t *testing.T) {
	rmas := &rmaRepoMock{
		GetRequestFunc: func(_ context.Context, id string) (*domain.RmaRequest, error) {
			return &domain.RmaRequest{ID: id, TicketID: "tk-1"}, nil
		},
		GetStepFunc: func(_ context.Context, _ string, stepOrder int) (*domain.RmaStep, error) {
			return &domain.RmaStep{StepOrder: stepOrder}, nil
		},
		CompleteStepAssignNumberFunc: func(_ context.Context, _ *domain.RmaStep, _ string) error {
			t.Fatal("no write expected when the number is missing")
			return nil
		},
	}
	svc, recorder := newRmaFixture(rmas, &ticketRepoMock{})

	_, err := svc.SetStepCompletion(context.Background(), agentProfile(), "rma-1", 1, StepCompletionInput{Completed: true, RmaNumber: "   "})
	require.Error(t, err)
	assert.True(t, errorutil.IsValidation(err))
	assert.Empty(t, recorder.published)
}

func TestSetStepCompletion_NumberingStepAssignsNumberAndLogs(t *testing.T) {
	var assignedNumber string
	var appendedLine string
	rmas := &rmaRepoMock{
		GetRequestFunc: func(_ context.Context, id string) (*domain.RmaRequest, error) {
			return &domain.RmaRequest{ID: id, TicketID: "tk-1"}, nil
		},
		GetStepFunc: func(_ context.Context, _ string, stepOrder int) (*domain.RmaStep, error) {
			return &domain.RmaStep{StepOrder: stepOrder}, nil
		},
		CompleteStepAssignNumberFunc: func(_ context.Context, step *domain.RmaStep, number string) error {
			assignedNumber = number
			return nil
		},
	}
	tickets := &ticketRepoMock{
		AppendLogFunc: func(_ context.Context, _ string, line string) error {
			appendedLine = line
			return nil
		},
	}
	svc, recorder := newRmaFixture(rmas, tickets)

	step, err := svc.SetStepCompletion(context.Background(), agentProfile(), "rma-1", 1, StepCompletionInput{Completed: true, RmaNumber: " RMA-1001 "})
	require.NoError(t, err)

	assert.Equal(t, "RMA-1001", assignedNumber)
	assert.True(t, step.IsCompleted)
	expected := ticketlog.FormatLine(fixedNow, ticketlog.RmaNumberAssignedLine("RMA-1001", fixedNow))
	assert.Equal(t, expected, appendedLine)
	assert.Equal(t, []events.EventType{events.EventRmaNumberAssigned, events.EventRmaStepToggled}, recorder.typesSeen())
}

func TestSetStepCompletion_ClosingStepCompletesRequest(t *testing.T) {
	notes := "sensor ok"
	var closedStep *domain.RmaStep
	rmas := &rmaRepoMock{
		GetRequestFunc: func(_ context.Context, id string) (*domain.RmaRequest, error) {
			number := "RMA-1001"
			return &domain.RmaRequest{ID: id, TicketID: "tk-1", RmaNumber: &number}, nil
		},
		GetStepFunc: func(_ context.Context, _ string, stepOrder int) (*domain.RmaStep, error) {
			return &domain.RmaStep{StepOrder: stepOrder, FunctionalityNotes: &notes}, nil
		},
		CompleteStepCloseRequestFunc: func(_ context.Context, step *domain.RmaStep) error {
			closedStep = step
			return nil
		},
	}
	svc, recorder := newRmaFixture(rmas, &ticketRepoMock{})

	step, err := svc.SetStepCompletion(context.Background(), agentProfile(), "rma-1", domain.StepCount, StepCompletionInput{Completed: true})
	require.NoError(t, err)
	require.NotNil(t, closedStep)

	assert.True(t, step.IsCompleted)
	assert.Nil(t, step.FunctionalityNotes, "closing the final step discards draft notes")
	assert.Equal(t, []events.EventType{events.EventRmaCompleted, events.EventRmaStepToggled}, recorder.typesSeen())
}

func TestSetStepCompletion_ClosingStepIncompleteKeepsNotes(t *testing.T) {
	var updated *domain.RmaStep
	rmas := &rmaRepoMock{
		GetRequestFunc: func(_ context.Context, id string) (*domain.RmaRequest, error) {
			return &domain.RmaRequest{ID: id, TicketID: "tk-1"}, nil
		},
		GetStepFunc: func(_ context.Context, _ string, stepOrder int) (*domain.RmaStep, error) {
			return &domain.RmaStep{StepOrder: stepOrder}, nil
		},
		UpdateStepFunc: func(_ context.Context, step *domain.RmaStep) error {
			updated = step
			return nil
		},
	}
	svc, _ := newRmaFixture(rmas, &ticketRepoMock{})

	step, err := svc.SetStepCompletion(context.Background(), agentProfile(), "rma-1", domain.StepCount, StepCompletionInput{
		Completed:          false,
		FunctionalityNotes: "sensor dead",
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.NotNil(t, step.FunctionalityNotes)
	assert.Equal(t, "sensor dead", *step.FunctionalityNotes)
	assert.False(t, step.IsCompleted)
}

func TestSetStepCompletion_OrderOutOfRange(t *testing.T) {
	svc, _ := newRmaFixture(&rmaRepoMock{}, &ticketRepoMock{})

	for _, order := range []int{0, 10, -1} {
		_, err := svc.SetStepCompletion(context.Background(), agentProfile(), "rma-1", order, StepCompletionInput{Completed: true})
		require.Error(t, err)
		assert.True(t, errorutil.IsValidation(err))
	}
}

func TestSaveFunctionalityNotes(t *testing.T) {
	var updated *domain.RmaStep
	rmas := &rmaRepoMock{
		GetStepFunc: func(_ context.Context, _ string, stepOrder int) (*domain.RmaStep, error) {
			require.Equal(t, domain.StepCount, stepOrder)
			return &domain.RmaStep{StepOrder: stepOrder}, nil
		},
		UpdateStepFunc: func(_ context.Context, step *domain.RmaStep) error {
			updated = step
			return nil
		},
	}
	svc, _ := newRmaFixture(rmas, &ticketRepoMock{})

	step, err := svc.SaveFunctionalityNotes(context.Background(), agentProfile(), "rma-1", "  equipamento operacional  ")
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.NotNil(t, step.FunctionalityNotes)
	assert.Equal(t, "equipamento operacional", *step.FunctionalityNotes)

	_, err = svc.SaveFunctionalityNotes(context.Background(), agentProfile(), "rma-1", "   ")
	require.Error(t, err)
	assert.True(t, errorutil.IsValidation(err))
}

func TestDeleteRma_StepsBeforeRequestAndLogs(t *testing.T) {
	var order []string
	var appendedLine string
	number := "RMA-77"
	rmas := &rmaRepoMock{
		GetRequestFunc: func(_ context.Context, id string) (*domain.RmaRequest, error) {
			return &domain.RmaRequest{ID: id, TicketID: "tk-1", RmaNumber: &number}, nil
		},
		DeleteStepsFunc: func(_ context.Context, _ string) error {
			order = append(order, "steps")
			return nil
		},
		DeleteRequestFunc: func(_ context.Context, _ string) error {
			order = append(order, "request")
			return nil
		},
	}
	tickets := &ticketRepoMock{
		AppendLogFunc: func(_ context.Context, _ string, line string) error {
			appendedLine = line
			return nil
		},
	}
	svc, recorder := newRmaFixture(rmas, tickets)

	err := svc.DeleteRma(context.Background(), agentProfile(), "rma-1")
	require.NoError(t, err)

	assert.Equal(t, []string{"steps", "request"}, order)
	expected := ticketlog.FormatLine(fixedNow, ticketlog.RmaDeletedLine(&number, fixedNow))
	assert.Equal(t, expected, appendedLine)
	assert.Contains(t, appendedLine, "RMA RMA-77 excluído em")
	assert.Equal(t, []events.EventType{events.EventRmaDeleted}, recorder.typesSeen())
}

func TestDeleteRma_WithoutNumberUsesFallbackLabel(t *testing.T) {
	var appendedLine string
	rmas := &rmaRepoMock{
		GetRequestFunc: func(_ context.Context, id string) (*domain.RmaRequest, error) {
			return &domain.RmaRequest{ID: id, TicketID: "tk-1"}, nil
		},
		DeleteStepsFunc:   func(_ context.Context, _ string) error { return nil },
		DeleteRequestFunc: func(_ context.Context, _ string) error { return nil },
	}
	tickets := &ticketRepoMock{
		AppendLogFunc: func(_ context.Context, _ string, line string) error {
			appendedLine = line
			return nil
		},
	}
	svc, _ := newRmaFixture(rmas, tickets)

	require.NoError(t, svc.DeleteRma(context.Background(), agentProfile(), "rma-1"))
	assert.Contains(t, appendedLine, "RMA sem número excluído em")
}
