package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/domain"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/events"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/repository"
)

type ticketRepoMock struct {
	CreateFunc         func(ctx context.Context, ticket *domain.Ticket) error
	UpdateFunc         func(ctx context.Context, ticket *domain.Ticket) error
	GetByIDFunc        func(ctx context.Context, id string) (*domain.Ticket, error)
	GetByNumberFunc    func(ctx context.Context, number string) (*domain.Ticket, error)
	ListWithFilterFunc func(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error)
	AppendLogFunc      func(ctx context.Context, ticketID, line string) error
}

func (m *ticketRepoMock) Create(ctx context.Context, ticket *domain.Ticket) error {
	return m.CreateFunc(ctx, ticket)
}

func (m *ticketRepoMock) Update(ctx context.Context, ticket *domain.Ticket) error {
	return m.UpdateFunc(ctx, ticket)
}

func (m *ticketRepoMock) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *ticketRepoMock) GetByNumber(ctx context.Context, number string) (*domain.Ticket, error) {
	if m.GetByNumberFunc == nil {
		return nil, pgx.ErrNoRows
	}
	return m.GetByNumberFunc(ctx, number)
}

func (m *ticketRepoMock) ListWithFilter(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	return m.ListWithFilterFunc(ctx, filter)
}

func (m *ticketRepoMock) AppendLog(ctx context.Context, ticketID, line string) error {
	return m.AppendLogFunc(ctx, ticketID, line)
}

type messageRepoMock struct {
	CreateFunc       func(ctx context.Context, msg *domain.TicketMessage) error
	ListByTicketFunc func(ctx context.Context, ticketID string, includeInternal bool) ([]domain.TicketMessage, error)
}

func (m *messageRepoMock) Create(ctx context.Context, msg *domain.TicketMessage) error {
	return m.CreateFunc(ctx, msg)
}

func (m *messageRepoMock) ListByTicket(ctx context.Context, ticketID string, includeInternal bool) ([]domain.TicketMessage, error) {
	return m.ListByTicketFunc(ctx, ticketID, includeInternal)
}

type attachmentRepoMock struct {
	CreateFunc        func(ctx context.Context, attachment *domain.AttachmentReference) error
	ListByMessageFunc func(ctx context.Context, messageID string) ([]domain.AttachmentReference, error)
}

func (m *attachmentRepoMock) Create(ctx context.Context, attachment *domain.AttachmentReference) error {
	if m.CreateFunc == nil {
		return nil
	}
	return m.CreateFunc(ctx, attachment)
}

func (m *attachmentRepoMock) ListByMessage(ctx context.Context, messageID string) ([]domain.AttachmentReference, error) {
	if m.ListByMessageFunc == nil {
		return nil, nil
	}
	return m.ListByMessageFunc(ctx, messageID)
}

type rmaRepoMock struct {
	CreateRequestFunc            func(ctx context.Context, req *domain.RmaRequest, steps []domain.RmaStep) error
	GetRequestFunc               func(ctx context.Context, id string) (*domain.RmaRequest, error)
	ListRequestsByTicketFunc     func(ctx context.Context, ticketID string) ([]domain.RmaRequest, error)
	ListStepsFunc                func(ctx context.Context, rmaID string) ([]domain.RmaStep, error)
	GetStepFunc                  func(ctx context.Context, rmaID string, stepOrder int) (*domain.RmaStep, error)
	UpdateStepFunc               func(ctx context.Context, step *domain.RmaStep) error
	CompleteStepAssignNumberFunc func(ctx context.Context, step *domain.RmaStep, number string) error
	CompleteStepCloseRequestFunc func(ctx context.Context, step *domain.RmaStep) error
	DeleteStepsFunc              func(ctx context.Context, rmaID string) error
	DeleteRequestFunc            func(ctx context.Context, id string) error
}

func (m *rmaRepoMock) CreateRequest(ctx context.Context, req *domain.RmaRequest, steps []domain.RmaStep) error {
	return m.CreateRequestFunc(ctx, req, steps)
}

func (m *rmaRepoMock) GetRequest(ctx context.Context, id string) (*domain.RmaRequest, error) {
	return m.GetRequestFunc(ctx, id)
}

func (m *rmaRepoMock) ListRequestsByTicket(ctx context.Context, ticketID string) ([]domain.RmaRequest, error) {
	return m.ListRequestsByTicketFunc(ctx, ticketID)
}

func (m *rmaRepoMock) ListSteps(ctx context.Context, rmaID string) ([]domain.RmaStep, error) {
	return m.ListStepsFunc(ctx, rmaID)
}

func (m *rmaRepoMock) GetStep(ctx context.Context, rmaID string, stepOrder int) (*domain.RmaStep, error) {
	return m.GetStepFunc(ctx, rmaID, stepOrder)
}

func (m *rmaRepoMock) UpdateStep(ctx context.Context, step *domain.RmaStep) error {
	return m.UpdateStepFunc(ctx, step)
}

func (m *rmaRepoMock) CompleteStepAssignNumber(ctx context.Context, step *domain.RmaStep, number string) error {
	return m.CompleteStepAssignNumberFunc(ctx, step, number)
}

func (m *rmaRepoMock) CompleteStepCloseRequest(ctx context.Context, step *domain.RmaStep) error {
	return m.CompleteStepCloseRequestFunc(ctx, step)
}

func (m *rmaRepoMock) DeleteSteps(ctx context.Context, rmaID string) error {
	return m.DeleteStepsFunc(ctx, rmaID)
}

func (m *rmaRepoMock) DeleteRequest(ctx context.Context, id string) error {
	return m.DeleteRequestFunc(ctx, id)
}

type profileRepoMock struct {
	CreateFunc        func(ctx context.Context, profile *domain.UserProfile) error
	UpdateFunc        func(ctx context.Context, profile *domain.UserProfile) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.UserProfile, error)
	GetByEmailFunc    func(ctx context.Context, email string) (*domain.UserProfile, error)
	ListByCompanyFunc func(ctx context.Context, companyID string) ([]domain.UserProfile, error)
}

func (m *profileRepoMock) Create(ctx context.Context, profile *domain.UserProfile) error {
	return m.CreateFunc(ctx, profile)
}

func (m *profileRepoMock) Update(ctx context.Context, profile *domain.UserProfile) error {
	return m.UpdateFunc(ctx, profile)
}

func (m *profileRepoMock) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *profileRepoMock) GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	return m.GetByEmailFunc(ctx, email)
}

func (m *profileRepoMock) ListByCompany(ctx context.Context, companyID string) ([]domain.UserProfile, error) {
	return m.ListByCompanyFunc(ctx, companyID)
}

type companyRepoMock struct {
	CreateFunc  func(ctx context.Context, company *domain.Company) error
	UpdateFunc  func(ctx context.Context, company *domain.Company) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.Company, error)
	ListFunc    func(ctx context.Context, search string, limit, offset int) ([]domain.Company, error)
}

func (m *companyRepoMock) Create(ctx context.Context, company *domain.Company) error {
	return m.CreateFunc(ctx, company)
}

func (m *companyRepoMock) Update(ctx context.Context, company *domain.Company) error {
	return m.UpdateFunc(ctx, company)
}

func (m *companyRepoMock) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *companyRepoMock) List(ctx context.Context, search string, limit, offset int) ([]domain.Company, error) {
	return m.ListFunc(ctx, search, limit, offset)
}

type equipmentRepoMock struct {
	CreateFunc  func(ctx context.Context, model *domain.EquipmentModel) error
	UpdateFunc  func(ctx context.Context, model *domain.EquipmentModel) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.EquipmentModel, error)
	ListFunc    func(ctx context.Context) ([]domain.EquipmentModel, error)
}

func (m *equipmentRepoMock) Create(ctx context.Context, model *domain.EquipmentModel) error {
	return m.CreateFunc(ctx, model)
}

func (m *equipmentRepoMock) Update(ctx context.Context, model *domain.EquipmentModel) error {
	return m.UpdateFunc(ctx, model)
}

func (m *equipmentRepoMock) GetByID(ctx context.Context, id string) (*domain.EquipmentModel, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *equipmentRepoMock) List(ctx context.Context) ([]domain.EquipmentModel, error) {
	return m.ListFunc(ctx)
}

// dispatcherRecorder captures published events in order.
type dispatcherRecorder struct {
	published []events.Event
}

func (d *dispatcherRecorder) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *dispatcherRecorder) Subscribe(events.EventType, events.EventHandler) {}

func (d *dispatcherRecorder) typesSeen() []events.EventType {
	seen := make([]events.EventType, 0, len(d.published))
	for _, event := range d.published {
		seen = append(seen, event.Type)
	}
	return seen
}
