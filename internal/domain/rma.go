package domain

import "time"

// RmaStatus enumerates RMA request lifecycle states.
type RmaStatus string

const (
	RmaStatusOpen      RmaStatus = "open"
	RmaStatusCompleted RmaStatus = "completed"
)

// StepCount is the fixed number of checklist steps every RMA carries.
const StepCount = 9

// RmaRequest tracks a return-merchandise process bound to one ticket.
// RmaNumber stays nil until the first checklist step is completed with a
// manually assigned number. Status reaches completed only through the final
// step; there is no transition back.
type RmaRequest struct {
	ID          string
	TicketID    string
	RmaNumber   *string
	Status      RmaStatus
	RequestedBy *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// Completed reports whether the request reached its terminal state.
func (r *RmaRequest) Completed() bool {
	return r.Status == RmaStatusCompleted
}

// StepKind tags checklist positions that carry extra pre/post-conditions,
// so the toggle logic never branches on raw step numbers.
type StepKind int

const (
	// StepStandard toggles completion with no side effects.
	StepStandard StepKind = iota
	// StepRequiresRmaNumber demands a non-empty RMA number on completion
	// and assigns it to the parent request.
	StepRequiresRmaNumber
	// StepRequiresClosingNotes collects functionality notes while
	// incomplete and closes the parent request on completion.
	StepRequiresClosingNotes
)

// RmaStep is one position in the fixed 9-step checklist. CompletedAt and
// CompletedBy are both nil or both set, always consistent with IsCompleted.
// FunctionalityNotes is meaningful only on the closing step: populated while
// that step is incomplete and cleared to nil when it completes.
type RmaStep struct {
	ID                 string
	RmaRequestID       string
	StepOrder          int
	StepName           string
	IsCompleted        bool
	CompletedAt        *time.Time
	CompletedBy        *string
	Notes              *string
	FunctionalityNotes *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Kind maps the step's position onto its behavioral variant.
func (s *RmaStep) Kind() StepKind {
	switch s.StepOrder {
	case 1:
		return StepRequiresRmaNumber
	case StepCount:
		return StepRequiresClosingNotes
	default:
		return StepStandard
	}
}

// DefaultStepNames lists the checklist labels in order, index 0 = step 1.
var DefaultStepNames = [StepCount]string{
	"Solicitação de RMA e atribuição de número",
	"Recebimento do equipamento",
	"Inspeção visual",
	"Registro fotográfico",
	"Diagnóstico técnico",
	"Orçamento e aprovação",
	"Reparo ou substituição",
	"Testes de bancada",
	"Verificação final de funcionalidade",
}
