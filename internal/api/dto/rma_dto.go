package dto

import (
	"time"

	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/domain"
)

// SetStepCompletionRequest payload for toggling one checklist step. The
// RMA number is consumed only by the numbering step; functionality notes
// only by the final step.
type SetStepCompletionRequest struct {
	Completed          bool   `json:"completed"`
	RmaNumber          string `json:"rma_number,omitempty"`
	FunctionalityNotes string `json:"functionality_notes,omitempty"`
}

// SaveFunctionalityNotesRequest payload.
type SaveFunctionalityNotesRequest struct {
	Text string `json:"text"`
}

// RmaStepResponse represents one checklist position.
type RmaStepResponse struct {
	ID                 string     `json:"id"`
	StepOrder          int        `json:"step_order"`
	StepName           string     `json:"step_name"`
	IsCompleted        bool       `json:"is_completed"`
	CompletedAt        *time.Time `json:"completed_at"`
	CompletedBy        *string    `json:"completed_by"`
	Notes              *string    `json:"notes"`
	FunctionalityNotes *string    `json:"functionality_notes"`
}

// RmaDetailResponse is the request plus its ordered checklist.
type RmaDetailResponse struct {
	ID          string            `json:"id"`
	TicketID    string            `json:"ticket_id"`
	RmaNumber   *string           `json:"rma_number"`
	Status      domain.RmaStatus  `json:"status"`
	RequestedBy *string           `json:"requested_by"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Steps       []RmaStepResponse `json:"steps"`
}

// ToRmaStep maps a checklist step.
func ToRmaStep(step *domain.RmaStep) RmaStepResponse {
	return RmaStepResponse{
		ID:                 step.ID,
		StepOrder:          step.StepOrder,
		StepName:           step.StepName,
		IsCompleted:        step.IsCompleted,
		CompletedAt:        step.CompletedAt,
		CompletedBy:        step.CompletedBy,
		Notes:              step.Notes,
		FunctionalityNotes: step.FunctionalityNotes,
	}
}

// ToRmaDetail maps a request with its steps.
func ToRmaDetail(req *domain.RmaRequest, steps []domain.RmaStep) RmaDetailResponse {
	stepResponses := make([]RmaStepResponse, 0, len(steps))
	for i := range steps {
		stepResponses = append(stepResponses, ToRmaStep(&steps[i]))
	}
	return RmaDetailResponse{
		ID:          req.ID,
		TicketID:    req.TicketID,
		RmaNumber:   req.RmaNumber,
		Status:      req.Status,
		RequestedBy: req.RequestedBy,
		CreatedAt:   req.CreatedAt,
		UpdatedAt:   req.UpdatedAt,
		Steps:       stepResponses,
	}
}
