package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/domain"
)

// RmaRepository persists RMA requests and their fixed checklists.
type RmaRepository interface {
	CreateRequest(ctx context.Context, req *domain.RmaRequest, steps []domain.RmaStep) error
	GetRequest(ctx context.Context, id string) (*domain.RmaRequest, error)
	ListRequestsByTicket(ctx context.Context, ticketID string) ([]domain.RmaRequest, error)
	ListSteps(ctx context.Context, rmaID string) ([]domain.RmaStep, error)
	GetStep(ctx context.Context, rmaID string, stepOrder int) (*domain.RmaStep, error)
	UpdateStep(ctx context.Context, step *domain.RmaStep) error
	// CompleteStepAssignNumber writes the step completion and the parent's
	// rma_number in one transaction so no intermediate state is visible.
	CompleteStepAssignNumber(ctx context.Context, step *domain.RmaStep, number string) error
	// CompleteStepCloseRequest writes the step completion and flips the
	// parent request to completed in one transaction.
	CompleteStepCloseRequest(ctx context.Context, step *domain.RmaStep) error
	DeleteSteps(ctx context.Context, rmaID string) error
	DeleteRequest(ctx context.Context, id string) error
}

type rmaRepository struct {
	pool *pgxpool.Pool
}

// NewRmaRepository instantiates repository.
func NewRmaRepository(pool *pgxpool.Pool) RmaRepository {
	return &rmaRepository{pool: pool}
}

func (r *rmaRepository) CreateRequest(ctx context.Context, req *domain.RmaRequest, steps []domain.RmaStep) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insertReq = `
        INSERT INTO rma_requests (ticket_id, rma_number, status, requested_by)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, insertReq,
		req.TicketID,
		req.RmaNumber,
		req.Status,
		req.RequestedBy,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt); err != nil {
		return err
	}

	const insertStep = `
        INSERT INTO rma_steps (rma_request_id, step_order, step_name)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	for i := range steps {
		steps[i].RmaRequestID = req.ID
		if err := tx.QueryRow(ctx, insertStep,
			req.ID,
			steps[i].StepOrder,
			steps[i].StepName,
		).Scan(&steps[i].ID, &steps[i].CreatedAt, &steps[i].UpdatedAt); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

const rmaRequestColumns = `id, ticket_id, rma_number, status, requested_by, created_at, updated_at, deleted_at`

func (r *rmaRepository) GetRequest(ctx context.Context, id string) (*domain.RmaRequest, error) {
	const query = `
        SELECT ` + rmaRequestColumns + `
        FROM rma_requests WHERE id=$1 AND deleted_at IS NULL`
	var req domain.RmaRequest
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&req.ID,
		&req.TicketID,
		&req.RmaNumber,
		&req.Status,
		&req.RequestedBy,
		&req.CreatedAt,
		&req.UpdatedAt,
		&req.DeletedAt,
	); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *rmaRepository) ListRequestsByTicket(ctx context.Context, ticketID string) ([]domain.RmaRequest, error) {
	const query = `
        SELECT ` + rmaRequestColumns + `
        FROM rma_requests WHERE ticket_id=$1 AND deleted_at IS NULL ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RmaRequest
	for rows.Next() {
		var req domain.RmaRequest
		if err := rows.Scan(
			&req.ID,
			&req.TicketID,
			&req.RmaNumber,
			&req.Status,
			&req.RequestedBy,
			&req.CreatedAt,
			&req.UpdatedAt,
			&req.DeletedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, req)
	}
	return result, rows.Err()
}

const rmaStepColumns = `id, rma_request_id, step_order, step_name, is_completed,
               completed_at, completed_by, notes, functionality_notes, created_at, updated_at`

func (r *rmaRepository) ListSteps(ctx context.Context, rmaID string) ([]domain.RmaStep, error) {
	const query = `
        SELECT ` + rmaStepColumns + `
        FROM rma_steps WHERE rma_request_id=$1 ORDER BY step_order ASC`
	rows, err := r.pool.Query(ctx, query, rmaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RmaStep
	for rows.Next() {
		var step domain.RmaStep
		if err := scanStep(rows.Scan, &step); err != nil {
			return nil, err
		}
		result = append(result, step)
	}
	return result, rows.Err()
}

func (r *rmaRepository) GetStep(ctx context.Context, rmaID string, stepOrder int) (*domain.RmaStep, error) {
	const query = `
        SELECT ` + rmaStepColumns + `
        FROM rma_steps WHERE rma_request_id=$1 AND step_order=$2`
	var step domain.RmaStep
	if err := scanStep(r.pool.QueryRow(ctx, query, rmaID, stepOrder).Scan, &step); err != nil {
		return nil, err
	}
	return &step, nil
}

func scanStep(scan func(...any) error, step *domain.RmaStep) error {
	return scan(
		&step.ID,
		&step.RmaRequestID,
		&step.StepOrder,
		&step.StepName,
		&step.IsCompleted,
		&step.CompletedAt,
		&step.CompletedBy,
		&step.Notes,
		&step.FunctionalityNotes,
		&step.CreatedAt,
		&step.UpdatedAt,
	)
}

const updateStepQuery = `
        UPDATE rma_steps SET is_completed=$1, completed_at=$2, completed_by=$3,
            notes=$4, functionality_notes=$5, updated_at=NOW()
        WHERE id=$6`

func (r *rmaRepository) UpdateStep(ctx context.Context, step *domain.RmaStep) error {
	cmd, err := r.pool.Exec(ctx, updateStepQuery,
		step.IsCompleted,
		step.CompletedAt,
		step.CompletedBy,
		step.Notes,
		step.FunctionalityNotes,
		step.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *rmaRepository) CompleteStepAssignNumber(ctx context.Context, step *domain.RmaStep, number string) error {
	return r.stepWithParent(ctx, step, func(tx pgx.Tx) error {
		const query = `UPDATE rma_requests SET rma_number=$1, updated_at=NOW() WHERE id=$2 AND deleted_at IS NULL`
		cmd, err := tx.Exec(ctx, query, number, step.RmaRequestID)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
}

func (r *rmaRepository) CompleteStepCloseRequest(ctx context.Context, step *domain.RmaStep) error {
	return r.stepWithParent(ctx, step, func(tx pgx.Tx) error {
		const query = `UPDATE rma_requests SET status=$1, updated_at=NOW() WHERE id=$2 AND deleted_at IS NULL`
		cmd, err := tx.Exec(ctx, query, domain.RmaStatusCompleted, step.RmaRequestID)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
}

func (r *rmaRepository) stepWithParent(ctx context.Context, step *domain.RmaStep, parentWrite func(pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	cmd, err := tx.Exec(ctx, updateStepQuery,
		step.IsCompleted,
		step.CompletedAt,
		step.CompletedBy,
		step.Notes,
		step.FunctionalityNotes,
		step.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	if err := parentWrite(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// DeleteSteps removes all checklist rows for an RMA. Callers delete steps
// before the parent request to satisfy referential constraints; the two
// calls are deliberately separate remote writes.
func (r *rmaRepository) DeleteSteps(ctx context.Context, rmaID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM rma_steps WHERE rma_request_id=$1`, rmaID)
	return err
}

func (r *rmaRepository) DeleteRequest(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM rma_requests WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
