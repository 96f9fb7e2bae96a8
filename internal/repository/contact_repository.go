package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/domain"
)

// ContactRepository manages company contacts.
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
	Update(ctx context.Context, contact *domain.Contact) error
	GetByID(ctx context.Context, id string) (*domain.Contact, error)
	ListByCompany(ctx context.Context, companyID string) ([]domain.Contact, error)
}

type contactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository instantiates repository.
func NewContactRepository(pool *pgxpool.Pool) ContactRepository {
	return &contactRepository{pool: pool}
}

const contactColumns = `id, company_id, name, email, phone, position, created_at, updated_at, deleted_at`

func (r *contactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	const query = `
        INSERT INTO contacts (company_id, name, email, phone, position)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		contact.CompanyID,
		contact.Name,
		contact.Email,
		contact.Phone,
		contact.Position,
	).Scan(&contact.ID, &contact.CreatedAt, &contact.UpdatedAt)
}

func (r *contactRepository) Update(ctx context.Context, contact *domain.Contact) error {
	const query = `
        UPDATE contacts SET name=$1, email=$2, phone=$3, position=$4, updated_at=NOW()
        WHERE id=$5 AND deleted_at IS NULL`
	cmd, err := r.pool.Exec(ctx, query,
		contact.Name,
		contact.Email,
		contact.Phone,
		contact.Position,
		contact.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *contactRepository) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	const query = `SELECT ` + contactColumns + ` FROM contacts WHERE id=$1 AND deleted_at IS NULL`
	var contact domain.Contact
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&contact.ID,
		&contact.CompanyID,
		&contact.Name,
		&contact.Email,
		&contact.Phone,
		&contact.Position,
		&contact.CreatedAt,
		&contact.UpdatedAt,
		&contact.DeletedAt,
	); err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) ListByCompany(ctx context.Context, companyID string) ([]domain.Contact, error) {
	const query = `SELECT ` + contactColumns + ` FROM contacts
        WHERE company_id=$1 AND deleted_at IS NULL ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Contact
	for rows.Next() {
		var contact domain.Contact
		if err := rows.Scan(
			&contact.ID,
			&contact.CompanyID,
			&contact.Name,
			&contact.Email,
			&contact.Phone,
			&contact.Position,
			&contact.CreatedAt,
			&contact.UpdatedAt,
			&contact.DeletedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, contact)
	}
	return result, rows.Err()
}
