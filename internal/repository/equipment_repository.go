package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/domain"
)

// EquipmentRepository manages the equipment model catalog.
type EquipmentRepository interface {
	Create(ctx context.Context, model *domain.EquipmentModel) error
	Update(ctx context.Context, model *domain.EquipmentModel) error
	GetByID(ctx context.Context, id string) (*domain.EquipmentModel, error)
	List(ctx context.Context) ([]domain.EquipmentModel, error)
}

type equipmentRepository struct {
	pool *pgxpool.Pool
}

// NewEquipmentRepository instantiates repository.
func NewEquipmentRepository(pool *pgxpool.Pool) EquipmentRepository {
	return &equipmentRepository{pool: pool}
}

const equipmentColumns = `id, model_code, name, category, created_at, updated_at, deleted_at`

func (r *equipmentRepository) Create(ctx context.Context, model *domain.EquipmentModel) error {
	const query = `
        INSERT INTO equipment_models (model_code, name, category)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		model.ModelCode,
		model.Name,
		model.Category,
	).Scan(&model.ID, &model.CreatedAt, &model.UpdatedAt)
}

func (r *equipmentRepository) Update(ctx context.Context, model *domain.EquipmentModel) error {
	const query = `
        UPDATE equipment_models SET model_code=$1, name=$2, category=$3, updated_at=NOW()
        WHERE id=$4 AND deleted_at IS NULL`
	cmd, err := r.pool.Exec(ctx, query, model.ModelCode, model.Name, model.Category, model.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *equipmentRepository) GetByID(ctx context.Context, id string) (*domain.EquipmentModel, error) {
	const query = `SELECT ` + equipmentColumns + ` FROM equipment_models WHERE id=$1 AND deleted_at IS NULL`
	var model domain.EquipmentModel
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&model.ID,
		&model.ModelCode,
		&model.Name,
		&model.Category,
		&model.CreatedAt,
		&model.UpdatedAt,
		&model.DeletedAt,
	); err != nil {
		return nil, err
	}
	return &model, nil
}

func (r *equipmentRepository) List(ctx context.Context) ([]domain.EquipmentModel, error) {
	const query = `SELECT ` + equipmentColumns + ` FROM equipment_models
        WHERE deleted_at IS NULL ORDER BY model_code ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.EquipmentModel
	for rows.Next() {
		var model domain.EquipmentModel
		if err := rows.Scan(
			&model.ID,
			&model.ModelCode,
			&model.Name,
			&model.Category,
			&model.CreatedAt,
			&model.UpdatedAt,
			&model.DeletedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, model)
	}
	return result, rows.Err()
}
