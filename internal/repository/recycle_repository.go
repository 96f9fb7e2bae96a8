package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RecycleScope names a table participating in the soft-delete grace window.
type RecycleScope string

const (
	ScopeCompanies       RecycleScope = "companies"
	ScopeContacts        RecycleScope = "contacts"
	ScopeTickets         RecycleScope = "tickets"
	ScopeEquipmentModels RecycleScope = "equipment_models"
	ScopeRmaRequests     RecycleScope = "rma_requests"
)

// Valid reports whether the scope is one of the known recycle tables.
func (s RecycleScope) Valid() bool {
	switch s {
	case ScopeCompanies, ScopeContacts, ScopeTickets, ScopeEquipmentModels, ScopeRmaRequests:
		return true
	}
	return false
}

// TrashItem is a soft-deleted row awaiting restore or expiry.
type TrashItem struct {
	Scope     RecycleScope
	ID        string
	Label     string
	DeletedAt time.Time
}

// RecycleRepository fronts the soft-delete/restore/purge server-side
// procedures. Each call is a single remote procedure treated as an atomic
// black box; the grace window and cascade rules live in the database.
type RecycleRepository interface {
	SoftDelete(ctx context.Context, scope RecycleScope, id string) error
	Restore(ctx context.Context, scope RecycleScope, id string) error
	PurgeExpired(ctx context.Context) (int64, error)
	ListTrash(ctx context.Context, scope RecycleScope) ([]TrashItem, error)
}

type recycleRepository struct {
	pool *pgxpool.Pool
}

// NewRecycleRepository instantiates repository.
func NewRecycleRepository(pool *pgxpool.Pool) RecycleRepository {
	return &recycleRepository{pool: pool}
}

func (r *recycleRepository) SoftDelete(ctx context.Context, scope RecycleScope, id string) error {
	if !scope.Valid() {
		return fmt.Errorf("unknown recycle scope %q", scope)
	}
	var affected bool
	if err := r.pool.QueryRow(ctx, `SELECT soft_delete_record($1,$2)`, string(scope), id).Scan(&affected); err != nil {
		return err
	}
	if !affected {
		return fmt.Errorf("%s %s not found or already deleted", scope, id)
	}
	return nil
}

func (r *recycleRepository) Restore(ctx context.Context, scope RecycleScope, id string) error {
	if !scope.Valid() {
		return fmt.Errorf("unknown recycle scope %q", scope)
	}
	var affected bool
	if err := r.pool.QueryRow(ctx, `SELECT restore_record($1,$2)`, string(scope), id).Scan(&affected); err != nil {
		return err
	}
	if !affected {
		return fmt.Errorf("%s %s not found in trash", scope, id)
	}
	return nil
}

func (r *recycleRepository) PurgeExpired(ctx context.Context) (int64, error) {
	var purged int64
	if err := r.pool.QueryRow(ctx, `SELECT purge_expired_records()`).Scan(&purged); err != nil {
		return 0, err
	}
	return purged, nil
}

// labelColumn maps each scope to the column shown in trash listings.
var labelColumn = map[RecycleScope]string{
	ScopeCompanies:       "name",
	ScopeContacts:        "name",
	ScopeTickets:         "title",
	ScopeEquipmentModels: "name",
	ScopeRmaRequests:     "COALESCE(rma_number, 'sem número')",
}

func (r *recycleRepository) ListTrash(ctx context.Context, scope RecycleScope) ([]TrashItem, error) {
	if !scope.Valid() {
		return nil, fmt.Errorf("unknown recycle scope %q", scope)
	}
	query := fmt.Sprintf(`SELECT id, %s, deleted_at FROM %s WHERE deleted_at IS NOT NULL ORDER BY deleted_at DESC`,
		labelColumn[scope], string(scope))

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []TrashItem
	for rows.Next() {
		item := TrashItem{Scope: scope}
		if err := rows.Scan(&item.ID, &item.Label, &item.DeletedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
