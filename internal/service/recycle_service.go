package service

import (
	"context"

	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/domain"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/repository"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/pkg/util/errorutil"
)

// RecycleService exposes the soft-delete grace window. Rows sit in trash
// until restored or until the server-side purge removes them; each call
// below is a single remote procedure with its own success or failure.
type RecycleService struct {
	recycle repository.RecycleRepository
}

// NewRecycleService builds the service.
func NewRecycleService(recycle repository.RecycleRepository) *RecycleService {
	return &RecycleService{recycle: recycle}
}

// SoftDelete moves a record into the trash.
func (s *RecycleService) SoftDelete(ctx context.Context, actor *domain.UserProfile, scope repository.RecycleScope, id string) error {
	if !actor.IsAgent() {
		return errorutil.NewForbidden("only support agents can delete records")
	}
	if !scope.Valid() {
		return errorutil.NewValidationError("unknown record type", map[string]any{"scope": string(scope)})
	}
	if err := s.recycle.SoftDelete(ctx, scope, id); err != nil {
		return errorutil.MapError(err)
	}
	return nil
}

// Restore brings a trashed record back.
func (s *RecycleService) Restore(ctx context.Context, actor *domain.UserProfile, scope repository.RecycleScope, id string) error {
	if !actor.IsAgent() {
		return errorutil.NewForbidden("only support agents can restore records")
	}
	if !scope.Valid() {
		return errorutil.NewValidationError("unknown record type", map[string]any{"scope": string(scope)})
	}
	if err := s.recycle.Restore(ctx, scope, id); err != nil {
		return errorutil.MapError(err)
	}
	return nil
}

// PurgeExpired permanently removes records past the grace window and
// returns how many rows were purged.
func (s *RecycleService) PurgeExpired(ctx context.Context, actor *domain.UserProfile) (int64, error) {
	if actor == nil || actor.Role != domain.RoleAdmin {
		return 0, errorutil.NewForbidden("only administrators can purge the trash")
	}
	purged, err := s.recycle.PurgeExpired(ctx)
	if err != nil {
		return 0, errorutil.MapError(err)
	}
	return purged, nil
}

// ListTrash lists soft-deleted records of one scope.
func (s *RecycleService) ListTrash(ctx context.Context, actor *domain.UserProfile, scope repository.RecycleScope) ([]repository.TrashItem, error) {
	if !actor.IsAgent() {
		return nil, errorutil.NewForbidden("only support agents can view the trash")
	}
	if !scope.Valid() {
		return nil, errorutil.NewValidationError("unknown record type", map[string]any{"scope": string(scope)})
	}
	result, err := s.recycle.ListTrash(ctx, scope)
	if err != nil {
		return nil, errorutil.MapError(err)
	}
	return result, nil
}
