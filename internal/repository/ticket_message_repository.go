package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/domain"
)

// TicketMessageRepository manages ticket thread messages. Messages are
// insert-only; there is no update or delete path.
type TicketMessageRepository interface {
	Create(ctx context.Context, msg *domain.TicketMessage) error
	// ListByTicket returns messages oldest first. When includeInternal is
	// false, internal notes are filtered out at the query level so a
	// requester-capability caller never receives them.
	ListByTicket(ctx context.Context, ticketID string, includeInternal bool) ([]domain.TicketMessage, error)
}

type ticketMessageRepository struct {
	pool *pgxpool.Pool
}

// NewTicketMessageRepository builds repository.
func NewTicketMessageRepository(pool *pgxpool.Pool) TicketMessageRepository {
	return &ticketMessageRepository{pool: pool}
}

func (r *ticketMessageRepository) Create(ctx context.Context, msg *domain.TicketMessage) error {
	const query = `
        INSERT INTO ticket_messages (ticket_id, content, sender_type, sender_name, sender_email, is_internal, channel, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		msg.TicketID,
		msg.Content,
		msg.SenderType,
		msg.SenderName,
		msg.SenderEmail,
		msg.IsInternal,
		msg.Channel,
		msg.CreatedBy,
	).Scan(&msg.ID, &msg.CreatedAt)
}

func (r *ticketMessageRepository) ListByTicket(ctx context.Context, ticketID string, includeInternal bool) ([]domain.TicketMessage, error) {
	query := `
        SELECT id, ticket_id, content, sender_type, sender_name, sender_email, is_internal, channel, created_by, created_at
        FROM ticket_messages WHERE ticket_id=$1`
	if !includeInternal {
		query += ` AND is_internal=FALSE`
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketMessage
	for rows.Next() {
		var msg domain.TicketMessage
		if err := rows.Scan(
			&msg.ID,
			&msg.TicketID,
			&msg.Content,
			&msg.SenderType,
			&msg.SenderName,
			&msg.SenderEmail,
			&msg.IsInternal,
			&msg.Channel,
			&msg.CreatedBy,
			&msg.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}
