package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/yatra-app/yatra/internal/domain"
)

// ContactRepo stores contact-form submissions. The API never reads them back;
// List exists for administrative copies between backends.
type ContactRepo interface {
	Create(ctx context.Context, msg domain.ContactMessage) (domain.ContactMessage, error)
	List(ctx context.Context) ([]domain.ContactMessage, error)
}

type pgContactRepo struct {
	db db
}

// NewContactRepo constructs a ContactRepo backed by the provided db connection.
func NewContactRepo(db db) ContactRepo {
	return &pgContactRepo{db: db}
}

func (r *pgContactRepo) Create(ctx context.Context, msg domain.ContactMessage) (domain.ContactMessage, error) {
	const q = `
		INSERT INTO contact_messages (id, name, email, message, created_at)
		VALUES (@id, @name, @email, @message, @created_at)`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{
		"id":         msg.ID,
		"name":       msg.Name,
		"email":      msg.Email,
		"message":    msg.Message,
		"created_at": msg.CreatedAt,
	})
	if err != nil {
		return domain.ContactMessage{}, fmt.Errorf("repo.ContactRepo.Create: %w", mapPgError(err))
	}
	return msg, nil
}

func (r *pgContactRepo) List(ctx context.Context) ([]domain.ContactMessage, error) {
	const q = `SELECT id, name, email, message, created_at FROM contact_messages ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.ContactRepo.List: %w", err)
	}
	defer rows.Close()

	msgs := []domain.ContactMessage{}
	for rows.Next() {
		var (
			m  domain.ContactMessage
			id pgtype.UUID
		)
		if err := rows.Scan(&id, &m.Name, &m.Email, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("repo.ContactRepo.List: scan: %w", err)
		}
		m.ID = uuid.UUID(id.Bytes)
		m.CreatedAt = m.CreatedAt.UTC()
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ContactRepo.List: rows: %w", err)
	}
	return msgs, nil
}
