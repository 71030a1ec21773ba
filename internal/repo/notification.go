package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/yatra-app/yatra/internal/domain"
)

// NotificationRepo defines the persistence operations for Notifications.
type NotificationRepo interface {
	Create(ctx context.Context, n domain.Notification) (domain.Notification, error)

	// ListByRecipient returns userID's notifications, newest first.
	ListByRecipient(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error)

	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)

	// MarkAllRead flips every unread notification of userID and returns how
	// many changed. Nothing is written when the count is zero.
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error)

	// List returns every notification in creation order.
	List(ctx context.Context) ([]domain.Notification, error)
}

type pgNotificationRepo struct {
	db db
}

// NewNotificationRepo constructs a NotificationRepo backed by the provided db connection.
func NewNotificationRepo(db db) NotificationRepo {
	return &pgNotificationRepo{db: db}
}

func (r *pgNotificationRepo) Create(ctx context.Context, n domain.Notification) (domain.Notification, error) {
	const q = `
		INSERT INTO notifications (id, user_id, type, actor_id, trip_id, created_at, read)
		VALUES (@id, @user_id, @type, @actor_id, @trip_id, @created_at, @read)`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{
		"id":         n.ID,
		"user_id":    n.UserID,
		"type":       string(n.Type),
		"actor_id":   n.ActorID,
		"trip_id":    n.TripID, // nil becomes NULL
		"created_at": n.CreatedAt,
		"read":       n.Read,
	})
	if err != nil {
		return domain.Notification{}, fmt.Errorf("repo.NotificationRepo.Create: %w", mapPgError(err))
	}
	return n, nil
}

func (r *pgNotificationRepo) ListByRecipient(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	const q = `
		SELECT id, user_id, type, actor_id, trip_id, created_at, read
		FROM notifications
		WHERE user_id = @user_id
		ORDER BY created_at DESC, id`

	notifications, err := r.query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.NotificationRepo.ListByRecipient: %w", err)
	}
	return notifications, nil
}

func (r *pgNotificationRepo) List(ctx context.Context) ([]domain.Notification, error) {
	const q = `
		SELECT id, user_id, type, actor_id, trip_id, created_at, read
		FROM notifications
		ORDER BY created_at, id`

	notifications, err := r.query(ctx, q, pgx.NamedArgs{})
	if err != nil {
		return nil, fmt.Errorf("repo.NotificationRepo.List: %w", err)
	}
	return notifications, nil
}

func (r *pgNotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	const q = `SELECT count(*) FROM notifications WHERE user_id = @user_id AND NOT read`

	var n int
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"user_id": userID}).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.NotificationRepo.CountUnread: %w", err)
	}
	return n, nil
}

func (r *pgNotificationRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error) {
	const q = `UPDATE notifications SET read = true WHERE user_id = @user_id AND NOT read`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("repo.NotificationRepo.MarkAllRead: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *pgNotificationRepo) query(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Notification, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []domain.Notification{}
	for rows.Next() {
		var (
			n                            domain.Notification
			id, recipient, actor, tripID pgtype.UUID
			typ                          string
		)
		if err := rows.Scan(&id, &recipient, &typ, &actor, &tripID, &n.CreatedAt, &n.Read); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		n.ID = uuid.UUID(id.Bytes)
		n.UserID = uuid.UUID(recipient.Bytes)
		n.ActorID = uuid.UUID(actor.Bytes)
		n.Type = domain.NotificationType(typ)
		if tripID.Valid {
			tid := uuid.UUID(tripID.Bytes)
			n.TripID = &tid
		}
		n.CreatedAt = n.CreatedAt.UTC()
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return notifications, nil
}
