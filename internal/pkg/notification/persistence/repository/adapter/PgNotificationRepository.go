package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	notification "github.com/shuerry/Connectify-sub000/internal/pkg/notification/application/domain"
	repository "github.com/shuerry/Connectify-sub000/internal/pkg/notification/persistence/repository/port"
)

type PgNotificationRepository struct {
	pool *pgxpool.Pool
}

func NewPgNotificationRepository(pool *pgxpool.Pool) *PgNotificationRepository {
	return &PgNotificationRepository{pool: pool}
}

const notificationColumns = `
	id::text, recipient, kind, title, preview, link, actor_username,
	is_read, created_at, read_at, COALESCE(meta, '{}'::jsonb)`

func scanNotification(row pgx.Row) (*notification.Notification, error) {
	var (
		n    notification.Notification
		kind string
	)
	err := row.Scan(
		&n.ID, &n.Recipient, &kind, &n.Title, &n.Preview, &n.Link,
		&n.ActorUsername, &n.IsRead, &n.CreatedAt, &n.ReadAt, &n.Meta,
	)
	if err != nil {
		return nil, err
	}
	n.Kind = notification.Kind(kind)
	return &n, nil
}

func (r *PgNotificationRepository) Create(ctx context.Context, n notification.Notification) (*notification.Notification, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgNotificationRepository: nil pool")
	}
	return scanNotification(r.pool.QueryRow(ctx, `
		INSERT INTO notification.notification
			(recipient, kind, title, preview, link, actor_username, created_at, meta)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+notificationColumns+`
	`, n.Recipient, string(n.Kind), n.Title, n.Preview, n.Link, n.ActorUsername, n.CreatedAt, n.Meta))
}

func (r *PgNotificationRepository) ListByRecipient(ctx context.Context, recipient string, limit int, before *repository.PageCursor) ([]notification.Notification, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgNotificationRepository: nil pool")
	}
	if limit <= 0 {
		limit = 20
	}
	var beforeAt *time.Time
	beforeID := ""
	if before != nil {
		beforeAt = &before.CreatedAt
		beforeID = before.ID
	}
	// The cursor id breaks ties on created_at; NULLIF keeps the comparison
	// NULL (never true) when no id was supplied.
	rows, err := r.pool.Query(ctx, `
		SELECT `+notificationColumns+`
		FROM notification.notification
		WHERE recipient = $1
		  AND ($2::timestamptz IS NULL
		       OR created_at < $2
		       OR (created_at = $2 AND id < NULLIF($3, '')::uuid))
		ORDER BY created_at DESC, id DESC
		LIMIT $4
	`, recipient, beforeAt, beforeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []notification.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *n)
	}
	return out, rows.Err()
}

// MarkRead keeps the first read_at on re-marks via COALESCE, so the call is
// idempotent with no timestamp drift.
func (r *PgNotificationRepository) MarkRead(ctx context.Context, id string) (*notification.Notification, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgNotificationRepository: nil pool")
	}
	n, err := scanNotification(r.pool.QueryRow(ctx, `
		UPDATE notification.notification
		SET is_read = TRUE, read_at = COALESCE(read_at, now())
		WHERE id = $1::uuid
		RETURNING `+notificationColumns+`
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notification.ErrNotFound
	}
	return n, err
}

func (r *PgNotificationRepository) MarkAllRead(ctx context.Context, recipient string) (int64, error) {
	if r == nil || r.pool == nil {
		return 0, errors.New("PgNotificationRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE notification.notification
		SET is_read = TRUE, read_at = COALESCE(read_at, now())
		WHERE recipient = $1 AND NOT is_read
	`, recipient)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

func (r *PgNotificationRepository) Delete(ctx context.Context, id string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgNotificationRepository: nil pool")
	}
	_, err := r.pool.Exec(ctx, `
		DELETE FROM notification.notification WHERE id = $1::uuid
	`, id)
	return err
}

func (r *PgNotificationRepository) CountUnread(ctx context.Context, recipient string) (int64, error) {
	if r == nil || r.pool == nil {
		return 0, errors.New("PgNotificationRepository: nil pool")
	}
	var count int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM notification.notification
		WHERE recipient = $1 AND NOT is_read
	`, recipient).Scan(&count)
	return count, err
}
