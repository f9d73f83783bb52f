package repository

import (
	"context"
	"time"

	notification "github.com/shuerry/Connectify-sub000/internal/pkg/notification/application/domain"
)

// PageCursor marks the last row of the previous page. ID is the tie-break
// for rows created in the same instant; when empty, only CreatedAt is
// compared and rows sharing the boundary timestamp may be skipped.
type PageCursor struct {
	CreatedAt time.Time
	ID        string
}

// NotificationRepository defines persistence for the notification store.
//
// Listing is keyset-paginated on (created_at, id) so pages stay correct
// under concurrent inserts; there is no offset-based access.
type NotificationRepository interface {
	Create(ctx context.Context, n notification.Notification) (*notification.Notification, error)

	// ListByRecipient returns up to limit notifications newest-first. When
	// before is non-nil only rows strictly older than it are returned.
	ListByRecipient(ctx context.Context, recipient string, limit int, before *PageCursor) ([]notification.Notification, error)

	// MarkRead flips is_read once and preserves the first read_at; re-marking
	// is a no-op that still returns the record.
	MarkRead(ctx context.Context, id string) (*notification.Notification, error)

	// MarkAllRead bulk-updates the recipient's unread rows, returning how
	// many changed.
	MarkAllRead(ctx context.Context, recipient string) (int64, error)

	// Delete removes the row; deleting an absent id is a no-op.
	Delete(ctx context.Context, id string) error

	CountUnread(ctx context.Context, recipient string) (int64, error)
}
