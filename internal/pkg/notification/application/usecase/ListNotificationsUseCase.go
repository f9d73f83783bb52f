package usecase

import (
	"context"
	"fmt"
	"time"

	notification "github.com/shuerry/Connectify-sub000/internal/pkg/notification/application/domain"
	repository "github.com/shuerry/Connectify-sub000/internal/pkg/notification/persistence/repository/port"
)

// ListNotificationsInput selects one keyset page, newest-first. Cursor, when
// non-nil, restricts results to rows strictly older than it; CursorID is the
// id of the row the cursor came from, so rows sharing its timestamp are not
// lost across the page boundary.
type ListNotificationsInput struct {
	Username string
	Limit    int
	Cursor   *time.Time
	CursorID string
}

// ListNotificationsOutput carries the page plus the cursor for the next one.
// NextCursor is nil once the final page has been returned.
type ListNotificationsOutput struct {
	Items        []notification.Notification
	NextCursor   *time.Time
	NextCursorID string
}

// ListNotificationsUseCase pages through a user's notifications.
type ListNotificationsUseCase struct {
	Repo repository.NotificationRepository
}

func NewListNotificationsUseCase(repo repository.NotificationRepository) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{Repo: repo}
}

func (uc *ListNotificationsUseCase) Execute(ctx context.Context, in ListNotificationsInput) (*ListNotificationsOutput, error) {
	if in.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if in.Limit <= 0 {
		in.Limit = 20
	}

	var before *repository.PageCursor
	if in.Cursor != nil {
		before = &repository.PageCursor{CreatedAt: *in.Cursor, ID: in.CursorID}
	}

	items, err := uc.Repo.ListByRecipient(ctx, in.Username, in.Limit, before)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	out := &ListNotificationsOutput{Items: items}
	// A full page may have more behind it; the last row is the keyset cursor
	// for the next call.
	if len(items) == in.Limit {
		last := items[len(items)-1]
		at := last.CreatedAt
		out.NextCursor = &at
		out.NextCursorID = last.ID
	}
	return out, nil
}
