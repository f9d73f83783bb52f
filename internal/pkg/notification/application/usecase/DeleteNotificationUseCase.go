package usecase

import (
	"context"
	"fmt"

	cacheport "github.com/shuerry/Connectify-sub000/internal/infrastructure/cache/port"
	repository "github.com/shuerry/Connectify-sub000/internal/pkg/notification/persistence/repository/port"
)

// DeleteNotificationInput identifies the row plus the acting recipient, whose
// cached unread count must be dropped (an unread row may be deleted).
type DeleteNotificationInput struct {
	ID       string
	Username string
}

// DeleteNotificationUseCase hard-deletes a notification. Idempotent: deleting
// an absent id succeeds.
type DeleteNotificationUseCase struct {
	Repo  repository.NotificationRepository
	Cache cacheport.Cache
}

func NewDeleteNotificationUseCase(repo repository.NotificationRepository, cache cacheport.Cache) *DeleteNotificationUseCase {
	return &DeleteNotificationUseCase{Repo: repo, Cache: cache}
}

func (uc *DeleteNotificationUseCase) Execute(ctx context.Context, in DeleteNotificationInput) error {
	if in.ID == "" {
		return fmt.Errorf("id is required")
	}

	if err := uc.Repo.Delete(ctx, in.ID); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if uc.Cache != nil && in.Username != "" {
		_, _ = uc.Cache.Del(ctx, unreadCountKey(in.Username))
	}
	return nil
}
