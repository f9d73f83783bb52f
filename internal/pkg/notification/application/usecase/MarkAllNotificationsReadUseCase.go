package usecase

import (
	"context"
	"fmt"

	cacheport "github.com/shuerry/Connectify-sub000/internal/infrastructure/cache/port"
	"github.com/shuerry/Connectify-sub000/internal/infrastructure/realtime"
	repository "github.com/shuerry/Connectify-sub000/internal/pkg/notification/persistence/repository/port"
)

// MarkAllNotificationsReadUseCase bulk-marks a user's unread notifications.
// It returns only an acknowledgement count, not the updated set, and always
// emits a notificationUpdate so the badge refreshes in real time.
type MarkAllNotificationsReadUseCase struct {
	Repo      repository.NotificationRepository
	Cache     cacheport.Cache
	Publisher realtime.Publisher
}

func NewMarkAllNotificationsReadUseCase(repo repository.NotificationRepository, cache cacheport.Cache, pub realtime.Publisher) *MarkAllNotificationsReadUseCase {
	return &MarkAllNotificationsReadUseCase{Repo: repo, Cache: cache, Publisher: pub}
}

func (uc *MarkAllNotificationsReadUseCase) Execute(ctx context.Context, username string) (int64, error) {
	if username == "" {
		return 0, fmt.Errorf("username is required")
	}

	updated, err := uc.Repo.MarkAllRead(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if uc.Cache != nil {
		_, _ = uc.Cache.Del(ctx, unreadCountKey(username))
	}
	if uc.Publisher != nil {
		uc.Publisher.Publish(realtime.EventNotificationUpdate, nil, realtime.UserScope(username))
	}
	return updated, nil
}
