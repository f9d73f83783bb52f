package usecase

import (
	"context"
	"fmt"

	cacheport "github.com/shuerry/Connectify-sub000/internal/infrastructure/cache/port"
	"github.com/shuerry/Connectify-sub000/internal/infrastructure/realtime"
	notification "github.com/shuerry/Connectify-sub000/internal/pkg/notification/application/domain"
	repository "github.com/shuerry/Connectify-sub000/internal/pkg/notification/persistence/repository/port"
)

// MarkNotificationReadUseCase flips one notification to read. Idempotent:
// re-marking returns the record with its original readAt.
type MarkNotificationReadUseCase struct {
	Repo      repository.NotificationRepository
	Cache     cacheport.Cache
	Publisher realtime.Publisher
}

func NewMarkNotificationReadUseCase(repo repository.NotificationRepository, cache cacheport.Cache, pub realtime.Publisher) *MarkNotificationReadUseCase {
	return &MarkNotificationReadUseCase{Repo: repo, Cache: cache, Publisher: pub}
}

func (uc *MarkNotificationReadUseCase) Execute(ctx context.Context, id string) (*notification.Notification, error) {
	if id == "" {
		return nil, fmt.Errorf("id is required")
	}

	n, err := uc.Repo.MarkRead(ctx, id)
	if err != nil {
		if err == notification.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if uc.Cache != nil {
		_, _ = uc.Cache.Del(ctx, unreadCountKey(n.Recipient))
	}
	if uc.Publisher != nil {
		uc.Publisher.Publish(realtime.EventNotificationUpdate, nil, realtime.UserScope(n.Recipient))
	}
	return n, nil
}
