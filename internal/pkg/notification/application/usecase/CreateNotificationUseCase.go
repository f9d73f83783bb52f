package usecase

import (
	"context"
	"fmt"

	cacheport "github.com/shuerry/Connectify-sub000/internal/infrastructure/cache/port"
	"github.com/shuerry/Connectify-sub000/internal/infrastructure/realtime"
	notification "github.com/shuerry/Connectify-sub000/internal/pkg/notification/application/domain"
	repository "github.com/shuerry/Connectify-sub000/internal/pkg/notification/persistence/repository/port"
)

// CreateNotificationUseCase inserts a notification record and nudges the
// recipient's client to re-poll its unread badge.
type CreateNotificationUseCase struct {
	Repo      repository.NotificationRepository
	Cache     cacheport.Cache
	Publisher realtime.Publisher
}

func NewCreateNotificationUseCase(repo repository.NotificationRepository, cache cacheport.Cache, pub realtime.Publisher) *CreateNotificationUseCase {
	return &CreateNotificationUseCase{Repo: repo, Cache: cache, Publisher: pub}
}

func (uc *CreateNotificationUseCase) Execute(ctx context.Context, in notification.Notification) (*notification.Notification, error) {
	n, err := notification.New(in)
	if err != nil {
		return nil, err
	}

	stored, err := uc.Repo.Create(ctx, *n)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if uc.Cache != nil {
		_, _ = uc.Cache.Del(ctx, unreadCountKey(stored.Recipient))
	}
	if uc.Publisher != nil {
		uc.Publisher.Publish(realtime.EventNotificationUpdate, nil, realtime.UserScope(stored.Recipient))
	}
	return stored, nil
}
