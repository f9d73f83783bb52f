package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	cacheport "github.com/shuerry/Connectify-sub000/internal/infrastructure/cache/port"
	repository "github.com/shuerry/Connectify-sub000/internal/pkg/notification/persistence/repository/port"
)

// CountUnreadUseCase serves the unread badge, caching the count briefly to
// absorb re-poll bursts after notificationUpdate broadcasts.
type CountUnreadUseCase struct {
	Repo  repository.NotificationRepository
	Cache cacheport.Cache
}

func NewCountUnreadUseCase(repo repository.NotificationRepository, cache cacheport.Cache) *CountUnreadUseCase {
	return &CountUnreadUseCase{Repo: repo, Cache: cache}
}

func (uc *CountUnreadUseCase) Execute(ctx context.Context, username string) (int64, error) {
	if username == "" {
		return 0, fmt.Errorf("username is required")
	}

	// Misses and cache transport errors both fall through to the repository.
	key := unreadCountKey(username)
	if uc.Cache != nil {
		if v, err := uc.Cache.Get(ctx, key); err == nil {
			if count, perr := strconv.ParseInt(v, 10, 64); perr == nil {
				return count, nil
			}
		}
	}

	count, err := uc.Repo.CountUnread(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if uc.Cache != nil {
		_ = uc.Cache.Set(ctx, key, strconv.FormatInt(count, 10), unreadCountTTLSeconds*time.Second)
	}
	return count, nil
}
