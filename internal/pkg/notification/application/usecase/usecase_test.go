package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cacheport "github.com/shuerry/Connectify-sub000/internal/infrastructure/cache/port"
	"github.com/shuerry/Connectify-sub000/internal/infrastructure/realtime"
	notification "github.com/shuerry/Connectify-sub000/internal/pkg/notification/application/domain"
	repository "github.com/shuerry/Connectify-sub000/internal/pkg/notification/persistence/repository/port"
)

// memNotificationRepository is an in-memory store keyed by insertion order.
type memNotificationRepository struct {
	mu     sync.Mutex
	nextID int
	rows   []notification.Notification

	countCalls int
}

func (r *memNotificationRepository) Create(_ context.Context, n notification.Notification) (*notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	n.ID = fmt.Sprintf("notif-%d", r.nextID)
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	r.rows = append(r.rows, n)
	out := n
	return &out, nil
}

func (r *memNotificationRepository) ListByRecipient(_ context.Context, recipient string, limit int, before *repository.PageCursor) ([]notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []notification.Notification
	for i := len(r.rows) - 1; i >= 0; i-- {
		n := r.rows[i]
		if n.Recipient != recipient {
			continue
		}
		if before != nil && !beforeCursor(n, before) {
			continue
		}
		out = append(out, n)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func beforeCursor(n notification.Notification, c *repository.PageCursor) bool {
	if n.CreatedAt.Before(c.CreatedAt) {
		return true
	}
	return c.ID != "" && n.CreatedAt.Equal(c.CreatedAt) && n.ID < c.ID
}

func (r *memNotificationRepository) MarkRead(_ context.Context, id string) (*notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID != id {
			continue
		}
		if !r.rows[i].IsRead {
			now := time.Now().UTC()
			r.rows[i].IsRead = true
			r.rows[i].ReadAt = &now
		}
		out := r.rows[i]
		return &out, nil
	}
	return nil, notification.ErrNotFound
}

func (r *memNotificationRepository) MarkAllRead(_ context.Context, recipient string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	now := time.Now().UTC()
	for i := range r.rows {
		if r.rows[i].Recipient == recipient && !r.rows[i].IsRead {
			r.rows[i].IsRead = true
			r.rows[i].ReadAt = &now
			n++
		}
	}
	return n, nil
}

func (r *memNotificationRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memNotificationRepository) CountUnread(_ context.Context, recipient string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.countCalls++
	var n int64
	for _, row := range r.rows {
		if row.Recipient == recipient && !row.IsRead {
			n++
		}
	}
	return n, nil
}

// memCache is a TTL-less in-memory Cache.
type memCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemCache() *memCache { return &memCache{data: make(map[string]string)} }

func (c *memCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return "", cacheport.ErrMiss
	}
	return v, nil
}

func (c *memCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memCache) Del(_ context.Context, keys ...string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := c.data[k]; ok {
			delete(c.data, k)
			n++
		}
	}
	return n, nil
}

func (c *memCache) Ping(context.Context) error { return nil }
func (c *memCache) Close() error               { return nil }

type recordedEvent struct {
	Event string
	Scope realtime.Scope
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingPublisher) Publish(event string, _ any, scope realtime.Scope) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{Event: event, Scope: scope})
}

func (p *recordingPublisher) count(event string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.events {
		if e.Event == event {
			n++
		}
	}
	return n
}

func seedNotifications(t *testing.T, repo *memNotificationRepository, recipient string, n int) {
	t.Helper()
	base := time.Now().UTC().Add(-time.Duration(n) * time.Minute)
	for i := 0; i < n; i++ {
		_, err := repo.Create(context.Background(), notification.Notification{
			Recipient: recipient,
			Kind:      notification.KindChat,
			Title:     fmt.Sprintf("message %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
}

func TestListNotificationsUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("PagesCoverEveryRowExactlyOnce", func(t *testing.T) {
		repo := &memNotificationRepository{}
		seedNotifications(t, repo, "alice", 25)
		uc := NewListNotificationsUseCase(repo)

		seen := make(map[string]int)
		var cursor *time.Time
		cursorID := ""
		pages := 0
		for {
			out, err := uc.Execute(ctx, ListNotificationsInput{Username: "alice", Limit: 10, Cursor: cursor, CursorID: cursorID})
			require.NoError(t, err)
			for _, n := range out.Items {
				seen[n.ID]++
			}
			pages++
			if out.NextCursor == nil {
				break
			}
			cursor = out.NextCursor
			cursorID = out.NextCursorID
			require.Less(t, pages, 10, "cursor failed to advance")
		}

		assert.Len(t, seen, 25)
		for id, count := range seen {
			assert.Equal(t, 1, count, "row %s returned more than once", id)
		}
	})

	// Rows created in the same instant must not vanish when the page boundary
	// lands between them; the cursor id is the tie-break.
	t.Run("EqualTimestampsSurvivePageBoundary", func(t *testing.T) {
		repo := &memNotificationRepository{}
		at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		for i := 0; i < 4; i++ {
			_, err := repo.Create(ctx, notification.Notification{
				Recipient: "alice",
				Kind:      notification.KindChat,
				Title:     "ping",
				CreatedAt: at,
			})
			require.NoError(t, err)
		}
		uc := NewListNotificationsUseCase(repo)

		first, err := uc.Execute(ctx, ListNotificationsInput{Username: "alice", Limit: 2})
		require.NoError(t, err)
		require.Len(t, first.Items, 2)
		require.NotNil(t, first.NextCursor)
		require.NotEmpty(t, first.NextCursorID)

		second, err := uc.Execute(ctx, ListNotificationsInput{
			Username: "alice",
			Limit:    2,
			Cursor:   first.NextCursor,
			CursorID: first.NextCursorID,
		})
		require.NoError(t, err)
		require.Len(t, second.Items, 2)

		seen := make(map[string]bool)
		for _, n := range append(first.Items, second.Items...) {
			seen[n.ID] = true
		}
		assert.Len(t, seen, 4, "a row straddling the boundary was lost or repeated")
	})

	t.Run("NewestFirst", func(t *testing.T) {
		repo := &memNotificationRepository{}
		seedNotifications(t, repo, "alice", 5)
		uc := NewListNotificationsUseCase(repo)

		out, err := uc.Execute(ctx, ListNotificationsInput{Username: "alice", Limit: 5})
		require.NoError(t, err)
		require.Len(t, out.Items, 5)
		for i := 1; i < len(out.Items); i++ {
			assert.False(t, out.Items[i].CreatedAt.After(out.Items[i-1].CreatedAt))
		}
	})

	t.Run("DefaultLimitApplies", func(t *testing.T) {
		repo := &memNotificationRepository{}
		seedNotifications(t, repo, "alice", 30)
		uc := NewListNotificationsUseCase(repo)

		out, err := uc.Execute(ctx, ListNotificationsInput{Username: "alice"})
		require.NoError(t, err)
		assert.Len(t, out.Items, 20)
		assert.NotNil(t, out.NextCursor)
	})
}

func TestCreateNotificationUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatesAndSignalsRecipient", func(t *testing.T) {
		repo := &memNotificationRepository{}
		cache := newMemCache()
		pub := &recordingPublisher{}
		uc := NewCreateNotificationUseCase(repo, cache, pub)

		// Pre-warm the badge cache so we can observe the invalidation.
		require.NoError(t, cache.Set(ctx, unreadCountKey("bob"), "7", 0))

		created, err := uc.Execute(ctx, notification.Notification{
			Recipient: "bob",
			Kind:      notification.KindChat,
			Title:     "alice sent a message",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)

		_, err = cache.Get(ctx, unreadCountKey("bob"))
		assert.ErrorIs(t, err, cacheport.ErrMiss)
		assert.Equal(t, 1, pub.count(realtime.EventNotificationUpdate))
	})

	t.Run("RejectsMissingRecipient", func(t *testing.T) {
		uc := NewCreateNotificationUseCase(&memNotificationRepository{}, nil, nil)
		_, err := uc.Execute(ctx, notification.Notification{Kind: notification.KindChat, Title: "x"})
		assert.ErrorIs(t, err, notification.ErrMissingRecipient)
	})
}

func TestMarkNotificationReadUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("MarkAndRemarkKeepFirstReadAt", func(t *testing.T) {
		repo := &memNotificationRepository{}
		seedNotifications(t, repo, "alice", 1)
		uc := NewMarkNotificationReadUseCase(repo, newMemCache(), &recordingPublisher{})

		first, err := uc.Execute(ctx, "notif-1")
		require.NoError(t, err)
		require.True(t, first.IsRead)
		require.NotNil(t, first.ReadAt)

		again, err := uc.Execute(ctx, "notif-1")
		require.NoError(t, err)
		assert.Equal(t, first.ReadAt, again.ReadAt)
	})

	t.Run("UnknownIDIsNotFound", func(t *testing.T) {
		uc := NewMarkNotificationReadUseCase(&memNotificationRepository{}, nil, nil)
		_, err := uc.Execute(ctx, "ghost")
		assert.ErrorIs(t, err, notification.ErrNotFound)
	})
}

func TestMarkAllNotificationsReadUseCase(t *testing.T) {
	ctx := context.Background()

	repo := &memNotificationRepository{}
	seedNotifications(t, repo, "alice", 4)
	seedNotifications(t, repo, "bob", 2)
	pub := &recordingPublisher{}
	uc := NewMarkAllNotificationsReadUseCase(repo, newMemCache(), pub)

	updated, err := uc.Execute(ctx, "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 4, updated)
	assert.Equal(t, 1, pub.count(realtime.EventNotificationUpdate))

	// bob's rows are untouched
	count, err := repo.CountUnread(ctx, "bob")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestCountUnreadUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("CachesTheCount", func(t *testing.T) {
		repo := &memNotificationRepository{}
		seedNotifications(t, repo, "alice", 3)
		cache := newMemCache()
		uc := NewCountUnreadUseCase(repo, cache)

		count, err := uc.Execute(ctx, "alice")
		require.NoError(t, err)
		assert.EqualValues(t, 3, count)

		// Second call is served from cache.
		count, err = uc.Execute(ctx, "alice")
		require.NoError(t, err)
		assert.EqualValues(t, 3, count)
		assert.Equal(t, 1, repo.countCalls)
	})

	t.Run("SurvivesWithoutCache", func(t *testing.T) {
		repo := &memNotificationRepository{}
		seedNotifications(t, repo, "alice", 2)
		uc := NewCountUnreadUseCase(repo, nil)

		count, err := uc.Execute(ctx, "alice")
		require.NoError(t, err)
		assert.EqualValues(t, 2, count)
	})
}
