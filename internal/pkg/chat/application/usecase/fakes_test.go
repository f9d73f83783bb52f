package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	qport "github.com/shuerry/Connectify-sub000/internal/infrastructure/queue/port"
	"github.com/shuerry/Connectify-sub000/internal/infrastructure/realtime"
	chat "github.com/shuerry/Connectify-sub000/internal/pkg/chat/application/domain"
	notifdomain "github.com/shuerry/Connectify-sub000/internal/pkg/notification/application/domain"
	notifport "github.com/shuerry/Connectify-sub000/internal/pkg/notification/persistence/repository/port"
	userrepo "github.com/shuerry/Connectify-sub000/internal/repository/port"
)

// memChatRepository is an in-memory ChatRepository for use case tests.
type memChatRepository struct {
	mu       sync.Mutex
	nextID   int
	chats    map[string]*chat.Chat
	messages map[string]*chat.Message

	snapshotCalls int
}

func newMemChatRepository() *memChatRepository {
	return &memChatRepository{
		chats:    make(map[string]*chat.Chat),
		messages: make(map[string]*chat.Message),
	}
}

func (r *memChatRepository) genID(prefix string) string {
	r.nextID++
	return fmt.Sprintf("%s-%d", prefix, r.nextID)
}

func (r *memChatRepository) CreateChat(_ context.Context, c chat.Chat) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.genID("chat")
	c.ID = id
	r.chats[id] = &c
	return id, nil
}

func (r *memChatRepository) GetChat(_ context.Context, chatID string) (*chat.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chats[chatID]
	if !ok {
		return nil, chat.ErrChatNotFound
	}
	out := *c
	out.Messages = nil
	return &out, nil
}

func (r *memChatRepository) GetChatSnapshot(ctx context.Context, chatID string) (*chat.Chat, error) {
	r.mu.Lock()
	r.snapshotCalls++
	r.mu.Unlock()
	c, err := r.GetChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	msgs, err := r.GetMessagesByChat(ctx, chatID, 0, 0)
	if err != nil {
		return nil, err
	}
	c.Messages = msgs
	return c, nil
}

func (r *memChatRepository) IsMember(_ context.Context, chatID string, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chats[chatID]
	if !ok {
		return false, nil
	}
	return c.HasMember(username), nil
}

func (r *memChatRepository) AddMember(_ context.Context, chatID string, username string, notifyEnabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chats[chatID]
	if !ok {
		return chat.ErrChatNotFound
	}
	if !c.HasMember(username) {
		c.Members = append(c.Members, username)
	}
	if c.NotifyEnabled == nil {
		c.NotifyEnabled = make(map[string]bool)
	}
	c.NotifyEnabled[username] = notifyEnabled
	return nil
}

func (r *memChatRepository) RemoveMember(_ context.Context, chatID string, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chats[chatID]
	if !ok {
		return chat.ErrChatNotFound
	}
	out := c.Members[:0]
	for _, m := range c.Members {
		if m != username {
			out = append(out, m)
		}
	}
	c.Members = out
	delete(c.NotifyEnabled, username)
	return nil
}

func (r *memChatRepository) SetNotifyEnabled(_ context.Context, chatID string, username string, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chats[chatID]
	if !ok {
		return chat.ErrChatNotFound
	}
	if !c.HasMember(username) {
		return chat.ErrNotParticipant
	}
	if c.NotifyEnabled == nil {
		c.NotifyEnabled = make(map[string]bool)
	}
	c.NotifyEnabled[username] = enabled
	return nil
}

func (r *memChatRepository) SaveMessage(_ context.Context, m chat.Message) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.genID("msg")
	m.ID = id
	r.messages[id] = &m
	return id, nil
}

func (r *memChatRepository) GetMessage(_ context.Context, messageID string) (*chat.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.messages[messageID]
	if !ok {
		return nil, chat.ErrMessageNotFound
	}
	out := *m
	return &out, nil
}

func (r *memChatRepository) GetMessagesByChat(_ context.Context, chatID string, limit int, offset int) ([]chat.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var msgs []chat.Message
	for i := 1; i <= r.nextID; i++ {
		m, ok := r.messages[fmt.Sprintf("msg-%d", i)]
		if !ok || m.ChatID != chatID || m.IsDeleted {
			continue
		}
		msgs = append(msgs, *m)
	}
	if offset > 0 {
		if offset >= len(msgs) {
			return nil, nil
		}
		msgs = msgs[offset:]
	}
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[:limit]
	}
	return msgs, nil
}

func (r *memChatRepository) AppendEdit(_ context.Context, messageID string, newBody string, editedBy string, editedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.messages[messageID]
	if !ok {
		return chat.ErrMessageNotFound
	}
	m.EditHistory = append(m.EditHistory, chat.MessageEdit{PriorBody: m.Msg, EditedBy: editedBy, EditedAt: editedAt})
	m.Msg = newBody
	m.LastEditedAt = &editedAt
	m.LastEditedBy = &editedBy
	return nil
}

func (r *memChatRepository) SoftDeleteMessage(_ context.Context, messageID string, deletedBy string, deletedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.messages[messageID]
	if !ok {
		return chat.ErrMessageNotFound
	}
	m.IsDeleted = true
	m.DeletedAt = &deletedAt
	m.DeletedBy = &deletedBy
	return nil
}

func (r *memChatRepository) MarkChatRead(_ context.Context, chatID string, username string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var added int64
	for _, m := range r.messages {
		if m.ChatID != chatID || m.MsgFrom == username {
			continue
		}
		if m.ReadByUser(username) {
			continue
		}
		m.ReadBy = append(m.ReadBy, username)
		added++
	}
	return added, nil
}

// memUserRepository backs the friend checks and digest address lookups.
type memUserRepository struct {
	profiles map[string]userrepo.UserProfile
	friends  map[string]bool // "a|b" normalized both ways
}

func newMemUserRepository() *memUserRepository {
	return &memUserRepository{
		profiles: make(map[string]userrepo.UserProfile),
		friends:  make(map[string]bool),
	}
}

func (r *memUserRepository) addUser(p userrepo.UserProfile) {
	r.profiles[p.Username] = p
}

func (r *memUserRepository) befriend(a, b string) {
	r.friends[a+"|"+b] = true
	r.friends[b+"|"+a] = true
}

func (r *memUserRepository) GetByUsername(_ context.Context, username string) (*userrepo.UserProfile, error) {
	p, ok := r.profiles[username]
	if !ok {
		return nil, userrepo.ErrUserNotFound
	}
	return &p, nil
}

func (r *memUserRepository) GetManyByUsernames(_ context.Context, usernames []string) ([]userrepo.UserProfile, error) {
	var out []userrepo.UserProfile
	for _, u := range usernames {
		if p, ok := r.profiles[u]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memUserRepository) AreFriends(_ context.Context, a, b string) (bool, error) {
	return r.friends[a+"|"+b], nil
}

func (r *memUserRepository) SetOnline(_ context.Context, username string, online bool) error {
	p, ok := r.profiles[username]
	if !ok {
		return userrepo.ErrUserNotFound
	}
	p.IsOnline = online
	r.profiles[username] = p
	return nil
}

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

type publishedEvent struct {
	Event   string
	Payload any
	Scope   realtime.Scope
}

func (p *recordingPublisher) Publish(event string, payload any, scope realtime.Scope) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Event: event, Payload: payload, Scope: scope})
}

func (p *recordingPublisher) byEvent(event string) []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []publishedEvent
	for _, e := range p.events {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

// recordingQueue captures enqueued tasks; fail makes every enqueue error.
type recordingQueue struct {
	mu    sync.Mutex
	tasks []enqueuedTask
	fail  bool
}

type enqueuedTask struct {
	Task qport.Task
	Opts []qport.EnqueueOption
}

func (q *recordingQueue) Enqueue(_ context.Context, t qport.Task, opts ...qport.EnqueueOption) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.fail {
		return "", errors.New("queue unavailable")
	}
	q.tasks = append(q.tasks, enqueuedTask{Task: t, Opts: opts})
	return fmt.Sprintf("task-%d", len(q.tasks)), nil
}

func (q *recordingQueue) Close() error { return nil }

// memNotificationRepository collects created notifications for fan-out tests.
type memNotificationRepository struct {
	mu      sync.Mutex
	nextID  int
	created []notifdomain.Notification
}

func (r *memNotificationRepository) Create(_ context.Context, n notifdomain.Notification) (*notifdomain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	n.ID = fmt.Sprintf("notif-%d", r.nextID)
	n.CreatedAt = time.Now().UTC()
	r.created = append(r.created, n)
	out := n
	return &out, nil
}

func (r *memNotificationRepository) ListByRecipient(_ context.Context, recipient string, limit int, before *notifport.PageCursor) ([]notifdomain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []notifdomain.Notification
	for i := len(r.created) - 1; i >= 0; i-- {
		n := r.created[i]
		if n.Recipient != recipient {
			continue
		}
		if before != nil {
			older := n.CreatedAt.Before(before.CreatedAt) ||
				(before.ID != "" && n.CreatedAt.Equal(before.CreatedAt) && n.ID < before.ID)
			if !older {
				continue
			}
		}
		out = append(out, n)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *memNotificationRepository) MarkRead(_ context.Context, id string) (*notifdomain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.created {
		if r.created[i].ID == id {
			if !r.created[i].IsRead {
				now := time.Now().UTC()
				r.created[i].IsRead = true
				r.created[i].ReadAt = &now
			}
			out := r.created[i]
			return &out, nil
		}
	}
	return nil, notifdomain.ErrNotFound
}

func (r *memNotificationRepository) MarkAllRead(_ context.Context, recipient string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	now := time.Now().UTC()
	for i := range r.created {
		if r.created[i].Recipient == recipient && !r.created[i].IsRead {
			r.created[i].IsRead = true
			r.created[i].ReadAt = &now
			n++
		}
	}
	return n, nil
}

func (r *memNotificationRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.created {
		if r.created[i].ID == id {
			r.created = append(r.created[:i], r.created[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memNotificationRepository) CountUnread(_ context.Context, recipient string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, c := range r.created {
		if c.Recipient == recipient && !c.IsRead {
			n++
		}
	}
	return n, nil
}
