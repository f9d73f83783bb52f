package presence

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/shuerry/Connectify-sub000/internal/infrastructure/realtime"
	repository "github.com/shuerry/Connectify-sub000/internal/repository/port"
)

// TypingTimeout is how long a typing indicator stays lit after the last
// keystroke signal before it is cleared automatically.
const TypingTimeout = 3000 * time.Millisecond

type typingKey struct {
	sessionID string
	chatID    string
}

type typingState struct {
	username string
	timer    *time.Timer
}

// Tracker owns typing indicators and online presence for connected sessions.
// Typing state is keyed by (session, chat): the same user typing in two chats
// holds two independent indicators, and a reconnect under a fresh session
// never inherits a stale timer from the old one.
type Tracker struct {
	mu     sync.Mutex
	typing map[typingKey]*typingState

	timeout   time.Duration
	users     repository.UserRepository
	publisher realtime.Publisher
}

func NewTracker(users repository.UserRepository, pub realtime.Publisher) *Tracker {
	return &Tracker{
		typing:    make(map[typingKey]*typingState),
		timeout:   TypingTimeout,
		users:     users,
		publisher: pub,
	}
}

// StartTyping records a keystroke signal. The first call per (session, chat)
// broadcasts isTyping=true to the rest of the room; repeat calls only push
// the auto-stop deadline forward, so a continuous typist generates exactly
// one start event.
func (t *Tracker) StartTyping(sessionID, chatID, username string) {
	key := typingKey{sessionID: sessionID, chatID: chatID}

	t.mu.Lock()
	if st, ok := t.typing[key]; ok {
		st.timer.Reset(t.timeout)
		t.mu.Unlock()
		return
	}
	st := &typingState{username: username}
	st.timer = time.AfterFunc(t.timeout, func() {
		t.expire(key)
	})
	t.typing[key] = st
	t.mu.Unlock()

	t.broadcastTyping(chatID, username, true)
}

// StopTyping clears the indicator immediately. Sending a message and an
// explicit clear (emptied input box) both land here. Calling it when no
// indicator is lit is a no-op.
func (t *Tracker) StopTyping(sessionID, chatID string) {
	key := typingKey{sessionID: sessionID, chatID: chatID}

	t.mu.Lock()
	st, ok := t.typing[key]
	if ok {
		st.timer.Stop()
		delete(t.typing, key)
	}
	t.mu.Unlock()

	if ok {
		t.broadcastTyping(chatID, st.username, false)
	}
}

// expire fires from the debounce timer. The timer may race an explicit stop;
// the map entry decides who broadcasts.
func (t *Tracker) expire(key typingKey) {
	t.mu.Lock()
	st, ok := t.typing[key]
	if ok {
		delete(t.typing, key)
	}
	t.mu.Unlock()

	if ok {
		t.broadcastTyping(key.chatID, st.username, false)
	}
}

// ClearSession force-stops every indicator held by a session. Disconnect
// handling must call this, otherwise a user who closes the tab mid-keystroke
// would appear to type for another three seconds.
func (t *Tracker) ClearSession(sessionID string) {
	t.mu.Lock()
	var cleared []struct {
		chatID   string
		username string
	}
	for key, st := range t.typing {
		if key.sessionID != sessionID {
			continue
		}
		st.timer.Stop()
		delete(t.typing, key)
		cleared = append(cleared, struct {
			chatID   string
			username string
		}{key.chatID, st.username})
	}
	t.mu.Unlock()

	for _, c := range cleared {
		t.broadcastTyping(c.chatID, c.username, false)
	}
}

// ClearChat force-stops a session's indicator in one chat, used when the
// session leaves the room but stays connected.
func (t *Tracker) ClearChat(sessionID, chatID string) {
	t.StopTyping(sessionID, chatID)
}

func (t *Tracker) broadcastTyping(chatID, username string, isTyping bool) {
	if t.publisher == nil {
		return
	}
	payload := realtime.TypingIndicatorPayload{ChatID: chatID, Username: username, IsTyping: isTyping}
	// The typist already knows they are typing.
	t.publisher.Publish(realtime.EventTypingIndicator, payload, realtime.RoomScope(chatID, username))
}

// SetOnline persists the presence flip and broadcasts it. Users who hide
// their status still get the flag persisted, but the broadcast masks
// IsOnline to false so other clients render them as offline either way.
func (t *Tracker) SetOnline(ctx context.Context, username string, online bool) {
	if t.users != nil {
		if err := t.users.SetOnline(ctx, username, online); err != nil {
			log.Printf("presence: persist online=%v for %s: %v", online, username, err)
		}
	}

	visible := online
	show := true
	if t.users != nil {
		if u, err := t.users.GetByUsername(ctx, username); err == nil {
			show = u.ShowOnlineStatus
			if !show {
				visible = false
			}
		}
	}

	if t.publisher != nil {
		payload := realtime.UserStatusPayload{Username: username, IsOnline: visible, ShowOnlineStatus: show}
		t.publisher.Publish(realtime.EventUserStatusUpdate, payload, realtime.GlobalScope(username))
	}
}

// Disconnect runs the full teardown for a closing session: typing cleanup
// first so rooms see the indicator drop, then the presence flip.
func (t *Tracker) Disconnect(ctx context.Context, sessionID, username string) {
	t.ClearSession(sessionID)
	t.SetOnline(ctx, username, false)
}
