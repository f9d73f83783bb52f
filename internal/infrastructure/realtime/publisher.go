package realtime

import (
	"encoding/json"
	"log"
)

// Scope selects the audience for a published event: a chat room, a single
// user, or every connected session. ExcludeUsername applies to room and
// global scopes so a client never receives its own typing events.
type Scope struct {
	Room            string
	User            string
	Global          bool
	ExcludeUsername string
}

// RoomScope targets all sessions subscribed to the chat, optionally skipping one user.
func RoomScope(chatID string, excludeUsername string) Scope {
	return Scope{Room: chatID, ExcludeUsername: excludeUsername}
}

// UserScope targets the active session of a single user.
func UserScope(username string) Scope {
	return Scope{User: username}
}

// GlobalScope targets every connected session.
func GlobalScope(excludeUsername string) Scope {
	return Scope{Global: true, ExcludeUsername: excludeUsername}
}

// Publisher is the narrow fan-out interface handed to application code, so
// the coordinator, reconciler and tracker are testable without a live
// transport. Publish is best-effort: delivery failures to individual slow
// clients are handled by the transport, never surfaced to the caller.
type Publisher interface {
	Publish(event string, payload any, scope Scope)
}

// envelope is the frame shape written to clients.
type envelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}

// Publish implements Publisher on top of the room router.
func (r *Router) Publish(event string, payload any, scope Scope) {
	data, err := json.Marshal(envelope{Event: event, Payload: payload})
	if err != nil {
		log.Printf("realtime: drop %s event: encode: %v", event, err)
		return
	}

	switch {
	case scope.User != "":
		r.NotifyUser(scope.User, data)
	case scope.Room != "":
		r.Broadcast(scope.Room, data, scope.ExcludeUsername)
	case scope.Global:
		r.BroadcastAll(data, scope.ExcludeUsername)
	default:
		log.Printf("realtime: drop %s event: empty scope", event)
	}
}

var _ Publisher = (*Router)(nil)
