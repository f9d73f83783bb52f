package realtime

// Event names pushed to clients over the websocket.
const (
	EventChatUpdate         = "chatUpdate"
	EventMessageUpdate      = "messageUpdate"
	EventTypingIndicator    = "typingIndicator"
	EventUserStatusUpdate   = "userStatusUpdate"
	EventNotificationUpdate = "notificationUpdate"
)

// chatUpdate subtypes describing what changed.
const (
	ChatUpdateCreated        = "created"
	ChatUpdateNewMessage     = "newMessage"
	ChatUpdateMessageDeleted = "messageDeleted"
	ChatUpdateReadReceipt    = "readReceipt"
	ChatUpdateNewParticipant = "newParticipant"
)

// ChatUpdatePayload carries a full chat snapshot plus the change kind.
// The snapshot must be re-fetched at broadcast time, never a stale copy.
type ChatUpdatePayload struct {
	Chat any    `json:"chat"`
	Type string `json:"type"`
}

// MessageUpdatePayload carries a single updated message (edits).
type MessageUpdatePayload struct {
	Msg any `json:"msg"`
}

// TypingIndicatorPayload signals a typing-state transition within a chat.
type TypingIndicatorPayload struct {
	ChatID   string `json:"chatID"`
	Username string `json:"username"`
	IsTyping bool   `json:"isTyping"`
}

// UserStatusPayload broadcasts presence. When the user hides their status,
// IsOnline is already masked to false before publishing.
type UserStatusPayload struct {
	Username         string `json:"username"`
	IsOnline         bool   `json:"isOnline"`
	ShowOnlineStatus bool   `json:"showOnlineStatus"`
}
