package chat

import (
	"strings"
	"time"
)

// MessageType mirrors the client-facing message categories.
type MessageType string

const (
	MessageTypeGlobal         MessageType = "global"
	MessageTypeDirect         MessageType = "direct"
	MessageTypeFriendRequest  MessageType = "friendRequest"
	MessageTypeGameInvitation MessageType = "gameInvitation"
)

// MessageEdit is one entry of a message's append-only edit history.
type MessageEdit struct {
	PriorBody string
	EditedBy  string
	EditedAt  time.Time
}

// Message is an entry in a chat's ordered log.
//
// ReadBy only ever grows; soft deletion flips IsDeleted and stamps
// DeletedAt/DeletedBy but keeps the row for audit.
type Message struct {
	ID          string
	ChatID      string
	MsgFrom     string
	Msg         string
	MsgDateTime time.Time
	Type        MessageType
	MsgTo       *string

	ReadBy      []string
	EditHistory []MessageEdit

	LastEditedAt *time.Time
	LastEditedBy *string

	IsDeleted bool
	DeletedAt *time.Time
	DeletedBy *string
}

// NewMessage validates and normalizes a message before persistence.
// The body is whitespace-trimmed and must be non-empty; a zero timestamp is
// set to now.
func NewMessage(m Message) (*Message, error) {
	if m.ChatID == "" || m.MsgFrom == "" {
		return nil, ErrMissingSender
	}

	m.Msg = strings.TrimSpace(m.Msg)
	if m.Msg == "" {
		return nil, ErrEmptyMessage
	}

	if m.Type == "" {
		m.Type = MessageTypeDirect
	}
	if m.MsgDateTime.IsZero() {
		m.MsgDateTime = time.Now().UTC()
	}
	return &m, nil
}

// ReadByUser reports whether username already acknowledged this message.
func (m *Message) ReadByUser(username string) bool {
	for _, u := range m.ReadBy {
		if u == username {
			return true
		}
	}
	return false
}
