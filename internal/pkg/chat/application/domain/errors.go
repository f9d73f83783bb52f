package chat

import "errors"

// Domain-level errors for chat behaviors
var (
	ErrChatNotFound    = errors.New("chat: chat not found")
	ErrMessageNotFound = errors.New("chat: message not found")
	ErrNotParticipant  = errors.New("chat: user is not a participant in the chat")
	ErrNotAuthor       = errors.New("chat: only the author may modify a message")
	ErrNotFriends      = errors.New("chat: direct messaging requires an existing friendship")
	ErrEmptyMessage    = errors.New("chat: empty message body")
	ErrMissingSender   = errors.New("chat: chat id and sender are required")
	ErrMessageDeleted  = errors.New("chat: message has been deleted")
)
