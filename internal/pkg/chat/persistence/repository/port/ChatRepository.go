package repository

import (
	"context"
	"time"

	chat "github.com/shuerry/Connectify-sub000/internal/pkg/chat/application/domain"
)

// ChatRepository defines persistence operations for the chat domain.
//
// Mutations on shared rows (readBy membership, notify toggle, soft delete)
// are single atomic statements rather than read-modify-write round trips, so
// concurrent writers commute without extra locking.
type ChatRepository interface {
	CreateChat(ctx context.Context, c chat.Chat) (string, error)

	// GetChat loads the chat with members and notify flags, no messages.
	GetChat(ctx context.Context, chatID string) (*chat.Chat, error)

	// GetChatSnapshot loads the chat including its non-deleted messages with
	// readBy sets, in log order. Used right before broadcasting so clients
	// always see the canonical state.
	GetChatSnapshot(ctx context.Context, chatID string) (*chat.Chat, error)

	IsMember(ctx context.Context, chatID string, username string) (bool, error)
	AddMember(ctx context.Context, chatID string, username string, notifyEnabled bool) error
	RemoveMember(ctx context.Context, chatID string, username string) error
	SetNotifyEnabled(ctx context.Context, chatID string, username string, enabled bool) error

	SaveMessage(ctx context.Context, m chat.Message) (string, error)
	GetMessage(ctx context.Context, messageID string) (*chat.Message, error)
	GetMessagesByChat(ctx context.Context, chatID string, limit int, offset int) ([]chat.Message, error)

	// AppendEdit records the prior body in the edit history and swaps in the
	// new body, in one transaction.
	AppendEdit(ctx context.Context, messageID string, newBody string, editedBy string, editedAt time.Time) error

	SoftDeleteMessage(ctx context.Context, messageID string, deletedBy string, deletedAt time.Time) error

	// MarkChatRead appends username to the readBy set of every message in the
	// chat not sent by them, returning how many receipts were added.
	MarkChatRead(ctx context.Context, chatID string, username string) (int64, error)
}
