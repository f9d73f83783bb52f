package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chat "github.com/shuerry/Connectify-sub000/internal/pkg/chat/application/domain"
)

func seedChat(t *testing.T, repo *memChatRepository, members ...string) string {
	t.Helper()
	notify := make(map[string]bool, len(members))
	for _, m := range members {
		notify[m] = true
	}
	id, err := repo.CreateChat(context.Background(), chat.Chat{Members: members, NotifyEnabled: notify})
	require.NoError(t, err)
	return id
}

func TestSendMessageUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("AppendsAndReturnsWithID", func(t *testing.T) {
		repo := newMemChatRepository()
		users := newMemUserRepository()
		chatID := seedChat(t, repo, "alice", "bob", "carol")
		uc := NewSendMessageUseCase(repo, users)

		msg, err := uc.Execute(ctx, SendMessageInput{ChatID: chatID, Sender: "alice", Body: "  hello  "})
		require.NoError(t, err)
		assert.NotEmpty(t, msg.ID)
		assert.Equal(t, "hello", msg.Msg)
		assert.False(t, msg.MsgDateTime.IsZero())

		stored, err := repo.GetMessage(ctx, msg.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", stored.MsgFrom)
	})

	t.Run("RejectsNonMember", func(t *testing.T) {
		repo := newMemChatRepository()
		chatID := seedChat(t, repo, "alice", "bob", "carol")
		uc := NewSendMessageUseCase(repo, newMemUserRepository())

		_, err := uc.Execute(ctx, SendMessageInput{ChatID: chatID, Sender: "mallory", Body: "hi"})
		assert.ErrorIs(t, err, chat.ErrNotParticipant)
	})

	t.Run("RejectsBlankBody", func(t *testing.T) {
		repo := newMemChatRepository()
		chatID := seedChat(t, repo, "alice", "bob", "carol")
		uc := NewSendMessageUseCase(repo, newMemUserRepository())

		_, err := uc.Execute(ctx, SendMessageInput{ChatID: chatID, Sender: "alice", Body: "   "})
		assert.ErrorIs(t, err, chat.ErrEmptyMessage)
	})

	t.Run("DirectChatRequiresFriendship", func(t *testing.T) {
		repo := newMemChatRepository()
		users := newMemUserRepository()
		chatID := seedChat(t, repo, "alice", "bob")
		uc := NewSendMessageUseCase(repo, users)

		_, err := uc.Execute(ctx, SendMessageInput{ChatID: chatID, Sender: "alice", Body: "hey"})
		assert.ErrorIs(t, err, chat.ErrNotFriends)

		users.befriend("alice", "bob")
		_, err = uc.Execute(ctx, SendMessageInput{ChatID: chatID, Sender: "alice", Body: "hey"})
		assert.NoError(t, err)
	})

	t.Run("MissingChat", func(t *testing.T) {
		uc := NewSendMessageUseCase(newMemChatRepository(), newMemUserRepository())
		_, err := uc.Execute(ctx, SendMessageInput{ChatID: "nope", Sender: "alice", Body: "hi"})
		assert.ErrorIs(t, err, chat.ErrChatNotFound)
	})
}
