package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuerry/Connectify-sub000/internal/infrastructure/realtime"
	chat "github.com/shuerry/Connectify-sub000/internal/pkg/chat/application/domain"
)

func TestCreateChatUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("GroupChatStartsWithAllNotificationsOn", func(t *testing.T) {
		repo := newMemChatRepository()
		pub := &recordingPublisher{}
		uc := NewCreateChatUseCase(repo, newMemUserRepository(), pub)

		created, err := uc.Execute(ctx, CreateChatInput{
			CreatedBy: "alice",
			Members:   []string{"alice", "bob", "carol", "bob"},
			Name:      "standup",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, []string{"alice", "bob", "carol"}, created.Members)
		for _, m := range created.Members {
			assert.True(t, created.NotifyEnabled[m])
		}

		// Each member's client learns about the new chat directly.
		updates := pub.byEvent(realtime.EventChatUpdate)
		require.Len(t, updates, 3)
		users := make(map[string]bool)
		for _, u := range updates {
			users[u.Scope.User] = true
		}
		assert.Len(t, users, 3)
	})

	t.Run("DirectChatRequiresFriendship", func(t *testing.T) {
		repo := newMemChatRepository()
		users := newMemUserRepository()
		uc := NewCreateChatUseCase(repo, users, &recordingPublisher{})

		_, err := uc.Execute(ctx, CreateChatInput{CreatedBy: "alice", Members: []string{"alice", "bob"}})
		assert.ErrorIs(t, err, chat.ErrNotFriends)

		users.befriend("alice", "bob")
		created, err := uc.Execute(ctx, CreateChatInput{CreatedBy: "alice", Members: []string{"alice", "bob"}})
		require.NoError(t, err)
		assert.True(t, created.IsDirect())
	})

	t.Run("CommunityPairIsNotDirect", func(t *testing.T) {
		repo := newMemChatRepository()
		uc := NewCreateChatUseCase(repo, newMemUserRepository(), &recordingPublisher{})

		communityID := "gophers"
		created, err := uc.Execute(ctx, CreateChatInput{
			CreatedBy:       "alice",
			Members:         []string{"alice", "bob"},
			IsCommunityChat: true,
			CommunityID:     &communityID,
		})
		// No friendship needed: two-member community chats are not DMs.
		require.NoError(t, err)
		assert.False(t, created.IsDirect())
	})

	t.Run("NeedsTwoMembers", func(t *testing.T) {
		uc := NewCreateChatUseCase(newMemChatRepository(), newMemUserRepository(), &recordingPublisher{})
		_, err := uc.Execute(ctx, CreateChatInput{CreatedBy: "alice", Members: []string{"alice"}})
		assert.Error(t, err)
	})
}
