package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuerry/Connectify-sub000/internal/infrastructure/realtime"
	chat "github.com/shuerry/Connectify-sub000/internal/pkg/chat/application/domain"
)

func TestMarkChatReadUseCase(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (*memChatRepository, *recordingPublisher, *MarkChatReadUseCase, string, []string) {
		t.Helper()
		repo := newMemChatRepository()
		pub := &recordingPublisher{}
		chatID := seedChat(t, repo, "alice", "bob", "carol")

		var msgIDs []string
		for _, body := range []string{"first", "second"} {
			m, err := chat.NewMessage(chat.Message{ChatID: chatID, MsgFrom: "alice", Msg: body})
			require.NoError(t, err)
			id, err := repo.SaveMessage(ctx, *m)
			require.NoError(t, err)
			msgIDs = append(msgIDs, id)
		}
		m, err := chat.NewMessage(chat.Message{ChatID: chatID, MsgFrom: "bob", Msg: "reply"})
		require.NoError(t, err)
		id, err := repo.SaveMessage(ctx, *m)
		require.NoError(t, err)
		msgIDs = append(msgIDs, id)

		return repo, pub, NewMarkChatReadUseCase(repo, pub), chatID, msgIDs
	}

	t.Run("MarksOnlyOthersMessages", func(t *testing.T) {
		repo, _, uc, chatID, msgIDs := seed(t)

		snapshot, err := uc.Execute(ctx, MarkChatReadInput{ChatID: chatID, Username: "bob"})
		require.NoError(t, err)
		require.Len(t, snapshot.Messages, 3)

		for _, id := range msgIDs[:2] {
			m, err := repo.GetMessage(ctx, id)
			require.NoError(t, err)
			assert.True(t, m.ReadByUser("bob"), "alice's message should be read by bob")
		}
		// bob's own message never gets his receipt
		own, err := repo.GetMessage(ctx, msgIDs[2])
		require.NoError(t, err)
		assert.False(t, own.ReadByUser("bob"))
	})

	t.Run("RereadIsIdempotentAndSilent", func(t *testing.T) {
		repo, pub, uc, chatID, _ := seed(t)

		_, err := uc.Execute(ctx, MarkChatReadInput{ChatID: chatID, Username: "bob"})
		require.NoError(t, err)
		first := len(pub.byEvent(realtime.EventChatUpdate))
		assert.Equal(t, 1, first)
		snapshots := repo.snapshotCalls

		// Second pass adds nothing, broadcasts nothing, and does not re-load
		// the message log.
		_, err = uc.Execute(ctx, MarkChatReadInput{ChatID: chatID, Username: "bob"})
		require.NoError(t, err)
		assert.Equal(t, first, len(pub.byEvent(realtime.EventChatUpdate)))
		assert.Equal(t, snapshots, repo.snapshotCalls)
	})

	t.Run("BroadcastIsReadReceiptToRoom", func(t *testing.T) {
		_, pub, uc, chatID, _ := seed(t)

		_, err := uc.Execute(ctx, MarkChatReadInput{ChatID: chatID, Username: "carol"})
		require.NoError(t, err)

		updates := pub.byEvent(realtime.EventChatUpdate)
		require.Len(t, updates, 1)
		assert.Equal(t, chatID, updates[0].Scope.Room)
		payload := updates[0].Payload.(realtime.ChatUpdatePayload)
		assert.Equal(t, realtime.ChatUpdateReadReceipt, payload.Type)
	})

	t.Run("RejectsNonMember", func(t *testing.T) {
		_, _, uc, chatID, _ := seed(t)
		_, err := uc.Execute(ctx, MarkChatReadInput{ChatID: chatID, Username: "mallory"})
		assert.ErrorIs(t, err, chat.ErrNotParticipant)
	})
}
