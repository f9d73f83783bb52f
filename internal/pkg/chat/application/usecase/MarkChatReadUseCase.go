package usecase

import (
	"context"
	"fmt"

	"github.com/shuerry/Connectify-sub000/internal/infrastructure/realtime"
	chat "github.com/shuerry/Connectify-sub000/internal/pkg/chat/application/domain"
	repository "github.com/shuerry/Connectify-sub000/internal/pkg/chat/persistence/repository/port"
)

// MarkChatReadInput identifies the chat being read and who read it.
type MarkChatReadInput struct {
	ChatID   string
	Username string
}

// MarkChatReadUseCase is the read-receipt reconciler: it appends the reader
// to the readBy set of every message they did not send, then broadcasts the
// updated chat to all participants. readBy only grows; re-reading is a no-op.
type MarkChatReadUseCase struct {
	Repo      repository.ChatRepository
	Publisher realtime.Publisher
}

func NewMarkChatReadUseCase(repo repository.ChatRepository, pub realtime.Publisher) *MarkChatReadUseCase {
	return &MarkChatReadUseCase{Repo: repo, Publisher: pub}
}

// Execute reconciles receipts and returns the post-update snapshot so
// callers can recompute receipt labels immediately. When nothing changed the
// membership view from the initial lookup is returned as-is, without
// re-loading the message log.
func (uc *MarkChatReadUseCase) Execute(ctx context.Context, in MarkChatReadInput) (*chat.Chat, error) {
	if in.ChatID == "" || in.Username == "" {
		return nil, fmt.Errorf("chatId and username are required")
	}

	c, err := uc.Repo.GetChat(ctx, in.ChatID)
	if err != nil {
		if err == chat.ErrChatNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !c.HasMember(in.Username) {
		return nil, chat.ErrNotParticipant
	}

	added, err := uc.Repo.MarkChatRead(ctx, in.ChatID, in.Username)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// An idle re-read changes nothing: no broadcast and no snapshot load.
	if added == 0 {
		return c, nil
	}

	// Broadcast the canonical snapshot, re-fetched after the write so no
	// stale copy leaks to clients.
	snapshot, err := uc.Repo.GetChatSnapshot(ctx, in.ChatID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if uc.Publisher != nil {
		uc.Publisher.Publish(realtime.EventChatUpdate,
			realtime.ChatUpdatePayload{Chat: snapshot, Type: realtime.ChatUpdateReadReceipt},
			realtime.RoomScope(in.ChatID, ""))
	}
	return snapshot, nil
}
