package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shuerry/Connectify-sub000/internal/infrastructure/realtime"
	chat "github.com/shuerry/Connectify-sub000/internal/pkg/chat/application/domain"
	repository "github.com/shuerry/Connectify-sub000/internal/pkg/chat/persistence/repository/port"
)

// DeleteMessageInput identifies the message and the requesting user.
type DeleteMessageInput struct {
	MessageID string
	Username  string
}

// DeleteMessageUseCase soft-deletes a message (author only). The row stays
// in storage for audit but disappears from every subsequent fetch.
type DeleteMessageUseCase struct {
	Repo      repository.ChatRepository
	Publisher realtime.Publisher
}

func NewDeleteMessageUseCase(repo repository.ChatRepository, pub realtime.Publisher) *DeleteMessageUseCase {
	return &DeleteMessageUseCase{Repo: repo, Publisher: pub}
}

func (uc *DeleteMessageUseCase) Execute(ctx context.Context, in DeleteMessageInput) error {
	msg, err := uc.Repo.GetMessage(ctx, in.MessageID)
	if err != nil {
		if err == chat.ErrMessageNotFound {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if msg.MsgFrom != in.Username {
		return chat.ErrNotAuthor
	}
	if msg.IsDeleted {
		return nil // already gone; idempotent
	}

	if err := uc.Repo.SoftDeleteMessage(ctx, in.MessageID, in.Username, time.Now().UTC()); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	snapshot, err := uc.Repo.GetChatSnapshot(ctx, msg.ChatID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if uc.Publisher != nil {
		uc.Publisher.Publish(realtime.EventChatUpdate,
			realtime.ChatUpdatePayload{Chat: snapshot, Type: realtime.ChatUpdateMessageDeleted},
			realtime.RoomScope(msg.ChatID, ""))
	}
	return nil
}
