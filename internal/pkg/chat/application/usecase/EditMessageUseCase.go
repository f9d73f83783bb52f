package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shuerry/Connectify-sub000/internal/infrastructure/realtime"
	chat "github.com/shuerry/Connectify-sub000/internal/pkg/chat/application/domain"
	repository "github.com/shuerry/Connectify-sub000/internal/pkg/chat/persistence/repository/port"
)

// EditMessageInput carries the replacement body for a message.
type EditMessageInput struct {
	MessageID string
	Editor    string
	NewBody   string
}

// EditMessageUseCase lets the author rewrite a message. The prior body goes
// to the append-only edit history; other participants get a messageUpdate.
type EditMessageUseCase struct {
	Repo      repository.ChatRepository
	Publisher realtime.Publisher
}

func NewEditMessageUseCase(repo repository.ChatRepository, pub realtime.Publisher) *EditMessageUseCase {
	return &EditMessageUseCase{Repo: repo, Publisher: pub}
}

func (uc *EditMessageUseCase) Execute(ctx context.Context, in EditMessageInput) (*chat.Message, error) {
	body := strings.TrimSpace(in.NewBody)
	if body == "" {
		return nil, chat.ErrEmptyMessage
	}

	msg, err := uc.Repo.GetMessage(ctx, in.MessageID)
	if err != nil {
		if err == chat.ErrMessageNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if msg.MsgFrom != in.Editor {
		return nil, chat.ErrNotAuthor
	}
	if msg.IsDeleted {
		return nil, chat.ErrMessageDeleted
	}

	if err := uc.Repo.AppendEdit(ctx, in.MessageID, body, in.Editor, time.Now().UTC()); err != nil {
		if err == chat.ErrMessageNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	updated, err := uc.Repo.GetMessage(ctx, in.MessageID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if uc.Publisher != nil {
		uc.Publisher.Publish(realtime.EventMessageUpdate,
			realtime.MessageUpdatePayload{Msg: updated},
			realtime.RoomScope(updated.ChatID, ""))
	}
	return updated, nil
}
