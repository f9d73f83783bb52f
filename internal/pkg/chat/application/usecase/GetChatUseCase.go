package usecase

import (
	"context"
	"fmt"

	chat "github.com/shuerry/Connectify-sub000/internal/pkg/chat/application/domain"
	repository "github.com/shuerry/Connectify-sub000/internal/pkg/chat/persistence/repository/port"
)

// GetChatInput wraps the chat identifier plus the requesting member.
type GetChatInput struct {
	ChatID   string
	Username string
}

// GetChatUseCase returns the full chat snapshot (members, toggles, visible
// messages) for one of its members.
type GetChatUseCase struct {
	Repo repository.ChatRepository
}

func NewGetChatUseCase(repo repository.ChatRepository) *GetChatUseCase {
	return &GetChatUseCase{Repo: repo}
}

func (uc *GetChatUseCase) Execute(ctx context.Context, in GetChatInput) (*chat.Chat, error) {
	if in.ChatID == "" || in.Username == "" {
		return nil, fmt.Errorf("chatId and username are required")
	}

	c, err := uc.Repo.GetChatSnapshot(ctx, in.ChatID)
	if err != nil {
		if err == chat.ErrChatNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !c.HasMember(in.Username) {
		return nil, chat.ErrNotParticipant
	}
	return c, nil
}
