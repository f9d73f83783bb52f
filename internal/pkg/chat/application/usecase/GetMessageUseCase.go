package usecase

import (
	"context"
	"fmt"

	chat "github.com/shuerry/Connectify-sub000/internal/pkg/chat/application/domain"
	repository "github.com/shuerry/Connectify-sub000/internal/pkg/chat/persistence/repository/port"
)

// GetMessageInput carries parameters to fetch messages of a chat.
// Using singular naming for the use case per guideline
// Variables with multiple items use plural (e.g., messages slice in the return)
type GetMessageInput struct {
	ChatID   string
	Username string
	Limit    int
}

// GetMessageUseCase fetches the visible message history of a chat for one of
// its members. Soft-deleted messages never leave the repository.
type GetMessageUseCase struct {
	Repo repository.ChatRepository
}

func NewGetMessageUseCase(repo repository.ChatRepository) *GetMessageUseCase {
	return &GetMessageUseCase{Repo: repo}
}

func (uc *GetMessageUseCase) Execute(ctx context.Context, in GetMessageInput) ([]chat.Message, error) {
	if in.ChatID == "" || in.Username == "" {
		return nil, fmt.Errorf("chatId and username are required")
	}

	ok, err := uc.Repo.IsMember(ctx, in.ChatID, in.Username)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !ok {
		return nil, chat.ErrNotParticipant
	}

	msgs, err := uc.Repo.GetMessagesByChat(ctx, in.ChatID, in.Limit, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return msgs, nil
}
