package usecase

import (
	"context"
	"fmt"

	chat "github.com/shuerry/Connectify-sub000/internal/pkg/chat/application/domain"
	repository "github.com/shuerry/Connectify-sub000/internal/pkg/chat/persistence/repository/port"
)

// JoinChatInput validates a request to attach a user session to a chat room.
type JoinChatInput struct {
	ChatID   string
	Username string
}

// JoinChatUseCase ensures the user belongs to the chat before joining the realtime room.
type JoinChatUseCase struct {
	Repo repository.ChatRepository
}

func NewJoinChatUseCase(repo repository.ChatRepository) *JoinChatUseCase {
	return &JoinChatUseCase{Repo: repo}
}

func (uc *JoinChatUseCase) Execute(ctx context.Context, in JoinChatInput) error {
	if in.ChatID == "" || in.Username == "" {
		return fmt.Errorf("chatId and username are required")
	}

	ok, err := uc.Repo.IsMember(ctx, in.ChatID, in.Username)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !ok {
		return chat.ErrNotParticipant
	}
	return nil
}
