package usecase

import (
	"context"
	"fmt"

	chat "github.com/shuerry/Connectify-sub000/internal/pkg/chat/application/domain"
	repository "github.com/shuerry/Connectify-sub000/internal/pkg/chat/persistence/repository/port"
)

// RemoveParticipantInput removes a member on request. Users may remove
// themselves; anything else is rejected here and left to moderation tooling.
type RemoveParticipantInput struct {
	ChatID      string
	RequestedBy string
	Username    string
}

// RemoveParticipantUseCase drops a member from a chat. The chat itself is
// never hard-deleted, even when the last member leaves.
type RemoveParticipantUseCase struct {
	Repo repository.ChatRepository
}

func NewRemoveParticipantUseCase(repo repository.ChatRepository) *RemoveParticipantUseCase {
	return &RemoveParticipantUseCase{Repo: repo}
}

func (uc *RemoveParticipantUseCase) Execute(ctx context.Context, in RemoveParticipantInput) error {
	if in.ChatID == "" || in.Username == "" {
		return fmt.Errorf("chatId and username are required")
	}
	if in.RequestedBy != in.Username {
		return chat.ErrNotAuthor
	}

	ok, err := uc.Repo.IsMember(ctx, in.ChatID, in.Username)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !ok {
		return nil // already out; idempotent
	}

	if err := uc.Repo.RemoveMember(ctx, in.ChatID, in.Username); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
