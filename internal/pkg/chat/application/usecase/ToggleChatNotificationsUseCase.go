package usecase

import (
	"context"
	"fmt"

	chat "github.com/shuerry/Connectify-sub000/internal/pkg/chat/application/domain"
	repository "github.com/shuerry/Connectify-sub000/internal/pkg/chat/persistence/repository/port"
)

// ToggleChatNotificationsInput flips one member's notification preference.
type ToggleChatNotificationsInput struct {
	ChatID   string
	Username string
	Enabled  bool
}

// ToggleChatNotificationsUseCase sets the per-user notification toggle.
// Membership itself is untouched: a muted member still sees messages when
// they open the chat, they just stop receiving notification records.
type ToggleChatNotificationsUseCase struct {
	Repo repository.ChatRepository
}

func NewToggleChatNotificationsUseCase(repo repository.ChatRepository) *ToggleChatNotificationsUseCase {
	return &ToggleChatNotificationsUseCase{Repo: repo}
}

func (uc *ToggleChatNotificationsUseCase) Execute(ctx context.Context, in ToggleChatNotificationsInput) error {
	if in.ChatID == "" || in.Username == "" {
		return fmt.Errorf("chatId and username are required")
	}
	err := uc.Repo.SetNotifyEnabled(ctx, in.ChatID, in.Username, in.Enabled)
	if err != nil {
		if err == chat.ErrNotParticipant {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
