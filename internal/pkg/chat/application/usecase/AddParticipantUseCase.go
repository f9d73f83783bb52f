package usecase

import (
	"context"
	"fmt"

	"github.com/shuerry/Connectify-sub000/internal/infrastructure/realtime"
	chat "github.com/shuerry/Connectify-sub000/internal/pkg/chat/application/domain"
	repository "github.com/shuerry/Connectify-sub000/internal/pkg/chat/persistence/repository/port"
)

// AddParticipantInput invites a user into an existing group/community chat.
type AddParticipantInput struct {
	ChatID    string
	InvitedBy string
	Username  string
}

// AddParticipantUseCase adds a member to a group chat. Direct chats are
// fixed at two members; growing one is rejected up front.
type AddParticipantUseCase struct {
	Repo      repository.ChatRepository
	Publisher realtime.Publisher
}

func NewAddParticipantUseCase(repo repository.ChatRepository, pub realtime.Publisher) *AddParticipantUseCase {
	return &AddParticipantUseCase{Repo: repo, Publisher: pub}
}

func (uc *AddParticipantUseCase) Execute(ctx context.Context, in AddParticipantInput) (*chat.Chat, error) {
	if in.ChatID == "" || in.InvitedBy == "" || in.Username == "" {
		return nil, fmt.Errorf("chatId, invitedBy and username are required")
	}

	c, err := uc.Repo.GetChat(ctx, in.ChatID)
	if err != nil {
		if err == chat.ErrChatNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !c.HasMember(in.InvitedBy) {
		return nil, chat.ErrNotParticipant
	}
	if c.IsDirect() {
		return nil, fmt.Errorf("direct chats cannot take additional members")
	}
	if c.HasMember(in.Username) {
		return c, nil // already in; idempotent
	}

	if err := uc.Repo.AddMember(ctx, in.ChatID, in.Username, true); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	snapshot, err := uc.Repo.GetChatSnapshot(ctx, in.ChatID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if uc.Publisher != nil {
		payload := realtime.ChatUpdatePayload{Chat: snapshot, Type: realtime.ChatUpdateNewParticipant}
		uc.Publisher.Publish(realtime.EventChatUpdate, payload, realtime.RoomScope(in.ChatID, ""))
		// The invitee has no room subscription yet.
		uc.Publisher.Publish(realtime.EventChatUpdate, payload, realtime.UserScope(in.Username))
	}
	return snapshot, nil
}
