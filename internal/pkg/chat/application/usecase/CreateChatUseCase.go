package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shuerry/Connectify-sub000/internal/infrastructure/realtime"
	chat "github.com/shuerry/Connectify-sub000/internal/pkg/chat/application/domain"
	repository "github.com/shuerry/Connectify-sub000/internal/pkg/chat/persistence/repository/port"
	userrepo "github.com/shuerry/Connectify-sub000/internal/repository/port"
)

// CreateChatInput carries the required data to open a new chat. A direct
// chat has exactly two members and requires an existing friendship; group
// and community chats skip that check.
type CreateChatInput struct {
	CreatedBy       string
	Members         []string
	Name            string
	IsCommunityChat bool
	CommunityID     *string
}

// CreateChatUseCase handles creation of a new chat and its members.
type CreateChatUseCase struct {
	Repo      repository.ChatRepository
	Users     userrepo.UserRepository
	Publisher realtime.Publisher
}

func NewCreateChatUseCase(repo repository.ChatRepository, users userrepo.UserRepository, pub realtime.Publisher) *CreateChatUseCase {
	return &CreateChatUseCase{Repo: repo, Users: users, Publisher: pub}
}

// Execute persists the chat and notifies every member's client. New chats
// start with notifications enabled for all members.
func (uc *CreateChatUseCase) Execute(ctx context.Context, in CreateChatInput) (*chat.Chat, error) {
	if in.CreatedBy == "" {
		return nil, fmt.Errorf("createdBy is required")
	}
	if len(in.Members) < 2 {
		return nil, fmt.Errorf("a chat needs at least two members")
	}

	members := dedupe(in.Members)
	c := chat.Chat{
		Name:            in.Name,
		IsCommunityChat: in.IsCommunityChat,
		CommunityID:     in.CommunityID,
		CreatedAt:       time.Now().UTC(),
		Members:         members,
		NotifyEnabled:   make(map[string]bool, len(members)),
	}
	for _, m := range members {
		c.NotifyEnabled[m] = true
	}

	if c.IsDirect() {
		other := c.OtherMembers(in.CreatedBy)
		if len(other) != 1 {
			return nil, fmt.Errorf("a direct chat needs exactly one other member")
		}
		friends, err := uc.Users.AreFriends(ctx, in.CreatedBy, other[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if !friends {
			return nil, chat.ErrNotFriends
		}
	}

	id, err := uc.Repo.CreateChat(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	c.ID = id

	if uc.Publisher != nil {
		// No room exists yet, so each member is addressed directly.
		payload := realtime.ChatUpdatePayload{Chat: &c, Type: realtime.ChatUpdateCreated}
		for _, m := range members {
			uc.Publisher.Publish(realtime.EventChatUpdate, payload, realtime.UserScope(m))
		}
	}
	return &c, nil
}

func dedupe(usernames []string) []string {
	seen := make(map[string]struct{}, len(usernames))
	out := make([]string, 0, len(usernames))
	for _, u := range usernames {
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
