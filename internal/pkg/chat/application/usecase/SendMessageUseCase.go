package usecase

import (
	"context"
	"fmt"

	chat "github.com/shuerry/Connectify-sub000/internal/pkg/chat/application/domain"
	repository "github.com/shuerry/Connectify-sub000/internal/pkg/chat/persistence/repository/port"
	userrepo "github.com/shuerry/Connectify-sub000/internal/repository/port"
)

// SendMessageInput carries the data needed to append a new message.
type SendMessageInput struct {
	ChatID  string
	Sender  string
	Body    string
	MsgType chat.MessageType
	MsgTo   *string
}

// SendMessageUseCase validates and persists a message. Fan-out (notification
// records, email digest, room broadcast) happens afterwards via
// FanOutMessageUseCase; in-app delivery never depends on it.
type SendMessageUseCase struct {
	Repo  repository.ChatRepository
	Users userrepo.UserRepository
}

func NewSendMessageUseCase(repo repository.ChatRepository, users userrepo.UserRepository) *SendMessageUseCase {
	return &SendMessageUseCase{Repo: repo, Users: users}
}

// Execute appends a message to the chat log and returns it with its ID.
func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*chat.Message, error) {
	msg, err := chat.NewMessage(chat.Message{
		ChatID:  in.ChatID,
		MsgFrom: in.Sender,
		Msg:     in.Body,
		Type:    in.MsgType,
		MsgTo:   in.MsgTo,
	})
	if err != nil {
		return nil, err
	}

	c, err := uc.Repo.GetChat(ctx, in.ChatID)
	if err != nil {
		if err == chat.ErrChatNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !c.HasMember(in.Sender) {
		return nil, chat.ErrNotParticipant
	}

	// Direct messaging stays friends-only even after the chat exists.
	if c.IsDirect() {
		other := c.OtherMembers(in.Sender)
		friends, err := uc.Users.AreFriends(ctx, in.Sender, other[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if !friends {
			return nil, chat.ErrNotFriends
		}
	}

	id, err := uc.Repo.SaveMessage(ctx, *msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	msg.ID = id
	return msg, nil
}
