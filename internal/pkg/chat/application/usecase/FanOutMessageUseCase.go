package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	qport "github.com/shuerry/Connectify-sub000/internal/infrastructure/queue/port"
	"github.com/shuerry/Connectify-sub000/internal/infrastructure/realtime"
	chat "github.com/shuerry/Connectify-sub000/internal/pkg/chat/application/domain"
	"github.com/shuerry/Connectify-sub000/internal/pkg/chat/application/task"
	repository "github.com/shuerry/Connectify-sub000/internal/pkg/chat/persistence/repository/port"
	notification "github.com/shuerry/Connectify-sub000/internal/pkg/notification/application/domain"
	notifusecase "github.com/shuerry/Connectify-sub000/internal/pkg/notification/application/usecase"
	userrepo "github.com/shuerry/Connectify-sub000/internal/repository/port"
)

// FanOutMessageInput identifies an already-persisted chat and message.
type FanOutMessageInput struct {
	ChatID    string
	MessageID string
}

// FanOutMessageUseCase turns one appended message into its derived effects:
// a notification record per eligible recipient, one batched email digest for
// recipients with a verified address, and a fresh-snapshot room broadcast.
//
// The digest is strictly best-effort: an enqueue failure is logged and
// dropped, and the worker never retries a failed send. Notification-record
// creation and the broadcast never wait on it.
type FanOutMessageUseCase struct {
	Repo          repository.ChatRepository
	Users         userrepo.UserRepository
	Notifications *notifusecase.CreateNotificationUseCase
	Queue         qport.Client
	Publisher     realtime.Publisher
}

func NewFanOutMessageUseCase(
	repo repository.ChatRepository,
	users userrepo.UserRepository,
	notifications *notifusecase.CreateNotificationUseCase,
	queue qport.Client,
	pub realtime.Publisher,
) *FanOutMessageUseCase {
	return &FanOutMessageUseCase{
		Repo:          repo,
		Users:         users,
		Notifications: notifications,
		Queue:         queue,
		Publisher:     pub,
	}
}

// Execute runs the fan-out. A chat or message that cannot be found is a hard
// error and nothing is attempted.
func (uc *FanOutMessageUseCase) Execute(ctx context.Context, in FanOutMessageInput) error {
	if in.ChatID == "" || in.MessageID == "" {
		return fmt.Errorf("chatId and messageId are required")
	}

	c, err := uc.Repo.GetChat(ctx, in.ChatID)
	if err != nil {
		if err == chat.ErrChatNotFound {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	msg, err := uc.Repo.GetMessage(ctx, in.MessageID)
	if err != nil {
		if err == chat.ErrMessageNotFound {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	recipients := c.EligibleRecipients(msg.MsgFrom)
	preview := notification.MakePreview(msg.Msg)

	for _, username := range recipients {
		_, err := uc.Notifications.Execute(ctx, notification.Notification{
			Recipient:     username,
			Kind:          notification.KindChat,
			Title:         fmt.Sprintf("%s sent a message in %s", msg.MsgFrom, c.DisplayName()),
			Preview:       preview,
			Link:          "/chats/" + c.ID,
			ActorUsername: msg.MsgFrom,
			Meta:          map[string]string{"chatId": c.ID, "messageId": msg.ID},
		})
		if err != nil {
			return err
		}
	}

	uc.dispatchDigest(ctx, c, msg, recipients, preview)

	// Re-fetch so the broadcast carries the canonical state, not the copy we
	// mutated along the way.
	snapshot, err := uc.Repo.GetChatSnapshot(ctx, in.ChatID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if uc.Publisher != nil {
		uc.Publisher.Publish(realtime.EventChatUpdate,
			realtime.ChatUpdatePayload{Chat: snapshot, Type: realtime.ChatUpdateNewMessage},
			realtime.RoomScope(c.ID, ""))
	}
	return nil
}

// dispatchDigest enqueues one batched email for the recipients that have a
// verified address. Every failure path here is swallowed.
func (uc *FanOutMessageUseCase) dispatchDigest(ctx context.Context, c *chat.Chat, msg *chat.Message, recipients []string, preview string) {
	if uc.Queue == nil || len(recipients) == 0 {
		return
	}

	profiles, err := uc.Users.GetManyByUsernames(ctx, recipients)
	if err != nil {
		log.Printf("fan-out: skip digest for chat %s: profile lookup: %v", c.ID, err)
		return
	}

	var addresses []string
	for _, p := range profiles {
		if p.EmailVerified && p.Email != "" {
			addresses = append(addresses, p.Email)
		}
	}
	if len(addresses) == 0 {
		return
	}

	payload, err := json.Marshal(task.EmailDigestTaskPayload{
		To:       addresses,
		Sender:   msg.MsgFrom,
		ChatName: c.DisplayName(),
		Preview:  preview,
	})
	if err != nil {
		log.Printf("fan-out: skip digest for chat %s: encode: %v", c.ID, err)
		return
	}

	_, err = uc.Queue.Enqueue(ctx,
		qport.Task{Type: task.EmailDigestTaskType, Payload: payload},
		qport.EnqueueOption{Queue: task.EmailDigestQueue, MaxRetry: -1})
	if err != nil {
		log.Printf("fan-out: drop digest for chat %s: enqueue: %v", c.ID, err)
	}
}
