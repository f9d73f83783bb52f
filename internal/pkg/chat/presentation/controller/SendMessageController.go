package controller

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/shuerry/Connectify-sub000/internal/infrastructure/cache/port"
	queueport "github.com/shuerry/Connectify-sub000/internal/infrastructure/queue/port"
	"github.com/shuerry/Connectify-sub000/internal/infrastructure/realtime"
	chat "github.com/shuerry/Connectify-sub000/internal/pkg/chat/application/domain"
	"github.com/shuerry/Connectify-sub000/internal/pkg/chat/application/usecase"
	"github.com/shuerry/Connectify-sub000/internal/pkg/chat/persistence/repository/adapter"
	notifUsecase "github.com/shuerry/Connectify-sub000/internal/pkg/notification/application/usecase"
	notifAdapter "github.com/shuerry/Connectify-sub000/internal/pkg/notification/persistence/repository/adapter"
	userAdapter "github.com/shuerry/Connectify-sub000/internal/repository/adapter"
)

// SendMessageController handles the send-message endpoint only (one controller per endpoint).
// Persisting the message and fanning it out are separate use cases; the
// send succeeds even when fan-out work fails downstream.
type SendMessageController struct {
	sendUC   *usecase.SendMessageUseCase
	fanOutUC *usecase.FanOutMessageUseCase
}

func NewSendMessageController(pool *pgxpool.Pool, cache cacheport.Cache, client queueport.Client, pub realtime.Publisher) *SendMessageController {
	repo := adapter.NewPgChatRepository(pool)
	users := userAdapter.NewPgUserRepository(pool)
	notifRepo := notifAdapter.NewPgNotificationRepository(pool)
	createNotif := notifUsecase.NewCreateNotificationUseCase(notifRepo, cache, pub)
	return &SendMessageController{
		sendUC:   usecase.NewSendMessageUseCase(repo, users),
		fanOutUC: usecase.NewFanOutMessageUseCase(repo, users, createNotif, client, pub),
	}
}

// sendMessageRequest is the DTO for the HTTP request body
type sendMessageRequest struct {
	Sender string  `json:"sender" binding:"required"`
	Body   string  `json:"body" binding:"required"`
	Type   string  `json:"type"`
	To     *string `json:"to"`
}

// Handle returns a gin handler that persists a message and fans it out
func (h *SendMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		chatID := c.Param("chatId")
		if chatID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "chatId is required"})
			return
		}

		var req sendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		in := usecase.SendMessageInput{
			ChatID:  chatID,
			Sender:  req.Sender,
			Body:    req.Body,
			MsgType: chat.MessageType(req.Type),
			MsgTo:   req.To,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		msg, err := h.sendUC.Execute(ctx, in)
		if err != nil {
			writeChatError(c, err)
			return
		}

		// Fan-out runs on its own context: client disconnects after the
		// write must not cancel notification delivery.
		go func() {
			fctx, fcancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer fcancel()
			if err := h.fanOutUC.Execute(fctx, usecase.FanOutMessageInput{ChatID: chatID, MessageID: msg.ID}); err != nil {
				log.Printf("chat: fan-out message %s: %v", msg.ID, err)
			}
		}()

		c.JSON(http.StatusCreated, toMessagePayload(*msg))
	}
}

// writeChatError maps domain errors onto HTTP statuses, shared by the chat controllers.
func writeChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrPersistence):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected persistence error"})
	case errors.Is(err, chat.ErrChatNotFound), errors.Is(err, chat.ErrMessageNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, chat.ErrNotParticipant), errors.Is(err, chat.ErrNotFriends), errors.Is(err, chat.ErrNotAuthor):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, chat.ErrMessageDeleted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

func toMessagePayload(m chat.Message) gin.H {
	out := gin.H{
		"id":          m.ID,
		"chatId":      m.ChatID,
		"msgFrom":     m.MsgFrom,
		"msg":         m.Msg,
		"msgDateTime": m.MsgDateTime,
		"type":        m.Type,
		"readBy":      m.ReadBy,
		"isDeleted":   m.IsDeleted,
	}
	if m.MsgTo != nil {
		out["msgTo"] = m.MsgTo
	}
	if m.LastEditedAt != nil {
		out["lastEditedAt"] = m.LastEditedAt
		out["lastEditedBy"] = m.LastEditedBy
	}
	return out
}
