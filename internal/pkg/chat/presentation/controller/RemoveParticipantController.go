package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shuerry/Connectify-sub000/internal/pkg/chat/application/usecase"
	"github.com/shuerry/Connectify-sub000/internal/pkg/chat/persistence/repository/adapter"
)

// RemoveParticipantController lets a member leave a chat.
type RemoveParticipantController struct {
	UC *usecase.RemoveParticipantUseCase
}

func NewRemoveParticipantController(pool *pgxpool.Pool) *RemoveParticipantController {
	repo := adapter.NewPgChatRepository(pool)
	return &RemoveParticipantController{UC: usecase.NewRemoveParticipantUseCase(repo)}
}

func (h *RemoveParticipantController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		chatID := c.Param("chatId")
		member := c.Param("username")
		requestedBy := c.Query("requestedBy")
		if chatID == "" || member == "" || requestedBy == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "chatId, username and requestedBy are required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		err := h.UC.Execute(ctx, usecase.RemoveParticipantInput{
			ChatID:      chatID,
			RequestedBy: requestedBy,
			Username:    member,
		})
		if err != nil {
			writeChatError(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}
