package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shuerry/Connectify-sub000/internal/infrastructure/realtime"
	"github.com/shuerry/Connectify-sub000/internal/pkg/chat/application/usecase"
	"github.com/shuerry/Connectify-sub000/internal/pkg/chat/persistence/repository/adapter"
)

// DeleteMessageController soft-deletes a message (author only).
type DeleteMessageController struct {
	UC *usecase.DeleteMessageUseCase
}

func NewDeleteMessageController(pool *pgxpool.Pool, pub realtime.Publisher) *DeleteMessageController {
	repo := adapter.NewPgChatRepository(pool)
	return &DeleteMessageController{UC: usecase.NewDeleteMessageUseCase(repo, pub)}
}

func (h *DeleteMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		messageID := c.Param("messageId")
		username := c.Query("username")
		if messageID == "" || username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "messageId and username are required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		err := h.UC.Execute(ctx, usecase.DeleteMessageInput{MessageID: messageID, Username: username})
		if err != nil {
			writeChatError(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}
