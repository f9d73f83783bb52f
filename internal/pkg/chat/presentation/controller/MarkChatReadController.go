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

// MarkChatReadController marks every message in a chat read for one member.
type MarkChatReadController struct {
	UC *usecase.MarkChatReadUseCase
}

func NewMarkChatReadController(pool *pgxpool.Pool, pub realtime.Publisher) *MarkChatReadController {
	repo := adapter.NewPgChatRepository(pool)
	return &MarkChatReadController{UC: usecase.NewMarkChatReadUseCase(repo, pub)}
}

func (h *MarkChatReadController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		chatID := c.Param("chatId")
		username := c.Query("username")
		if chatID == "" || username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "chatId and username are required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		snapshot, err := h.UC.Execute(ctx, usecase.MarkChatReadInput{ChatID: chatID, Username: username})
		if err != nil {
			writeChatError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": snapshot.ID})
	}
}
