package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shuerry/Connectify-sub000/internal/pkg/chat/application/usecase"
	"github.com/shuerry/Connectify-sub000/internal/pkg/chat/persistence/repository/adapter"
)

// GetMessageController handles fetching messages by chat ID (one controller per endpoint)
type GetMessageController struct {
	UC *usecase.GetMessageUseCase
}

func NewGetMessageController(pool *pgxpool.Pool) *GetMessageController {
	repo := adapter.NewPgChatRepository(pool)
	uc := usecase.NewGetMessageUseCase(repo)
	return &GetMessageController{UC: uc}
}

func (h *GetMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		chatID := c.Param("chatId")
		username := c.Query("username")
		if chatID == "" || username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "chatId and username are required"})
			return
		}

		limit := 0 // zero means full history
		if v := c.Query("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}

		in := usecase.GetMessageInput{ChatID: chatID, Username: username, Limit: limit}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		msgs, err := h.UC.Execute(ctx, in)
		if err != nil {
			writeChatError(c, err)
			return
		}

		out := make([]gin.H, 0, len(msgs))
		for _, m := range msgs {
			out = append(out, toMessagePayload(m))
		}

		c.JSON(http.StatusOK, gin.H{
			"messages": out,
			"count":    len(out),
		})
	}
}
