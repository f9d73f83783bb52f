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

// GetChatController returns a full chat snapshot with receipt labels for the
// requesting member (one controller per endpoint)
type GetChatController struct {
	UC *usecase.GetChatUseCase
}

func NewGetChatController(pool *pgxpool.Pool) *GetChatController {
	repo := adapter.NewPgChatRepository(pool)
	return &GetChatController{UC: usecase.NewGetChatUseCase(repo)}
}

func (h *GetChatController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		chatID := c.Param("chatId")
		username := c.Query("username")
		if chatID == "" || username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "chatId and username are required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		snapshot, err := h.UC.Execute(ctx, usecase.GetChatInput{ChatID: chatID, Username: username})
		if err != nil {
			writeChatError(c, err)
			return
		}

		messages := make([]gin.H, 0, len(snapshot.Messages))
		for _, m := range snapshot.Messages {
			messages = append(messages, toMessagePayload(m))
		}

		resp := gin.H{
			"id":        snapshot.ID,
			"name":      snapshot.DisplayName(),
			"members":   snapshot.Members,
			"createdAt": snapshot.CreatedAt,
			"messages":  messages,
		}
		// The receipt label belongs to the viewer's latest own message.
		if latest := snapshot.LatestOwnMessage(username); latest != nil {
			resp["receipt"] = gin.H{
				"messageId": latest.ID,
				"label":     snapshot.ReceiptLabel(latest),
			}
		}
		c.JSON(http.StatusOK, resp)
	}
}
