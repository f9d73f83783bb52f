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

// EditMessageController rewrites a message body (author only).
type EditMessageController struct {
	UC *usecase.EditMessageUseCase
}

func NewEditMessageController(pool *pgxpool.Pool, pub realtime.Publisher) *EditMessageController {
	repo := adapter.NewPgChatRepository(pool)
	return &EditMessageController{UC: usecase.NewEditMessageUseCase(repo, pub)}
}

type editMessageRequest struct {
	Editor  string `json:"editor" binding:"required"`
	NewBody string `json:"newBody" binding:"required"`
}

func (h *EditMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		messageID := c.Param("messageId")
		if messageID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "messageId is required"})
			return
		}

		var req editMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		msg, err := h.UC.Execute(ctx, usecase.EditMessageInput{
			MessageID: messageID,
			Editor:    req.Editor,
			NewBody:   req.NewBody,
		})
		if err != nil {
			writeChatError(c, err)
			return
		}

		c.JSON(http.StatusOK, toMessagePayload(*msg))
	}
}
