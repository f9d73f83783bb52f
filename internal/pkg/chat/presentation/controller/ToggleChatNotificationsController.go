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

// ToggleChatNotificationsController flips a member's notification toggle.
type ToggleChatNotificationsController struct {
	UC *usecase.ToggleChatNotificationsUseCase
}

func NewToggleChatNotificationsController(pool *pgxpool.Pool) *ToggleChatNotificationsController {
	repo := adapter.NewPgChatRepository(pool)
	return &ToggleChatNotificationsController{UC: usecase.NewToggleChatNotificationsUseCase(repo)}
}

type toggleNotificationsRequest struct {
	Username string `json:"username" binding:"required"`
	Enabled  *bool  `json:"enabled" binding:"required"`
}

func (h *ToggleChatNotificationsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		chatID := c.Param("chatId")
		if chatID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "chatId is required"})
			return
		}

		var req toggleNotificationsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		err := h.UC.Execute(ctx, usecase.ToggleChatNotificationsInput{
			ChatID:   chatID,
			Username: req.Username,
			Enabled:  *req.Enabled,
		})
		if err != nil {
			writeChatError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"chatId": chatID, "username": req.Username, "enabled": *req.Enabled})
	}
}
