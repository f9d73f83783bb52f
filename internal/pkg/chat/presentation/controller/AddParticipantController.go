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

// AddParticipantController invites a user into a group chat.
type AddParticipantController struct {
	UC *usecase.AddParticipantUseCase
}

func NewAddParticipantController(pool *pgxpool.Pool, pub realtime.Publisher) *AddParticipantController {
	repo := adapter.NewPgChatRepository(pool)
	return &AddParticipantController{UC: usecase.NewAddParticipantUseCase(repo, pub)}
}

type addParticipantRequest struct {
	InvitedBy string `json:"invitedBy" binding:"required"`
	Username  string `json:"username" binding:"required"`
}

func (h *AddParticipantController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		chatID := c.Param("chatId")
		if chatID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "chatId is required"})
			return
		}

		var req addParticipantRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		snapshot, err := h.UC.Execute(ctx, usecase.AddParticipantInput{
			ChatID:    chatID,
			InvitedBy: req.InvitedBy,
			Username:  req.Username,
		})
		if err != nil {
			writeChatError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": snapshot.ID, "members": snapshot.Members})
	}
}
