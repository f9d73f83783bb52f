package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shuerry/Connectify-sub000/internal/infrastructure/realtime"
	chat "github.com/shuerry/Connectify-sub000/internal/pkg/chat/application/domain"
	"github.com/shuerry/Connectify-sub000/internal/pkg/chat/application/usecase"
	"github.com/shuerry/Connectify-sub000/internal/pkg/chat/persistence/repository/adapter"
	userAdapter "github.com/shuerry/Connectify-sub000/internal/repository/adapter"
)

// CreateChatController handles the chat creation endpoint
// One controller per endpoint

type CreateChatController struct {
	UC *usecase.CreateChatUseCase
}

func NewCreateChatController(pool *pgxpool.Pool, pub realtime.Publisher) *CreateChatController {
	repo := adapter.NewPgChatRepository(pool)
	users := userAdapter.NewPgUserRepository(pool)
	uc := usecase.NewCreateChatUseCase(repo, users, pub)
	return &CreateChatController{UC: uc}
}

type createChatRequest struct {
	Name        string   `json:"name"`
	Members     []string `json:"members" binding:"required"`
	CreatedBy   string   `json:"createdBy" binding:"required"`
	CommunityID *string  `json:"communityId"`
}

func (h *CreateChatController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		in := usecase.CreateChatInput{
			Name:            req.Name,
			Members:         req.Members,
			CreatedBy:       req.CreatedBy,
			IsCommunityChat: req.CommunityID != nil,
			CommunityID:     req.CommunityID,
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		created, err := h.UC.Execute(ctx, in)
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrPersistence):
				c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected persistence error"})
			case errors.Is(err, chat.ErrNotFriends):
				c.JSON(http.StatusForbidden, gin.H{"error": "direct chats require a friend relation"})
			default:
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":        created.ID,
			"name":      created.DisplayName(),
			"members":   created.Members,
			"createdAt": created.CreatedAt,
		})
	}
}
