package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/shuerry/Connectify-sub000/internal/infrastructure/cache/port"
	"github.com/shuerry/Connectify-sub000/internal/infrastructure/realtime"
	"github.com/shuerry/Connectify-sub000/internal/pkg/notification/application/usecase"
	"github.com/shuerry/Connectify-sub000/internal/pkg/notification/persistence/repository/adapter"
)

// MarkAllNotificationsReadController bulk-marks a user's notifications read.
type MarkAllNotificationsReadController struct {
	UC *usecase.MarkAllNotificationsReadUseCase
}

func NewMarkAllNotificationsReadController(pool *pgxpool.Pool, cache cacheport.Cache, pub realtime.Publisher) *MarkAllNotificationsReadController {
	repo := adapter.NewPgNotificationRepository(pool)
	return &MarkAllNotificationsReadController{UC: usecase.NewMarkAllNotificationsReadUseCase(repo, cache, pub)}
}

func (h *MarkAllNotificationsReadController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Query("username")
		if username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		updated, err := h.UC.Execute(ctx, username)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, usecase.ErrPersistence) {
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"updated": updated})
	}
}
