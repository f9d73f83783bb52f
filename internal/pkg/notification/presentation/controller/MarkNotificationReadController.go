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
	notification "github.com/shuerry/Connectify-sub000/internal/pkg/notification/application/domain"
	"github.com/shuerry/Connectify-sub000/internal/pkg/notification/application/usecase"
	"github.com/shuerry/Connectify-sub000/internal/pkg/notification/persistence/repository/adapter"
)

// MarkNotificationReadController marks a single notification read.
type MarkNotificationReadController struct {
	UC *usecase.MarkNotificationReadUseCase
}

func NewMarkNotificationReadController(pool *pgxpool.Pool, cache cacheport.Cache, pub realtime.Publisher) *MarkNotificationReadController {
	repo := adapter.NewPgNotificationRepository(pool)
	return &MarkNotificationReadController{UC: usecase.NewMarkNotificationReadUseCase(repo, cache, pub)}
}

func (h *MarkNotificationReadController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		n, err := h.UC.Execute(ctx, id)
		if err != nil {
			switch {
			case errors.Is(err, notification.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			case errors.Is(err, usecase.ErrPersistence):
				c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected persistence error"})
			default:
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			}
			return
		}

		c.JSON(http.StatusOK, toNotificationPayload(*n))
	}
}
