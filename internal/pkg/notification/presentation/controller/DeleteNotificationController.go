package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/shuerry/Connectify-sub000/internal/infrastructure/cache/port"
	"github.com/shuerry/Connectify-sub000/internal/pkg/notification/application/usecase"
	"github.com/shuerry/Connectify-sub000/internal/pkg/notification/persistence/repository/adapter"
)

// DeleteNotificationController removes a notification; deleting an id that
// is already gone still returns 204.
type DeleteNotificationController struct {
	UC *usecase.DeleteNotificationUseCase
}

func NewDeleteNotificationController(pool *pgxpool.Pool, cache cacheport.Cache) *DeleteNotificationController {
	repo := adapter.NewPgNotificationRepository(pool)
	return &DeleteNotificationController{UC: usecase.NewDeleteNotificationUseCase(repo, cache)}
}

func (h *DeleteNotificationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		username := c.Query("username")
		if id == "" || username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "id and username are required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := h.UC.Execute(ctx, usecase.DeleteNotificationInput{ID: id, Username: username}); err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, usecase.ErrPersistence) {
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.Status(http.StatusNoContent)
	}
}
