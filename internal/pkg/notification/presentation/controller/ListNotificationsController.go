package controller

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	notification "github.com/shuerry/Connectify-sub000/internal/pkg/notification/application/domain"
	"github.com/shuerry/Connectify-sub000/internal/pkg/notification/application/usecase"
	"github.com/shuerry/Connectify-sub000/internal/pkg/notification/persistence/repository/adapter"
)

// ListNotificationsController serves one keyset page of a user's
// notifications (one controller per endpoint)
type ListNotificationsController struct {
	UC *usecase.ListNotificationsUseCase
}

func NewListNotificationsController(pool *pgxpool.Pool) *ListNotificationsController {
	repo := adapter.NewPgNotificationRepository(pool)
	return &ListNotificationsController{UC: usecase.NewListNotificationsUseCase(repo)}
}

func (h *ListNotificationsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Query("username")
		if username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
			return
		}

		limit := 0
		if v := c.Query("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}

		var cursor *time.Time
		if v := c.Query("cursor"); v != "" {
			t, err := time.Parse(time.RFC3339Nano, v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "cursor must be an RFC3339 timestamp"})
				return
			}
			cursor = &t
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		out, err := h.UC.Execute(ctx, usecase.ListNotificationsInput{
			Username: username,
			Limit:    limit,
			Cursor:   cursor,
			CursorID: c.Query("cursorId"),
		})
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, usecase.ErrPersistence) {
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		items := make([]gin.H, 0, len(out.Items))
		for _, n := range out.Items {
			items = append(items, toNotificationPayload(n))
		}

		resp := gin.H{"notifications": items, "count": len(items)}
		if out.NextCursor != nil {
			resp["nextCursor"] = out.NextCursor.Format(time.RFC3339Nano)
			resp["nextCursorId"] = out.NextCursorID
		}
		c.JSON(http.StatusOK, resp)
	}
}

func toNotificationPayload(n notification.Notification) gin.H {
	out := gin.H{
		"id":        n.ID,
		"recipient": n.Recipient,
		"kind":      n.Kind,
		"title":     n.Title,
		"preview":   n.Preview,
		"link":      n.Link,
		"isRead":    n.IsRead,
		"createdAt": n.CreatedAt,
	}
	if n.ActorUsername != "" {
		out["actor"] = n.ActorUsername
	}
	if n.ReadAt != nil {
		out["readAt"] = n.ReadAt
	}
	if len(n.Meta) > 0 {
		out["meta"] = n.Meta
	}
	return out
}
