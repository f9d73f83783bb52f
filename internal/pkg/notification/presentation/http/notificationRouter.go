package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/shuerry/Connectify-sub000/internal/infrastructure/cache/port"
	"github.com/shuerry/Connectify-sub000/internal/infrastructure/realtime"
	"github.com/shuerry/Connectify-sub000/internal/pkg/notification/presentation/controller"
)

// RegisterRoutes registers notification endpoints under the given router group.
// It constructs per-endpoint controllers and binds them directly to routes.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, cache cacheport.Cache, pub realtime.Publisher) {
	listCtl := controller.NewListNotificationsController(pool)
	markReadCtl := controller.NewMarkNotificationReadController(pool, cache, pub)
	markAllCtl := controller.NewMarkAllNotificationsReadController(pool, cache, pub)
	deleteCtl := controller.NewDeleteNotificationController(pool, cache)
	unreadCtl := controller.NewCountUnreadController(pool, cache)

	// GET /api/v1/notifications -> keyset page, newest first
	g.GET("/notifications", listCtl.Handle())

	// POST /api/v1/notifications/read-all -> bulk mark read
	g.POST("/notifications/read-all", markAllCtl.Handle())

	// POST /api/v1/notifications/:id/read -> mark one read
	g.POST("/notifications/:id/read", markReadCtl.Handle())

	// DELETE /api/v1/notifications/:id -> remove (idempotent)
	g.DELETE("/notifications/:id", deleteCtl.Handle())

	// GET /api/v1/notifications/unread-count -> badge count
	g.GET("/notifications/unread-count", unreadCtl.Handle())
}
