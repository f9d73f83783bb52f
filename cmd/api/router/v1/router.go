package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/shuerry/Connectify-sub000/internal/infrastructure/cache/port"
	qport "github.com/shuerry/Connectify-sub000/internal/infrastructure/queue/port"
	"github.com/shuerry/Connectify-sub000/internal/infrastructure/realtime"
	chatHTTP "github.com/shuerry/Connectify-sub000/internal/pkg/chat/presentation/http"
	notificationHTTP "github.com/shuerry/Connectify-sub000/internal/pkg/notification/presentation/http"
	"github.com/shuerry/Connectify-sub000/internal/pkg/presence"
	rankingHTTP "github.com/shuerry/Connectify-sub000/internal/pkg/ranking/presentation/http"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1
func RegisterRoutes(
	r *gin.Engine,
	pool *pgxpool.Pool,
	cache cacheport.Cache,
	client qport.Client,
	router *realtime.Router,
	tracker *presence.Tracker,
) {
	v1 := r.Group("/api/v1")
	// Pass the shared infrastructure down to each package's HTTP layer
	chatHTTP.RegisterRoutes(v1, pool, cache, client, router, tracker)
	notificationHTTP.RegisterRoutes(v1, pool, cache, router)
	rankingHTTP.RegisterRoutes(v1, pool)
}
