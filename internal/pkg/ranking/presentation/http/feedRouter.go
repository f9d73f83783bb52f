package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shuerry/Connectify-sub000/internal/pkg/ranking/presentation/controller"
)

// RegisterRoutes registers the question feed endpoint under the given router group.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool) {
	feedCtl := controller.NewListQuestionFeedController(pool)

	// GET /api/v1/questions -> ranked question feed (?sort=trending|newest|...)
	g.GET("/questions", feedCtl.Handle())
}
