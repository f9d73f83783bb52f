package controller

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shuerry/Connectify-sub000/internal/pkg/ranking"
	"github.com/shuerry/Connectify-sub000/internal/pkg/ranking/application/usecase"
	"github.com/shuerry/Connectify-sub000/internal/pkg/ranking/persistence/repository/adapter"
)

// ListQuestionFeedController serves the ranked question feed (one controller per endpoint)
type ListQuestionFeedController struct {
	UC *usecase.ListQuestionFeedUseCase
}

func NewListQuestionFeedController(pool *pgxpool.Pool) *ListQuestionFeedController {
	repo := adapter.NewPgQuestionRepository(pool)
	return &ListQuestionFeedController{UC: usecase.NewListQuestionFeedUseCase(repo)}
}

func (h *ListQuestionFeedController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 100
		if v := c.Query("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}

		in := usecase.ListQuestionFeedInput{Sort: c.Query("sort"), Limit: limit}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		questions, err := h.UC.Execute(ctx, in)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, usecase.ErrPersistence) {
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		out := make([]gin.H, 0, len(questions))
		for _, q := range questions {
			out = append(out, toQuestionPayload(q))
		}
		c.JSON(http.StatusOK, gin.H{"questions": out, "count": len(out)})
	}
}

func toQuestionPayload(q ranking.Question) gin.H {
	return gin.H{
		"id":        q.ID,
		"title":     q.Title,
		"upvotes":   q.Upvotes,
		"downvotes": q.Downvotes,
		"views":     q.Views,
		"askedAt":   q.AskedAt,
		"answers":   len(q.Answers),
	}
}
