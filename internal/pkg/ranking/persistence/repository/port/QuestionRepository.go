package repository

import (
	"context"

	"github.com/shuerry/Connectify-sub000/internal/pkg/ranking"
)

// QuestionRepository supplies the question records the feed ranks. Writes to
// questions, answers and comments live with the Q&A service; this port is
// read-only.
type QuestionRepository interface {
	ListQuestions(ctx context.Context, limit int) ([]ranking.Question, error)
}
