package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuerry/Connectify-sub000/internal/pkg/ranking"
)

type stubQuestionRepo struct {
	questions []ranking.Question
	lastLimit int
}

func (r *stubQuestionRepo) ListQuestions(_ context.Context, limit int) ([]ranking.Question, error) {
	r.lastLimit = limit
	return r.questions, nil
}

func TestListQuestionFeedUseCase(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	repo := &stubQuestionRepo{questions: []ranking.Question{
		{ID: "old", AskedAt: now.Add(-48 * time.Hour)},
		{ID: "new", AskedAt: now.Add(-time.Hour)},
		{ID: "answered", AskedAt: now.Add(-24 * time.Hour), Answers: []ranking.Answer{{AnsweredAt: now}}},
	}}
	uc := NewListQuestionFeedUseCase(repo)

	t.Run("DefaultsToTrending", func(t *testing.T) {
		out, err := uc.Execute(ctx, ListQuestionFeedInput{Limit: 50})
		require.NoError(t, err)
		assert.Len(t, out, 3)
		assert.Equal(t, 50, repo.lastLimit)
	})

	t.Run("UnansweredFiltersAnswered", func(t *testing.T) {
		out, err := uc.Execute(ctx, ListQuestionFeedInput{Sort: SortUnanswered})
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "new", out[0].ID)
		assert.Equal(t, "old", out[1].ID)
	})

	t.Run("RejectsUnknownSort", func(t *testing.T) {
		_, err := uc.Execute(ctx, ListQuestionFeedInput{Sort: "hot"})
		assert.ErrorIs(t, err, ErrUnknownSort)
	})
}
