package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shuerry/Connectify-sub000/internal/pkg/ranking"
	repository "github.com/shuerry/Connectify-sub000/internal/pkg/ranking/persistence/repository/port"
)

// ErrPersistence wraps repository failures so the presentation layer maps
// them to 500s without string matching.
var ErrPersistence = errors.New("persistence error")

// Feed sort modes accepted over the API.
const (
	SortTrending   = "trending"
	SortNewest     = "newest"
	SortUnanswered = "unanswered"
	SortMostActive = "mostActive"
	SortMostViewed = "mostViewed"
)

// ErrUnknownSort rejects sort values outside the published vocabulary.
var ErrUnknownSort = errors.New("unknown sort mode")

// ListQuestionFeedInput selects the sort mode and candidate-set bound.
type ListQuestionFeedInput struct {
	Sort  string
	Limit int
}

// ListQuestionFeedUseCase loads questions and orders them with the ranking
// functions. Scores are computed against a single now so one request never
// mixes clock readings.
type ListQuestionFeedUseCase struct {
	Repo repository.QuestionRepository
	Now  func() time.Time
}

func NewListQuestionFeedUseCase(repo repository.QuestionRepository) *ListQuestionFeedUseCase {
	return &ListQuestionFeedUseCase{Repo: repo, Now: time.Now}
}

func (uc *ListQuestionFeedUseCase) Execute(ctx context.Context, in ListQuestionFeedInput) ([]ranking.Question, error) {
	mode := in.Sort
	if mode == "" {
		mode = SortTrending
	}
	switch mode {
	case SortTrending, SortNewest, SortUnanswered, SortMostActive, SortMostViewed:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSort, in.Sort)
	}

	questions, err := uc.Repo.ListQuestions(ctx, in.Limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	switch mode {
	case SortNewest:
		return ranking.SortNewest(questions), nil
	case SortUnanswered:
		return ranking.SortUnanswered(questions), nil
	case SortMostActive:
		return ranking.SortMostActive(questions), nil
	case SortMostViewed:
		return ranking.SortMostViewed(questions), nil
	default:
		return ranking.SortTrending(questions, uc.Now()), nil
	}
}
