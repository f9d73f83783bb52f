package ranking

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func hoursAgo(h float64) time.Time {
	return now.Add(-time.Duration(h * float64(time.Hour)))
}

func TestTrendingScore(t *testing.T) {
	t.Run("NoVotesNoCommentsOnlyRecency", func(t *testing.T) {
		q := Question{AskedAt: hoursAgo(48)}
		// basePopularity is zero; score collapses to 2*exp(-1)
		assert.InDelta(t, 2.0*math.Exp(-1), TrendingScore(q, now), 1e-9)
	})

	t.Run("CommentBoostUsesLatestCommentAcrossAnswers", func(t *testing.T) {
		q := Question{
			AskedAt:  hoursAgo(100),
			Upvotes:  10,
			Comments: []Comment{{CommentedAt: hoursAgo(72)}},
			Answers: []Answer{
				{AnsweredAt: hoursAgo(50), Comments: []Comment{{CommentedAt: hoursAgo(24)}}},
			},
		}
		base := 10.0*1.0 + 2*0.5
		want := base*(0.6*math.Exp(-24.0/24.0)+0.4) + 2.0*math.Exp(-100.0/48.0)
		assert.InDelta(t, want, TrendingScore(q, now), 1e-9)
	})

	t.Run("NoCommentMeansNoBoost", func(t *testing.T) {
		q := Question{AskedAt: hoursAgo(10), Upvotes: 4, Downvotes: 1}
		want := 3.0*0.4 + 2.0*math.Exp(-10.0/48.0)
		assert.InDelta(t, want, TrendingScore(q, now), 1e-9)
	})
}

func TestSortTrending(t *testing.T) {
	t.Run("HigherScoreFirst", func(t *testing.T) {
		hot := Question{ID: "hot", AskedAt: hoursAgo(2), Upvotes: 50,
			Comments: []Comment{{CommentedAt: hoursAgo(1)}}}
		cold := Question{ID: "cold", AskedAt: hoursAgo(500)}
		got := SortTrending([]Question{cold, hot}, now)
		require.Len(t, got, 2)
		assert.Equal(t, "hot", got[0].ID)
	})

	t.Run("EqualScoresTieBreakByLaterAskTime", func(t *testing.T) {
		// Identical score inputs: equal ask times and no votes/comments give
		// both questions the exact same score, so ordering falls back to the
		// stable newest-first pre-sort.
		early := Question{ID: "early", AskedAt: hoursAgo(10)}
		late := Question{ID: "late", AskedAt: hoursAgo(9)}
		got := SortTrending([]Question{early, late}, now)
		assert.Equal(t, "late", got[0].ID)

		got = SortTrending([]Question{late, early}, now)
		assert.Equal(t, "late", got[0].ID)
	})

	t.Run("DoesNotMutateInput", func(t *testing.T) {
		in := []Question{{ID: "b", AskedAt: hoursAgo(5)}, {ID: "a", AskedAt: hoursAgo(1)}}
		_ = SortTrending(in, now)
		assert.Equal(t, "b", in[0].ID)
	})
}

func TestSimpleSortModes(t *testing.T) {
	answered := Question{ID: "answered", AskedAt: hoursAgo(30), Views: 5,
		Answers: []Answer{{AnsweredAt: hoursAgo(3)}}}
	stale := Question{ID: "stale", AskedAt: hoursAgo(20), Views: 100,
		Answers: []Answer{{AnsweredAt: hoursAgo(15)}}}
	open := Question{ID: "open", AskedAt: hoursAgo(1), Views: 7}
	all := []Question{answered, stale, open}

	t.Run("Newest", func(t *testing.T) {
		got := SortNewest(all)
		assert.Equal(t, "open", got[0].ID)
		assert.Equal(t, "stale", got[1].ID)
		assert.Equal(t, "answered", got[2].ID)
	})

	t.Run("UnansweredFiltersToZeroAnswers", func(t *testing.T) {
		got := SortUnanswered(all)
		require.Len(t, got, 1)
		assert.Equal(t, "open", got[0].ID)
	})

	t.Run("MostActiveUnansweredSortLast", func(t *testing.T) {
		got := SortMostActive(all)
		assert.Equal(t, "answered", got[0].ID)
		assert.Equal(t, "stale", got[1].ID)
		assert.Equal(t, "open", got[2].ID)
	})

	t.Run("MostViewed", func(t *testing.T) {
		got := SortMostViewed(all)
		assert.Equal(t, "stale", got[0].ID)
		assert.Equal(t, "open", got[1].ID)
		assert.Equal(t, "answered", got[2].ID)
	})
}
