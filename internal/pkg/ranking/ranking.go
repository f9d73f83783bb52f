package ranking

import (
	"math"
	"sort"
	"time"
)

// Scoring constants for the trending feed. Changing any of these changes the
// expected ordering, so they are fixed here rather than configurable.
const (
	voteWeight    = 1.0
	commentWeight = 0.5

	commentHalfLifeHours = 24.0
	postHalfLifeHours    = 48.0

	commentBoostWeight = 0.6
	commentBoostFloor  = 0.4
	postRecencyWeight  = 2.0
)

// Comment carries the only field ranking cares about.
type Comment struct {
	CommentedAt time.Time
}

// Answer groups an answer's comments with its post time.
type Answer struct {
	AnsweredAt time.Time
	Comments   []Comment
}

// Question is the record shape supplied by the question repository.
// Only the fields consumed by the sort modes are present.
type Question struct {
	ID       string
	Title    string
	Upvotes  int
	Downvotes int
	Views    int
	AskedAt  time.Time
	Comments []Comment
	Answers  []Answer
}

// totalComments counts direct comments plus comments on every answer.
func totalComments(q Question) int {
	n := len(q.Comments)
	for _, a := range q.Answers {
		n += len(a.Comments)
	}
	return n
}

// mostRecentCommentAt returns the newest comment timestamp across the
// question and all of its answers, or the zero time when no comment exists.
func mostRecentCommentAt(q Question) time.Time {
	var latest time.Time
	for _, c := range q.Comments {
		if c.CommentedAt.After(latest) {
			latest = c.CommentedAt
		}
	}
	for _, a := range q.Answers {
		for _, c := range a.Comments {
			if c.CommentedAt.After(latest) {
				latest = c.CommentedAt
			}
		}
	}
	return latest
}

// mostRecentAnswerAt returns the newest answer timestamp, zero when unanswered.
func mostRecentAnswerAt(q Question) time.Time {
	var latest time.Time
	for _, a := range q.Answers {
		if a.AnsweredAt.After(latest) {
			latest = a.AnsweredAt
		}
	}
	return latest
}

// TrendingScore computes the composite popularity/recency score for a single
// question, evaluated at now. Deterministic, no side effects.
func TrendingScore(q Question, now time.Time) float64 {
	netVotes := float64(q.Upvotes - q.Downvotes)
	comments := float64(totalComments(q))

	recentCommentBoost := 0.0
	if latest := mostRecentCommentAt(q); !latest.IsZero() {
		hoursSince := now.Sub(latest).Hours()
		recentCommentBoost = math.Exp(-hoursSince / commentHalfLifeHours)
	}

	hoursSincePost := now.Sub(q.AskedAt).Hours()
	postRecencyBoost := math.Exp(-hoursSincePost / postHalfLifeHours)

	basePopularity := netVotes*voteWeight + comments*commentWeight
	return basePopularity*(commentBoostWeight*recentCommentBoost+commentBoostFloor) +
		postRecencyWeight*postRecencyBoost
}

// SortTrending orders questions by descending trending score. Ties resolve to
// the most recently asked question via a stable pre-sort on ask time.
func SortTrending(questions []Question, now time.Time) []Question {
	out := SortNewest(questions)
	sort.SliceStable(out, func(i, j int) bool {
		return TrendingScore(out[i], now) > TrendingScore(out[j], now)
	})
	return out
}

// SortNewest orders by descending ask time.
func SortNewest(questions []Question) []Question {
	out := make([]Question, len(questions))
	copy(out, questions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AskedAt.After(out[j].AskedAt)
	})
	return out
}

// SortUnanswered is the newest ordering restricted to questions with no answers.
func SortUnanswered(questions []Question) []Question {
	var open []Question
	for _, q := range questions {
		if len(q.Answers) == 0 {
			open = append(open, q)
		}
	}
	return SortNewest(open)
}

// SortMostActive orders by most recent answer time descending; questions
// without answers sort last, newest-first among themselves.
func SortMostActive(questions []Question) []Question {
	out := SortNewest(questions)
	sort.SliceStable(out, func(i, j int) bool {
		ai, aj := mostRecentAnswerAt(out[i]), mostRecentAnswerAt(out[j])
		if ai.IsZero() != aj.IsZero() {
			return !ai.IsZero()
		}
		return ai.After(aj)
	})
	return out
}

// SortMostViewed orders by view count descending, newest-first on ties.
func SortMostViewed(questions []Question) []Question {
	out := SortNewest(questions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Views > out[j].Views
	})
	return out
}
