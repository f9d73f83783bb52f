package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shuerry/Connectify-sub000/internal/pkg/ranking"
	repository "github.com/shuerry/Connectify-sub000/internal/pkg/ranking/persistence/repository/port"
)

// PgQuestionRepository reads questions with their answer/comment activity
// timestamps from PostgreSQL.
type PgQuestionRepository struct {
	pool *pgxpool.Pool
}

func NewPgQuestionRepository(pool *pgxpool.Pool) *PgQuestionRepository {
	return &PgQuestionRepository{pool: pool}
}

var _ repository.QuestionRepository = (*PgQuestionRepository)(nil)

// ListQuestions loads the newest questions with nested activity. Ranking and
// reordering happen in memory; the query only bounds the candidate set.
func (r *PgQuestionRepository) ListQuestions(ctx context.Context, limit int) ([]ranking.Question, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, upvotes, downvotes, views, asked_at
		FROM qa.question
		ORDER BY asked_at DESC, id DESC
		LIMIT NULLIF($1, 0)`, limit)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var questions []ranking.Question
	index := make(map[string]int)
	var ids []string
	for rows.Next() {
		var q ranking.Question
		if err := rows.Scan(&q.ID, &q.Title, &q.Upvotes, &q.Downvotes, &q.Views, &q.AskedAt); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		index[q.ID] = len(questions)
		ids = append(ids, q.ID)
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	if len(questions) == 0 {
		return questions, nil
	}

	if err := r.loadComments(ctx, ids, index, questions); err != nil {
		return nil, err
	}
	if err := r.loadAnswers(ctx, ids, index, questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// loadComments attaches comments made directly on each question.
func (r *PgQuestionRepository) loadComments(ctx context.Context, ids []string, index map[string]int, questions []ranking.Question) error {
	rows, err := r.pool.Query(ctx, `
		SELECT question_id, commented_at
		FROM qa.comment
		WHERE question_id = ANY($1) AND answer_id IS NULL`, ids)
	if err != nil {
		return fmt.Errorf("load question comments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var questionID string
		var c ranking.Comment
		if err := rows.Scan(&questionID, &c.CommentedAt); err != nil {
			return fmt.Errorf("scan comment: %w", err)
		}
		i := index[questionID]
		questions[i].Comments = append(questions[i].Comments, c)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load question comments: %w", err)
	}
	return nil
}

// loadAnswers attaches answers and their comments in one left-joined pass.
func (r *PgQuestionRepository) loadAnswers(ctx context.Context, ids []string, index map[string]int, questions []ranking.Question) error {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.question_id, a.answered_at, c.commented_at
		FROM qa.answer a
		LEFT JOIN qa.comment c ON c.answer_id = a.id
		WHERE a.question_id = ANY($1)
		ORDER BY a.answered_at, a.id`, ids)
	if err != nil {
		return fmt.Errorf("load answers: %w", err)
	}
	defer rows.Close()

	type answerRow struct {
		questionID string
		answer     ranking.Answer
	}
	byID := make(map[string]*answerRow)
	var order []string
	for rows.Next() {
		var answerID, questionID string
		var answeredAt time.Time
		var commentedAt *time.Time
		if err := rows.Scan(&answerID, &questionID, &answeredAt, &commentedAt); err != nil {
			return fmt.Errorf("scan answer: %w", err)
		}
		a, ok := byID[answerID]
		if !ok {
			a = &answerRow{questionID: questionID, answer: ranking.Answer{AnsweredAt: answeredAt}}
			byID[answerID] = a
			order = append(order, answerID)
		}
		if commentedAt != nil {
			a.answer.Comments = append(a.answer.Comments, ranking.Comment{CommentedAt: *commentedAt})
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load answers: %w", err)
	}

	for _, answerID := range order {
		a := byID[answerID]
		i := index[a.questionID]
		questions[i].Answers = append(questions[i].Answers, a.answer)
	}
	return nil
}
