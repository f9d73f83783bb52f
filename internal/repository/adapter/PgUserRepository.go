package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	repository "github.com/shuerry/Connectify-sub000/internal/repository/port"
)

type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

var _ repository.UserRepository = (*PgUserRepository)(nil)

func (r *PgUserRepository) GetByUsername(ctx context.Context, username string) (*repository.UserProfile, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgUserRepository: nil pool")
	}
	var p repository.UserProfile
	err := r.pool.QueryRow(ctx, `
		SELECT username, email, email_verified, is_online, show_online_status
		FROM users
		WHERE username = $1
	`, username).Scan(&p.Username, &p.Email, &p.EmailVerified, &p.IsOnline, &p.ShowOnlineStatus)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PgUserRepository) GetManyByUsernames(ctx context.Context, usernames []string) ([]repository.UserProfile, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgUserRepository: nil pool")
	}
	if len(usernames) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT username, email, email_verified, is_online, show_online_status
		FROM users
		WHERE username = ANY($1)
	`, usernames)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []repository.UserProfile
	for rows.Next() {
		var p repository.UserProfile
		if err := rows.Scan(&p.Username, &p.Email, &p.EmailVerified, &p.IsOnline, &p.ShowOnlineStatus); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *PgUserRepository) AreFriends(ctx context.Context, userA, userB string) (bool, error) {
	if r == nil || r.pool == nil {
		return false, errors.New("PgUserRepository: nil pool")
	}
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM friendship
			WHERE (user_a = $1 AND user_b = $2) OR (user_a = $2 AND user_b = $1)
		)
	`, userA, userB).Scan(&exists)
	return exists, err
}

func (r *PgUserRepository) SetOnline(ctx context.Context, username string, online bool) error {
	if r == nil || r.pool == nil {
		return errors.New("PgUserRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE users SET is_online = $2 WHERE username = $1
	`, username, online)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrUserNotFound
	}
	return nil
}
