package repository

import (
	"context"
	"errors"
)

// UserProfile is the slice of the user record this subsystem reads. The rest
// of the users table belongs to the account/auth collaborator.
type UserProfile struct {
	Username         string
	Email            string
	EmailVerified    bool
	IsOnline         bool
	ShowOnlineStatus bool
}

// ErrUserNotFound is returned when a username has no profile row.
var ErrUserNotFound = errors.New("user: not found")

// UserRepository exposes profile lookups and the friend-relation check
// enforced before direct-chat creation and sending.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*UserProfile, error)
	GetManyByUsernames(ctx context.Context, usernames []string) ([]UserProfile, error)
	AreFriends(ctx context.Context, userA, userB string) (bool, error)
	SetOnline(ctx context.Context, username string, online bool) error
}
