package notification

import (
	"errors"
	"strings"
	"time"
)

// Kind classifies what produced a notification.
type Kind string

const (
	KindAnswer Kind = "answer"
	KindChat   Kind = "chat"
	KindSystem Kind = "system"
)

// PreviewMaxLen caps the preview text, ellipsis included.
const PreviewMaxLen = 140

// Notification is a durable per-user record. It is immutable once created
// except for the IsRead/ReadAt transition, which goes unset -> set exactly
// once and is never reversed here.
type Notification struct {
	ID            string
	Recipient     string
	Kind          Kind
	Title         string
	Preview       string
	Link          string
	ActorUsername string
	IsRead        bool
	CreatedAt     time.Time
	ReadAt        *time.Time
	Meta          map[string]string
}

// Domain-level errors
var (
	ErrNotFound         = errors.New("notification: not found")
	ErrMissingRecipient = errors.New("notification: recipient is required")
	ErrInvalidKind      = errors.New("notification: unknown kind")
)

// New validates and normalizes a notification before persistence.
func New(n Notification) (*Notification, error) {
	if n.Recipient == "" {
		return nil, ErrMissingRecipient
	}
	switch n.Kind {
	case KindAnswer, KindChat, KindSystem:
	default:
		return nil, ErrInvalidKind
	}
	n.Preview = MakePreview(n.Preview)
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	return &n, nil
}

// MakePreview collapses runs of whitespace to single spaces and truncates the
// result to PreviewMaxLen runes, appending an ellipsis when cut.
func MakePreview(body string) string {
	collapsed := strings.Join(strings.Fields(body), " ")
	runes := []rune(collapsed)
	if len(runes) <= PreviewMaxLen {
		return collapsed
	}
	return string(runes[:PreviewMaxLen-1]) + "…"
}
