package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"

	mailerport "github.com/shuerry/Connectify-sub000/internal/infrastructure/mailer/port"
	qport "github.com/shuerry/Connectify-sub000/internal/infrastructure/queue/port"
)

// EmailDigestTaskType is the queue task name for the per-message email digest.
const EmailDigestTaskType = "notify:email_digest"

// EmailDigestQueue is the logical queue digests are enqueued on.
const EmailDigestQueue = "notify"

// EmailDigestTaskPayload is the JSON payload transported via the queue: one
// batched email per chat message, never one per recipient.
type EmailDigestTaskPayload struct {
	To       []string `json:"to" validate:"required,min=1,dive,email"`
	Sender   string   `json:"sender" validate:"required"`
	ChatName string   `json:"chatName" validate:"required"`
	Preview  string   `json:"preview"`
}

// Subject renders the digest subject line.
func (p EmailDigestTaskPayload) Subject() string {
	return fmt.Sprintf("New message from %s in %s", p.Sender, p.ChatName)
}

// Body renders the plain-text digest body.
func (p EmailDigestTaskPayload) Body() string {
	return fmt.Sprintf("%s sent a message in %s:\r\n\r\n%s\r\n", p.Sender, p.ChatName, p.Preview)
}

// RegisterEmailDigestTask binds the digest handler to the provided server.
//
// Delivery is best-effort by contract: transport failures are logged and
// dropped, never retried, so the handler returns nil on mailer errors.
func RegisterEmailDigestTask(srv qport.Server, mailer mailerport.Mailer) {
	validate := validator.New()

	srv.Register(EmailDigestTaskType, func(ctx context.Context, t qport.Task) error {
		var p EmailDigestTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// malformed payload: surface it; retry policy is zero anyway
			return err
		}
		if err := validate.Struct(p); err != nil {
			log.Printf("email digest: drop invalid payload: %v", err)
			return nil
		}

		ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()

		err := mailer.Send(ctx, mailerport.Email{
			To:      p.To,
			Subject: p.Subject(),
			Body:    p.Body(),
		})
		if err != nil {
			log.Printf("email digest: delivery failed for %d recipients: %v", len(p.To), err)
		}
		return nil
	})
}
