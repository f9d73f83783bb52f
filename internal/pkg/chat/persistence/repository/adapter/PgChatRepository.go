package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	chat "github.com/shuerry/Connectify-sub000/internal/pkg/chat/application/domain"
)

type PgChatRepository struct {
	pool *pgxpool.Pool
}

func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool}
}

func (r *PgChatRepository) CreateChat(ctx context.Context, c chat.Chat) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgChatRepository: nil pool")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id string
	err = tx.QueryRow(ctx, `
		INSERT INTO chat.chat (name, is_community_chat, community_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id::text
	`, c.Name, c.IsCommunityChat, c.CommunityID, c.CreatedAt).Scan(&id)
	if err != nil {
		return "", err
	}

	for _, m := range c.Members {
		_, err = tx.Exec(ctx, `
			INSERT INTO chat.chat_member (chat_id, username, notify_enabled)
			VALUES ($1::uuid, $2, $3)
			ON CONFLICT (chat_id, username) DO NOTHING
		`, id, m, c.NotifyEnabled[m])
		if err != nil {
			return "", err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return id, nil
}

func (r *PgChatRepository) GetChat(ctx context.Context, chatID string) (*chat.Chat, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}

	var c chat.Chat
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, COALESCE(name, ''), is_community_chat, community_id, created_at
		FROM chat.chat
		WHERE id = $1::uuid
	`, chatID).Scan(&c.ID, &c.Name, &c.IsCommunityChat, &c.CommunityID, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, chat.ErrChatNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT username, notify_enabled
		FROM chat.chat_member
		WHERE chat_id = $1::uuid
		ORDER BY username
	`, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	c.NotifyEnabled = make(map[string]bool)
	for rows.Next() {
		var username string
		var enabled bool
		if err := rows.Scan(&username, &enabled); err != nil {
			return nil, err
		}
		c.Members = append(c.Members, username)
		c.NotifyEnabled[username] = enabled
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return &c, nil
}

func (r *PgChatRepository) GetChatSnapshot(ctx context.Context, chatID string) (*chat.Chat, error) {
	c, err := r.GetChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	msgs, err := r.GetMessagesByChat(ctx, chatID, 0, 0)
	if err != nil {
		return nil, err
	}
	c.Messages = msgs
	return c, nil
}

func (r *PgChatRepository) IsMember(ctx context.Context, chatID string, username string) (bool, error) {
	if r == nil || r.pool == nil {
		return false, errors.New("PgChatRepository: nil pool")
	}
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM chat.chat_member WHERE chat_id = $1::uuid AND username = $2
		)
	`, chatID, username).Scan(&exists)
	return exists, err
}

func (r *PgChatRepository) AddMember(ctx context.Context, chatID string, username string, notifyEnabled bool) error {
	if r == nil || r.pool == nil {
		return errors.New("PgChatRepository: nil pool")
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO chat.chat_member (chat_id, username, notify_enabled)
		VALUES ($1::uuid, $2, $3)
		ON CONFLICT (chat_id, username) DO NOTHING
	`, chatID, username, notifyEnabled)
	return err
}

func (r *PgChatRepository) RemoveMember(ctx context.Context, chatID string, username string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgChatRepository: nil pool")
	}
	_, err := r.pool.Exec(ctx, `
		DELETE FROM chat.chat_member WHERE chat_id = $1::uuid AND username = $2
	`, chatID, username)
	return err
}

func (r *PgChatRepository) SetNotifyEnabled(ctx context.Context, chatID string, username string, enabled bool) error {
	if r == nil || r.pool == nil {
		return errors.New("PgChatRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE chat.chat_member
		SET notify_enabled = $3
		WHERE chat_id = $1::uuid AND username = $2
	`, chatID, username, enabled)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return chat.ErrNotParticipant
	}
	return nil
}

func (r *PgChatRepository) SaveMessage(ctx context.Context, m chat.Message) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgChatRepository: nil pool")
	}
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO chat.message (chat_id, msg_from, msg, msg_type, msg_to, msg_date_time)
		VALUES ($1::uuid, $2, $3, $4, $5, $6)
		RETURNING id::text
	`, m.ChatID, m.MsgFrom, m.Msg, string(m.Type), m.MsgTo, m.MsgDateTime).Scan(&id)
	return id, err
}

const messageColumns = `
	m.id::text, m.chat_id::text, m.msg_from, m.msg, m.msg_type, m.msg_to,
	m.msg_date_time, m.last_edited_at, m.last_edited_by,
	m.is_deleted, m.deleted_at, m.deleted_by,
	COALESCE(
		(SELECT array_agg(mr.username ORDER BY mr.username)
		 FROM chat.message_read mr WHERE mr.message_id = m.id),
		'{}'
	) AS read_by`

func scanMessage(row pgx.Row) (*chat.Message, error) {
	var (
		m       chat.Message
		msgType string
	)
	err := row.Scan(
		&m.ID, &m.ChatID, &m.MsgFrom, &m.Msg, &msgType, &m.MsgTo,
		&m.MsgDateTime, &m.LastEditedAt, &m.LastEditedBy,
		&m.IsDeleted, &m.DeletedAt, &m.DeletedBy,
		&m.ReadBy,
	)
	if err != nil {
		return nil, err
	}
	m.Type = chat.MessageType(msgType)
	return &m, nil
}

func (r *PgChatRepository) GetMessage(ctx context.Context, messageID string) (*chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	m, err := scanMessage(r.pool.QueryRow(ctx, `
		SELECT `+messageColumns+`
		FROM chat.message m
		WHERE m.id = $1::uuid
	`, messageID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, chat.ErrMessageNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT prior_body, edited_by, edited_at
		FROM chat.message_edit
		WHERE message_id = $1::uuid
		ORDER BY seq
	`, messageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var e chat.MessageEdit
		if err := rows.Scan(&e.PriorBody, &e.EditedBy, &e.EditedAt); err != nil {
			return nil, err
		}
		m.EditHistory = append(m.EditHistory, e)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return m, nil
}

// GetMessagesByChat returns the chat's non-deleted messages in log order.
// A limit of 0 means no limit.
func (r *PgChatRepository) GetMessagesByChat(ctx context.Context, chatID string, limit int, offset int) ([]chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+messageColumns+`
		FROM chat.message m
		WHERE m.chat_id = $1::uuid AND NOT m.is_deleted
		ORDER BY m.msg_date_time, m.id
		LIMIT NULLIF($2, 0) OFFSET $3
	`, chatID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []chat.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, *m)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return msgs, nil
}

func (r *PgChatRepository) AppendEdit(ctx context.Context, messageID string, newBody string, editedBy string, editedAt time.Time) error {
	if r == nil || r.pool == nil {
		return errors.New("PgChatRepository: nil pool")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Record the body being replaced before overwriting it.
	ct, err := tx.Exec(ctx, `
		INSERT INTO chat.message_edit (message_id, seq, prior_body, edited_by, edited_at)
		SELECT m.id,
		       COALESCE((SELECT MAX(seq) FROM chat.message_edit WHERE message_id = m.id), 0) + 1,
		       m.msg, $2, $3
		FROM chat.message m
		WHERE m.id = $1::uuid AND NOT m.is_deleted
	`, messageID, editedBy, editedAt)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return chat.ErrMessageNotFound
	}

	_, err = tx.Exec(ctx, `
		UPDATE chat.message
		SET msg = $2, last_edited_at = $3, last_edited_by = $4
		WHERE id = $1::uuid
	`, messageID, newBody, editedAt, editedBy)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PgChatRepository) SoftDeleteMessage(ctx context.Context, messageID string, deletedBy string, deletedAt time.Time) error {
	if r == nil || r.pool == nil {
		return errors.New("PgChatRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE chat.message
		SET is_deleted = TRUE, deleted_at = $2, deleted_by = $3
		WHERE id = $1::uuid
	`, messageID, deletedAt, deletedBy)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return chat.ErrMessageNotFound
	}
	return nil
}

// MarkChatRead is a single set-based insert so concurrent readers commute;
// re-reading is a no-op thanks to the conflict clause.
func (r *PgChatRepository) MarkChatRead(ctx context.Context, chatID string, username string) (int64, error) {
	if r == nil || r.pool == nil {
		return 0, errors.New("PgChatRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		INSERT INTO chat.message_read (message_id, username)
		SELECT m.id, $2
		FROM chat.message m
		WHERE m.chat_id = $1::uuid AND m.msg_from <> $2
		ON CONFLICT (message_id, username) DO NOTHING
	`, chatID, username)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}
