package data

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cid-docencia/wa-responder/internal/biz/domain"
	"github.com/cid-docencia/wa-responder/internal/biz/repo"
)

// chatRepo implements the conversation log repository
type chatRepo struct {
	db *sql.DB
}

// NewChatRepo creates a new chat repository
func NewChatRepo(db *sql.DB) repo.ChatRepo {
	return &chatRepo{db: db}
}

const chatColumns = `id, phone, text, timestamp_ms, is_user, is_admin, button_id`

func scanChatMessages(rows *sql.Rows) ([]domain.ChatMessage, error) {
	var messages []domain.ChatMessage
	for rows.Next() {
		var msg domain.ChatMessage
		var ts int64
		var isUser, isAdmin int
		var buttonID sql.NullString
		if err := rows.Scan(&msg.ID, &msg.Phone, &msg.Text, &ts, &isUser, &isAdmin, &buttonID); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		msg.Timestamp = time.UnixMilli(ts)
		msg.IsUser = isUser == 1
		msg.IsAdmin = isAdmin == 1
		msg.ButtonID = buttonID.String
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// Append adds a message to the sender's log
func (r *chatRepo) Append(ctx context.Context, msg *domain.ChatMessage) (int64, error) {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}

	var buttonID sql.NullString
	if msg.ButtonID != "" {
		buttonID = sql.NullString{String: msg.ButtonID, Valid: true}
	}

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO chat_messages (phone, text, timestamp_ms, is_user, is_admin, button_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`, msg.Phone, msg.Text, msg.TimestampMillis(), boolToInt(msg.IsUser), boolToInt(msg.IsAdmin), buttonID)
	if err != nil {
		return 0, fmt.Errorf("failed to append chat message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get chat message id: %w", err)
	}
	msg.ID = id
	return id, nil
}

// Recent returns the last n messages of a sender, oldest first
func (r *chatRepo) Recent(ctx context.Context, phone string, n int) ([]domain.ChatMessage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+chatColumns+` FROM (
			SELECT `+chatColumns+` FROM chat_messages
			WHERE phone = ?
			ORDER BY timestamp_ms DESC, id DESC
			LIMIT ?
		) ORDER BY timestamp_ms, id
	`, phone, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent messages: %w", err)
	}
	defer rows.Close()
	return scanChatMessages(rows)
}

// List returns the full log of a sender, oldest first
func (r *chatRepo) List(ctx context.Context, phone string) ([]domain.ChatMessage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+chatColumns+` FROM chat_messages
		WHERE phone = ?
		ORDER BY timestamp_ms, id
	`, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat history: %w", err)
	}
	defer rows.Close()
	return scanChatMessages(rows)
}

// ListAll returns every log keyed by sender
func (r *chatRepo) ListAll(ctx context.Context) (map[string][]domain.ChatMessage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+chatColumns+` FROM chat_messages
		ORDER BY phone, timestamp_ms, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	defer rows.Close()

	messages, err := scanChatMessages(rows)
	if err != nil {
		return nil, err
	}

	chats := make(map[string][]domain.ChatMessage)
	for _, msg := range messages {
		chats[msg.Phone] = append(chats[msg.Phone], msg)
	}
	return chats, nil
}

// Delete removes a sender's log
func (r *chatRepo) Delete(ctx context.Context, phone string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM chat_messages WHERE phone = ?`, phone)
	if err != nil {
		return fmt.Errorf("failed to delete chat: %w", err)
	}
	return nil
}
