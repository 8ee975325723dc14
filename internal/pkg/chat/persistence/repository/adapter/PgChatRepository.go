package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	chat "chat-relay/internal/pkg/chat/application/domain"
)

type PgChatRepository struct {
	pool *pgxpool.Pool
}

func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool}
}

func (r *PgChatRepository) SaveMessage(ctx context.Context, d chat.Draft) (chat.Message, error) {
	if r == nil || r.pool == nil {
		return chat.Message{}, errors.New("PgChatRepository: nil pool")
	}
	var m chat.Message
	err := r.pool.QueryRow(ctx, `
		WITH inserted AS (
			INSERT INTO messages (content, user_id)
			VALUES ($1, $2)
			RETURNING id, content, user_id, created_at
		)
		SELECT i.id, i.content, i.user_id, i.created_at, u.name
		FROM inserted i
		JOIN users u ON u.id = i.user_id
	`, d.Content, d.UserID).Scan(&m.ID, &m.Content, &m.UserID, &m.Timestamp, &m.User.Name)
	if err != nil {
		return chat.Message{}, err
	}
	return m, nil
}

func (r *PgChatRepository) ListMessages(ctx context.Context) ([]chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT m.id, m.content, m.user_id, m.created_at, u.name
		FROM messages m
		JOIN users u ON u.id = m.user_id
		ORDER BY m.created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []chat.Message
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.ID, &m.Content, &m.UserID, &m.Timestamp, &m.User.Name); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return msgs, nil
}
