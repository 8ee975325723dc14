package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	chat "chat-relay/internal/pkg/chat/application/domain"
)

type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

func (r *PgUserRepository) Create(ctx context.Context, name string) (chat.User, error) {
	if r == nil || r.pool == nil {
		return chat.User{}, errors.New("PgUserRepository: nil pool")
	}
	var u chat.User
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (name)
		VALUES ($1)
		RETURNING id, name, created_at
	`, name).Scan(&u.ID, &u.Name, &u.CreatedAt)
	if err != nil {
		return chat.User{}, err
	}
	return u, nil
}

func (r *PgUserRepository) FindByID(ctx context.Context, id string) (chat.User, error) {
	if r == nil || r.pool == nil {
		return chat.User{}, errors.New("PgUserRepository: nil pool")
	}
	var u chat.User
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, created_at
		FROM users
		WHERE id = $1
	`, id).Scan(&u.ID, &u.Name, &u.CreatedAt)
	if err != nil {
		return chat.User{}, err
	}
	return u, nil
}
