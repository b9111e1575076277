package database

import (
	"context"
)

type CreateUserParams struct {
	Email        string
	PasswordHash string
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, email, password_hash, created_at
	`, arg.Email, arg.PasswordHash)

	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRow(ctx, `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`, email)

	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

func (q *Queries) GetLatestPrivateKey(ctx context.Context) (PrivateKey, error) {
	row := q.db.QueryRow(ctx, `
		SELECT id, value, created_at
		FROM private_keys
		ORDER BY created_at DESC
		LIMIT 1
	`)

	var k PrivateKey
	err := row.Scan(&k.ID, &k.Value, &k.CreatedAt)
	return k, err
}

func (q *Queries) InsertPrivateKey(ctx context.Context, value string) (PrivateKey, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO private_keys (value)
		VALUES ($1)
		RETURNING id, value, created_at
	`, value)

	var k PrivateKey
	err := row.Scan(&k.ID, &k.Value, &k.CreatedAt)
	return k, err
}
