package database

import (
	"context"

	"github.com/google/uuid"
)

type CreateTagParams struct {
	UserID uuid.UUID
	Name   string
}

func (q *Queries) GetOrCreateTag(ctx context.Context, arg CreateTagParams) (Tag, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO tags (user_id, name)
		VALUES ($1, $2)
		ON CONFLICT (user_id, name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, user_id, name
	`, arg.UserID, arg.Name)

	var t Tag
	err := row.Scan(&t.ID, &t.UserID, &t.Name)
	return t, err
}

func (q *Queries) ListTags(ctx context.Context, userID uuid.UUID) ([]Tag, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, user_id, name
		FROM tags
		WHERE user_id = $1
		ORDER BY name DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make([]Tag, 0)
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

type UpdateTagParams struct {
	ID     int64
	UserID uuid.UUID
	Name   *string
}

func (q *Queries) UpdateTag(ctx context.Context, arg UpdateTagParams) (Tag, error) {
	row := q.db.QueryRow(ctx, `
		UPDATE tags
		SET name = COALESCE($3, name)
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, name
	`, arg.ID, arg.UserID, arg.Name)

	var t Tag
	err := row.Scan(&t.ID, &t.UserID, &t.Name)
	return t, err
}

type DeleteTagParams struct {
	ID     int64
	UserID uuid.UUID
}

func (q *Queries) DeleteTag(ctx context.Context, arg DeleteTagParams) (int64, error) {
	tag, err := q.db.Exec(ctx, `
		DELETE FROM tags
		WHERE id = $1 AND user_id = $2
	`, arg.ID, arg.UserID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
