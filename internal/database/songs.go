package database

import (
	"context"

	"github.com/google/uuid"
)

type CreateSongParams struct {
	UserID uuid.UUID
	Name   string
	Artist string
}

func (q *Queries) CreateSong(ctx context.Context, arg CreateSongParams) (Song, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO songs (user_id, name, artist)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, name, artist
	`, arg.UserID, arg.Name, arg.Artist)

	var s Song
	err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Artist)
	return s, err
}

// Inserts the song or, if the caller already owns one with that name,
// returns the existing row untouched.
func (q *Queries) GetOrCreateSong(ctx context.Context, arg CreateSongParams) (Song, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO songs (user_id, name, artist)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, user_id, name, artist
	`, arg.UserID, arg.Name, arg.Artist)

	var s Song
	err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Artist)
	return s, err
}

type GetSongParams struct {
	ID     int64
	UserID uuid.UUID
}

func (q *Queries) GetSong(ctx context.Context, arg GetSongParams) (Song, error) {
	row := q.db.QueryRow(ctx, `
		SELECT id, user_id, name, artist
		FROM songs
		WHERE id = $1 AND user_id = $2
	`, arg.ID, arg.UserID)

	var s Song
	err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Artist)
	return s, err
}

func (q *Queries) ListSongs(ctx context.Context, userID uuid.UUID) ([]Song, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, user_id, name, artist
		FROM songs
		WHERE user_id = $1
		ORDER BY name DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	songs := make([]Song, 0)
	for rows.Next() {
		var s Song
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Artist); err != nil {
			return nil, err
		}
		songs = append(songs, s)
	}
	return songs, rows.Err()
}

// Lists only the caller's songs that appear on at least one playlist.
// A song on several playlists must come back once.
func (q *Queries) ListAssignedSongs(ctx context.Context, userID uuid.UUID) ([]Song, error) {
	rows, err := q.db.Query(ctx, `
		SELECT DISTINCT s.id, s.user_id, s.name, s.artist
		FROM songs s
		JOIN playlist_songs ps ON ps.song_id = s.id
		WHERE s.user_id = $1
		ORDER BY s.name DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	songs := make([]Song, 0)
	for rows.Next() {
		var s Song
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Artist); err != nil {
			return nil, err
		}
		songs = append(songs, s)
	}
	return songs, rows.Err()
}

type UpdateSongParams struct {
	ID     int64
	UserID uuid.UUID
	Name   *string
	Artist *string
}

// Nil fields keep their previous value
func (q *Queries) UpdateSong(ctx context.Context, arg UpdateSongParams) (Song, error) {
	row := q.db.QueryRow(ctx, `
		UPDATE songs
		SET name = COALESCE($3, name),
		    artist = COALESCE($4, artist)
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, name, artist
	`, arg.ID, arg.UserID, arg.Name, arg.Artist)

	var s Song
	err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Artist)
	return s, err
}

type DeleteSongParams struct {
	ID     int64
	UserID uuid.UUID
}

func (q *Queries) DeleteSong(ctx context.Context, arg DeleteSongParams) (int64, error) {
	tag, err := q.db.Exec(ctx, `
		DELETE FROM songs
		WHERE id = $1 AND user_id = $2
	`, arg.ID, arg.UserID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
