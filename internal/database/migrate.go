package database

import (
	"context"
)

// Applies the schema. Safe to run at every startup.
func (d *Database) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS private_keys (
			id         BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			value      TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS playlists (
			id            BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			user_id       uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title         TEXT NOT NULL,
			time_minutes  INT NOT NULL DEFAULT 0,
			general_genre TEXT NOT NULL DEFAULT '',
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS songs (
			id      BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			user_id uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name    TEXT NOT NULL,
			artist  TEXT NOT NULL DEFAULT '',
			UNIQUE (user_id, name)
		)`,
		`CREATE TABLE IF NOT EXISTS tags (
			id      BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			user_id uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name    TEXT NOT NULL,
			UNIQUE (user_id, name)
		)`,
		`CREATE TABLE IF NOT EXISTS playlist_songs (
			playlist_id BIGINT NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
			song_id     BIGINT NOT NULL REFERENCES songs(id) ON DELETE CASCADE,
			PRIMARY KEY (playlist_id, song_id)
		)`,
		`CREATE TABLE IF NOT EXISTS playlist_tags (
			playlist_id BIGINT NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
			tag_id      BIGINT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
			PRIMARY KEY (playlist_id, tag_id)
		)`,
	}

	for _, stmt := range statements {
		if _, err := d.conn.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
