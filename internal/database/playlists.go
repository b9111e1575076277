package database

import (
	"context"

	"github.com/google/uuid"
)

type CreatePlaylistParams struct {
	UserID       uuid.UUID
	Title        string
	TimeMinutes  int32
	GeneralGenre string
}

func (q *Queries) CreatePlaylist(ctx context.Context, arg CreatePlaylistParams) (Playlist, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO playlists (user_id, title, time_minutes, general_genre)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, title, time_minutes, general_genre, created_at
	`, arg.UserID, arg.Title, arg.TimeMinutes, arg.GeneralGenre)

	var p Playlist
	err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.TimeMinutes, &p.GeneralGenre, &p.CreatedAt)
	return p, err
}

func (q *Queries) ListPlaylists(ctx context.Context, userID uuid.UUID) ([]Playlist, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, user_id, title, time_minutes, general_genre, created_at
		FROM playlists
		WHERE user_id = $1
		ORDER BY id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	playlists := make([]Playlist, 0)
	for rows.Next() {
		var p Playlist
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.TimeMinutes, &p.GeneralGenre, &p.CreatedAt); err != nil {
			return nil, err
		}
		playlists = append(playlists, p)
	}
	return playlists, rows.Err()
}

type GetPlaylistParams struct {
	ID     int64
	UserID uuid.UUID
}

func (q *Queries) GetPlaylist(ctx context.Context, arg GetPlaylistParams) (Playlist, error) {
	row := q.db.QueryRow(ctx, `
		SELECT id, user_id, title, time_minutes, general_genre, created_at
		FROM playlists
		WHERE id = $1 AND user_id = $2
	`, arg.ID, arg.UserID)

	var p Playlist
	err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.TimeMinutes, &p.GeneralGenre, &p.CreatedAt)
	return p, err
}

type UpdatePlaylistParams struct {
	ID           int64
	UserID       uuid.UUID
	Title        *string
	TimeMinutes  *int32
	GeneralGenre *string
}

// Nil fields keep their previous value
func (q *Queries) UpdatePlaylist(ctx context.Context, arg UpdatePlaylistParams) (Playlist, error) {
	row := q.db.QueryRow(ctx, `
		UPDATE playlists
		SET title = COALESCE($3, title),
		    time_minutes = COALESCE($4, time_minutes),
		    general_genre = COALESCE($5, general_genre)
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, title, time_minutes, general_genre, created_at
	`, arg.ID, arg.UserID, arg.Title, arg.TimeMinutes, arg.GeneralGenre)

	var p Playlist
	err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.TimeMinutes, &p.GeneralGenre, &p.CreatedAt)
	return p, err
}

type DeletePlaylistParams struct {
	ID     int64
	UserID uuid.UUID
}

func (q *Queries) DeletePlaylist(ctx context.Context, arg DeletePlaylistParams) (int64, error) {
	tag, err := q.db.Exec(ctx, `
		DELETE FROM playlists
		WHERE id = $1 AND user_id = $2
	`, arg.ID, arg.UserID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (q *Queries) ListPlaylistSongs(ctx context.Context, playlistID int64) ([]Song, error) {
	rows, err := q.db.Query(ctx, `
		SELECT s.id, s.user_id, s.name, s.artist
		FROM songs s
		JOIN playlist_songs ps ON ps.song_id = s.id
		WHERE ps.playlist_id = $1
		ORDER BY s.name DESC
	`, playlistID)
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

func (q *Queries) ListPlaylistTags(ctx context.Context, playlistID int64) ([]Tag, error) {
	rows, err := q.db.Query(ctx, `
		SELECT t.id, t.user_id, t.name
		FROM tags t
		JOIN playlist_tags pt ON pt.tag_id = t.id
		WHERE pt.playlist_id = $1
		ORDER BY t.name DESC
	`, playlistID)
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

type AddPlaylistSongParams struct {
	PlaylistID int64
	SongID     int64
}

func (q *Queries) AddPlaylistSong(ctx context.Context, arg AddPlaylistSongParams) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO playlist_songs (playlist_id, song_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, arg.PlaylistID, arg.SongID)
	return err
}

type AddPlaylistTagParams struct {
	PlaylistID int64
	TagID      int64
}

func (q *Queries) AddPlaylistTag(ctx context.Context, arg AddPlaylistTagParams) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO playlist_tags (playlist_id, tag_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, arg.PlaylistID, arg.TagID)
	return err
}

func (q *Queries) ClearPlaylistSongs(ctx context.Context, playlistID int64) error {
	_, err := q.db.Exec(ctx, `DELETE FROM playlist_songs WHERE playlist_id = $1`, playlistID)
	return err
}

func (q *Queries) ClearPlaylistTags(ctx context.Context, playlistID int64) error {
	_, err := q.db.Exec(ctx, `DELETE FROM playlist_tags WHERE playlist_id = $1`, playlistID)
	return err
}

// Song reference supplied through a nested playlist write
type SongRef struct {
	Name   string
	Artist string
}

type CreatePlaylistDetailParams struct {
	UserID       uuid.UUID
	Title        string
	TimeMinutes  int32
	GeneralGenre string
	Songs        []SongRef
	Tags         []string
}

// Creates a playlist and its song/tag associations in one transaction.
// Referenced songs and tags are created on demand, scoped to the owner.
func (d *Database) CreatePlaylistDetail(ctx context.Context, arg CreatePlaylistDetailParams) (PlaylistDetail, error) {
	var detail PlaylistDetail

	tx, err := d.conn.Begin(ctx)
	if err != nil {
		return detail, err
	}
	defer tx.Rollback(ctx)

	q := d.Queries.WithTx(tx)
	playlist, err := q.CreatePlaylist(ctx, CreatePlaylistParams{
		UserID:       arg.UserID,
		Title:        arg.Title,
		TimeMinutes:  arg.TimeMinutes,
		GeneralGenre: arg.GeneralGenre,
	})
	if err != nil {
		return detail, err
	}

	if err := q.attachSongs(ctx, playlist, arg.Songs); err != nil {
		return detail, err
	}
	if err := q.attachTags(ctx, playlist, arg.Tags); err != nil {
		return detail, err
	}

	detail, err = q.getPlaylistDetail(ctx, playlist)
	if err != nil {
		return detail, err
	}
	return detail, tx.Commit(ctx)
}

type UpdatePlaylistDetailParams struct {
	ID           int64
	UserID       uuid.UUID
	Title        *string
	TimeMinutes  *int32
	GeneralGenre *string

	// Associations are replaced only when the corresponding flag is set,
	// so a partial update can leave them untouched.
	Songs        []SongRef
	ReplaceSongs bool
	Tags         []string
	ReplaceTags  bool
}

func (d *Database) UpdatePlaylistDetail(ctx context.Context, arg UpdatePlaylistDetailParams) (PlaylistDetail, error) {
	var detail PlaylistDetail

	tx, err := d.conn.Begin(ctx)
	if err != nil {
		return detail, err
	}
	defer tx.Rollback(ctx)

	q := d.Queries.WithTx(tx)
	playlist, err := q.UpdatePlaylist(ctx, UpdatePlaylistParams{
		ID:           arg.ID,
		UserID:       arg.UserID,
		Title:        arg.Title,
		TimeMinutes:  arg.TimeMinutes,
		GeneralGenre: arg.GeneralGenre,
	})
	if err != nil {
		return detail, err
	}

	if arg.ReplaceSongs {
		if err := q.ClearPlaylistSongs(ctx, playlist.ID); err != nil {
			return detail, err
		}
		if err := q.attachSongs(ctx, playlist, arg.Songs); err != nil {
			return detail, err
		}
	}
	if arg.ReplaceTags {
		if err := q.ClearPlaylistTags(ctx, playlist.ID); err != nil {
			return detail, err
		}
		if err := q.attachTags(ctx, playlist, arg.Tags); err != nil {
			return detail, err
		}
	}

	detail, err = q.getPlaylistDetail(ctx, playlist)
	if err != nil {
		return detail, err
	}
	return detail, tx.Commit(ctx)
}

func (d *Database) GetPlaylistDetail(ctx context.Context, arg GetPlaylistParams) (PlaylistDetail, error) {
	playlist, err := d.Queries.GetPlaylist(ctx, arg)
	if err != nil {
		return PlaylistDetail{}, err
	}
	return d.Queries.getPlaylistDetail(ctx, playlist)
}

func (q *Queries) attachSongs(ctx context.Context, playlist Playlist, refs []SongRef) error {
	for _, ref := range refs {
		song, err := q.GetOrCreateSong(ctx, CreateSongParams{
			UserID: playlist.UserID,
			Name:   ref.Name,
			Artist: ref.Artist,
		})
		if err != nil {
			return err
		}
		if err := q.AddPlaylistSong(ctx, AddPlaylistSongParams{
			PlaylistID: playlist.ID,
			SongID:     song.ID,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (q *Queries) attachTags(ctx context.Context, playlist Playlist, names []string) error {
	for _, name := range names {
		tag, err := q.GetOrCreateTag(ctx, CreateTagParams{
			UserID: playlist.UserID,
			Name:   name,
		})
		if err != nil {
			return err
		}
		if err := q.AddPlaylistTag(ctx, AddPlaylistTagParams{
			PlaylistID: playlist.ID,
			TagID:      tag.ID,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (q *Queries) getPlaylistDetail(ctx context.Context, playlist Playlist) (PlaylistDetail, error) {
	songs, err := q.ListPlaylistSongs(ctx, playlist.ID)
	if err != nil {
		return PlaylistDetail{}, err
	}
	tags, err := q.ListPlaylistTags(ctx, playlist.ID)
	if err != nil {
		return PlaylistDetail{}, err
	}
	return PlaylistDetail{Playlist: playlist, Songs: songs, Tags: tags}, nil
}
