package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"playlist-backend/internal/database"
	playlistEnv "playlist-backend/internal/env"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MockDB implements database.DB for testing.
type MockDB struct {
	ExecFunc     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryFunc    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRowFunc func(ctx context.Context, sql string, args ...any) pgx.Row
	BeginFunc    func(ctx context.Context) (pgx.Tx, error)
}

func (m *MockDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if m.ExecFunc != nil {
		return m.ExecFunc(ctx, sql, args...)
	}
	return pgconn.CommandTag{}, nil
}

func (m *MockDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, sql, args...)
	}
	return &MockRows{}, nil
}

func (m *MockDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if m.QueryRowFunc != nil {
		return m.QueryRowFunc(ctx, sql, args...)
	}
	return &MockRow{}
}

func (m *MockDB) Begin(ctx context.Context) (pgx.Tx, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTx{db: m}, nil
}

// MockRow implements pgx.Row
type MockRow struct {
	ScanFunc func(dest ...any) error
}

func (m *MockRow) Scan(dest ...any) error {
	if m.ScanFunc != nil {
		return m.ScanFunc(dest...)
	}
	return nil
}

// MockTx implements pgx.Tx by delegating to the mock connection.
type MockTx struct {
	pgx.Tx // Embed to satisfy interface; unchecked methods will panic if called

	db *MockDB
}

func (m *MockTx) Commit(ctx context.Context) error   { return nil }
func (m *MockTx) Rollback(ctx context.Context) error { return nil }

func (m *MockTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return m.db.Exec(ctx, sql, args...)
}

func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return m.db.Query(ctx, sql, args...)
}

func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return m.db.QueryRow(ctx, sql, args...)
}

// MockRows implements pgx.Rows over fixed data
type MockRows struct {
	pgx.Rows
	Data [][]any
	idx  int
}

func (m *MockRows) Next() bool {
	if m.idx >= len(m.Data) {
		return false
	}
	m.idx++
	return true
}

func (m *MockRows) Scan(dest ...any) error {
	row := m.Data[m.idx-1]
	if len(dest) != len(row) {
		return errors.New("column count mismatch")
	}
	for i, v := range row {
		switch d := dest[i].(type) {
		case *int64:
			*d = v.(int64)
		case *int32:
			*d = v.(int32)
		case *string:
			*d = v.(string)
		case *uuid.UUID:
			*d = v.(uuid.UUID)
		case *time.Time:
			*d = v.(time.Time)
		default:
			return errors.New("unsupported scan destination")
		}
	}
	return nil
}

func (m *MockRows) Close()     {}
func (m *MockRows) Err() error { return nil }

func songRows(songs ...database.Song) *MockRows {
	rows := &MockRows{}
	for _, s := range songs {
		rows.Data = append(rows.Data, []any{s.ID, s.UserID, s.Name, s.Artist})
	}
	return rows
}

func tagRows(tags ...database.Tag) *MockRows {
	rows := &MockRows{}
	for _, t := range tags {
		rows.Data = append(rows.Data, []any{t.ID, t.UserID, t.Name})
	}
	return rows
}

func playlistRows(playlists ...database.Playlist) *MockRows {
	rows := &MockRows{}
	for _, p := range playlists {
		rows.Data = append(rows.Data, []any{p.ID, p.UserID, p.Title, p.TimeMinutes, p.GeneralGenre, p.CreatedAt})
	}
	return rows
}

func scanPlaylist(p database.Playlist) func(dest ...any) error {
	return func(dest ...any) error {
		*(dest[0].(*int64)) = p.ID
		*(dest[1].(*uuid.UUID)) = p.UserID
		*(dest[2].(*string)) = p.Title
		*(dest[3].(*int32)) = p.TimeMinutes
		*(dest[4].(*string)) = p.GeneralGenre
		*(dest[5].(*time.Time)) = p.CreatedAt
		return nil
	}
}

func scanSong(s database.Song) func(dest ...any) error {
	return func(dest ...any) error {
		*(dest[0].(*int64)) = s.ID
		*(dest[1].(*uuid.UUID)) = s.UserID
		*(dest[2].(*string)) = s.Name
		*(dest[3].(*string)) = s.Artist
		return nil
	}
}

func scanTag(t database.Tag) func(dest ...any) error {
	return func(dest ...any) error {
		*(dest[0].(*int64)) = t.ID
		*(dest[1].(*uuid.UUID)) = t.UserID
		*(dest[2].(*string)) = t.Name
		return nil
	}
}

func newTestEnv(db *MockDB) *playlistEnv.Env {
	return playlistEnv.New(nil, database.New(db), nil, nil)
}

// Builds a request carrying the environment and an authenticated user,
// the way the middleware stack would.
func authedRequest(r *http.Request, env *playlistEnv.Env, userID uuid.UUID) *http.Request {
	ctx := context.WithValue(r.Context(), playlistEnv.Key, env)
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{"sub": userID.String()})
	ctx = context.WithValue(ctx, "jwt", token)
	return r.WithContext(ctx)
}
