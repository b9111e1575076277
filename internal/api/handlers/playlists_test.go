package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"playlist-backend/internal/database"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func playlistRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/playlists", ListPlaylists).Methods("GET")
	r.HandleFunc("/api/playlists", CreatePlaylist).Methods("POST")
	r.HandleFunc("/api/playlists/{id}", GetPlaylist).Methods("GET")
	r.HandleFunc("/api/playlists/{id}", UpdatePlaylist).Methods("PUT", "PATCH")
	r.HandleFunc("/api/playlists/{id}", DeletePlaylist).Methods("DELETE")
	return r
}

// Dispatches mock results for the transactional playlist writes
func playlistWriteDB(t *testing.T, playlist database.Playlist) *MockDB {
	t.Helper()
	return &MockDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			switch {
			case strings.Contains(sql, "INTO playlists") || strings.Contains(sql, "UPDATE playlists") || strings.Contains(sql, "FROM playlists"):
				return &MockRow{ScanFunc: scanPlaylist(playlist)}
			case strings.Contains(sql, "INTO songs"):
				return &MockRow{ScanFunc: scanSong(database.Song{ID: 11, UserID: playlist.UserID, Name: "Back in Black", Artist: "AC/DC"})}
			case strings.Contains(sql, "INTO tags"):
				return &MockRow{ScanFunc: scanTag(database.Tag{ID: 21, UserID: playlist.UserID, Name: "Rock"})}
			}
			t.Errorf("unexpected QueryRow: %s", sql)
			return &MockRow{}
		},
		QueryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			switch {
			case strings.Contains(sql, "playlist_songs"):
				return songRows(database.Song{ID: 11, UserID: playlist.UserID, Name: "Back in Black", Artist: "AC/DC"}), nil
			case strings.Contains(sql, "playlist_tags"):
				return tagRows(database.Tag{ID: 21, UserID: playlist.UserID, Name: "Rock"}), nil
			}
			t.Errorf("unexpected Query: %s", sql)
			return &MockRows{}, nil
		},
	}
}

func TestListPlaylistsSummaryShape(t *testing.T) {
	userID := uuid.New()
	mockDB := &MockDB{
		QueryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			return playlistRows(
				database.Playlist{ID: 2, UserID: userID, Title: "Second", TimeMinutes: 10, GeneralGenre: "Rock", CreatedAt: time.Now()},
				database.Playlist{ID: 1, UserID: userID, Title: "First", TimeMinutes: 5, GeneralGenre: "Jazz", CreatedAt: time.Now()},
			), nil
		},
	}
	env := newTestEnv(mockDB)

	req := authedRequest(httptest.NewRequest("GET", "/api/playlists", nil), env, userID)
	w := httptest.NewRecorder()
	playlistRouter().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var response struct {
		Playlists []map[string]any `json:"playlists"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response.Playlists) != 2 {
		t.Fatalf("expected 2 playlists, got %d", len(response.Playlists))
	}
	if response.Playlists[0]["id"].(float64) != 2 || response.Playlists[1]["id"].(float64) != 1 {
		t.Errorf("expected descending id order, got %v", response.Playlists)
	}
	// Listing uses the summary shape: no nested songs or tags
	if _, ok := response.Playlists[0]["songs"]; ok {
		t.Error("summary listing must not include nested songs")
	}
	if _, ok := response.Playlists[0]["tags"]; ok {
		t.Error("summary listing must not include nested tags")
	}
}

func TestGetPlaylistDetailShape(t *testing.T) {
	userID := uuid.New()
	playlist := database.Playlist{ID: 3, UserID: userID, Title: "ACDC pack", TimeMinutes: 6, GeneralGenre: "Rock'n'Roll", CreatedAt: time.Now()}
	mockDB := playlistWriteDB(t, playlist)
	env := newTestEnv(mockDB)

	req := authedRequest(httptest.NewRequest("GET", "/api/playlists/3", nil), env, userID)
	w := httptest.NewRecorder()
	playlistRouter().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var response struct {
		ID    int64 `json:"id"`
		Songs []struct {
			Name string `json:"name"`
		} `json:"songs"`
		Tags []struct {
			Name string `json:"name"`
		} `json:"tags"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.ID != 3 {
		t.Errorf("expected playlist 3, got %d", response.ID)
	}
	if len(response.Songs) != 1 || response.Songs[0].Name != "Back in Black" {
		t.Errorf("expected nested songs, got %+v", response.Songs)
	}
	if len(response.Tags) != 1 || response.Tags[0].Name != "Rock" {
		t.Errorf("expected nested tags, got %+v", response.Tags)
	}
}

func TestGetPlaylistNotOwned(t *testing.T) {
	mockDB := &MockDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return &MockRow{ScanFunc: func(dest ...any) error { return pgx.ErrNoRows }}
		},
	}
	env := newTestEnv(mockDB)

	req := authedRequest(httptest.NewRequest("GET", "/api/playlists/3", nil), env, uuid.New())
	w := httptest.NewRecorder()
	playlistRouter().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for another user's playlist, got %d", w.Code)
	}
}

func TestCreatePlaylist(t *testing.T) {
	userID := uuid.New()
	playlist := database.Playlist{ID: 8, UserID: userID, Title: "ACDC pack", TimeMinutes: 6, GeneralGenre: "Rock'n'Roll", CreatedAt: time.Now()}
	mockDB := playlistWriteDB(t, playlist)
	env := newTestEnv(mockDB)

	body := strings.NewReader(`{
		"title": "ACDC pack",
		"time_minutes": 6,
		"general_genre": "Rock'n'Roll",
		"songs": [{"name": "Back in Black", "artist": "AC/DC"}],
		"tags": [{"name": "Rock"}]
	}`)
	req := authedRequest(httptest.NewRequest("POST", "/api/playlists", body), env, userID)
	w := httptest.NewRecorder()
	playlistRouter().ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var response struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
		Songs []struct {
			Name string `json:"name"`
		} `json:"songs"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.ID != 8 || response.Title != "ACDC pack" {
		t.Errorf("unexpected response: %+v", response)
	}
	if len(response.Songs) != 1 {
		t.Errorf("create must answer with the detail shape, got %+v", response)
	}
}

func TestCreatePlaylistRejectsClientOwner(t *testing.T) {
	env := newTestEnv(&MockDB{})

	body := strings.NewReader(`{"title": "Sneaky", "user_id": "11111111-1111-1111-1111-111111111111"}`)
	req := authedRequest(httptest.NewRequest("POST", "/api/playlists", body), env, uuid.New())
	w := httptest.NewRecorder()
	playlistRouter().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for client-supplied owner, got %d", w.Code)
	}
}

func TestUpdatePlaylistPatchKeepsAssociations(t *testing.T) {
	userID := uuid.New()
	playlist := database.Playlist{ID: 8, UserID: userID, Title: "Renamed", TimeMinutes: 6, GeneralGenre: "Rock'n'Roll", CreatedAt: time.Now()}
	mockDB := playlistWriteDB(t, playlist)
	var execSQL []string
	mockDB.ExecFunc = func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
		execSQL = append(execSQL, sql)
		return pgconn.CommandTag{}, nil
	}
	env := newTestEnv(mockDB)

	body := strings.NewReader(`{"title": "Renamed"}`)
	req := authedRequest(httptest.NewRequest("PATCH", "/api/playlists/8", body), env, userID)
	w := httptest.NewRecorder()
	playlistRouter().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	for _, sql := range execSQL {
		if strings.Contains(sql, "DELETE FROM playlist_songs") || strings.Contains(sql, "DELETE FROM playlist_tags") {
			t.Errorf("partial update must not touch associations, ran: %s", sql)
		}
	}
}

func TestUpdatePlaylistPutRequiresTitle(t *testing.T) {
	env := newTestEnv(&MockDB{})

	body := strings.NewReader(`{"time_minutes": 10}`)
	req := authedRequest(httptest.NewRequest("PUT", "/api/playlists/8", body), env, uuid.New())
	w := httptest.NewRecorder()
	playlistRouter().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for full update without title, got %d", w.Code)
	}
}

func TestUpdatePlaylistNotFound(t *testing.T) {
	mockDB := &MockDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return &MockRow{ScanFunc: func(dest ...any) error { return pgx.ErrNoRows }}
		},
	}
	env := newTestEnv(mockDB)

	body := strings.NewReader(`{"title": "Nope"}`)
	req := authedRequest(httptest.NewRequest("PATCH", "/api/playlists/404", body), env, uuid.New())
	w := httptest.NewRecorder()
	playlistRouter().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestDeletePlaylist(t *testing.T) {
	mockDB := &MockDB{
		ExecFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("DELETE 1"), nil
		},
	}
	env := newTestEnv(mockDB)

	req := authedRequest(httptest.NewRequest("DELETE", "/api/playlists/8", nil), env, uuid.New())
	w := httptest.NewRecorder()
	playlistRouter().ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}
}
