package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"playlist-backend/internal/api/models/requests"
	"playlist-backend/internal/api/models/responses"
	"playlist-backend/internal/database"
	playlistEnv "playlist-backend/internal/env"
	"playlist-backend/internal/events"
	playlistJson "playlist-backend/internal/json"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func ListSongs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env, ok := r.Context().Value(playlistEnv.Key).(*playlistEnv.Env)
	if !ok {
		env = playlistEnv.Null()
	}

	userID, err := requesterID(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to resolve requester", slog.Any("error", err))
		http.Error(w, "Invalid JWT claims", http.StatusUnauthorized)
		return
	}

	// List songs, restricted to assigned ones when the flag is set
	var songs []database.Song
	if truthy(r.URL.Query().Get("assigned_only")) {
		env.Logger.DebugContext(ctx, "Listing assigned songs")
		songs, err = env.Database.ListAssignedSongs(ctx, userID)
	} else {
		env.Logger.DebugContext(ctx, "Listing songs")
		songs, err = env.Database.ListSongs(ctx, userID)
	}
	if err != nil {
		env.Logger.ErrorContext(ctx, "Unable to list songs", slog.Any("error", err))
		http.Error(w, "Unable to list songs", http.StatusInternalServerError)
		return
	}

	// Encode response
	env.Logger.DebugContext(ctx, "Encoding response")
	response := responses.ListSongs{Songs: make([]responses.Song, len(songs))}
	for i, s := range songs {
		response.Songs[i] = responses.Song{ID: s.ID, Name: s.Name, Artist: s.Artist}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		env.Logger.ErrorContext(ctx, "Unable to encode response", slog.Any("error", err))
		return
	}
}

func GetSong(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env, ok := r.Context().Value(playlistEnv.Key).(*playlistEnv.Env)
	if !ok {
		env = playlistEnv.Null()
	}

	userID, err := requesterID(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to resolve requester", slog.Any("error", err))
		http.Error(w, "Invalid JWT claims", http.StatusUnauthorized)
		return
	}

	songID, err := pathID(r)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Invalid song ID", slog.Any("error", err))
		http.Error(w, "Invalid song ID", http.StatusBadRequest)
		return
	}

	// Retrieve song
	env.Logger.DebugContext(ctx, "Retrieving song")
	song, err := env.Database.GetSong(ctx, database.GetSongParams{ID: songID, UserID: userID})
	if errors.Is(err, pgx.ErrNoRows) {
		env.Logger.ErrorContext(ctx, "Song not found", slog.Any("error", err))
		http.Error(w, "Song not found", http.StatusNotFound)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "Unable to retrieve song", slog.Any("error", err))
		http.Error(w, "Unable to retrieve song", http.StatusInternalServerError)
		return
	}

	env.Logger.DebugContext(ctx, "Encoding response")
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(responses.Song{ID: song.ID, Name: song.Name, Artist: song.Artist}); err != nil {
		env.Logger.ErrorContext(ctx, "Unable to encode response", slog.Any("error", err))
		return
	}
}

func CreateSong(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env, ok := r.Context().Value(playlistEnv.Key).(*playlistEnv.Env)
	if !ok {
		env = playlistEnv.Null()
	}

	userID, err := requesterID(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to resolve requester", slog.Any("error", err))
		http.Error(w, "Invalid JWT claims", http.StatusUnauthorized)
		return
	}

	// Decode request payload
	env.Logger.DebugContext(ctx, "Decoding request body")
	var createRequest requests.CreateSong
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	defer r.Body.Close()
	if err := playlistJson.DecodeJson(&createRequest, decoder); err != nil {
		env.Logger.ErrorContext(ctx, "Unable to decode request", slog.Any("error", err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Validate payload
	env.Logger.DebugContext(ctx, "Validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(createRequest); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to validate request body", slog.Any("error", err))
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	// Insert song, owner forced to the requester
	env.Logger.DebugContext(ctx, "Creating song")
	song, err := env.Database.CreateSong(ctx, database.CreateSongParams{
		UserID: userID,
		Name:   createRequest.Name,
		Artist: createRequest.Artist,
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		env.Logger.ErrorContext(ctx, "Song already exists", slog.Any("error", err))
		http.Error(w, "Song already exists", http.StatusBadRequest)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "Unable to create song", slog.Any("error", err))
		http.Error(w, "Unable to create song", http.StatusInternalServerError)
		return
	}
	env.Events.Publish(ctx, env.Logger, events.Event{Type: "song.created", UserID: userID.String(), ID: song.ID})

	// Encode response
	env.Logger.DebugContext(ctx, "Encoding response")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(responses.Song{ID: song.ID, Name: song.Name, Artist: song.Artist}); err != nil {
		env.Logger.ErrorContext(ctx, "Unable to encode response", slog.Any("error", err))
		return
	}
}

func UpdateSong(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env, ok := r.Context().Value(playlistEnv.Key).(*playlistEnv.Env)
	if !ok {
		env = playlistEnv.Null()
	}

	userID, err := requesterID(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to resolve requester", slog.Any("error", err))
		http.Error(w, "Invalid JWT claims", http.StatusUnauthorized)
		return
	}

	songID, err := pathID(r)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Invalid song ID", slog.Any("error", err))
		http.Error(w, "Invalid song ID", http.StatusBadRequest)
		return
	}

	// Decode request payload
	env.Logger.DebugContext(ctx, "Decoding request body")
	var updateRequest requests.UpdateSong
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	defer r.Body.Close()
	if err := playlistJson.DecodeJson(&updateRequest, decoder); err != nil {
		env.Logger.ErrorContext(ctx, "Unable to decode request", slog.Any("error", err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Validate payload
	env.Logger.DebugContext(ctx, "Validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(updateRequest); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to validate request body", slog.Any("error", err))
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	// Update supplied fields only
	env.Logger.DebugContext(ctx, "Updating song")
	song, err := env.Database.UpdateSong(ctx, database.UpdateSongParams{
		ID:     songID,
		UserID: userID,
		Name:   updateRequest.Name,
		Artist: updateRequest.Artist,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		env.Logger.ErrorContext(ctx, "Song not found", slog.Any("error", err))
		http.Error(w, "Song not found", http.StatusNotFound)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "Unable to update song", slog.Any("error", err))
		http.Error(w, "Unable to update song", http.StatusInternalServerError)
		return
	}
	env.Events.Publish(ctx, env.Logger, events.Event{Type: "song.updated", UserID: userID.String(), ID: song.ID})

	// Encode response
	env.Logger.DebugContext(ctx, "Encoding response")
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(responses.Song{ID: song.ID, Name: song.Name, Artist: song.Artist}); err != nil {
		env.Logger.ErrorContext(ctx, "Unable to encode response", slog.Any("error", err))
		return
	}
}

func DeleteSong(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env, ok := r.Context().Value(playlistEnv.Key).(*playlistEnv.Env)
	if !ok {
		env = playlistEnv.Null()
	}

	userID, err := requesterID(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to resolve requester", slog.Any("error", err))
		http.Error(w, "Invalid JWT claims", http.StatusUnauthorized)
		return
	}

	songID, err := pathID(r)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Invalid song ID", slog.Any("error", err))
		http.Error(w, "Invalid song ID", http.StatusBadRequest)
		return
	}

	// Delete song and its playlist associations
	env.Logger.DebugContext(ctx, "Deleting song")
	rows, err := env.Database.DeleteSong(ctx, database.DeleteSongParams{ID: songID, UserID: userID})
	if err != nil {
		env.Logger.ErrorContext(ctx, "Unable to delete song", slog.Any("error", err))
		http.Error(w, "Unable to delete song", http.StatusInternalServerError)
		return
	}
	if rows == 0 {
		env.Logger.ErrorContext(ctx, "No rows affected. Song not found.")
		http.Error(w, "Song not found", http.StatusNotFound)
		return
	}
	env.Events.Publish(ctx, env.Logger, events.Event{Type: "song.deleted", UserID: userID.String(), ID: songID})

	env.Logger.DebugContext(ctx, "Successfully deleted song")
	w.WriteHeader(http.StatusNoContent)
}
