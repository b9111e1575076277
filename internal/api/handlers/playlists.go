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
)

func playlistDetailResponse(detail database.PlaylistDetail) responses.PlaylistDetail {
	response := responses.PlaylistDetail{
		ID:           detail.ID,
		Title:        detail.Title,
		TimeMinutes:  detail.TimeMinutes,
		GeneralGenre: detail.GeneralGenre,
		CreatedAt:    detail.CreatedAt,
		Songs:        make([]responses.Song, len(detail.Songs)),
		Tags:         make([]responses.Tag, len(detail.Tags)),
	}
	for i, s := range detail.Songs {
		response.Songs[i] = responses.Song{ID: s.ID, Name: s.Name, Artist: s.Artist}
	}
	for i, t := range detail.Tags {
		response.Tags[i] = responses.Tag{ID: t.ID, Name: t.Name}
	}
	return response
}

func songRefs(refs []requests.SongRef) []database.SongRef {
	out := make([]database.SongRef, len(refs))
	for i, ref := range refs {
		out[i] = database.SongRef{Name: ref.Name, Artist: ref.Artist}
	}
	return out
}

func tagNames(refs []requests.TagRef) []string {
	out := make([]string, len(refs))
	for i, ref := range refs {
		out[i] = ref.Name
	}
	return out
}

func ListPlaylists(w http.ResponseWriter, r *http.Request) {
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

	// List playlists, newest first
	env.Logger.DebugContext(ctx, "Listing playlists")
	playlists, err := env.Database.ListPlaylists(ctx, userID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Unable to list playlists", slog.Any("error", err))
		http.Error(w, "Unable to list playlists", http.StatusInternalServerError)
		return
	}

	// Encode summary response
	env.Logger.DebugContext(ctx, "Encoding response")
	response := responses.ListPlaylists{Playlists: make([]responses.Playlist, len(playlists))}
	for i, p := range playlists {
		response.Playlists[i] = responses.Playlist{
			ID:           p.ID,
			Title:        p.Title,
			TimeMinutes:  p.TimeMinutes,
			GeneralGenre: p.GeneralGenre,
		}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		env.Logger.ErrorContext(ctx, "Unable to encode response", slog.Any("error", err))
		return
	}
}

func GetPlaylist(w http.ResponseWriter, r *http.Request) {
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

	playlistID, err := pathID(r)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Invalid playlist ID", slog.Any("error", err))
		http.Error(w, "Invalid playlist ID", http.StatusBadRequest)
		return
	}

	// Retrieve playlist with nested songs and tags
	env.Logger.DebugContext(ctx, "Retrieving playlist")
	detail, err := env.Database.GetPlaylistDetail(ctx, database.GetPlaylistParams{ID: playlistID, UserID: userID})
	if errors.Is(err, pgx.ErrNoRows) {
		env.Logger.ErrorContext(ctx, "Playlist not found", slog.Any("error", err))
		http.Error(w, "Playlist not found", http.StatusNotFound)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "Unable to retrieve playlist", slog.Any("error", err))
		http.Error(w, "Unable to retrieve playlist", http.StatusInternalServerError)
		return
	}

	env.Logger.DebugContext(ctx, "Encoding response")
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(playlistDetailResponse(detail)); err != nil {
		env.Logger.ErrorContext(ctx, "Unable to encode response", slog.Any("error", err))
		return
	}
}

func CreatePlaylist(w http.ResponseWriter, r *http.Request) {
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
	var createRequest requests.CreatePlaylist
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

	// Create playlist, owner forced to the requester
	env.Logger.DebugContext(ctx, "Creating playlist")
	detail, err := env.Database.CreatePlaylistDetail(ctx, database.CreatePlaylistDetailParams{
		UserID:       userID,
		Title:        createRequest.Title,
		TimeMinutes:  createRequest.TimeMinutes,
		GeneralGenre: createRequest.GeneralGenre,
		Songs:        songRefs(createRequest.Songs),
		Tags:         tagNames(createRequest.Tags),
	})
	if err != nil {
		env.Logger.ErrorContext(ctx, "Unable to create playlist", slog.Any("error", err))
		http.Error(w, "Unable to create playlist", http.StatusInternalServerError)
		return
	}
	env.Events.Publish(ctx, env.Logger, events.Event{Type: "playlist.created", UserID: userID.String(), ID: detail.ID})

	// Encode detail response
	env.Logger.DebugContext(ctx, "Encoding response")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(playlistDetailResponse(detail)); err != nil {
		env.Logger.ErrorContext(ctx, "Unable to encode response", slog.Any("error", err))
		return
	}
}

func UpdatePlaylist(w http.ResponseWriter, r *http.Request) {
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

	playlistID, err := pathID(r)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Invalid playlist ID", slog.Any("error", err))
		http.Error(w, "Invalid playlist ID", http.StatusBadRequest)
		return
	}

	// Decode request payload
	env.Logger.DebugContext(ctx, "Decoding request body")
	var updateRequest requests.UpdatePlaylist
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

	// PUT replaces the full field set; unsupplied fields reset to defaults
	if r.Method == http.MethodPut {
		if updateRequest.Title == nil {
			env.Logger.ErrorContext(ctx, "Missing title on full update")
			http.Error(w, "Title is required", http.StatusBadRequest)
			return
		}
		if updateRequest.TimeMinutes == nil {
			zero := int32(0)
			updateRequest.TimeMinutes = &zero
		}
		if updateRequest.GeneralGenre == nil {
			empty := ""
			updateRequest.GeneralGenre = &empty
		}
		if updateRequest.Songs == nil {
			updateRequest.Songs = &[]requests.SongRef{}
		}
		if updateRequest.Tags == nil {
			updateRequest.Tags = &[]requests.TagRef{}
		}
	}

	params := database.UpdatePlaylistDetailParams{
		ID:           playlistID,
		UserID:       userID,
		Title:        updateRequest.Title,
		TimeMinutes:  updateRequest.TimeMinutes,
		GeneralGenre: updateRequest.GeneralGenre,
	}
	if updateRequest.Songs != nil {
		params.ReplaceSongs = true
		params.Songs = songRefs(*updateRequest.Songs)
	}
	if updateRequest.Tags != nil {
		params.ReplaceTags = true
		params.Tags = tagNames(*updateRequest.Tags)
	}

	// Update playlist
	env.Logger.DebugContext(ctx, "Updating playlist")
	detail, err := env.Database.UpdatePlaylistDetail(ctx, params)
	if errors.Is(err, pgx.ErrNoRows) {
		env.Logger.ErrorContext(ctx, "Playlist not found", slog.Any("error", err))
		http.Error(w, "Playlist not found", http.StatusNotFound)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "Unable to update playlist", slog.Any("error", err))
		http.Error(w, "Unable to update playlist", http.StatusInternalServerError)
		return
	}
	env.Events.Publish(ctx, env.Logger, events.Event{Type: "playlist.updated", UserID: userID.String(), ID: detail.ID})

	// Encode detail response
	env.Logger.DebugContext(ctx, "Encoding response")
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(playlistDetailResponse(detail)); err != nil {
		env.Logger.ErrorContext(ctx, "Unable to encode response", slog.Any("error", err))
		return
	}
}

func DeletePlaylist(w http.ResponseWriter, r *http.Request) {
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

	playlistID, err := pathID(r)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Invalid playlist ID", slog.Any("error", err))
		http.Error(w, "Invalid playlist ID", http.StatusBadRequest)
		return
	}

	// Delete playlist and its associations
	env.Logger.DebugContext(ctx, "Deleting playlist")
	rows, err := env.Database.DeletePlaylist(ctx, database.DeletePlaylistParams{ID: playlistID, UserID: userID})
	if err != nil {
		env.Logger.ErrorContext(ctx, "Unable to delete playlist", slog.Any("error", err))
		http.Error(w, "Unable to delete playlist", http.StatusInternalServerError)
		return
	}
	if rows == 0 {
		env.Logger.ErrorContext(ctx, "No rows affected. Playlist not found.")
		http.Error(w, "Playlist not found", http.StatusNotFound)
		return
	}
	env.Events.Publish(ctx, env.Logger, events.Event{Type: "playlist.deleted", UserID: userID.String(), ID: playlistID})

	env.Logger.DebugContext(ctx, "Successfully deleted playlist")
	w.WriteHeader(http.StatusNoContent)
}
