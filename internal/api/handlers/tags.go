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

// Tags are created through nested playlist writes, so there is no
// create handler here.

func ListTags(w http.ResponseWriter, r *http.Request) {
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

	// List tags
	env.Logger.DebugContext(ctx, "Listing tags")
	tags, err := env.Database.ListTags(ctx, userID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Unable to list tags", slog.Any("error", err))
		http.Error(w, "Unable to list tags", http.StatusInternalServerError)
		return
	}

	// Encode response
	env.Logger.DebugContext(ctx, "Encoding response")
	response := responses.ListTags{Tags: make([]responses.Tag, len(tags))}
	for i, t := range tags {
		response.Tags[i] = responses.Tag{ID: t.ID, Name: t.Name}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		env.Logger.ErrorContext(ctx, "Unable to encode response", slog.Any("error", err))
		return
	}
}

func UpdateTag(w http.ResponseWriter, r *http.Request) {
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

	tagID, err := pathID(r)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Invalid tag ID", slog.Any("error", err))
		http.Error(w, "Invalid tag ID", http.StatusBadRequest)
		return
	}

	// Decode request payload
	env.Logger.DebugContext(ctx, "Decoding request body")
	var updateRequest requests.UpdateTag
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
	env.Logger.DebugContext(ctx, "Updating tag")
	tag, err := env.Database.UpdateTag(ctx, database.UpdateTagParams{
		ID:     tagID,
		UserID: userID,
		Name:   updateRequest.Name,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		env.Logger.ErrorContext(ctx, "Tag not found", slog.Any("error", err))
		http.Error(w, "Tag not found", http.StatusNotFound)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "Unable to update tag", slog.Any("error", err))
		http.Error(w, "Unable to update tag", http.StatusInternalServerError)
		return
	}
	env.Events.Publish(ctx, env.Logger, events.Event{Type: "tag.updated", UserID: userID.String(), ID: tag.ID})

	// Encode response
	env.Logger.DebugContext(ctx, "Encoding response")
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(responses.Tag{ID: tag.ID, Name: tag.Name}); err != nil {
		env.Logger.ErrorContext(ctx, "Unable to encode response", slog.Any("error", err))
		return
	}
}

func DeleteTag(w http.ResponseWriter, r *http.Request) {
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

	tagID, err := pathID(r)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Invalid tag ID", slog.Any("error", err))
		http.Error(w, "Invalid tag ID", http.StatusBadRequest)
		return
	}

	// Delete tag and its playlist associations
	env.Logger.DebugContext(ctx, "Deleting tag")
	rows, err := env.Database.DeleteTag(ctx, database.DeleteTagParams{ID: tagID, UserID: userID})
	if err != nil {
		env.Logger.ErrorContext(ctx, "Unable to delete tag", slog.Any("error", err))
		http.Error(w, "Unable to delete tag", http.StatusInternalServerError)
		return
	}
	if rows == 0 {
		env.Logger.ErrorContext(ctx, "No rows affected. Tag not found.")
		http.Error(w, "Tag not found", http.StatusNotFound)
		return
	}
	env.Events.Publish(ctx, env.Logger, events.Event{Type: "tag.deleted", UserID: userID.String(), ID: tagID})

	env.Logger.DebugContext(ctx, "Successfully deleted tag")
	w.WriteHeader(http.StatusNoContent)
}
