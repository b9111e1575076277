package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"playlist-backend/internal/api/models/requests"
	"playlist-backend/internal/api/models/responses"
	"playlist-backend/internal/database"
	playlistEnv "playlist-backend/internal/env"
	playlistJson "playlist-backend/internal/json"
	playlistJWT "playlist-backend/internal/jwt"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

const uniqueViolation = "23505"

func RegisterUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env, ok := r.Context().Value(playlistEnv.Key).(*playlistEnv.Env)
	if !ok {
		env = playlistEnv.Null()
	}

	// Decode request payload
	env.Logger.DebugContext(ctx, "Decoding request body")
	var registerRequest requests.RegisterUser
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	defer r.Body.Close()
	err := playlistJson.DecodeJson(&registerRequest, decoder)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Unable to decode request", slog.Any("error", err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Validate payload
	env.Logger.DebugContext(ctx, "Validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(registerRequest); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to validate request body", slog.Any("error", err))
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	// Hash password
	env.Logger.DebugContext(ctx, "Hashing password")
	hash, err := bcrypt.GenerateFromPassword([]byte(registerRequest.Password), bcrypt.DefaultCost)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Unable to hash password", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	// Insert user into DB
	env.Logger.DebugContext(ctx, "Creating user")
	user, err := env.Database.CreateUser(ctx, database.CreateUserParams{
		Email:        registerRequest.Email,
		PasswordHash: string(hash),
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		env.Logger.ErrorContext(ctx, "Email already registered", slog.Any("error", err))
		http.Error(w, "Email already registered", http.StatusBadRequest)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "Unable to create user", slog.Any("error", err))
		http.Error(w, "Unable to create user", http.StatusInternalServerError)
		return
	}

	// Encode response
	env.Logger.DebugContext(ctx, "Encoding response")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(responses.RegisterUser{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
	if err != nil {
		env.Logger.ErrorContext(ctx, "Unable to encode response", slog.Any("error", err))
		return
	}
}

func CreateToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env, ok := r.Context().Value(playlistEnv.Key).(*playlistEnv.Env)
	if !ok {
		env = playlistEnv.Null()
	}

	// Decode request payload
	env.Logger.DebugContext(ctx, "Decoding request body")
	var tokenRequest requests.CreateToken
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	defer r.Body.Close()
	err := playlistJson.DecodeJson(&tokenRequest, decoder)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Unable to decode request", slog.Any("error", err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Validate payload
	env.Logger.DebugContext(ctx, "Validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(tokenRequest); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to validate request body", slog.Any("error", err))
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	// Retrieve user
	env.Logger.DebugContext(ctx, "Retrieving user")
	user, err := env.Database.GetUserByEmail(ctx, tokenRequest.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		env.Logger.ErrorContext(ctx, "No user for email")
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "Unable to retrieve user", slog.Any("error", err))
		http.Error(w, "Unable to retrieve user", http.StatusInternalServerError)
		return
	}

	// Check password
	env.Logger.DebugContext(ctx, "Checking password")
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(tokenRequest.Password)); err != nil {
		env.Logger.ErrorContext(ctx, "Password mismatch")
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	// Retrieve private key for JWT signing
	env.Logger.DebugContext(ctx, "Retrieving private key")
	key, err := env.Database.GetLatestPrivateKey(ctx)
	if errors.Is(err, pgx.ErrNoRows) {
		env.Logger.ErrorContext(ctx, "No private key to retrieve", slog.Any("error", err))
		http.Error(w, "No private key to retrieve", http.StatusInternalServerError)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "Unable to retrieve private key", slog.Any("error", err))
		http.Error(w, "Unable to retrieve private key", http.StatusInternalServerError)
		return
	}

	// Create JWT for user
	env.Logger.DebugContext(ctx, "Creating JWT")
	signedJWT, err := playlistJWT.CreateJWT(playlistJWT.JWTParams{
		UserID: user.ID.String(),
		Email:  user.Email,
	}, []byte(key.Value))
	if err != nil {
		env.Logger.ErrorContext(ctx, "Unable to create JWT", slog.Any("error", err))
		http.Error(w, "Unable to create JWT", http.StatusInternalServerError)
		return
	}

	// Return JWT
	env.Logger.DebugContext(ctx, "Encoding response")
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", signedJWT))
	err = json.NewEncoder(w).Encode(responses.CreateToken{
		AccessToken: signedJWT,
		TokenType:   "Bearer",
		ExpiresIn:   3600,
	})
	if err != nil {
		env.Logger.ErrorContext(ctx, "Unable to encode response", slog.Any("error", err))
		return
	}
}
