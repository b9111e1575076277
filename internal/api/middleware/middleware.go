// Package for API middleware

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"playlist-backend/internal/api/handlers"
	playlistEnv "playlist-backend/internal/env"
	playlistJWT "playlist-backend/internal/jwt"
	"playlist-backend/internal/logging"

	"github.com/gorilla/mux"
)

// Custom ResponseWriter that captures the status code
type logResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *logResponseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

// Handles panic recovery
func RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		environment, ok := r.Context().Value(playlistEnv.Key).(*playlistEnv.Env)
		if !ok {
			environment = playlistEnv.Null()
		}

		defer func() {
			if err := recover(); err != nil {
				environment.Logger.Error("Panic occurred", slog.Any("error", err))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// Injects the environment object
func InjectEnvironment(env *playlistEnv.Env) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if env == nil {
				env = playlistEnv.Null()
			}
			r = r.WithContext(context.WithValue(r.Context(), playlistEnv.Key, env))
			next.ServeHTTP(w, r)
		})
	}
}

func LogRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		environment, ok := r.Context().Value(playlistEnv.Key).(*playlistEnv.Env)
		if !ok {
			environment = playlistEnv.Null()
		}

		r = r.WithContext(logging.AppendCtx(r.Context(), slog.String("method", r.Method)))
		r = r.WithContext(logging.AppendCtx(r.Context(), slog.String("path", r.URL.RequestURI())))
		lrw := &logResponseWriter{w, http.StatusOK}
		environment.Logger.InfoContext(r.Context(), "Request received")
		next.ServeHTTP(lrw, r)
		environment.Logger.LogAttrs(
			r.Context(),
			slog.LevelInfo,
			"Request completed",
			slog.Duration("duration", time.Since(start)),
			slog.Int("status", lrw.statusCode),
		)
	})
}

// Requires a valid bearer token and stores the parsed JWT in the context
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		environment, ok := r.Context().Value(playlistEnv.Key).(*playlistEnv.Env)
		if !ok {
			environment = playlistEnv.Null()
		}

		header := r.Header.Get("Authorization")
		rawToken, found := strings.CutPrefix(header, "Bearer ")
		if !found || rawToken == "" {
			environment.Logger.ErrorContext(r.Context(), "Missing bearer token")
			http.Error(w, "Missing bearer token", http.StatusUnauthorized)
			return
		}

		token, err := playlistJWT.ValidateJWT(rawToken)
		if err != nil || !token.Valid {
			environment.Logger.ErrorContext(r.Context(), "Invalid bearer token", slog.Any("error", err))
			http.Error(w, "Invalid bearer token", http.StatusUnauthorized)
			return
		}

		r = r.WithContext(context.WithValue(r.Context(), "jwt", token))
		next.ServeHTTP(w, r)
	})
}

func AddRoutes(router *mux.Router, env *playlistEnv.Env) {
	router.Use(InjectEnvironment(env), LogRequest, RecoverMiddleware)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	router.HandleFunc("/api/users", handlers.RegisterUser).Methods("POST")
	router.HandleFunc("/api/users/token", handlers.CreateToken).Methods("POST")

	protected := router.PathPrefix("/api").Subrouter()
	protected.Use(Authenticate)

	protected.HandleFunc("/playlists", handlers.ListPlaylists).Methods("GET")
	protected.HandleFunc("/playlists", handlers.CreatePlaylist).Methods("POST")
	protected.HandleFunc("/playlists/{id}", handlers.GetPlaylist).Methods("GET")
	protected.HandleFunc("/playlists/{id}", handlers.UpdatePlaylist).Methods("PUT", "PATCH")
	protected.HandleFunc("/playlists/{id}", handlers.DeletePlaylist).Methods("DELETE")

	protected.HandleFunc("/songs", handlers.ListSongs).Methods("GET")
	protected.HandleFunc("/songs", handlers.CreateSong).Methods("POST")
	protected.HandleFunc("/songs/{id}", handlers.GetSong).Methods("GET")
	protected.HandleFunc("/songs/{id}", handlers.UpdateSong).Methods("PATCH")
	protected.HandleFunc("/songs/{id}", handlers.DeleteSong).Methods("DELETE")

	protected.HandleFunc("/tags", handlers.ListTags).Methods("GET")
	protected.HandleFunc("/tags/{id}", handlers.UpdateTag).Methods("PATCH")
	protected.HandleFunc("/tags/{id}", handlers.DeleteTag).Methods("DELETE")
}
